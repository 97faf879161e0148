package backend

// Request is the envelope for every client->server operation. The ID is a
// client-side correlation number; the matching Reply echoes it.
type Request struct {
	ID    uint64 `msgpack:"id"`
	Op    string `msgpack:"op"`
	Score int    `msgpack:"score,omitempty"`
	Count int    `msgpack:"count,omitempty"`
	Name  string `msgpack:"name,omitempty"`
	Skin  string `msgpack:"skin,omitempty"`
}

// Operation names understood by the server.
const (
	OpIdentify        = "identify"
	OpRunEnd          = "run_end"
	OpOxygenCollected = "oxygen_collected"
	OpConsumeDolphin  = "consume_dolphin"
	OpImportDolphins  = "import_dolphins"
	OpSubmitScore     = "submit_score"
	OpLeaderboard     = "leaderboard"
	OpMissions        = "missions"
)

type BoardEntry struct {
	Name  string `msgpack:"name"`
	Score int    `msgpack:"score"`
	Skin  string `msgpack:"skin,omitempty"`
	Rank  int    `msgpack:"rank,omitempty"`
}

type Mission struct {
	ID       string `msgpack:"id"`
	Title    string `msgpack:"title"`
	Goal     int    `msgpack:"goal"`
	Progress int    `msgpack:"progress"`
	Done     bool   `msgpack:"done"`
}

// Reply carries the union of all response fields; only the ones relevant to
// the echoed op are populated.
type Reply struct {
	ID uint64 `msgpack:"id"`
	Op string `msgpack:"op"`
	OK bool   `msgpack:"ok"`

	UserID   string `msgpack:"userId,omitempty"`
	Anon     bool   `msgpack:"anon,omitempty"`
	Dolphins *int   `msgpack:"dolphins,omitempty"`
	Streak   int    `msgpack:"streak,omitempty"`
	Reward   string `msgpack:"reward,omitempty"` // streak grant, if any
	Coins    int    `msgpack:"coins,omitempty"`

	Entries []BoardEntry `msgpack:"entries,omitempty"`
	Weekly  []BoardEntry `msgpack:"weekly,omitempty"`
	Rank    int          `msgpack:"rank,omitempty"`

	Missions []Mission `msgpack:"missions,omitempty"`
}
