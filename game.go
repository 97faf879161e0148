package main

import (
	"os"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/jooddang/submarine-dash-sub000/internal/backend"
	"github.com/jooddang/submarine-dash-sub000/internal/sim"
)

const frameDt = 1.0 / 60.0

type toast struct {
	text string
	t    float64 // seconds left
}

type Game struct {
	st *sim.State
	be *backend.Client

	userID string
	anon   bool

	playerName string
	skin       string
	nameInput  []rune
	inputRunes []rune // scratch for AppendInputChars

	board     []backend.BoardEntry
	weekly    []backend.BoardEntry
	highlight int // 1-based rank of a freshly submitted entry, 0 = none

	toasts []toast

	touchStart map[ebiten.TouchID][2]int
	touchIDs   []ebiten.TouchID // scratch
}

func newGame(st *sim.State, be *backend.Client) *Game {
	g := &Game{
		st:         st,
		be:         be,
		anon:       true,
		playerName: os.Getenv("PLAYER_NAME"),
		skin:       os.Getenv("SKIN_ID"),
		touchStart: map[ebiten.TouchID][2]int{},
	}
	g.connect()
	return g
}

// connect identifies the session and pulls the initial leaderboard and
// mission state. Everything is fire-and-forget; an offline client makes
// all of this a no-op.
func (g *Game) connect() {
	g.be.Identify(func(rep *backend.Reply, err error) {
		if err != nil || rep == nil {
			return
		}
		g.userID = rep.UserID
		g.anon = rep.Anon || rep.UserID == ""
		if g.playerName == "" {
			g.playerName = rep.UserID
		}
		if rep.Dolphins != nil {
			g.st.Dolphins.Set(*rep.Dolphins)
		}
	})
	g.refreshBoards()
	g.refreshMissions()

	// one-shot migration of dolphins earned in an older save
	if n, err := strconv.Atoi(os.Getenv("IMPORT_DOLPHINS")); err == nil && n > 0 {
		g.importDolphins(n)
	}
}

func (g *Game) importDolphins(n int) {
	seq := g.st.AllocDolphinTag()
	g.be.ImportDolphins(n, func(rep *backend.Reply, err error) {
		if err != nil || rep == nil || rep.Dolphins == nil {
			return
		}
		g.st.ApplyDolphinResult(seq, true, *rep.Dolphins)
		g.addToast("Dolphins imported")
	})
}

func (g *Game) refreshBoards() {
	g.be.FetchLeaderboard(func(rep *backend.Reply, err error) {
		if err != nil || rep == nil {
			return
		}
		g.board = rep.Entries
		g.weekly = rep.Weekly
		g.st.SetLeaderboard(toSimBoard(rep.Entries))
	})
}

func (g *Game) refreshMissions() {
	seq := g.st.AllocDolphinTag()
	g.be.FetchMissions(func(rep *backend.Reply, err error) {
		if err != nil || rep == nil {
			return
		}
		if rep.Dolphins != nil {
			g.st.ApplyDolphinResult(seq, true, *rep.Dolphins)
		}
	})
}

func toSimBoard(entries []backend.BoardEntry) []sim.BoardEntry {
	out := make([]sim.BoardEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, sim.BoardEntry{Name: e.Name, Score: e.Score, Skin: e.Skin})
	}
	return out
}

func (g *Game) Update() error {
	// apply queued backend responses on the frame goroutine before the
	// simulation steps; the read goroutine never touches game state
	for drained := false; !drained; {
		select {
		case fn := <-g.be.Replies():
			fn()
		default:
			drained = true
		}
	}

	g.pollInput()

	if g.st.Phase == sim.PhasePlaying {
		g.st.Step(frameDt)
		g.dispatchEvents()
	}

	for i := 0; i < len(g.toasts); i++ {
		g.toasts[i].t -= frameDt
		if g.toasts[i].t <= 0 {
			g.toasts = append(g.toasts[:i], g.toasts[i+1:]...)
			i--
		}
	}

	return nil
}

// dispatchEvents turns simulation events into sounds, toasts and backend
// requests.
func (g *Game) dispatchEvents() {
	for _, e := range g.st.DrainEvents() {
		switch e.Kind {
		case sim.EvJump:
			playSFX(sndJump)
		case sim.EvLand:
			playSFX(sndLand)
		case sim.EvOxygen:
			playSFX(sndOxygen)
		case sim.EvPowerup:
			playSFX(sndPowerup)
		case sim.EvShell:
			playSFX(sndShell)
		case sim.EvTubePiece:
			playSFX(sndTubePiece)
		case sim.EvTubeComplete:
			playSFX(sndTubeComplete)
		case sim.EvUrchinDefeat:
			playSFX(sndUrchinDead)
		case sim.EvDeath:
			playSFX(sndDeath)
		case sim.EvRescue:
			playSFX(sndRescue)
		case sim.EvCountdownTick:
			playSFX(sndTick)

		case sim.EvToast:
			g.addToast(e.Text)

		case sim.EvRunEnd:
			g.reportRunEnd(e.Score)
		case sim.EvOxygenCollected:
			if !g.anon {
				g.be.ReportOxygen()
			}
		case sim.EvConsumeDolphin:
			g.consumeDolphin(e.Seq)
		}
	}
}

func (g *Game) reportRunEnd(score int) {
	if g.anon {
		return
	}
	seq := g.st.AllocDolphinTag()
	g.be.ReportRunEnd(score, func(rep *backend.Reply, err error) {
		if err != nil || rep == nil {
			return
		}
		if rep.Dolphins != nil {
			g.st.ApplyDolphinResult(seq, true, *rep.Dolphins)
		}
		if rep.Reward != "" {
			g.addToast("Streak reward: " + rep.Reward)
		}
	})
}

func (g *Game) consumeDolphin(seq uint64) {
	g.be.ConsumeDolphin(func(rep *backend.Reply, err error) {
		if err != nil || rep == nil || !rep.OK {
			g.st.ApplyDolphinResult(seq, false, 0)
			return
		}
		count := g.st.Dolphins.Value()
		if rep.Dolphins != nil {
			count = *rep.Dolphins
		}
		g.st.ApplyDolphinResult(seq, true, count)
	})
}

// submitScore posts the name-entry result. Submission needs a session; an
// anonymous or offline player just moves on to the game-over screen.
func (g *Game) submitScore() {
	name := string(g.nameInput)
	if name == "" {
		name = g.playerName
	}
	if !g.anon {
		score := g.st.Score
		g.be.SubmitScore(name, score, g.skin, func(rep *backend.Reply, err error) {
			if err != nil || rep == nil {
				return
			}
			g.board = rep.Entries
			g.highlight = rep.Rank
			g.st.SetLeaderboard(toSimBoard(rep.Entries))
		})
	}
	g.st.FinishNameEntry()
}

func (g *Game) startRun() {
	g.highlight = 0
	g.nameInput = g.nameInput[:0]
	g.st.StartRun()
	startMusic()
}

func (g *Game) addToast(text string) {
	g.toasts = append(g.toasts, toast{text: text, t: 3})
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (w, h int) {
	return screenWidth, screenHeight
}
