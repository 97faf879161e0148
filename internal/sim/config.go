package sim

// All tunable game parameters are centralized here for easy adjustment.

// Viewport
const (
	ViewportW = 800.0
	ViewportH = 480.0
)

// World
const (
	TileSize       = 50.0
	PlatformHeight = 50.0
	GroundY        = ViewportH - PlatformHeight
	SpawnMargin    = 100.0 // generate once the rightmost platform is this close to the edge
	CullMargin     = 80.0  // evict once fully past the left edge by this much
)

// Player
const (
	PlayerW         = 48.0
	PlayerH         = 30.0
	PlayerStartX    = 120.0
	Gravity         = 0.6  // px/frame^2
	JumpVelocity    = -11.0
	BoostAccel      = 0.55 // anti-gravity while a held jump is boosting, px/frame^2
	BoostMaxMS      = 300.0
	JumpBufferSec   = 0.12
	TumbleRate      = 360.0 // deg/s while airborne
	DescendVelocity = 2.0   // dy while flight mode is winding down over a platform
)

// Speed / scoring
const (
	GameSpeedStart = 6.0
	MaxSpeed       = 13.0
	SpeedRampPerS  = 0.1 // added to speed each frame, scaled by dt
	ScoreDivisor   = 10.0
	ScorePerLevel  = 200
)

// Oxygen
const (
	OxygenMax           = 100.0
	OxygenDepletionRate = 3.5 // per second
	OxygenRestore       = 30.0
)

// Quicksand
const (
	QuicksandChance   = 0.25
	QuicksandSinkMS   = 500.0
	QuicksandSinkRate = 1.1  // px/frame downward once sinking
	QuicksandFootSink = 12.0 // how deep the trapped player sits in the surface
)

// Jump-reach bound for gap generation: the widest gap the player can clear
// at a given scroll speed, in pixels, is speed*40 - 60.
const (
	JumpReachFrames = 40.0
	JumpReachSlack  = 60.0
)

// Items
const (
	ItemSize = 34.0

	SwordfishChance     = 0.12
	SwordfishDurationMS = 5000.0
	SwordfishSpeedMult  = 1.5

	OxygenTankChance = 0.25

	UrchinUnlockScore = 300
	UrchinChance      = 0.08
	UrchinAltitude    = 150.0 // above the platform top, out of short-hop reach
	UrchinSpinAlive   = 240.0 // deg/s
	UrchinSpinDead    = 720.0
	UrchinBounceDamp  = -0.45

	ShellUnlockScore = 150
	ShellBaseChance  = SwordfishChance
	ShellUseDecay    = 0.5 // chance = base / (1 + uses*decay)

	TubeUnlockScore   = 500
	TubePieceChance   = 0.10
	TubePiecesPerTube = 4
	TubeBonusScore    = 50
)

// Dolphin double jump
const (
	DolphinMaxCount        = 99
	DolphinLookaheadFrames = 8.0 // skip consuming a charge if landing within this horizon
)

// Rescue sequences
const (
	RescueApproachSmooth = 6.0 // exponential smoothing constant, scaled by dt
	RescueArriveDist     = 8.0
	RescueFlyInMaxSec    = 1.5
	RescueHookSec        = 0.55
	RescueTowSec         = 1.05
	RescueCountdownMS    = 3000.0
	RescueHoverOffsetX   = 10.0
	RescueHoverOffsetY   = -70.0
	RescueLandingInset   = 20.0 // land this far in from the target platform's left edge
)

// Bubbles (decorative only)
const (
	BubbleCount    = 24
	BubbleMinR     = 2.0
	BubbleMaxR     = 7.0
	BubbleMinSpeed = 18.0 // px/s upward
	BubbleMaxSpeed = 55.0
	BubbleWobble   = 14.0
)

// difficultyTier drives hole frequency and gap/platform sizing per level.
// Tiers are indexed by level-1 and the last entry repeats for level 5+.
type difficultyTier struct {
	HoleChance   float64
	MinGapTiles  int
	MaxGapTiles  int
	MinPlatTiles int
	MaxPlatTiles int
}

var difficultyTiers = []difficultyTier{
	{HoleChance: 0.30, MinGapTiles: 2, MaxGapTiles: 3, MinPlatTiles: 4, MaxPlatTiles: 7},
	{HoleChance: 0.35, MinGapTiles: 2, MaxGapTiles: 3, MinPlatTiles: 4, MaxPlatTiles: 6},
	{HoleChance: 0.40, MinGapTiles: 2, MaxGapTiles: 4, MinPlatTiles: 3, MaxPlatTiles: 6},
	{HoleChance: 0.45, MinGapTiles: 3, MaxGapTiles: 4, MinPlatTiles: 3, MaxPlatTiles: 5},
	{HoleChance: 0.50, MinGapTiles: 3, MaxGapTiles: 5, MinPlatTiles: 2, MaxPlatTiles: 4},
}

func tierForLevel(level int) difficultyTier {
	i := level - 1
	if i < 0 {
		i = 0
	}
	if i >= len(difficultyTiers) {
		i = len(difficultyTiers) - 1
	}
	return difficultyTiers[i]
}
