package sim

import (
	"math/rand"

	"github.com/solarlune/resolv"
)

// Rand is the slice of math/rand used by the simulation, injectable so
// generation and spawn decisions are scriptable in tests.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

var _ Rand = (*rand.Rand)(nil)

// Phase is the outer run state machine.
type Phase int

const (
	PhaseMenu Phase = iota
	PhasePlaying
	PhaseInputName
	PhaseGameOver
)

// Mode gates which per-frame logic runs: normal physics, or one of the two
// scripted rescue sequences.
type Mode int

const (
	ModeNormal Mode = iota
	ModeRescueQuicksand
	ModeRescueTube
)

// TerminalReason says why a run ended.
type TerminalReason int

const (
	TerminalNone TerminalReason = iota
	TerminalDrowned
	TerminalFell
	TerminalHitHazard
)

type PlatformType int

const (
	PlatformNormal PlatformType = iota
	PlatformQuicksand
)

type Platform struct {
	X, Y, W, H float64
	Type       PlatformType
	Sinking    bool
	ContactMS  float64 // accumulated player contact time on quicksand
}

func (p *Platform) Top() float64 { return p.Y }

type ItemType int

const (
	ItemOxygen ItemType = iota
	ItemSwordfish
	ItemUrchin
	ItemTurtleShell
	ItemTubePiece
)

type Item struct {
	Type       ItemType
	X, Y, W, H float64
	Collected  bool

	// urchin state
	Rotation float64
	IsDead   bool
	Dy       float64
	bounced  bool

	// tube piece art slot, currentTubePieces mod 4 at spawn time
	Variant int

	shape resolv.IShape
}

type Player struct {
	X, Y      float64
	W, H      float64
	Dy        float64
	Grounded  bool
	Rotation  float64
	IsTrapped bool

	IsBoosting  bool
	BoostUsedMS float64
}

func (p *Player) Bottom() float64 { return p.Y + p.H }

// Bubble is decorative background only, no gameplay effect.
type Bubble struct {
	X, Y  float64
	R     float64
	Speed float64 // px/s upward
	Phase float64 // wobble phase offset
	Drift float64 // wobble amplitude scale
}

// BoardEntry is a cached leaderboard row used for the top-5 qualification
// check at run end.
type BoardEntry struct {
	Name  string
	Score int
	Skin  string
}

// State is the whole simulation, owned and mutated exclusively by the frame
// loop. The render layer only reads it.
type State struct {
	Rand Rand

	Phase Phase
	Mode  Mode

	Player    Player
	Platforms []*Platform
	Items     []*Item
	Bubbles   []Bubble

	space       *resolv.Space
	playerShape resolv.IShape

	Speed    float64
	Distance float64
	Score    int
	Level    int
	Oxygen   float64

	JumpHeld    bool
	jumpBufferT float64 // seconds left on a buffered jump request

	PowerupMS     float64 // swordfish flight/invincibility time left
	flightDescend bool

	TurtleShellSaved bool
	ShellUses        int
	TubePieces       int
	TubeCharges      int
	Dolphins         OptimisticCounter

	QuicksandRescue Rescue
	TubeRescue      Rescue

	Terminal   TerminalReason
	runEndSent bool

	Leaderboard []BoardEntry

	// Events accumulated during a step, drained by the shell each frame.
	Events []Event

	elapsed  float64 // seconds since run start, drives wobble animation
	TestMode bool    // seed one of each item on the opening run
}

type EventKind int

const (
	// sounds
	EvJump EventKind = iota
	EvLand
	EvOxygen
	EvPowerup
	EvShell
	EvTubePiece
	EvTubeComplete
	EvUrchinDefeat
	EvDeath
	EvRescue
	EvCountdownTick

	// toasts
	EvToast

	// collaborator requests the shell should dispatch
	EvRunEnd          // Score set
	EvOxygenCollected // best-effort mission event
	EvConsumeDolphin  // Seq set
)

type Event struct {
	Kind  EventKind
	Text  string
	Score int
	Seq   uint64
}

func (s *State) emit(e Event) { s.Events = append(s.Events, e) }

// DrainEvents returns the pending events and clears the queue.
func (s *State) DrainEvents() []Event {
	ev := s.Events
	s.Events = nil
	return ev
}

// New returns a State sitting in the menu with nothing running yet.
func New(r Rand) *State {
	if r == nil {
		r = rand.New(rand.NewSource(1))
	}
	return &State{
		Rand:  r,
		Phase: PhaseMenu,
	}
}

// RescueActive reports whether either rescue sequence is running.
func (s *State) RescueActive() bool {
	return s.Mode != ModeNormal
}

// EffectiveSpeed is the scroll speed with the swordfish multiplier applied.
func (s *State) EffectiveSpeed() float64 {
	if s.PowerupMS > 0 {
		return s.Speed * SwordfishSpeedMult
	}
	return s.Speed
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
