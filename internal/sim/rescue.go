package sim

import "math"

type RescuePhase int

const (
	RescuePhaseNone RescuePhase = iota
	RescueFlyIn
	RescueHook
	RescueTow
	RescueCountdown
)

// Rescue is one scripted recovery sequence. Two instances exist, one for
// the turtle-shell quicksand rescue and one for the tube fall rescue; at
// most one is ever active, enforced by the Mode gate.
type Rescue struct {
	Phase RescuePhase
	T     float64 // seconds in the current phase

	RescuerX, RescuerY float64

	playerXFixed float64
	towStartY    float64
	towTargetY   float64
	towShift     float64 // total leftward world shift for the tow
	towDone      float64

	CountdownMS float64
	lastTick    int
}

func (r *Rescue) Active() bool { return r.Phase != RescuePhaseNone }

// CountdownSeconds is the on-screen countdown value, rounded up.
func (r *Rescue) CountdownSeconds() int {
	return int(math.Ceil(r.CountdownMS / 1000))
}

func (s *State) startQuicksandRescue() {
	if s.Mode != ModeNormal || !s.TurtleShellSaved {
		return
	}
	s.TurtleShellSaved = false
	s.ShellUses++
	s.Mode = ModeRescueQuicksand
	s.QuicksandRescue = Rescue{
		Phase:    RescueFlyIn,
		RescuerX: ViewportW + 60,
		RescuerY: s.Player.Y - 160,
	}
	s.emit(Event{Kind: EvRescue})
}

func (s *State) startTubeRescue() {
	if s.Mode != ModeNormal || s.TubeCharges <= 0 {
		return
	}
	s.TubeCharges--
	s.Mode = ModeRescueTube
	s.TubeRescue = Rescue{
		Phase:    RescueFlyIn,
		RescuerX: ViewportW + 60,
		RescuerY: s.Player.Y - 160,
	}
	s.emit(Event{Kind: EvRescue})
}

func (s *State) stepRescue(r *Rescue, dt float64) {
	p := &s.Player
	r.T += dt

	switch r.Phase {
	case RescueFlyIn:
		tx := p.X + RescueHoverOffsetX
		ty := p.Y + RescueHoverOffsetY
		k := math.Min(1, dt*RescueApproachSmooth)
		r.RescuerX += (tx - r.RescuerX) * k
		r.RescuerY += (ty - r.RescuerY) * k
		arrived := math.Hypot(tx-r.RescuerX, ty-r.RescuerY) < RescueArriveDist
		// the time fallback keeps an approach that never quite converges
		// from stalling the sequence
		if arrived || r.T > RescueFlyInMaxSec {
			r.Phase = RescueHook
			r.T = 0
		}

	case RescueHook:
		if r.T >= RescueHookSec {
			r.playerXFixed = p.X
			s.beginTow(r)
		}

	case RescueTow:
		prog := clamp(r.T/RescueTowSec, 0, 1)
		e := easeInOut(prog)
		inc := e*r.towShift - r.towDone
		r.towDone += inc
		s.shiftWorld(inc)

		p.X = r.playerXFixed
		p.Y = r.towStartY + (r.towTargetY-r.towStartY)*e
		p.Dy = 0
		p.Grounded = true
		p.Rotation = 0
		p.IsTrapped = false
		r.RescuerX = p.X + RescueHoverOffsetX
		r.RescuerY = p.Y + RescueHoverOffsetY

		if prog >= 1 {
			p.Y = r.towTargetY
			r.Phase = RescueCountdown
			r.T = 0
			r.CountdownMS = RescueCountdownMS
			r.lastTick = r.CountdownSeconds()
			s.emit(Event{Kind: EvCountdownTick})
		}

	case RescueCountdown:
		r.CountdownMS -= dt * 1000
		r.RescuerX += 260 * dt
		r.RescuerY -= 120 * dt
		if sec := r.CountdownSeconds(); sec < r.lastTick && sec > 0 {
			r.lastTick = sec
			s.emit(Event{Kind: EvCountdownTick})
		}
		if r.CountdownMS <= 0 {
			r.Phase = RescuePhaseNone
			s.Mode = ModeNormal
		}
	}
}

// beginTow picks the landing platform, the first normal platform past the
// hazard, and computes the world shift that brings it under the player's
// frozen on-screen position. The camera moves, the player does not.
func (s *State) beginTow(r *Rescue) {
	p := &s.Player
	hazardX := p.X
	for _, pl := range s.Platforms {
		if pl.Sinking && p.X+p.W > pl.X && p.X < pl.X+pl.W {
			if right := pl.X + pl.W; right > hazardX {
				hazardX = right
			}
		}
	}

	target := s.nextNormalPlatform(hazardX)
	if target == nil {
		// extend the world with a safe landing strip rather than stranding
		// the sequence
		edge := ViewportW
		if n := len(s.Platforms); n > 0 {
			last := s.Platforms[n-1]
			edge = last.X + last.W
		}
		target = &Platform{
			X:    edge + 2*TileSize,
			Y:    GroundY,
			W:    6 * TileSize,
			H:    PlatformHeight,
			Type: PlatformNormal,
		}
		s.Platforms = append(s.Platforms, target)
	}

	r.towShift = target.X + RescueLandingInset - r.playerXFixed
	if r.towShift < 0 {
		r.towShift = 0
	}
	r.towDone = 0
	r.towStartY = p.Y
	r.towTargetY = target.Top() - p.H
	r.Phase = RescueTow
	r.T = 0
}

func (s *State) nextNormalPlatform(afterX float64) *Platform {
	for _, pl := range s.Platforms {
		if pl.Type == PlatformNormal && !pl.Sinking && pl.X > afterX {
			return pl
		}
	}
	return nil
}

func (s *State) shiftWorld(dx float64) {
	for _, pl := range s.Platforms {
		pl.X -= dx
	}
	for _, it := range s.Items {
		it.X -= dx
	}
}

func easeInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}
