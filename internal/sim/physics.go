package sim

import "math"

// MaxFrameDt caps dt so a backgrounded window resuming does not tunnel the
// player through the world.
const MaxFrameDt = 0.1

// Step advances the whole simulation by one frame. dt is in seconds.
func (s *State) Step(dt float64) {
	if s.Phase != PhasePlaying {
		return
	}
	if dt > MaxFrameDt {
		dt = MaxFrameDt
	}
	s.elapsed += dt
	s.stepBubbles(dt)

	switch s.Mode {
	case ModeRescueQuicksand:
		s.stepRescue(&s.QuicksandRescue, dt)
		return
	case ModeRescueTube:
		s.stepRescue(&s.TubeRescue, dt)
		return
	}

	s.stepPhysics(dt)
	if s.Phase != PhasePlaying || s.Mode != ModeNormal {
		return
	}
	s.stepWorldGen()
	s.stepItems(dt)
}

func (s *State) stepPhysics(dt float64) {
	p := &s.Player

	if s.jumpBufferT > 0 {
		s.jumpBufferT -= dt
	}
	if s.PowerupMS > 0 {
		s.PowerupMS -= dt * 1000
	}

	s.Oxygen -= OxygenDepletionRate * dt
	if s.Oxygen <= 0 {
		s.Oxygen = 0
		s.endRun(TerminalDrowned)
		return
	}

	eff := s.EffectiveSpeed()
	s.Speed = clamp(s.Speed+SpeedRampPerS*dt, GameSpeedStart, MaxSpeed)
	s.Distance += eff
	s.recomputeScore()

	// Flight wind-down: when the swordfish timer runs out mid-air, hold a
	// shallow descent until the platform underneath has scrolled out from
	// under the player, so the powerup never dumps them into a surface.
	flying := s.PowerupMS > 0
	if !flying && s.flightDescend {
		if s.stillOverPlatform(eff) {
			flying = true
		} else {
			s.flightDescend = false
		}
	}
	if s.PowerupMS > 0 {
		s.flightDescend = true
	}

	if flying {
		if s.PowerupMS > 0 {
			p.Dy = 0
		} else {
			p.Dy = DescendVelocity
		}
	} else {
		if p.IsBoosting && s.JumpHeld && p.BoostUsedMS < BoostMaxMS {
			p.Dy -= BoostAccel
			p.BoostUsedMS += dt * 1000
		} else {
			p.IsBoosting = false
		}
		p.Dy += Gravity
	}
	p.Y += p.Dy

	if flying || p.Grounded {
		p.Rotation = 0
	} else {
		p.Rotation += TumbleRate * dt
	}

	wasGrounded := p.Grounded
	landed := s.resolveGroundCollision(dt)
	p.Grounded = landed
	if landed {
		if !wasGrounded {
			p.IsBoosting = false
			p.BoostUsedMS = 0
			p.Rotation = 0
			s.emit(Event{Kind: EvLand})
		}
		if s.jumpBufferT > 0 {
			s.jumpBufferT = 0
			s.attemptJump()
		}
	}

	if p.IsTrapped && s.TurtleShellSaved {
		s.startQuicksandRescue()
		return
	}

	if p.Y > ViewportH {
		if s.TubeCharges > 0 {
			s.startTubeRescue()
			return
		}
		s.endRun(TerminalFell)
		return
	}

	s.scrollWorld(eff)
}

// stillOverPlatform reports whether the platform under the player will still
// be under them by the time a gravity fall from the current height lands.
func (s *State) stillOverPlatform(eff float64) bool {
	p := &s.Player
	plat := s.platformBelow()
	if plat == nil {
		return false
	}
	fall := plat.Top() - p.Bottom()
	if fall <= 0 {
		return false
	}
	framesToFall := math.Sqrt(2 * fall / Gravity)
	rightEdgeThen := plat.X + plat.W - eff*framesToFall
	return rightEdgeThen > p.X
}

// platformBelow returns the topmost platform whose horizontal span contains
// the player and whose top is at or below the player's feet.
func (s *State) platformBelow() *Platform {
	p := &s.Player
	var best *Platform
	for _, pl := range s.Platforms {
		if p.X+p.W <= pl.X || p.X >= pl.X+pl.W {
			continue
		}
		if pl.Top() < p.Bottom()-2 {
			continue
		}
		if best == nil || pl.Top() < best.Top() {
			best = pl
		}
	}
	return best
}

// resolveGroundCollision snaps the falling player onto any platform whose
// top edge sits in a thin band below the feet, handles quicksand contact
// timers and entrapment, and returns whether the player ended grounded.
func (s *State) resolveGroundCollision(dt float64) bool {
	p := &s.Player
	grounded := false
	band := math.Max(p.Dy, 0) + 6

	for _, pl := range s.Platforms {
		if p.X+p.W <= pl.X || p.X >= pl.X+pl.W {
			continue
		}
		top := pl.Top()
		if p.Bottom() < top-band || p.Bottom() > top+PlatformHeight {
			continue
		}

		// Invincibility ignores quicksand, the powerup flies over surfaces.
		if pl.Type == PlatformQuicksand && s.PowerupMS <= 0 {
			pl.ContactMS += dt * 1000
			if pl.ContactMS >= QuicksandSinkMS {
				pl.Sinking = true
			}
		}

		if pl.Sinking && s.PowerupMS <= 0 {
			p.IsTrapped = true
			if p.Dy >= 0 {
				p.Y = top - p.H + QuicksandFootSink
				p.Dy = 0
				grounded = true
			}
			continue
		}

		if p.Dy >= 0 {
			p.Y = top - p.H
			p.Dy = 0
			grounded = true
		}
	}

	if !grounded && !s.onSinkingPlatform() {
		p.IsTrapped = false
	}
	return grounded
}

func (s *State) onSinkingPlatform() bool {
	p := &s.Player
	for _, pl := range s.Platforms {
		if !pl.Sinking {
			continue
		}
		if p.X+p.W > pl.X && p.X < pl.X+pl.W {
			return true
		}
	}
	return false
}

// scrollWorld shifts everything left, advances sinking platforms downward
// and evicts platforms fully off the left edge (always the leftmost first).
func (s *State) scrollWorld(eff float64) {
	for _, pl := range s.Platforms {
		pl.X -= eff
		if pl.Sinking {
			pl.Y += QuicksandSinkRate
		}
	}
	for len(s.Platforms) > 0 {
		first := s.Platforms[0]
		if first.X+first.W >= -CullMargin {
			break
		}
		s.Platforms = s.Platforms[1:]
	}
}

// PressJump is the edge-triggered jump input. A failed attempt is buffered
// briefly so a slightly-early press still fires on landing.
func (s *State) PressJump() {
	if s.Phase != PhasePlaying || s.RescueActive() {
		return
	}
	if !s.attemptJump() {
		s.jumpBufferT = JumpBufferSec
	}
}

// SetJumpHeld records whether the jump control is currently held, which
// drives the variable-height boost.
func (s *State) SetJumpHeld(held bool) { s.JumpHeld = held }

// attemptJump performs a ground jump, or a dolphin double jump when one is
// charged and the player is not about to land anyway. Returns whether a
// jump happened.
func (s *State) attemptJump() bool {
	p := &s.Player
	if p.IsTrapped || s.PowerupMS > 0 {
		return false
	}
	if p.Grounded {
		p.Dy = JumpVelocity
		p.Grounded = false
		p.IsBoosting = true
		p.BoostUsedMS = 0
		s.emit(Event{Kind: EvJump})
		return true
	}
	if s.Dolphins.Value() > 0 && !s.landingImminent() {
		seq := s.Dolphins.Mutate(-1)
		s.emit(Event{Kind: EvConsumeDolphin, Seq: seq})
		p.Dy = JumpVelocity
		p.IsBoosting = true
		p.BoostUsedMS = 0
		s.emit(Event{Kind: EvJump})
		return true
	}
	return false
}

// landingImminent predicts, with the same kinematics as the flight
// wind-down, whether the player touches the nearest platform underneath
// within the lookahead horizon. It keeps a late buffered ground jump from
// silently burning a limited dolphin charge.
func (s *State) landingImminent() bool {
	p := &s.Player
	plat := s.platformBelow()
	if plat == nil {
		return false
	}
	d := plat.Top() - p.Bottom()
	if d < 0 {
		return false
	}
	// frames t solving d = dy*t + 0.5*g*t^2
	disc := p.Dy*p.Dy + 2*Gravity*d
	if disc < 0 {
		return false
	}
	t := (-p.Dy + math.Sqrt(disc)) / Gravity
	return t >= 0 && t <= DolphinLookaheadFrames
}

// ApplyDolphinResult reconciles a consume/import response from the server.
// ok=false rolls the optimistic decrement back; either way the count only
// lands if the response is not stale.
func (s *State) ApplyDolphinResult(seq uint64, ok bool, serverCount int) {
	if ok {
		s.Dolphins.Apply(seq, serverCount)
	} else {
		s.Dolphins.Rollback(seq, -1)
	}
}

func (s *State) recomputeScore() {
	s.Score = int(s.Distance / ScoreDivisor)
	if lv := s.Score/ScorePerLevel + 1; lv > s.Level {
		s.Level = lv
	}
}
