package sim

import "testing"

func TestOxygenDepletionEndsRun(t *testing.T) {
	s := newTestState()
	s.Platforms[0].W = 1e9 // endless ground, nothing to fall into

	lastScore, lastLevel := s.Score, s.Level
	for i := 0; i < 2000 && s.Phase == PhasePlaying; i++ {
		s.Step(1.0 / 60.0)
		if s.Oxygen < 0 || s.Oxygen > OxygenMax {
			t.Fatalf("frame %d: oxygen %f out of [0, %f]", i, s.Oxygen, OxygenMax)
		}
		if s.Score < lastScore {
			t.Fatalf("frame %d: score decreased %d -> %d", i, lastScore, s.Score)
		}
		if s.Level < lastLevel {
			t.Fatalf("frame %d: level decreased %d -> %d", i, lastLevel, s.Level)
		}
		lastScore, lastLevel = s.Score, s.Level
	}

	if s.Phase == PhasePlaying {
		t.Fatal("run still going after oxygen should have run out")
	}
	if s.Terminal != TerminalDrowned {
		t.Fatalf("terminal = %v, want drowned", s.Terminal)
	}
	if s.Oxygen != 0 {
		t.Fatalf("oxygen at game over = %f, want 0", s.Oxygen)
	}
}

func TestQuicksandSinkBoundary(t *testing.T) {
	s := newTestState()
	qs := &Platform{X: 60, Y: GroundY, W: 300, H: PlatformHeight, Type: PlatformQuicksand}
	s.Platforms = []*Platform{qs}
	s.Player.Dy = 0

	s.resolveGroundCollision(0.499)
	if qs.Sinking {
		t.Fatal("platform sinking at 499ms of contact")
	}
	s.resolveGroundCollision(0.001)
	if !qs.Sinking {
		t.Fatal("platform not sinking at 500ms of contact")
	}

	s.resolveGroundCollision(1.0 / 60.0)
	if !s.Player.IsTrapped {
		t.Fatal("player not trapped on a sinking platform")
	}
}

func TestGroundJump(t *testing.T) {
	s := newTestState()
	s.PressJump()

	p := &s.Player
	if p.Dy != JumpVelocity {
		t.Fatalf("dy after jump = %f, want %f", p.Dy, JumpVelocity)
	}
	if p.Grounded || !p.IsBoosting {
		t.Fatalf("grounded=%v boosting=%v after jump, want airborne and boosting", p.Grounded, p.IsBoosting)
	}
	found := false
	for _, e := range s.DrainEvents() {
		if e.Kind == EvJump {
			found = true
		}
	}
	if !found {
		t.Fatal("no jump sound event emitted")
	}
}

func TestBufferedJumpFiresOnLanding(t *testing.T) {
	s := newTestState()
	p := &s.Player
	p.Grounded = false
	p.Y = GroundY - PlayerH - 40
	p.Dy = 6

	s.PressJump() // too early, should buffer
	if p.Dy != 6 {
		t.Fatalf("airborne press changed dy to %f", p.Dy)
	}

	jumped := false
	for i := 0; i < 10; i++ {
		s.Step(1.0 / 60.0)
		if p.Dy == JumpVelocity {
			jumped = true
			break
		}
	}
	if !jumped {
		t.Fatal("buffered jump never fired on landing")
	}
}

func TestDolphinDoubleJump(t *testing.T) {
	s := newTestState()
	s.Dolphins.Set(2)
	p := &s.Player
	p.Grounded = false
	p.Y = 100 // far above the ground, no landing imminent
	p.Dy = 0

	s.PressJump()
	if p.Dy != JumpVelocity {
		t.Fatalf("dy = %f, want dolphin jump %f", p.Dy, JumpVelocity)
	}
	if s.Dolphins.Value() != 1 {
		t.Fatalf("dolphin count = %d, want optimistic 1", s.Dolphins.Value())
	}

	var seq uint64
	for _, e := range s.DrainEvents() {
		if e.Kind == EvConsumeDolphin {
			seq = e.Seq
		}
	}
	if seq == 0 {
		t.Fatal("no consume request emitted")
	}

	// a rejected consume rolls the optimistic decrement back
	s.ApplyDolphinResult(seq, false, 0)
	if s.Dolphins.Value() != 2 {
		t.Fatalf("dolphin count after rejection = %d, want 2", s.Dolphins.Value())
	}
}

func TestDolphinGuardSkipsImminentLanding(t *testing.T) {
	s := newTestState()
	s.Dolphins.Set(2)
	p := &s.Player
	p.Grounded = false
	p.Y = GroundY - PlayerH - 3
	p.Dy = 5

	s.PressJump()
	if s.Dolphins.Value() != 2 {
		t.Fatalf("dolphin consumed with landing imminent, count = %d", s.Dolphins.Value())
	}
	if p.Dy != 5 {
		t.Fatalf("dy = %f, want unchanged 5", p.Dy)
	}
	if s.jumpBufferT <= 0 {
		t.Fatal("late press not buffered for the landing")
	}
}

func TestFallUsesTubeCharge(t *testing.T) {
	s := newTestState()
	s.TubeCharges = 1
	s.Player.Grounded = false
	s.Player.Y = ViewportH + 10

	s.Step(1.0 / 60.0)
	if s.Mode != ModeRescueTube {
		t.Fatalf("mode = %v, want tube rescue", s.Mode)
	}
	if s.TubeCharges != 0 {
		t.Fatalf("tube charges = %d, want consumed to 0", s.TubeCharges)
	}
	if s.Phase != PhasePlaying {
		t.Fatalf("phase = %v, want run still alive", s.Phase)
	}
}

func TestFallWithoutChargeEndsRun(t *testing.T) {
	s := newTestState()
	s.Player.Grounded = false
	s.Player.Y = ViewportH + 10

	s.Step(1.0 / 60.0)
	if s.Terminal != TerminalFell {
		t.Fatalf("terminal = %v, want fell", s.Terminal)
	}
	if s.Phase == PhasePlaying {
		t.Fatal("run still alive after falling with no rescue charge")
	}
}

func TestTrappedPlayerCannotJump(t *testing.T) {
	s := newTestState()
	s.Player.IsTrapped = true
	s.PressJump()
	if s.Player.Dy != 0 {
		t.Fatalf("trapped player jumped, dy = %f", s.Player.Dy)
	}
	for _, e := range s.DrainEvents() {
		if e.Kind == EvJump {
			t.Fatal("jump sound emitted for a trapped player")
		}
	}
}

func TestSpeedRampIsClampedAndMonotonic(t *testing.T) {
	s := newTestState()
	s.Platforms[0].W = 1e9
	last := s.Speed
	for i := 0; i < 600; i++ {
		s.Step(1.0 / 60.0)
		if s.Speed < last {
			t.Fatalf("frame %d: speed decreased %f -> %f", i, last, s.Speed)
		}
		if s.Speed > MaxSpeed {
			t.Fatalf("frame %d: speed %f above cap %f", i, s.Speed, MaxSpeed)
		}
		last = s.Speed
	}
}

func TestFlightModeHoldsAltitude(t *testing.T) {
	s := newTestState()
	s.Platforms[0].W = 1e9
	s.PowerupMS = 2000
	s.Player.Grounded = false
	s.Player.Y = 200
	s.Player.Rotation = 45

	s.Step(1.0 / 60.0)
	p := &s.Player
	if p.Dy != 0 {
		t.Fatalf("dy in flight = %f, want 0", p.Dy)
	}
	if p.Rotation != 0 {
		t.Fatalf("rotation in flight = %f, want 0", p.Rotation)
	}
	if p.Y != 200 {
		t.Fatalf("y in flight = %f, want held at 200", p.Y)
	}
}
