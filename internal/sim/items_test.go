package sim

import "testing"

func TestTubeCompletionGrantsChargeAndBonus(t *testing.T) {
	s := newTestState()
	s.Distance = 1230
	s.recomputeScore()
	before := s.Score
	s.TubePieces = TubePiecesPerTube - 1

	s.collectItem(&Item{Type: ItemTubePiece})

	if s.TubePieces != 0 {
		t.Fatalf("tube pieces = %d, want reset to 0", s.TubePieces)
	}
	if s.TubeCharges != 1 {
		t.Fatalf("tube charges = %d, want 1", s.TubeCharges)
	}
	if s.Score < before+TubeBonusScore {
		t.Fatalf("score = %d, want at least %d", s.Score, before+TubeBonusScore)
	}
}

func TestTubePieceIncrementsProgress(t *testing.T) {
	s := newTestState()
	s.collectItem(&Item{Type: ItemTubePiece})
	if s.TubePieces != 1 || s.TubeCharges != 0 {
		t.Fatalf("pieces=%d charges=%d after one piece, want 1 and 0", s.TubePieces, s.TubeCharges)
	}
}

func TestUrchinDefeatedDuringPowerup(t *testing.T) {
	s := newTestState()
	s.PowerupMS = 1000
	it := &Item{Type: ItemUrchin}

	keep := s.collectItem(it)
	if !keep {
		t.Fatal("defeated urchin removed immediately, want kept for its death animation")
	}
	if !it.IsDead {
		t.Fatal("urchin not marked dead")
	}
	if s.Phase != PhasePlaying {
		t.Fatalf("phase = %v, want run to continue", s.Phase)
	}
}

func TestUrchinLethalWithoutPowerup(t *testing.T) {
	s := newTestState()
	s.collectItem(&Item{Type: ItemUrchin})
	if s.Terminal != TerminalHitHazard {
		t.Fatalf("terminal = %v, want hazard hit", s.Terminal)
	}
	if s.Phase == PhasePlaying {
		t.Fatal("run continued after an unprotected urchin hit")
	}
}

func TestOxygenPickupClampsAndReports(t *testing.T) {
	s := newTestState()
	s.Oxygen = OxygenMax - 10

	s.collectItem(&Item{Type: ItemOxygen})
	if s.Oxygen != OxygenMax {
		t.Fatalf("oxygen = %f, want clamped to %f", s.Oxygen, OxygenMax)
	}

	var sound, mission bool
	for _, e := range s.DrainEvents() {
		switch e.Kind {
		case EvOxygen:
			sound = true
		case EvOxygenCollected:
			mission = true
		}
	}
	if !sound || !mission {
		t.Fatalf("sound=%v mission=%v, want both emitted", sound, mission)
	}
}

func TestShellPickupSetsSingleSlot(t *testing.T) {
	s := newTestState()
	s.collectItem(&Item{Type: ItemTurtleShell})
	if !s.TurtleShellSaved {
		t.Fatal("shell not saved")
	}
}

func TestItemsScrollAndCull(t *testing.T) {
	s := newTestState()
	s.addItem(&Item{Type: ItemOxygen, X: -CullMargin - 40, Y: 100, W: ItemSize, H: ItemSize})
	s.addItem(&Item{Type: ItemOxygen, X: 500, Y: 100, W: ItemSize, H: ItemSize})

	s.stepItems(1.0 / 60.0)
	if len(s.Items) != 1 {
		t.Fatalf("items = %d, want the off-screen one culled", len(s.Items))
	}
	if got := s.Items[0].X; got >= 500 {
		t.Fatalf("item x = %f, want shifted left of 500", got)
	}
}

func TestPlayerOverlapCollects(t *testing.T) {
	s := newTestState()
	s.Oxygen = 50
	p := &s.Player
	s.addItem(&Item{Type: ItemOxygen, X: p.X, Y: p.Y, W: ItemSize, H: ItemSize})

	s.stepItems(1.0 / 60.0)
	if s.Oxygen != 50+OxygenRestore {
		t.Fatalf("oxygen = %f, want pickup applied", s.Oxygen)
	}
	if len(s.Items) != 0 {
		t.Fatalf("items = %d, want consumed item removed", len(s.Items))
	}
}

func TestDeadUrchinFallsAndCulls(t *testing.T) {
	s := newTestState()
	it := &Item{Type: ItemUrchin, X: 400, Y: 100, W: ItemSize, H: ItemSize, IsDead: true, Dy: 2}
	s.addItem(it)

	for i := 0; i < 400 && len(s.Items) > 0; i++ {
		s.stepItems(1.0 / 60.0)
	}
	if len(s.Items) != 0 {
		t.Fatal("dead urchin never culled after falling out of frame")
	}
}
