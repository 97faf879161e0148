package sim

// StartRun resets every run-scoped piece of state and enters PLAYING.
// Dolphin charges are server-backed inventory and survive across runs;
// shell-use decay is session-scoped difficulty and survives too.
func (s *State) StartRun() {
	s.Phase = PhasePlaying
	s.Mode = ModeNormal
	s.Terminal = TerminalNone
	s.runEndSent = false

	s.Player = Player{
		X:        PlayerStartX,
		Y:        GroundY - PlayerH,
		W:        PlayerW,
		H:        PlayerH,
		Grounded: true,
	}

	s.Platforms = s.Platforms[:0]
	s.Items = s.Items[:0]
	s.initSpace()

	s.Speed = GameSpeedStart
	s.Distance = 0
	s.Score = 0
	s.Level = 1
	s.Oxygen = OxygenMax

	s.JumpHeld = false
	s.jumpBufferT = 0
	s.PowerupMS = 0
	s.flightDescend = false

	s.TubePieces = 0
	s.TubeCharges = 0
	s.TurtleShellSaved = false

	s.QuicksandRescue = Rescue{}
	s.TubeRescue = Rescue{}

	s.elapsed = 0
	s.seedBubbles()
	s.seedInitialWorld()
	if s.TestMode {
		s.seedTestItems()
	}
}

// seedInitialWorld lays a long flat normal run so every game opens with
// safe ground under the player.
func (s *State) seedInitialWorld() {
	s.Platforms = append(s.Platforms, &Platform{
		X:    -TileSize,
		Y:    GroundY,
		W:    ViewportW + 7*TileSize,
		H:    PlatformHeight,
		Type: PlatformNormal,
	})
}

// seedTestItems drops one of each item type onto the opening run.
func (s *State) seedTestItems() {
	types := []ItemType{ItemOxygen, ItemSwordfish, ItemTurtleShell, ItemTubePiece, ItemUrchin}
	for i, t := range types {
		y := GroundY - ItemSize - 10
		if t == ItemUrchin {
			y = GroundY - UrchinAltitude - ItemSize
		}
		s.addItem(&Item{
			Type: t,
			X:    PlayerStartX + 220 + float64(i)*140,
			Y:    y,
			W:    ItemSize,
			H:    ItemSize,
		})
	}
}

// endRun routes a terminal condition into the game-over / name-entry flow.
// The run_end report fires at most once per run no matter how many times a
// terminal condition is re-entered in the same frame.
func (s *State) endRun(reason TerminalReason) {
	if s.Phase != PhasePlaying {
		return
	}
	s.Terminal = reason
	s.emit(Event{Kind: EvDeath})
	if !s.runEndSent {
		s.runEndSent = true
		s.emit(Event{Kind: EvRunEnd, Score: s.Score})
	}
	if s.QualifiesForBoard() {
		s.Phase = PhaseInputName
	} else {
		s.Phase = PhaseGameOver
	}
}

// QualifiesForBoard reports whether the final score earns a top-5 slot on
// the cached leaderboard. A zero score never qualifies.
func (s *State) QualifiesForBoard() bool {
	if s.Score <= 0 {
		return false
	}
	if len(s.Leaderboard) < 5 {
		return true
	}
	return s.Score > s.Leaderboard[4].Score
}

// SetLeaderboard caches a ranked top list fetched from the server.
func (s *State) SetLeaderboard(entries []BoardEntry) {
	s.Leaderboard = entries
}

// FinishNameEntry leaves the name prompt for the game-over screen, after
// the shell has submitted (or abandoned) the score.
func (s *State) FinishNameEntry() {
	if s.Phase == PhaseInputName {
		s.Phase = PhaseGameOver
	}
}

// BackToMenu returns to the title screen.
func (s *State) BackToMenu() {
	if s.Phase == PhaseGameOver || s.Phase == PhaseInputName {
		s.Phase = PhaseMenu
	}
}

// AllocDolphinTag reserves a sequence tag for a server operation that will
// return an authoritative dolphin count without an optimistic delta
// (run-end rewards, legacy import).
func (s *State) AllocDolphinTag() uint64 {
	return s.Dolphins.Mutate(0)
}
