package sim

import "math"

// stepWorldGen appends at most one platform per frame, once the trailing
// platform's right edge comes within the spawn margin of the viewport.
func (s *State) stepWorldGen() {
	if len(s.Platforms) == 0 {
		return
	}
	last := s.Platforms[len(s.Platforms)-1]
	if last.X+last.W > ViewportW+SpawnMargin {
		return
	}

	tier := tierForLevel(s.Level)
	nextX := last.X + last.W

	gapped := false
	if s.Rand.Float64() < tier.HoleChance {
		minGap, maxGap := s.clampGapTiles(tier)
		nextX += float64(randBetween(s.Rand, minGap, maxGap)) * TileSize
		gapped = true
	}

	widthTiles := randBetween(s.Rand, tier.MinPlatTiles, tier.MaxPlatTiles)
	pl := &Platform{
		X:    nextX,
		Y:    GroundY,
		W:    float64(widthTiles) * TileSize,
		H:    PlatformHeight,
		Type: PlatformNormal,
	}
	if s.Rand.Float64() < QuicksandChance {
		// Quicksand directly after a gap landing is intentional risk design.
		pl.Type = PlatformQuicksand
	}
	s.Platforms = append(s.Platforms, pl)

	if !gapped {
		s.rollItemSpawn(pl)
	}
}

// clampGapTiles bounds the tier's gap range by what the player can actually
// clear at the current speed. A collapsed range clamps instead of producing
// an empty interval.
func (s *State) clampGapTiles(tier difficultyTier) (int, int) {
	safeMax := int(math.Floor((s.Speed*JumpReachFrames - JumpReachSlack) / TileSize))
	if safeMax < 1 {
		safeMax = 1
	}
	maxGap := tier.MaxGapTiles
	if maxGap > safeMax {
		maxGap = safeMax
	}
	minGap := tier.MinGapTiles
	if minGap > maxGap {
		minGap = maxGap
	}
	return minGap, maxGap
}

func randBetween(r Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

// spawnRule is one entry of the item priority cascade. Rules run in order
// and the first one whose gate passes and whose roll succeeds places the
// only item for that platform.
type spawnRule struct {
	eligible func(s *State) bool
	chance   func(s *State) float64
	place    func(s *State, pl *Platform)
}

var spawnRules = []spawnRule{
	{
		eligible: func(s *State) bool { return s.Score > UrchinUnlockScore },
		chance:   func(s *State) float64 { return UrchinChance },
		place:    (*State).placeUrchin,
	},
	{
		eligible: func(s *State) bool {
			return s.Score > ShellUnlockScore && !s.TurtleShellSaved && !s.RescueActive()
		},
		chance: func(s *State) float64 {
			return ShellBaseChance / (1 + float64(s.ShellUses)*ShellUseDecay)
		},
		place: (*State).placeShell,
	},
	{
		eligible: func(s *State) bool { return true },
		chance:   func(s *State) float64 { return SwordfishChance },
		place:    (*State).placeSwordfish,
	},
	{
		eligible: func(s *State) bool { return true },
		chance:   func(s *State) float64 { return OxygenTankChance },
		place:    (*State).placeOxygen,
	},
	{
		eligible: func(s *State) bool { return s.Score > TubeUnlockScore && !s.RescueActive() },
		chance:   func(s *State) float64 { return TubePieceChance },
		place:    (*State).placeTubePiece,
	},
}

func (s *State) rollItemSpawn(pl *Platform) {
	for _, rule := range spawnRules {
		if !rule.eligible(s) {
			continue
		}
		if s.Rand.Float64() < rule.chance(s) {
			rule.place(s, pl)
			return
		}
	}
}

func (s *State) placeUrchin(pl *Platform) {
	s.addItem(&Item{
		Type: ItemUrchin,
		X:    pl.X + pl.W/2 - ItemSize/2,
		Y:    pl.Top() - UrchinAltitude - ItemSize,
		W:    ItemSize,
		H:    ItemSize,
	})
}

func (s *State) placeShell(pl *Platform) {
	s.addItem(&Item{
		Type: ItemTurtleShell,
		X:    pl.X + pl.W/2 - ItemSize/2,
		Y:    pl.Top() - ItemSize - 6,
		W:    ItemSize,
		H:    ItemSize,
	})
}

func (s *State) placeSwordfish(pl *Platform) {
	s.addItem(&Item{
		Type: ItemSwordfish,
		X:    pl.X + pl.W/2 - ItemSize/2,
		Y:    pl.Top() - ItemSize - 40,
		W:    ItemSize,
		H:    ItemSize,
	})
}

func (s *State) placeOxygen(pl *Platform) {
	s.addItem(&Item{
		Type: ItemOxygen,
		X:    pl.X + pl.W/2 - ItemSize/2,
		Y:    pl.Top() - ItemSize - 36,
		W:    ItemSize,
		H:    ItemSize,
	})
}

func (s *State) placeTubePiece(pl *Platform) {
	s.addItem(&Item{
		Type:    ItemTubePiece,
		X:       pl.X + pl.W/2 - ItemSize/2,
		Y:       pl.Top() - ItemSize - 6,
		W:       ItemSize,
		H:       ItemSize,
		Variant: s.TubePieces % TubePiecesPerTube,
	})
}
