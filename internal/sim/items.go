package sim

import "github.com/solarlune/resolv"

var tagPlayer = resolv.NewTag("player")

func (s *State) initSpace() {
	s.space = resolv.NewSpace(int(ViewportW), int(ViewportH), 64, 64)
	s.playerShape = resolv.NewRectangleFromTopLeft(s.Player.X, s.Player.Y, PlayerW, PlayerH)
	s.playerShape.Tags().Set(tagPlayer)
	s.space.Add(s.playerShape)
}

func (s *State) addItem(it *Item) {
	it.shape = resolv.NewRectangleFromTopLeft(it.X, it.Y, it.W, it.H)
	s.space.Add(it.shape)
	s.Items = append(s.Items, it)
}

func (s *State) removeItemShape(it *Item) {
	if it.shape != nil {
		s.space.Remove(it.shape)
		it.shape = nil
	}
}

// stepItems scrolls and animates every item, culls the ones out of frame
// and resolves player overlap. At most one effect fires per item and the
// item is removed, except a freshly defeated urchin which stays around as
// a falling leftover until it scrolls or drops out of frame.
func (s *State) stepItems(dt float64) {
	eff := s.EffectiveSpeed()
	p := &s.Player
	s.playerShape.SetPosition(p.X, p.Y)

	w := 0
	for _, it := range s.Items {
		it.X -= eff

		switch {
		case it.Type == ItemUrchin && it.IsDead:
			it.Rotation += UrchinSpinDead * dt
			it.Dy += Gravity
			it.Y += it.Dy
			if !it.bounced {
				for _, pl := range s.Platforms {
					if it.X+it.W > pl.X && it.X < pl.X+pl.W && it.Y+it.H >= pl.Top() && it.Dy > 0 {
						it.Dy *= UrchinBounceDamp
						it.bounced = true
						break
					}
				}
			}
		case it.Type == ItemUrchin:
			it.Rotation += UrchinSpinAlive * dt
		}

		if it.X+it.W < -CullMargin || it.X > ViewportW+400 || it.Y > ViewportH+CullMargin {
			s.removeItemShape(it)
			continue
		}

		if !it.IsDead && it.shape != nil {
			it.shape.SetPosition(it.X, it.Y)
			hit := false
			it.shape.IntersectionTest(resolv.IntersectionTestSettings{
				TestAgainst: it.shape.SelectTouchingCells(0).FilterShapes().ByTags(tagPlayer),
				OnIntersect: func(set resolv.IntersectionSet) bool {
					hit = true
					return false
				},
			})
			if hit {
				keep := s.collectItem(it)
				if !keep {
					s.removeItemShape(it)
					continue
				}
			}
		}

		s.Items[w] = it
		w++
	}
	s.Items = s.Items[:w]
}

// collectItem applies the item's effect. Returns true if the item should
// stay in the world (defeated urchin leftover), false to remove it.
func (s *State) collectItem(it *Item) bool {
	switch it.Type {
	case ItemOxygen:
		s.Oxygen = clamp(s.Oxygen+OxygenRestore, 0, OxygenMax)
		s.emit(Event{Kind: EvOxygen})
		s.emit(Event{Kind: EvOxygenCollected})

	case ItemSwordfish:
		s.PowerupMS = SwordfishDurationMS
		s.flightDescend = true
		s.emit(Event{Kind: EvPowerup})

	case ItemTurtleShell:
		s.TurtleShellSaved = true
		s.emit(Event{Kind: EvShell})

	case ItemTubePiece:
		s.TubePieces++
		if s.TubePieces >= TubePiecesPerTube {
			s.completeTube()
		} else {
			s.emit(Event{Kind: EvTubePiece})
		}

	case ItemUrchin:
		if s.PowerupMS > 0 {
			it.IsDead = true
			it.Dy = -4
			s.removeItemShape(it)
			s.emit(Event{Kind: EvUrchinDefeat})
			return true
		}
		s.endRun(TerminalHitHazard)
	}
	it.Collected = true
	return false
}

// completeTube converts a full set of pieces into a rescue charge plus a
// score bonus. The bonus goes through the distance accumulator so score
// keeps its derived, monotonic definition.
func (s *State) completeTube() {
	s.TubePieces = 0
	s.TubeCharges++
	s.Distance += TubeBonusScore * ScoreDivisor
	s.recomputeScore()
	s.emit(Event{Kind: EvTubeComplete})
	s.emit(Event{Kind: EvToast, Text: "Rescue tube complete!"})
}
