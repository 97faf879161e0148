package sim

import (
	"math"
	"testing"
)

func TestGapRangeRespectsJumpReach(t *testing.T) {
	s := newTestState()
	for _, speed := range []float64{GameSpeedStart, 6.5, 8, 10, MaxSpeed} {
		s.Speed = speed
		for level := 1; level <= 6; level++ {
			minGap, maxGap := s.clampGapTiles(tierForLevel(level))
			if minGap < 1 || minGap > maxGap {
				t.Fatalf("speed %.1f level %d: bad gap range [%d,%d]", speed, level, minGap, maxGap)
			}
			safe := math.Floor((speed*JumpReachFrames - JumpReachSlack) / TileSize)
			if safe < 1 {
				safe = 1
			}
			if float64(maxGap) > safe {
				t.Fatalf("speed %.1f level %d: max gap %d tiles beyond reachable %d",
					speed, level, maxGap, int(safe))
			}
		}
	}
}

func TestGapRangeScenarios(t *testing.T) {
	s := newTestState()

	// tier 1 at start speed: safe max is floor((6*40-60)/50) = 3
	s.Speed = 6
	if minGap, maxGap := s.clampGapTiles(tierForLevel(1)); minGap != 2 || maxGap != 3 {
		t.Fatalf("speed 6 tier 1: range [%d,%d], want [2,3]", minGap, maxGap)
	}

	// faster: safe max rises to 4 but the tier cap stays at 3
	s.Speed = 6.5
	if minGap, maxGap := s.clampGapTiles(tierForLevel(1)); minGap != 2 || maxGap != 3 {
		t.Fatalf("speed 6.5 tier 1: range [%d,%d], want [2,3]", minGap, maxGap)
	}

	// degenerate: a speed so low the tier minimum is unreachable clamps
	// down instead of producing an empty range
	s.Speed = 2
	if minGap, maxGap := s.clampGapTiles(tierForLevel(5)); minGap != 1 || maxGap != 1 {
		t.Fatalf("speed 2 tier 5: range [%d,%d], want clamped [1,1]", minGap, maxGap)
	}
}

func TestGeneratorNeverPlacesUnreachableGap(t *testing.T) {
	s := newTestState()
	s.Speed = 7
	s.Level = 5
	safePx := math.Floor((s.Speed*JumpReachFrames-JumpReachSlack)/TileSize) * TileSize

	s.Platforms = []*Platform{{X: 0, Y: GroundY, W: 700, H: PlatformHeight, Type: PlatformNormal}}
	for i := 0; i < 500; i++ {
		last := s.Platforms[len(s.Platforms)-1]
		before := len(s.Platforms)
		s.stepWorldGen()
		if len(s.Platforms) == before {
			t.Fatalf("iteration %d: generator made no progress", i)
		}
		next := s.Platforms[len(s.Platforms)-1]
		gap := next.X - (last.X + last.W)
		if gap > safePx {
			t.Fatalf("iteration %d: gap %.0f px wider than reachable %.0f", i, gap, safePx)
		}
		// drag the fresh platform back to the spawn edge so the next
		// iteration generates again
		next.X = ViewportW - next.W
		s.Platforms = s.Platforms[len(s.Platforms)-1:]
		s.Items = s.Items[:0]
	}
}

func TestSpawnCascadeUrchinFirst(t *testing.T) {
	s := newTestState()
	s.Score = 400
	s.Platforms = []*Platform{{X: 0, Y: GroundY, W: 700, H: PlatformHeight, Type: PlatformNormal}}
	// rolls: no hole, no quicksand, urchin success
	s.Rand = &scriptRand{floats: []float64{0.99, 0.99, 0.01}, ints: []int{3}}

	s.stepWorldGen()
	if len(s.Items) != 1 {
		t.Fatalf("items spawned = %d, want exactly 1", len(s.Items))
	}
	if s.Items[0].Type != ItemUrchin {
		t.Fatalf("spawned %v, want urchin to win the cascade", s.Items[0].Type)
	}
}

func TestSpawnCascadeSkipsSavedShell(t *testing.T) {
	s := newTestState()
	s.Score = 200 // shell unlocked, urchin not
	s.TurtleShellSaved = true
	s.Platforms = []*Platform{{X: 0, Y: GroundY, W: 700, H: PlatformHeight, Type: PlatformNormal}}
	// rolls: no hole, no quicksand, first cascade roll succeeds
	s.Rand = &scriptRand{floats: []float64{0.99, 0.99, 0.01}, ints: []int{3}}

	s.stepWorldGen()
	if len(s.Items) != 1 || s.Items[0].Type != ItemSwordfish {
		t.Fatalf("want the cascade to fall through to swordfish while a shell is saved, got %+v", s.Items)
	}
}

func TestShellChanceDecaysWithUses(t *testing.T) {
	script := []float64{0.99, 0.99, 0.08, 0.99, 0.99}

	fresh := newTestState()
	fresh.Score = 200
	fresh.Platforms = []*Platform{{X: 0, Y: GroundY, W: 700, H: PlatformHeight, Type: PlatformNormal}}
	fresh.Rand = &scriptRand{floats: script, ints: []int{3}}
	fresh.stepWorldGen()
	if len(fresh.Items) != 1 || fresh.Items[0].Type != ItemTurtleShell {
		t.Fatalf("unused shell at roll 0.08: got %+v, want a shell (chance 0.12)", fresh.Items)
	}

	worn := newTestState()
	worn.Score = 200
	worn.ShellUses = 2 // chance decays to 0.12/(1+1) = 0.06
	worn.Platforms = []*Platform{{X: 0, Y: GroundY, W: 700, H: PlatformHeight, Type: PlatformNormal}}
	worn.Rand = &scriptRand{floats: script, ints: []int{3}}
	worn.stepWorldGen()
	for _, it := range worn.Items {
		if it.Type == ItemTurtleShell {
			t.Fatal("decayed shell chance still spawned a shell at roll 0.08")
		}
	}
}

func TestGapPlatformGetsNoItem(t *testing.T) {
	s := newTestState()
	s.Score = 400
	s.Platforms = []*Platform{{X: 0, Y: GroundY, W: 700, H: PlatformHeight, Type: PlatformNormal}}
	// rolls: hole, then quicksand roll; cascade must not run
	s.Rand = &scriptRand{floats: []float64{0.01, 0.99, 0.01, 0.01}, ints: []int{2, 4}}

	s.stepWorldGen()
	if len(s.Items) != 0 {
		t.Fatalf("items spawned on a post-gap platform: %+v", s.Items)
	}
	if len(s.Platforms) != 2 {
		t.Fatalf("platforms = %d, want 2", len(s.Platforms))
	}
	if gap := s.Platforms[1].X - 700; gap <= 0 {
		t.Fatalf("expected a gap before the new platform, offset %f", gap)
	}
}

func TestQuicksandRoll(t *testing.T) {
	s := newTestState()
	s.Platforms = []*Platform{{X: 0, Y: GroundY, W: 700, H: PlatformHeight, Type: PlatformNormal}}
	// rolls: no hole, quicksand success, cascade all fail
	s.Rand = &scriptRand{floats: []float64{0.99, 0.1, 0.99, 0.99, 0.99}, ints: []int{4}}

	s.stepWorldGen()
	if got := s.Platforms[1].Type; got != PlatformQuicksand {
		t.Fatalf("platform type = %v, want quicksand at roll 0.1", got)
	}
}
