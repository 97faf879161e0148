package sim

import "math/rand"

// scriptRand feeds predetermined rolls to the generator so spawn decisions
// are exact in tests. Values cycle if the script runs out.
type scriptRand struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (r *scriptRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.5
	}
	v := r.floats[r.fi%len(r.floats)]
	r.fi++
	return v
}

func (r *scriptRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[r.ii%len(r.ints)]
	r.ii++
	if v >= n {
		v = n - 1
	}
	return v
}

// newTestState builds a mid-run state with the player grounded on a single
// long platform, without consuming any RNG.
func newTestState() *State {
	s := New(rand.New(rand.NewSource(7)))
	s.Phase = PhasePlaying
	s.Mode = ModeNormal
	s.Player = Player{
		X:        PlayerStartX,
		Y:        GroundY - PlayerH,
		W:        PlayerW,
		H:        PlayerH,
		Grounded: true,
	}
	s.Speed = GameSpeedStart
	s.Oxygen = OxygenMax
	s.Level = 1
	s.initSpace()
	s.Platforms = []*Platform{{
		X: -TileSize, Y: GroundY, W: ViewportW + 7*TileSize, H: PlatformHeight,
		Type: PlatformNormal,
	}}
	return s
}

func stepFrames(s *State, n int) {
	for i := 0; i < n; i++ {
		s.Step(1.0 / 60.0)
	}
}
