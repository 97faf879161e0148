package sim

import "math"

// NewBubble places a bubble at a random spot with random rise speed and
// wobble. Bubbles are parallax dressing only.
func NewBubble(r Rand) Bubble {
	return Bubble{
		X:     r.Float64() * ViewportW,
		Y:     r.Float64() * ViewportH,
		R:     BubbleMinR + r.Float64()*(BubbleMaxR-BubbleMinR),
		Speed: BubbleMinSpeed + r.Float64()*(BubbleMaxSpeed-BubbleMinSpeed),
		Phase: r.Float64() * 2 * math.Pi,
		Drift: 0.4 + r.Float64()*0.6,
	}
}

func (s *State) seedBubbles() {
	s.Bubbles = s.Bubbles[:0]
	for i := 0; i < BubbleCount; i++ {
		s.Bubbles = append(s.Bubbles, NewBubble(s.Rand))
	}
}

func (s *State) stepBubbles(dt float64) {
	for i := range s.Bubbles {
		b := &s.Bubbles[i]
		b.Y -= b.Speed * dt
		b.X += math.Sin(s.elapsed*2+b.Phase) * BubbleWobble * b.Drift * dt
		if b.Y < -b.R {
			nb := NewBubble(s.Rand)
			nb.Y = ViewportH + nb.R
			*b = nb
		}
	}
}
