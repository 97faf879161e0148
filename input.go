package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/jooddang/submarine-dash-sub000/internal/sim"
)

// tapSlopPx caps how far a touch may travel and still count as a tap on
// the menu screens.
const tapSlopPx = 16

func (g *Game) pollInput() {
	switch g.st.Phase {
	case sim.PhaseMenu, sim.PhaseGameOver:
		if g.confirmPressed() {
			g.startRun()
		}
	case sim.PhasePlaying:
		g.pollPlayInput()
	case sim.PhaseInputName:
		g.pollNameInput()
	}
	g.trackTouches()
}

func (g *Game) pollPlayInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.st.PressJump()
	}
	g.touchIDs = inpututil.AppendJustPressedTouchIDs(g.touchIDs[:0])
	if len(g.touchIDs) > 0 {
		g.st.PressJump()
	}

	holding := ebiten.IsKeyPressed(ebiten.KeySpace) ||
		ebiten.IsKeyPressed(ebiten.KeyArrowUp) ||
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) ||
		len(ebiten.AppendTouchIDs(nil)) > 0
	g.st.SetJumpHeld(holding)
}

func (g *Game) pollNameInput() {
	g.inputRunes = ebiten.AppendInputChars(g.inputRunes[:0])
	for _, r := range g.inputRunes {
		if len(g.nameInput) < 12 && r >= ' ' {
			g.nameInput = append(g.nameInput, r)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(g.nameInput) > 0 {
		g.nameInput = g.nameInput[:len(g.nameInput)-1]
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.submitScore()
	}
}

// confirmPressed reports a click, a Space/Enter press, or a released touch
// that stayed within the tap slop. Any of them also unlocks audio on the
// first user gesture.
func (g *Game) confirmPressed() bool {
	ok := inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)

	g.touchIDs = inpututil.AppendJustReleasedTouchIDs(g.touchIDs[:0])
	for _, id := range g.touchIDs {
		start, tracked := g.touchStart[id]
		if !tracked {
			ok = true
			continue
		}
		x, y := inpututil.TouchPositionInPreviousTick(id)
		dx, dy := x-start[0], y-start[1]
		if dx*dx+dy*dy <= tapSlopPx*tapSlopPx {
			ok = true
		}
	}
	return ok
}

func (g *Game) trackTouches() {
	g.touchIDs = inpututil.AppendJustPressedTouchIDs(g.touchIDs[:0])
	for _, id := range g.touchIDs {
		x, y := ebiten.TouchPosition(id)
		g.touchStart[id] = [2]int{x, y}
	}
	g.touchIDs = inpututil.AppendJustReleasedTouchIDs(g.touchIDs[:0])
	for _, id := range g.touchIDs {
		delete(g.touchStart, id)
	}
}
