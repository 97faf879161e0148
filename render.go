package main

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"github.com/jooddang/submarine-dash-sub000/internal/backend"
	"github.com/jooddang/submarine-dash-sub000/internal/sim"
)

const (
	screenWidth  = 800
	screenHeight = 480
)

var (
	colOcean      = color.RGBA{12, 42, 74, 255}
	colOceanDeep  = color.RGBA{6, 24, 48, 255}
	colSand       = color.RGBA{194, 168, 110, 255}
	colQuicksand  = color.RGBA{150, 122, 70, 255}
	colPlayer     = color.RGBA{235, 200, 60, 255}
	colOxygenTank = color.RGBA{90, 200, 250, 255}
	colSwordfish  = color.RGBA{130, 130, 220, 255}
	colUrchin     = color.RGBA{60, 40, 80, 255}
	colShell      = color.RGBA{90, 180, 90, 255}
	colTube       = color.RGBA{240, 110, 110, 255}
	colRescuer    = color.RGBA{240, 240, 240, 255}
	colBubble     = color.RGBA{170, 210, 240, 90}
	colPanel      = color.RGBA{0, 0, 0, 170}
	colBarBack    = color.RGBA{40, 40, 40, 220}
	colBarLow     = color.RGBA{220, 60, 40, 255}
	colBarOK      = color.RGBA{80, 200, 120, 255}
)

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawBackground(screen)
	st := g.st

	switch st.Phase {
	case sim.PhaseMenu:
		g.drawWorld(screen)
		g.drawMenu(screen)
	case sim.PhasePlaying:
		g.drawWorld(screen)
		g.drawHUD(screen)
	case sim.PhaseInputName:
		g.drawWorld(screen)
		g.drawNameEntry(screen)
	case sim.PhaseGameOver:
		g.drawWorld(screen)
		g.drawGameOver(screen)
	}

	g.drawToasts(screen)
}

func (g *Game) drawBackground(screen *ebiten.Image) {
	if imgBackdrop != nil {
		screen.DrawImage(imgBackdrop, &ebiten.DrawImageOptions{})
	} else {
		screen.Fill(colOcean)
		vector.DrawFilledRect(screen, 0, screenHeight/2, screenWidth, screenHeight/2, colOceanDeep, false)
	}
	for i := range g.st.Bubbles {
		b := &g.st.Bubbles[i]
		vector.DrawFilledCircle(screen, float32(b.X), float32(b.Y), float32(b.R), colBubble, false)
	}
}

func (g *Game) drawWorld(screen *ebiten.Image) {
	st := g.st

	for _, p := range st.Platforms {
		g.drawPlatform(screen, p)
	}
	for _, it := range st.Items {
		if !it.Collected {
			g.drawItem(screen, it)
		}
	}
	g.drawPlayer(screen)

	if r := activeRescue(st); r != nil {
		g.drawRescuer(screen, st, r)
	}
}

func activeRescue(st *sim.State) *sim.Rescue {
	switch st.Mode {
	case sim.ModeRescueQuicksand:
		return &st.QuicksandRescue
	case sim.ModeRescueTube:
		return &st.TubeRescue
	}
	return nil
}

func (g *Game) drawPlatform(screen *ebiten.Image, p *sim.Platform) {
	img := imgPlatform
	fill := colSand
	if p.Type == sim.PlatformQuicksand {
		img = imgQuicksand
		fill = colQuicksand
	}
	if img == nil {
		vector.DrawFilledRect(screen, float32(p.X), float32(p.Y), float32(p.W), float32(p.H), fill, false)
		return
	}
	// tile the sprite across the platform width
	tw := float64(img.Bounds().Dx())
	for x := 0.0; x < p.W; x += tw {
		op := &ebiten.DrawImageOptions{}
		w := tw
		if x+tw > p.W {
			w = p.W - x
		}
		src := img.SubImage(imageRect(0, 0, w, float64(img.Bounds().Dy()))).(*ebiten.Image)
		op.GeoM.Translate(p.X+x, p.Y)
		screen.DrawImage(src, op)
	}
}

func (g *Game) drawItem(screen *ebiten.Image, it *sim.Item) {
	var img *ebiten.Image
	var fill color.RGBA
	switch it.Type {
	case sim.ItemOxygen:
		img, fill = imgOxygen, colOxygenTank
	case sim.ItemSwordfish:
		img, fill = imgSwordfish, colSwordfish
	case sim.ItemUrchin:
		img, fill = imgUrchin, colUrchin
	case sim.ItemTurtleShell:
		img, fill = imgShell, colShell
	case sim.ItemTubePiece:
		fill = colTube
		if imgTube != nil {
			fw := float64(imgTube.Bounds().Dx()) / 4
			img = imgTube.SubImage(imageRect(fw*float64(it.Variant), 0, fw, float64(imgTube.Bounds().Dy()))).(*ebiten.Image)
		}
	}
	if img == nil {
		vector.DrawFilledRect(screen, float32(it.X), float32(it.Y), float32(it.W), float32(it.H), fill, false)
		return
	}
	op := &ebiten.DrawImageOptions{}
	drawRotated(op, img, it.X, it.Y, it.W, it.H, it.Rotation)
	screen.DrawImage(img, op)
}

func (g *Game) drawPlayer(screen *ebiten.Image) {
	pl := &g.st.Player
	if imgPlayer == nil {
		vector.DrawFilledRect(screen, float32(pl.X), float32(pl.Y), float32(pl.W), float32(pl.H), colPlayer, false)
		return
	}
	op := &ebiten.DrawImageOptions{}
	drawRotated(op, imgPlayer, pl.X, pl.Y, pl.W, pl.H, pl.Rotation)
	screen.DrawImage(imgPlayer, op)
}

func (g *Game) drawRescuer(screen *ebiten.Image, st *sim.State, r *sim.Rescue) {
	img := imgTurtle
	if st.Mode == sim.ModeRescueTube {
		img = imgLifeguard
	}
	if img == nil {
		vector.DrawFilledRect(screen, float32(r.RescuerX), float32(r.RescuerY), 46, 32, colRescuer, false)
	} else {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(r.RescuerX, r.RescuerY)
		screen.DrawImage(img, op)
	}
	if r.Phase == sim.RescueCountdown {
		if sec := r.CountdownSeconds(); sec > 0 {
			label := fmt.Sprintf("%d", sec)
			drawTextWithOutline(screen, label, titleFont, screenWidth/2-10, screenHeight/2-40, color.White, color.Black)
		}
	}
}

// drawRotated centers a sprite in the entity's box, scales it to fit and
// applies the entity's rotation about its center.
func drawRotated(op *ebiten.DrawImageOptions, img *ebiten.Image, x, y, w, h, deg float64) {
	iw := float64(img.Bounds().Dx())
	ih := float64(img.Bounds().Dy())
	op.GeoM.Translate(-iw/2, -ih/2)
	op.GeoM.Rotate(deg * math.Pi / 180)
	op.GeoM.Scale(w/iw, h/ih)
	op.GeoM.Translate(x+w/2, y+h/2)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	st := g.st

	// oxygen meter
	const barX, barY, barW, barH = 16, 14, 220, 18
	vector.DrawFilledRect(screen, barX-2, barY-2, barW+4, barH+4, colBarBack, false)
	frac := st.Oxygen / sim.OxygenMax
	col := colBarOK
	if frac < 0.3 {
		col = colBarLow
	}
	vector.DrawFilledRect(screen, barX, barY, float32(barW*frac), barH, col, false)
	drawTextWithOutline(screen, "O2", hudFont, barX+barW+8, barY+barH-2, color.White, color.Black)

	drawTextWithOutline(screen, fmt.Sprintf("SCORE %d", st.Score), hudFont, screenWidth-190, 30, color.White, color.Black)
	drawTextWithOutline(screen, fmt.Sprintf("LV %d", st.Level), hudFont, screenWidth-190, 56, color.White, color.Black)

	status := fmt.Sprintf("DOLPHIN x%d  SHELL %s  TUBE %d/%d",
		st.Dolphins.Value(), onOff(st.TurtleShellSaved), st.TubePieces, sim.TubePiecesPerTube)
	drawTextWithOutline(screen, status, hudFont, 16, 62, color.White, color.Black)

	if st.PowerupMS > 0 {
		drawTextWithOutline(screen, fmt.Sprintf("FLIGHT %.1fs", st.PowerupMS/1000), hudFont, 16, 90, colSwordfish, color.Black)
	}
}

func onOff(b bool) string {
	if b {
		return "OK"
	}
	return "--"
}

func (g *Game) drawMenu(screen *ebiten.Image) {
	panel(screen, 120, 60, screenWidth-240, screenHeight-140)
	drawTextWithOutline(screen, "DEEP DIVE DASH", titleFont, 220, 120, color.White, color.Black)
	drawTextWithOutline(screen, "SPACE / TAP TO DIVE", hudFont, 290, 160, color.White, color.Black)
	g.drawBoard(screen, "TOP PILOTS", g.board, 170, 200, 0)
	g.drawBoard(screen, "THIS WEEK", g.weekly, 450, 200, 0)
	if g.be.Offline() {
		drawTextWithOutline(screen, "OFFLINE", hudFont, 16, screenHeight-16, colBarLow, color.Black)
	}
}

func (g *Game) drawNameEntry(screen *ebiten.Image) {
	panel(screen, 160, 120, screenWidth-320, 200)
	drawTextWithOutline(screen, "NEW TOP-5 SCORE!", titleFont, 220, 180, color.White, color.Black)
	drawTextWithOutline(screen, fmt.Sprintf("SCORE %d", g.st.Score), hudFont, 340, 220, color.White, color.Black)
	name := string(g.nameInput) + "_"
	drawTextWithOutline(screen, "NAME: "+name, hudFont, 250, 260, color.White, color.Black)
	drawTextWithOutline(screen, "ENTER TO SUBMIT", hudFont, 290, 296, color.White, color.Black)
}

func (g *Game) drawGameOver(screen *ebiten.Image) {
	panel(screen, 120, 60, screenWidth-240, screenHeight-140)
	drawTextWithOutline(screen, "RUN OVER", titleFont, 290, 120, color.White, color.Black)
	drawTextWithOutline(screen, fmt.Sprintf("SCORE %d   LV %d", g.st.Score, g.st.Level), hudFont, 300, 160, color.White, color.Black)
	g.drawBoard(screen, "TOP PILOTS", g.board, 170, 200, g.highlight)
	g.drawBoard(screen, "THIS WEEK", g.weekly, 450, 200, 0)
	drawTextWithOutline(screen, "SPACE / TAP TO DIVE AGAIN", hudFont, 260, screenHeight-100, color.White, color.Black)
}

func (g *Game) drawBoard(screen *ebiten.Image, title string, entries []backend.BoardEntry, x, y, highlight int) {
	drawTextWithOutline(screen, title, hudFont, x, y, color.White, color.Black)
	row := y + 28
	if len(entries) == 0 {
		drawTextWithOutline(screen, "no scores yet", hudFont, x, row, color.Gray{180}, color.Black)
		return
	}
	for i, e := range entries {
		if i >= 5 {
			break
		}
		col := color.Color(color.White)
		if i+1 == highlight {
			col = colPlayer
		}
		line := fmt.Sprintf("%d. %-10s %6d", i+1, e.Name, e.Score)
		drawTextWithOutline(screen, line, hudFont, x, row, col, color.Black)
		row += 26
	}
}

func imageRect(x, y, w, h float64) image.Rectangle {
	return image.Rect(int(x), int(y), int(x+w), int(y+h))
}

func panel(screen *ebiten.Image, x, y, w, h float32) {
	vector.DrawFilledRect(screen, x, y, w, h, colPanel, false)
}

func (g *Game) drawToasts(screen *ebiten.Image) {
	y := screenHeight - 40
	for i := len(g.toasts) - 1; i >= 0; i-- {
		drawTextWithOutline(screen, g.toasts[i].text, hudFont, 250, y, color.White, color.Black)
		y -= 26
	}
}

func drawTextWithOutline(dst *ebiten.Image, str string, face font.Face, x, y int, textColor, outlineColor color.Color) {
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			text.Draw(dst, str, face, x+dx, y+dy, outlineColor)
		}
	}
	text.Draw(dst, str, face, x, y, textColor)
}
