package main

import (
	"log"
	"os"

	_ "image/png"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

var (
	imgPlayer    *ebiten.Image
	imgPlatform  *ebiten.Image
	imgQuicksand *ebiten.Image
	imgOxygen    *ebiten.Image
	imgSwordfish *ebiten.Image
	imgUrchin    *ebiten.Image
	imgShell     *ebiten.Image
	imgTube      *ebiten.Image // 4-frame strip indexed by piece variant
	imgTurtle    *ebiten.Image // quicksand rescuer
	imgLifeguard *ebiten.Image // tube rescuer
	imgBackdrop  *ebiten.Image

	hudFont   font.Face
	titleFont font.Face
)

// loadAssets pulls in whatever sprites exist. A missing or still-loading
// image leaves a nil slot and the renderer draws a flat placeholder shape
// instead, so art never stalls the game.
func loadAssets() {
	imgPlayer = loadImage("assets/submarine.png")
	imgPlatform = loadImage("assets/seabed.png")
	imgQuicksand = loadImage("assets/quicksand.png")
	imgOxygen = loadImage("assets/oxygen.png")
	imgSwordfish = loadImage("assets/swordfish.png")
	imgUrchin = loadImage("assets/urchin.png")
	imgShell = loadImage("assets/shell.png")
	imgTube = loadImage("assets/tube_pieces.png")
	imgTurtle = loadImage("assets/turtle.png")
	imgLifeguard = loadImage("assets/lifeguard.png")
	imgBackdrop = loadImage("assets/backdrop.png")

	hudFont = loadFont("assets/font.ttf", 22)
	titleFont = loadFont("assets/font.ttf", 40)
}

func loadImage(path string) *ebiten.Image {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		log.Printf("no image %s, using placeholder", path)
		return nil
	}
	return img
}

func loadFont(path string, size float64) font.Face {
	ttfBytes, err := os.ReadFile(path)
	if err != nil {
		return basicfont.Face7x13
	}
	tt, err := opentype.Parse(ttfBytes)
	if err != nil {
		log.Println("bad font, using builtin:", err)
		return basicfont.Face7x13
	}
	const dpi = 72
	face, err := opentype.NewFace(tt, &opentype.FaceOptions{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}
