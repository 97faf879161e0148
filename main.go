package main

import (
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"

	"github.com/jooddang/submarine-dash-sub000/internal/backend"
	"github.com/jooddang/submarine-dash-sub000/internal/sim"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	var be *backend.Client
	if url := os.Getenv("BACKEND_URL"); url != "" {
		c, err := backend.Dial(url)
		if err != nil {
			log.Printf("backend unreachable (%v), running offline", err)
		} else {
			be = c
		}
	}
	defer be.Close()

	st := sim.New(rand.New(rand.NewSource(time.Now().UnixNano())))
	st.TestMode = os.Getenv("TEST_ITEMS") == "1"

	loadAssets()
	loadAudio()

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Deep Dive Dash")
	if err := ebiten.RunGame(newGame(st, be)); err != nil {
		log.Fatal(err)
	}
}
