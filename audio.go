package main

import (
	"bytes"
	"log"
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
)

const sampleRate = 44000

var (
	audioContext *audio.Context
	musicPlayer  *audio.Player

	sndJump         *audio.Player
	sndLand         *audio.Player
	sndOxygen       *audio.Player
	sndPowerup      *audio.Player
	sndShell        *audio.Player
	sndTubePiece    *audio.Player
	sndTubeComplete *audio.Player
	sndUrchinDead   *audio.Player
	sndDeath        *audio.Player
	sndRescue       *audio.Player
	sndTick         *audio.Player
)

var muted bool

func loadAudio() {
	muted = os.Getenv("MUTE") == "1"
	audioContext = audio.NewContext(sampleRate)

	sndJump = loadSound("assets/sounds/jump.mp3", 880, 0.08)
	sndLand = loadSound("assets/sounds/land.mp3", 330, 0.05)
	sndOxygen = loadSound("assets/sounds/oxygen.mp3", 1200, 0.1)
	sndPowerup = loadSound("assets/sounds/powerup.mp3", 660, 0.25)
	sndShell = loadSound("assets/sounds/shell.mp3", 520, 0.15)
	sndTubePiece = loadSound("assets/sounds/tube_piece.mp3", 740, 0.1)
	sndTubeComplete = loadSound("assets/sounds/tube_complete.mp3", 980, 0.3)
	sndUrchinDead = loadSound("assets/sounds/urchin_pop.mp3", 200, 0.12)
	sndDeath = loadSound("assets/sounds/death.mp3", 110, 0.5)
	sndRescue = loadSound("assets/sounds/rescue.mp3", 1400, 0.2)
	sndTick = loadSound("assets/sounds/tick.mp3", 1000, 0.06)
}

// loadSound prefers the mp3 asset and falls back to a synthesized beep so
// the game is playable without an asset bundle.
func loadSound(path string, beepFreq, beepDur float64) *audio.Player {
	if data, err := os.ReadFile(path); err == nil {
		stream, err := mp3.Decode(audioContext, bytes.NewReader(data))
		if err == nil {
			p, err := audio.NewPlayer(audioContext, stream)
			if err == nil {
				return p
			}
		}
		log.Printf("bad sound %s, using beep: %v", path, err)
	}
	return newBeep(beepFreq, beepDur)
}

// tiny wrapper so bytes.Reader acts like a closable stream
type readSeekNopCloser struct{ *bytes.Reader }

func (r *readSeekNopCloser) Close() error { return nil }

func newBeep(freq, durSec float64) *audio.Player {
	n := int(float64(sampleRate) * durSec)
	pcm := make([]byte, n*4) // 16-bit stereo
	amp := 0.3
	for i := 0; i < n; i++ {
		v := math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate))
		s := int16(v * amp * 32767)
		pcm[4*i] = byte(s)
		pcm[4*i+1] = byte(s >> 8)
		pcm[4*i+2] = byte(s)
		pcm[4*i+3] = byte(s >> 8)
	}
	r := &readSeekNopCloser{bytes.NewReader(pcm)}
	p, err := audio.NewPlayer(audioContext, r)
	if err != nil {
		log.Println("beep synth failed:", err)
		return nil
	}
	return p
}

func playSFX(p *audio.Player) {
	if p == nil || muted {
		return
	}
	_ = p.Rewind()
	p.Play()
}

func startMusic() {
	if muted {
		return
	}
	if musicPlayer != nil {
		if !musicPlayer.IsPlaying() {
			musicPlayer.Play()
		}
		return
	}
	data, err := os.ReadFile("assets/sounds/theme.mp3")
	if err != nil {
		return
	}
	stream, err := mp3.DecodeWithoutResampling(bytes.NewReader(data))
	if err != nil {
		log.Println("bad music:", err)
		return
	}
	musicPlayer, err = audio.NewPlayer(audioContext, stream)
	if err != nil {
		log.Println("music player:", err)
		return
	}
	musicPlayer.Play()
}
