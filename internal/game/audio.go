package game

import (
	"bytes"
	"encoding/binary"
	"log"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"

	"pacman-fsm/internal/config"
)

const sampleRate = 44100

type sound int

const (
	soundPellet sound = iota
	soundPowerPellet
	soundBonusItem
	soundGhostEaten
	soundDeath
	numSounds
)

// soundFiles names each effect's WAV file and the beep played in its place
// when the file is missing.
var soundFiles = [numSounds]struct {
	file       string
	durationMs int
	freq       float64
}{
	soundPellet:      {"pellet.wav", 60, 880},
	soundPowerPellet: {"power.wav", 150, 660},
	soundBonusItem:   {"bonus.wav", 250, 1320},
	soundGhostEaten:  {"ghost.wav", 200, 440},
	soundDeath:       {"death.wav", 400, 220},
}

// ebiten allows a single audio context per process.
var (
	audioOnce sync.Once
	audioCtx  *audio.Context
)

// AudioManager plays the sound effects for pickups, eaten ghosts and deaths.
// Without a context every Play call is a no-op.
type AudioManager struct {
	ctx   *audio.Context
	clips [numSounds][]byte
}

func NewAudioManager(cfg config.AudioConfig) *AudioManager {
	am := &AudioManager{}
	if cfg.Enabled {
		audioOnce.Do(func() { audioCtx = audio.NewContext(sampleRate) })
		am.ctx = audioCtx
	} else {
		log.Printf("[Audio] Sound effects disabled")
	}
	for i, f := range soundFiles {
		am.clips[i] = loadOrBeep(cfg.Dir, f.file, f.durationMs, f.freq)
	}
	return am
}

func loadOrBeep(dir, file string, durationMs int, freq float64) []byte {
	b, err := os.ReadFile(filepath.Join(dir, file))
	if err != nil || len(b) == 0 {
		return synthBeepWAV(sampleRate, durationMs, freq)
	}
	return b
}

func (am *AudioManager) play(s sound) {
	if am.ctx == nil {
		return
	}
	// A fresh decoder per call lets effects overlap.
	stream, err := wav.DecodeWithSampleRate(sampleRate, bytes.NewReader(am.clips[s]))
	if err != nil {
		log.Printf("[Audio] Error: failed to decode sound %d: %v", s, err)
		return
	}
	p, err := am.ctx.NewPlayer(stream)
	if err != nil {
		return
	}
	p.Play()
}

func (am *AudioManager) PlayPellet()      { am.play(soundPellet) }
func (am *AudioManager) PlayPowerPellet() { am.play(soundPowerPellet) }
func (am *AudioManager) PlayBonusItem()   { am.play(soundBonusItem) }
func (am *AudioManager) PlayGhostEaten()  { am.play(soundGhostEaten) }
func (am *AudioManager) PlayDeath()       { am.play(soundDeath) }

// synthBeepWAV returns a 16-bit mono PCM WAV holding a sine tone.
func synthBeepWAV(rate, durationMs int, freq float64) []byte {
	n := rate * durationMs / 1000
	dataSize := n * 2
	var buf bytes.Buffer
	buf.Grow(44 + dataSize)

	le := binary.LittleEndian
	buf.WriteString("RIFF")
	_ = binary.Write(&buf, le, uint32(36+dataSize))
	buf.WriteString("WAVEfmt ")
	_ = binary.Write(&buf, le, struct {
		ChunkSize     uint32
		Format        uint16
		Channels      uint16
		SampleRate    uint32
		ByteRate      uint32
		BlockAlign    uint16
		BitsPerSample uint16
	}{16, 1, 1, uint32(rate), uint32(rate * 2), 2, 16})
	buf.WriteString("data")
	_ = binary.Write(&buf, le, uint32(dataSize))

	for i := 0; i < n; i++ {
		v := math.Sin(2*math.Pi*freq*float64(i)/float64(rate)) * math.MaxInt16 / 4
		_ = binary.Write(&buf, le, int16(v))
	}
	return buf.Bytes()
}
