package game

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"pacman-fsm/internal/config"
)

// hudHeight is the strip under the maze that holds the score line.
const hudHeight = 20

type mode int

const (
	modeMenu mode = iota
	modeNameEntry
	modePlaying
	modeLeaderboard
)

type Game struct {
	cfg    *config.Config
	audio  *AudioManager
	scores *HighScoreStore
	rng    *rand.Rand
	scene  *scene

	mode       mode
	playerName string
	submitted  bool
	fullscreen bool
	paused     bool
	overview   bool
	quit       bool
	frames     int

	world *ebiten.Image
}

// New builds the game and its first scene. A nil config means the defaults;
// a nil store keeps high scores in memory only.
func New(cfg *config.Config, scores *HighScoreStore) (*Game, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if scores == nil {
		scores = NewHighScoreStore(nil)
	}
	g := &Game{
		cfg:    cfg,
		audio:  NewAudioManager(cfg.Audio),
		scores: scores,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	s, err := newScene(cfg, g.audio, g.rng)
	if err != nil {
		return nil, err
	}
	g.scene = s
	return g, nil
}

func (g *Game) ScreenWidth() int {
	return g.scene.tileMap.PixelWidth()
}

func (g *Game) ScreenHeight() int {
	return g.scene.tileMap.PixelHeight() + hudHeight
}

// WindowSize scales the logical screen to fit within ~75% of a display of the
// given size.
func (g *Game) WindowSize(displayW, displayH int) (int, int) {
	w, h := g.ScreenWidth(), g.ScreenHeight()
	fit := 0.75
	scale := math.Min(float64(displayW)*fit/float64(w), float64(displayH)*fit/float64(h))
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		scale = 1.0
	}
	return int(float64(w) * scale), int(float64(h) * scale)
}

func (g *Game) Update() error {
	g.frames++
	g.handleInput()
	if g.quit {
		return ebiten.Termination
	}
	if g.mode != modePlaying || g.paused {
		return nil
	}
	g.tick(1.0 / float64(g.cfg.TPS))
	return nil
}

// tick advances the running scene and records the result once it ends.
func (g *Game) tick(dt float64) {
	g.scene.update(dt)
	if g.scene.ended() && !g.submitted {
		g.submitScore()
	}
}

func (g *Game) submitScore() {
	g.submitted = true
	rec := HighScoreRecord{Name: g.displayName(), Score: g.scene.session.Score()}
	if err := g.scores.Submit(rec); err != nil {
		log.Printf("[Game] Error: failed to record high score: %v", err)
	}
}

func (g *Game) displayName() string {
	if g.playerName == "" {
		return "Player"
	}
	return g.playerName
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.ScreenWidth(), g.ScreenHeight()
}

// restart throws the current scene away and builds a fresh one.
func (g *Game) restart() error {
	s, err := newScene(g.cfg, g.audio, g.rng)
	if err != nil {
		return fmt.Errorf("failed to restart: %w", err)
	}
	g.scene = s
	g.submitted = false
	g.paused = false
	g.mode = modePlaying
	return nil
}
