// Package config loads the game tuning file. Every field is optional; zero
// values are replaced by the built-in defaults before validation.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidValue     = errors.New("invalid value")
	ErrNoGhosts         = errors.New("at least one ghost is required")
	ErrUnknownGhostKind = errors.New("unknown ghost kind")
	ErrBadColor         = errors.New("colour must look like #rrggbb")
)

const (
	KindChaser     = "chaser"
	KindFlanker    = "flanker"
	KindAlternator = "alternator"
)

type Config struct {
	PowerUpTime      float64       `yaml:"powerUpTime"` // seconds
	TileSize         int           `yaml:"tileSize"`
	TPS              int           `yaml:"tps"`
	Maze             []string      `yaml:"maze"` // empty means the built-in maze
	Player           PlayerConfig  `yaml:"player"`
	GhostSpeed       float64       `yaml:"ghostSpeed"` // pixels per second
	StoppingDistance float64       `yaml:"stoppingDistance"`
	Scores           Scores        `yaml:"scores"`
	Ghosts           []GhostConfig `yaml:"ghosts"`
	Camera           CameraConfig  `yaml:"camera"`
	Audio            AudioConfig   `yaml:"audio"`
}

type PlayerConfig struct {
	Lives          int     `yaml:"lives"`
	InvincibleTime float64 `yaml:"invincibleTime"`
	Speed          float64 `yaml:"speed"` // pixels per second
}

type Scores struct {
	Pellet      int `yaml:"pellet"`
	PowerPellet int `yaml:"powerPellet"`
	BonusItem   int `yaml:"bonusItem"`
	EatGhost    int `yaml:"eatGhost"`
}

type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

type GhostConfig struct {
	Name       string `yaml:"name"`
	Kind       string `yaml:"kind"`
	Offset     Point  `yaml:"offset"`     // flanker aim point relative to the player
	SwitchTime Range  `yaml:"switchTime"` // alternator decision interval, seconds
	Color      string `yaml:"color"`
}

type CameraConfig struct {
	Speed float64 `yaml:"speed"`
	Zoom  float64 `yaml:"zoom"` // 1 shows the whole maze
}

// AudioConfig switches sound effects on. Missing files in Dir are replaced
// by synthesized beeps.
type AudioConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads a YAML config file, fills in defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func defaultGhosts() []GhostConfig {
	return []GhostConfig{
		{Name: "Blinky", Kind: KindChaser, Color: "#ff0000"},
		{Name: "Pinky", Kind: KindFlanker, Offset: Point{Y: -64}, Color: "#ffb8de"},
		{Name: "Inky", Kind: KindFlanker, Offset: Point{X: 64}, Color: "#00ffff"},
		{Name: "Clyde", Kind: KindAlternator, SwitchTime: Range{Min: 5, Max: 30}, Color: "#ffb852"},
	}
}

func applyDefaults(cfg *Config) {
	if cfg.PowerUpTime == 0 {
		cfg.PowerUpTime = 10
	}
	if cfg.TileSize == 0 {
		cfg.TileSize = 16
	}
	if cfg.TPS == 0 {
		cfg.TPS = 60
	}
	if cfg.Player.Lives == 0 {
		cfg.Player.Lives = 3
	}
	if cfg.Player.InvincibleTime == 0 {
		cfg.Player.InvincibleTime = 3
	}
	if cfg.Player.Speed == 0 {
		cfg.Player.Speed = 120
	}
	if cfg.GhostSpeed == 0 {
		cfg.GhostSpeed = 100
	}
	if cfg.StoppingDistance == 0 {
		// A little under one tile, so a ghost reaching the player's cell catches it.
		cfg.StoppingDistance = float64(cfg.TileSize) * 0.75
	}
	if cfg.Scores == (Scores{}) {
		cfg.Scores = Scores{Pellet: 1, PowerPellet: 1, BonusItem: 50, EatGhost: 5}
	}
	if len(cfg.Ghosts) == 0 {
		cfg.Ghosts = defaultGhosts()
	}
	for i := range cfg.Ghosts {
		g := &cfg.Ghosts[i]
		if g.Kind == "" {
			g.Kind = KindChaser
		}
		if g.Name == "" {
			g.Name = fmt.Sprintf("ghost-%d", i+1)
		}
		if g.Kind == KindAlternator && g.SwitchTime == (Range{}) {
			g.SwitchTime = Range{Min: 5, Max: 30}
		}
		if g.Color == "" {
			g.Color = "#ff0000"
		}
	}
	if cfg.Camera.Speed == 0 {
		cfg.Camera.Speed = 2
	}
	if cfg.Camera.Zoom == 0 {
		cfg.Camera.Zoom = 1.5
	}
	if cfg.Audio.Dir == "" {
		cfg.Audio.Dir = "assets/sounds"
	}
}

func validate(cfg *Config) error {
	positive := []struct {
		name string
		v    float64
	}{
		{"powerUpTime", cfg.PowerUpTime},
		{"tileSize", float64(cfg.TileSize)},
		{"tps", float64(cfg.TPS)},
		{"player.speed", cfg.Player.Speed},
		{"ghostSpeed", cfg.GhostSpeed},
		{"stoppingDistance", cfg.StoppingDistance},
		{"camera.speed", cfg.Camera.Speed},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return fmt.Errorf("%s must be positive, got %v: %w", p.name, p.v, ErrInvalidValue)
		}
	}
	if cfg.Player.Lives < 0 {
		return fmt.Errorf("player.lives cannot be negative, got %d: %w", cfg.Player.Lives, ErrInvalidValue)
	}
	if cfg.Player.InvincibleTime < 0 {
		return fmt.Errorf("player.invincibleTime cannot be negative: %w", ErrInvalidValue)
	}
	if cfg.Camera.Zoom < 1 {
		return fmt.Errorf("camera.zoom must be at least 1, got %v: %w", cfg.Camera.Zoom, ErrInvalidValue)
	}
	if len(cfg.Ghosts) == 0 {
		return ErrNoGhosts
	}
	for i, g := range cfg.Ghosts {
		switch g.Kind {
		case KindChaser, KindFlanker, KindAlternator:
		default:
			return fmt.Errorf("ghosts[%d] %q: %w %q", i, g.Name, ErrUnknownGhostKind, g.Kind)
		}
		if g.SwitchTime.Min < 0 || g.SwitchTime.Max < g.SwitchTime.Min {
			return fmt.Errorf("ghosts[%d] %q: switchTime must satisfy 0 <= min <= max: %w", i, g.Name, ErrInvalidValue)
		}
		if _, err := ParseColor(g.Color); err != nil {
			return fmt.Errorf("ghosts[%d] %q: %w", i, g.Name, err)
		}
	}
	return nil
}

// ParseColor turns "#rrggbb" into an opaque colour.
func ParseColor(s string) (color.RGBA, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("%q: %w", s, ErrBadColor)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%q: %w", s, ErrBadColor)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
