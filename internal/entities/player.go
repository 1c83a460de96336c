package entities

import (
	"log"

	"pacman-fsm/internal/geom"
)

type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

func DirDelta(d Direction) (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// invincibleInactive marks the respawn invincibility timer as not running.
const invincibleInactive = -1.0

// GameEnder is told when the player has no lives left.
type GameEnder interface {
	GameOver()
}

type DeathSound interface {
	PlayDeath()
}

type PlayerConfig struct {
	Lives          int
	InvincibleTime float64 // seconds of immunity after a respawn
	Spawn          geom.Vec2
}

type Player struct {
	X, Y       float64
	CurrentDir Direction
	DesiredDir Direction

	cfg          PlayerConfig
	lives        int
	respawnTimer float64
	enabled      bool
	game         GameEnder
	sound        DeathSound
}

// NewPlayer places the player at its spawn with a full set of lives.
func NewPlayer(cfg PlayerConfig, game GameEnder, sound DeathSound) *Player {
	if game == nil {
		log.Printf("[Player] Error: no session to report game over to")
	}
	if cfg.Lives < 0 {
		cfg.Lives = 0
	}
	return &Player{
		X:            cfg.Spawn.X,
		Y:            cfg.Spawn.Y,
		cfg:          cfg,
		lives:        cfg.Lives,
		respawnTimer: invincibleInactive,
		enabled:      true,
		game:         game,
		sound:        sound,
	}
}

func (p *Player) Position() geom.Vec2 { return geom.V(p.X, p.Y) }

// Update advances the post-respawn invincibility window.
func (p *Player) Update(dt float64) {
	if p.respawnTimer == invincibleInactive {
		return
	}
	p.respawnTimer += dt
	if p.respawnTimer > p.cfg.InvincibleTime {
		p.respawnTimer = invincibleInactive
	}
}

// ResolveCapture handles a ghost touching the player. It returns true only when
// the capture used up the last life and ended the game.
func (p *Player) ResolveCapture() bool {
	if !p.enabled || p.Invincible() {
		return false
	}
	if p.sound != nil {
		p.sound.PlayDeath()
	}
	if p.lives > 0 {
		p.lives--
		p.respawn()
		return false
	}
	p.enabled = false
	if p.game != nil {
		p.game.GameOver()
	}
	return true
}

func (p *Player) respawn() {
	p.X, p.Y = p.cfg.Spawn.X, p.cfg.Spawn.Y
	p.CurrentDir = DirNone
	p.DesiredDir = DirNone
	p.respawnTimer = 0
}

// Disable stops the player from acting, e.g. after victory.
func (p *Player) Disable() { p.enabled = false }

func (p *Player) Enabled() bool { return p.enabled }

func (p *Player) Lives() int { return p.lives }

func (p *Player) MaxLives() int { return p.cfg.Lives }

func (p *Player) Invincible() bool { return p.respawnTimer != invincibleInactive }
