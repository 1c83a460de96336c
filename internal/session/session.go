// Package session holds the per-scene game coordinator: score, pellet progress,
// the power-up countdown and the broadcasts the ghosts and the player react to.
//
// Exactly one Session exists per scene. The scene bootstrap constructs it and hands
// it to every component that needs it; restarting the game builds a new one.
package session

import (
	"log"

	"pacman-fsm/internal/event"
	"pacman-fsm/internal/geom"
)

// PowerUpInactive is the countdown value while no power-up is running.
const PowerUpInactive = -1.0

type PelletKind int

const (
	PelletNormal PelletKind = iota
	PelletPower
	PelletBonus
)

func (k PelletKind) String() string {
	switch k {
	case PelletNormal:
		return "normal"
	case PelletPower:
		return "power"
	case PelletBonus:
		return "bonus"
	default:
		return "unknown"
	}
}

// ScoreDisplay receives every score change. It is write-only from the session's side.
type ScoreDisplay interface {
	SetScore(score int)
}

type Sounds interface {
	PlayPellet()
	PlayPowerPellet()
	PlayBonusItem()
	PlayGhostEaten()
}

// BonusItem is the single collectible that appears at each quarter of the maze.
type BonusItem interface {
	Active() bool
	Spawn(at geom.Vec2)
}

// Respawner is anything that can be sent back to the ghost house.
type Respawner interface {
	Respawn()
}

type Config struct {
	TotalPellets     int
	PowerUpDuration  float64 // seconds
	GhostSpawnBounds geom.Bounds
	BonusSpawn       *geom.Vec2
	EatGhostScore    int
}

// Sinks are the outbound collaborators. Nil members are replaced by no-ops.
type Sinks struct {
	Score  ScoreDisplay
	Sounds Sounds
	Bonus  BonusItem
}

type Session struct {
	cfg   Config
	bus   *event.Bus
	sinks Sinks

	score            int
	collectedPellets int
	powerUpTimer     float64
	finished         bool
	scoringDisabled  bool
}

func New(cfg Config, sinks Sinks) *Session {
	s := &Session{
		cfg:          cfg,
		bus:          event.NewBus(),
		sinks:        sinks,
		powerUpTimer: PowerUpInactive,
	}
	if cfg.TotalPellets <= 0 {
		log.Printf("[Session] Error: maze has no pellets (total=%d); scoring disabled", cfg.TotalPellets)
		s.scoringDisabled = true
	}
	if cfg.PowerUpDuration <= 0 {
		log.Printf("[Session] Warning: non-positive power-up duration %.2fs", cfg.PowerUpDuration)
	}
	if s.sinks.Score == nil {
		log.Printf("[Session] Error: score display has not been assigned")
		s.sinks.Score = nopScore{}
	}
	if s.sinks.Sounds == nil {
		log.Printf("[Session] Error: no sound player attached")
		s.sinks.Sounds = nopSounds{}
	}
	if s.sinks.Bonus == nil {
		log.Printf("[Session] Error: bonus item must be present in the maze")
	}
	if cfg.BonusSpawn == nil {
		log.Printf("[Session] Error: bonus item spawn has not been assigned")
	}
	s.sinks.Score.SetScore(s.score)
	return s
}

// Subscribe registers h for sig. Subscriptions are made once when the scene starts.
func (s *Session) Subscribe(sig event.Signal, h event.Handler) {
	s.bus.Subscribe(sig, h)
}

// PickUpPellet credits a collected item. Normal and power pellets count toward
// the maze ratio; bonus items only add score.
func (s *Session) PickUpPellet(value int, kind PelletKind) {
	if s.finished || s.scoringDisabled {
		return
	}
	s.addScore(value)

	switch kind {
	case PelletPower:
		s.powerUpTimer = 0
		s.sinks.Sounds.PlayPowerPellet()
		s.bus.Publish(event.PowerUpStarted)
	case PelletBonus:
		s.sinks.Sounds.PlayBonusItem()
		return
	default:
		s.sinks.Sounds.PlayPellet()
	}

	s.collectedPellets++
	if s.collectedPellets >= s.cfg.TotalPellets {
		s.finish(event.Victory)
		return
	}
	if s.atQuarter() {
		s.spawnBonus()
	}
}

// atQuarter reports whether collected/total is exactly 0.25, 0.5 or 0.75.
// Integer arithmetic keeps the check exact for any pellet count.
func (s *Session) atQuarter() bool {
	return (s.collectedPellets*4)%s.cfg.TotalPellets == 0
}

func (s *Session) spawnBonus() {
	if s.sinks.Bonus == nil || s.cfg.BonusSpawn == nil {
		return
	}
	if s.sinks.Bonus.Active() {
		return
	}
	s.sinks.Bonus.Spawn(*s.cfg.BonusSpawn)
}

// Update advances the power-up countdown by dt seconds.
func (s *Session) Update(dt float64) {
	if s.finished || s.powerUpTimer == PowerUpInactive {
		return
	}
	s.powerUpTimer += dt
	if s.powerUpTimer > s.cfg.PowerUpDuration {
		s.powerUpTimer = PowerUpInactive
		s.bus.Publish(event.PowerUpEnded)
	}
}

// EatGhost awards the ghost bonus and sends the ghost home.
func (s *Session) EatGhost(g Respawner) {
	if s.finished || g == nil {
		return
	}
	if !s.scoringDisabled {
		s.addScore(s.cfg.EatGhostScore)
	}
	s.sinks.Sounds.PlayGhostEaten()
	g.Respawn()
}

// GameOver ends the session after the player's last life.
func (s *Session) GameOver() {
	if s.finished {
		return
	}
	s.finish(event.GameOver)
}

func (s *Session) finish(sig event.Signal) {
	s.finished = true
	log.Printf("[Session] %s: score=%d pellets=%d/%d", sig, s.score, s.collectedPellets, s.cfg.TotalPellets)
	s.bus.Publish(sig)
}

func (s *Session) addScore(delta int) {
	s.score += delta
	if s.score < 0 {
		s.score = 0
	}
	s.sinks.Score.SetScore(s.score)
}

func (s *Session) Score() int { return s.score }

func (s *Session) Collected() int { return s.collectedPellets }

func (s *Session) Total() int { return s.cfg.TotalPellets }

// PowerUpTimer returns elapsed power-up time or PowerUpInactive.
func (s *Session) PowerUpTimer() float64 { return s.powerUpTimer }

func (s *Session) PowerUpActive() bool { return s.powerUpTimer != PowerUpInactive }

// PowerUpRemaining returns the seconds left on the active power-up, or 0.
func (s *Session) PowerUpRemaining() float64 {
	if !s.PowerUpActive() {
		return 0
	}
	return s.cfg.PowerUpDuration - s.powerUpTimer
}

func (s *Session) GhostSpawnBounds() geom.Bounds { return s.cfg.GhostSpawnBounds }

// Finished reports whether victory or game over has been broadcast.
func (s *Session) Finished() bool { return s.finished }

type nopScore struct{}

func (nopScore) SetScore(int) {}

type nopSounds struct{}

func (nopSounds) PlayPellet()      {}
func (nopSounds) PlayPowerPellet() {}
func (nopSounds) PlayBonusItem()   {}
func (nopSounds) PlayGhostEaten()  {}
