package game

import (
	"fmt"
	"image/color"
	"log"
	"math/rand"

	"pacman-fsm/internal/config"
	"pacman-fsm/internal/entities"
	"pacman-fsm/internal/event"
	"pacman-fsm/internal/geom"
	"pacman-fsm/internal/ghost"
	"pacman-fsm/internal/nav"
	"pacman-fsm/internal/session"
	tm "pacman-fsm/internal/tilemap"
)

var (
	fleeColor    = color.RGBA{R: 33, G: 33, B: 222, A: 255}
	respawnColor = color.RGBA{R: 230, G: 230, B: 255, A: 160}
)

// soundSink is everything the scene asks the audio layer to play.
type soundSink interface {
	session.Sounds
	entities.DeathSound
}

// ghostUnit ties a ghost brain to the body it steers.
type ghostUnit struct {
	actor    ghost.Actor
	body     *entities.GhostBody
	agent    *nav.Agent
	renderer *materialRenderer
}

// materialRenderer keeps whatever material the ghost last asked for.
type materialRenderer struct {
	material *ghost.Material
}

func (r *materialRenderer) SetActiveMaterial(m *ghost.Material) { r.material = m }

func (r *materialRenderer) color() color.RGBA {
	if r.material == nil {
		return color.RGBA{R: 128, G: 128, B: 128, A: 255}
	}
	return r.material.Color
}

// scoreBoard is the HUD's view of the session score.
type scoreBoard struct {
	score int
}

func (b *scoreBoard) SetScore(score int) { b.score = score }

// bonusItem is the fruit that shows up at each quarter of the maze.
type bonusItem struct {
	pos    geom.Vec2
	active bool
	spawns int
}

func (b *bonusItem) Active() bool { return b.active }

func (b *bonusItem) Spawn(at geom.Vec2) {
	b.pos = at
	b.active = true
	b.spawns++
}

func (b *bonusItem) collect() { b.active = false }

// scene is one playthrough of the maze. Restarting builds a new one.
type scene struct {
	cfg     *config.Config
	tileMap *tm.TileMap
	grid    *nav.Grid
	session *session.Session
	player  *entities.Player
	ghosts  []*ghostUnit
	bonus   *bonusItem
	board   *scoreBoard
	camera  camera

	// outcome is event.Victory or event.GameOver once the session has ended.
	outcome *event.Signal
}

func newScene(cfg *config.Config, sounds soundSink, rng *rand.Rand) (*scene, error) {
	var m *tm.TileMap
	if len(cfg.Maze) > 0 {
		var err error
		if m, err = tm.Parse(cfg.Maze, cfg.TileSize); err != nil {
			return nil, fmt.Errorf("failed to load maze: %w", err)
		}
	} else {
		m = tm.NewDefaultMap(cfg.TileSize)
	}

	s := &scene{
		cfg:     cfg,
		tileMap: m,
		grid:    nav.NewGrid(m),
		bonus:   &bonusItem{},
		board:   &scoreBoard{},
	}
	s.session = session.New(session.Config{
		TotalPellets:     m.CountPellets(),
		PowerUpDuration:  cfg.PowerUpTime,
		GhostSpawnBounds: m.HouseBounds(),
		BonusSpawn:       m.BonusSpawn(),
		EatGhostScore:    cfg.Scores.EatGhost,
	}, session.Sinks{Score: s.board, Sounds: sounds, Bonus: s.bonus})

	spawn := m.Markers.PlayerSpawn
	s.player = entities.NewPlayer(entities.PlayerConfig{
		Lives:          cfg.Player.Lives,
		InvincibleTime: cfg.Player.InvincibleTime,
		Spawn:          m.CellCenter(spawn.X, spawn.Y),
	}, s.session, sounds)

	s.session.Subscribe(event.Victory, func() {
		s.player.Disable()
		s.end(event.Victory)
	})
	s.session.Subscribe(event.GameOver, func() { s.end(event.GameOver) })

	flee := &ghost.Material{Name: "flee", Color: fleeColor}
	respawn := &ghost.Material{Name: "respawn", Color: respawnColor}
	house := m.Markers.House
	for i, gc := range cfg.Ghosts {
		c, err := config.ParseColor(gc.Color)
		if err != nil {
			return nil, fmt.Errorf("ghost %s: %w", gc.Name, err)
		}
		cell := house[i*len(house)/len(cfg.Ghosts)]
		p := m.CellCenter(cell.X, cell.Y)
		u := &ghostUnit{
			body:     &entities.GhostBody{X: p.X, Y: p.Y, Facing: entities.DirUp},
			renderer: &materialRenderer{},
		}
		u.agent = nav.NewAgent(u.body, s.grid, cfg.GhostSpeed, cfg.StoppingDistance)
		u.actor = ghost.New(ghost.Variant(gc.Kind), ghost.Options{
			Name:        gc.Name,
			Agent:       u.agent,
			Target:      s.player,
			Renderer:    u.renderer,
			Coordinator: s.session,
			Materials: ghost.Materials{
				Default: &ghost.Material{Name: gc.Name, Color: c},
				Flee:    flee,
				Respawn: respawn,
			},
		}, ghost.Params{
			Offset:      geom.V(gc.Offset.X, gc.Offset.Y),
			MinInterval: gc.SwitchTime.Min,
			MaxInterval: gc.SwitchTime.Max,
			Rand:        rng,
		})
		s.ghosts = append(s.ghosts, u)
	}
	for _, u := range s.ghosts {
		u.actor.Start()
	}

	s.camera = newCamera(s.player.Position(), cfg.Camera.Speed, float64(cfg.TileSize))
	log.Printf("[Scene] Loaded %dx%d maze with %d pellets and %d ghosts", m.Width, m.Height, m.CountPellets(), len(s.ghosts))
	return s, nil
}

func (s *scene) end(sig event.Signal) {
	if s.outcome == nil {
		s.outcome = &sig
	}
}

// update runs one simulation tick of dt seconds.
func (s *scene) update(dt float64) {
	if s.player.Enabled() {
		s.updatePlayerMovement(dt)
	}
	s.handleTriggers()
	s.session.Update(dt)
	s.player.Update(dt)
	for _, u := range s.ghosts {
		u.actor.Update(dt)
		u.agent.Step(dt)
	}
	s.camera.follow(s.player.Position(), dt)
}

func (s *scene) ended() bool { return s.outcome != nil }
