// Package ghost implements the ghost finite-state machine: the shared
// enter/update/exit state contract, the five state kinds and the ghost variants
// built on top of them.
package ghost

import (
	"image/color"
	"log"

	"pacman-fsm/internal/event"
	"pacman-fsm/internal/geom"
)

// Agent is the ghost's handle on the pathfinding service.
type Agent interface {
	Position() geom.Vec2
	// MoveToward sets the destination the agent walks to on the following ticks.
	MoveToward(dst geom.Vec2)
	// StoppingDistance is the arrival radius.
	StoppingDistance() float64
	// SamplePoint returns the nearest walkable point to near within radius.
	SamplePoint(near geom.Vec2, radius float64) (geom.Vec2, bool)
	Speed() float64
	SetSpeed(v float64)
	Stop()
	Resume()
}

// Target is the player as seen by a ghost.
type Target interface {
	Position() geom.Vec2
	// ResolveCapture applies a capture and reports whether it was fatal.
	ResolveCapture() bool
}

type Renderer interface {
	SetActiveMaterial(m *Material)
}

// Coordinator is the subset of the session the ghosts depend on.
type Coordinator interface {
	PowerUpActive() bool
	GhostSpawnBounds() geom.Bounds
	Subscribe(sig event.Signal, h event.Handler)
}

// Material is an opaque visual slot; the renderer decides what it looks like.
type Material struct {
	Name  string
	Color color.RGBA
}

type Materials struct {
	Default *Material
	Flee    *Material
	Respawn *Material
}

type Options struct {
	Name        string
	Agent       Agent
	Target      Target
	Renderer    Renderer
	Coordinator Coordinator
	Materials   Materials
}

// Ghost owns exactly one active state at a time. Flee and Respawn are built once
// and reused; Idle and the default state are rebuilt on every entry.
type Ghost struct {
	name      string
	agent     Agent
	target    Target
	renderer  Renderer
	coord     Coordinator
	materials Materials

	newDefault  func(*Ghost) State
	defaultKind StateKind

	flee    *fleeState
	respawn *respawnState
	current State
	started bool
}

func newGhost(opts Options, kind StateKind, newDefault func(*Ghost) State) *Ghost {
	g := &Ghost{
		name:        opts.Name,
		agent:       opts.Agent,
		target:      opts.Target,
		renderer:    opts.Renderer,
		coord:       opts.Coordinator,
		materials:   opts.Materials,
		newDefault:  newDefault,
		defaultKind: kind,
	}
	if g.name == "" {
		g.name = "ghost"
	}
	if g.renderer == nil {
		log.Printf("[Ghost] %s must have a renderer", g.name)
	}
	if g.agent == nil {
		log.Printf("[Ghost] %s must have a navigation agent", g.name)
		g.agent = parkedAgent{}
	}
	if g.target == nil {
		log.Printf("[Ghost] %s: player target not found", g.name)
	}
	if g.coord == nil {
		log.Printf("[Ghost] %s: no session to follow", g.name)
		g.coord = detachedCoordinator{}
	}
	g.flee = &fleeState{ghost: g, material: opts.Materials.Flee}
	g.respawn = &respawnState{ghost: g, material: opts.Materials.Respawn}
	return g
}

// Start subscribes to the session broadcasts and enters the default state.
// Calling it more than once has no effect.
func (g *Ghost) Start() {
	if g.started {
		return
	}
	g.started = true
	g.coord.Subscribe(event.PowerUpStarted, g.triggerFlee)
	g.coord.Subscribe(event.PowerUpEnded, g.triggerDefault)
	g.coord.Subscribe(event.Victory, g.triggerIdle)
	g.coord.Subscribe(event.GameOver, g.triggerIdle)
	g.SetState(g.DefaultState())
}

// Update runs the active state's per-tick behaviour.
func (g *Ghost) Update(dt float64) {
	if g.current != nil {
		g.current.OnUpdate(dt)
	}
}

// SetState leaves the current state and enters s. Requesting the state kind
// that is already active does nothing, so no hooks run twice.
func (g *Ghost) SetState(s State) {
	if s == nil {
		return
	}
	if g.current != nil && g.current.Kind() == s.Kind() {
		return
	}
	if g.current != nil {
		g.current.OnExit()
	}
	g.current = s
	s.OnEnter()
}

// Respawn sends the ghost back to the ghost house.
func (g *Ghost) Respawn() { g.SetState(g.respawn) }

// DefaultState builds a fresh instance of this ghost's default state.
func (g *Ghost) DefaultState() State { return g.newDefault(g) }




// Kind returns the active state's kind, or StateIdle before Start.
func (g *Ghost) Kind() StateKind {
	if g.current == nil {
		return StateIdle
	}
	return g.current.Kind()
}

func (g *Ghost) Respawning() bool { return g.Kind() == StateRespawn }

func (g *Ghost) Name() string { return g.name }

func (g *Ghost) Position() geom.Vec2 { return g.agent.Position() }

// ActiveMaterial is the material matching the current state.
func (g *Ghost) ActiveMaterial() *Material {
	switch g.Kind() {
	case StateFlee:
		if g.materials.Flee != nil {
			return g.materials.Flee
		}
	case StateRespawn:
		if g.materials.Respawn != nil {
			return g.materials.Respawn
		}
	}
	return g.materials.Default
}

func (g *Ghost) triggerFlee() {
	if g.Kind() != StateRespawn {
		g.SetState(g.flee)
	}
}

func (g *Ghost) triggerDefault() {
	if g.Kind() != StateRespawn {
		g.SetState(g.DefaultState())
	}
}

func (g *Ghost) triggerIdle() {
	g.SetState(newIdle(g))
}

func (g *Ghost) setMaterial(m *Material) {
	if g.renderer == nil || m == nil {
		return
	}
	g.renderer.SetActiveMaterial(m)
}

// lockTarget reports whether the ghost has a player to act on and drops to Idle
// when it does not.
func (g *Ghost) lockTarget() bool {
	if g.target != nil {
		return true
	}
	g.SetState(newIdle(g))
	return false
}

// capture resolves a touch on the player and idles the ghost if it ended the game.
func (g *Ghost) capture() bool {
	if g.target.ResolveCapture() {
		g.SetState(newIdle(g))
		return true
	}
	return false
}

// parkedAgent stands in for a missing navigation agent. Its negative arrival
// radius keeps the ghost from ever reaching anything.
type parkedAgent struct{}

func (parkedAgent) Position() geom.Vec2                                     { return geom.Vec2{} }
func (parkedAgent) MoveToward(geom.Vec2)                                    {}
func (parkedAgent) StoppingDistance() float64                               { return -1 }
func (parkedAgent) SamplePoint(near geom.Vec2, _ float64) (geom.Vec2, bool) { return near, false }
func (parkedAgent) Speed() float64                                          { return 0 }
func (parkedAgent) SetSpeed(float64)                                        {}
func (parkedAgent) Stop()                                                   {}
func (parkedAgent) Resume()                                                 {}

type detachedCoordinator struct{}

func (detachedCoordinator) PowerUpActive() bool                   { return false }
func (detachedCoordinator) GhostSpawnBounds() geom.Bounds         { return geom.Bounds{} }
func (detachedCoordinator) Subscribe(event.Signal, event.Handler) {}
