package ghost

import (
	"log"

	"pacman-fsm/internal/geom"
)

type StateKind int

const (
	StateIdle StateKind = iota
	StateChase
	StateFlank
	StateFlee
	StateRespawn
)

func (k StateKind) String() string {
	switch k {
	case StateIdle:
		return "idle"
	case StateChase:
		return "chase"
	case StateFlank:
		return "flank"
	case StateFlee:
		return "flee"
	case StateRespawn:
		return "respawn"
	default:
		return "unknown"
	}
}

// State is one behaviour of a ghost. OnEnter and OnExit run once per activation,
// OnUpdate once per tick while active.
type State interface {
	Kind() StateKind
	OnEnter()
	OnUpdate(dt float64)
	OnExit()
}

// idleState halts the agent. Nothing inside the machine leaves it; only the
// session broadcasts or a new default request do.
type idleState struct {
	ghost *Ghost
}

func newIdle(g *Ghost) State { return &idleState{ghost: g} }

func (s *idleState) Kind() StateKind { return StateIdle }

func (s *idleState) OnEnter() {
	s.ghost.setMaterial(s.ghost.materials.Default)
	s.ghost.agent.Stop()
}

func (s *idleState) OnUpdate(float64) {}

func (s *idleState) OnExit() {
	s.ghost.agent.Resume()
}

// pursuitState walks toward the player plus a fixed offset and captures the
// player once inside the arrival radius. Chase uses a zero offset.
type pursuitState struct {
	ghost  *Ghost
	kind   StateKind
	offset geom.Vec2
}

func newChase(g *Ghost) State { return &pursuitState{ghost: g, kind: StateChase} }

func newFlank(g *Ghost, offset geom.Vec2) State {
	return &pursuitState{ghost: g, kind: StateFlank, offset: offset}
}

func (s *pursuitState) Kind() StateKind { return s.kind }

func (s *pursuitState) OnEnter() {
	s.ghost.setMaterial(s.ghost.materials.Default)
	s.ghost.lockTarget()
}

func (s *pursuitState) OnUpdate(float64) {
	g := s.ghost
	player := g.target.Position()
	if geom.Distance(g.agent.Position(), player) > g.agent.StoppingDistance() {
		g.agent.MoveToward(player.Add(s.offset))
		return
	}
	g.capture()
}

func (s *pursuitState) OnExit() {}

// fleeState keeps backing away from the player. It only captures the player
// once the power-up has run out while the ghost is still fleeing.
type fleeState struct {
	ghost    *Ghost
	material *Material
}

func (s *fleeState) Kind() StateKind { return StateFlee }

func (s *fleeState) OnEnter() {
	if s.material != nil {
		s.ghost.setMaterial(s.material)
	} else {
		log.Printf("[Ghost] %s has no flee material assigned", s.ghost.name)
	}
	s.ghost.lockTarget()
}

func (s *fleeState) OnUpdate(float64) {
	g := s.ghost
	pos := g.agent.Position()
	player := g.target.Position()
	reach := g.agent.StoppingDistance()

	if !g.coord.PowerUpActive() && geom.Distance(pos, player) < reach {
		if g.capture() {
			return
		}
	}

	// Retreat is recomputed every tick so the ghost reacts to the player turning.
	away := pos.Sub(player).Normalized().Scale(reach * 2)
	if dst, ok := g.agent.SamplePoint(pos.Add(away), reach*2); ok {
		g.agent.MoveToward(dst)
	}
}

func (s *fleeState) OnExit() {}

// respawnState runs back to the ghost house at double speed.
type respawnState struct {
	ghost       *Ghost
	material    *Material
	destination geom.Vec2
}

func (s *respawnState) Kind() StateKind { return StateRespawn }

func (s *respawnState) OnEnter() {
	g := s.ghost
	if s.material != nil {
		g.setMaterial(s.material)
	} else {
		log.Printf("[Ghost] %s has no respawn material assigned", g.name)
	}
	s.destination = g.coord.GhostSpawnBounds().Center
	g.agent.SetSpeed(g.agent.Speed() * 2)
	g.agent.MoveToward(s.destination)
}

func (s *respawnState) OnUpdate(float64) {
	g := s.ghost
	if geom.Distance(g.agent.Position(), s.destination) >= g.agent.StoppingDistance() {
		return
	}
	if g.coord.PowerUpActive() {
		g.SetState(g.flee)
	} else {
		g.SetState(g.DefaultState())
	}
}

// OnExit undoes the doubling from OnEnter. Only one respawn is ever active per
// ghost, so the pair always restores the original speed.
func (s *respawnState) OnExit() {
	g := s.ghost
	g.agent.SetSpeed(g.agent.Speed() / 2)
}
