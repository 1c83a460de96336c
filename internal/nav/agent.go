package nav

import (
	"math"

	"pacman-fsm/internal/entities"
	"pacman-fsm/internal/geom"
	tm "pacman-fsm/internal/tilemap"
)

// Agent walks a ghost body along grid paths. MoveToward only sets the
// destination; the body moves when the game loop calls Step.
type Agent struct {
	body     *entities.GhostBody
	grid     *Grid
	speed    float64 // pixels per second
	stopDist float64
	stopped  bool

	dest  *geom.Vec2
	goal  tm.Cell
	exact bool // goal is dest's own cell, so Step finishes on dest itself
	path  []tm.Cell
}

func NewAgent(body *entities.GhostBody, grid *Grid, speed, stoppingDistance float64) *Agent {
	return &Agent{body: body, grid: grid, speed: speed, stopDist: stoppingDistance}
}

func (a *Agent) Position() geom.Vec2 { return a.body.Position() }

func (a *Agent) MoveToward(dst geom.Vec2) {
	a.dest = &dst
	goal := a.grid.CellAt(dst)
	a.exact = a.grid.Walkable(goal)
	if !a.exact {
		goal, _ = a.grid.NearestWalkable(goal, snapRadius)
	}
	if len(a.path) > 0 && goal == a.goal {
		return
	}
	a.goal = goal
	a.replan()
}

func (a *Agent) replan() {
	pos := a.body.Position()
	from := a.grid.CellAt(pos)
	steps := a.grid.Path(from, a.goal)
	if steps == nil {
		a.path = nil
		return
	}
	if len(steps) == 0 && a.exact {
		// Already in the goal cell; Step walks straight to the destination.
		a.path = nil
		return
	}
	if len(steps) > 0 && onLine(pos, a.grid.Center(steps[0])) {
		a.path = steps
		return
	}
	// Head for the centre of the current cell first so turns stay on the grid lines.
	a.path = append([]tm.Cell{from}, steps...)
}

func onLine(a, b geom.Vec2) bool {
	return math.Abs(a.X-b.X) < 1e-6 || math.Abs(a.Y-b.Y) < 1e-6
}

// Step advances the body along the current path by speed*dt pixels. Once the
// path is used up it closes the remaining gap to the destination point.
func (a *Agent) Step(dt float64) {
	if a.stopped || dt <= 0 {
		return
	}
	budget := a.speed * dt
	pos := a.body.Position()
	for budget > 0 && len(a.path) > 0 {
		next := a.path[0]
		target := a.grid.Center(next)
		if len(a.path) == 1 && a.exact && next == a.goal && onLine(pos, *a.dest) {
			target = *a.dest
		}
		if cur := a.grid.CellAt(pos); abs(next.X-cur.X) > 1 {
			// tunnel
			pos = target
			a.path = a.path[1:]
			continue
		}
		d := geom.Distance(pos, target)
		if d <= budget {
			pos = target
			budget -= d
			a.path = a.path[1:]
			continue
		}
		pos = pos.Add(target.Sub(pos).Normalized().Scale(budget))
		budget = 0
	}
	if budget > 0 && len(a.path) == 0 && a.exact && a.dest != nil && a.grid.CellAt(pos) == a.goal {
		if d := geom.Distance(pos, *a.dest); d <= budget {
			pos = *a.dest
		} else {
			pos = pos.Add(a.dest.Sub(pos).Normalized().Scale(budget))
		}
	}
	a.body.MoveTo(pos)
}

func (a *Agent) StoppingDistance() float64 { return a.stopDist }

func (a *Agent) SamplePoint(near geom.Vec2, radius float64) (geom.Vec2, bool) {
	return a.grid.SamplePoint(near, radius)
}

func (a *Agent) Speed() float64     { return a.speed }
func (a *Agent) SetSpeed(v float64) { a.speed = v }
func (a *Agent) Stop()              { a.stopped = true }
func (a *Agent) Resume()            { a.stopped = false }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
