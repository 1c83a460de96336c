// Package nav moves ghosts around the maze: shortest paths over walkable cells
// and an agent that follows them at a fixed speed.
package nav

import (
	"math"

	"pacman-fsm/internal/entities"
	"pacman-fsm/internal/geom"
	tm "pacman-fsm/internal/tilemap"
)

// snapRadius bounds the search for an open cell around an unwalkable destination.
const snapRadius = 6

type Grid struct {
	m *tm.TileMap
}

func NewGrid(m *tm.TileMap) *Grid { return &Grid{m: m} }

func (g *Grid) Center(c tm.Cell) geom.Vec2 { return g.m.CellCenter(c.X, c.Y) }

func (g *Grid) CellAt(p geom.Vec2) tm.Cell {
	x, y := g.m.CellAt(p)
	return tm.Cell{X: x, Y: y}
}

func (g *Grid) Walkable(c tm.Cell) bool { return g.m.IsWalkable(c.X, c.Y) }

// neighbors lists open cells next to c. Leaving the map sideways comes back on
// the other edge, which is how the tunnel works.
func (g *Grid) neighbors(c tm.Cell) []tm.Cell {
	out := make([]tm.Cell, 0, 4)
	for _, d := range []entities.Direction{entities.DirUp, entities.DirLeft, entities.DirDown, entities.DirRight} {
		dx, dy := entities.DirDelta(d)
		n := tm.Cell{X: c.X + dx, Y: c.Y + dy}
		if n.X < 0 {
			n.X = g.m.Width - 1
		}
		if n.X >= g.m.Width {
			n.X = 0
		}
		if g.Walkable(n) {
			out = append(out, n)
		}
	}
	return out
}

// Path returns the cells to walk from one cell to another, excluding the start.
// It is empty when already there and nil when the goal cannot be reached.
func (g *Grid) Path(from, to tm.Cell) []tm.Cell {
	if from == to {
		return []tm.Cell{}
	}
	if !g.Walkable(to) {
		return nil
	}
	parent := map[tm.Cell]tm.Cell{from: from}
	queue := []tm.Cell{from}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, n := range g.neighbors(c) {
			if _, seen := parent[n]; seen {
				continue
			}
			parent[n] = c
			if n == to {
				return unwind(parent, from, to)
			}
			queue = append(queue, n)
		}
	}
	return nil
}

func unwind(parent map[tm.Cell]tm.Cell, from, to tm.Cell) []tm.Cell {
	var rev []tm.Cell
	for c := to; c != from; c = parent[c] {
		rev = append(rev, c)
	}
	path := make([]tm.Cell, len(rev))
	for i, c := range rev {
		path[len(rev)-1-i] = c
	}
	return path
}

// NearestWalkable returns c itself if open, otherwise the first open cell found
// ring by ring out to maxR.
func (g *Grid) NearestWalkable(c tm.Cell, maxR int) (tm.Cell, bool) {
	if g.Walkable(c) {
		return c, true
	}
	for r := 1; r <= maxR; r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				n := tm.Cell{X: c.X + dx, Y: c.Y + dy}
				if g.Walkable(n) {
					return n, true
				}
			}
		}
	}
	return c, false
}

// SamplePoint finds the walkable cell centre closest to near, no farther than radius.
func (g *Grid) SamplePoint(near geom.Vec2, radius float64) (geom.Vec2, bool) {
	if radius < 0 {
		return near, false
	}
	origin := g.CellAt(near)
	r := int(math.Ceil(radius/float64(g.m.TileSize))) + 1
	best, bestDist, found := near, math.Inf(1), false
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			c := tm.Cell{X: origin.X + dx, Y: origin.Y + dy}
			if !g.Walkable(c) {
				continue
			}
			p := g.Center(c)
			if d := geom.Distance(near, p); d <= radius && d < bestDist {
				best, bestDist, found = p, d, true
			}
		}
	}
	return best, found
}
