package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pacman-fsm/internal/entities"
	"pacman-fsm/internal/geom"
	"pacman-fsm/internal/ghost"
	tm "pacman-fsm/internal/tilemap"
)

var _ ghost.Agent = (*Agent)(nil)

func newTestAgent(t *testing.T, at tm.Cell, speed float64) (*Agent, *entities.GhostBody, *Grid) {
	t.Helper()
	g := newTestGrid(t)
	p := g.Center(at)
	body := &entities.GhostBody{X: p.X, Y: p.Y}
	return NewAgent(body, g, speed, 12), body, g
}

func TestAgentMoveTowardOnlySetsDestination(t *testing.T) {
	a, body, g := newTestAgent(t, tm.Cell{X: 1, Y: 1}, 16)
	start := body.Position()
	a.MoveToward(g.Center(tm.Cell{X: 6, Y: 1}))
	assert.Equal(t, start, body.Position())

	require.NotNil(t, a.dest)
	assert.Equal(t, g.Center(tm.Cell{X: 6, Y: 1}), *a.dest)
}

func TestAgentStepAdvancesBySpeed(t *testing.T) {
	a, body, g := newTestAgent(t, tm.Cell{X: 1, Y: 1}, 16)
	a.MoveToward(g.Center(tm.Cell{X: 6, Y: 1}))

	a.Step(1)
	assert.InDelta(t, 40.0, body.X, 1e-9)
	assert.InDelta(t, 24.0, body.Y, 1e-9)
	assert.Equal(t, entities.DirRight, body.Facing)

	a.Step(0.5)
	assert.InDelta(t, 48.0, body.X, 1e-9)

	for i := 0; i < 10; i++ {
		a.Step(1)
	}
	assert.Equal(t, g.Center(tm.Cell{X: 6, Y: 1}), body.Position())
}

func TestAgentTurnsCorners(t *testing.T) {
	a, body, g := newTestAgent(t, tm.Cell{X: 1, Y: 1}, 16)
	a.MoveToward(g.Center(tm.Cell{X: 1, Y: 5}))
	for i := 0; i < 4; i++ {
		a.Step(1)
		assert.InDelta(t, 24.0, body.X, 1e-9, "stays in the column")
	}
	assert.Equal(t, g.Center(tm.Cell{X: 1, Y: 5}), body.Position())
	assert.Equal(t, entities.DirDown, body.Facing)
}

func TestAgentStopAndResume(t *testing.T) {
	a, body, g := newTestAgent(t, tm.Cell{X: 1, Y: 1}, 16)
	a.MoveToward(g.Center(tm.Cell{X: 6, Y: 1}))
	a.Stop()
	a.Step(1)
	assert.Equal(t, 24.0, body.X)
	assert.True(t, a.stopped)

	a.Resume()
	a.Step(1)
	assert.Equal(t, 40.0, body.X)
}

func TestAgentSpeedChange(t *testing.T) {
	a, body, g := newTestAgent(t, tm.Cell{X: 1, Y: 1}, 16)
	a.SetSpeed(a.Speed() * 2)
	a.MoveToward(g.Center(tm.Cell{X: 6, Y: 1}))
	a.Step(1)
	assert.Equal(t, 32.0, a.Speed())
	assert.InDelta(t, 56.0, body.X, 1e-9)
}

func TestAgentWrapsThroughTunnel(t *testing.T) {
	a, body, g := newTestAgent(t, tm.Cell{X: 0, Y: 14}, 16)
	a.MoveToward(g.Center(tm.Cell{X: 27, Y: 14}))
	a.Step(1.0 / 60)
	assert.Equal(t, g.Center(tm.Cell{X: 27, Y: 14}), body.Position())
}

func TestAgentSnapsUnwalkableDestination(t *testing.T) {
	a, body, g := newTestAgent(t, tm.Cell{X: 3, Y: 1}, 160)
	a.MoveToward(geom.V(8, 8))
	for i := 0; i < 5; i++ {
		a.Step(1)
	}
	assert.Equal(t, g.Center(tm.Cell{X: 1, Y: 1}), body.Position())
}

func TestAgentStopsOnPointBetweenCentres(t *testing.T) {
	a, body, _ := newTestAgent(t, tm.Cell{X: 1, Y: 1}, 160)
	a.MoveToward(geom.V(96, 24))
	a.Step(1)
	assert.Equal(t, geom.V(96, 24), body.Position(), "no overshoot to the cell centre")
}

func TestAgentReachesHouseCentre(t *testing.T) {
	a, body, g := newTestAgent(t, tm.Cell{X: 14, Y: 11}, 16)
	house := g.m.HouseBounds().Center
	require.Equal(t, geom.V(224, 232), house)

	a.MoveToward(house)
	for i := 0; i < 10; i++ {
		a.MoveToward(house)
		a.Step(1)
	}
	assert.Equal(t, house, body.Position())
}

func TestAgentFinalStretchStaysInGoalCell(t *testing.T) {
	a, body, g := newTestAgent(t, tm.Cell{X: 1, Y: 1}, 16)
	dst := geom.V(28, 20)
	a.MoveToward(dst)
	a.Step(1)
	assert.Equal(t, dst, body.Position())
	assert.Equal(t, tm.Cell{X: 1, Y: 1}, g.CellAt(body.Position()))

	// Already there: further steps hold still.
	a.MoveToward(dst)
	a.Step(1)
	assert.Equal(t, dst, body.Position())
}

func TestAgentSamplePointDelegates(t *testing.T) {
	a, _, _ := newTestAgent(t, tm.Cell{X: 1, Y: 1}, 16)
	p, ok := a.SamplePoint(geom.V(8, 8), 24)
	assert.True(t, ok)
	assert.Equal(t, geom.V(24, 24), p)
	assert.Equal(t, 12.0, a.StoppingDistance())
}
