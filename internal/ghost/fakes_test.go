package ghost

import (
	"image/color"

	"pacman-fsm/internal/event"
	"pacman-fsm/internal/geom"
)

type fakeAgent struct {
	pos      geom.Vec2
	speed    float64
	stopDist float64
	stopped  bool
	dest     *geom.Vec2
	moves    []geom.Vec2
	samples  []geom.Vec2
	sampleOK bool
}

func newFakeAgent(pos geom.Vec2) *fakeAgent {
	return &fakeAgent{pos: pos, speed: 60, stopDist: 8, sampleOK: true}
}

func (a *fakeAgent) Position() geom.Vec2 { return a.pos }

func (a *fakeAgent) MoveToward(dst geom.Vec2) {
	a.dest = &dst
	a.moves = append(a.moves, dst)
}

func (a *fakeAgent) StoppingDistance() float64 { return a.stopDist }

func (a *fakeAgent) SamplePoint(near geom.Vec2, radius float64) (geom.Vec2, bool) {
	a.samples = append(a.samples, near)
	return near, a.sampleOK
}

func (a *fakeAgent) Speed() float64     { return a.speed }
func (a *fakeAgent) SetSpeed(v float64) { a.speed = v }
func (a *fakeAgent) Stop()              { a.stopped = true }
func (a *fakeAgent) Resume()            { a.stopped = false }

type fakeTarget struct {
	pos      geom.Vec2
	captures int
	fatal    bool
}

func (t *fakeTarget) Position() geom.Vec2 { return t.pos }

func (t *fakeTarget) ResolveCapture() bool {
	t.captures++
	return t.fatal
}

type fakeRenderer struct {
	applied []*Material
}

func (r *fakeRenderer) SetActiveMaterial(m *Material) { r.applied = append(r.applied, m) }

func (r *fakeRenderer) last() *Material {
	if len(r.applied) == 0 {
		return nil
	}
	return r.applied[len(r.applied)-1]
}

type fakeCoordinator struct {
	bus     *event.Bus
	powered bool
	spawn   geom.Bounds
	subs    map[event.Signal]int
}

func newFakeCoordinator() *fakeCoordinator {
	return &fakeCoordinator{
		bus:   event.NewBus(),
		spawn: geom.Bounds{Center: geom.V(100, 100), Size: geom.V(48, 32)},
		subs:  make(map[event.Signal]int),
	}
}

func (c *fakeCoordinator) PowerUpActive() bool           { return c.powered }
func (c *fakeCoordinator) GhostSpawnBounds() geom.Bounds { return c.spawn }
func (c *fakeCoordinator) Subscribe(sig event.Signal, h event.Handler) {
	c.subs[sig]++
	c.bus.Subscribe(sig, h)
}

func (c *fakeCoordinator) startPowerUp() {
	c.powered = true
	c.bus.Publish(event.PowerUpStarted)
}

func (c *fakeCoordinator) endPowerUp() {
	c.powered = false
	c.bus.Publish(event.PowerUpEnded)
}

var (
	testDefault = &Material{Name: "default", Color: color.RGBA{R: 255, A: 255}}
	testFlee    = &Material{Name: "flee", Color: color.RGBA{B: 255, A: 255}}
	testRespawn = &Material{Name: "respawn", Color: color.RGBA{R: 255, G: 255, B: 255, A: 255}}
)

type rig struct {
	agent    *fakeAgent
	target   *fakeTarget
	renderer *fakeRenderer
	coord    *fakeCoordinator
}

func newRig() *rig {
	return &rig{
		agent:    newFakeAgent(geom.V(0, 0)),
		target:   &fakeTarget{pos: geom.V(200, 0)},
		renderer: &fakeRenderer{},
		coord:    newFakeCoordinator(),
	}
}

func (r *rig) options() Options {
	return Options{
		Name:        "test",
		Agent:       r.agent,
		Target:      r.target,
		Renderer:    r.renderer,
		Coordinator: r.coord,
		Materials:   Materials{Default: testDefault, Flee: testFlee, Respawn: testRespawn},
	}
}

// countingState records hook calls for SetState properties.
type countingState struct {
	kind                 StateKind
	enters, exits, ticks int
}

func (s *countingState) Kind() StateKind  { return s.kind }
func (s *countingState) OnEnter()         { s.enters++ }
func (s *countingState) OnUpdate(float64) { s.ticks++ }
func (s *countingState) OnExit()          { s.exits++ }
