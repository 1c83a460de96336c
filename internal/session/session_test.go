package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pacman-fsm/internal/event"
	"pacman-fsm/internal/geom"
)

type recordingDisplay struct{ scores []int }

func (d *recordingDisplay) SetScore(score int) { d.scores = append(d.scores, score) }

type fakeBonus struct {
	active bool
	spawns []geom.Vec2
}

func (b *fakeBonus) Active() bool { return b.active }

func (b *fakeBonus) Spawn(at geom.Vec2) {
	b.active = true
	b.spawns = append(b.spawns, at)
}

type countingSounds struct{ pellet, power, bonus, ghost int }

func (c *countingSounds) PlayPellet()      { c.pellet++ }
func (c *countingSounds) PlayPowerPellet() { c.power++ }
func (c *countingSounds) PlayBonusItem()   { c.bonus++ }
func (c *countingSounds) PlayGhostEaten()  { c.ghost++ }

type fakeGhost struct{ respawns int }

func (g *fakeGhost) Respawn() { g.respawns++ }

type signalCounter map[event.Signal]int

func listen(s *Session) signalCounter {
	c := signalCounter{}
	for _, sig := range []event.Signal{event.PowerUpStarted, event.PowerUpEnded, event.Victory, event.GameOver} {
		sig := sig
		s.Subscribe(sig, func() { c[sig]++ })
	}
	return c
}

func newTestSession(total int) (*Session, *fakeBonus, *countingSounds, *recordingDisplay) {
	spawn := geom.V(40, 40)
	bonus := &fakeBonus{}
	sounds := &countingSounds{}
	display := &recordingDisplay{}
	s := New(Config{
		TotalPellets:     total,
		PowerUpDuration:  10,
		GhostSpawnBounds: geom.Bounds{Center: geom.V(100, 100), Size: geom.V(32, 16)},
		BonusSpawn:       &spawn,
		EatGhostScore:    5,
	}, Sinks{Score: display, Sounds: sounds, Bonus: bonus})
	return s, bonus, sounds, display
}

func TestQuarterBonusThenVictory(t *testing.T) {
	s, bonus, sounds, display := newTestSession(4)
	signals := listen(s)

	s.PickUpPellet(10, PelletNormal)
	assert.Equal(t, 10, s.Score())
	require.Len(t, bonus.spawns, 1, "bonus item should spawn at 0.25")
	assert.Equal(t, geom.V(40, 40), bonus.spawns[0])

	s.PickUpPellet(50, PelletBonus)
	bonus.active = false
	assert.Equal(t, 60, s.Score())
	assert.Equal(t, 1, s.Collected(), "bonus pickups do not count toward the ratio")

	s.PickUpPellet(10, PelletNormal)
	s.PickUpPellet(10, PelletNormal)
	s.PickUpPellet(10, PelletNormal)

	assert.Equal(t, 1, signals[event.Victory])
	assert.True(t, s.Finished())
	assert.Equal(t, 90, s.Score())
	assert.Equal(t, 4, sounds.pellet)
	assert.Equal(t, 1, sounds.bonus)
	assert.Equal(t, 90, display.scores[len(display.scores)-1])
	// 0.5 spawns again after the first item was collected; 0.75 is skipped while
	// that one is still out, and 1.0 yields victory instead.
	assert.Len(t, bonus.spawns, 2)
}

func TestBonusSpawnsAtEachQuarterOnce(t *testing.T) {
	s, bonus, _, _ := newTestSession(8)
	spawnedAt := []int{}
	for i := 0; i < 8; i++ {
		before := len(bonus.spawns)
		s.PickUpPellet(1, PelletNormal)
		if len(bonus.spawns) > before {
			spawnedAt = append(spawnedAt, s.Collected())
			bonus.active = false
		}
	}
	assert.Equal(t, []int{2, 4, 6}, spawnedAt)
}

func TestBonusNotRespawnedWhileActive(t *testing.T) {
	s, bonus, _, _ := newTestSession(4)
	s.PickUpPellet(1, PelletNormal)
	s.PickUpPellet(1, PelletNormal)
	assert.Len(t, bonus.spawns, 1)
}

func TestQuarterCheckIgnoresUnevenCounts(t *testing.T) {
	s, bonus, _, _ := newTestSession(5)
	for i := 0; i < 4; i++ {
		s.PickUpPellet(1, PelletNormal)
	}
	assert.Empty(t, bonus.spawns)
}

func TestVictoryFiresOnceRegardlessOfKindMix(t *testing.T) {
	s, _, _, _ := newTestSession(3)
	signals := listen(s)

	s.PickUpPellet(1, PelletPower)
	s.PickUpPellet(50, PelletBonus)
	s.PickUpPellet(1, PelletNormal)
	s.PickUpPellet(1, PelletPower)
	s.PickUpPellet(1, PelletNormal)

	assert.Equal(t, 1, signals[event.Victory])
	assert.Equal(t, 3, s.Collected())
}

func TestPowerUpCountdown(t *testing.T) {
	s, _, sounds, _ := newTestSession(100)
	signals := listen(s)

	var timerSeenByHandler float64
	s.Subscribe(event.PowerUpStarted, func() { timerSeenByHandler = s.PowerUpTimer() })

	s.PickUpPellet(1, PelletPower)
	assert.Equal(t, 1, signals[event.PowerUpStarted])
	assert.Equal(t, 0.0, timerSeenByHandler, "handlers must observe the started countdown")
	assert.True(t, s.PowerUpActive())
	assert.Equal(t, 1, sounds.power)

	s.Update(4)
	assert.InDelta(t, 4.0, s.PowerUpTimer(), 1e-9)
	assert.InDelta(t, 6.0, s.PowerUpRemaining(), 1e-9)
	assert.Equal(t, 0, signals[event.PowerUpEnded])

	s.Update(6.001)
	assert.Equal(t, 1, signals[event.PowerUpEnded])
	assert.Equal(t, PowerUpInactive, s.PowerUpTimer())
	assert.False(t, s.PowerUpActive())

	s.Update(100)
	assert.Equal(t, 1, signals[event.PowerUpEnded], "inactive countdown never fires again")
}

func TestPowerUpEndsOnceForAnyEpsilon(t *testing.T) {
	for _, eps := range []float64{1e-6, 0.5, 3, 1000} {
		s, _, _, _ := newTestSession(100)
		signals := listen(s)
		s.PickUpPellet(1, PelletPower)
		s.Update(10 + eps)
		assert.Equal(t, 1, signals[event.PowerUpEnded], "eps=%v", eps)
		assert.Equal(t, PowerUpInactive, s.PowerUpTimer())
	}
}

func TestSecondPowerPelletRestartsCountdown(t *testing.T) {
	s, _, _, _ := newTestSession(100)
	signals := listen(s)
	s.PickUpPellet(1, PelletPower)
	s.Update(8)
	s.PickUpPellet(1, PelletPower)
	s.Update(8)
	assert.Equal(t, 0, signals[event.PowerUpEnded])
	assert.Equal(t, 2, signals[event.PowerUpStarted])
}

func TestEatGhost(t *testing.T) {
	s, _, sounds, _ := newTestSession(10)
	g := &fakeGhost{}
	s.EatGhost(g)
	assert.Equal(t, 5, s.Score())
	assert.Equal(t, 1, g.respawns)
	assert.Equal(t, 1, sounds.ghost)
}

func TestGameOverFreezesSession(t *testing.T) {
	s, _, _, _ := newTestSession(10)
	signals := listen(s)
	s.PickUpPellet(1, PelletPower)

	s.GameOver()
	s.GameOver()
	assert.Equal(t, 1, signals[event.GameOver])

	s.PickUpPellet(10, PelletNormal)
	s.Update(20)
	s.EatGhost(&fakeGhost{})
	assert.Equal(t, 1, s.Score())
	assert.Equal(t, 0, signals[event.PowerUpEnded])
}

func TestMisconfiguredSessionDegrades(t *testing.T) {
	s := New(Config{TotalPellets: 0, PowerUpDuration: 10}, Sinks{})
	signals := listen(s)
	require.NotPanics(t, func() {
		s.PickUpPellet(10, PelletNormal)
		s.PickUpPellet(10, PelletPower)
		s.EatGhost(&fakeGhost{})
		s.Update(1)
	})
	assert.Equal(t, 0, s.Collected())
	assert.Equal(t, 0, signals[event.Victory])
	assert.Equal(t, 0, signals[event.PowerUpStarted])
	assert.Equal(t, 0, s.Score())
}

func TestMissingBonusSpawnIsTolerated(t *testing.T) {
	bonus := &fakeBonus{}
	s := New(Config{TotalPellets: 4, PowerUpDuration: 10}, Sinks{Bonus: bonus})
	s.PickUpPellet(1, PelletNormal)
	assert.Empty(t, bonus.spawns)
}
