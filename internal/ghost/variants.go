package ghost

import (
	"log"
	"math/rand"

	"pacman-fsm/internal/geom"
)

// NewChaser builds a ghost that always pursues the player directly.
func NewChaser(opts Options) *Ghost {
	return newGhost(opts, StateChase, newChase)
}

// NewFlanker builds a ghost that heads for the player's position plus offset.
func NewFlanker(opts Options, offset geom.Vec2) *Ghost {
	return newGhost(opts, StateFlank, func(g *Ghost) State { return newFlank(g, offset) })
}

// Alternator chases by default and, on a randomized interval, swaps between
// chasing and fleeing on its own. Session broadcasts still drive the same state
// slot, so whichever writes last wins.
type Alternator struct {
	*Ghost
	timer DecisionTimer
	rng   *rand.Rand
}

// NewAlternator builds an alternating ghost whose switch interval is drawn from
// [minInterval, maxInterval] seconds. A nil rng gets a time-seeded source.
func NewAlternator(opts Options, minInterval, maxInterval float64, rng *rand.Rand) *Alternator {
	if rng == nil {
		rng = newRand()
	}
	a := &Alternator{
		Ghost: newGhost(opts, StateChase, newChase),
		timer: DecisionTimer{Min: minInterval, Max: maxInterval},
		rng:   rng,
	}
	return a
}

func (a *Alternator) Start() {
	a.Ghost.Start()
	a.timer.Reset(a.rng)
}

func (a *Alternator) Update(dt float64) {
	a.Ghost.Update(dt)
	if a.coord.PowerUpActive() || a.Respawning() {
		return
	}
	if !a.timer.Advance(dt) {
		return
	}
	switch a.Kind() {
	case a.defaultKind:
		a.SetState(a.flee)
	case StateFlee:
		a.SetState(a.DefaultState())
	}
	a.timer.Reset(a.rng)
}

// Actor is what the scene drives each tick, whatever the variant.
type Actor interface {
	Start()
	Update(dt float64)
	Respawn()
	Respawning() bool
	Kind() StateKind
	Name() string
	Position() geom.Vec2
	ActiveMaterial() *Material
}

type Variant string

const (
	VariantChaser     Variant = "chaser"
	VariantFlanker    Variant = "flanker"
	VariantAlternator Variant = "alternator"
)

// Params carries the variant-specific tuning.
type Params struct {
	Offset      geom.Vec2
	MinInterval float64
	MaxInterval float64
	Rand        *rand.Rand
}

// New builds the ghost variant v. Unknown variants fall back to a chaser.
func New(v Variant, opts Options, p Params) Actor {
	switch v {
	case VariantFlanker:
		return NewFlanker(opts, p.Offset)
	case VariantAlternator:
		return NewAlternator(opts, p.MinInterval, p.MaxInterval, p.Rand)
	case VariantChaser:
		return NewChaser(opts)
	default:
		log.Printf("[Ghost] %s: unknown variant %q, using chaser", opts.Name, v)
		return NewChaser(opts)
	}
}
