package ghost

import (
	"math/rand"
	"time"
)

// DecisionTimer fires after a random interval drawn uniformly from [Min, Max]
// seconds and must be Reset to arm the next interval.
type DecisionTimer struct {
	Min, Max float64

	interval float64
	elapsed  float64
}

func (t *DecisionTimer) Reset(rng *rand.Rand) {
	lo, hi := t.Min, t.Max
	if hi < lo {
		lo, hi = hi, lo
	}
	t.interval = lo + rng.Float64()*(hi-lo)
	t.elapsed = 0
}

// Advance adds dt and reports whether the interval has elapsed.
func (t *DecisionTimer) Advance(dt float64) bool {
	t.elapsed += dt
	return t.elapsed >= t.interval
}

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
