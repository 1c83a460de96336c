// Package event carries the game-wide broadcasts fired by the session.
package event

// Signal names one of the zero-argument broadcasts.
type Signal int

const (
	PowerUpStarted Signal = iota
	PowerUpEnded
	Victory
	GameOver
)

func (s Signal) String() string {
	switch s {
	case PowerUpStarted:
		return "power-up-started"
	case PowerUpEnded:
		return "power-up-ended"
	case Victory:
		return "victory"
	case GameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

type Handler func()

// Bus fans a signal out to its subscribers synchronously, in subscription order.
// It is not safe for concurrent use; the whole simulation runs on the game tick.
type Bus struct {
	handlers map[Signal][]Handler
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[Signal][]Handler)}
}

func (b *Bus) Subscribe(sig Signal, h Handler) {
	if h == nil {
		return
	}
	b.handlers[sig] = append(b.handlers[sig], h)
}

// Publish runs every handler subscribed to sig before returning.
// Handlers added while publishing only see later publishes.
func (b *Bus) Publish(sig Signal) {
	for _, h := range b.handlers[sig] {
		h()
	}
}
