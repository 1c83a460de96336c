package entities

import "pacman-fsm/internal/geom"

// GhostBody is the physical part of a ghost: where it is and which way it looks.
// The navigation agent moves it; the renderer reads it.
type GhostBody struct {
	X, Y   float64
	Facing Direction
}

func (b *GhostBody) Position() geom.Vec2 { return geom.V(b.X, b.Y) }

// MoveTo relocates the body and turns it toward the dominant axis of the motion.
func (b *GhostBody) MoveTo(p geom.Vec2) {
	dx, dy := p.X-b.X, p.Y-b.Y
	switch {
	case dx == 0 && dy == 0:
	case abs(dx) >= abs(dy) && dx > 0:
		b.Facing = DirRight
	case abs(dx) >= abs(dy):
		b.Facing = DirLeft
	case dy > 0:
		b.Facing = DirDown
	default:
		b.Facing = DirUp
	}
	b.X, b.Y = p.X, p.Y
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
