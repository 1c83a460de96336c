package game

import "pacman-fsm/internal/geom"

// camera eases toward the player. Distances are measured in tiles: inside the
// 2..4 tile band it moves at a constant speed, outside it closes a fixed
// fraction of the gap every second.
type camera struct {
	pos   geom.Vec2
	speed float64
	unit  float64 // pixels per tile
}

const (
	cameraDeadZone = 0.1
	cameraNearBand = 2.0
	cameraFarBand  = 4.0
)

func newCamera(at geom.Vec2, speed, unit float64) camera {
	if unit <= 0 {
		unit = 1
	}
	return camera{pos: at, speed: speed, unit: unit}
}

func (c *camera) follow(target geom.Vec2, dt float64) {
	motion := target.Sub(c.pos)
	dist := motion.Len() / c.unit
	if dist <= cameraDeadZone {
		return
	}
	var step geom.Vec2
	if dist < cameraNearBand || dist > cameraFarBand {
		step = motion.Scale(c.speed * dt)
	} else {
		step = motion.Normalized().Scale(c.speed * c.unit * dt)
	}
	if step.Len() > motion.Len() {
		step = motion
	}
	c.pos = c.pos.Add(step)
}

// view returns the top-left corner of a viewport of size w x h centred on the
// camera and kept inside a world of size worldW x worldH.
func (c *camera) view(w, h, worldW, worldH float64) geom.Vec2 {
	return geom.V(clamp(c.pos.X-w/2, 0, worldW-w), clamp(c.pos.Y-h/2, 0, worldH-h))
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
