package game

import (
	"math"

	"pacman-fsm/internal/entities"
)

// alignmentThreshold is how close to a cell centre the player must be to turn.
// It has to cover one tick of travel at the configured speed.
func (s *scene) alignmentThreshold(dt float64) float64 {
	return math.Max(1.0, s.cfg.Player.Speed*dt)
}

func (s *scene) updatePlayerMovement(dt float64) {
	p := s.player
	step := s.cfg.Player.Speed * dt

	// Attempt to turn when aligned to the center of a cell
	if s.isAlignedToCellCenter(dt) && s.canMoveFromCell(p.DesiredDir) {
		if p.DesiredDir != p.CurrentDir {
			s.snapPlayerToCell()
		}
		p.CurrentDir = p.DesiredDir
	}

	if s.canMoveFromCell(p.CurrentDir) || !s.isAlignedToCellCenter(dt) {
		dx, dy := entities.DirDelta(p.CurrentDir)
		p.X += float64(dx) * step
		p.Y += float64(dy) * step
	} else {
		// If blocked, snap to cell center to avoid jitter
		s.snapPlayerToCell()
	}

	// Wrap-around tunnels
	maxX := float64(s.tileMap.PixelWidth())
	if p.X < 0 {
		p.X += maxX
	}
	if p.X >= maxX {
		p.X -= maxX
	}
}

func (s *scene) playerGrid() (int, int) {
	return s.tileMap.CellAt(s.player.Position())
}

func (s *scene) snapPlayerToCell() {
	gx, gy := s.playerGrid()
	c := s.tileMap.CellCenter(gx, gy)
	s.player.X, s.player.Y = c.X, c.Y
}

func (s *scene) isAlignedToCellCenter(dt float64) bool {
	gx, gy := s.playerGrid()
	c := s.tileMap.CellCenter(gx, gy)
	th := s.alignmentThreshold(dt)
	return math.Abs(s.player.X-c.X) < th && math.Abs(s.player.Y-c.Y) < th
}

func (s *scene) isNearCellCenter() bool {
	gx, gy := s.playerGrid()
	c := s.tileMap.CellCenter(gx, gy)
	near := float64(s.tileMap.TileSize) / 3
	return math.Abs(s.player.X-c.X) < near && math.Abs(s.player.Y-c.Y) < near
}

// canMoveFromCell checks the cell next to the player's current one.
func (s *scene) canMoveFromCell(dir entities.Direction) bool {
	if dir == entities.DirNone {
		return false
	}
	dx, dy := entities.DirDelta(dir)
	gx, gy := s.playerGrid()

	nx, ny := gx+dx, gy+dy
	// Wrap-around checks on X
	if nx < 0 {
		nx = s.tileMap.Width - 1
	}
	if nx >= s.tileMap.Width {
		nx = 0
	}
	return s.tileMap.PlayerCanEnter(nx, ny)
}
