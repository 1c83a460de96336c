package game

import (
	"pacman-fsm/internal/geom"
	"pacman-fsm/internal/session"
)

// contactRadius is the centre distance at which the player touches a ghost or
// the bonus item.
func (s *scene) contactRadius() float64 {
	return float64(s.tileMap.TileSize) - 4
}

func (s *scene) handleTriggers() {
	if s.session.Finished() || !s.player.Enabled() {
		return
	}
	s.handlePelletCollision()
	s.handleBonusCollision()
	s.checkPlayerGhostCollision()
}

func (s *scene) handlePelletCollision() {
	// Eat pellet when close to cell center containing a pellet
	if !s.isNearCellCenter() {
		return
	}
	gx, gy := s.playerGrid()
	ate, power := s.tileMap.EatPelletAt(gx, gy)
	switch {
	case !ate:
	case power:
		s.session.PickUpPellet(s.cfg.Scores.PowerPellet, session.PelletPower)
	default:
		s.session.PickUpPellet(s.cfg.Scores.Pellet, session.PelletNormal)
	}
}

func (s *scene) handleBonusCollision() {
	if !s.bonus.Active() || s.session.Finished() {
		return
	}
	if geom.Distance(s.player.Position(), s.bonus.pos) < s.contactRadius() {
		s.bonus.collect()
		s.session.PickUpPellet(s.cfg.Scores.BonusItem, session.PelletBonus)
	}
}

// checkPlayerGhostCollision eats ghosts the player runs into during a power-up.
// Ghosts catching the player is decided by the ghosts themselves.
func (s *scene) checkPlayerGhostCollision() {
	if !s.session.PowerUpActive() {
		return
	}
	r := s.contactRadius()
	for _, u := range s.ghosts {
		if u.actor.Respawning() {
			continue
		}
		if geom.Distance(s.player.Position(), u.actor.Position()) < r {
			s.session.EatGhost(u.actor)
		}
	}
}
