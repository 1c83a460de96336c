package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"pacman-fsm/internal/entities"
)

const maxNameLen = 12

func (g *Game) handleInput() {
	// Fullscreen toggle with 'F' works everywhere
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.fullscreen = !g.fullscreen
		ebiten.SetFullscreen(g.fullscreen)
	}
	switch g.mode {
	case modeMenu:
		g.handleMenuInput()
	case modeNameEntry:
		g.handleNameInput()
	case modePlaying:
		g.handlePlayInput()
	case modeLeaderboard:
		g.handleLeaderboardInput()
	}
}

func enterPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyKPEnter)
}

func (g *Game) handleMenuInput() {
	if enterPressed() {
		g.mode = modeNameEntry
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.quit = true
	}
}

func (g *Game) handleNameInput() {
	g.typeName(ebiten.AppendInputChars(nil))
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		g.backspace()
	}
	if enterPressed() {
		g.confirmName()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.mode = modeMenu
	}
}

// typeName appends the printable runes of chars to the player name.
func (g *Game) typeName(chars []rune) {
	for _, r := range chars {
		if len([]rune(g.playerName)) >= maxNameLen {
			break
		}
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == ' ' || r == '_' || r == '-' {
			g.playerName += string(r)
		}
	}
}

func (g *Game) backspace() {
	rs := []rune(g.playerName)
	if len(rs) > 0 {
		g.playerName = string(rs[:len(rs)-1])
	}
}

func (g *Game) confirmName() {
	if len([]rune(g.playerName)) == 0 {
		return
	}
	log.Printf("[Game] %s starts a game", g.playerName)
	g.mode = modePlaying
}

func (g *Game) handlePlayInput() {
	// Queue desired direction from input
	p := g.scene.player
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		p.DesiredDir = entities.DirUp
	} else if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		p.DesiredDir = entities.DirDown
	} else if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		p.DesiredDir = entities.DirLeft
	} else if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		p.DesiredDir = entities.DirRight
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.toggleOverview()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) && !g.scene.ended() {
		g.paused = !g.paused
	}

	if g.scene.ended() {
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyR):
			if err := g.restart(); err != nil {
				log.Printf("[Game] Error: %v", err)
				g.quit = true
			}
		case inpututil.IsKeyJustPressed(ebiten.KeyL):
			g.mode = modeLeaderboard
		case inpututil.IsKeyJustPressed(ebiten.KeyQ):
			g.quit = true
		}
		return
	}

	// Quitting mid-game still records the score and shows the leaderboard first
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.abandon()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.mode = modeLeaderboard
	}
}

// abandon records the running score and shows the leaderboard.
func (g *Game) abandon() {
	if !g.submitted {
		g.submitScore()
	}
	g.mode = modeLeaderboard
}

func (g *Game) handleLeaderboardInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.quit = true
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.resume()
	}
}

// resume goes back to the maze. An unfinished game will be recorded again when it ends.
func (g *Game) resume() {
	if !g.scene.ended() {
		g.submitted = false
	}
	g.mode = modePlaying
}

// toggleOverview flips between the following camera and the whole-maze view.
func (g *Game) toggleOverview() bool {
	g.overview = !g.overview
	return g.overview
}
