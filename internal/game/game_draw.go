package game

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"pacman-fsm/internal/entities"
	"pacman-fsm/internal/event"
)

var (
	playerColor = color.RGBA{R: 255, G: 221, B: 0, A: 255}
	bonusColor  = color.RGBA{R: 255, G: 64, B: 64, A: 255}
	titleColor  = color.RGBA{R: 255, G: 215, B: 0, A: 255}
	hintColor   = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	powerColor  = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	panelColor  = color.RGBA{A: 200}

	lostLifeColor = color.RGBA{R: 64, G: 64, B: 64, A: 255}
)

// glyphW is the advance of basicfont.Face7x13.
const glyphW = 7

func (g *Game) Draw(screen *ebiten.Image) {
	// Clear background (black)
	screen.Fill(color.Black)
	if g.mode == modeMenu {
		g.drawMenu(screen)
		return
	}

	g.drawWorld(screen)
	g.drawHUD(screen)

	w, h := g.ScreenWidth(), g.scene.tileMap.PixelHeight()
	switch {
	case g.mode == modeNameEntry:
		drawCentered(screen, "Enter name: "+g.playerName+"_", w, h/2, color.White)
	case g.mode == modeLeaderboard:
		g.drawLeaderboard(screen)
	case g.scene.ended():
		g.drawEndPanel(screen)
	case g.paused:
		drawCentered(screen, "PAUSED", w, h/2, color.White)
	}
}

// drawWorld renders the maze offscreen at native resolution, then copies the
// camera's view of it onto the screen.
func (g *Game) drawWorld(screen *ebiten.Image) {
	s := g.scene
	ww, wh := s.tileMap.PixelWidth(), s.tileMap.PixelHeight()
	if g.world == nil || g.world.Bounds().Dx() != ww || g.world.Bounds().Dy() != wh {
		g.world = ebiten.NewImage(ww, wh)
	}
	g.world.Clear()
	s.tileMap.Draw(g.world)

	ts := float32(s.tileMap.TileSize)
	if s.bonus.Active() {
		vector.DrawFilledCircle(g.world, float32(s.bonus.pos.X), float32(s.bonus.pos.Y), ts/3, bonusColor, true)
	}

	// Blink while invincible
	if s.player.Enabled() && !(s.player.Invincible() && g.frames/8%2 == 1) {
		vector.DrawFilledCircle(g.world, float32(s.player.X), float32(s.player.Y), ts/2-2, playerColor, true)
	}

	for _, u := range s.ghosts {
		x, y := float32(u.body.X), float32(u.body.Y)
		vector.DrawFilledCircle(g.world, x, y, ts/2-2, u.renderer.color(), true)
		// Eyes look where the ghost is heading
		dx, dy := facingOffset(u.body.Facing)
		for _, ex := range []float32{-3, 3} {
			vector.DrawFilledCircle(g.world, x+ex, y-2, 2, color.White, true)
			vector.DrawFilledCircle(g.world, x+ex+dx, y-2+dy, 1, color.Black, true)
		}
	}

	zoom := g.cfg.Camera.Zoom
	if g.overview {
		zoom = 1
	}
	vw, vh := float64(ww)/zoom, float64(wh)/zoom
	tl := s.camera.view(vw, vh, float64(ww), float64(wh))
	rect := image.Rect(int(tl.X), int(tl.Y), int(tl.X+vw), int(tl.Y+vh))
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(zoom, zoom)
	screen.DrawImage(g.world.SubImage(rect).(*ebiten.Image), op)
}

func facingOffset(d entities.Direction) (float32, float32) {
	dx, dy := entities.DirDelta(d)
	return float32(dx), float32(dy)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	s := g.scene
	top := s.tileMap.PixelHeight()
	w := g.ScreenWidth()

	hiLabel, hiScore := "High", 0
	if best := g.scores.Best(); best != nil {
		hiLabel, hiScore = fmt.Sprintf("High(%s)", best.Name), best.Score
	}
	text.Draw(screen, fmt.Sprintf("%s  Score: %d  %s: %d", g.displayName(), s.board.score, hiLabel, hiScore), basicfont.Face7x13, 4, top+14, color.White)

	// Life icons, right aligned; spent lives stay as grey slots
	for i := 0; i < s.player.MaxLives(); i++ {
		c := playerColor
		if i >= s.player.Lives() {
			c = lostLifeColor
		}
		cx := float32(w - 10 - i*14)
		vector.DrawFilledCircle(screen, cx, float32(top+hudHeight/2), 5, c, true)
	}

	text.Draw(screen, fmt.Sprintf("Pellets %d/%d", s.session.Collected(), s.session.Total()), basicfont.Face7x13, 4, top-4, hintColor)
	if s.session.PowerUpActive() {
		label := fmt.Sprintf("Power: %.1fs", s.session.PowerUpRemaining())
		text.Draw(screen, label, basicfont.Face7x13, w-len(label)*glyphW-4, top-4, powerColor)
		left := 1 - s.session.PowerUpTimer()/g.cfg.PowerUpTime
		vector.DrawFilledRect(screen, 0, float32(top), float32(float64(w)*left), 2, powerColor, false)
	}
}

func (g *Game) drawEndPanel(screen *ebiten.Image) {
	w, h := g.ScreenWidth(), g.scene.tileMap.PixelHeight()
	vector.DrawFilledRect(screen, float32(w/2-110), float32(h/2-30), 220, 60, panelColor, false)
	title := "GAME OVER"
	if *g.scene.outcome == event.Victory {
		title = "YOU WIN!"
	}
	drawCentered(screen, title, w, h/2-8, titleColor)
	drawCentered(screen, "R restart  L scores  Q quit", w, h/2+14, color.White)
}

func (g *Game) drawMenu(screen *ebiten.Image) {
	w, h := g.ScreenWidth(), g.ScreenHeight()
	drawCentered(screen, "PAC-MAN", w, h/3, titleColor)
	drawCentered(screen, "Press Enter to start", w, h/2, color.White)
	drawCentered(screen, "Press Q to quit", w, h/2+16, hintColor)
}

func (g *Game) drawLeaderboard(screen *ebiten.Image) {
	w, h := g.ScreenWidth(), g.scene.tileMap.PixelHeight()
	vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), panelColor, false)
	y := h/2 - 40
	drawCentered(screen, "High Scores", w, y, titleColor)
	y += 14
	for i, rec := range g.scores.Leaderboard() {
		drawCentered(screen, fmt.Sprintf("%2d. %-12s  %6d", i+1, rec.Name, rec.Score), w, y, color.White)
		y += 14
	}
	drawCentered(screen, "Esc to return, Q to exit", w, h-8, hintColor)
}

func drawCentered(dst *ebiten.Image, s string, w, y int, c color.Color) {
	text.Draw(dst, s, basicfont.Face7x13, (w-len(s)*glyphW)/2, y, c)
}
