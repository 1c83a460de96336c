package main

import (
	"errors"
	"flag"
	"io/fs"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"pacman-fsm/internal/config"
	"pacman-fsm/internal/game"
)

func main() {
	configPath := flag.String("config", "pacman.yaml", "path to the YAML tuning file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Printf("[Main] No config at %s, using defaults", *configPath)
		cfg = config.Default()
	case err != nil:
		log.Fatal(err)
	}

	g, err := game.New(cfg, game.OpenHighScoreStore())
	if err != nil {
		log.Fatal(err)
	}
	ebiten.SetWindowTitle("Pacman (Go + Ebiten)")
	ebiten.SetWindowResizable(false)
	ebiten.SetWindowSize(g.WindowSize(ebiten.ScreenSizeInFullscreen()))
	ebiten.SetTPS(cfg.TPS)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
