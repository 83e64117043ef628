package main

import (
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/pflag"

	"github.com/milk9111/patrolai/config"
	"github.com/milk9111/patrolai/logging"
)

func main() {
	fs := pflag.NewFlagSet("patrolai", pflag.ExitOnError)
	config.RegisterFlags(fs)
	_ = fs.Parse(os.Args[1:])
	path, _ := fs.GetString("config")

	cfg, err := config.Load(path, fs)
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	game, err := NewGame(cfg, logger)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	w, h := game.ScreenSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("patrolai: " + cfg.Sim.Scene)
	ebiten.SetTPS(cfg.Sim.TPS)

	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
}
