package main

import (
	"context"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/olivierh59500/text-disintegrator/effect"
	"github.com/olivierh59500/text-disintegrator/internal/cli"
)

func main() {
	settings := cli.Register(flag.CommandLine)
	flag.Parse()

	fonts := effect.LoadFont(settings.FontPath)
	cfg, err := settings.EffectConfig(fonts)
	if err != nil {
		log.Fatal(err)
	}

	game, err := NewGame(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if err := game.Init(context.Background()); err != nil {
		log.Fatal(err)
	}

	// Set up Ebitengine game
	ebiten.SetWindowSize(game.WindowSize())
	ebiten.SetWindowTitle("Text Disintegrator")
	ebiten.SetTPS(60)

	// Run the game loop
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
