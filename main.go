package main

import (
	"flag"
	"image"
	"log"

	"github.com/automoto/timeslip/config"
	"github.com/automoto/timeslip/fonts"
	"github.com/automoto/timeslip/scenes"
	"github.com/automoto/timeslip/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	bounds image.Rectangle
	scene  Scene
}

// ChangeScene switches to a new scene
func (g *Game) ChangeScene(scene interface{}) {
	g.scene = scene.(Scene)
}

func NewGame(opts scenes.Options) *Game {
	if err := fonts.LoadDefaults(); err != nil {
		log.Printf("Warning: Could not load fonts: %v", err)
	}

	g := &Game{
		bounds: image.Rectangle{},
	}
	g.scene = scenes.NewPlatformerScene(g, opts)
	return g
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, config.C.Width, config.C.Height)
	return config.C.Width, config.C.Height
}

func main() {
	configPath := flag.String("config", "", "YAML file overriding the built-in tuning")
	level := flag.String("level", "", "Embedded level name or path to a .tmx file")
	tracePath := flag.String("trace", "", "Write a CSV step trace to this file")
	traceEvery := flag.Int("trace-every", 1, "Record every Nth simulation step")
	flag.Parse()

	if err := config.Load(*configPath); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ebiten.SetWindowSize(config.C.Width, config.C.Height)
	ebiten.SetWindowTitle("timeslip")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeOnlyFullscreenEnabled)

	// Initialize persistence and load saved settings
	if err := systems.InitPersistence(); err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
	}
	if saved, err := systems.LoadSettings(); err == nil && saved != nil {
		if last := systems.ApplySavedSettings(saved); *level == "" {
			*level = last
		}
	}

	game := NewGame(scenes.Options{
		Level:      *level,
		TracePath:  *tracePath,
		TraceEvery: *traceEvery,
	})
	err := ebiten.RunGame(game)
	if ps, ok := game.scene.(*scenes.PlatformerScene); ok {
		ps.Close()
	}
	if err != nil {
		log.Fatal(err)
	}
}
