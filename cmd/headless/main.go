package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/automoto/timeslip/assets"
	"github.com/automoto/timeslip/config"
	"github.com/automoto/timeslip/engine"
	"github.com/automoto/timeslip/gameplay"
	"github.com/automoto/timeslip/systems/factory"
	"github.com/automoto/timeslip/telemetry"
	"github.com/yohamta/donburi"
)

func main() {
	configPath := flag.String("config", "", "YAML file overriding the built-in tuning")
	level := flag.String("level", "", "Embedded level name or path to a .tmx file")
	ticks := flag.Int("ticks", 0, "Run this many ticks as fast as possible, then exit (0 = run until interrupted)")
	tracePath := flag.String("trace", "", "Write a CSV step trace to this file")
	every := flag.Int("every", 1, "Record every Nth simulation step")
	hold := flag.String("hold", "", "Comma-separated keys held down for the whole run")
	flag.Parse()

	if err := config.Load(*configPath); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	lvl, err := assets.LoadLevel(*level)
	if err != nil {
		log.Fatalf("Failed to load level: %v", err)
	}

	sim := engine.New(donburi.NewWorld(), factory.CreateSpace(lvl.Width, lvl.Height))
	gameplay.RegisterBehaviors(sim)
	if _, err := factory.CreateLevel(sim, lvl); err != nil {
		log.Fatalf("Failed to build level %s: %v", lvl.Name, err)
	}

	trace, err := telemetry.Open(*tracePath, *every)
	if err != nil {
		log.Fatalf("Failed to open trace: %v", err)
	}
	trace.Attach(sim)
	defer func() {
		if err := trace.Close(); err != nil {
			log.Printf("Warning: Could not close trace: %v", err)
		}
	}()

	var held []string
	if *hold != "" {
		held = strings.Split(strings.ToLower(*hold), ",")
	}
	loop := engine.NewGameLoop(sim, config.Time.TickRate, func(s *engine.Simulation, dt float64) {
		s.Input.BeginFrame()
		for _, k := range held {
			s.Input.Press(strings.TrimSpace(k))
		}
		gameplay.RunScript(s, dt)
	})

	log.Printf("Simulating level %s (%dx%d, %d bodies, tick rate: %d/s)",
		lvl.Name, lvl.Width, lvl.Height, len(sim.Bodies()), config.Time.TickRate)

	if *ticks > 0 {
		loop.RunTicks(*ticks)
	} else {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			log.Println("Shutting down simulation...")
			loop.Stop()
		}()
		loop.Run()
	}

	if p := sim.BodyByID(config.Player.ID); p != nil {
		log.Printf("Finished after %d steps, player at (%.1f, %.1f) grounded=%v",
			sim.Steps(), p.Position.X, p.Position.Y, p.IsGrounded)
	}
}
