package scenes

import (
	"log"
	"sync"

	"github.com/automoto/timeslip/assets"
	"github.com/automoto/timeslip/components"
	cfg "github.com/automoto/timeslip/config"
	"github.com/automoto/timeslip/engine"
	"github.com/automoto/timeslip/gameplay"
	"github.com/automoto/timeslip/shared/leveldata"
	"github.com/automoto/timeslip/systems"
	"github.com/automoto/timeslip/systems/factory"
	"github.com/automoto/timeslip/telemetry"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

const layerDefault ecs.LayerID = 0

// SceneChanger swaps the scene the game is running.
type SceneChanger interface {
	ChangeScene(scene interface{})
}

// Options select what a PlatformerScene plays.
type Options struct {
	Level      string // embedded level name or a .tmx path; "" plays the first level
	TracePath  string // CSV step trace, disabled when empty
	TraceEvery int
}

type PlatformerScene struct {
	ecs          *ecs.ECS
	sim          *engine.Simulation
	level        *leveldata.Level
	trace        *telemetry.Trace
	sceneChanger SceneChanger
	opts         Options
	once         sync.Once
}

// NewPlatformerScene creates a scene that plays opts.Level.
func NewPlatformerScene(sc SceneChanger, opts Options) *PlatformerScene {
	return &PlatformerScene{sceneChanger: sc, opts: opts}
}

func (ps *PlatformerScene) Update() {
	ps.once.Do(ps.configure)
	ps.ecs.Update()

	if next, ok := ps.nextLevel(); ok {
		ps.Close()
		opts := ps.opts
		opts.Level = next
		ps.sceneChanger.ChangeScene(NewPlatformerScene(ps.sceneChanger, opts))
	}
}

func (ps *PlatformerScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(cfg.Background)

	if ps.ecs == nil {
		return
	}
	ps.ecs.Draw(screen)
}

// Close flushes the step trace, if any.
func (ps *PlatformerScene) Close() {
	if err := ps.trace.Close(); err != nil {
		log.Printf("Warning: Could not close trace: %v", err)
	}
	ps.trace = nil
}

func (ps *PlatformerScene) configure() {
	level := assets.MustLoadLevel(ps.opts.Level)
	ps.level = level

	world := donburi.NewWorld()
	ps.sim = engine.New(world, factory.CreateSpace(level.Width, level.Height))
	gameplay.RegisterBehaviors(ps.sim)

	ecs := ecs.NewECS(world)

	// Input must be polled before the script reads it
	ecs.AddSystem(systems.UpdateInput)
	ecs.AddSystem(systems.UpdateDebug)
	ecs.AddSystem(ps.updateReset)
	ecs.AddSystem(systems.UpdateSimulation(ps.sim))
	ecs.AddSystem(systems.UpdateCamera)

	ecs.AddRenderer(layerDefault, systems.DrawBodies(ps.sim))
	ecs.AddRenderer(layerDefault, systems.DrawParticles(ps.sim))
	ecs.AddRenderer(layerDefault, systems.DrawDebug(ps.sim))
	ecs.AddRenderer(layerDefault, systems.DrawHUD(ps.sim))

	ps.ecs = ecs

	if _, err := factory.CreateLevel(ps.sim, level); err != nil {
		panic("failed to build level: " + err.Error())
	}
	factory.CreateCamera(world, level.Spawn.X, level.Spawn.Y)

	trace, err := telemetry.Open(ps.opts.TracePath, ps.opts.TraceEvery)
	if err != nil {
		log.Printf("Warning: Could not open trace: %v", err)
	}
	trace.Attach(ps.sim)
	ps.trace = trace

	systems.RememberLevel(ps.opts.Level)
	log.Printf("Playing level %s (%dx%d)", level.Name, level.Width, level.Height)
}

// updateReset rebuilds the level from its description when reset is pressed.
func (ps *PlatformerScene) updateReset(e *ecs.ECS) {
	entry, ok := components.Input.First(e.World)
	if !ok || !components.Input.Get(entry).ActionJustPressed(cfg.ActionReset) {
		return
	}

	ps.sim.Reset()
	if levelEntry, ok := components.Level.First(e.World); ok {
		e.World.Remove(levelEntry.Entity())
	}
	if _, err := factory.CreateLevel(ps.sim, ps.level); err != nil {
		log.Printf("Warning: Could not rebuild level: %v", err)
	}
}

// nextLevel reports the embedded level that follows a completed one once
// the player asks for it.
func (ps *PlatformerScene) nextLevel() (string, bool) {
	levelEntry, ok := components.Level.First(ps.ecs.World)
	if !ok || !components.Level.Get(levelEntry).Completed {
		return "", false
	}
	inputEntry, ok := components.Input.First(ps.ecs.World)
	if !ok || !components.Input.Get(inputEntry).ActionJustPressed(cfg.ActionNextLevel) {
		return "", false
	}

	names := assets.LevelNames()
	for i, name := range names {
		if name == ps.level.Name && i+1 < len(names) {
			return names[i+1], true
		}
	}
	if len(names) == 0 {
		return "", false
	}
	return names[0], true
}
