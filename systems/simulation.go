package systems

import (
	"github.com/automoto/timeslip/engine"
	"github.com/automoto/timeslip/gameplay"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

// UpdateSimulation returns the system that runs the scene script and then
// advances sim by one ebiten tick of wall time.
func UpdateSimulation(sim *engine.Simulation) func(*ecs.ECS) {
	return func(e *ecs.ECS) {
		dt := 1.0 / float64(ebiten.TPS())
		gameplay.RunScript(sim, dt)
		sim.Advance(dt)
	}
}
