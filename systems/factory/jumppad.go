package factory

import (
	"github.com/automoto/timeslip/archetypes"
	"github.com/automoto/timeslip/components"
	cfg "github.com/automoto/timeslip/config"
	"github.com/automoto/timeslip/engine"
	"github.com/automoto/timeslip/shared/gamemath"
	"github.com/automoto/timeslip/shared/leveldata"
	"github.com/automoto/timeslip/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// CreateJumpPad spawns a static pad that launches any movable body landing
// on it straight up.
func CreateJumpPad(sim *engine.Simulation, spec leveldata.JumpPad) (*donburi.Entry, error) {
	pad := archetypes.JumpPad.Spawn(sim.World)

	speed := orDefault(spec.LaunchSpeed, cfg.JumpPad.LaunchSpeed)
	components.Body.SetValue(pad, components.BodyData{
		ID:       spec.ID,
		Kind:     components.KindJumpPad,
		Position: gamemath.V(spec.X, spec.Y),
		Size:     components.Size{W: spec.W, H: spec.H},
		Mass:     1,
		Shape:    resolv.NewObject(spec.X, spec.Y, spec.W, spec.H, tags.ResolvSolid, tags.ResolvJumpPad),
	})

	body := components.Body.Get(pad)
	body.AddTrigger(landedOnTop, func(self, other *components.BodyData) {
		other.Velocity.Y = -speed
		other.IsGrounded = false
	}, false)

	if err := sim.AddBody(pad); err != nil {
		sim.World.Remove(pad.Entity())
		return nil, err
	}
	return pad, nil
}

func landedOnTop(self, other *components.BodyData) bool {
	return other.IsMovable && other.Position.Y+other.Size.H <= self.Position.Y+cfg.Physics.OneWayEpsilon
}
