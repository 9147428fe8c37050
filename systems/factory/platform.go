package factory

import (
	"github.com/automoto/timeslip/archetypes"
	"github.com/automoto/timeslip/components"
	"github.com/automoto/timeslip/engine"
	"github.com/automoto/timeslip/shared/gamemath"
	"github.com/automoto/timeslip/shared/leveldata"
	"github.com/automoto/timeslip/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

func CreatePlatform(sim *engine.Simulation, spec leveldata.Platform) (*donburi.Entry, error) {
	platform := archetypes.Platform.Spawn(sim.World)

	tag := tags.ResolvSolid
	if spec.OneWay {
		tag = tags.ResolvOneWay
	}
	components.Body.SetValue(platform, components.BodyData{
		ID:       spec.ID,
		Kind:     components.KindPlatform,
		Position: gamemath.V(spec.X, spec.Y),
		Size:     components.Size{W: spec.W, H: spec.H},
		Mass:     1,
		IsOneWay: spec.OneWay,
		Shape:    resolv.NewObject(spec.X, spec.Y, spec.W, spec.H, tag),
	})

	if err := sim.AddBody(platform); err != nil {
		sim.World.Remove(platform.Entity())
		return nil, err
	}
	return platform, nil
}
