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

// CreateBox spawns a pushable box. Zero size, mass or friction fall back to
// the box configuration.
func CreateBox(sim *engine.Simulation, spec leveldata.Box) (*donburi.Entry, error) {
	box := archetypes.Box.Spawn(sim.World)

	size := orDefault(spec.Size, cfg.Box.Size)
	components.Animation.Set(box, components.NewAnimationData("box"))
	components.Body.SetValue(box, components.BodyData{
		ID:        spec.ID,
		Kind:      components.KindBox,
		Position:  gamemath.V(spec.X, spec.Y),
		Size:      components.Size{W: size, H: size},
		Mass:      orDefault(spec.Mass, cfg.Box.Mass),
		Friction:  orDefault(spec.Friction, cfg.Box.Friction),
		IsMovable: true,
		Animation: components.Animation.Get(box),
		Shape:     resolv.NewObject(spec.X, spec.Y, size, size, tags.ResolvMovable, tags.ResolvBox),
	})

	if err := sim.AddBody(box); err != nil {
		sim.World.Remove(box.Entity())
		return nil, err
	}
	return box, nil
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}
