package factory

import (
	"github.com/automoto/timeslip/archetypes"
	"github.com/automoto/timeslip/components"
	cfg "github.com/automoto/timeslip/config"
	"github.com/automoto/timeslip/engine"
	"github.com/automoto/timeslip/shared/gamemath"
	"github.com/automoto/timeslip/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

func CreatePlayer(sim *engine.Simulation, x, y float64) (*donburi.Entry, error) {
	player := archetypes.Player.Spawn(sim.World)

	components.Player.SetValue(player, components.PlayerData{
		Spawn: gamemath.V(x, y),
	})

	// Animation state is kept on the entry; the body points at it so rewinds
	// restore the playhead.
	components.Animation.Set(player, components.NewAnimationData("player"))

	w, h := cfg.Player.CollisionWidth, cfg.Player.CollisionHeight
	components.Body.SetValue(player, components.BodyData{
		ID:        cfg.Player.ID,
		Kind:      components.KindPlayer,
		Position:  gamemath.V(x, y),
		Size:      components.Size{W: w, H: h},
		Mass:      cfg.Player.Mass,
		Friction:  cfg.Player.Friction,
		IsMovable: true,
		Animation: components.Animation.Get(player),
		Shape:     resolv.NewObject(x, y, w, h, tags.ResolvMovable, tags.ResolvPlayer),
	})

	if err := sim.AddBody(player); err != nil {
		sim.World.Remove(player.Entity())
		return nil, err
	}
	return player, nil
}
