package archetypes

import (
	"github.com/automoto/timeslip/components"
	"github.com/automoto/timeslip/tags"
	"github.com/yohamta/donburi"
)

var (
	Platform = newArchetype(
		tags.Platform,
		components.Body,
	)
	JumpPad = newArchetype(
		tags.JumpPad,
		components.Body,
	)
	Player = newArchetype(
		tags.Player,
		components.Player,
		components.Body,
		components.Animation,
	)
	Box = newArchetype(
		tags.Box,
		components.Body,
		components.Animation,
	)
	Session = newArchetype(
		components.Input,
		components.Abilities,
		components.Selection,
	)
	Level = newArchetype(
		components.Level,
	)
	Camera = newArchetype(
		components.Camera,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(w donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	return w.Entry(w.Create(append(a.components, cs...)...))
}
