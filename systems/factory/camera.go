package factory

import (
	"github.com/automoto/timeslip/archetypes"
	"github.com/automoto/timeslip/components"
	"github.com/yohamta/donburi"
)

func CreateCamera(w donburi.World, x, y float64) *donburi.Entry {
	camera := archetypes.Camera.Spawn(w)
	cam := components.Camera.Get(camera)
	cam.Position.X = x
	cam.Position.Y = y
	return camera
}
