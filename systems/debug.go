package systems

import (
	"image/color"

	"github.com/automoto/timeslip/components"
	cfg "github.com/automoto/timeslip/config"
	"github.com/automoto/timeslip/engine"
	"github.com/automoto/timeslip/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

// UpdateDebug toggles the shape overlay and remembers the choice.
func UpdateDebug(e *ecs.ECS) {
	entry, ok := components.Input.First(e.World)
	if !ok {
		return
	}
	if components.Input.Get(entry).ActionJustPressed(cfg.ActionToggleDebug) {
		cfg.Debug.ShowShapes = !cfg.Debug.ShowShapes
		SaveCurrentSettings()
	}
}

// DrawDebug outlines every broad-phase shape and the goal zones.
func DrawDebug(sim *engine.Simulation) func(*ecs.ECS, *ebiten.Image) {
	return func(e *ecs.ECS, screen *ebiten.Image) {
		if !cfg.Debug.ShowShapes {
			return
		}

		width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
		camX, camY, ok := cameraOffset(e, width, height)
		if !ok {
			return
		}

		if space := sim.Physics.Space(); space != nil {
			for _, obj := range space.Objects() {
				// Determine color based on tags
				c := cfg.Cyan
				if obj.HasTags(tags.ResolvPlayer) {
					c = color.RGBA{0, 0, 255, 255} // Blue
				} else if obj.HasTags(tags.ResolvOneWay) {
					c = cfg.LightGreen
				} else if obj.HasTags(tags.ResolvSolid) {
					c = color.RGBA{100, 100, 100, 255} // Grey
				}
				strokeRect(screen, obj.X+camX, obj.Y+camY, obj.W, obj.H, c)
			}
		}

		if levelEntry, ok := components.Level.First(e.World); ok {
			if level := components.Level.Get(levelEntry).CurrentLevel; level != nil {
				for _, g := range level.Goals {
					strokeRect(screen, g.X+camX, g.Y+camY, g.W, g.H, cfg.Orange)
				}
			}
		}
	}
}

func strokeRect(screen *ebiten.Image, x, y, w, h float64, c color.Color) {
	vector.FillRect(screen, float32(x), float32(y), float32(w), 1, c, false)     // Top
	vector.FillRect(screen, float32(x), float32(y+h-1), float32(w), 1, c, false) // Bottom
	vector.FillRect(screen, float32(x), float32(y), 1, float32(h), c, false)     // Left
	vector.FillRect(screen, float32(x+w-1), float32(y), 1, float32(h), c, false) // Right
}
