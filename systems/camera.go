package systems

import (
	"math"

	"github.com/automoto/timeslip/components"
	"github.com/automoto/timeslip/config"
	"github.com/automoto/timeslip/tags"
	"github.com/yohamta/donburi/ecs"
)

func UpdateCamera(e *ecs.ECS) {
	cameraEntry, ok := components.Camera.First(e.World)
	if !ok {
		return
	}
	camera := components.Camera.Get(cameraEntry)

	playerEntry, ok := tags.Player.First(e.World)
	if !ok {
		return
	}
	target := components.Body.Get(playerEntry).Center()
	targetX, targetY := target.X, target.Y

	// Keep the level filling the screen when it is larger than the view
	if levelEntry, ok := components.Level.First(e.World); ok {
		if level := components.Level.Get(levelEntry).CurrentLevel; level != nil {
			screenWidth := float64(config.C.Width)
			screenHeight := float64(config.C.Height)
			targetX = clampAxis(targetX, screenWidth, float64(level.Width))
			targetY = clampAxis(targetY, screenHeight, float64(level.Height))
		}
	}

	// Center the camera on the constrained target position, with some smoothing.
	camera.Position.X += (targetX - camera.Position.X) * config.Camera.FollowSmoothing
	camera.Position.Y += (targetY - camera.Position.Y) * config.Camera.FollowSmoothing
}

func clampAxis(v, screen, level float64) float64 {
	if level <= screen {
		return level / 2
	}
	return math.Max(screen/2, math.Min(level-screen/2, v))
}

// cameraOffset converts world coordinates to screen coordinates.
func cameraOffset(e *ecs.ECS, width, height int) (float64, float64, bool) {
	cameraEntry, ok := components.Camera.First(e.World)
	if !ok {
		return 0, 0, false
	}
	camera := components.Camera.Get(cameraEntry)
	return float64(width)/2 - camera.Position.X, float64(height)/2 - camera.Position.Y, true
}
