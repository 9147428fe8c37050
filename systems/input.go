package systems

import (
	"strings"

	"github.com/automoto/timeslip/components"
	cfg "github.com/automoto/timeslip/config"
	"github.com/automoto/timeslip/shared/gamemath"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/yohamta/donburi/ecs"
)

// Reusable slice for pressed keys to avoid allocations
var pressedKeys []ebiten.Key

// UpdateInput polls the keyboard and mouse into the session's InputData.
// Must run BEFORE UpdateSimulation in the system order.
func UpdateInput(e *ecs.ECS) {
	entry, ok := components.Input.First(e.World)
	if !ok {
		return
	}
	in := components.Input.Get(entry)
	PollInput(in)

	// Cursor is kept in world space so the script can hit-test bodies.
	sx, sy := ebiten.CursorPosition()
	camX, camY, _ := cameraOffset(e, cfg.C.Width, cfg.C.Height)
	in.Cursor = gamemath.V(float64(sx)-camX, float64(sy)-camY)
}

// PollInput rolls in's frames and records what is held now. Key names are
// ebiten's key names lowercased ("a", "arrowleft", "space").
func PollInput(in *components.InputData) {
	in.BeginFrame()

	pressedKeys = inpututil.AppendPressedKeys(pressedKeys[:0])
	for _, k := range pressedKeys {
		in.Press(strings.ToLower(k.String()))
	}

	in.SetMouse(components.MouseLeft, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
	in.SetMouse(components.MouseMiddle, ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle))
	in.SetMouse(components.MouseRight, ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight))
}
