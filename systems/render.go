package systems

import (
	"image/color"

	"github.com/automoto/timeslip/components"
	cfg "github.com/automoto/timeslip/config"
	"github.com/automoto/timeslip/engine"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

// Viewport culling padding in pixels
const cullPadding = 64.0

// DrawBodies renders every body as a filled rectangle tinted by how fast
// time runs for it.
func DrawBodies(sim *engine.Simulation) func(*ecs.ECS, *ebiten.Image) {
	return func(e *ecs.ECS, screen *ebiten.Image) {
		width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
		camX, camY, ok := cameraOffset(e, width, height)
		if !ok {
			return
		}

		for _, b := range sim.Bodies() {
			x, y := b.Position.X+camX, b.Position.Y+camY
			// Viewport Culling
			if x+b.Size.W < -cullPadding || x > float64(width)+cullPadding ||
				y+b.Size.H < -cullPadding || y > float64(height)+cullPadding {
				continue
			}

			c := bodyColor(b, sim.Time.ScaleFor(b))
			vector.FillRect(screen, float32(x), float32(y), float32(b.Size.W), float32(b.Size.H), c, false)

			if anim, ok := b.Animation.(*components.AnimationData); ok {
				drawFrameMarker(screen, b, anim, x, y)
			}
		}
	}
}

func bodyColor(b *components.BodyData, scale float64) color.RGBA {
	if b.IsMovable {
		switch {
		case scale == 0:
			return cfg.LightBlue
		case scale < 1:
			return cfg.Purple
		}
	}

	switch b.Kind {
	case components.KindPlayer:
		return cfg.Cyan
	case components.KindBox:
		return cfg.Brown
	case components.KindJumpPad:
		return cfg.Orange
	}
	if b.IsOneWay {
		return cfg.LightGreen
	}
	return cfg.Green
}

// drawFrameMarker draws a strip on the facing side whose height follows the
// animation frame, so playback and rewinds are visible without sprites.
func drawFrameMarker(screen *ebiten.Image, b *components.BodyData, anim *components.AnimationData, x, y float64) {
	const markerWidth = 4.0
	mx := x + b.Size.W - markerWidth
	if b.FacingLeft {
		mx = x
	}
	h := b.Size.H / 4 * float64(anim.Frame()%4+1)
	vector.FillRect(screen, float32(mx), float32(y), markerWidth, float32(h), cfg.White, false)
}

// DrawParticles renders the live particles as small squares.
func DrawParticles(sim *engine.Simulation) func(*ecs.ECS, *ebiten.Image) {
	return func(e *ecs.ECS, screen *ebiten.Image) {
		width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
		camX, camY, ok := cameraOffset(e, width, height)
		if !ok {
			return
		}

		size := float32(cfg.Particles.Size)
		for _, p := range sim.Particles.Particles() {
			x := float32(p.Position.X+camX) - size/2
			y := float32(p.Position.Y+camY) - size/2
			vector.FillRect(screen, x, y, size, size, p.Color, false)
		}
	}
}
