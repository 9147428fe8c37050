package systems

import (
	"fmt"
	"strings"

	"github.com/automoto/timeslip/components"
	cfg "github.com/automoto/timeslip/config"
	"github.com/automoto/timeslip/engine"
	"github.com/automoto/timeslip/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/yohamta/donburi/ecs"
)

const hudMargin = 8

// DrawHUD prints time scale, rewind buffer and ability charges, and a banner
// once the level is complete.
func DrawHUD(sim *engine.Simulation) func(*ecs.ECS, *ebiten.Image) {
	return func(e *ecs.ECS, screen *ebiten.Image) {
		if cfg.Debug.ShowHUD {
			drawText(screen, fonts.HUD, hudText(sim), hudMargin, hudMargin)
		}
		if sim.Selection.Pending() {
			hint := fmt.Sprintf("click a body: %s   right click: cancel", sim.Selection.Ability)
			drawText(screen, fonts.HUD, hint, hudMargin, screen.Bounds().Dy()-hudMargin*3)
		}

		if levelEntry, ok := components.Level.First(e.World); ok {
			if components.Level.Get(levelEntry).Completed {
				drawBanner(screen, "LEVEL COMPLETE", "enter: next level   backspace: restart")
			}
		}
	}
}

func hudText(sim *engine.Simulation) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "time x%.2f  history %d/%d  step %d\n",
		sim.Time.Global(), sim.History.Len(), sim.History.Cap(), sim.Steps())
	for _, name := range sim.Abilities.Names() {
		ab, _ := sim.Abilities.Get(name)
		fmt.Fprintf(&sb, "%-18s %s\n", name, usesLabel(ab))
	}
	return sb.String()
}

func drawBanner(screen *ebiten.Image, title, hint string) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	if !fonts.Loaded(fonts.Banner) || !fonts.Loaded(fonts.HUD) {
		ebitenutil.DebugPrintAt(screen, title+"\n"+hint, w/2-60, h/3)
		return
	}

	titleFont := fonts.Banner.Get()
	titleBounds := text.BoundString(titleFont, title)
	text.Draw(screen, title, titleFont, (w-titleBounds.Dx())/2, h/3, cfg.White)

	hintFont := fonts.HUD.Get()
	hintBounds := text.BoundString(hintFont, hint)
	text.Draw(screen, hint, hintFont, (w-hintBounds.Dx())/2, h/3+titleBounds.Dy()+hudMargin*2, cfg.LightGreen)
}

// drawText falls back to the debug font until the named face is loaded.
func drawText(screen *ebiten.Image, name fonts.FontName, s string, x, y int) {
	if !fonts.Loaded(name) {
		ebitenutil.DebugPrintAt(screen, s, x, y)
		return
	}
	face := name.Get()
	// text.Draw positions the baseline, not the top edge
	text.Draw(screen, s, face, x, y+face.Metrics().Ascent.Ceil(), cfg.White)
}

func usesLabel(ab components.Ability) string {
	if ab.Uses == components.Unlimited {
		return "inf"
	}
	return fmt.Sprintf("%d/%d", ab.Uses, ab.Max)
}
