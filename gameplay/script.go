package gameplay

import (
	"image/color"
	"log"

	"github.com/automoto/timeslip/components"
	cfg "github.com/automoto/timeslip/config"
	"github.com/automoto/timeslip/engine"
	"github.com/automoto/timeslip/shared/gamemath"
)

// RunScript is the per-frame scene script. It turns input into time
// abilities and handles the kill plane and goal zones. It runs once per
// rendered frame, before the simulation advances.
func RunScript(sim *engine.Simulation, _ float64) {
	if sim.Selection.Pending() {
		resolveSelection(sim)
	} else if runAbilities(sim) {
		return
	}

	player := sim.BodyByID(cfg.Player.ID)
	if player == nil {
		return
	}
	if player.Position.Y > cfg.Player.KillPlaneY {
		ReturnToInitial(sim)
	}
	checkGoal(sim, player)
}

// runAbilities reads the ability keys and reports whether the frame rewound.
func runAbilities(sim *engine.Simulation) bool {
	in := sim.Input

	// globalTimeReverse gates holding the rewind key, it is not consumed
	if in.ActionPressed(cfg.ActionRewind) && sim.Abilities.Has(cfg.AbilityGlobalTimeReverse) {
		sim.Rewind()
		return true
	}

	if in.ActionJustPressed(cfg.ActionRewindN) && sim.Abilities.Use(cfg.AbilityTimeReverseN) {
		ab, _ := sim.Abilities.Get(cfg.AbilityTimeReverseN)
		sim.RewindSteps(max(ab.N, 1))
		return true
	}

	switch {
	case in.ActionJustPressed(cfg.ActionLocalStop) && sim.Abilities.Use(cfg.AbilityLocalTimeStop):
		BeginSelection(sim, cfg.AbilityLocalTimeStop)
	case in.ActionJustPressed(cfg.ActionLocalSlow) && sim.Abilities.Use(cfg.AbilityLocalTimeSlow):
		BeginSelection(sim, cfg.AbilityLocalTimeSlow)
	}
	if in.ActionJustPressed(cfg.ActionGlobalSlow) {
		ToggleGlobalSlow(sim)
	}
	return false
}

// BeginSelection turns input off until the player clicks the body ability
// should apply to. The use is already spent.
func BeginSelection(sim *engine.Simulation, ability string) {
	sim.Selection.Ability = ability
	sim.Input.Disabled = true
}

// resolveSelection applies the pending ability to the movable body under a
// left click. A click on empty space, or a right click, spends the use on
// nothing. Input comes back on either way.
func resolveSelection(sim *engine.Simulation) {
	in := sim.Input
	switch {
	case in.MouseJustPressed(components.MouseLeft):
		if target := MovableAt(sim, in.Cursor); target != nil {
			targets := []*components.BodyData{target}
			switch sim.Selection.Ability {
			case cfg.AbilityLocalTimeStop:
				LocalTimeStop(sim, targets)
			case cfg.AbilityLocalTimeSlow:
				LocalTimeSlow(sim, targets)
			}
		}
	case in.MouseJustPressed(components.MouseRight):
	default:
		return
	}
	sim.Selection.Ability = ""
	in.Disabled = false
}

// MovableAt returns the first non-player movable body containing p.
func MovableAt(sim *engine.Simulation, p gamemath.Vec2) *components.BodyData {
	for _, b := range sim.Movables(cfg.Player.ID) {
		if b.AABB().Contains(p) {
			return b
		}
	}
	return nil
}

// LocalTimeStop snaps global time back to normal and freezes targets.
func LocalTimeStop(sim *engine.Simulation, targets []*components.BodyData) {
	sim.Time.FadeGlobal(1, cfg.Ability.GlobalFadeTime)
	sim.Time.SlowOnly(targets, 0, cfg.Ability.LocalStopDuration)
	burst(sim, targets, cfg.LightBlue)
}

// LocalTimeSlow slows targets.
func LocalTimeSlow(sim *engine.Simulation, targets []*components.BodyData) {
	sim.Time.SlowOnly(targets, cfg.Ability.LocalSlowScale, cfg.Ability.LocalSlowDuration)
	burst(sim, targets, cfg.Purple)
}

// ToggleGlobalSlow slows the world around the player, or fades it back to
// normal when already slowed. Turning it on consumes a globalTimeSlow use.
func ToggleGlobalSlow(sim *engine.Simulation) bool {
	player := sim.BodyByID(cfg.Player.ID)
	if player == nil {
		return false
	}

	if o, ok := sim.Time.Override(player); ok && o.IgnoreGlobal {
		sim.Time.Clear(player)
		sim.Time.FadeGlobal(1, cfg.Ability.GlobalFadeTime)
		return true
	}

	if !sim.Abilities.Use(cfg.AbilityGlobalTimeSlow) {
		return false
	}
	sim.Time.SlowExcept([]*components.BodyData{player}, cfg.Ability.GlobalSlowScale, 0)
	return true
}

// ReturnToInitial puts the player back on its spawn point at rest.
func ReturnToInitial(sim *engine.Simulation) {
	entry, ok := sim.Entry(cfg.Player.ID)
	if !ok {
		return
	}
	body := components.Body.Get(entry)
	spawn := components.Player.Get(entry).Spawn

	body.Position = spawn
	body.Velocity.X, body.Velocity.Y = 0, 0
	body.Forces.X, body.Forces.Y = 0, 0
	body.IsGrounded = false
	body.SyncShape()

	c := body.Center()
	sim.Particles.Emit(c.X, c.Y, 30, cfg.Orange)
}

func checkGoal(sim *engine.Simulation, player *components.BodyData) {
	levelEntry, ok := components.Level.First(sim.World)
	if !ok {
		return
	}
	level := components.Level.Get(levelEntry)
	if level.Completed || level.CurrentLevel == nil {
		return
	}

	box := player.AABB()
	for _, g := range level.CurrentLevel.Goals {
		goal := gamemath.NewAABB(gamemath.V(g.X, g.Y), g.W, g.H)
		if box.Overlaps(goal) {
			level.Completed = true
			c := player.Center()
			sim.Particles.Emit(c.X, c.Y, 60, cfg.LightGreen)
			log.Printf("Level %s complete after %d steps", level.CurrentLevel.Name, sim.Steps())
			return
		}
	}
}

func burst(sim *engine.Simulation, bodies []*components.BodyData, c color.RGBA) {
	for _, b := range bodies {
		center := b.Center()
		sim.Particles.Emit(center.X, center.Y, 12, c)
	}
}
