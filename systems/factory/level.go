package factory

import (
	"fmt"
	"log"

	"github.com/automoto/timeslip/archetypes"
	"github.com/automoto/timeslip/components"
	cfg "github.com/automoto/timeslip/config"
	"github.com/automoto/timeslip/engine"
	"github.com/automoto/timeslip/shared/leveldata"
	"github.com/yohamta/donburi"
)

// CreateLevel populates sim with every body the level describes and grants
// its abilities. Statics come first, then boxes, then the player, which
// fixes the solver's iteration order.
func CreateLevel(sim *engine.Simulation, level *leveldata.Level) (*donburi.Entry, error) {
	entry := archetypes.Level.Spawn(sim.World)
	components.Level.SetValue(entry, components.LevelData{CurrentLevel: level})

	for _, p := range level.Platforms {
		if _, err := CreatePlatform(sim, p); err != nil {
			return nil, fmt.Errorf("platform %q: %w", p.ID, err)
		}
	}
	for _, pad := range level.JumpPads {
		if _, err := CreateJumpPad(sim, pad); err != nil {
			return nil, fmt.Errorf("jump pad %q: %w", pad.ID, err)
		}
	}
	for _, b := range level.Boxes {
		if _, err := CreateBox(sim, b); err != nil {
			// a broken box should not take the whole level down
			log.Printf("Warning: skipping box %q: %v", b.ID, err)
		}
	}
	if _, err := CreatePlayer(sim, level.Spawn.X, level.Spawn.Y); err != nil {
		return nil, fmt.Errorf("player: %w", err)
	}

	GrantAbilities(sim.Abilities, level.Abilities)
	return entry, nil
}

// GrantAbilities replaces the granted abilities with grants, or with the
// configured defaults when grants is nil.
func GrantAbilities(a *components.AbilitiesData, grants []leveldata.AbilityGrant) {
	a.Clear()
	if grants == nil {
		for name, uses := range cfg.Ability.Uses {
			a.Set(name, uses)
		}
		a.SetN(cfg.AbilityTimeReverseN, cfg.Ability.RewindSteps)
		return
	}

	for _, g := range grants {
		uses := g.Uses
		if uses < 0 {
			uses = components.Unlimited
		}
		a.Set(g.Name, uses)
		n := g.N
		if n <= 0 {
			n = cfg.Ability.RewindSteps
		}
		a.SetN(g.Name, n)
	}
}
