package gameplay

import (
	"testing"

	"github.com/automoto/timeslip/components"
	cfg "github.com/automoto/timeslip/config"
	"github.com/automoto/timeslip/engine"
	"github.com/automoto/timeslip/shared/gamemath"
	"github.com/automoto/timeslip/shared/leveldata"
	"github.com/automoto/timeslip/systems/factory"
	"github.com/yohamta/donburi"
	"gonum.org/v1/gonum/floats/scalar"
)

func testLevel() *leveldata.Level {
	return &leveldata.Level{
		Name:   "test",
		Width:  1280,
		Height: 640,
		Spawn:  leveldata.Point{X: 100, Y: 400},
		Platforms: []leveldata.Platform{
			{ID: "floor", Rect: leveldata.Rect{X: 0, Y: 528, W: 1280, H: 64}},
		},
		Boxes: []leveldata.Box{
			{ID: "crate", X: 400, Y: 464},
		},
		Goals: []leveldata.Rect{{X: 1100, Y: 400, W: 100, H: 128}},
	}
}

func newScene(t *testing.T) *engine.Simulation {
	t.Helper()
	sim := engine.New(donburi.NewWorld(), factory.CreateSpace(1280, 640))
	RegisterBehaviors(sim)
	if _, err := factory.CreateLevel(sim, testLevel()); err != nil {
		t.Fatalf("CreateLevel: %v", err)
	}
	return sim
}

func press(sim *engine.Simulation, key string) {
	sim.Input.BeginFrame()
	sim.Input.Press(key)
}

func TestPlayerMovement(t *testing.T) {
	tests := []struct {
		name       string
		keys       []string
		velocity   gamemath.Vec2
		grounded   bool
		wantForceX float64
		wantVY     float64
	}{
		{
			name:       "push right from rest",
			keys:       []string{"d"},
			grounded:   true,
			wantForceX: cfg.Player.MoveForce,
		},
		{
			name:       "no push past max speed",
			keys:       []string{"arrowright"},
			velocity:   gamemath.V(cfg.Player.MaxSpeed, 0),
			grounded:   true,
			wantForceX: 0,
		},
		{
			name:       "push against travel past max speed",
			keys:       []string{"a"},
			velocity:   gamemath.V(cfg.Player.MaxSpeed, 0),
			grounded:   true,
			wantForceX: -cfg.Player.MoveForce,
		},
		{
			name:     "jump when grounded",
			keys:     []string{"w"},
			grounded: true,
			wantVY:   -cfg.Player.JumpSpeed,
		},
		{
			name:     "no jump in the air",
			keys:     []string{"w"},
			velocity: gamemath.V(0, 50),
			wantVY:   50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := components.NewInputData()
			for _, k := range tt.keys {
				in.Press(k)
			}
			b := &components.BodyData{
				ID:         cfg.Player.ID,
				Kind:       components.KindPlayer,
				Mass:       cfg.Player.Mass,
				Velocity:   tt.velocity,
				IsMovable:  true,
				IsGrounded: tt.grounded,
			}

			UpdatePlayer(b, cfg.Time.FixedStep, nil, in)

			if b.Forces.X != tt.wantForceX {
				t.Errorf("force = %v, want %v", b.Forces.X, tt.wantForceX)
			}
			if b.Velocity.Y != tt.wantVY {
				t.Errorf("vy = %v, want %v", b.Velocity.Y, tt.wantVY)
			}
		})
	}
}

func TestPlayerAnimationFollowsInput(t *testing.T) {
	anim := components.NewAnimationData("player")
	b := &components.BodyData{Mass: 1, IsMovable: true, IsGrounded: true, Animation: anim}
	in := components.NewInputData()

	in.Press("a")
	UpdatePlayer(b, 0.01, nil, in)
	if anim.CurrentSheet != cfg.Running || !b.FacingLeft {
		t.Errorf("sheet %q facingLeft %v, want run facing left", anim.CurrentSheet, b.FacingLeft)
	}

	in.BeginFrame()
	UpdatePlayer(b, 0.01, nil, in)
	if anim.CurrentSheet != cfg.Idle {
		t.Errorf("sheet %q, want idle", anim.CurrentSheet)
	}

	in.Press("w")
	UpdatePlayer(b, 0.01, nil, in)
	if anim.CurrentSheet != cfg.Jump {
		t.Errorf("sheet %q, want jump", anim.CurrentSheet)
	}
}

func TestGroundDeceleration(t *testing.T) {
	player := &components.BodyData{Velocity: gamemath.V(100, 0), IsGrounded: true}
	UpdatePlayer(player, 0.01, nil, components.NewInputData())
	if want := 100 - cfg.Player.GroundDeceleration*0.01; !scalar.EqualWithinAbs(player.Velocity.X, want, 1e-9) {
		t.Errorf("player vx = %v, want %v", player.Velocity.X, want)
	}

	box := &components.BodyData{Velocity: gamemath.V(-1, 0), IsGrounded: true}
	UpdateBox(box, 0.01, nil, nil)
	if box.Velocity.X != 0 {
		t.Errorf("box vx = %v, want stopped", box.Velocity.X)
	}

	airborne := &components.BodyData{Velocity: gamemath.V(100, 0)}
	UpdateBox(airborne, 0.01, nil, nil)
	if airborne.Velocity.X != 100 {
		t.Errorf("airborne box slowed to %v", airborne.Velocity.X)
	}
}

// click moves the cursor to p and presses b this frame.
func click(sim *engine.Simulation, b components.MouseButton, p gamemath.Vec2) {
	sim.Input.BeginFrame()
	sim.Input.Cursor = p
	sim.Input.SetMouse(b, true)
}

func TestLocalTimeStopFreezesOthers(t *testing.T) {
	sim := newScene(t)
	sim.Time.SetGlobal(0.5)
	before, _ := sim.Abilities.Get(cfg.AbilityLocalTimeStop)

	press(sim, "e")
	RunScript(sim, 0)

	crate := sim.BodyByID("crate")
	if _, ok := sim.Time.Override(crate); ok {
		t.Fatal("crate frozen before a target was clicked")
	}
	after, _ := sim.Abilities.Get(cfg.AbilityLocalTimeStop)
	if after.Uses != before.Uses-1 {
		t.Errorf("uses %d -> %d, want one consumed", before.Uses, after.Uses)
	}

	click(sim, components.MouseLeft, crate.Center())
	RunScript(sim, 0)

	player := sim.BodyByID(cfg.Player.ID)
	if got := sim.Time.ScaleFor(crate); got != 0 {
		t.Errorf("crate scale = %v, want 0", got)
	}
	if !sim.Time.Fading() {
		t.Error("global scale should fade back to normal")
	}
	if _, ok := sim.Time.Override(player); ok {
		t.Error("player was frozen")
	}
	if sim.Particles.Len() == 0 {
		t.Error("no particles emitted")
	}

	// holding the key does not fire again
	sim.Input.BeginFrame()
	sim.Input.Press("e")
	sim.Input.Previous["e"] = true
	RunScript(sim, 0)
	if again, _ := sim.Abilities.Get(cfg.AbilityLocalTimeStop); again.Uses != after.Uses {
		t.Errorf("held key consumed another use")
	}
	if sim.Selection.Pending() {
		t.Error("held key started another selection")
	}
}

func TestLocalTimeStopAppliesToClickedBodyOnly(t *testing.T) {
	sim := newScene(t)
	if _, err := factory.CreateBox(sim, leveldata.Box{ID: "barrel", X: 700, Y: 464}); err != nil {
		t.Fatalf("CreateBox: %v", err)
	}
	crate := sim.BodyByID("crate")
	barrel := sim.BodyByID("barrel")

	press(sim, "e")
	RunScript(sim, 0)
	if !sim.Selection.Pending() {
		t.Fatal("pressing e did not start a selection")
	}
	if !sim.Input.Disabled {
		t.Error("input left enabled while selecting")
	}

	click(sim, components.MouseLeft, barrel.Center())
	RunScript(sim, 0)

	if o, ok := sim.Time.Override(barrel); !ok || o.Scale != 0 {
		t.Errorf("barrel override = %+v, %v; want frozen", o, ok)
	}
	if _, ok := sim.Time.Override(crate); ok {
		t.Error("crate was frozen but not clicked")
	}
	if sim.Selection.Pending() {
		t.Error("selection still pending after the click")
	}
	if sim.Input.Disabled {
		t.Error("input still disabled after the click")
	}
}

func TestSelectionEnds(t *testing.T) {
	tests := []struct {
		name   string
		button components.MouseButton
		at     func(sim *engine.Simulation) gamemath.Vec2
	}{
		{
			name:   "right click cancels",
			button: components.MouseRight,
			at:     func(sim *engine.Simulation) gamemath.Vec2 { return sim.BodyByID("crate").Center() },
		},
		{
			name:   "left click on empty space",
			button: components.MouseLeft,
			at:     func(*engine.Simulation) gamemath.Vec2 { return gamemath.V(900, 100) },
		},
		{
			name:   "left click on the player",
			button: components.MouseLeft,
			at:     func(sim *engine.Simulation) gamemath.Vec2 { return sim.BodyByID(cfg.Player.ID).Center() },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := newScene(t)
			press(sim, "q")
			RunScript(sim, 0)
			before, _ := sim.Abilities.Get(cfg.AbilityLocalTimeSlow)

			click(sim, tt.button, tt.at(sim))
			RunScript(sim, 0)

			for _, b := range sim.Bodies() {
				if _, ok := sim.Time.Override(b); ok {
					t.Errorf("%s was slowed", b.ID)
				}
			}
			if sim.Selection.Pending() || sim.Input.Disabled {
				t.Errorf("pending = %v disabled = %v, want both false", sim.Selection.Pending(), sim.Input.Disabled)
			}
			if after, _ := sim.Abilities.Get(cfg.AbilityLocalTimeSlow); after.Uses != before.Uses {
				t.Errorf("uses %d -> %d, the use was already spent", before.Uses, after.Uses)
			}
		})
	}
}

func TestInputDisabledWhileSelecting(t *testing.T) {
	sim := newScene(t)
	press(sim, "q")
	RunScript(sim, 0)

	// no click yet: movement keys are ignored and the selection waits
	press(sim, "d")
	RunScript(sim, 0)
	if sim.Input.ActionPressed(cfg.ActionMoveRight) {
		t.Error("movement read while selecting")
	}
	if !sim.Selection.Pending() {
		t.Error("selection ended without a click")
	}

	sim.Reset()
	if sim.Selection.Pending() || sim.Input.Disabled {
		t.Error("reset left a selection pending")
	}
}

func TestExhaustedAbilityDoesNothing(t *testing.T) {
	sim := newScene(t)
	sim.Abilities.Set(cfg.AbilityLocalTimeSlow, 0)

	press(sim, "q")
	RunScript(sim, 0)

	if sim.Selection.Pending() {
		t.Error("exhausted ability started a selection")
	}
	if sim.Input.Disabled {
		t.Error("exhausted ability disabled input")
	}
}

func TestLocalTimeSlow(t *testing.T) {
	sim := newScene(t)
	press(sim, "q")
	RunScript(sim, 0)

	crate := sim.BodyByID("crate")
	click(sim, components.MouseLeft, crate.Center())
	RunScript(sim, 0)

	if got := sim.Time.ScaleFor(crate); got != cfg.Ability.LocalSlowScale {
		t.Errorf("crate scale = %v, want %v", got, cfg.Ability.LocalSlowScale)
	}
	o, _ := sim.Time.Override(crate)
	if o.Duration != cfg.Ability.LocalSlowDuration {
		t.Errorf("override duration = %v", o.Duration)
	}
	if sim.Time.Fading() {
		t.Error("local slow should not touch global time")
	}
}

func TestToggleGlobalSlow(t *testing.T) {
	sim := newScene(t)
	player := sim.BodyByID(cfg.Player.ID)
	crate := sim.BodyByID("crate")

	press(sim, "g")
	RunScript(sim, 0)
	sim.Time.Update(cfg.Ability.GlobalFadeTime)

	if got := sim.Time.ScaleFor(player); got != 1 {
		t.Errorf("player scale = %v, want 1", got)
	}
	if got := sim.Time.ScaleFor(crate); !scalar.EqualWithinAbs(got, cfg.Ability.GlobalSlowScale, 1e-12) {
		t.Errorf("crate scale = %v, want %v", got, cfg.Ability.GlobalSlowScale)
	}

	press(sim, "g")
	RunScript(sim, 0)
	sim.Time.Update(cfg.Ability.GlobalFadeTime)

	if got := sim.Time.ScaleFor(crate); got != 1 {
		t.Errorf("crate scale after toggling off = %v, want 1", got)
	}
	if _, ok := sim.Time.Override(player); ok {
		t.Error("player override left behind")
	}
}

func TestHoldingRewindStepsBack(t *testing.T) {
	sim := newScene(t)
	for i := 0; i < 10; i++ {
		sim.Step(cfg.Time.FixedStep)
	}

	press(sim, "r")
	RunScript(sim, 0)
	if sim.History.Len() != 9 {
		t.Fatalf("history len = %d, want 9", sim.History.Len())
	}
	if n := sim.Advance(cfg.Time.FixedStep); n != 0 {
		t.Errorf("simulation advanced %d steps during a rewind frame", n)
	}

	sim.Abilities.Clear()
	RunScript(sim, 0)
	if sim.History.Len() != 9 {
		t.Error("rewound without the globalTimeReverse ability")
	}
}

func TestRewindN(t *testing.T) {
	sim := newScene(t)
	for i := 0; i < 10; i++ {
		sim.Step(cfg.Time.FixedStep)
	}
	ab, _ := sim.Abilities.Get(cfg.AbilityTimeReverseN)

	press(sim, "t")
	RunScript(sim, 0)

	if got := 10 - sim.History.Len(); got != ab.N {
		t.Errorf("rewound %d frames, want %d", got, ab.N)
	}
}

func TestKillPlaneReturnsPlayerToSpawn(t *testing.T) {
	sim := newScene(t)
	player := sim.BodyByID(cfg.Player.ID)
	player.Position = gamemath.V(700, cfg.Player.KillPlaneY+10)
	player.Velocity = gamemath.V(20, 900)

	sim.Input.BeginFrame()
	RunScript(sim, 0)

	if player.Position != gamemath.V(100, 400) {
		t.Errorf("position = %v, want spawn", player.Position)
	}
	if !player.Velocity.IsZero() {
		t.Errorf("velocity = %v, want zero", player.Velocity)
	}
	if player.Shape.Y != 400 {
		t.Errorf("shape not synced: y = %v", player.Shape.Y)
	}
}

func TestReachingGoalCompletesLevel(t *testing.T) {
	sim := newScene(t)
	levelEntry, _ := components.Level.First(sim.World)
	level := components.Level.Get(levelEntry)

	sim.Input.BeginFrame()
	RunScript(sim, 0)
	if level.Completed {
		t.Fatal("level completed at spawn")
	}

	sim.BodyByID(cfg.Player.ID).Position = gamemath.V(1120, 400)
	RunScript(sim, 0)
	if !level.Completed {
		t.Error("level not completed inside the goal")
	}
}

func TestSceneSettles(t *testing.T) {
	sim := newScene(t)
	sim.Input.BeginFrame()
	for i := 0; i < 240; i++ {
		RunScript(sim, cfg.Time.FixedStep)
		sim.Advance(cfg.Time.FixedStep)
	}

	player := sim.BodyByID(cfg.Player.ID)
	crate := sim.BodyByID("crate")
	if !player.IsGrounded || !crate.IsGrounded {
		t.Errorf("grounded: player %v crate %v", player.IsGrounded, crate.IsGrounded)
	}
	if bottom := player.Position.Y + player.Size.H; !scalar.EqualWithinAbs(bottom, 528, cfg.Physics.RestingTolerance) {
		t.Errorf("player bottom = %v, want resting on the floor at 528", bottom)
	}
}
