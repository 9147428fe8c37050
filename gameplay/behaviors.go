// Package gameplay holds the per-kind behaviours and the scene script that
// turn input into time abilities.
package gameplay

import (
	"math"

	"github.com/automoto/timeslip/components"
	cfg "github.com/automoto/timeslip/config"
	"github.com/automoto/timeslip/engine"
	"github.com/automoto/timeslip/physics"
	"github.com/automoto/timeslip/shared/gamemath"
)

// RegisterBehaviors installs the per-kind behaviours on sim.
func RegisterBehaviors(sim *engine.Simulation) {
	sim.Register(components.KindPlayer, UpdatePlayer)
	sim.Register(components.KindBox, UpdateBox)
}

// UpdatePlayer is the player behaviour: push toward the held direction up
// to max speed, jump when grounded, and pick the matching animation.
func UpdatePlayer(b *components.BodyData, dt float64, _ []*components.BodyData, in engine.InputQuery) {
	anim, _ := b.Animation.(*components.AnimationData)

	moveDirection := 0.0
	switch {
	case actionDown(in, cfg.ActionMoveLeft):
		moveDirection = -1
		b.FacingLeft = true
	case actionDown(in, cfg.ActionMoveRight):
		moveDirection = 1
		b.FacingLeft = false
	}

	if moveDirection != 0 {
		setAnimation(anim, cfg.Running)
		v := b.Velocity.X
		// only push while under max speed in the direction of travel
		if math.Abs(v) < cfg.Player.MaxSpeed || gamemath.Sign(v) != moveDirection {
			physics.ApplyForce(b, moveDirection*cfg.Player.MoveForce, 0)
		}
	} else if b.IsGrounded {
		b.Velocity.X = gamemath.ApplyFriction(b.Velocity.X, cfg.Player.GroundDeceleration*dt)
	}

	if actionDown(in, cfg.ActionJump) && b.IsGrounded {
		b.Velocity.Y = -cfg.Player.JumpSpeed
		b.IsGrounded = false
		setAnimation(anim, cfg.Jump)
	} else if moveDirection == 0 && b.IsGrounded {
		setAnimation(anim, cfg.Idle)
	}

	if anim != nil {
		anim.Update(dt)
	}
}

// UpdateBox advances the box animation and bleeds off sliding speed while
// it sits on something.
func UpdateBox(b *components.BodyData, dt float64, _ []*components.BodyData, _ engine.InputQuery) {
	if b.IsGrounded {
		b.Velocity.X = gamemath.ApplyFriction(b.Velocity.X, cfg.Box.GroundDeceleration*dt)
	}
	if anim, ok := b.Animation.(*components.AnimationData); ok {
		anim.Update(dt)
	}
}

func setAnimation(anim *components.AnimationData, state cfg.StateID) {
	if anim != nil {
		anim.SetAnimation(state)
	}
}

func actionDown(in engine.InputQuery, action cfg.ActionID) bool {
	if in == nil {
		return false
	}
	for _, k := range cfg.KeysFor(action) {
		if in.IsKeyDown(k) {
			return true
		}
	}
	return false
}
