package physics

import (
	"math"

	"github.com/automoto/timeslip/components"
	"github.com/automoto/timeslip/config"
	"github.com/automoto/timeslip/shared/gamemath"
	"github.com/solarlune/resolv"
)

// Engine integrates forces and resolves collisions for an ordered body list.
// Bodies are processed strictly in list order.
type Engine struct {
	Config config.PhysicsConfig

	bp *broadPhase
}

// NewEngine returns an engine using the current physics configuration.
// space may be nil, in which case every body is swept against every other.
func NewEngine(space *resolv.Space) *Engine {
	e := &Engine{Config: config.Physics}
	e.bp = newBroadPhase(space, e.Config.OneWayEpsilon+1)
	return e
}

// Space returns the broad-phase space, nil when running without one.
func (e *Engine) Space() *resolv.Space {
	return e.bp.space
}

// Update advances every movable body by dt seconds (clamped to MaxDelta),
// then runs the resting-contact pass over the whole list.
func (e *Engine) Update(bodies []*components.BodyData, dt float64) {
	dt = gamemath.Clamp(dt, 0, e.Config.MaxDelta)
	e.bp.reset(bodies)

	gravity := gamemath.V(0, e.Config.Gravity)
	for _, obj := range bodies {
		if !obj.IsMovable || obj.Mass <= 0 {
			continue
		}

		obj.Forces = obj.Forces.Add(gravity.Scale(obj.Mass))
		obj.Velocity = obj.Velocity.Add(obj.Forces.Scale(dt / obj.Mass))
		obj.Forces = gamemath.Zero

		e.handleCollisions(obj, bodies, dt)
		obj.SyncShape()
	}

	e.resolveRestingContacts(bodies)
}

type contact struct {
	time   float64
	normal gamemath.Vec2
	other  *components.BodyData
}

func (e *Engine) handleCollisions(obj *components.BodyData, bodies []*components.BodyData, dt float64) {
	obj.IsGrounded = false
	remaining := 1.0

	e.separateOverlapping(obj, bodies)

	for iter := 0; remaining > 0 && iter < e.Config.MaxIterations; iter++ {
		step := dt * remaining
		earliest := contact{time: 1}

		box := obj.AABB()
		region := box.Union(box.Translate(obj.Velocity.Scale(step)))
		e.each(bodies, region, func(other *components.BodyData) {
			if other == obj {
				return
			}
			c := SweptAABB(obj, other, step)
			if other.IsOneWay && !e.landsOnOneWay(obj, other, c) {
				return
			}
			if c.Hit && c.Time < earliest.time {
				earliest = contact{time: c.Time, normal: c.Normal, other: other}
			}
		})

		obj.Position = obj.Position.Add(obj.Velocity.Scale(step * earliest.time))

		if earliest.time >= 1 {
			break
		}

		if earliest.normal.Y < -0.5 {
			obj.IsGrounded = true
		}

		if earliest.other.IsMovable {
			HandleMovableCollision(obj, earliest.other, earliest.normal)
			remaining *= (1 - earliest.time) * 0.5
		} else {
			vn := obj.Velocity.Dot(earliest.normal)
			obj.Velocity = obj.Velocity.Sub(earliest.normal.Scale(vn))
			remaining *= 1 - earliest.time
		}
		remaining = math.Max(remaining, 0)

		fireTriggers(earliest.other, obj)
		fireTriggers(obj, earliest.other)
	}
}

// landsOnOneWay reports whether a one-way platform blocks obj: only when obj
// falls onto its top surface from above.
func (e *Engine) landsOnOneWay(obj, platform *components.BodyData, c Collision) bool {
	return obj.Velocity.Y > 0 &&
		c.Normal.Y == -1 &&
		obj.Position.Y+obj.Size.H <= platform.Position.Y+e.Config.OneWayEpsilon
}

// HandleMovableCollision exchanges an impulse between two movable bodies along
// normal, which points from b toward a. Side contacts also exchange a friction
// impulse bounded by the normal impulse times both friction coefficients.
func HandleMovableCollision(a, b *components.BodyData, normal gamemath.Vec2) {
	if a.Mass <= 0 || b.Mass <= 0 {
		return
	}
	relVel := a.Velocity.Sub(b.Velocity)
	separating := relVel.Dot(normal)
	if separating > 0 {
		return
	}

	invMass1 := 1 / a.Mass
	invMass2 := 1 / b.Mass
	impulse := -separating / (invMass1 + invMass2)

	a.Velocity = a.Velocity.Add(normal.Scale(impulse * invMass1))
	b.Velocity = b.Velocity.Sub(normal.Scale(impulse * invMass2))

	// vertical contacts (stacking) carry no tangential friction
	if math.Abs(normal.Y) >= 0.5 {
		return
	}
	tangent := relVel.Sub(normal.Scale(separating)).Normalize()
	if tangent.IsZero() {
		return
	}
	tangVel := relVel.Dot(tangent)
	maxFriction := impulse * a.Friction * b.Friction
	frictionImpulse := tangent.Scale(gamemath.Clamp(-tangVel, -maxFriction, maxFriction))
	a.Velocity = a.Velocity.Add(frictionImpulse.Scale(invMass1))
	b.Velocity = b.Velocity.Sub(frictionImpulse.Scale(invMass2))
}

// separateOverlapping pushes obj out of every body it already interpenetrates
// along the axis of least overlap.
func (e *Engine) separateOverlapping(obj *components.BodyData, bodies []*components.BodyData) {
	e.each(bodies, obj.AABB(), func(other *components.BodyData) {
		if other == obj {
			return
		}
		box1, box2 := obj.AABB(), other.AABB()
		if !box1.Overlaps(box2) {
			return
		}
		// moving up (or resting) passes through one-way platforms
		if other.IsOneWay && obj.Velocity.Y <= 0 {
			return
		}

		overlapX, overlapY := box1.OverlapX(box2), box1.OverlapY(box2)
		c1, c2 := box1.Center(), box2.Center()
		if overlapX < overlapY {
			if c1.X < c2.X {
				obj.Position.X -= overlapX
			} else {
				obj.Position.X += overlapX
			}
			return
		}
		if c1.Y < c2.Y {
			obj.Position.Y -= overlapY
			if obj.Velocity.Y > 0 {
				obj.Velocity.Y = 0
			}
			obj.IsGrounded = true
		} else {
			obj.Position.Y += overlapY
			if obj.Velocity.Y < 0 {
				obj.Velocity.Y = 0
			}
		}
	})
}

// resolveRestingContacts lifts movable bodies that sink a few pixels into the
// body below them, which keeps stacks from creeping under gravity.
func (e *Engine) resolveRestingContacts(bodies []*components.BodyData) {
	for _, b := range bodies {
		b.IsSupport = false
	}

	tol := e.Config.RestingTolerance
	for _, top := range bodies {
		if !top.IsMovable {
			continue
		}
		for _, bottom := range bodies {
			if top == bottom {
				continue
			}
			if bottom.IsOneWay && top.Velocity.Y < 0 {
				continue
			}
			a, b := top.AABB(), bottom.AABB()
			if a.OverlapX(b) <= 0 {
				continue
			}
			penetration := a.Max.Y - b.Min.Y
			if penetration <= 0 || penetration > tol {
				continue
			}

			top.Position.Y -= penetration
			top.Velocity.Y = 0
			top.IsGrounded = true
			if bottom.IsMovable {
				bottom.IsSupport = true
			}
		}
	}
}

// each calls fn for every body that may intersect region, in list order.
func (e *Engine) each(bodies []*components.BodyData, region gamemath.AABB, fn func(*components.BodyData)) {
	idx := e.bp.query(region)
	if idx == nil {
		for _, b := range bodies {
			fn(b)
		}
		return
	}
	for _, i := range idx {
		fn(bodies[i])
	}
}
