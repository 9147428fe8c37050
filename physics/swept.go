package physics

import (
	"math"

	"github.com/automoto/timeslip/components"
	"github.com/automoto/timeslip/shared/gamemath"
)

// Collision is the result of a swept test between a moving body and another body.
// Time is the fraction of the displacement travelled before contact.
type Collision struct {
	Hit    bool
	Time   float64
	Normal gamemath.Vec2
}

var noHit = Collision{Time: 1}

// SweptAABB tests body a, displaced by a.Velocity*dt, against body b held still.
// Boxes that already interpenetrate report a hit at time zero with the normal
// on the axis of least overlap, pointing from b toward a.
func SweptAABB(a, b *components.BodyData, dt float64) Collision {
	return sweep(a.AABB(), b.AABB(), a.Velocity.Scale(dt))
}

func sweep(box1, box2 gamemath.AABB, vel gamemath.Vec2) Collision {
	if box1.Overlaps(box2) {
		return Collision{Hit: true, Time: 0, Normal: separationNormal(box1, box2)}
	}

	var xInvEntry, xInvExit, yInvEntry, yInvExit float64
	if vel.X > 0 {
		xInvEntry = box2.Min.X - box1.Max.X
		xInvExit = box2.Max.X - box1.Min.X
	} else {
		xInvEntry = box2.Max.X - box1.Min.X
		xInvExit = box2.Min.X - box1.Max.X
	}
	if vel.Y > 0 {
		yInvEntry = box2.Min.Y - box1.Max.Y
		yInvExit = box2.Max.Y - box1.Min.Y
	} else {
		yInvEntry = box2.Max.Y - box1.Min.Y
		yInvExit = box2.Min.Y - box1.Max.Y
	}

	var xEntry, xExit, yEntry, yExit float64
	if vel.X == 0 {
		// a still axis only permits a hit if the projections already overlap
		if !(box1.Min.X < box2.Max.X && box1.Max.X > box2.Min.X) {
			return noHit
		}
		xEntry, xExit = math.Inf(-1), math.Inf(1)
	} else {
		xEntry = xInvEntry / vel.X
		xExit = xInvExit / vel.X
	}
	if vel.Y == 0 {
		if !(box1.Min.Y < box2.Max.Y && box1.Max.Y > box2.Min.Y) {
			return noHit
		}
		yEntry, yExit = math.Inf(-1), math.Inf(1)
	} else {
		yEntry = yInvEntry / vel.Y
		yExit = yInvExit / vel.Y
	}

	entry := math.Max(xEntry, yEntry)
	exit := math.Min(xExit, yExit)
	if entry > exit || entry > 1 || entry < 0 {
		return noHit
	}

	var n gamemath.Vec2
	if xEntry > yEntry {
		n.X = -gamemath.Sign(vel.X)
	} else {
		n.Y = -gamemath.Sign(vel.Y)
	}
	return Collision{Hit: true, Time: entry, Normal: n}
}

// separationNormal picks the least-overlap axis and points away from b's center.
func separationNormal(box1, box2 gamemath.AABB) gamemath.Vec2 {
	c1, c2 := box1.Center(), box2.Center()
	if box1.OverlapX(box2) < box1.OverlapY(box2) {
		if c1.X < c2.X {
			return gamemath.V(-1, 0)
		}
		return gamemath.V(1, 0)
	}
	if c1.Y < c2.Y {
		return gamemath.V(0, -1)
	}
	return gamemath.V(0, 1)
}
