package physics

import (
	"github.com/automoto/timeslip/components"
	"github.com/automoto/timeslip/shared/gamemath"
)

// ApplyForce accumulates a force (newtons) consumed by the next Update.
func ApplyForce(b *components.BodyData, fx, fy float64) {
	b.Forces = b.Forces.Add(gamemath.V(fx, fy))
}

// ApplyImpulse changes velocity instantly by J/m.
func ApplyImpulse(b *components.BodyData, jx, jy float64) {
	if b.Mass <= 0 {
		return
	}
	b.Velocity = b.Velocity.Add(gamemath.V(jx, jy).Scale(1 / b.Mass))
}

// fireTriggers runs self's contact triggers against other. Once triggers that
// fire are removed. Triggers added by a callback are kept for the next contact.
func fireTriggers(self, other *components.BodyData) {
	if len(self.Triggers) == 0 {
		return
	}
	pending := self.Triggers
	self.Triggers = nil

	kept := make([]components.Trigger, 0, len(pending))
	for _, t := range pending {
		if t.When != nil && !t.When(self, other) {
			kept = append(kept, t)
			continue
		}
		if t.Then != nil {
			t.Then(self, other)
		}
		if !t.Once {
			kept = append(kept, t)
		}
	}
	self.Triggers = append(kept, self.Triggers...)
}
