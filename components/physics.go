package components

import (
	"github.com/automoto/timeslip/shared/gamemath"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// Kind selects the behaviour a body runs each step.
type Kind int

const (
	KindStatic Kind = iota
	KindPlayer
	KindBox
	KindPlatform
	KindJumpPad
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindBox:
		return "box"
	case KindPlatform:
		return "platform"
	case KindJumpPad:
		return "jumppad"
	}
	return "static"
}

type Size struct {
	W, H float64
}

// AnimationCursor is the part of an animation that survives a rewind.
// The state value is opaque to everything but the cursor itself.
type AnimationCursor interface {
	CloneState() any
	RestoreState(state any)
}

// Trigger runs Then whenever the owning body makes contact with another body
// and When (if set) accepts the pair. Once triggers are dropped after firing.
type Trigger struct {
	When func(self, other *BodyData) bool
	Then func(self, other *BodyData)
	Once bool
}

// BodyData is the single simulated entity record shared by the solver,
// the time controller and the rewind buffer.
type BodyData struct {
	ID   string
	Kind Kind

	Position gamemath.Vec2 // top-left corner
	Velocity gamemath.Vec2
	Size     Size

	Mass     float64
	Friction float64
	Forces   gamemath.Vec2 // cleared after every integration

	IsMovable  bool
	IsGrounded bool
	IsOneWay   bool
	IsSupport  bool // another body is resting on this one

	FacingLeft bool

	Animation AnimationCursor
	Triggers  []Trigger

	// Shape is the broad-phase proxy kept in sync with Position.
	Shape *resolv.Object
}

func (b *BodyData) AABB() gamemath.AABB {
	return gamemath.NewAABB(b.Position, b.Size.W, b.Size.H)
}

func (b *BodyData) Center() gamemath.Vec2 {
	return b.AABB().Center()
}

// AddTrigger registers a contact callback. A nil when accepts every contact.
func (b *BodyData) AddTrigger(when func(self, other *BodyData) bool, then func(self, other *BodyData), once bool) {
	b.Triggers = append(b.Triggers, Trigger{When: when, Then: then, Once: once})
}

// SyncShape moves the broad-phase proxy to the body's current bounds.
func (b *BodyData) SyncShape() {
	if b.Shape == nil {
		return
	}
	b.Shape.X = b.Position.X
	b.Shape.Y = b.Position.Y
	b.Shape.W = b.Size.W
	b.Shape.H = b.Size.H
	b.Shape.Update()
}

var Body = donburi.NewComponentType[BodyData]()
