// Package timetravel records simulation frames and steps the world back
// through them.
package timetravel

import (
	"github.com/automoto/timeslip/components"
	"github.com/automoto/timeslip/particles"
	"github.com/automoto/timeslip/shared/gamemath"
)

// BodyState is the recorded part of one movable body.
type BodyState struct {
	ID           string
	Position     gamemath.Vec2
	Velocity     gamemath.Vec2
	Animation    any
	HasAnimation bool
}

// Frame is one recorded micro-step.
type Frame struct {
	Bodies    []BodyState
	Particles []particles.Particle
}

// ParticleSource is the particle state captured alongside the bodies.
type ParticleSource interface {
	CloneParticles() []particles.Particle
}

// World is what a rewind writes back into.
type World interface {
	BodyByID(id string) *components.BodyData
	RestoreParticles(ps []particles.Particle)
}

// History is a fixed-capacity ring of frames. Recording past capacity
// evicts the oldest frame.
type History struct {
	buf   []Frame
	head  int // next write slot
	size  int
	limit int
}

func New(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{buf: make([]Frame, capacity), limit: capacity}
}

func (h *History) Len() int { return h.size }
func (h *History) Cap() int { return h.limit }

func (h *History) Clear() {
	clear(h.buf)
	h.head = 0
	h.size = 0
}

// Record appends a frame holding every movable body with an ID and a copy of
// the particles. Bodies without an ID cannot be matched on rewind and are
// left out.
func (h *History) Record(bodies []*components.BodyData, ps ParticleSource) {
	slot := &h.buf[h.head]
	// reuse the evicted frame's storage
	states := slot.Bodies[:0]
	for _, b := range bodies {
		if !b.IsMovable || b.ID == "" {
			continue
		}
		s := BodyState{ID: b.ID, Position: b.Position, Velocity: b.Velocity}
		if b.Animation != nil {
			s.Animation = b.Animation.CloneState()
			s.HasAnimation = true
		}
		states = append(states, s)
	}
	slot.Bodies = states
	slot.Particles = nil
	if ps != nil {
		slot.Particles = ps.CloneParticles()
	}

	h.head = (h.head + 1) % h.limit
	if h.size < h.limit {
		h.size++
	}
}

// Newest returns the most recent frame.
func (h *History) Newest() (Frame, bool) {
	if h.size == 0 {
		return Frame{}, false
	}
	return h.buf[(h.head-1+h.limit)%h.limit], true
}

// Rewind steps back one frame. The newest frame mirrors the live state
// (recording closes every step), so it is discarded and the frame before it
// is written back into w. It returns false, changing nothing, when one frame
// or fewer is held. Bodies missing from w are skipped.
func (h *History) Rewind(w World) bool {
	if h.size <= 1 {
		return false
	}
	h.head = (h.head - 1 + h.limit) % h.limit
	h.size--

	f := h.buf[(h.head-1+h.limit)%h.limit]
	for _, s := range f.Bodies {
		b := w.BodyByID(s.ID)
		if b == nil {
			continue
		}
		b.Position = s.Position
		b.Velocity = s.Velocity
		if s.HasAnimation && b.Animation != nil {
			b.Animation.RestoreState(s.Animation)
		}
		b.SyncShape()
	}
	ps := make([]particles.Particle, len(f.Particles))
	copy(ps, f.Particles)
	w.RestoreParticles(ps)
	return true
}

// RewindSteps rewinds up to n frames and returns how many were rewound.
func (h *History) RewindSteps(w World, n int) int {
	done := 0
	for done < n && h.Rewind(w) {
		done++
	}
	return done
}
