// Package engine owns the simulation context and the fixed-step loop that
// drives behaviours, physics, particles and the rewind buffer.
package engine

import (
	"errors"
	"fmt"

	"github.com/automoto/timeslip/archetypes"
	"github.com/automoto/timeslip/components"
	cfg "github.com/automoto/timeslip/config"
	"github.com/automoto/timeslip/particles"
	"github.com/automoto/timeslip/physics"
	"github.com/automoto/timeslip/timectl"
	"github.com/automoto/timeslip/timetravel"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

var (
	ErrInvalidMass = errors.New("body mass must be positive")
	ErrMissingID   = errors.New("movable body has no id")
	ErrDuplicateID = errors.New("body id already registered")
	ErrNoBody      = errors.New("entry has no body component")
)

// InputQuery is the input surface behaviours read from.
type InputQuery interface {
	IsKeyDown(key string) bool
	IsLeftDown() bool
	IsMiddleDown() bool
	IsRightDown() bool
}

// Behavior is the per-kind update run before physics. dt is already scaled
// by the body's time dilation.
type Behavior func(b *components.BodyData, dt float64, bodies []*components.BodyData, in InputQuery)

// StepHook runs after every completed micro-step.
type StepHook func(s *Simulation)

// Simulation is the explicit context one scene runs in. Nothing in it is
// shared between simulations.
type Simulation struct {
	World     donburi.World
	Physics   *physics.Engine
	Time      *timectl.Controller
	History   *timetravel.History
	Particles *particles.System
	Input     *components.InputData
	Abilities *components.AbilitiesData
	Selection *components.SelectionData

	entries   []*donburi.Entry
	bodies    []*components.BodyData
	byID      map[string]*donburi.Entry
	behaviors map[components.Kind]Behavior
	hooks     []StepHook

	accumulator float64
	skipNext    bool
	steps       int
}

// New builds a simulation inside world. space may be nil to run the solver
// without a broad phase.
func New(world donburi.World, space *resolv.Space) *Simulation {
	session := archetypes.Session.Spawn(world)
	components.Input.Set(session, components.NewInputData())
	components.Abilities.Set(session, components.NewAbilitiesData())

	return &Simulation{
		World:     world,
		Physics:   physics.NewEngine(space),
		Time:      timectl.New(),
		History:   timetravel.New(cfg.History.Capacity),
		Particles: particles.New(),
		Input:     components.Input.Get(session),
		Abilities: components.Abilities.Get(session),
		Selection: components.Selection.Get(session),
		byID:      make(map[string]*donburi.Entry),
		behaviors: make(map[components.Kind]Behavior),
	}
}

// Register installs the behaviour run for every body of kind.
func (s *Simulation) Register(kind components.Kind, fn Behavior) {
	s.behaviors[kind] = fn
}

// OnStep appends a hook run after every micro-step.
func (s *Simulation) OnStep(fn StepHook) {
	s.hooks = append(s.hooks, fn)
}

// AddBody appends the entry's body to the ordered body list and registers its
// shape with the broad phase.
func (s *Simulation) AddBody(entry *donburi.Entry) error {
	if !entry.HasComponent(components.Body) {
		return ErrNoBody
	}
	b := components.Body.Get(entry)
	if b.Mass <= 0 {
		return fmt.Errorf("%s %q: %w", b.Kind, b.ID, ErrInvalidMass)
	}
	if b.IsMovable && b.ID == "" {
		return fmt.Errorf("%s body: %w", b.Kind, ErrMissingID)
	}
	if b.ID != "" {
		if _, ok := s.byID[b.ID]; ok {
			return fmt.Errorf("%q: %w", b.ID, ErrDuplicateID)
		}
		s.byID[b.ID] = entry
	}

	if space := s.Physics.Space(); space != nil && b.Shape != nil {
		b.Shape.Data = b
		space.Add(b.Shape)
	}
	b.SyncShape()

	s.entries = append(s.entries, entry)
	s.bodies = append(s.bodies, b)
	return nil
}

// RemoveBody deletes the body with id from the world. It reports whether a
// body was removed.
func (s *Simulation) RemoveBody(id string) bool {
	entry, ok := s.byID[id]
	if !ok {
		return false
	}
	for i, e := range s.entries {
		if e != entry {
			continue
		}
		s.detach(s.bodies[i])
		s.entries = append(s.entries[:i], s.entries[i+1:]...)
		s.bodies = append(s.bodies[:i], s.bodies[i+1:]...)
		break
	}
	delete(s.byID, id)
	s.Time.Clear(components.Body.Get(entry))
	s.World.Remove(entry.Entity())
	return true
}

func (s *Simulation) detach(b *components.BodyData) {
	if space := s.Physics.Space(); space != nil && b.Shape != nil && b.Shape.Space == space {
		space.Remove(b.Shape)
	}
}

// Reset removes every body and clears time overrides, history, particles,
// any pending rewind and any pending target selection. Abilities are refilled.
func (s *Simulation) Reset() {
	for i, e := range s.entries {
		s.detach(s.bodies[i])
		if e.Valid() {
			s.World.Remove(e.Entity())
		}
	}
	s.entries = s.entries[:0]
	clear(s.bodies)
	s.bodies = s.bodies[:0]
	clear(s.byID)

	s.Time.Reset()
	s.History.Clear()
	s.Particles.Clear()
	s.Abilities.Reset()
	s.Selection.Ability = ""
	s.Input.Disabled = false
	s.accumulator = 0
	s.skipNext = false
	s.steps = 0
}

// Bodies returns the ordered body list. The slice is owned by the simulation.
func (s *Simulation) Bodies() []*components.BodyData {
	return s.bodies
}

func (s *Simulation) BodyByID(id string) *components.BodyData {
	entry, ok := s.byID[id]
	if !ok {
		return nil
	}
	return components.Body.Get(entry)
}

// Entry returns the world entry backing the body with id.
func (s *Simulation) Entry(id string) (*donburi.Entry, bool) {
	entry, ok := s.byID[id]
	return entry, ok
}

// Movables returns every movable body except the ones listed by id.
func (s *Simulation) Movables(except ...string) []*components.BodyData {
	var out []*components.BodyData
outer:
	for _, b := range s.bodies {
		if !b.IsMovable {
			continue
		}
		for _, id := range except {
			if b.ID == id {
				continue outer
			}
		}
		out = append(out, b)
	}
	return out
}

func (s *Simulation) CloneParticles() []particles.Particle {
	return s.Particles.CloneParticles()
}

func (s *Simulation) RestoreParticles(ps []particles.Particle) {
	s.Particles.SetParticles(ps)
}

// Steps is the number of micro-steps run since the last reset.
func (s *Simulation) Steps() int {
	return s.steps
}

// Step runs one micro-step of dt seconds: time update, behaviours with
// per-body scaled dt, physics with the unscaled dt, particles with the global
// scale, then a history record.
func (s *Simulation) Step(dt float64) {
	s.Time.Update(dt)

	bodies := s.bodies
	for _, b := range bodies {
		fn, ok := s.behaviors[b.Kind]
		if !ok {
			continue
		}
		fn(b, dt*s.Time.ScaleFor(b), bodies, s.Input)
	}

	s.Physics.Update(bodies, dt)
	s.Particles.Update(dt * s.Time.Global())
	s.History.Record(bodies, s)
	s.steps++

	for _, h := range s.hooks {
		h(s)
	}
}

// Rewind steps the world back one recorded frame. On success the next
// Advance is skipped.
func (s *Simulation) Rewind() bool {
	if !s.History.Rewind(s) {
		return false
	}
	s.skipNext = true
	return true
}

// RewindSteps rewinds up to n frames at once and returns how many were
// restored.
func (s *Simulation) RewindSteps(n int) int {
	done := s.History.RewindSteps(s, n)
	if done > 0 {
		s.skipNext = true
	}
	return done
}

// Advance feeds frameTime seconds of wall time into the fixed-step
// accumulator and runs as many micro-steps as it holds. frameTime is clamped
// to MaxFrameTime. After a rewind the call only drops the accumulator.
// It returns the number of micro-steps run.
func (s *Simulation) Advance(frameTime float64) int {
	if s.skipNext {
		s.skipNext = false
		s.accumulator = 0
		return 0
	}

	step := cfg.Time.FixedStep
	frameTime = min(max(frameTime, 0), cfg.Time.MaxFrameTime)
	s.accumulator += frameTime

	n := 0
	for s.accumulator >= step {
		s.Step(step)
		s.accumulator -= step
		n++
	}
	return n
}
