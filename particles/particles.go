// Package particles runs short-lived cosmetic particles that rewind along
// with the bodies.
package particles

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/automoto/timeslip/config"
	"github.com/automoto/timeslip/shared/gamemath"
)

type Particle struct {
	Position gamemath.Vec2
	Velocity gamemath.Vec2
	Lifespan float64 // seconds left
	Color    color.RGBA
}

// System owns the live particle list.
type System struct {
	cfg       config.ParticleConfig
	rng       *rand.Rand
	particles []Particle
}

// New returns a system seeded from the particle configuration so runs are
// reproducible.
func New() *System {
	cfg := config.Particles
	return &System{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Emit spawns count particles at (x, y) moving in random directions.
func (s *System) Emit(x, y float64, count int, c color.RGBA) {
	for i := 0; i < count; i++ {
		angle := s.rng.Float64() * 2 * math.Pi
		speed := s.cfg.MinSpeed + s.rng.Float64()*(s.cfg.MaxSpeed-s.cfg.MinSpeed)
		s.particles = append(s.particles, Particle{
			Position: gamemath.V(x, y),
			Velocity: gamemath.V(math.Cos(angle)*speed, math.Sin(angle)*speed),
			Lifespan: s.cfg.MinLifespan + s.rng.Float64()*(s.cfg.MaxLifespan-s.cfg.MinLifespan),
			Color:    c,
		})
	}
}

// Update moves every particle and drops the expired ones.
func (s *System) Update(dt float64) {
	alive := s.particles[:0]
	for _, p := range s.particles {
		p.Position = p.Position.Add(p.Velocity.Scale(dt))
		p.Lifespan -= dt
		if p.Lifespan > 0 {
			alive = append(alive, p)
		}
	}
	clear(s.particles[len(alive):])
	s.particles = alive
}

// CloneParticles returns a copy of the live particles.
func (s *System) CloneParticles() []Particle {
	if len(s.particles) == 0 {
		return nil
	}
	out := make([]Particle, len(s.particles))
	copy(out, s.particles)
	return out
}

// SetParticles replaces the live particles with a copy of ps.
func (s *System) SetParticles(ps []Particle) {
	s.particles = append(s.particles[:0], ps...)
}

func (s *System) Particles() []Particle {
	return s.particles
}

func (s *System) Len() int {
	return len(s.particles)
}

func (s *System) Clear() {
	s.particles = s.particles[:0]
}
