package physics

import (
	"testing"

	"github.com/automoto/timeslip/components"
	"github.com/automoto/timeslip/shared/gamemath"
	"github.com/solarlune/resolv"
	"gonum.org/v1/gonum/floats/scalar"
)

func static(x, y, w, h float64) *components.BodyData {
	return &components.BodyData{
		Kind:     components.KindPlatform,
		Position: gamemath.V(x, y),
		Size:     components.Size{W: w, H: h},
		Mass:     1,
	}
}

func movable(id string, x, y, w, h, mass float64) *components.BodyData {
	return &components.BodyData{
		ID:        id,
		Kind:      components.KindBox,
		Position:  gamemath.V(x, y),
		Size:      components.Size{W: w, H: h},
		Mass:      mass,
		IsMovable: true,
	}
}

func noGravity() *Engine {
	e := NewEngine(nil)
	e.Config.Gravity = 0
	return e
}

func TestSweptAABB(t *testing.T) {
	tests := []struct {
		name   string
		a, b   *components.BodyData
		vel    gamemath.Vec2
		dt     float64
		hit    bool
		time   float64
		normal gamemath.Vec2
	}{
		{
			name: "approaching from left",
			a:    movable("a", 0, 0, 10, 10, 1), b: static(20, 0, 10, 10),
			vel: gamemath.V(100, 0), dt: 1,
			hit: true, time: 0.1, normal: gamemath.V(-1, 0),
		},
		{
			name: "falling onto floor",
			a:    movable("a", 0, 0, 10, 10, 1), b: static(-50, 30, 100, 10),
			vel: gamemath.V(0, 40), dt: 1,
			hit: true, time: 0.5, normal: gamemath.V(0, -1),
		},
		{
			name: "moving away",
			a:    movable("a", 0, 0, 10, 10, 1), b: static(20, 0, 10, 10),
			vel: gamemath.V(-100, 0), dt: 1,
			hit: false, time: 1,
		},
		{
			name: "out of reach this step",
			a:    movable("a", 0, 0, 10, 10, 1), b: static(20, 0, 10, 10),
			vel: gamemath.V(5, 0), dt: 1,
			hit: false, time: 1,
		},
		{
			name: "still axis with touching edges",
			a:    movable("a", 0, 0, 10, 10, 1), b: static(10, 20, 10, 10),
			vel: gamemath.V(0, 100), dt: 1,
			hit: false, time: 1,
		},
		{
			name: "already overlapping",
			a:    movable("a", 0, 0, 10, 10, 1), b: static(8, 0, 10, 10),
			vel: gamemath.V(0, 0), dt: 1,
			hit: true, time: 0, normal: gamemath.V(-1, 0),
		},
		{
			name: "overlapping from below",
			a:    movable("a", 0, 8, 10, 10, 1), b: static(-20, 0, 50, 10),
			vel: gamemath.V(0, -10), dt: 1,
			hit: true, time: 0, normal: gamemath.V(0, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.a.Velocity = tt.vel
			got := SweptAABB(tt.a, tt.b, tt.dt)
			if got.Hit != tt.hit {
				t.Fatalf("Hit = %v, want %v", got.Hit, tt.hit)
			}
			if !scalar.EqualWithinAbs(got.Time, tt.time, 1e-9) {
				t.Errorf("Time = %v, want %v", got.Time, tt.time)
			}
			if tt.hit && got.Normal != tt.normal {
				t.Errorf("Normal = %v, want %v", got.Normal, tt.normal)
			}
		})
	}
}

func TestNoTunnelingThroughThinWall(t *testing.T) {
	for _, withSpace := range []bool{false, true} {
		name := "full scan"
		if withSpace {
			name = "broad phase"
		}
		t.Run(name, func(t *testing.T) {
			var space *resolv.Space
			if withSpace {
				space = resolv.NewSpace(1000, 1000, 64, 64)
			}
			e := NewEngine(space)
			e.Config.Gravity = 0

			bullet := movable("bullet", 100, 100, 10, 10, 1)
			bullet.Velocity = gamemath.V(5000, 0)
			wall := static(150, 50, 2, 100)
			bodies := []*components.BodyData{wall, bullet}
			if withSpace {
				addShapes(space, bodies)
			}

			e.Update(bodies, 0.1)

			if bullet.Position.X+bullet.Size.W > wall.Position.X+1e-9 {
				t.Fatalf("bullet passed wall: x=%v", bullet.Position.X)
			}
			if bullet.Velocity.X != 0 {
				t.Errorf("normal velocity not removed: %v", bullet.Velocity)
			}
		})
	}
}

func TestStackSettles(t *testing.T) {
	e := NewEngine(nil)
	floor := static(0, 200, 400, 40)
	b1 := movable("b1", 100, 168, 32, 32, 2)
	b2 := movable("b2", 100, 136, 32, 32, 2)
	b3 := movable("b3", 100, 104, 32, 32, 2)
	for _, b := range []*components.BodyData{b1, b2, b3} {
		b.Friction = 0.1
	}
	bodies := []*components.BodyData{floor, b1, b2, b3}

	for i := 0; i < 120; i++ {
		e.Update(bodies, 1.0/120.0)
	}

	tol := e.Config.RestingTolerance
	pairs := []struct {
		upper, lower *components.BodyData
	}{
		{b1, floor}, {b2, b1}, {b3, b2},
	}
	for _, p := range pairs {
		pen := p.upper.AABB().Max.Y - p.lower.AABB().Min.Y
		if pen > tol {
			t.Errorf("%s sinks %v into its support", p.upper.ID, pen)
		}
		if pen < -tol {
			t.Errorf("%s floats %v above its support", p.upper.ID, -pen)
		}
		if !p.upper.IsGrounded {
			t.Errorf("%s not grounded", p.upper.ID)
		}
	}
}

func TestMovableImpulseConservesMomentum(t *testing.T) {
	tests := []struct {
		name   string
		m1, m2 float64
		v1, v2 float64
	}{
		{"equal mass head-on", 1, 1, 100, -100},
		{"heavy target", 1, 3, 150, -50},
		{"chasing", 2, 1, 300, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := movable("a", 0, 0, 10, 10, tt.m1)
			b := movable("b", 10, 0, 10, 10, tt.m2)
			a.Velocity = gamemath.V(tt.v1, 0)
			b.Velocity = gamemath.V(tt.v2, 0)
			n := gamemath.V(-1, 0)

			before := tt.m1*tt.v1 + tt.m2*tt.v2
			HandleMovableCollision(a, b, n)
			after := tt.m1*a.Velocity.X + tt.m2*b.Velocity.X

			if !scalar.EqualWithinAbs(before, after, 1e-9) {
				t.Errorf("momentum %v -> %v", before, after)
			}
			if sep := a.Velocity.Sub(b.Velocity).Dot(n); sep < -1e-9 {
				t.Errorf("bodies still approaching: separating velocity %v", sep)
			}
		})
	}
}

func TestMovableImpulseSkipsSeparating(t *testing.T) {
	a := movable("a", 0, 0, 10, 10, 1)
	b := movable("b", 10, 0, 10, 10, 1)
	a.Velocity = gamemath.V(-10, 0)
	b.Velocity = gamemath.V(10, 0)

	HandleMovableCollision(a, b, gamemath.V(-1, 0))

	if a.Velocity != gamemath.V(-10, 0) || b.Velocity != gamemath.V(10, 0) {
		t.Errorf("separating bodies changed: a=%v b=%v", a.Velocity, b.Velocity)
	}
}

func TestHeadOnThroughEngine(t *testing.T) {
	e := noGravity()
	a := movable("a", 0, 0, 10, 10, 1)
	b := movable("b", 20, 0, 10, 10, 1)
	a.Velocity = gamemath.V(100, 0)
	b.Velocity = gamemath.V(-100, 0)

	e.Update([]*components.BodyData{a, b}, 0.1)

	if p := a.Velocity.X + b.Velocity.X; !scalar.EqualWithinAbs(p, 0, 1e-9) {
		t.Errorf("momentum = %v, want 0", p)
	}
	if sep := b.Velocity.X - a.Velocity.X; sep < 0 {
		t.Errorf("separating velocity = %v, want >= 0", sep)
	}
	if a.AABB().Overlaps(b.AABB()) {
		t.Errorf("bodies overlap: a=%v b=%v", a.Position, b.Position)
	}
}

func TestOneWayPlatform(t *testing.T) {
	t.Run("passes through from below", func(t *testing.T) {
		e := noGravity()
		platform := static(0, 100, 100, 10)
		platform.IsOneWay = true
		body := movable("body", 10, 120, 10, 10, 1)
		body.Velocity = gamemath.V(0, -600)

		e.Update([]*components.BodyData{platform, body}, 0.1)

		if !scalar.EqualWithinAbs(body.Position.Y, 60, 1e-9) {
			t.Errorf("Y = %v, want 60", body.Position.Y)
		}
		if body.IsGrounded {
			t.Error("grounded while passing through")
		}
	})

	t.Run("rising body is not snapped onto the top", func(t *testing.T) {
		e := noGravity()
		platform := static(0, 100, 100, 10)
		platform.IsOneWay = true
		body := movable("body", 10, 92, 10, 10, 1)
		body.Velocity = gamemath.V(0, -60)

		e.Update([]*components.BodyData{platform, body}, 0.01)

		// bottom edge ends 1.4px into the platform, inside the resting tolerance
		if pen := body.AABB().Max.Y - 100; pen <= 0 || pen > e.Config.RestingTolerance {
			t.Fatalf("penetration = %v, want within (0, %v]", pen, e.Config.RestingTolerance)
		}
		if !scalar.EqualWithinAbs(body.Position.Y, 91.4, 1e-9) {
			t.Errorf("Y = %v, want 91.4", body.Position.Y)
		}
		if body.Velocity.Y != -60 || body.IsGrounded {
			t.Errorf("vy=%v grounded=%v, want still rising", body.Velocity.Y, body.IsGrounded)
		}
	})

	t.Run("lands from above", func(t *testing.T) {
		e := noGravity()
		platform := static(0, 100, 100, 10)
		platform.IsOneWay = true
		body := movable("body", 10, 80, 10, 10, 1)
		body.Velocity = gamemath.V(0, 600)

		e.Update([]*components.BodyData{platform, body}, 0.1)

		if !scalar.EqualWithinAbs(body.Position.Y, 90, 1e-9) {
			t.Errorf("Y = %v, want 90", body.Position.Y)
		}
		if !body.IsGrounded || body.Velocity.Y != 0 {
			t.Errorf("grounded=%v vy=%v, want landed", body.IsGrounded, body.Velocity.Y)
		}
	})
}

func TestOverlapIsSeparated(t *testing.T) {
	e := noGravity()
	floor := static(0, 100, 100, 20)
	body := movable("body", 10, 73, 10, 30, 1)

	e.Update([]*components.BodyData{floor, body}, 1.0/120.0)

	if got := body.AABB().Max.Y; !scalar.EqualWithinAbs(got, 100, 1e-9) {
		t.Errorf("bottom = %v, want 100", got)
	}
	if !body.IsGrounded {
		t.Error("separated body should be grounded")
	}
}

func TestRestingContactMarksSupport(t *testing.T) {
	e := noGravity()
	bottom := movable("bottom", 0, 100, 20, 20, 1)
	top := movable("top", 0, 82, 20, 20, 1)

	// run only the resting pass so the solver cannot separate the pair first
	e.resolveRestingContacts([]*components.BodyData{bottom, top})

	if got := top.AABB().Max.Y; !scalar.EqualWithinAbs(got, 100, 1e-9) {
		t.Errorf("top bottom edge = %v, want 100", got)
	}
	if !top.IsGrounded {
		t.Error("top should be grounded")
	}
	if !bottom.IsSupport {
		t.Error("bottom should be marked as support")
	}
}

func TestTriggersFireOnContact(t *testing.T) {
	e := noGravity()
	pad := static(0, 100, 100, 20)
	body := movable("body", 10, 80, 10, 10, 1)
	body.Velocity = gamemath.V(0, 600)

	fired := 0
	pad.AddTrigger(nil, func(self, other *components.BodyData) {
		fired++
		other.Velocity.Y = -900
	}, true)

	var touched *components.BodyData
	body.AddTrigger(func(self, other *components.BodyData) bool {
		return other == pad
	}, func(self, other *components.BodyData) {
		touched = other
	}, false)

	bodies := []*components.BodyData{pad, body}
	e.Update(bodies, 0.1)

	if fired != 1 {
		t.Fatalf("pad trigger fired %d times, want 1", fired)
	}
	if body.Velocity.Y != -900 {
		t.Errorf("vy = %v, want -900", body.Velocity.Y)
	}
	if touched != pad {
		t.Error("body trigger did not see the pad")
	}
	if len(pad.Triggers) != 0 {
		t.Errorf("once trigger kept: %d left", len(pad.Triggers))
	}
	if len(body.Triggers) != 1 {
		t.Errorf("repeating trigger dropped: %d left", len(body.Triggers))
	}
}

func TestBroadPhaseMatchesFullScan(t *testing.T) {
	build := func() []*components.BodyData {
		player := movable("player", 120, 300, 64, 128, 50)
		player.Velocity = gamemath.V(250, 0)
		bodies := []*components.BodyData{
			static(0, 500, 1000, 40),
			static(600, 200, 40, 300),
			player,
			movable("b1", 300, 436, 64, 64, 2),
			movable("b2", 300, 372, 64, 64, 2),
			movable("b3", 420, 100, 64, 64, 2),
		}
		for _, b := range bodies[3:] {
			b.Friction = 0.1
		}
		player.Friction = 0.5
		return bodies
	}

	plain := build()
	full := NewEngine(nil)

	hashed := build()
	space := resolv.NewSpace(1200, 1200, 64, 64)
	addShapes(space, hashed)
	broad := NewEngine(space)

	for i := 0; i < 90; i++ {
		ApplyForce(plain[2], 20000, 0)
		ApplyForce(hashed[2], 20000, 0)
		full.Update(plain, 1.0/120.0)
		broad.Update(hashed, 1.0/120.0)
	}

	for i := range plain {
		if plain[i].Position != hashed[i].Position || plain[i].Velocity != hashed[i].Velocity {
			t.Errorf("body %d diverged: full %v/%v broad %v/%v", i,
				plain[i].Position, plain[i].Velocity, hashed[i].Position, hashed[i].Velocity)
		}
	}
}

func TestApplyImpulse(t *testing.T) {
	b := movable("b", 0, 0, 1, 1, 4)
	ApplyImpulse(b, 8, -4)
	if b.Velocity != gamemath.V(2, -1) {
		t.Errorf("velocity = %v, want (2,-1)", b.Velocity)
	}

	massless := movable("m", 0, 0, 1, 1, 0)
	ApplyImpulse(massless, 8, 8)
	if !massless.Velocity.IsZero() {
		t.Errorf("massless body moved: %v", massless.Velocity)
	}
}

func addShapes(space *resolv.Space, bodies []*components.BodyData) {
	for _, b := range bodies {
		b.Shape = resolv.NewObject(b.Position.X, b.Position.Y, b.Size.W, b.Size.H)
		b.Shape.Data = b
		space.Add(b.Shape)
	}
}
