package gamemath

import "math"

// AABB is an axis-aligned box described by its min (top-left) and max
// (bottom-right) corners. Y grows downward.
type AABB struct {
	Min, Max Vec2
}

// NewAABB builds a box from a top-left position and a size.
func NewAABB(pos Vec2, w, h float64) AABB {
	return AABB{Min: pos, Max: Vec2{X: pos.X + w, Y: pos.Y + h}}
}

func (a AABB) Width() float64  { return a.Max.X - a.Min.X }
func (a AABB) Height() float64 { return a.Max.Y - a.Min.Y }

func (a AABB) Center() Vec2 {
	return Vec2{X: (a.Min.X + a.Max.X) / 2, Y: (a.Min.Y + a.Max.Y) / 2}
}

// Overlaps reports strict interpenetration. Touching edges do not overlap.
func (a AABB) Overlaps(b AABB) bool {
	return a.Min.X < b.Max.X && a.Max.X > b.Min.X &&
		a.Min.Y < b.Max.Y && a.Max.Y > b.Min.Y
}

// Contains reports whether p lies inside a, counting the top and left edges.
func (a AABB) Contains(p Vec2) bool {
	return p.X >= a.Min.X && p.X < a.Max.X && p.Y >= a.Min.Y && p.Y < a.Max.Y
}

// OverlapX returns the horizontal overlap depth, zero or negative when apart.
func (a AABB) OverlapX(b AABB) float64 {
	return math.Min(a.Max.X, b.Max.X) - math.Max(a.Min.X, b.Min.X)
}

// OverlapY returns the vertical overlap depth, zero or negative when apart.
func (a AABB) OverlapY(b AABB) float64 {
	return math.Min(a.Max.Y, b.Max.Y) - math.Max(a.Min.Y, b.Min.Y)
}

// Union returns the smallest box containing both a and b.
func (a AABB) Union(b AABB) AABB {
	return AABB{
		Min: Vec2{X: math.Min(a.Min.X, b.Min.X), Y: math.Min(a.Min.Y, b.Min.Y)},
		Max: Vec2{X: math.Max(a.Max.X, b.Max.X), Y: math.Max(a.Max.Y, b.Max.Y)},
	}
}

// Translate returns the box moved by d.
func (a AABB) Translate(d Vec2) AABB {
	return AABB{Min: a.Min.Add(d), Max: a.Max.Add(d)}
}

// Grow returns the box expanded by m on every side.
func (a AABB) Grow(m float64) AABB {
	return AABB{
		Min: Vec2{X: a.Min.X - m, Y: a.Min.Y - m},
		Max: Vec2{X: a.Max.X + m, Y: a.Max.Y + m},
	}
}
