package physics

import (
	"slices"

	"github.com/automoto/timeslip/components"
	"github.com/automoto/timeslip/shared/gamemath"
	"github.com/solarlune/resolv"
)

// broadPhase narrows the bodies a moving body has to be swept against using
// the resolv spatial hash. Candidates always come back in body-list order so
// the narrow phase keeps its first-found tie break.
type broadPhase struct {
	space    *resolv.Space
	margin   float64
	index    map[*components.BodyData]int
	unshaped []int // bodies without a shape in the space are always candidates
	seen     map[int]struct{}
	out      []int
}

func newBroadPhase(space *resolv.Space, margin float64) *broadPhase {
	return &broadPhase{
		space:  space,
		margin: margin,
		index:  make(map[*components.BodyData]int),
		seen:   make(map[int]struct{}),
	}
}

// reset indexes bodies for one solver tick and syncs their shapes.
func (bp *broadPhase) reset(bodies []*components.BodyData) {
	clear(bp.index)
	bp.unshaped = bp.unshaped[:0]
	for i, b := range bodies {
		bp.index[b] = i
		if b.Shape == nil || b.Shape.Space != bp.space {
			bp.unshaped = append(bp.unshaped, i)
			continue
		}
		b.SyncShape()
	}
}

// query returns the indices of bodies that may touch region, or nil when every
// body has to be considered.
func (bp *broadPhase) query(region gamemath.AABB) []int {
	if bp.space == nil {
		return nil
	}
	region = region.Grow(bp.margin)
	x0, y0 := bp.space.WorldToSpace(region.Min.X, region.Min.Y)
	x1, y1 := bp.space.WorldToSpace(region.Max.X, region.Max.Y)
	if bp.space.Cell(x0, y0) == nil || bp.space.Cell(x1, y1) == nil {
		// region leaves the grid, shapes outside it are not hashed
		return nil
	}

	clear(bp.seen)
	bp.out = bp.out[:0]
	for _, i := range bp.unshaped {
		bp.seen[i] = struct{}{}
		bp.out = append(bp.out, i)
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			cell := bp.space.Cell(x, y)
			if cell == nil {
				continue
			}
			for _, obj := range cell.Objects {
				b, ok := obj.Data.(*components.BodyData)
				if !ok {
					continue
				}
				i, ok := bp.index[b]
				if !ok {
					continue
				}
				if _, dup := bp.seen[i]; dup {
					continue
				}
				bp.seen[i] = struct{}{}
				bp.out = append(bp.out, i)
			}
		}
	}
	slices.Sort(bp.out)
	return bp.out
}
