package factory

import (
	cfg "github.com/automoto/timeslip/config"
	"github.com/solarlune/resolv"
)

// CreateSpace returns the broad-phase grid covering a level of the given
// size in pixels.
func CreateSpace(width, height int) *resolv.Space {
	cell := cfg.Physics.CellSize
	return resolv.NewSpace(max(width, cell), max(height, cell), cell, cell)
}
