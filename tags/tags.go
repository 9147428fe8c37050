package tags

import "github.com/yohamta/donburi"

var (
	Player   = donburi.NewTag().SetName("Player")
	Box      = donburi.NewTag().SetName("Box")
	Platform = donburi.NewTag().SetName("Platform")
	JumpPad  = donburi.NewTag().SetName("JumpPad")
)

// Resolv tags for the broad phase
const (
	ResolvSolid   = "solid"
	ResolvOneWay  = "oneway"
	ResolvMovable = "movable"
	ResolvPlayer  = "Player"
	ResolvBox     = "Box"
	ResolvJumpPad = "jumppad"
)
