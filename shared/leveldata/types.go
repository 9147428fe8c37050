// Package leveldata parses TMX scene layouts into plain data.
// It has no dependencies on ebitengine, donburi, or resolv.
package leveldata

// Level is one parsed scene. Zero numeric fields mean "use the configured
// default" to whoever builds bodies from it.
type Level struct {
	Name      string
	Width     int
	Height    int
	Spawn     Point
	Platforms []Platform
	Boxes     []Box
	JumpPads  []JumpPad
	Goals     []Rect
	// Abilities is nil when the map grants none explicitly.
	Abilities []AbilityGrant
}

type Point struct {
	X, Y float64
}

type Rect struct {
	X, Y, W, H float64
}

// Platform is a static surface. One-way platforms only block bodies landing
// from above.
type Platform struct {
	Rect
	ID     string
	OneWay bool
}

type Box struct {
	ID       string
	X, Y     float64
	Size     float64
	Mass     float64
	Friction float64
}

type JumpPad struct {
	Rect
	ID          string
	LaunchSpeed float64
}

// AbilityGrant sets an ability's charges for the scene. Uses below zero is
// unlimited.
type AbilityGrant struct {
	Name string
	Uses int
	N    int // frames per use, timeReverseN only
}
