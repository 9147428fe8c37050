package config

type AnimationDef struct {
	First         int
	Last          int
	Step          int
	FrameDuration float64 // seconds per frame
}

// CharacterAnimations maps a character key (e.g., "player")
// to its specific set of animation definitions.
var CharacterAnimations = map[string]map[StateID]AnimationDef{
	"player": {
		Idle:    {First: 0, Last: 1, Step: 1, FrameDuration: 1.0},
		Running: {First: 0, Last: 1, Step: 1, FrameDuration: 0.2},
		Jump:    {First: 2, Last: 2, Step: 1, FrameDuration: 1.0},
	},
	"box": {
		Idle: {First: 0, Last: 0, Step: 1, FrameDuration: 1.0},
	},
}
