package components

import (
	"strings"

	cfg "github.com/automoto/timeslip/config"
	"github.com/automoto/timeslip/shared/gamemath"
	"github.com/yohamta/donburi"
)

// MouseButton identifies a pointer button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight
	mouseButtonCount
)

// InputData stores the current and previous frame's pressed keys.
// Key names are lowercase; JustPressed is computed by comparing frames.
// A disabled input reports nothing held.
type InputData struct {
	Current   map[string]bool
	Previous  map[string]bool
	Mouse     [mouseButtonCount]bool
	PrevMouse [mouseButtonCount]bool
	Cursor    gamemath.Vec2 // world coordinates
	Disabled  bool
}

func NewInputData() *InputData {
	return &InputData{
		Current:  make(map[string]bool),
		Previous: make(map[string]bool),
	}
}

// BeginFrame rolls the current key set into the previous one.
func (in *InputData) BeginFrame() {
	in.Previous, in.Current = in.Current, in.Previous
	clear(in.Current)
	in.PrevMouse = in.Mouse
}

func (in *InputData) Press(key string) {
	if in.Current == nil {
		in.Current = make(map[string]bool)
	}
	in.Current[strings.ToLower(key)] = true
}

func (in *InputData) Release(key string) {
	delete(in.Current, strings.ToLower(key))
}

func (in *InputData) SetMouse(b MouseButton, down bool) {
	in.Mouse[b] = down
}

func (in *InputData) IsKeyDown(key string) bool {
	if in.Disabled {
		return false
	}
	return in.Current[strings.ToLower(key)]
}

// MouseJustPressed reports whether b went down this frame. It ignores
// Disabled so a target can still be clicked while movement input is off.
func (in *InputData) MouseJustPressed(b MouseButton) bool {
	return in.Mouse[b] && !in.PrevMouse[b]
}

func (in *InputData) IsLeftDown() bool   { return !in.Disabled && in.Mouse[MouseLeft] }
func (in *InputData) IsMiddleDown() bool { return !in.Disabled && in.Mouse[MouseMiddle] }
func (in *InputData) IsRightDown() bool  { return !in.Disabled && in.Mouse[MouseRight] }

// ActionPressed reports whether any key bound to action is held.
func (in *InputData) ActionPressed(action cfg.ActionID) bool {
	for _, k := range cfg.KeysFor(action) {
		if in.IsKeyDown(k) {
			return true
		}
	}
	return false
}

// ActionJustPressed reports whether action went from released to held this frame.
func (in *InputData) ActionJustPressed(action cfg.ActionID) bool {
	if in.Disabled {
		return false
	}
	held, was := false, false
	for _, k := range cfg.KeysFor(action) {
		held = held || in.Current[k]
		was = was || in.Previous[k]
	}
	return held && !was
}

var Input = donburi.NewComponentType[InputData]()
