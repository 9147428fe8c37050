package config

// ActionID represents a logical game action
type ActionID int

const (
	ActionNone ActionID = iota
	ActionMoveLeft
	ActionMoveRight
	ActionJump
	ActionRewind
	ActionLocalStop
	ActionLocalSlow
	ActionGlobalSlow
	ActionRewindN
	ActionReset
	ActionToggleDebug
	ActionNextLevel
	ActionCount // Must be last - used for array sizing
)

// InputConfig maps actions to lowercase key names. Names follow the
// browser KeyboardEvent.key convention ("a", "arrowleft", " ").
type InputConfig struct {
	Bindings map[ActionID][]string
}

// Input is the global input configuration
var Input InputConfig

func defaultInput() InputConfig {
	return InputConfig{
		Bindings: map[ActionID][]string{
			ActionMoveLeft:    {"a", "arrowleft"},
			ActionMoveRight:   {"d", "arrowright"},
			ActionJump:        {"w", "arrowup"},
			ActionRewind:      {"r"},
			ActionLocalStop:   {"e"},
			ActionLocalSlow:   {"q"},
			ActionGlobalSlow:  {"g"},
			ActionRewindN:     {"t"},
			ActionReset:       {"backspace"},
			ActionToggleDebug: {"f3"},
			ActionNextLevel:   {"enter"},
		},
	}
}

// KeysFor returns the key names bound to action.
func KeysFor(action ActionID) []string {
	return Input.Bindings[action]
}
