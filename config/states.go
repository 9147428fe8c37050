package config

// StateID names an animation clip.
type StateID string

const (
	StateNone StateID = ""
	Idle      StateID = "idle"
	Running   StateID = "run"
	Jump      StateID = "jump"
)
