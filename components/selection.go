package components

import "github.com/yohamta/donburi"

// SelectionData holds a time ability waiting for the player to click the
// body it applies to.
type SelectionData struct {
	Ability string // "" when nothing is pending
}

func (s *SelectionData) Pending() bool {
	return s.Ability != ""
}

var Selection = donburi.NewComponentType[SelectionData]()
