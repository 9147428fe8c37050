package components

import (
	"github.com/automoto/timeslip/shared/gamemath"
	"github.com/yohamta/donburi"
)

type PlayerData struct {
	Spawn gamemath.Vec2 // where returnToInitial puts the player back
}

var Player = donburi.NewComponentType[PlayerData]()
