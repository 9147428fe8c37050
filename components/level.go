package components

import (
	"github.com/automoto/timeslip/shared/leveldata"
	"github.com/yohamta/donburi"
)

type LevelData struct {
	CurrentLevel *leveldata.Level
	Completed    bool // the player reached a goal zone
}

var Level = donburi.NewComponentType[LevelData]()
