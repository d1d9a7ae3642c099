package components

import (
	"github.com/yohamta/donburi"
)

type PlayerData struct {
	Name       string
	ColorIndex int
	Score      int
}

var Player = donburi.NewComponentType[PlayerData]()
