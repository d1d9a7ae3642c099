package tags

import "github.com/yohamta/donburi"

var (
	Player = donburi.NewTag().SetName("Player")
	// Local marks the entity driven by this client's input.
	Local = donburi.NewTag().SetName("Local")
)
