package components

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/topdown/movement"
)

// MovementData is the ordered list of motion strategies active on a body.
// Strategies run in insertion order once per tick, before the physics step.
type MovementData struct {
	Strategies []movement.Strategy
}

var Movement = donburi.NewComponentType[MovementData]()
