package components

import "github.com/yohamta/donburi"

// SlidingData governs whether, and how strongly, partial static collisions
// produce a lateral correction that lets the body glide along obstacle edges.
type SlidingData struct {
	Enabled     bool
	Friction    float64 // correction strength, 0..1
	MinVelocity float64 // speed (px/s) below which no correction applies
}

var Sliding = donburi.NewComponentType[SlidingData]()
