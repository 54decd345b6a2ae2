package components

import "github.com/yohamta/donburi"

// Vector represents a 2D vector.
type Vector struct {
	X, Y float64
}

// BodyData holds the integration state of a movable hitbox. Bodies have no
// rotational inertia; only linear velocity is integrated.
type BodyData struct {
	VelX, VelY float64
	Damping    float64 // fraction of velocity shed per second

	// One-shot inputs consumed by the next physics step.
	TransX, TransY     float64 // queued translation, pixels
	ImpulseX, ImpulseY float64 // queued velocity change, px/s
}

var Body = donburi.NewComponentType[BodyData]()
