package core

import (
	"math"

	"github.com/yohamta/donburi"

	"github.com/automoto/topdown/components"
	cfg "github.com/automoto/topdown/config"
	"github.com/automoto/topdown/tags"
)

func objCenterOf(entry *donburi.Entry) components.Vector {
	obj := components.Object.Get(entry).Object
	return components.Vector{X: obj.X + obj.W/2, Y: obj.Y + obj.H/2}
}

// syncOwners pushes resolved physics positions back to the entity handles
// that registered the hitboxes.
func (r *Room) syncOwners() {
	for entry := range tags.MovableHitbox.Iter(r.world) {
		hd := components.Hitbox.Get(entry)
		if hd.Owner == nil {
			continue
		}
		obj := components.Object.Get(entry).Object
		hd.Owner.SetPosition(obj.X, obj.Y)
	}
}

// detectMovementState compares each movable against its last-tick position
// and fires start/stop callbacks on transitions. Coming to rest also
// clears the owner's intended direction so input state can't go stale.
func (r *Room) detectMovementState() {
	var started, stopped []string

	for entry := range tags.MovableHitbox.Iter(r.world) {
		hd := components.Hitbox.Get(entry)
		body := components.Body.Get(entry)
		obj := components.Object.Get(entry).Object

		moved := math.Hypot(obj.X-hd.PrevX, obj.Y-hd.PrevY) > cfg.Movement.MoveEpsilon ||
			math.Hypot(body.VelX, body.VelY) > cfg.Movement.StopEpsilon

		if moved && !hd.IsMoving {
			hd.IsMoving = true
			started = append(started, hd.ID)
		} else if !moved && hd.IsMoving {
			hd.IsMoving = false
			if hd.Owner != nil {
				hd.Owner.SetIntendedDirection(components.DirNone)
			}
			stopped = append(stopped, hd.ID)
		}

		hd.PrevX, hd.PrevY = obj.X, obj.Y
	}

	// Fired after iteration; a handler may remove the hitbox itself.
	for _, id := range started {
		if h := r.moveCBs[id]; h != nil {
			for _, fn := range h.start {
				fn()
			}
		}
	}
	for _, id := range stopped {
		if h := r.moveCBs[id]; h != nil {
			for _, fn := range h.stop {
				fn()
			}
		}
	}
}

// IsMoving reports whether a hitbox was in motion at the last tick.
func (r *Room) IsMoving(id string) bool {
	entry, ok := r.hitboxEntry(id)
	if !ok {
		return false
	}
	return components.Hitbox.Get(entry).IsMoving
}
