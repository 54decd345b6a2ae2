package core

import (
	"github.com/automoto/topdown/components"
)

// MoveBody applies directional input to a movable hitbox owned by an
// entity: velocity is set from the direction and the owner's speed, and
// the owner's intended direction is recorded for animation state. DirNone
// stops the body. Returns false on unknown or static id.
func (r *Room) MoveBody(id string, dir components.Direction) bool {
	entry, ok := r.hitboxEntry(id)
	if !ok || !entry.HasComponent(components.Body) {
		return false
	}
	body := components.Body.Get(entry)
	hd := components.Hitbox.Get(entry)

	dx, dy := dir.Vector()
	speed := 0.0
	if hd.Owner != nil {
		speed = hd.Owner.Speed()
		hd.Owner.SetIntendedDirection(dir)
	}
	body.VelX = dx * speed
	body.VelY = dy * speed
	if dx != 0 || dy != 0 {
		hd.FacingX, hd.FacingY = dx, dy
	}
	return true
}
