package core

import (
	"math"

	"github.com/yohamta/donburi"

	"github.com/automoto/topdown/components"
	"github.com/automoto/topdown/movement"
	"github.com/automoto/topdown/tags"
)

// strategyBody adapts a room hitbox to the movement.Body surface that
// strategies steer through. Strategies only ever write velocity (or
// teleport); clipping against the world stays in the integrator.
type strategyBody struct {
	room  *Room
	entry *donburi.Entry
}

func (r *Room) strategyBodyFor(entry *donburi.Entry) *strategyBody {
	return &strategyBody{room: r, entry: entry}
}

func (b *strategyBody) Position() (float64, float64) {
	obj := components.Object.Get(b.entry).Object
	return obj.X, obj.Y
}

func (b *strategyBody) SetPosition(x, y float64) {
	obj := components.Object.Get(b.entry).Object
	obj.X, obj.Y = x, y
	obj.Update()
}

func (b *strategyBody) Velocity() (float64, float64) {
	body := components.Body.Get(b.entry)
	return body.VelX, body.VelY
}

func (b *strategyBody) SetVelocity(vx, vy float64) {
	body := components.Body.Get(b.entry)
	body.VelX, body.VelY = vx, vy
}

func (b *strategyBody) Size() (float64, float64) {
	obj := components.Object.Get(b.entry).Object
	return obj.W, obj.H
}

// Nearby lists the bounds of other movable bodies whose centers fall
// within radius of this body's center.
func (b *strategyBody) Nearby(radius float64) []movement.Rect {
	self := components.Object.Get(b.entry).Object
	cx := self.X + self.W/2
	cy := self.Y + self.H/2

	var out []movement.Rect
	for entry := range tags.MovableHitbox.Iter(b.room.world) {
		obj := components.Object.Get(entry).Object
		if obj == self {
			continue
		}
		ox := obj.X + obj.W/2
		oy := obj.Y + obj.H/2
		if math.Hypot(ox-cx, oy-cy) <= radius {
			out = append(out, movement.Rect{X: obj.X, Y: obj.Y, W: obj.W, H: obj.H})
		}
	}
	return out
}

// TargetFor builds a movement target that tracks a hitbox by id. The
// target reports gone once the hitbox is removed, which lets pursuing
// strategies finish on their own.
func (r *Room) TargetFor(id string) movement.TargetFunc {
	return func() (movement.Rect, bool) {
		entry, ok := r.hitboxEntry(id)
		if !ok {
			return movement.Rect{}, false
		}
		obj := components.Object.Get(entry).Object
		return movement.Rect{X: obj.X, Y: obj.Y, W: obj.W, H: obj.H}, true
	}
}
