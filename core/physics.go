package core

import (
	"math"

	"github.com/solarlune/resolv"

	"github.com/automoto/topdown/components"
	cfg "github.com/automoto/topdown/config"
	"github.com/automoto/topdown/tags"
)

// stepPhysics integrates every movable body for one tick: impulses fold
// into velocity, damping and the speed cap apply, then the displacement is
// clipped axis by axis against static obstacles. Movable bodies pass
// through each other here; overlaps between them are handled afterwards by
// resolveMovablePairs.
func (r *Room) stepPhysics(dt float64) {
	for entry := range components.Body.Iter(r.world) {
		body := components.Body.Get(entry)
		hd := components.Hitbox.Get(entry)
		obj := components.Object.Get(entry).Object

		body.VelX += body.ImpulseX
		body.VelY += body.ImpulseY
		body.ImpulseX, body.ImpulseY = 0, 0

		// Exponential damping, frame-rate independent.
		if body.Damping > 0 {
			decay := math.Pow(1-body.Damping, dt)
			body.VelX *= decay
			body.VelY *= decay
		}
		body.VelX, body.VelY = clampMagnitude(body.VelX, body.VelY, cfg.Physics.MaxSpeed)

		dx := body.VelX*dt + body.TransX
		dy := body.VelY*dt + body.TransY
		body.TransX, body.TransY = 0, 0

		hd.IntendDX, hd.IntendDY = dx, dy
		if dx != 0 || dy != 0 {
			hd.FacingX, hd.FacingY = normalizeVec(dx, dy)
		}

		startX, startY := obj.X, obj.Y
		contacts := r.staticContacts[hd.ID][:0]

		if dx != 0 {
			if check := obj.Check(dx, 0, tags.ResolvStatic); check != nil {
				for _, other := range check.Objects {
					contact := check.ContactWithObject(other)
					if contact == nil || !contactClips(dx, contact.X()) {
						continue
					}
					dx = contact.X()
					body.VelX = 0
					contacts = appendContact(contacts, other)
				}
			}
			obj.X += dx
			obj.Update()
		}
		if dy != 0 {
			if check := obj.Check(0, dy, tags.ResolvStatic); check != nil {
				for _, other := range check.Objects {
					contact := check.ContactWithObject(other)
					if contact == nil || !contactClips(dy, contact.Y()) {
						continue
					}
					dy = contact.Y()
					body.VelY = 0
					contacts = appendContact(contacts, other)
				}
			}
			obj.Y += dy
			obj.Update()
		}

		hd.AppliedDX = obj.X - startX
		hd.AppliedDY = obj.Y - startY

		if len(contacts) > 0 {
			r.staticContacts[hd.ID] = contacts
		} else {
			delete(r.staticContacts, hd.ID)
		}
	}
}

// contactClips reports whether a contact delta lies in the path of the
// requested displacement: same direction, no farther than the move itself.
// Contact deltas are per-axis gaps that ignore the other axis, so an
// obstacle the body is merely flush with reports a delta pointing the
// wrong way; applying it would snap the body backwards. Each accepted
// contact shrinks the displacement, so iterating a check's objects leaves
// the nearest obstacle's clip in effect.
func contactClips(d, c float64) bool {
	if d > 0 {
		return c >= 0 && c < d
	}
	return c <= 0 && c > d
}

func appendContact(contacts []*resolv.Object, obj *resolv.Object) []*resolv.Object {
	for _, c := range contacts {
		if c == obj {
			return contacts
		}
	}
	return append(contacts, obj)
}
