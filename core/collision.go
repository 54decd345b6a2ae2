package core

import (
	"sort"

	"github.com/solarlune/resolv"

	"github.com/automoto/topdown/components"
	cfg "github.com/automoto/topdown/config"
	"github.com/automoto/topdown/tags"
)

// Contacts lists the ids currently in contact with a hitbox, sorted.
func (r *Room) Contacts(id string) []string {
	out := make([]string, 0, len(r.collisions[id]))
	for other := range r.collisions[id] {
		out = append(out, other)
	}
	sort.Strings(out)
	return out
}

type movableRef struct {
	hd      *components.HitboxData
	body    *components.BodyData
	obj     *resolv.Object
	centerX float64
	centerY float64
}

// resolveMovablePairs undoes the portion of each body's displacement that
// drove it toward an overlapping movable. Both sides are judged against
// the same pre-resolution centers so the outcome is order-independent: a
// body that was pushing in is pulled back and stopped, a body that was
// already withdrawing keeps its motion.
func (r *Room) resolveMovablePairs() {
	r.movableContacts = make(map[string]map[string]struct{})

	refs := make([]*movableRef, 0, 16)
	for entry := range tags.MovableHitbox.Iter(r.world) {
		obj := components.Object.Get(entry).Object
		refs = append(refs, &movableRef{
			hd:      components.Hitbox.Get(entry),
			body:    components.Body.Get(entry),
			obj:     obj,
			centerX: obj.X + obj.W/2,
			centerY: obj.Y + obj.H/2,
		})
	}

	for i := 0; i < len(refs); i++ {
		for j := i + 1; j < len(refs); j++ {
			a, b := refs[i], refs[j]
			if !aabbOverlap(a.obj, b.obj, 0) {
				continue
			}
			// The overlap counts as a contact even though the resolver is
			// about to undo it.
			r.recordPair(r.movableContacts, a.hd.ID, b.hd.ID)
			separate(a, b)
			separate(b, a)
		}
	}
}

// separate reverts self's applied displacement if its intent pointed
// toward other, and kills the corresponding velocity.
func separate(self, other *movableRef) {
	toOtherX := other.centerX - self.centerX
	toOtherY := other.centerY - self.centerY
	dot := self.hd.IntendDX*toOtherX + self.hd.IntendDY*toOtherY
	if dot <= 0 {
		return
	}
	if self.hd.AppliedDX == 0 && self.hd.AppliedDY == 0 {
		return
	}

	self.obj.X -= self.hd.AppliedDX
	self.obj.Y -= self.hd.AppliedDY
	self.obj.Update()
	self.hd.AppliedDX, self.hd.AppliedDY = 0, 0
	self.body.VelX, self.body.VelY = 0, 0
}

// updateCollisions diffs the contact sets against the previous tick and
// fires enter/exit callbacks. Exits use hysteresis: a movable pair must
// separate beyond the configured tolerance before the contact is dropped,
// which keeps jittering bodies from spamming events.
func (r *Room) updateCollisions() {
	current := make(map[string]map[string]struct{})

	for entry := range tags.MovableHitbox.Iter(r.world) {
		hd := components.Hitbox.Get(entry)
		obj := components.Object.Get(entry).Object
		if check := obj.Check(0, 0, tags.ResolvStatic, tags.ResolvMovable); check != nil {
			for _, other := range check.Objects {
				if other == obj {
					continue
				}
				// Clipping leaves bodies flush against statics, so those
				// contacts live at zero overlap.
				tol := 0.0
				if other.HasTags(tags.ResolvStatic) {
					tol = cfg.Collision.ContactEpsilon
				}
				if !aabbOverlap(obj, other, tol) {
					continue
				}
				if otherID, ok := r.objects[other]; ok {
					r.recordPair(current, hd.ID, otherID)
				}
			}
		}
	}

	// Movable pairs the resolver pushed apart this tick still count.
	for id, others := range r.movableContacts {
		for otherID := range others {
			r.recordPair(current, id, otherID)
		}
	}

	// Carry surviving old contacts: static-static pairs (neither side moves,
	// the movable scan never sees them) and movable pairs still within the
	// exit tolerance.
	for id, others := range r.collisions {
		selfEntry, ok := r.hitboxEntry(id)
		if !ok {
			continue
		}
		selfObj := components.Object.Get(selfEntry).Object
		selfStatic := components.Hitbox.Get(selfEntry).Kind == components.KindStatic
		for otherID := range others {
			if current[id] != nil {
				if _, still := current[id][otherID]; still {
					continue
				}
			}
			otherEntry, ok := r.hitboxEntry(otherID)
			if !ok {
				continue
			}
			otherObj := components.Object.Get(otherEntry).Object
			otherStatic := components.Hitbox.Get(otherEntry).Kind == components.KindStatic
			tol := 0.0
			if !selfStatic && !otherStatic {
				tol = cfg.Collision.MovableExitTolerance
			}
			if aabbOverlap(selfObj, otherObj, tol) {
				r.recordPair(current, id, otherID)
			}
		}
	}

	// Enter events first, then exits, each pair reported once per side.
	for id, others := range current {
		for otherID := range others {
			if id > otherID {
				continue
			}
			if _, had := r.collisions[id][otherID]; !had {
				r.fireCollision(id, otherID, true)
			}
		}
	}
	for id, others := range r.collisions {
		for otherID := range others {
			if id > otherID {
				continue
			}
			if _, have := current[id][otherID]; !have {
				// A pair lost because one side was removed fires nothing;
				// exit events are only for parties that still exist.
				if _, ok := r.hitboxEntry(id); !ok {
					continue
				}
				if _, ok := r.hitboxEntry(otherID); !ok {
					continue
				}
				r.fireCollision(id, otherID, false)
			}
		}
	}

	r.collisions = current
}

func (r *Room) fireCollision(a, b string, enter bool) {
	fire := func(self, other string) {
		h := r.collisionCBs[self]
		if h == nil {
			return
		}
		fns := h.enter
		if !enter {
			fns = h.exit
		}
		for _, fn := range fns {
			fn([]string{other})
		}
	}
	fire(a, b)
	fire(b, a)
}
