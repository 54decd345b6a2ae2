package core

import (
	"math"

	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"

	"github.com/automoto/topdown/components"
	cfg "github.com/automoto/topdown/config"
	"github.com/automoto/topdown/tags"
)

// applySliding nudges sliding-enabled movables around the corners of
// static obstacles. A blocked body whose intended footprint only grazes an
// obstacle (overlap below the partial ratio) gets a perpendicular
// correction away from the obstacle, scaled by its friction, so it slips
// past instead of sticking. Head-on hits stay blocked.
func (r *Room) applySliding(dt float64) {
	for entry := range components.Sliding.Iter(r.world) {
		sl := components.Sliding.Get(entry)
		if !sl.Enabled {
			continue
		}
		hd := components.Hitbox.Get(entry)
		contacts := r.staticContacts[hd.ID]
		if len(contacts) == 0 {
			continue
		}

		intendMag := math.Hypot(hd.IntendDX, hd.IntendDY)
		if intendMag == 0 || intendMag/dt <= sl.MinVelocity {
			continue
		}

		obj := components.Object.Get(entry).Object

		// Footprint the body wanted to occupy, before clipping.
		wantX := obj.X - hd.AppliedDX + hd.IntendDX
		wantY := obj.Y - hd.AppliedDY + hd.IntendDY
		horizontal := math.Abs(hd.IntendDX) >= math.Abs(hd.IntendDY)

		var sumX, sumY float64
		partials := 0
		for _, wall := range contacts {
			ox, oy := overlapExtents(wantX, wantY, obj.W, obj.H, wall)
			if ox <= 0 || oy <= 0 {
				continue
			}
			// Grazing is judged on the axis perpendicular to travel: a body
			// pushing right that only clips the wall with a sliver of its
			// height can slip around; a mostly-covered edge is a real block.
			var ratio float64
			if horizontal {
				ratio = oy / obj.H
			} else {
				ratio = ox / obj.W
			}
			if ratio >= cfg.Sliding.PartialOverlapRatio {
				continue
			}
			sx, sy := slideDirection(hd, obj, wall)
			sumX += sx
			sumY += sy
			partials++
		}
		if partials == 0 {
			continue
		}

		slideX := sumX / float64(partials) * intendMag * sl.Friction
		slideY := sumY / float64(partials) * intendMag * sl.Friction
		if slideX == 0 && slideY == 0 {
			continue
		}
		r.translateClipped(entry, slideX, slideY)
	}
}

// slideDirection picks the unit correction perpendicular to the dominant
// intended axis, pointing away from the obstacle's center.
func slideDirection(hd *components.HitboxData, obj, wall *resolv.Object) (float64, float64) {
	cx := obj.X + obj.W/2
	cy := obj.Y + obj.H/2
	wx := wall.X + wall.W/2
	wy := wall.Y + wall.H/2

	if math.Abs(hd.IntendDX) >= math.Abs(hd.IntendDY) {
		// Moving mostly horizontally, slide vertically.
		if cy < wy {
			return 0, -1
		}
		return 0, 1
	}
	if cx < wx {
		return -1, 0
	}
	return 1, 0
}

// translateClipped moves a body by (dx, dy) with the same axis-separated
// static clipping as the integrator, folding the extra displacement into
// the tick's applied delta.
func (r *Room) translateClipped(entry *donburi.Entry, dx, dy float64) {
	hd := components.Hitbox.Get(entry)
	obj := components.Object.Get(entry).Object

	if dx != 0 {
		if check := obj.Check(dx, 0, tags.ResolvStatic); check != nil {
			for _, other := range check.Objects {
				if contact := check.ContactWithObject(other); contact != nil && contactClips(dx, contact.X()) {
					dx = contact.X()
				}
			}
		}
		obj.X += dx
		obj.Update()
		hd.AppliedDX += dx
	}
	if dy != 0 {
		if check := obj.Check(0, dy, tags.ResolvStatic); check != nil {
			for _, other := range check.Objects {
				if contact := check.ContactWithObject(other); contact != nil && contactClips(dy, contact.Y()) {
					dy = contact.Y()
				}
			}
		}
		obj.Y += dy
		obj.Update()
		hd.AppliedDY += dy
	}
}

func overlapExtents(x, y, w, h float64, wall *resolv.Object) (float64, float64) {
	ox := math.Min(x+w, wall.X+wall.W) - math.Max(x, wall.X)
	oy := math.Min(y+h, wall.Y+wall.H) - math.Max(y, wall.Y)
	return ox, oy
}
