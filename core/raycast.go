package core

import (
	"math"

	cfg "github.com/automoto/topdown/config"
	"github.com/automoto/topdown/tags"
)

// lineOfSight marches a probe from (x1, y1) to (x2, y2) in fixed steps and
// reports whether it crosses any static obstacle. The probe is a small box
// rather than a point so thin diagonal walls can't be threaded between
// samples.
func (r *Room) lineOfSight(x1, y1, x2, y2 float64) bool {
	dist := math.Hypot(x2-x1, y2-y1)
	if dist == 0 {
		return true
	}
	step := cfg.Zones.LOSStepSize
	half := cfg.Zones.LOSCheckSize / 2
	ux := (x2 - x1) / dist
	uy := (y2 - y1) / dist

	for d := step; d < dist; d += step {
		px := x1 + ux*d
		py := y1 + uy*d
		for obj := range r.objects {
			if !obj.HasTags(tags.ResolvStatic) {
				continue
			}
			if px+half > obj.X && px-half < obj.X+obj.W &&
				py+half > obj.Y && py-half < obj.Y+obj.H {
				return false
			}
		}
	}
	return true
}

// LineOfSight reports whether an unobstructed straight line exists between
// the centers of two hitboxes.
func (r *Room) LineOfSight(fromID, toID string) bool {
	from, ok := r.hitboxEntry(fromID)
	if !ok {
		return false
	}
	to, ok := r.hitboxEntry(toID)
	if !ok {
		return false
	}
	a := objCenterOf(from)
	b := objCenterOf(to)
	return r.lineOfSight(a.X, a.Y, b.X, b.Y)
}
