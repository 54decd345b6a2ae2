package core

import (
	"fmt"
	"math"
	"time"

	"github.com/solarlune/resolv"

	"github.com/automoto/topdown/components"
	cfg "github.com/automoto/topdown/config"
	"github.com/automoto/topdown/tags"
)

// ZoneSpec describes a sensor zone to attach to the room. X, Y is the
// zone's center.
type ZoneSpec struct {
	ID     string
	Shape  components.ZoneShape
	X, Y   float64
	Radius float64

	// Aperture is the full wedge angle in radians; Facing the wedge's
	// center direction. Ignored for circles.
	Aperture float64
	Facing   float64

	// HostID links the zone to a movable hitbox: the zone follows the
	// host's center, a wedge also follows its facing, and the zone dies
	// with it.
	HostID string

	// LimitedByWalls gates entry on line of sight from the zone center.
	LimitedByWalls bool

	// Duration > 0 removes the zone automatically once it has aged out.
	Duration time.Duration
}

// AddZone registers a sensor zone. Zones never block movement; they only
// track occupancy and fire enter/exit events.
func (r *Room) AddZone(spec ZoneSpec) error {
	if _, ok := r.zones[spec.ID]; ok {
		return fmt.Errorf("%w: zone %q", ErrDuplicateID, spec.ID)
	}
	if spec.Radius <= 0 {
		return fmt.Errorf("%w: zone radius %g", ErrInvalidShape, spec.Radius)
	}
	if spec.Shape == components.ZoneWedge && (spec.Aperture <= 0 || spec.Aperture > 2*math.Pi) {
		return fmt.Errorf("%w: wedge aperture %g", ErrInvalidShape, spec.Aperture)
	}
	if spec.HostID != "" {
		if _, ok := r.hitboxEntry(spec.HostID); !ok {
			return fmt.Errorf("%w: zone host %q not found", ErrInvalidParameter, spec.HostID)
		}
	}

	obj := resolv.NewObject(spec.X-spec.Radius, spec.Y-spec.Radius, spec.Radius*2, spec.Radius*2, tags.ResolvZone)
	r.space.Add(obj)

	entity := r.world.Create(tags.Zone, components.Object, components.Zone)
	entry := r.world.Entry(entity)
	components.Object.SetValue(entry, components.ObjectData{Object: obj})

	zd := components.ZoneData{
		ID:             spec.ID,
		Shape:          spec.Shape,
		Radius:         spec.Radius,
		Aperture:       spec.Aperture,
		Facing:         normalizeAngle(spec.Facing),
		HostID:         spec.HostID,
		LimitedByWalls: spec.LimitedByWalls,
		Duration:       spec.Duration,
		Occupancy:      make(map[string]struct{}),
	}
	zd.Vertices = tessellate(&zd, spec.X, spec.Y)
	components.Zone.SetValue(entry, zd)

	r.zones[spec.ID] = entity
	return nil
}

// RemoveZone drops a zone. Occupants are discarded without exit events.
// Returns false on unknown id.
func (r *Room) RemoveZone(id string) bool {
	e, ok := r.zones[id]
	if !ok || !r.world.Valid(e) {
		return false
	}
	entry := r.world.Entry(e)
	r.space.Remove(components.Object.Get(entry).Object)
	r.world.Remove(e)
	delete(r.zones, id)
	delete(r.zoneCBs, id)
	return true
}

// ZoneOccupants lists the hitbox ids currently inside a zone.
func (r *Room) ZoneOccupants(id string) []string {
	e, ok := r.zones[id]
	if !ok || !r.world.Valid(e) {
		return nil
	}
	zd := components.Zone.Get(r.world.Entry(e))
	out := make([]string, 0, len(zd.Occupancy))
	for occ := range zd.Occupancy {
		out = append(out, occ)
	}
	return out
}

// updateZones ages zones out, re-anchors linked zones to their hosts, and
// rescans occupancy. Entry into a wall-limited zone additionally requires
// line of sight from the zone center to the candidate; a body already
// inside is never evicted by losing sight alone.
func (r *Room) updateZones(dt float64) {
	type zoneEvents struct {
		id              string
		entered, exited []string
	}

	var dead []string
	var events []zoneEvents

	for entry := range components.Zone.Iter(r.world) {
		zd := components.Zone.Get(entry)
		obj := components.Object.Get(entry).Object

		zd.Age += dt
		if zd.Duration > 0 && zd.Age >= zd.Duration.Seconds() {
			dead = append(dead, zd.ID)
			continue
		}

		if zd.HostID != "" {
			hostEntry, ok := r.hitboxEntry(zd.HostID)
			if !ok {
				dead = append(dead, zd.ID)
				continue
			}
			hostObj := components.Object.Get(hostEntry).Object
			hostHd := components.Hitbox.Get(hostEntry)

			obj.X = hostObj.X + hostObj.W/2 - zd.Radius
			obj.Y = hostObj.Y + hostObj.H/2 - zd.Radius
			obj.Update()

			if zd.Shape == components.ZoneWedge && (hostHd.FacingX != 0 || hostHd.FacingY != 0) {
				zd.Facing = math.Atan2(hostHd.FacingY, hostHd.FacingX)
			}
		}

		cx := obj.X + zd.Radius
		cy := obj.Y + zd.Radius
		zd.Vertices = tessellate(zd, cx, cy)

		next := make(map[string]struct{})
		if check := obj.Check(0, 0, tags.ResolvMovable); check != nil {
			for _, cand := range check.Objects {
				candID, ok := r.objects[cand]
				if !ok {
					continue
				}
				if zd.HostID == candID {
					continue
				}
				if !zoneContains(zd, cx, cy, cand) {
					continue
				}
				_, inside := zd.Occupancy[candID]
				if !inside && zd.LimitedByWalls {
					tx := cand.X + cand.W/2
					ty := cand.Y + cand.H/2
					if !r.lineOfSight(cx, cy, tx, ty) {
						continue
					}
				}
				next[candID] = struct{}{}
			}
		}

		var entered, exited []string
		for id := range next {
			if _, had := zd.Occupancy[id]; !had {
				entered = append(entered, id)
			}
		}
		for id := range zd.Occupancy {
			if _, have := next[id]; !have {
				exited = append(exited, id)
			}
		}
		zd.Occupancy = next

		if len(entered) > 0 || len(exited) > 0 {
			events = append(events, zoneEvents{id: zd.ID, entered: entered, exited: exited})
		}
	}

	// Handlers run after iteration so they can freely add or remove zones
	// and hitboxes.
	for _, ev := range events {
		h := r.zoneCBs[ev.id]
		if h == nil {
			continue
		}
		if len(ev.entered) > 0 {
			for _, fn := range h.enter {
				fn(ev.entered)
			}
		}
		if len(ev.exited) > 0 {
			for _, fn := range h.exit {
				fn(ev.exited)
			}
		}
	}

	for _, id := range dead {
		r.RemoveZone(id)
	}
}

// zoneContains tests a movable body against the zone geometry: closest
// point of the body's box for distance, body center for the wedge angle.
func zoneContains(zd *components.ZoneData, cx, cy float64, cand *resolv.Object) bool {
	px := clampF(cx, cand.X, cand.X+cand.W)
	py := clampF(cy, cand.Y, cand.Y+cand.H)
	if math.Hypot(px-cx, py-cy) > zd.Radius {
		return false
	}
	if zd.Shape != components.ZoneWedge {
		return true
	}

	tx := cand.X + cand.W/2
	ty := cand.Y + cand.H/2
	if tx == cx && ty == cy {
		return true
	}
	angle := math.Atan2(ty-cy, tx-cx)
	return math.Abs(normalizeAngle(angle-zd.Facing)) <= zd.Aperture/2
}

// tessellate approximates the zone outline with straight segments no wider
// than the configured arc step. Wedges start and end at the center point.
func tessellate(zd *components.ZoneData, cx, cy float64) []components.Vector {
	maxStep := cfg.Zones.MaxSegmentRadians

	if zd.Shape == components.ZoneWedge {
		start := zd.Facing - zd.Aperture/2
		segs := int(math.Ceil(zd.Aperture / maxStep))
		if segs < 1 {
			segs = 1
		}
		verts := make([]components.Vector, 0, segs+2)
		verts = append(verts, components.Vector{X: cx, Y: cy})
		for i := 0; i <= segs; i++ {
			a := start + zd.Aperture*float64(i)/float64(segs)
			verts = append(verts, components.Vector{
				X: cx + math.Cos(a)*zd.Radius,
				Y: cy + math.Sin(a)*zd.Radius,
			})
		}
		return verts
	}

	segs := int(math.Ceil(2 * math.Pi / maxStep))
	verts := make([]components.Vector, 0, segs)
	for i := 0; i < segs; i++ {
		a := 2 * math.Pi * float64(i) / float64(segs)
		verts = append(verts, components.Vector{
			X: cx + math.Cos(a)*zd.Radius,
			Y: cy + math.Sin(a)*zd.Radius,
		})
	}
	return verts
}
