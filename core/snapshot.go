package core

import (
	"sort"

	"github.com/automoto/topdown/components"
)

// HitboxSnapshot is a serializable view of one hitbox at tick boundary.
type HitboxSnapshot struct {
	ID   string  `json:"id"`
	Kind string  `json:"kind"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	W    float64 `json:"w"`
	H    float64 `json:"h"`
	VelX float64 `json:"velX,omitempty"`
	VelY float64 `json:"velY,omitempty"`

	Moving      bool `json:"moving,omitempty"`
	VertexCount int  `json:"vertexCount"`
}

// ZoneSnapshot is a serializable view of one zone. Vertices trace the
// tessellated outline for debug rendering.
type ZoneSnapshot struct {
	ID       string  `json:"id"`
	Shape    string  `json:"shape"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Radius   float64 `json:"radius"`
	Facing   float64 `json:"facing,omitempty"`
	Aperture float64 `json:"aperture,omitempty"`
	HostID   string  `json:"hostId,omitempty"`

	Occupants []string            `json:"occupants,omitempty"`
	Vertices  []components.Vector `json:"vertices,omitempty"`
}

// Snapshot is the full observable room state, ordered by id so repeated
// captures of the same state compare equal.
type Snapshot struct {
	Hitboxes []HitboxSnapshot `json:"hitboxes"`
	Zones    []ZoneSnapshot   `json:"zones"`
}

// Snapshot captures the current room state.
func (r *Room) Snapshot() Snapshot {
	var snap Snapshot

	for entry := range components.Hitbox.Iter(r.world) {
		hd := components.Hitbox.Get(entry)
		obj := components.Object.Get(entry).Object
		hs := HitboxSnapshot{
			ID:          hd.ID,
			Kind:        hd.Kind.String(),
			X:           obj.X,
			Y:           obj.Y,
			W:           obj.W,
			H:           obj.H,
			Moving:      hd.IsMoving,
			VertexCount: hd.VertexCount,
		}
		if entry.HasComponent(components.Body) {
			body := components.Body.Get(entry)
			hs.VelX, hs.VelY = body.VelX, body.VelY
		}
		snap.Hitboxes = append(snap.Hitboxes, hs)
	}
	sort.Slice(snap.Hitboxes, func(i, j int) bool {
		return snap.Hitboxes[i].ID < snap.Hitboxes[j].ID
	})

	for entry := range components.Zone.Iter(r.world) {
		zd := components.Zone.Get(entry)
		obj := components.Object.Get(entry).Object
		zs := ZoneSnapshot{
			ID:       zd.ID,
			Shape:    zd.Shape.String(),
			X:        obj.X + zd.Radius,
			Y:        obj.Y + zd.Radius,
			Radius:   zd.Radius,
			Facing:   zd.Facing,
			Aperture: zd.Aperture,
			HostID:   zd.HostID,
			Vertices: zd.Vertices,
		}
		for occ := range zd.Occupancy {
			zs.Occupants = append(zs.Occupants, occ)
		}
		sort.Strings(zs.Occupants)
		snap.Zones = append(snap.Zones, zs)
	}
	sort.Slice(snap.Zones, func(i, j int) bool {
		return snap.Zones[i].ID < snap.Zones[j].ID
	})

	return snap
}
