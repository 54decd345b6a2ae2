package components

import (
	"time"

	"github.com/yohamta/donburi"
)

// ZoneShape selects the sensor geometry.
type ZoneShape int

const (
	ZoneCircle ZoneShape = iota
	ZoneWedge
)

func (s ZoneShape) String() string {
	if s == ZoneWedge {
		return "wedge"
	}
	return "circle"
}

// ZoneData is a non-colliding sensor. Zones detect movable hitboxes but
// never participate in physical resolution.
type ZoneData struct {
	ID       string
	Shape    ZoneShape
	Radius   float64
	Aperture float64 // radians, wedge only
	Facing   float64 // radians, wedge orientation

	// HostID links the zone to a hitbox: its position (and facing, for
	// wedges) is re-derived from the host every tick and is never
	// independently settable. Empty means world-anchored.
	HostID string

	LimitedByWalls bool

	// Duration tears the zone down automatically once elapsed. Zero means
	// permanent.
	Duration time.Duration
	Age      float64 // seconds since creation

	// Currently detected hitbox ids.
	Occupancy map[string]struct{}

	// Tessellated outline relative to the zone center, for introspection.
	Vertices []Vector
}

var Zone = donburi.NewComponentType[ZoneData]()
