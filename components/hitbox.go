package components

import "github.com/yohamta/donburi"

// HitboxKind distinguishes immovable obstacles from entity bodies.
type HitboxKind int

const (
	KindStatic HitboxKind = iota
	KindMovable
)

func (k HitboxKind) String() string {
	if k == KindStatic {
		return "static"
	}
	return "movable"
}

type HitboxData struct {
	ID    string
	Kind  HitboxKind
	Owner EntityHandle // nil for obstacles and unowned bodies

	// Movement-state tracking
	PrevX, PrevY float64
	IsMoving     bool

	// Last nonzero movement intent, unit length. Drives linked-zone facing.
	FacingX, FacingY float64

	// Per-tick integration scratch. Intend is the displacement requested
	// before static clipping, Applied is what actually landed on the body.
	// The movable-vs-movable resolver reverts Applied when a body pushed
	// into another one.
	IntendDX, IntendDY   float64
	AppliedDX, AppliedDY float64

	VertexCount int

	// Local-space polygon outline, nil for rectangles. Kept so a resize
	// can rebuild the shape at the new scale.
	PolyVerts []float64
}

var Hitbox = donburi.NewComponentType[HitboxData]()
