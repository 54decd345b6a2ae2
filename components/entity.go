package components

// Direction is a discrete movement direction from the input layer.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// Vector returns the unit axis for the direction in screen coordinates
// (positive y points down).
func (d Direction) Vector() (x, y float64) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	}
	return 0, 0
}

// EntityHandle is the narrow contract gameplay code exposes to the engine.
// The engine writes the hitbox top-left back through SetPosition after every
// step and reads Speed when translating directional input into displacement.
// Handles are never stored inside physics primitives; all cross-entity
// interaction goes through hitbox ids.
type EntityHandle interface {
	ID() string
	Position() (x, y float64)
	SetPosition(x, y float64)
	Speed() float64
	SetIntendedDirection(dir Direction)
}
