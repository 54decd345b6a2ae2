// Package movement provides composable motion strategies. Each strategy is
// a self-contained law of motion over a physics body: gameplay code pushes
// strategies onto an entity, the manager runs them once per tick before the
// physics step, and finished strategies remove themselves.
package movement

import "math"

// Body is the view of a physics body a strategy manipulates. Positions are
// the top-left of the bounding box, velocities are pixels per second.
type Body interface {
	Position() (x, y float64)
	SetPosition(x, y float64)
	Velocity() (vx, vy float64)
	SetVelocity(vx, vy float64)
	Size() (w, h float64)

	// Nearby returns the bounds of non-sensor bodies other than this one
	// whose centers lie within radius.
	Nearby(radius float64) []Rect
}

// Rect is an axis-aligned bounding box, top-left anchored.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X &&
		r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// Strategy is one unit of motion logic. Update is called once per tick with
// dt in seconds; after the call, a strategy reporting Finished is removed
// from its body's list.
type Strategy interface {
	Update(b Body, dt float64)
	Finished() bool
}

// Completer is optionally implemented by strategies that want a hook after
// removal, e.g. to chain a follow-up strategy.
type Completer interface {
	OnFinished()
}

// TargetFunc resolves a tracked target's current bounds. The second return
// is false once the target no longer exists.
type TargetFunc func() (Rect, bool)

func normalize(x, y float64) (float64, float64) {
	d := math.Hypot(x, y)
	if d == 0 {
		return 0, 0
	}
	return x / d, y / d
}

func clampMagnitude(x, y, maxLen float64) (float64, float64) {
	d := math.Hypot(x, y)
	if d <= maxLen || d == 0 {
		return x, y
	}
	return x / d * maxLen, y / d * maxLen
}

func bodyRect(b Body) Rect {
	x, y := b.Position()
	w, h := b.Size()
	return Rect{X: x, Y: y, W: w, H: h}
}
