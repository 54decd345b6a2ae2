package movement

import "math"

// Falloff selects how repulsion strength decays with distance.
type Falloff int

const (
	FalloffInverseSquare Falloff = iota
	FalloffLinear
)

// SeekAvoid is potential-field steering: an attraction term toward a
// tracked target combined with repulsion from nearby bodies, clamped to a
// maximum speed. The attraction zeroes once the body's bounds overlap the
// target's; the strategy finishes when the target no longer exists.
type SeekAvoid struct {
	target    TargetFunc
	maxSpeed  float64
	radius    float64 // repulsion range
	falloff   Falloff
	targetEnd bool
}

// NewSeekAvoid steers toward target with inverse-square repulsion from
// bodies within radius.
func NewSeekAvoid(target TargetFunc, maxSpeed, radius float64) *SeekAvoid {
	return &SeekAvoid{target: target, maxSpeed: maxSpeed, radius: radius, falloff: FalloffInverseSquare}
}

// NewLinearRepulsion is SeekAvoid with a linear repulsion falloff.
func NewLinearRepulsion(target TargetFunc, maxSpeed, radius float64) *SeekAvoid {
	return &SeekAvoid{target: target, maxSpeed: maxSpeed, radius: radius, falloff: FalloffLinear}
}

func (s *SeekAvoid) Update(b Body, dt float64) {
	self := bodyRect(b)
	cx, cy := self.Center()

	var vx, vy float64

	target, ok := s.target()
	if !ok {
		s.targetEnd = true
		b.SetVelocity(0, 0)
		return
	}
	if !self.Overlaps(target) {
		tx, ty := target.Center()
		ux, uy := normalize(tx-cx, ty-cy)
		vx, vy = ux*s.maxSpeed, uy*s.maxSpeed
	}

	// Repulsion away from every nearby body, summed then folded into the
	// steering velocity.
	var rx, ry float64
	for _, o := range b.Nearby(s.radius) {
		ox, oy := o.Center()
		dx, dy := cx-ox, cy-oy
		dist := math.Hypot(dx, dy)
		if dist >= s.radius || dist == 0 {
			continue
		}
		var w float64
		switch s.falloff {
		case FalloffLinear:
			w = 1 - dist/s.radius
		default:
			// Inverse-square, zero at the radius edge.
			w = s.radius*s.radius/(dist*dist) - 1
		}
		rx += dx / dist * w
		ry += dy / dist * w
	}
	vx += rx * s.maxSpeed
	vy += ry * s.maxSpeed

	vx, vy = clampMagnitude(vx, vy, s.maxSpeed)
	b.SetVelocity(vx, vy)
}

func (s *SeekAvoid) Finished() bool { return s.targetEnd }
