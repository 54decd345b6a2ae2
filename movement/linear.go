package movement

import "time"

// LinearMove applies a constant velocity, optionally for a fixed duration.
type LinearMove struct {
	vx, vy   float64
	duration float64 // seconds, <= 0 means indefinite
	elapsed  float64
}

// NewLinearMove moves at (vx, vy) px/s. A zero duration runs until the
// strategy is removed explicitly.
func NewLinearMove(vx, vy float64, duration time.Duration) *LinearMove {
	return &LinearMove{vx: vx, vy: vy, duration: duration.Seconds()}
}

func (m *LinearMove) Update(b Body, dt float64) {
	m.elapsed += dt
	b.SetVelocity(m.vx, m.vy)
}

func (m *LinearMove) Finished() bool {
	return m.duration > 0 && m.elapsed >= m.duration
}
