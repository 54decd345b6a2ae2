package movement

import (
	"math"
	"time"

	cfg "github.com/automoto/topdown/config"
)

// IceMovement accelerates toward a target direction with exponential
// approach, then lets the body skid out under friction once the active
// phase ends. Finished when stopped and nearly at rest.
type IceMovement struct {
	dirX, dirY float64
	maxSpeed   float64
	accel      float64 // approach rate, 1/s
	friction   float64 // velocity retained per 60Hz frame while skidding
	duration   float64 // seconds of active steering, <= 0 means until direction cleared

	elapsed   float64
	stopped   bool
	lastSpeed float64
}

func NewIceMovement(dirX, dirY, maxSpeed, accel, friction float64, duration time.Duration) *IceMovement {
	ux, uy := normalize(dirX, dirY)
	if friction <= 0 || friction >= 1 {
		friction = 0.95
	}
	return &IceMovement{
		dirX: ux, dirY: uy,
		maxSpeed: maxSpeed,
		accel:    accel,
		friction: friction,
		duration: duration.Seconds(),
	}
}

// Stop ends the steering phase; the body keeps skidding until friction
// bleeds the speed off.
func (m *IceMovement) Stop() { m.stopped = true }

func (m *IceMovement) Update(b Body, dt float64) {
	m.elapsed += dt
	if m.duration > 0 && m.elapsed >= m.duration {
		m.stopped = true
	}

	vx, vy := b.Velocity()
	if !m.stopped && (m.dirX != 0 || m.dirY != 0) {
		blend := 1 - math.Exp(-m.accel*dt)
		vx += (m.dirX*m.maxSpeed - vx) * blend
		vy += (m.dirY*m.maxSpeed - vy) * blend
	} else {
		decay := math.Pow(m.friction, dt*60)
		vx *= decay
		vy *= decay
	}
	b.SetVelocity(vx, vy)
	m.lastSpeed = math.Hypot(vx, vy)
}

func (m *IceMovement) Finished() bool {
	return m.stopped && m.lastSpeed < cfg.Movement.StopEpsilon
}
