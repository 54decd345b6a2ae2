package movement

import (
	"log"
	"time"
)

// Dash bursts along a direction for a duration, then stops the body dead.
type Dash struct {
	vx, vy   float64
	duration float64
	elapsed  float64
	done     bool
}

func NewDash(speed, dirX, dirY float64, duration time.Duration) *Dash {
	ux, uy := normalize(dirX, dirY)
	d := duration.Seconds()
	if d <= 0 {
		log.Printf("[movement] dash duration %v clamped to one tick", duration)
		d = 1.0 / 60
	}
	return &Dash{vx: ux * speed, vy: uy * speed, duration: d}
}

func (d *Dash) Update(b Body, dt float64) {
	// Compare before accumulating so the burst covers the full duration; a
	// 100ms dash at 60Hz moves on all six ticks, then stops on the seventh.
	if d.elapsed >= d.duration {
		b.SetVelocity(0, 0)
		d.done = true
		return
	}
	d.elapsed += dt
	b.SetVelocity(d.vx, d.vy)
}

func (d *Dash) Finished() bool { return d.done }
