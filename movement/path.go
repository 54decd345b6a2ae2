package movement

import (
	"log"
	"math"
	"time"

	cfg "github.com/automoto/topdown/config"
)

// Point is a world-space waypoint.
type Point struct {
	X, Y float64
}

// PathFollow steers the body's center through a list of waypoints at
// constant speed, optionally pausing at each one and looping at the end.
type PathFollow struct {
	waypoints []Point
	speed     float64
	loop      bool
	pause     float64 // seconds of zero-velocity hold at each waypoint
	arrive    float64

	idx     int
	pausing float64 // remaining pause time
	done    bool
}

func NewPathFollow(waypoints []Point, speed float64, loop bool, pause time.Duration) *PathFollow {
	if speed <= 0 {
		log.Printf("[movement] path speed %.2f clamped to 1", speed)
		speed = 1
	}
	return &PathFollow{
		waypoints: waypoints,
		speed:     speed,
		loop:      loop,
		pause:     pause.Seconds(),
		arrive:    cfg.Movement.ArriveRadius,
	}
}

func (p *PathFollow) Update(b Body, dt float64) {
	if p.done || len(p.waypoints) == 0 {
		p.done = true
		b.SetVelocity(0, 0)
		return
	}

	if p.pausing > 0 {
		p.pausing -= dt
		b.SetVelocity(0, 0)
		return
	}

	cx, cy := bodyRect(b).Center()
	wp := p.waypoints[p.idx]
	dx, dy := wp.X-cx, wp.Y-cy
	dist := math.Hypot(dx, dy)

	if dist <= p.arrive {
		p.advance()
		b.SetVelocity(0, 0)
		return
	}

	b.SetVelocity(dx/dist*p.speed, dy/dist*p.speed)
}

func (p *PathFollow) advance() {
	p.idx++
	if p.idx >= len(p.waypoints) {
		if p.loop {
			p.idx = 0
		} else {
			p.done = true
			return
		}
	}
	p.pausing = p.pause
}

func (p *PathFollow) Finished() bool { return p.done }
