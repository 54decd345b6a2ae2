package movement

import (
	"log"
	"math"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// OscillateKind selects the waveform.
type OscillateKind int

const (
	OscillateSine OscillateKind = iota
	OscillateLinear
	OscillateCircular
)

// Oscillate moves the body around the position recorded on its first
// update: back and forth along a direction (sine or linear/triangle
// waveform), or in a circle. Velocity is derived from the positional delta
// so the physics step still resolves collisions against the motion.
type Oscillate struct {
	dirX, dirY float64
	amplitude  float64
	period     float64
	kind       OscillateKind
	duration   float64

	seq     *gween.Sequence // sine/linear waveform, looped
	elapsed float64
	started bool
	originX float64
	originY float64
}

func NewOscillate(dirX, dirY, amplitude float64, period time.Duration, kind OscillateKind, duration time.Duration) *Oscillate {
	ux, uy := normalize(dirX, dirY)
	p := period.Seconds()
	if p <= 0 {
		log.Printf("[movement] oscillate period %v clamped to 1s", period)
		p = 1
	}

	o := &Oscillate{
		dirX:      ux,
		dirY:      uy,
		amplitude: amplitude,
		period:    p,
		kind:      kind,
		duration:  duration.Seconds(),
	}

	// One full cycle as a tween sequence: out to +A, across to -A, back to
	// rest, looped forever. Easing picks the waveform.
	a := float32(amplitude)
	q := float32(p) / 4
	switch kind {
	case OscillateSine:
		o.seq = gween.NewSequence(
			gween.New(0, a, q, ease.OutSine),
			gween.New(a, -a, 2*q, ease.InOutSine),
			gween.New(-a, 0, q, ease.InSine),
		)
		o.seq.SetLoop(-1)
	case OscillateLinear:
		o.seq = gween.NewSequence(
			gween.New(0, a, q, ease.Linear),
			gween.New(a, -a, 2*q, ease.Linear),
			gween.New(-a, 0, q, ease.Linear),
		)
		o.seq.SetLoop(-1)
	}

	return o
}

func (o *Oscillate) Update(b Body, dt float64) {
	if !o.started {
		o.originX, o.originY = b.Position()
		o.started = true
	}
	o.elapsed += dt

	var tx, ty float64
	switch o.kind {
	case OscillateCircular:
		// Circle through the origin: tangent along dir at t=0.
		theta := 2 * math.Pi * o.elapsed / o.period
		along := o.amplitude * math.Sin(theta)
		across := o.amplitude * (1 - math.Cos(theta))
		tx = o.originX + o.dirX*along - o.dirY*across
		ty = o.originY + o.dirY*along + o.dirX*across
	default:
		offset, _, _ := o.seq.Update(float32(dt))
		tx = o.originX + o.dirX*float64(offset)
		ty = o.originY + o.dirY*float64(offset)
	}

	cx, cy := b.Position()
	b.SetVelocity((tx-cx)/dt, (ty-cy)/dt)
}

func (o *Oscillate) Finished() bool {
	return o.duration > 0 && o.elapsed >= o.duration
}
