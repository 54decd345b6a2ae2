package movement

import (
	"log"
	"math"

	cfg "github.com/automoto/topdown/config"
)

// ProjectileKind selects the trajectory.
type ProjectileKind int

const (
	// ProjectileStraight flies at constant velocity, optionally up to a
	// maximum range.
	ProjectileStraight ProjectileKind = iota
	// ProjectileArc adds a virtual height integrated under gravity;
	// finishes on ground contact.
	ProjectileArc
	// ProjectileBounce is an arc that retains a fraction of its velocity
	// per ground contact, then rolls to a stop.
	ProjectileBounce
)

// ProjectileOptions configures NewProjectile. Zero values take the
// documented defaults.
type ProjectileOptions struct {
	Speed      float64
	DirX, DirY float64

	MaxRange float64 // Straight only; 0 means unlimited

	Gravity       float64 // z units/s², defaults to config
	InitialZSpeed float64 // upward launch speed for Arc/Bounce

	RestitutionZ  float64 // vertical velocity retained per bounce
	RestitutionXY float64 // horizontal velocity retained per bounce
	MaxBounces    int
	RollFriction  float64 // horizontal velocity retained per 60Hz frame while rolling
}

// Projectile moves a body along one of three trajectory kinds. Height is a
// virtual z axis on top of the gravity-free 2D plane; Z reports it for
// rendering collaborators.
type Projectile struct {
	kind ProjectileKind
	opts ProjectileOptions

	vx, vy   float64
	z, vz    float64
	traveled float64
	bounces  int
	rolling  bool
	done     bool
}

func NewProjectile(kind ProjectileKind, opts ProjectileOptions) *Projectile {
	ux, uy := normalize(opts.DirX, opts.DirY)
	if opts.Gravity <= 0 {
		opts.Gravity = cfg.Movement.ProjectileGravity
	}
	if opts.RestitutionZ <= 0 {
		opts.RestitutionZ = 0.6
	}
	if opts.RestitutionXY <= 0 {
		opts.RestitutionXY = 0.8
	}
	if opts.RollFriction <= 0 || opts.RollFriction >= 1 {
		opts.RollFriction = 0.92
	}
	if opts.MaxBounces < 0 {
		log.Printf("[movement] projectile max bounces %d clamped to 0", opts.MaxBounces)
		opts.MaxBounces = 0
	}
	if kind != ProjectileStraight && opts.InitialZSpeed <= 0 {
		// A grounded launch would terminate on the first step.
		opts.InitialZSpeed = opts.Gravity / 4
	}

	return &Projectile{
		kind: kind,
		opts: opts,
		vx:   ux * opts.Speed,
		vy:   uy * opts.Speed,
		vz:   opts.InitialZSpeed,
	}
}

// Z is the current virtual height.
func (p *Projectile) Z() float64 { return p.z }

func (p *Projectile) Update(b Body, dt float64) {
	if p.done {
		b.SetVelocity(0, 0)
		return
	}

	switch p.kind {
	case ProjectileStraight:
		p.traveled += math.Hypot(p.vx, p.vy) * dt
		if p.opts.MaxRange > 0 && p.traveled >= p.opts.MaxRange {
			p.done = true
			b.SetVelocity(0, 0)
			return
		}
		b.SetVelocity(p.vx, p.vy)

	case ProjectileArc:
		p.stepHeight(dt)
		if p.grounded() {
			p.done = true
			b.SetVelocity(0, 0)
			return
		}
		b.SetVelocity(p.vx, p.vy)

	case ProjectileBounce:
		if p.rolling {
			decay := math.Pow(p.opts.RollFriction, dt*60)
			p.vx *= decay
			p.vy *= decay
			if math.Hypot(p.vx, p.vy) < cfg.Movement.StopEpsilon {
				p.done = true
				b.SetVelocity(0, 0)
				return
			}
			b.SetVelocity(p.vx, p.vy)
			return
		}

		p.stepHeight(dt)
		if p.grounded() {
			p.bounces++
			if p.bounces > p.opts.MaxBounces {
				p.z, p.vz = 0, 0
				p.rolling = true
			} else {
				p.z = 0
				p.vz = -p.vz * p.opts.RestitutionZ
				p.vx *= p.opts.RestitutionXY
				p.vy *= p.opts.RestitutionXY
			}
		}
		b.SetVelocity(p.vx, p.vy)
	}
}

func (p *Projectile) stepHeight(dt float64) {
	p.vz -= p.opts.Gravity * dt
	p.z += p.vz * dt
}

func (p *Projectile) grounded() bool {
	return p.z <= 0 && p.vz < 0
}

func (p *Projectile) Finished() bool { return p.done }
