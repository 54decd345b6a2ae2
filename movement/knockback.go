package movement

import (
	"log"
	"time"

	cfg "github.com/automoto/topdown/config"
)

// Knockback pushes the body away with geometrically decaying speed, then
// stops it once the duration elapses.
type Knockback struct {
	dirX, dirY float64
	speed      float64
	decay      float64
	duration   float64
	elapsed    float64
	done       bool
}

// NewKnockback pushes along (dirX, dirY) starting at force px/s. Speed is
// multiplied by decay every tick while the knockback is active. Decay
// outside (0, 1] is replaced with the configured default.
func NewKnockback(dirX, dirY, force float64, duration time.Duration, decay float64) *Knockback {
	ux, uy := normalize(dirX, dirY)
	if decay <= 0 || decay > 1 {
		log.Printf("[movement] knockback decay %.3f out of range, using %.3f", decay, cfg.Movement.KnockbackDecay)
		decay = cfg.Movement.KnockbackDecay
	}
	return &Knockback{dirX: ux, dirY: uy, speed: force, decay: decay, duration: duration.Seconds()}
}

func (k *Knockback) Update(b Body, dt float64) {
	k.elapsed += dt
	if k.elapsed > k.duration {
		b.SetVelocity(0, 0)
		k.done = true
		return
	}
	b.SetVelocity(k.dirX*k.speed, k.dirY*k.speed)
	k.speed *= k.decay
}

func (k *Knockback) Finished() bool { return k.done }
