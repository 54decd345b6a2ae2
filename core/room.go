// Package core implements a top-down 2D physics room: hitbox registry,
// per-tick collision detection and resolution, sensor zones with optional
// line-of-sight, and per-entity movement strategies. A Room is
// single-threaded; all mutation happens inside Tick or between ticks.
package core

import (
	"math"
	"time"

	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"

	cfg "github.com/automoto/topdown/config"
)

type collisionHandlers struct {
	enter []func(ids []string)
	exit  []func(ids []string)
}

type moveHandlers struct {
	start []func()
	stop  []func()
}

type zoneHandlers struct {
	enter []func(ids []string)
	exit  []func(ids []string)
}

// Room owns one simulation world: the entity store, the spatial hash, and
// every id-keyed side table. Entities never hold references to each other;
// all interaction goes through id lookups here.
type Room struct {
	world donburi.World
	space *resolv.Space

	hitboxes map[string]donburi.Entity
	zones    map[string]donburi.Entity
	objects  map[*resolv.Object]string // physics body → hitbox id

	// Symmetric contact sets: b ∈ collisions[a] ⇔ a ∈ collisions[b].
	collisions map[string]map[string]struct{}

	// Movable pairs that overlapped after integration this tick, recorded
	// before the pair resolver pushes them apart. Cleared every tick.
	movableContacts map[string]map[string]struct{}

	// Static objects each movable touched during the last step, feeding
	// the sliding resolver. Rebuilt every tick.
	staticContacts map[string][]*resolv.Object

	collisionCBs map[string]*collisionHandlers
	moveCBs      map[string]*moveHandlers
	zoneCBs      map[string]*zoneHandlers

	nextID uint64
}

// NewRoom creates an empty simulation world of the given pixel size.
func NewRoom(width, height int) *Room {
	return &Room{
		world:           donburi.NewWorld(),
		space:           resolv.NewSpace(width, height, cfg.Physics.CellSize, cfg.Physics.CellSize),
		hitboxes:        make(map[string]donburi.Entity),
		zones:           make(map[string]donburi.Entity),
		objects:         make(map[*resolv.Object]string),
		collisions:      make(map[string]map[string]struct{}),
		movableContacts: make(map[string]map[string]struct{}),
		staticContacts:  make(map[string][]*resolv.Object),
		collisionCBs:    make(map[string]*collisionHandlers),
		moveCBs:         make(map[string]*moveHandlers),
		zoneCBs:         make(map[string]*zoneHandlers),
	}
}

// Tick advances the simulation by dt in the fixed pipeline order: movement
// strategies, physics integration, sliding corrections, movable-vs-movable
// resolution, collision events, owner sync, zone relinking and occupancy,
// movement-state detection.
func (r *Room) Tick(dt time.Duration) {
	sec := dt.Seconds()
	if sec <= 0 {
		return
	}

	r.updateMovement(sec)
	r.stepPhysics(sec)
	r.applySliding(sec)
	r.resolveMovablePairs()
	r.updateCollisions()
	r.syncOwners()
	r.updateZones(sec)
	r.detectMovementState()
}

func (r *Room) hitboxEntry(id string) (*donburi.Entry, bool) {
	e, ok := r.hitboxes[id]
	if !ok || !r.world.Valid(e) {
		return nil, false
	}
	return r.world.Entry(e), true
}

// OnCollisionEnter registers a callback fired when id gains a contact. The
// callback receives the other party's id.
func (r *Room) OnCollisionEnter(id string, fn func(ids []string)) {
	h := r.collisionHandlersFor(id)
	h.enter = append(h.enter, fn)
}

// OnCollisionExit registers a callback fired when id loses a contact.
func (r *Room) OnCollisionExit(id string, fn func(ids []string)) {
	h := r.collisionHandlersFor(id)
	h.exit = append(h.exit, fn)
}

// OnStartMoving registers a callback fired when id transitions from rest to
// motion.
func (r *Room) OnStartMoving(id string, fn func()) {
	h := r.moveHandlersFor(id)
	h.start = append(h.start, fn)
}

// OnStopMoving registers a callback fired when id comes to rest.
func (r *Room) OnStopMoving(id string, fn func()) {
	h := r.moveHandlersFor(id)
	h.stop = append(h.stop, fn)
}

// OnZoneEnter registers a callback fired when a hitbox enters the zone.
func (r *Room) OnZoneEnter(zoneID string, fn func(ids []string)) {
	h := r.zoneHandlersFor(zoneID)
	h.enter = append(h.enter, fn)
}

// OnZoneExit registers a callback fired when a hitbox leaves the zone.
func (r *Room) OnZoneExit(zoneID string, fn func(ids []string)) {
	h := r.zoneHandlersFor(zoneID)
	h.exit = append(h.exit, fn)
}

func (r *Room) collisionHandlersFor(id string) *collisionHandlers {
	h := r.collisionCBs[id]
	if h == nil {
		h = &collisionHandlers{}
		r.collisionCBs[id] = h
	}
	return h
}

func (r *Room) moveHandlersFor(id string) *moveHandlers {
	h := r.moveCBs[id]
	if h == nil {
		h = &moveHandlers{}
		r.moveCBs[id] = h
	}
	return h
}

func (r *Room) zoneHandlersFor(id string) *zoneHandlers {
	h := r.zoneCBs[id]
	if h == nil {
		h = &zoneHandlers{}
		r.zoneCBs[id] = h
	}
	return h
}

func aabbOverlap(a, b *resolv.Object, tol float64) bool {
	return a.X < b.X+b.W+tol && a.X+a.W > b.X-tol &&
		a.Y < b.Y+b.H+tol && a.Y+a.H > b.Y-tol
}

func clampMagnitude(x, y, maxLen float64) (float64, float64) {
	d := math.Hypot(x, y)
	if d <= maxLen || d == 0 {
		return x, y
	}
	return x / d * maxLen, y / d * maxLen
}

func normalizeVec(x, y float64) (float64, float64) {
	d := math.Hypot(x, y)
	if d == 0 {
		return 0, 0
	}
	return x / d, y / d
}

// normalizeAngle wraps an angle to [-π, π].
func normalizeAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

func clampF(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
