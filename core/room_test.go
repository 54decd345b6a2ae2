package core

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automoto/topdown/components"
	"github.com/automoto/topdown/movement"
)

const step = time.Second / 60

// stubEntity satisfies components.EntityHandle for tests.
type stubEntity struct {
	id    string
	x, y  float64
	speed float64
	dir   components.Direction
}

func (e *stubEntity) ID() string                                  { return e.id }
func (e *stubEntity) Position() (float64, float64)                { return e.x, e.y }
func (e *stubEntity) SetPosition(x, y float64)                    { e.x, e.y = x, y }
func (e *stubEntity) Speed() float64                              { return e.speed }
func (e *stubEntity) SetIntendedDirection(d components.Direction) { e.dir = d }

func newTestRoom(t *testing.T) *Room {
	t.Helper()
	return NewRoom(320, 240)
}

func addBody(t *testing.T, r *Room, id string, x, y float64) string {
	t.Helper()
	got, err := r.AddMovableHitbox(nil, x, y, 16, 16, MovableOptions{ID: id})
	require.NoError(t, err)
	return got
}

func TestAddStaticHitboxValidation(t *testing.T) {
	r := newTestRoom(t)

	require.NoError(t, r.AddStaticHitbox("wall", 10, 10, 20, 20))
	assert.ErrorIs(t, r.AddStaticHitbox("wall", 50, 50, 20, 20), ErrDuplicateID)
	assert.ErrorIs(t, r.AddStaticHitbox("flat", 0, 0, 20, 0), ErrInvalidShape)
}

func TestAddStaticPolygonValidation(t *testing.T) {
	r := newTestRoom(t)

	assert.ErrorIs(t, r.AddStaticPolygon("line", [][2]float64{{0, 0}, {10, 10}}), ErrInvalidShape)
	assert.ErrorIs(t, r.AddStaticPolygon("nan", [][2]float64{{0, 0}, {10, 0}, {math.NaN(), 5}}), ErrInvalidShape)

	require.NoError(t, r.AddStaticPolygon("tri", [][2]float64{{50, 50}, {80, 50}, {65, 80}}))
	bs, ok := r.Body("tri")
	require.True(t, ok)
	assert.Equal(t, 50.0, bs.X)
	assert.Equal(t, 30.0, bs.W)
}

func TestUpdateHitboxScalesPolygon(t *testing.T) {
	r := newTestRoom(t)
	require.NoError(t, r.AddStaticPolygon("tri", [][2]float64{{50, 50}, {80, 50}, {65, 80}}))

	require.True(t, r.UpdateHitbox("tri", 50, 50, 60, 60))

	bs, ok := r.Body("tri")
	require.True(t, ok)
	assert.Equal(t, 60.0, bs.W)
	assert.Equal(t, 60.0, bs.H)

	snap := r.Snapshot()
	require.Len(t, snap.Hitboxes, 1)
	assert.Equal(t, 3, snap.Hitboxes[0].VertexCount, "a resized polygon keeps its outline")
}

func TestOverlappingStaticsRegisterContactAtAdd(t *testing.T) {
	r := newTestRoom(t)

	require.NoError(t, r.AddStaticHitbox("a", 10, 10, 30, 30))
	require.NoError(t, r.AddStaticHitbox("b", 25, 25, 30, 30))

	assert.Contains(t, r.Contacts("a"), "b")
	assert.Contains(t, r.Contacts("b"), "a")

	// Neither side moves, so the contact survives ticks.
	for i := 0; i < 5; i++ {
		r.Tick(step)
	}
	assert.Contains(t, r.Contacts("a"), "b")
}

func TestStaticRepositionRegistersContact(t *testing.T) {
	r := newTestRoom(t)
	require.NoError(t, r.AddStaticHitbox("a", 10, 10, 20, 20))
	require.NoError(t, r.AddStaticHitbox("b", 100, 10, 20, 20))
	require.Empty(t, r.Contacts("a"))

	require.True(t, r.UpdateHitbox("a", 90, 10))
	assert.Contains(t, r.Contacts("a"), "b")
	assert.Contains(t, r.Contacts("b"), "a")

	require.True(t, r.UpdateHitbox("a", 10, 10))
	r.Tick(step)
	assert.Empty(t, r.Contacts("a"))
}

func TestMovableStopsFlushAgainstWall(t *testing.T) {
	r := newTestRoom(t)
	require.NoError(t, r.AddStaticHitbox("wall", 100, 0, 16, 240))
	id := addBody(t, r, "player", 20, 40)

	var entered, exited []string
	r.OnCollisionEnter(id, func(ids []string) { entered = append(entered, ids...) })
	r.OnCollisionExit(id, func(ids []string) { exited = append(exited, ids...) })

	wallHits := 0
	r.OnCollisionEnter("wall", func(ids []string) { wallHits++ })

	for i := 0; i < 40; i++ {
		r.SetVelocity(id, 300, 0)
		r.Tick(step)
	}

	bs, ok := r.Body(id)
	require.True(t, ok)
	assert.InDelta(t, 84, bs.X, 0.6, "clipped flush against the wall, not inside it")
	assert.Zero(t, bs.VelX, "velocity dies on the blocked axis")

	assert.Equal(t, []string{"wall"}, entered, "one enter event for a held contact")
	assert.Equal(t, 1, wallHits, "the wall sees the same contact once")
	assert.Empty(t, exited)

	for i := 0; i < 10; i++ {
		r.SetVelocity(id, -300, 0)
		r.Tick(step)
	}
	assert.Equal(t, []string{"wall"}, exited)
}

func TestClipStopsAtNearestWall(t *testing.T) {
	r := newTestRoom(t)
	require.NoError(t, r.AddStaticHitbox("near", 100, 0, 2, 240))
	require.NoError(t, r.AddStaticHitbox("far", 106, 0, 16, 240))
	id := addBody(t, r, "mover", 20, 40)

	for i := 0; i < 60; i++ {
		r.SetVelocity(id, 300, 0)
		r.Tick(step)
	}

	bs, ok := r.Body(id)
	require.True(t, ok)
	assert.InDelta(t, 84, bs.X, 0.6, "stopped flush against the nearer of two walls")
	assert.LessOrEqual(t, bs.X+16, 100.000001, "never placed inside the thin wall")
}

func TestMovablePairBlocksAndExitsWithHysteresis(t *testing.T) {
	r := newTestRoom(t)
	a := addBody(t, r, "a", 40, 100)
	b := addBody(t, r, "b", 120, 100)

	var aEnters, aExits, bEnters int
	r.OnCollisionEnter(a, func(ids []string) { aEnters++ })
	r.OnCollisionExit(a, func(ids []string) { aExits++ })
	r.OnCollisionEnter(b, func(ids []string) { bEnters++ })

	for i := 0; i < 30; i++ {
		r.SetVelocity(a, 120, 0)
		r.SetVelocity(b, -120, 0)
		r.Tick(step)
	}

	as, _ := r.Body(a)
	bs, _ := r.Body(b)
	assert.GreaterOrEqual(t, bs.X, as.X+16, "bodies never interpenetrate across a tick boundary")
	assert.Less(t, bs.X-(as.X+16), 5.0, "they stop close to each other")
	assert.Equal(t, 1, aEnters)
	assert.Equal(t, 1, bEnters)
	assert.Zero(t, aExits)

	// A single tick of separation stays inside the exit tolerance.
	r.SetVelocity(a, -300, 0)
	r.Tick(step)
	assert.Zero(t, aExits, "contact held within the exit tolerance")

	for i := 0; i < 10; i++ {
		r.SetVelocity(a, -300, 0)
		r.Tick(step)
	}
	assert.Equal(t, 1, aExits)
}

func TestRemoveHitboxPurgesSilently(t *testing.T) {
	r := newTestRoom(t)
	a := addBody(t, r, "a", 40, 100)
	b := addBody(t, r, "b", 70, 100)

	var aExits int
	r.OnCollisionExit(a, func(ids []string) { aExits++ })

	for i := 0; i < 20; i++ {
		r.SetVelocity(a, 200, 0)
		r.Tick(step)
	}
	require.Contains(t, r.Contacts(a), "b")

	require.True(t, r.RemoveHitbox(b))
	for i := 0; i < 5; i++ {
		r.Tick(step)
	}

	assert.Zero(t, aExits, "no exit event for a party that no longer exists")
	assert.Empty(t, r.Contacts(a))
	_, ok := r.Body(b)
	assert.False(t, ok)
	assert.False(t, r.SetVelocity(b, 1, 1))
}

func TestSlidingSlipsAroundCorner(t *testing.T) {
	r := newTestRoom(t)
	require.NoError(t, r.AddStaticHitbox("wall", 100, 100, 16, 60))
	id, err := r.AddMovableHitbox(nil, 40, 156, 16, 16, MovableOptions{
		ID:      "slider",
		Sliding: &components.SlidingData{Enabled: true},
	})
	require.NoError(t, err)

	// The body's top edge clips only the bottom 4px of the wall.
	for i := 0; i < 40; i++ {
		r.SetVelocity(id, 200, 0)
		r.Tick(step)
	}

	bs, _ := r.Body(id)
	assert.Greater(t, bs.X, 120.0, "slid past the wall corner")
	assert.GreaterOrEqual(t, bs.Y, 160.0, "pushed below the wall's bottom edge")
}

func TestFrontalHitDoesNotSlide(t *testing.T) {
	r := newTestRoom(t)
	require.NoError(t, r.AddStaticHitbox("wall", 100, 100, 16, 60))
	id, err := r.AddMovableHitbox(nil, 40, 120, 16, 16, MovableOptions{
		ID:      "rammer",
		Sliding: &components.SlidingData{Enabled: true},
	})
	require.NoError(t, err)

	for i := 0; i < 90; i++ {
		r.SetVelocity(id, 200, 0)
		r.Tick(step)
	}

	bs, _ := r.Body(id)
	assert.InDelta(t, 84, bs.X, 0.6)
	assert.InDelta(t, 120, bs.Y, 0.6, "a frontal block produces no lateral drift")
}

func TestCircleZoneEnterAndExitOnce(t *testing.T) {
	r := newTestRoom(t)
	require.NoError(t, r.AddStaticHitbox("east-wall", 304, 0, 16, 240))
	id := addBody(t, r, "walker", 20, 112)

	require.NoError(t, r.AddZone(ZoneSpec{
		ID: "sensor", Shape: components.ZoneCircle, X: 160, Y: 120, Radius: 50,
	}))
	assert.ErrorIs(t, r.AddZone(ZoneSpec{ID: "sensor", Shape: components.ZoneCircle, X: 0, Y: 0, Radius: 10}), ErrDuplicateID)

	var enters, exits int
	r.OnZoneEnter("sensor", func(ids []string) {
		enters++
		assert.Equal(t, []string{id}, ids)
	})
	r.OnZoneExit("sensor", func(ids []string) { exits++ })

	// Walk through the zone and out the other side.
	for i := 0; i < 180; i++ {
		r.SetVelocity(id, 150, 0)
		r.Tick(step)
	}

	assert.Equal(t, 1, enters)
	assert.Equal(t, 1, exits)
	assert.Empty(t, r.ZoneOccupants("sensor"))
}

func TestWedgeZoneRespectsAperture(t *testing.T) {
	r := newTestRoom(t)
	require.NoError(t, r.AddZone(ZoneSpec{
		ID: "cone", Shape: components.ZoneWedge,
		X: 100, Y: 100, Radius: 60, Aperture: math.Pi / 2, Facing: 0,
	}))

	front := addBody(t, r, "front", 132, 92) // center (140, 100), dead ahead
	addBody(t, r, "behind", 52, 92)          // center (60, 100), behind the cone

	r.Tick(step)

	occ := r.ZoneOccupants("cone")
	assert.Equal(t, []string{front}, occ)
}

func TestWedgeZoneRejectsBadAperture(t *testing.T) {
	r := newTestRoom(t)
	err := r.AddZone(ZoneSpec{ID: "bad", Shape: components.ZoneWedge, X: 0, Y: 0, Radius: 10, Aperture: 0})
	assert.ErrorIs(t, err, ErrInvalidShape)
	err = r.AddZone(ZoneSpec{ID: "bad2", Shape: components.ZoneCircle, X: 0, Y: 0, Radius: -1})
	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestLinkedZoneFollowsHostAndDiesWithIt(t *testing.T) {
	r := newTestRoom(t)
	host := addBody(t, r, "host", 40, 92)
	target := addBody(t, r, "target", 150, 92)

	require.NoError(t, r.AddZone(ZoneSpec{
		ID: "vision", Shape: components.ZoneWedge,
		Radius: 80, Aperture: math.Pi / 2,
		HostID: host,
	}))

	var seen, lost []string
	r.OnZoneEnter("vision", func(ids []string) { seen = append(seen, ids...) })
	r.OnZoneExit("vision", func(ids []string) { lost = append(lost, ids...) })

	// Walk the host rightwards until the cone sweeps over the target.
	for i := 0; i < 30; i++ {
		r.SetVelocity(host, 120, 0)
		r.Tick(step)
	}
	assert.Equal(t, []string{target}, seen, "facing derives from the host's movement")
	assert.NotContains(t, r.ZoneOccupants("vision"), host, "a zone never detects its own host")

	// Teleport the host far away; the zone follows and the target drops out.
	require.True(t, r.UpdateHitbox(host, 40, 200))
	r.Tick(step)
	assert.Equal(t, []string{target}, lost)

	require.True(t, r.RemoveHitbox(host))
	r.Tick(step)
	assert.Empty(t, r.ZoneOccupants("vision"))
	assert.False(t, r.RemoveZone("vision"), "host removal already tore the zone down")
}

func TestZoneLineOfSightGatesEntryOnly(t *testing.T) {
	r := newTestRoom(t)
	require.NoError(t, r.AddStaticHitbox("wall", 120, 60, 8, 80))
	inside := addBody(t, r, "lurker", 142, 92) // center (150, 100), behind the wall

	require.NoError(t, r.AddZone(ZoneSpec{
		ID: "watch", Shape: components.ZoneCircle,
		X: 100, Y: 100, Radius: 60,
		LimitedByWalls: true,
	}))

	r.Tick(step)
	assert.Empty(t, r.ZoneOccupants("watch"), "wall blocks line of sight to the candidate")

	require.True(t, r.RemoveHitbox("wall"))
	r.Tick(step)
	assert.Equal(t, []string{inside}, r.ZoneOccupants("watch"))

	// Re-adding the wall does not evict; sight only gates entry.
	require.NoError(t, r.AddStaticHitbox("wall", 120, 60, 8, 80))
	r.Tick(step)
	assert.Equal(t, []string{inside}, r.ZoneOccupants("watch"))
}

func TestZoneDurationExpires(t *testing.T) {
	r := newTestRoom(t)
	require.NoError(t, r.AddZone(ZoneSpec{
		ID: "pulse", Shape: components.ZoneCircle,
		X: 100, Y: 100, Radius: 30,
		Duration: 100 * time.Millisecond,
	}))

	for i := 0; i < 10; i++ {
		r.Tick(step)
	}
	assert.False(t, r.RemoveZone("pulse"), "zone aged out on its own")
	assert.Empty(t, r.Snapshot().Zones)
}

func TestMoveBodyUsesOwnerSpeedAndSyncsPosition(t *testing.T) {
	r := newTestRoom(t)
	owner := &stubEntity{id: "npc", speed: 120}
	id, err := r.AddMovableHitbox(owner, 40, 40, 16, 16, MovableOptions{})
	require.NoError(t, err)
	assert.Equal(t, "npc", id)

	require.True(t, r.MoveBody(id, components.DirRight))
	assert.Equal(t, components.DirRight, owner.dir)

	for i := 0; i < 10; i++ {
		r.MoveBody(id, components.DirRight)
		r.Tick(step)
	}

	bs, _ := r.Body(id)
	assert.Greater(t, bs.X, 55.0)
	assert.Equal(t, bs.X, owner.x, "owner position tracks the resolved hitbox")
	assert.Equal(t, bs.Y, owner.y)
}

func TestStartStopMovingEvents(t *testing.T) {
	r := newTestRoom(t)
	owner := &stubEntity{id: "walker", speed: 100}
	id, err := r.AddMovableHitbox(owner, 40, 40, 16, 16, MovableOptions{})
	require.NoError(t, err)

	var starts, stops int
	r.OnStartMoving(id, func() { starts++ })
	r.OnStopMoving(id, func() { stops++ })

	for i := 0; i < 5; i++ {
		r.MoveBody(id, components.DirDown)
		r.Tick(step)
	}
	assert.Equal(t, 1, starts)
	assert.Zero(t, stops)
	assert.True(t, r.IsMoving(id))

	r.MoveBody(id, components.DirNone)
	for i := 0; i < 5; i++ {
		r.Tick(step)
	}
	assert.Equal(t, 1, stops)
	assert.False(t, r.IsMoving(id))
	assert.Equal(t, components.DirNone, owner.dir, "intent resets when the body rests")
}

func TestTeleportDoesNotCountAsMovement(t *testing.T) {
	r := newTestRoom(t)
	id := addBody(t, r, "ghost", 40, 40)

	var starts int
	r.OnStartMoving(id, func() { starts++ })

	require.True(t, r.UpdateHitbox(id, 200, 200))
	r.Tick(step)

	assert.Zero(t, starts)
	bs, _ := r.Body(id)
	assert.Equal(t, 200.0, bs.X)
}

func TestApplyTranslationIsOneShot(t *testing.T) {
	r := newTestRoom(t)
	id := addBody(t, r, "box", 30, 30)

	require.True(t, r.ApplyTranslation(id, 10, 0))
	r.Tick(step)
	bs, _ := r.Body(id)
	assert.InDelta(t, 40, bs.X, 0.001)

	r.Tick(step)
	bs, _ = r.Body(id)
	assert.InDelta(t, 40, bs.X, 0.001, "translation does not persist as velocity")
}

func TestApplyForceAddsVelocity(t *testing.T) {
	r := newTestRoom(t)
	id := addBody(t, r, "pushed", 30, 30)

	require.True(t, r.ApplyForce(id, 120, 0))
	r.Tick(step)

	bs, _ := r.Body(id)
	assert.Greater(t, bs.VelX, 100.0)
	assert.Greater(t, bs.X, 30.0)
}

func TestDashStrategyMovesAndStops(t *testing.T) {
	r := newTestRoom(t)
	id := addBody(t, r, "dasher", 40, 40)

	require.True(t, r.AddMovement(id, movement.NewDash(240, 1, 0, 100*time.Millisecond)))

	for i := 0; i < 30; i++ {
		r.Tick(step)
	}

	bs, _ := r.Body(id)
	assert.Greater(t, bs.X, 55.0)
	assert.Zero(t, bs.VelX)
	assert.False(t, r.IsMoving(id))
}

func TestClearMovementsStopsBody(t *testing.T) {
	r := newTestRoom(t)
	id := addBody(t, r, "runner", 40, 40)
	require.True(t, r.AddMovement(id, movement.NewLinearMove(200, 0, 0)))

	for i := 0; i < 5; i++ {
		r.Tick(step)
	}
	require.True(t, r.IsMoving(id))

	require.True(t, r.ClearMovements(id))
	for i := 0; i < 5; i++ {
		r.Tick(step)
	}
	assert.False(t, r.IsMoving(id))
}

func TestSeekStrategyReachesRoomTarget(t *testing.T) {
	r := newTestRoom(t)
	chaser := addBody(t, r, "chaser", 30, 30)
	prey := addBody(t, r, "prey", 200, 150)

	require.True(t, r.AddMovement(chaser, movement.NewSeekAvoid(r.TargetFor(prey), 180, 40)))

	for i := 0; i < 240; i++ {
		r.Tick(step)
	}

	cs, _ := r.Body(chaser)
	ps, _ := r.Body(prey)
	dist := math.Hypot(cs.X-ps.X, cs.Y-ps.Y)
	assert.Less(t, dist, 40.0, "chaser closed most of the distance")
}

func TestSnapshotIsOrderedAndComplete(t *testing.T) {
	r := newTestRoom(t)
	require.NoError(t, r.AddStaticHitbox("b-wall", 100, 0, 16, 100))
	addBody(t, r, "a-player", 20, 20)
	require.NoError(t, r.AddZone(ZoneSpec{ID: "z", Shape: components.ZoneCircle, X: 200, Y: 100, Radius: 25}))

	snap := r.Snapshot()

	require.Len(t, snap.Hitboxes, 2)
	assert.Equal(t, "a-player", snap.Hitboxes[0].ID)
	assert.Equal(t, "movable", snap.Hitboxes[0].Kind)
	assert.Equal(t, "b-wall", snap.Hitboxes[1].ID)
	assert.Equal(t, "static", snap.Hitboxes[1].Kind)
	assert.Equal(t, 4, snap.Hitboxes[1].VertexCount)

	require.Len(t, snap.Zones, 1)
	assert.Equal(t, "circle", snap.Zones[0].Shape)
	assert.Equal(t, 200.0, snap.Zones[0].X)
	assert.NotEmpty(t, snap.Zones[0].Vertices)
}

func TestLineOfSightBetweenHitboxes(t *testing.T) {
	r := newTestRoom(t)
	a := addBody(t, r, "a", 20, 92)
	b := addBody(t, r, "b", 200, 92)

	assert.True(t, r.LineOfSight(a, b))

	require.NoError(t, r.AddStaticHitbox("wall", 100, 0, 16, 240))
	assert.False(t, r.LineOfSight(a, b))
}
