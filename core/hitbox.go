package core

import (
	"fmt"
	"math"

	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"

	"github.com/automoto/topdown/components"
	cfg "github.com/automoto/topdown/config"
	"github.com/automoto/topdown/tags"
)

// MovableOptions configures AddMovableHitbox. The zero value is valid.
type MovableOptions struct {
	// ID overrides the hitbox id. Defaults to the owner's id, or a
	// generated one when there is no owner.
	ID string
	// Damping overrides the configured air damping (velocity fraction
	// shed per second).
	Damping float64
	// Sliding enables partial-collision corrections for this hitbox.
	Sliding *components.SlidingData
}

// AddStaticHitbox registers an immovable rectangular obstacle. The
// coordinates are the top-left corner.
func (r *Room) AddStaticHitbox(id string, x, y, w, h float64) error {
	if _, ok := r.hitboxes[id]; ok {
		return fmt.Errorf("%w: hitbox %q", ErrDuplicateID, id)
	}
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: rect %gx%g", ErrInvalidShape, w, h)
	}

	obj := resolv.NewObject(x, y, w, h, tags.ResolvStatic)
	obj.SetShape(resolv.NewRectangle(0, 0, w, h))
	r.registerStatic(id, obj, 4, nil)
	return nil
}

// AddStaticPolygon registers an immovable convex polygon obstacle from
// world-space points. At least three well-formed points are required.
func (r *Room) AddStaticPolygon(id string, points [][2]float64) error {
	if _, ok := r.hitboxes[id]; ok {
		return fmt.Errorf("%w: hitbox %q", ErrDuplicateID, id)
	}
	if len(points) < 3 {
		return fmt.Errorf("%w: polygon needs at least 3 points, got %d", ErrInvalidShape, len(points))
	}
	for _, p := range points {
		if math.IsNaN(p[0]) || math.IsNaN(p[1]) || math.IsInf(p[0], 0) || math.IsInf(p[1], 0) {
			return fmt.Errorf("%w: malformed polygon point", ErrInvalidShape)
		}
	}

	minX, minY := points[0][0], points[0][1]
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = math.Min(minX, p[0])
		minY = math.Min(minY, p[1])
		maxX = math.Max(maxX, p[0])
		maxY = math.Max(maxY, p[1])
	}
	w, h := maxX-minX, maxY-minY
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: degenerate polygon", ErrInvalidShape)
	}

	obj := resolv.NewObject(minX, minY, w, h, tags.ResolvStatic)
	verts := make([]float64, 0, len(points)*2)
	for _, p := range points {
		verts = append(verts, p[0]-minX, p[1]-minY)
	}
	obj.SetShape(resolv.NewConvexPolygon(0, 0, verts...))
	r.registerStatic(id, obj, len(points), verts)
	return nil
}

func (r *Room) registerStatic(id string, obj *resolv.Object, vertexCount int, polyVerts []float64) {
	r.space.Add(obj)

	entity := r.world.Create(tags.StaticHitbox, components.Object, components.Hitbox)
	entry := r.world.Entry(entity)
	components.Object.SetValue(entry, components.ObjectData{Object: obj})
	components.Hitbox.SetValue(entry, components.HitboxData{
		ID:          id,
		Kind:        components.KindStatic,
		PrevX:       obj.X,
		PrevY:       obj.Y,
		VertexCount: vertexCount,
		PolyVerts:   polyVerts,
	})

	r.hitboxes[id] = entity
	r.objects[obj] = id
	r.recordStaticOverlaps(id, obj)
}

// recordStaticOverlaps registers contacts with statics already overlapping
// the object. Runs at insertion and after a reposition; the per-tick scan
// only walks movables, so static-static pairs are recorded directly.
func (r *Room) recordStaticOverlaps(id string, obj *resolv.Object) {
	if check := obj.Check(0, 0, tags.ResolvStatic); check != nil {
		for _, other := range check.Objects {
			if other == obj || !aabbOverlap(obj, other, 0) {
				continue
			}
			if otherID, ok := r.objects[other]; ok {
				r.recordPair(r.collisions, id, otherID)
			}
		}
	}
}

// AddMovableHitbox registers an entity body. The body has no rotational
// inertia and zero base friction; a small air damping is applied unless
// overridden. When an owner is supplied, its position signal is seeded to
// the box top-left and kept in sync every tick.
func (r *Room) AddMovableHitbox(owner components.EntityHandle, x, y, w, h float64, opts MovableOptions) (string, error) {
	id := opts.ID
	if id == "" && owner != nil {
		id = owner.ID()
	}
	if id == "" {
		r.nextID++
		id = fmt.Sprintf("movable-%d", r.nextID)
	}
	if _, ok := r.hitboxes[id]; ok {
		return "", fmt.Errorf("%w: hitbox %q", ErrDuplicateID, id)
	}
	if w <= 0 || h <= 0 {
		return "", fmt.Errorf("%w: rect %gx%g", ErrInvalidShape, w, h)
	}

	obj := resolv.NewObject(x, y, w, h, tags.ResolvMovable)
	obj.SetShape(resolv.NewRectangle(0, 0, w, h))
	r.space.Add(obj)

	comps := []donburi.IComponentType{tags.MovableHitbox, components.Object, components.Hitbox, components.Body}
	if opts.Sliding != nil {
		comps = append(comps, components.Sliding)
	}
	entity := r.world.Create(comps...)
	entry := r.world.Entry(entity)

	components.Object.SetValue(entry, components.ObjectData{Object: obj})
	components.Hitbox.SetValue(entry, components.HitboxData{
		ID:          id,
		Kind:        components.KindMovable,
		Owner:       owner,
		PrevX:       x,
		PrevY:       y,
		VertexCount: 4,
	})

	damping := opts.Damping
	if damping <= 0 {
		damping = cfg.Physics.Damping
	}
	components.Body.SetValue(entry, components.BodyData{Damping: damping})

	if opts.Sliding != nil {
		sl := *opts.Sliding
		if sl.Friction <= 0 {
			sl.Friction = cfg.Sliding.DefaultFriction
		}
		if sl.MinVelocity <= 0 {
			sl.MinVelocity = cfg.Sliding.DefaultMinVelocity
		}
		components.Sliding.SetValue(entry, sl)
	}

	r.hitboxes[id] = entity
	r.objects[obj] = id

	if owner != nil {
		owner.SetPosition(x, y)
	}
	return id, nil
}

// UpdateHitbox repositions a hitbox. Passing two extra values resizes it;
// a size change rebuilds the underlying body (no live shape mutation),
// scaling a polygon outline to the new bounds and preserving kind, owner
// and registrations. A repositioned static re-registers contacts with the
// statics it now overlaps, since the per-tick scan only walks movables.
// Returns false on unknown id.
func (r *Room) UpdateHitbox(id string, x, y float64, size ...float64) bool {
	entry, ok := r.hitboxEntry(id)
	if !ok {
		return false
	}
	od := components.Object.Get(entry)
	hd := components.Hitbox.Get(entry)
	obj := od.Object

	if len(size) >= 2 && (size[0] != obj.W || size[1] != obj.H) {
		w, h := size[0], size[1]
		if w <= 0 || h <= 0 {
			return false
		}
		rebuilt := resolv.NewObject(x, y, w, h, obj.Tags()...)
		if len(hd.PolyVerts) > 0 {
			sx, sy := w/obj.W, h/obj.H
			scaled := make([]float64, len(hd.PolyVerts))
			for i := 0; i < len(hd.PolyVerts); i += 2 {
				scaled[i] = hd.PolyVerts[i] * sx
				scaled[i+1] = hd.PolyVerts[i+1] * sy
			}
			rebuilt.SetShape(resolv.NewConvexPolygon(0, 0, scaled...))
			hd.PolyVerts = scaled
		} else {
			rebuilt.SetShape(resolv.NewRectangle(0, 0, w, h))
			hd.VertexCount = 4
		}
		r.space.Remove(obj)
		r.space.Add(rebuilt)
		delete(r.objects, obj)
		r.objects[rebuilt] = id
		od.Object = rebuilt
	} else {
		obj.X, obj.Y = x, y
		obj.Update()
	}

	// Teleports don't count as movement.
	hd.PrevX, hd.PrevY = x, y
	if hd.Kind == components.KindStatic {
		r.recordStaticOverlaps(id, od.Object)
	}
	if hd.Owner != nil {
		hd.Owner.SetPosition(x, y)
	}
	return true
}

// RemoveHitbox detaches the body and purges every piece of derived state:
// collision sets on both sides, sliding buffers, zone occupancy, movement
// strategies and event registrations. No exit events fire for the removed
// party. Returns false on unknown id.
func (r *Room) RemoveHitbox(id string) bool {
	entry, ok := r.hitboxEntry(id)
	if !ok {
		return false
	}
	obj := components.Object.Get(entry).Object

	r.space.Remove(obj)
	delete(r.objects, obj)
	r.world.Remove(entry.Entity())
	delete(r.hitboxes, id)

	for other := range r.collisions[id] {
		delete(r.collisions[other], id)
	}
	delete(r.collisions, id)
	delete(r.staticContacts, id)
	delete(r.collisionCBs, id)
	delete(r.moveCBs, id)

	for zoneEntry := range components.Zone.Iter(r.world) {
		delete(components.Zone.Get(zoneEntry).Occupancy, id)
	}
	return true
}

// SetVelocity sets a movable hitbox velocity in px/s. Returns false on
// unknown or static id.
func (r *Room) SetVelocity(id string, vx, vy float64) bool {
	body, ok := r.bodyFor(id)
	if !ok {
		return false
	}
	body.VelX, body.VelY = vx, vy
	return true
}

// ApplyTranslation queues a one-shot displacement integrated (and clipped
// against statics) at the next step.
func (r *Room) ApplyTranslation(id string, dx, dy float64) bool {
	body, ok := r.bodyFor(id)
	if !ok {
		return false
	}
	body.TransX += dx
	body.TransY += dy
	return true
}

// ApplyForce queues an impulse added to the velocity at the next step.
func (r *Room) ApplyForce(id string, fx, fy float64) bool {
	body, ok := r.bodyFor(id)
	if !ok {
		return false
	}
	body.ImpulseX += fx
	body.ImpulseY += fy
	return true
}

func (r *Room) bodyFor(id string) (*components.BodyData, bool) {
	entry, ok := r.hitboxEntry(id)
	if !ok || !entry.HasComponent(components.Body) {
		return nil, false
	}
	return components.Body.Get(entry), true
}

// BodyState is a point-in-time view of a hitbox body.
type BodyState struct {
	X, Y, W, H float64
	VelX, VelY float64
}

// Body reports the current bounds and velocity of a hitbox.
func (r *Room) Body(id string) (BodyState, bool) {
	entry, ok := r.hitboxEntry(id)
	if !ok {
		return BodyState{}, false
	}
	obj := components.Object.Get(entry).Object
	st := BodyState{X: obj.X, Y: obj.Y, W: obj.W, H: obj.H}
	if entry.HasComponent(components.Body) {
		body := components.Body.Get(entry)
		st.VelX, st.VelY = body.VelX, body.VelY
	}
	return st, true
}

func (r *Room) recordPair(set map[string]map[string]struct{}, a, b string) {
	if set[a] == nil {
		set[a] = make(map[string]struct{})
	}
	if set[b] == nil {
		set[b] = make(map[string]struct{})
	}
	set[a][b] = struct{}{}
	set[b][a] = struct{}{}
}
