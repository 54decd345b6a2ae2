package core

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/topdown/components"
	"github.com/automoto/topdown/movement"
)

// AddMovement attaches a movement strategy to a movable hitbox. Multiple
// strategies stack; each runs every tick until it reports finished, then
// is pruned (its OnFinished hook, if any, fires after pruning so chained
// strategies see consistent state). Returns false on unknown or static id.
func (r *Room) AddMovement(id string, strat movement.Strategy) bool {
	entry, ok := r.hitboxEntry(id)
	if !ok || !entry.HasComponent(components.Body) {
		return false
	}
	if !entry.HasComponent(components.Movement) {
		donburi.Add(entry, components.Movement, &components.MovementData{})
	}
	md := components.Movement.Get(entry)
	md.Strategies = append(md.Strategies, strat)
	return true
}

// RemoveMovement detaches one strategy without running its completion
// hook. Returns false when the strategy is not attached.
func (r *Room) RemoveMovement(id string, strat movement.Strategy) bool {
	entry, ok := r.hitboxEntry(id)
	if !ok || !entry.HasComponent(components.Movement) {
		return false
	}
	md := components.Movement.Get(entry)
	for i, s := range md.Strategies {
		if s == strat {
			md.Strategies = append(md.Strategies[:i], md.Strategies[i+1:]...)
			return true
		}
	}
	return false
}

// ClearMovements drops every strategy attached to a hitbox and stops it.
func (r *Room) ClearMovements(id string) bool {
	entry, ok := r.hitboxEntry(id)
	if !ok || !entry.HasComponent(components.Movement) {
		return false
	}
	components.Movement.Get(entry).Strategies = nil
	if body, ok := r.bodyFor(id); ok {
		body.VelX, body.VelY = 0, 0
	}
	return true
}

// updateMovement runs every attached strategy before physics integration.
// Completion hooks are collected and invoked only after all iteration and
// pruning is done, so a hook may freely attach or remove strategies.
func (r *Room) updateMovement(dt float64) {
	var completed []movement.Completer

	for entry := range components.Movement.Iter(r.world) {
		md := components.Movement.Get(entry)
		if len(md.Strategies) == 0 {
			continue
		}
		b := r.strategyBodyFor(entry)

		kept := md.Strategies[:0]
		for _, strat := range md.Strategies {
			strat.Update(b, dt)
			if strat.Finished() {
				if c, ok := strat.(movement.Completer); ok {
					completed = append(completed, c)
				}
				continue
			}
			kept = append(kept, strat)
		}
		md.Strategies = kept
	}

	for _, c := range completed {
		c.OnFinished()
	}
}
