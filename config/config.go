package config

import "math"

// PhysicsConfig contains integration and world-stepping configuration
type PhysicsConfig struct {
	TickRate int     // Simulation ticks per second
	CellSize int     // Resolv spatial hash cell size in pixels
	Damping  float64 // Fraction of velocity shed per second while coasting ("air friction")
	MaxSpeed float64 // Hard clamp on body speed, pixels/second
}

// CollisionConfig contains contact bookkeeping configuration
type CollisionConfig struct {
	// Extra pixels of bounding-box overlap tolerated before a
	// movable-vs-movable contact is considered lost. Prevents exit/enter
	// chatter from floating-point jitter at the touch boundary.
	MovableExitTolerance float64

	// Gap within which a body counts as touching a static obstacle. The
	// integrator clips bodies flush against walls, so contact against a
	// static is a zero-overlap condition.
	ContactEpsilon float64
}

// SlidingConfig contains partial-collision correction configuration
type SlidingConfig struct {
	// Fraction of the body's cross-axis extent that may overlap an
	// obstacle before a contact counts as a frontal block instead of a
	// corner/edge graze.
	PartialOverlapRatio float64
	DefaultFriction     float64 // Sliding strength for hitboxes that don't specify one
	DefaultMinVelocity  float64 // Speed (px/s) below which no correction is applied
}

// ZoneConfig contains sensor-zone configuration
type ZoneConfig struct {
	MaxSegmentRadians float64 // Wedge tessellation cap per arc segment
	LOSStepSize       float64 // Ray-march sample spacing for wall checks
	LOSCheckSize      float64 // Half-extent of the AABB probe at each sample
}

// MovementConfig contains movement-strategy configuration
type MovementConfig struct {
	ArriveRadius      float64 // Distance at which a path waypoint counts as reached
	KnockbackDecay    float64 // Default geometric velocity decay per tick
	StopEpsilon       float64 // Speed (px/s) below which a body counts as stopped
	MoveEpsilon       float64 // Position delta (px/tick) that counts as movement
	ProjectileGravity float64 // Vertical (z) acceleration for arc/bounce projectiles
}

// Global configuration instances
var Physics PhysicsConfig
var Collision CollisionConfig
var Sliding SlidingConfig
var Zones ZoneConfig
var Movement MovementConfig

func init() {
	Physics = PhysicsConfig{
		TickRate: 60,
		CellSize: 16,
		Damping:  0.4,
		MaxSpeed: 600.0,
	}

	Collision = CollisionConfig{
		MovableExitTolerance: 10.0,
		ContactEpsilon:       0.5,
	}

	Sliding = SlidingConfig{
		PartialOverlapRatio: 0.3,
		DefaultFriction:     1.0,
		DefaultMinVelocity:  1.0,
	}

	Zones = ZoneConfig{
		MaxSegmentRadians: math.Pi / 8, // 22.5 degrees
		LOSStepSize:       8.0,
		LOSCheckSize:      2.0,
	}

	Movement = MovementConfig{
		ArriveRadius:      4.0,
		KnockbackDecay:    0.9,
		StopEpsilon:       0.5,
		MoveEpsilon:       0.05,
		ProjectileGravity: 600.0,
	}
}
