package tags

import "github.com/yohamta/donburi"

var (
	StaticHitbox  = donburi.NewTag().SetName("StaticHitbox")
	MovableHitbox = donburi.NewTag().SetName("MovableHitbox")
	Zone          = donburi.NewTag().SetName("Zone")
)

// Resolv tags for physics collision
const (
	ResolvStatic  = "static"
	ResolvMovable = "movable"
	ResolvZone    = "zone"
)
