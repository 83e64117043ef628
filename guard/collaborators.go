package guard

import "github.com/go-gl/mathgl/mgl64"

// Layer is a bitmask of collision layers used to filter spatial queries.
type Layer uint32

const (
	LayerPlayer Layer = 1 << iota
	LayerPickup
	LayerObstacle
	LayerAgent
)

const LayerAll Layer = ^Layer(0)

// Tag identifies what kind of object a target or contact is.
type Tag string

const (
	TagPlayer Tag = "player"
	TagPickup Tag = "pickup"
)

// Navigator moves the agent along the walkable surface. Path planning is its
// business; the agent only asks for a destination and a speed.
type Navigator interface {
	SetDestination(dest mgl64.Vec3)
	SetSpeed(speed float64)
	Stop()
	Resume()
	SetStoppingDistance(d float64)
	RemainingDistance() float64
	StoppingDistance() float64
	Velocity() mgl64.Vec3
	Position() mgl64.Vec3
}

// Spatial answers the two world queries perception needs.
type Spatial interface {
	// OverlapSphere returns every target on mask within radius of center.
	// The order is the scan order and must be stable for a given world.
	OverlapSphere(center mgl64.Vec3, radius float64, mask Layer) []Target
	// RaycastBlocked reports whether something on mask lies on the segment
	// from origin along dir for maxDistance.
	RaycastBlocked(origin, dir mgl64.Vec3, maxDistance float64, mask Layer) bool
}

// Target is a live handle to a sensed object.
type Target interface {
	Position() mgl64.Vec3
	Tag() Tag
}

// Visual swaps the agent's render material.
type Visual interface {
	Material() string
	SetMaterial(name string)
}

// Collaborators bundles the external services an Agent talks to. Visual is
// optional.
type Collaborators struct {
	Navigator Navigator
	Spatial   Spatial
	Visual    Visual
}
