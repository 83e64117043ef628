package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/patrolai/guard"
)

type Kind int

const (
	KindObstacle Kind = iota + 1
	KindPickup
	KindPlayer
	KindAgent
)

func (k Kind) String() string {
	switch k {
	case KindObstacle:
		return "obstacle"
	case KindPickup:
		return "pickup"
	case KindPlayer:
		return "player"
	case KindAgent:
		return "agent"
	}
	return "unknown"
}

// Body is one object in the world. The simulation plane is x/z; y is carried
// alongside for the 3D callers.
type Body struct {
	id    int
	kind  Kind
	tag   guard.Tag
	layer guard.Layer

	pos    mgl64.Vec3
	radius float64
	halfW  float64
	halfD  float64

	body    *cp.Body
	shape   *cp.Shape
	trigger *cp.Shape
	world   *World
}

func (b *Body) ID() int { return b.id }

func (b *Body) Kind() Kind { return b.kind }

func (b *Body) Tag() guard.Tag { return b.tag }

func (b *Body) Layer() guard.Layer { return b.layer }

func (b *Body) Position() mgl64.Vec3 { return b.pos }

func (b *Body) Radius() float64 { return b.radius }

// HalfExtents returns the half width (x) and half depth (z) of a box.
func (b *Body) HalfExtents() (float64, float64) { return b.halfW, b.halfD }

// SetPosition teleports a player or agent. Static bodies ignore it. Queries
// and contacts see the new position after the next World.Step.
func (b *Body) SetPosition(p mgl64.Vec3) {
	if b == nil || b.body == nil || b.world == nil {
		return
	}
	b.pos = p
	b.body.SetPosition(toCP(p))
}

func toCP(v mgl64.Vec3) cp.Vector {
	return cp.Vector{X: v.X(), Y: v.Z()}
}
