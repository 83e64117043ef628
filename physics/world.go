// Package physics is the spatial-query and contact source for guards, built
// on a Chipmunk space laid over the ground plane.
package physics

import (
	"math"
	"sort"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/milk9111/patrolai/guard"
)

const (
	collisionTypeObstacle cp.CollisionType = iota + 1
	collisionTypePickup
	collisionTypePlayer
	collisionTypeAgent
	collisionTypeTrigger
)

type ContactKind int

const (
	ContactBegin ContactKind = iota
	ContactEnd
	TriggerEnter
	TriggerExit
)

func (k ContactKind) String() string {
	switch k {
	case ContactBegin:
		return "contact_begin"
	case ContactEnd:
		return "contact_end"
	case TriggerEnter:
		return "trigger_enter"
	case TriggerExit:
		return "trigger_exit"
	}
	return "unknown"
}

// ContactEvent is emitted when an agent's body or trigger starts or stops
// touching another body.
type ContactEvent struct {
	Kind  ContactKind
	Agent *Body
	Other *Body
}

// World owns the Chipmunk space and every body in it.
type World struct {
	space   *cp.Space
	bodies  []*Body
	byShape map[*cp.Shape]*Body
	nextID  int

	events    []ContactEvent
	onContact func(ContactEvent)
	logger    *zap.Logger
}

type Option func(*World)

func WithLogger(l *zap.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithContactHandler routes contact events, delivered after each Step.
func WithContactHandler(fn func(ContactEvent)) Option {
	return func(w *World) { w.onContact = fn }
}

func NewWorld(opts ...Option) *World {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})

	w := &World{
		space:   space,
		byShape: make(map[*cp.Shape]*Body),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.setupHandlers()
	return w
}

func (w *World) SetContactHandler(fn func(ContactEvent)) {
	if w == nil {
		return
	}
	w.onContact = fn
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

func (w *World) Bodies() []*Body {
	if w == nil {
		return nil
	}
	return w.bodies
}

func (w *World) newBody(kind Kind, tag guard.Tag, layer guard.Layer, pos mgl64.Vec3) *Body {
	w.nextID++
	b := &Body{id: w.nextID, kind: kind, tag: tag, layer: layer, pos: pos, world: w}
	w.bodies = append(w.bodies, b)
	return b
}

func (w *World) register(b *Body, shape *cp.Shape, ct cp.CollisionType) {
	shape.SetCollisionType(ct)
	shape.SetFilter(cp.ShapeFilter{Group: 0, Categories: uint(b.layer), Mask: ^uint(0)})
	w.space.AddShape(shape)
	w.byShape[shape] = b
}

// AddObstacle adds a static box centred on center.
func (w *World) AddObstacle(center mgl64.Vec3, halfW, halfD float64) *Body {
	b := w.newBody(KindObstacle, "", guard.LayerObstacle, center)
	b.halfW, b.halfD = halfW, halfD
	bb := cp.BB{
		L: center.X() - halfW,
		B: center.Z() - halfD,
		R: center.X() + halfW,
		T: center.Z() + halfD,
	}
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	shape.SetFriction(0.8)
	b.shape = shape
	w.register(b, shape, collisionTypeObstacle)
	w.logger.Debug("physics: obstacle added", zap.Int("id", b.id), zap.Float64("half_w", halfW), zap.Float64("half_d", halfD))
	return b
}

// AddPickup adds a static, collectable circle.
func (w *World) AddPickup(pos mgl64.Vec3, radius float64) *Body {
	b := w.newBody(KindPickup, guard.TagPickup, guard.LayerPickup, pos)
	b.radius = radius
	shape := cp.NewCircle(w.space.StaticBody, radius, toCP(pos))
	b.shape = shape
	w.register(b, shape, collisionTypePickup)
	return b
}

// AddPlayer adds a kinematic circle moved by SetPosition.
func (w *World) AddPlayer(pos mgl64.Vec3, radius float64) *Body {
	b := w.newBody(KindPlayer, guard.TagPlayer, guard.LayerPlayer, pos)
	b.radius = radius
	body := cp.NewKinematicBody()
	body.SetPosition(toCP(pos))
	w.space.AddBody(body)
	b.body = body
	shape := cp.NewCircle(body, radius, cp.Vector{})
	b.shape = shape
	w.register(b, shape, collisionTypePlayer)
	return b
}

// AddAgent adds a guard body. The body circle reports contacts; the larger
// trigger circle reports proximity. Both are sensors: the navigator owns
// movement, physics only reports.
func (w *World) AddAgent(pos mgl64.Vec3, radius, triggerRadius float64) *Body {
	b := w.newBody(KindAgent, "agent", guard.LayerAgent, pos)
	b.radius = radius
	body := cp.NewBody(1, math.Inf(1))
	body.SetPosition(toCP(pos))
	w.space.AddBody(body)
	b.body = body

	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetSensor(true)
	b.shape = shape
	w.register(b, shape, collisionTypeAgent)

	if triggerRadius > radius {
		trig := cp.NewCircle(body, triggerRadius, cp.Vector{})
		trig.SetSensor(true)
		b.trigger = trig
		w.register(b, trig, collisionTypeTrigger)
	}
	return b
}

// Remove takes b out of the space. Pending separate callbacks fire first.
func (w *World) Remove(b *Body) {
	if w == nil || b == nil || b.world != w {
		return
	}
	for _, s := range []*cp.Shape{b.shape, b.trigger} {
		if s == nil {
			continue
		}
		w.space.RemoveShape(s)
		delete(w.byShape, s)
	}
	if b.body != nil {
		w.space.RemoveBody(b.body)
	}
	for i, other := range w.bodies {
		if other == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
	b.world = nil
	w.flushEvents()
}

// Step advances the space and delivers the contact events it produced.
func (w *World) Step(dt time.Duration) {
	if w == nil || w.space == nil || dt <= 0 {
		return
	}
	w.space.Step(dt.Seconds())
	w.flushEvents()
}

func (w *World) flushEvents() {
	events := w.events
	w.events = nil
	for _, ev := range events {
		w.logger.Debug("physics: contact",
			zap.Stringer("kind", ev.Kind),
			zap.Int("agent", ev.Agent.id),
			zap.Int("other", ev.Other.id),
			zap.String("tag", string(ev.Other.tag)),
		)
		if w.onContact != nil {
			w.onContact(ev)
		}
	}
}

func (w *World) setupHandlers() {
	route := func(a, b cp.CollisionType, begin, end ContactKind) {
		h := w.space.NewCollisionHandler(a, b)
		h.UserData = w
		h.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
			if world, ok := userData.(*World); ok {
				world.push(arb, begin)
			}
			return true
		}
		h.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
			if world, ok := userData.(*World); ok {
				world.push(arb, end)
			}
		}
	}
	route(collisionTypeAgent, collisionTypePlayer, ContactBegin, ContactEnd)
	route(collisionTypeAgent, collisionTypePickup, ContactBegin, ContactEnd)
	route(collisionTypeTrigger, collisionTypePlayer, TriggerEnter, TriggerExit)
}

func (w *World) push(arb *cp.Arbiter, kind ContactKind) {
	shapeA, shapeB := arb.Shapes()
	a, okA := w.byShape[shapeA]
	b, okB := w.byShape[shapeB]
	if !okA || !okB {
		return
	}
	if a.kind != KindAgent {
		a, b = b, a
	}
	w.events = append(w.events, ContactEvent{Kind: kind, Agent: a, Other: b})
}

func queryFilter(mask guard.Layer) cp.ShapeFilter {
	return cp.ShapeFilter{Group: 0, Categories: ^uint(0), Mask: uint(mask)}
}

// OverlapSphere returns the bodies on mask whose shapes come within radius of
// center on the ground plane, ordered by body id. Moved bodies are seen at
// their position as of the last Step.
func (w *World) OverlapSphere(center mgl64.Vec3, radius float64, mask guard.Layer) []guard.Target {
	if w == nil || radius < 0 {
		return nil
	}
	seen := make(map[*Body]struct{})
	var hits []*Body
	w.queryCircle(toCP(center), radius, queryFilter(mask), func(shape *cp.Shape) {
		b, ok := w.byShape[shape]
		if !ok {
			return
		}
		if _, dup := seen[b]; dup {
			return
		}
		seen[b] = struct{}{}
		hits = append(hits, b)
	})

	sort.Slice(hits, func(i, j int) bool { return hits[i].id < hits[j].id })
	out := make([]guard.Target, len(hits))
	for i, b := range hits {
		out[i] = b
	}
	return out
}

// RaycastBlocked reports whether a non-sensor shape on mask lies on the
// segment from origin along dir for maxDistance. Only the ground-plane part of
// the segment is tested.
func (w *World) RaycastBlocked(origin, dir mgl64.Vec3, maxDistance float64, mask guard.Layer) bool {
	if w == nil || maxDistance <= 0 || dir.Len() == 0 {
		return false
	}
	end := origin.Add(dir.Normalize().Mul(maxDistance))
	a, b := toCP(origin), toCP(end)
	if a == b {
		return false
	}
	info := w.space.SegmentQueryFirst(a, b, 0, queryFilter(mask))
	return info.Shape != nil
}

// Blocked reports whether an obstacle lies within clearance of (x, z).
func (w *World) Blocked(x, z, clearance float64) bool {
	if w == nil {
		return false
	}
	hit := false
	w.queryCircle(cp.Vector{X: x, Y: z}, clearance, queryFilter(guard.LayerObstacle), func(*cp.Shape) {
		hit = true
	})
	return hit
}

// queryCircle calls fn for each shape passing filter whose surface lies
// within radius of p. Shapes are as of the last Step.
func (w *World) queryCircle(p cp.Vector, radius float64, filter cp.ShapeFilter, fn func(*cp.Shape)) {
	w.space.BBQuery(cp.NewBBForCircle(p, radius), filter, func(shape *cp.Shape, _ interface{}) {
		if shape.PointQuery(p).Distance <= radius {
			fn(shape)
		}
	}, nil)
}
