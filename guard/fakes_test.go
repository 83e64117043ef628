package guard

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// fakeNav walks straight at the requested speed when Update is called.
type fakeNav struct {
	pos      mgl64.Vec3
	dest     mgl64.Vec3
	speed    float64
	stopped  bool
	stopping float64
	vel      mgl64.Vec3

	stops   int
	resumes int
	dests   []mgl64.Vec3
}

func (n *fakeNav) SetDestination(d mgl64.Vec3) {
	n.dest = d
	n.dests = append(n.dests, d)
}
func (n *fakeNav) SetSpeed(s float64) { n.speed = s }
func (n *fakeNav) Stop() {
	n.stopped = true
	n.vel = mgl64.Vec3{}
	n.stops++
}
func (n *fakeNav) Resume() {
	n.stopped = false
	n.resumes++
}
func (n *fakeNav) SetStoppingDistance(d float64) { n.stopping = d }
func (n *fakeNav) RemainingDistance() float64    { return n.dest.Sub(n.pos).Len() }
func (n *fakeNav) StoppingDistance() float64     { return n.stopping }
func (n *fakeNav) Velocity() mgl64.Vec3          { return n.vel }
func (n *fakeNav) Position() mgl64.Vec3          { return n.pos }

func (n *fakeNav) Update(dt time.Duration) {
	if n.stopped || n.speed <= 0 || dt <= 0 {
		n.vel = mgl64.Vec3{}
		return
	}
	delta := n.dest.Sub(n.pos)
	step := n.speed * dt.Seconds()
	if delta.Len() <= step {
		n.vel = delta.Mul(1 / dt.Seconds())
		n.pos = n.dest
		return
	}
	move := delta.Normalize().Mul(step)
	n.vel = move.Mul(1 / dt.Seconds())
	n.pos = n.pos.Add(move)
}

type fakeTarget struct {
	pos mgl64.Vec3
	tag Tag
}

func (t *fakeTarget) Position() mgl64.Vec3 { return t.pos }
func (t *fakeTarget) Tag() Tag             { return t.tag }

type fakeSpatial struct {
	targets []Target
	blocked func(origin, dir mgl64.Vec3, dist float64) bool

	lastRadius float64
	lastMask   Layer
}

func (s *fakeSpatial) OverlapSphere(center mgl64.Vec3, radius float64, mask Layer) []Target {
	s.lastRadius = radius
	s.lastMask = mask
	var out []Target
	for _, t := range s.targets {
		if t.Position().Sub(center).Len() <= radius {
			out = append(out, t)
		}
	}
	return out
}

func (s *fakeSpatial) RaycastBlocked(origin, dir mgl64.Vec3, dist float64, mask Layer) bool {
	if s.blocked == nil {
		return false
	}
	return s.blocked(origin, dir, dist)
}

type fakeVisual struct {
	material string
	sets     []string
}

func (v *fakeVisual) Material() string { return v.material }
func (v *fakeVisual) SetMaterial(m string) {
	v.material = m
	v.sets = append(v.sets, m)
}

type rig struct {
	agent   *Agent
	nav     *fakeNav
	spatial *fakeSpatial
	visual  *fakeVisual
}

func newRig(cfg Config, start mgl64.Vec3, opts ...Option) (*rig, error) {
	r := &rig{
		nav:     &fakeNav{pos: start},
		spatial: &fakeSpatial{},
		visual:  &fakeVisual{material: "steelblue"},
	}
	a, err := New(cfg, Collaborators{Navigator: r.nav, Spatial: r.spatial, Visual: r.visual}, opts...)
	if err != nil {
		return nil, err
	}
	r.agent = a
	return r, nil
}

// step ticks the agent, then lets the navigator move.
func (r *rig) step(dt time.Duration) {
	r.agent.Tick(dt)
	r.nav.Update(dt)
}

// testConfig faces chased targets head-on so they stay on the sight axis.
func testConfig(waypoints ...mgl64.Vec3) Config {
	cfg := DefaultConfig()
	cfg.Waypoints = waypoints
	cfg.FacingYawOffset = 0
	return cfg
}
