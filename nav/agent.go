package nav

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Agent follows grid paths at a set speed. It walks all the way to the
// destination; the stopping distance is the caller's arrival tolerance.
// Without a grid it walks straight.
type Agent struct {
	grid *Grid

	pos      mgl64.Vec3
	vel      mgl64.Vec3
	dest     mgl64.Vec3
	hasDest  bool
	path     []mgl64.Vec3
	speed    float64
	stopped  bool
	stopping float64
}

func NewAgent(pos mgl64.Vec3, grid *Grid) *Agent {
	return &Agent{grid: grid, pos: pos}
}

// SetDestination plans a path. Repeating the current destination keeps the
// existing path.
func (a *Agent) SetDestination(d mgl64.Vec3) {
	if a.hasDest && a.dest.ApproxEqual(d) {
		return
	}
	a.dest = d
	a.hasDest = true
	a.replan()
}

func (a *Agent) replan() {
	if a.grid == nil {
		a.path = []mgl64.Vec3{a.dest}
		return
	}
	a.path = a.grid.FindPath(a.pos, a.dest)
	if a.path == nil {
		a.path = []mgl64.Vec3{a.dest}
	}
}

func (a *Agent) SetSpeed(s float64) { a.speed = s }

func (a *Agent) Speed() float64 { return a.speed }

func (a *Agent) Stop() {
	a.stopped = true
	a.vel = mgl64.Vec3{}
}

func (a *Agent) Resume() { a.stopped = false }

func (a *Agent) Stopped() bool { return a.stopped }

func (a *Agent) SetStoppingDistance(d float64) { a.stopping = d }

func (a *Agent) StoppingDistance() float64 { return a.stopping }

// RemainingDistance is the length of the rest of the path.
func (a *Agent) RemainingDistance() float64 {
	if !a.hasDest {
		return 0
	}
	total := 0.0
	prev := a.pos
	for _, p := range a.path {
		total += p.Sub(prev).Len()
		prev = p
	}
	return total
}

func (a *Agent) Velocity() mgl64.Vec3 { return a.vel }

func (a *Agent) Position() mgl64.Vec3 { return a.pos }

// Path returns the remaining corners.
func (a *Agent) Path() []mgl64.Vec3 { return a.path }

func (a *Agent) Destination() (mgl64.Vec3, bool) { return a.dest, a.hasDest }

// Warp moves the agent without walking and replans.
func (a *Agent) Warp(p mgl64.Vec3) {
	a.pos = p
	a.vel = mgl64.Vec3{}
	if a.hasDest {
		a.replan()
	}
}

// Update walks along the path for dt.
func (a *Agent) Update(dt time.Duration) {
	secs := dt.Seconds()
	if a.stopped || a.speed <= 0 || secs <= 0 || len(a.path) == 0 {
		a.vel = mgl64.Vec3{}
		return
	}
	start := a.pos
	budget := a.speed * secs
	for budget > 0 && len(a.path) > 0 {
		next := a.path[0]
		seg := next.Sub(a.pos)
		l := seg.Len()
		if l <= budget {
			a.pos = next
			budget -= l
			a.path = a.path[1:]
			continue
		}
		a.pos = a.pos.Add(seg.Mul(budget / l))
		budget = 0
	}
	a.vel = a.pos.Sub(start).Mul(1 / secs)
}
