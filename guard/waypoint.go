package guard

import "github.com/go-gl/mathgl/mgl64"

// Waypoints is a fixed, cyclic route. The index is always in [0, Len).
type Waypoints struct {
	points []mgl64.Vec3
	index  int
}

func newWaypoints(points []mgl64.Vec3) Waypoints {
	cp := make([]mgl64.Vec3, len(points))
	copy(cp, points)
	return Waypoints{points: cp}
}

func (w *Waypoints) Len() int { return len(w.points) }

func (w *Waypoints) At(i int) mgl64.Vec3 { return w.points[i] }

func (w *Waypoints) Index() int { return w.index }

func (w *Waypoints) Current() mgl64.Vec3 { return w.points[w.index] }

// Advance moves to the next waypoint, wrapping at the end, and returns it.
func (w *Waypoints) Advance() mgl64.Vec3 {
	w.index = (w.index + 1) % len(w.points)
	return w.points[w.index]
}
