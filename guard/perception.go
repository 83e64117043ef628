package guard

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/patrolai/common"
)

// Detection is the result of one perception scan.
type Detection struct {
	Found    bool
	Target   Target
	Position mgl64.Vec3
	Distance float64
}

// SightAxis is the agent's forward, turned by EyeYawOffset and flattened
// onto the ground plane.
func (a *Agent) SightAxis() mgl64.Vec3 {
	eye := a.rotation
	if a.cfg.EyeYawOffset != 0 {
		eye = eye.Mul(common.Yaw(a.cfg.EyeYawOffset))
	}
	return common.Flatten(eye.Rotate(common.Forward))
}

// scan returns the nearest target inside the view cone with a clear line of
// sight. Equal distances keep the earlier candidate.
func (a *Agent) scan() Detection {
	pos := a.nav.Position()
	sight := a.SightAxis()
	half := a.cfg.ViewAngle / 2

	var best Detection
	for _, t := range a.spatial.OverlapSphere(pos, a.cfg.ViewRadius, a.cfg.TargetMask) {
		if t == nil {
			continue
		}
		tp := t.Position()
		dir := common.Direction(pos, tp)
		dist := common.Distance(pos, tp)
		if dist > 0 && common.AngleBetween(sight, dir) >= half {
			continue
		}
		if dist > 0 && a.spatial.RaycastBlocked(pos, dir, dist, a.cfg.ObstacleMask) {
			continue
		}
		if !best.Found || dist < best.Distance {
			best = Detection{Found: true, Target: t, Position: tp, Distance: dist}
		}
	}
	return best
}

func (a *Agent) perceive() {
	a.detection = a.scan()
	if a.detection.Found {
		a.enterChase(ReasonSighted)
		return
	}
	a.enterPatrol(ReasonLost)
}

// InRange reports whether the last scan saw a target.
func (a *Agent) InRange() bool { return a.detection.Found }
