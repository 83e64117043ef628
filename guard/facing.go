package guard

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/patrolai/common"
)

// smoothFacing turns current towards target by dt*rate of the remaining arc.
func smoothFacing(current, target mgl64.Quat, dt time.Duration, rate float64) mgl64.Quat {
	return common.Slerp(current, target, dt.Seconds()*rate)
}

// patrolHeading snaps to one of two headings by the sign of the x velocity.
func patrolHeading(vel mgl64.Vec3) mgl64.Quat {
	if vel.X() > 0 {
		return common.Yaw(180)
	}
	return common.Yaw(0)
}

func (a *Agent) face(dt time.Duration) {
	switch a.state.Mode {
	case ModeChase:
		if !a.detection.Found {
			return
		}
		pos := a.nav.Position()
		if common.Distance(pos, a.detection.Position) <= a.cfg.FacingMinDistance {
			return
		}
		look, ok := common.LookRotation(a.detection.Position.Sub(pos))
		if !ok {
			return
		}
		target := look.Mul(common.Yaw(a.cfg.FacingYawOffset))
		a.rotation = smoothFacing(a.rotation, target, dt, a.cfg.TurnRate)
	case ModePatrol:
		v := a.nav.Velocity()
		if v.Dot(v) <= a.cfg.MoveEpsilon {
			return
		}
		a.rotation = patrolHeading(v)
	}
}
