package guard

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/patrolai/common"
)

// Status is a point-in-time snapshot of an agent for logs and tools.
type Status struct {
	Time           float64     `json:"t"`
	Mode           Mode        `json:"mode"`
	Phase          Phase       `json:"phase"`
	Waypoint       int         `json:"waypoint"`
	Wait           float64     `json:"wait"`
	Position       mgl64.Vec3  `json:"position"`
	Yaw            float64     `json:"yaw"`
	InRange        bool        `json:"in_range"`
	Target         Tag         `json:"target,omitempty"`
	TargetDistance float64     `json:"target_distance,omitempty"`
	LastKnown      *mgl64.Vec3 `json:"last_known,omitempty"`
	Colliding      bool        `json:"colliding"`
	ResumePending  bool        `json:"resume_pending"`
	Transitions    int         `json:"transitions"`
	LastReason     Reason      `json:"last_reason,omitempty"`
}

func (a *Agent) Status() Status {
	s := Status{
		Time:          a.now.Seconds(),
		Mode:          a.state.Mode,
		Phase:         a.state.Phase,
		Waypoint:      a.route.Index(),
		Wait:          a.wait.Seconds(),
		Position:      a.nav.Position(),
		Yaw:           common.YawOf(a.rotation),
		InRange:       a.detection.Found,
		Colliding:     a.colliding,
		ResumePending: a.ResumePending(),
		Transitions:   a.transitions,
		LastReason:    a.last.Reason,
	}
	if a.detection.Found {
		if a.detection.Target != nil {
			s.Target = a.detection.Target.Tag()
		}
		s.TargetDistance = a.detection.Distance
	}
	if a.hasLastKnown {
		lk := a.lastKnown
		s.LastKnown = &lk
	}
	return s
}
