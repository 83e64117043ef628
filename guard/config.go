package guard

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	ErrNoWaypoints   = errors.New("guard: no waypoints")
	ErrNoNavigator   = errors.New("guard: no navigator")
	ErrNoSpatial     = errors.New("guard: no spatial query source")
	ErrInvalidConfig = errors.New("guard: invalid config")
)

// Config tunes one agent. Zero values are not defaults; start from
// DefaultConfig.
type Config struct {
	WaitTime         time.Duration
	WalkSpeed        float64
	RunSpeed         float64
	ViewRadius       float64
	ViewAngle        float64 // full cone, degrees
	StoppingDistance float64
	Waypoints        []mgl64.Vec3

	DisengageDistance         float64
	ResumeDelay               time.Duration
	InvestigateArriveDistance float64
	FacingMinDistance         float64
	FacingYawOffset           float64 // degrees added to the chase look rotation
	EyeYawOffset              float64 // degrees from forward to the sight axis
	TurnRate                  float64 // slerp factor per second
	MoveEpsilon               float64 // squared speed below which patrol facing is left alone

	TargetMask    Layer
	ObstacleMask  Layer
	ChaseMaterial string
}

func DefaultConfig() Config {
	return Config{
		WaitTime:         4 * time.Second,
		WalkSpeed:        6,
		RunSpeed:         9,
		ViewRadius:       15,
		ViewAngle:        90,
		StoppingDistance: 0.5,

		DisengageDistance:         6,
		ResumeDelay:               500 * time.Millisecond,
		InvestigateArriveDistance: 0.3,
		FacingMinDistance:         0.5,
		FacingYawOffset:           -270,
		TurnRate:                  10,
		MoveEpsilon:               0.01,

		TargetMask:    LayerPlayer | LayerPickup,
		ObstacleMask:  LayerObstacle,
		ChaseMaterial: "crimson",
	}
}

// Validate reports the first problem with c.
func (c Config) Validate() error {
	if len(c.Waypoints) == 0 {
		return ErrNoWaypoints
	}
	for i, wp := range c.Waypoints {
		if !finiteVec(wp) {
			return fmt.Errorf("%w: waypoint %d is not finite", ErrInvalidConfig, i)
		}
	}
	checks := []struct {
		name string
		v    float64
	}{
		{"walk speed", c.WalkSpeed},
		{"run speed", c.RunSpeed},
		{"view radius", c.ViewRadius},
		{"stopping distance", c.StoppingDistance},
		{"disengage distance", c.DisengageDistance},
		{"investigate arrive distance", c.InvestigateArriveDistance},
		{"facing min distance", c.FacingMinDistance},
		{"turn rate", c.TurnRate},
		{"move epsilon", c.MoveEpsilon},
	}
	for _, chk := range checks {
		if chk.v < 0 || math.IsNaN(chk.v) || math.IsInf(chk.v, 0) {
			return fmt.Errorf("%w: %s %v", ErrInvalidConfig, chk.name, chk.v)
		}
	}
	if c.ViewAngle <= 0 || c.ViewAngle > 360 || math.IsNaN(c.ViewAngle) {
		return fmt.Errorf("%w: view angle %v", ErrInvalidConfig, c.ViewAngle)
	}
	if c.WaitTime < 0 {
		return fmt.Errorf("%w: wait time %s", ErrInvalidConfig, c.WaitTime)
	}
	if c.ResumeDelay < 0 {
		return fmt.Errorf("%w: resume delay %s", ErrInvalidConfig, c.ResumeDelay)
	}
	return nil
}

func finiteVec(v mgl64.Vec3) bool {
	for _, f := range v {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
