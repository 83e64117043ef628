package prefabs

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/patrolai/guard"
)

// GuardSpec is a guard prefab. Unset fields keep guard.DefaultConfig values.
type GuardSpec struct {
	Name     string     `yaml:"name" toml:"name"`
	Material string     `yaml:"material" toml:"material"`
	Radius   float64    `yaml:"radius" toml:"radius"`
	Trigger  float64    `yaml:"trigger_radius" toml:"trigger_radius"`
	Route    []Vec3Spec `yaml:"waypoints" toml:"waypoints"`

	WaitTime                  *Duration `yaml:"wait_time" toml:"wait_time"`
	WalkSpeed                 *float64  `yaml:"walk_speed" toml:"walk_speed"`
	RunSpeed                  *float64  `yaml:"run_speed" toml:"run_speed"`
	ViewRadius                *float64  `yaml:"view_radius" toml:"view_radius"`
	ViewAngle                 *float64  `yaml:"view_angle" toml:"view_angle"`
	StoppingDistance          *float64  `yaml:"stopping_distance" toml:"stopping_distance"`
	DisengageDistance         *float64  `yaml:"disengage_distance" toml:"disengage_distance"`
	ResumeDelay               *Duration `yaml:"resume_delay" toml:"resume_delay"`
	InvestigateArriveDistance *float64  `yaml:"investigate_arrive_distance" toml:"investigate_arrive_distance"`
	FacingYawOffset           *float64  `yaml:"facing_yaw_offset" toml:"facing_yaw_offset"`
	EyeYawOffset              *float64  `yaml:"eye_yaw_offset" toml:"eye_yaw_offset"`
	TurnRate                  *float64  `yaml:"turn_rate" toml:"turn_rate"`
	ChaseMaterial             *string   `yaml:"chase_material" toml:"chase_material"`
}

func LoadGuardSpec(filename string) (GuardSpec, error) {
	return LoadSpec[GuardSpec](filename)
}

func (s GuardSpec) Waypoints() []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(s.Route))
	for i, wp := range s.Route {
		out[i] = wp.Vec3()
	}
	return out
}

// Config applies the prefab over guard.DefaultConfig and validates the result.
func (s GuardSpec) Config() (guard.Config, error) {
	cfg := guard.DefaultConfig()
	cfg.Waypoints = s.Waypoints()

	if s.WaitTime != nil {
		cfg.WaitTime = s.WaitTime.D()
	}
	if s.ResumeDelay != nil {
		cfg.ResumeDelay = s.ResumeDelay.D()
	}
	floats := []struct {
		src *float64
		dst *float64
	}{
		{s.WalkSpeed, &cfg.WalkSpeed},
		{s.RunSpeed, &cfg.RunSpeed},
		{s.ViewRadius, &cfg.ViewRadius},
		{s.ViewAngle, &cfg.ViewAngle},
		{s.StoppingDistance, &cfg.StoppingDistance},
		{s.DisengageDistance, &cfg.DisengageDistance},
		{s.InvestigateArriveDistance, &cfg.InvestigateArriveDistance},
		{s.FacingYawOffset, &cfg.FacingYawOffset},
		{s.EyeYawOffset, &cfg.EyeYawOffset},
		{s.TurnRate, &cfg.TurnRate},
	}
	for _, f := range floats {
		if f.src != nil {
			*f.dst = *f.src
		}
	}
	if s.ChaseMaterial != nil {
		cfg.ChaseMaterial = *s.ChaseMaterial
	}

	if err := cfg.Validate(); err != nil {
		return guard.Config{}, fmt.Errorf("prefabs: guard %s: %w", s.Name, err)
	}
	return cfg, nil
}
