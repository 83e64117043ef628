package prefabs

import "fmt"

type BoundsSpec struct {
	MinX float64 `yaml:"min_x" toml:"min_x"`
	MinZ float64 `yaml:"min_z" toml:"min_z"`
	MaxX float64 `yaml:"max_x" toml:"max_x"`
	MaxZ float64 `yaml:"max_z" toml:"max_z"`
}

type ObstacleSpec struct {
	Center    Vec3Spec `yaml:"center" toml:"center"`
	HalfWidth float64  `yaml:"half_width" toml:"half_width"`
	HalfDepth float64  `yaml:"half_depth" toml:"half_depth"`
}

type PickupSpec struct {
	Position Vec3Spec `yaml:"position" toml:"position"`
	Radius   float64  `yaml:"radius" toml:"radius"`
}

type ScenePlayerSpec struct {
	Start  Vec3Spec `yaml:"start" toml:"start"`
	Radius float64  `yaml:"radius" toml:"radius"`
	Script string   `yaml:"script" toml:"script"`
}

type SceneGuardSpec struct {
	Prefab    string     `yaml:"prefab" toml:"prefab"`
	Spawn     *Vec3Spec  `yaml:"spawn" toml:"spawn"`
	Yaw       float64    `yaml:"yaw" toml:"yaw"`
	Waypoints []Vec3Spec `yaml:"waypoints" toml:"waypoints"`
}

// SceneSpec lays out one guard, one player and the static world around them.
type SceneSpec struct {
	Name      string          `yaml:"name" toml:"name"`
	Bounds    BoundsSpec      `yaml:"bounds" toml:"bounds"`
	CellSize  float64         `yaml:"cell_size" toml:"cell_size"`
	Clearance float64         `yaml:"clearance" toml:"clearance"`
	Guard     SceneGuardSpec  `yaml:"guard" toml:"guard"`
	Player    ScenePlayerSpec `yaml:"player" toml:"player"`
	Obstacles []ObstacleSpec  `yaml:"obstacles" toml:"obstacles"`
	Pickups   []PickupSpec    `yaml:"pickups" toml:"pickups"`
}

func LoadSceneSpec(filename string) (SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](filename)
	if err != nil {
		return SceneSpec{}, err
	}
	if err := spec.Validate(); err != nil {
		return SceneSpec{}, fmt.Errorf("prefabs: scene %s: %w", filename, err)
	}
	return spec, nil
}

func (s SceneSpec) Validate() error {
	if s.Bounds.MaxX <= s.Bounds.MinX || s.Bounds.MaxZ <= s.Bounds.MinZ {
		return fmt.Errorf("empty bounds")
	}
	if s.CellSize < 0 || s.Clearance < 0 {
		return fmt.Errorf("negative cell size or clearance")
	}
	if s.Guard.Prefab == "" {
		return fmt.Errorf("no guard prefab")
	}
	for i, o := range s.Obstacles {
		if o.HalfWidth <= 0 || o.HalfDepth <= 0 {
			return fmt.Errorf("obstacle %d has no extent", i)
		}
	}
	return nil
}
