package prefabs

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// LoadSpec loads and decodes a prefab. Files ending in .toml are TOML,
// everything else is YAML.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	var spec T
	if err := Decode(filename, data, &spec); err != nil {
		return zero, err
	}
	return spec, nil
}

// Decode unmarshals data into out using the format implied by filename.
func Decode(filename string, data []byte, out any) error {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		if _, err := toml.Decode(string(data), out); err != nil {
			return fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
		}
	default:
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
		}
	}
	return nil
}

// Duration accepts "1.5s"-style strings or a bare number of seconds.
type Duration time.Duration

func (d Duration) D() time.Duration { return time.Duration(d) }

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := parseDuration(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("duration must be a scalar")
	}
	return d.UnmarshalText([]byte(value.Value))
}

// UnmarshalTOML handles bare TOML numbers; strings go through UnmarshalText.
func (d *Duration) UnmarshalTOML(v any) error {
	switch x := v.(type) {
	case string:
		return d.UnmarshalText([]byte(x))
	case int64:
		*d = Duration(time.Duration(x) * time.Second)
	case float64:
		*d = Duration(time.Duration(x * float64(time.Second)))
	default:
		return fmt.Errorf("duration: unsupported value %v", v)
	}
	return nil
}

func parseDuration(s string) (Duration, error) {
	s = strings.TrimSpace(s)
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Duration(time.Duration(f * float64(time.Second))), nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return Duration(v), nil
}

type Vec3Spec struct {
	X float64 `yaml:"x" toml:"x"`
	Y float64 `yaml:"y" toml:"y"`
	Z float64 `yaml:"z" toml:"z"`
}

func (v Vec3Spec) Vec3() mgl64.Vec3 { return mgl64.Vec3{v.X, v.Y, v.Z} }
