package scene

import (
	"fmt"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/patrolai/prefabs"
)

// A player script defines move(t, dt, pos) returning the next [x, z]. t and
// dt are seconds, pos is the current [x, z].
const playerDispatchScript = `
__out = move(__t, __dt, __pos)
`

// PlayerScript is a compiled player movement script.
type PlayerScript struct {
	name     string
	compiled *tengo.Compiled
}

func LoadPlayerScript(name string) (*PlayerScript, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("scene: load script %s: %w", name, err)
	}
	return CompilePlayerScript(name, src)
}

func CompilePlayerScript(name string, src []byte) (*PlayerScript, error) {
	script := tengo.NewScript(append(append([]byte(nil), src...), []byte("\n"+playerDispatchScript)...))
	_ = script.Add("__t", 0.0)
	_ = script.Add("__dt", 0.0)
	_ = script.Add("__pos", []interface{}{0.0, 0.0})
	_ = script.Add("__out", nil)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("scene: compile script %s: %w", name, err)
	}
	return &PlayerScript{name: name, compiled: compiled}, nil
}

func (s *PlayerScript) Name() string { return s.name }

// Next runs the script once and returns the new position on pos's plane.
func (s *PlayerScript) Next(t, dt time.Duration, pos mgl64.Vec3) (mgl64.Vec3, error) {
	if s == nil || s.compiled == nil {
		return pos, fmt.Errorf("scene: nil player script")
	}
	if err := s.compiled.Set("__t", t.Seconds()); err != nil {
		return pos, err
	}
	if err := s.compiled.Set("__dt", dt.Seconds()); err != nil {
		return pos, err
	}
	if err := s.compiled.Set("__pos", []interface{}{pos.X(), pos.Z()}); err != nil {
		return pos, err
	}
	if err := s.compiled.Run(); err != nil {
		return pos, fmt.Errorf("scene: run script %s: %w", s.name, err)
	}

	out := s.compiled.Get("__out").Array()
	if len(out) < 2 {
		return pos, fmt.Errorf("scene: script %s: move must return [x, z]", s.name)
	}
	x, okX := toFloat(out[0])
	z, okZ := toFloat(out[1])
	if !okX || !okZ {
		return pos, fmt.Errorf("scene: script %s: non-numeric position %v", s.name, out)
	}
	return mgl64.Vec3{x, pos.Y(), z}, nil
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}
