package scene

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerScriptNext(t *testing.T) {
	src := `
math := import("math")
move := func(t, dt, pos) {
	return [pos[0] + dt, math.floor(t)]
}
`
	s, err := CompilePlayerScript("inline", []byte(src))
	require.NoError(t, err)

	got, err := s.Next(2500*time.Millisecond, 500*time.Millisecond, mgl64.Vec3{1, 3, 7})
	require.NoError(t, err)
	assert.InDelta(t, 1.5, got.X(), 1e-9)
	assert.Equal(t, 3.0, got.Y())
	assert.InDelta(t, 2.0, got.Z(), 1e-9)
}

func TestPlayerScriptIntegerResult(t *testing.T) {
	s, err := CompilePlayerScript("ints", []byte(`move := func(t, dt, pos) { return [4, 5] }`))
	require.NoError(t, err)
	got, err := s.Next(0, 0, mgl64.Vec3{})
	require.NoError(t, err)
	assert.Equal(t, mgl64.Vec3{4, 0, 5}, got)
}

func TestPlayerScriptErrors(t *testing.T) {
	_, err := CompilePlayerScript("broken", []byte(`move := func(t, dt, pos) {`))
	assert.Error(t, err)

	_, err = CompilePlayerScript("nomove", []byte(`x := 1`))
	assert.Error(t, err)

	s, err := CompilePlayerScript("short", []byte(`move := func(t, dt, pos) { return [1] }`))
	require.NoError(t, err)
	_, err = s.Next(0, 0, mgl64.Vec3{})
	assert.Error(t, err)

	s, err = CompilePlayerScript("words", []byte(`move := func(t, dt, pos) { return ["a", "b"] }`))
	require.NoError(t, err)
	_, err = s.Next(0, 0, mgl64.Vec3{})
	assert.Error(t, err)
}

func TestEmbeddedScriptsCompile(t *testing.T) {
	for _, name := range []string{"wander.tengo", "pace.tengo"} {
		s, err := LoadPlayerScript(name)
		require.NoError(t, err, name)
		_, err = s.Next(time.Second, tick, mgl64.Vec3{15, 0, 18})
		require.NoError(t, err, name)
	}
}

func TestSchedulerOrder(t *testing.T) {
	var order []string
	s := NewScheduler(
		SystemFunc(func(time.Duration) { order = append(order, "a") }),
		nil,
		SystemFunc(func(time.Duration) { order = append(order, "b") }),
	)
	s.Update(tick)
	s.Update(tick)
	assert.Equal(t, []string{"a", "b", "a", "b"}, order)
}

func TestMaterialColor(t *testing.T) {
	m := NewMaterial("steelblue")
	m.SetMaterial("Crimson")
	assert.Equal(t, "Crimson", m.Material())
	assert.Equal(t, uint8(0xdc), m.Color().R)
	assert.Equal(t, MaterialColor("magenta"), MaterialColor("no-such-colour"))
}
