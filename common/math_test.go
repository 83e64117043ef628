package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestAngleBetween(t *testing.T) {
	cases := []struct {
		name string
		a, b mgl64.Vec3
		want float64
	}{
		{"same", mgl64.Vec3{1, 0, 0}, mgl64.Vec3{2, 0, 0}, 0},
		{"right", mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, 3}, 90},
		{"opposite", mgl64.Vec3{1, 0, 0}, mgl64.Vec3{-1, 0, 0}, 180},
		{"zero", mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.InDelta(t, c.want, AngleBetween(c.a, c.b), 1e-9)
		})
	}
}

func TestYawTurnsForwardTowardsX(t *testing.T) {
	v := Yaw(90).Rotate(Forward)
	assert.InDelta(t, 1, v.X(), 1e-9)
	assert.InDelta(t, 0, v.Z(), 1e-9)
	assert.InDelta(t, 90, YawOf(Yaw(90)), 1e-9)
	assert.InDelta(t, -45, YawOf(Yaw(-45)), 1e-9)
}

func TestLookRotation(t *testing.T) {
	q, ok := LookRotation(mgl64.Vec3{-3, 5, 3})
	assert.True(t, ok)
	assert.InDelta(t, -45, YawOf(q), 1e-9)

	_, ok = LookRotation(mgl64.Vec3{0, 1, 0})
	assert.False(t, ok)
}

func TestPlanarHelpers(t *testing.T) {
	a := mgl64.Vec3{0, 0, 0}
	b := mgl64.Vec3{3, 10, 4}
	assert.InDelta(t, 5, PlanarDistance(a, b), 1e-9)
	assert.Equal(t, mgl64.Vec3{3, 0, 4}, Flatten(b))
	assert.Equal(t, mgl64.Vec3{3, 2, 4}, AtHeight(b, 2))
	assert.Equal(t, mgl64.Vec3{}, Direction(b, b))
}

func TestSlerpClampsAndTakesShortArc(t *testing.T) {
	a := Yaw(170)
	b := Yaw(-170)
	assert.Equal(t, a, Slerp(a, b, -1))
	assert.Less(t, QuatAngle(Slerp(a, b, 2), b), 1e-6)

	mid := Slerp(a, b, 0.5)
	assert.InDelta(t, 180, abs(YawOf(mid)), 1e-6)
}

func TestQuatAngle(t *testing.T) {
	cases := []struct {
		name string
		a, b mgl64.Quat
		want float64
	}{
		{"same", Yaw(30), Yaw(30), 0},
		{"tiny", Yaw(0), Yaw(1e-6), 1e-6},
		{"quarter", Yaw(0), Yaw(90), 90},
		{"wrap", Yaw(170), Yaw(-170), 20},
		{"negated", Yaw(40), Yaw(40).Scale(-1), 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.InDelta(t, c.want, QuatAngle(c.a, c.b), 1e-9)
		})
	}
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, Clamp01(-2))
	assert.Equal(t, 1.0, Clamp01(3))
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
