package guard

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/patrolai/common"
)

func TestSmoothFacingConverges(t *testing.T) {
	cases := []struct {
		name   string
		from   float64
		to     float64
		dt     time.Duration
		rate   float64
		maxOut int
	}{
		{"small_turn", 0, 30, 16 * time.Millisecond, 10, 200},
		{"large_turn", 0, 170, 16 * time.Millisecond, 10, 200},
		{"wrap_around", 170, -170, 10 * time.Millisecond, 10, 300},
		{"step_clamped", 0, 90, time.Second, 10, 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			start := common.Yaw(c.from)
			target := common.Yaw(c.to)
			total := common.QuatAngle(start, target)
			cur := start
			prev := total
			steps := 0
			for prev > 1e-3 {
				require.Less(t, steps, c.maxOut, "did not converge")
				cur = smoothFacing(cur, target, c.dt, c.rate)
				d := common.QuatAngle(cur, target)
				if d > 1e-6 {
					assert.Less(t, d, prev, "step %d", steps)
				}
				assert.LessOrEqual(t, common.QuatAngle(start, cur), total+1e-6, "overshoot at step %d", steps)
				prev = d
				steps++
			}
		})
	}
}

func TestChaseTurnsTowardTarget(t *testing.T) {
	r, err := newRig(testConfig(mgl64.Vec3{0, 0, -20}), mgl64.Vec3{}, WithRotation(common.Yaw(90)))
	require.NoError(t, err)
	target := mgl64.Vec3{4, 0, 1.5}
	r.spatial.targets = []Target{&fakeTarget{pos: target, tag: TagPlayer}}
	dir := common.Direction(mgl64.Vec3{}, target)

	prev := common.AngleBetween(r.agent.SightAxis(), dir)
	require.Greater(t, prev, 10.0)
	for i := 0; i < 100 && prev > 0.01; i++ {
		r.agent.Tick(16 * time.Millisecond)
		cur := common.AngleBetween(r.agent.SightAxis(), dir)
		assert.Less(t, cur, prev)
		prev = cur
	}
	assert.Less(t, prev, 0.01)
}

func TestFacingOffsetPairsWithEye(t *testing.T) {
	cfg := testConfig(mgl64.Vec3{0, 0, -20})
	cfg.FacingYawOffset = -270
	cfg.EyeYawOffset = 270
	r, err := newRig(cfg, mgl64.Vec3{}, WithRotation(common.Yaw(-180)))
	require.NoError(t, err)
	target := mgl64.Vec3{4, 0, 1.5}
	r.spatial.targets = []Target{&fakeTarget{pos: target, tag: TagPlayer}}
	dir := common.Direction(mgl64.Vec3{}, target)

	for i := 0; i < 100; i++ {
		r.agent.Tick(16 * time.Millisecond)
		require.Equal(t, ModeChase, r.agent.State().Mode, "tick %d", i)
	}
	assert.Less(t, common.AngleBetween(r.agent.SightAxis(), dir), 0.01)
	forward := common.Flatten(r.agent.Rotation().Rotate(common.Forward))
	assert.InDelta(t, 90, common.AngleBetween(forward, dir), 0.01)
}

func TestChaseFacingSkipsCloseTarget(t *testing.T) {
	r, err := newRig(testConfig(mgl64.Vec3{0, 0, -20}), mgl64.Vec3{}, WithRotation(common.Yaw(90)))
	require.NoError(t, err)
	r.spatial.targets = []Target{&fakeTarget{pos: mgl64.Vec3{0.4, 0, 0.1}, tag: TagPlayer}}
	before := r.agent.Rotation()
	r.agent.Tick(16 * time.Millisecond)
	require.True(t, r.agent.InRange())
	assert.Equal(t, before, r.agent.Rotation())
}

func TestPatrolFacingSnaps(t *testing.T) {
	cases := []struct {
		name string
		wp   mgl64.Vec3
		yaw  float64
	}{
		{"moving_plus_x", mgl64.Vec3{10, 0, 0}, 180},
		{"moving_minus_x", mgl64.Vec3{-10, 0, 0}, 0},
		{"moving_along_z", mgl64.Vec3{0, 0, 10}, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := newRig(testConfig(c.wp), mgl64.Vec3{}, WithRotation(common.Yaw(90)))
			require.NoError(t, err)
			r.step(tick)
			r.step(tick)
			assert.Less(t, common.QuatAngle(r.agent.Rotation(), common.Yaw(c.yaw)), 1e-6)
		})
	}
}

func TestPatrolFacingHoldsWhenStill(t *testing.T) {
	r, err := newRig(testConfig(mgl64.Vec3{}), mgl64.Vec3{}, WithRotation(common.Yaw(90)))
	require.NoError(t, err)
	r.step(tick)
	r.step(tick)
	assert.Less(t, common.QuatAngle(r.agent.Rotation(), common.Yaw(90)), 1e-6)
}
