package guard

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollisionRoundTrip(t *testing.T) {
	cases := []struct {
		name    string
		elapsed []time.Duration
		resumed bool
	}{
		{"exact_delay", []time.Duration{250 * time.Millisecond, 250 * time.Millisecond}, true},
		{"past_delay", []time.Duration{time.Second}, true},
		{"short", []time.Duration{200 * time.Millisecond, 200 * time.Millisecond}, false},
		{"no_time", nil, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := newRig(testConfig(mgl64.Vec3{0, 0, -20}), mgl64.Vec3{})
			require.NoError(t, err)

			r.agent.OnContactBegin(TagPlayer)
			require.True(t, r.nav.stopped, "navigation suspends in the same tick")
			require.True(t, r.agent.Colliding())

			r.agent.OnContactEnd(TagPlayer)
			require.True(t, r.agent.ResumePending())
			for _, dt := range c.elapsed {
				r.agent.Tick(dt)
			}
			assert.Equal(t, !c.resumed, r.nav.stopped)
			assert.Equal(t, !c.resumed, r.agent.Colliding())
			assert.Equal(t, !c.resumed, r.agent.ResumePending())
		})
	}
}

func TestCollisionIgnoresOtherTags(t *testing.T) {
	r, err := newRig(testConfig(mgl64.Vec3{0, 0, -20}), mgl64.Vec3{})
	require.NoError(t, err)
	r.agent.OnContactBegin(Tag("wall"))
	assert.False(t, r.agent.Colliding())
	assert.False(t, r.nav.stopped)
}

func TestCollisionPickupSuspends(t *testing.T) {
	r, err := newRig(testConfig(mgl64.Vec3{0, 0, -20}), mgl64.Vec3{})
	require.NoError(t, err)
	r.agent.OnContactBegin(TagPickup)
	assert.True(t, r.agent.Colliding())
	assert.Equal(t, State{ModePatrol, PhaseMoving}, r.agent.State())
}

func TestCollisionSuspensionOverridesMove(t *testing.T) {
	r, err := newRig(testConfig(mgl64.Vec3{0, 0, -20}), mgl64.Vec3{})
	require.NoError(t, err)
	r.agent.OnContactBegin(TagPickup)
	for i := 0; i < 5; i++ {
		r.step(tick)
	}
	assert.True(t, r.nav.stopped)
	assert.Equal(t, mgl64.Vec3{}, r.nav.pos)
}

func TestRecontactCancelsPendingResume(t *testing.T) {
	r, err := newRig(testConfig(mgl64.Vec3{0, 0, -20}), mgl64.Vec3{})
	require.NoError(t, err)

	r.agent.OnContactBegin(TagPlayer)
	r.agent.OnContactEnd(TagPlayer)
	r.agent.Tick(300 * time.Millisecond)
	r.agent.OnContactBegin(TagPlayer)
	assert.False(t, r.agent.ResumePending())

	r.agent.Tick(time.Second)
	assert.True(t, r.agent.Colliding())
	assert.True(t, r.nav.stopped)

	r.agent.OnContactEnd(TagPlayer)
	r.agent.Tick(500 * time.Millisecond)
	assert.False(t, r.agent.Colliding())
	assert.False(t, r.nav.stopped)
}

func TestRepeatedContactEndSchedulesOnce(t *testing.T) {
	r, err := newRig(testConfig(mgl64.Vec3{0, 0, -20}), mgl64.Vec3{})
	require.NoError(t, err)

	r.agent.OnContactBegin(TagPlayer)
	r.agent.OnContactEnd(TagPlayer)
	r.agent.Tick(400 * time.Millisecond)
	r.agent.OnContactEnd(TagPickup)
	r.agent.Tick(100 * time.Millisecond)
	assert.False(t, r.agent.Colliding(), "the first schedule is kept")
}

func TestContactEndWithoutBeginIsIgnored(t *testing.T) {
	r, err := newRig(testConfig(mgl64.Vec3{0, 0, -20}), mgl64.Vec3{})
	require.NoError(t, err)
	r.agent.OnContactEnd(TagPlayer)
	assert.False(t, r.agent.ResumePending())
}

func TestDeferredQueue(t *testing.T) {
	var q deferredQueue
	var fired []string
	rec := func(name string) func() {
		return func() { fired = append(fired, name) }
	}

	q.schedule("b", 2*time.Second, rec("b"))
	q.schedule("a", time.Second, rec("a"))
	q.schedule("c", 3*time.Second, rec("c"))
	q.schedule("b", 4*time.Second, rec("b2"))
	assert.True(t, q.pending("b"))
	assert.True(t, q.cancel("c"))
	assert.False(t, q.cancel("c"))

	q.run(3 * time.Second)
	assert.Equal(t, []string{"a"}, fired)
	q.run(4 * time.Second)
	assert.Equal(t, []string{"a", "b2"}, fired)
	assert.False(t, q.pending("b"))
}

func TestDeferredQueueRunsInTimeOrder(t *testing.T) {
	var q deferredQueue
	var fired []string
	q.schedule("late", 2*time.Second, func() { fired = append(fired, "late") })
	q.schedule("early", time.Second, func() { fired = append(fired, "early") })
	q.schedule("same", time.Second, func() { fired = append(fired, "same") })
	q.run(5 * time.Second)
	assert.Equal(t, []string{"early", "same", "late"}, fired)
}

func TestPlayerContactCatchesBeforeArrival(t *testing.T) {
	r, err := newRig(testConfig(mgl64.Vec3{0, 0, -20}), mgl64.Vec3{})
	require.NoError(t, err)
	r.spatial.targets = []Target{&fakeTarget{pos: mgl64.Vec3{0, 0, 4}, tag: TagPlayer}}
	r.agent.Tick(tick)
	require.Equal(t, State{ModeChase, PhasePursuing}, r.agent.State())
	require.Greater(t, r.nav.RemainingDistance(), r.nav.StoppingDistance())

	r.agent.OnContactBegin(TagPlayer)
	assert.Equal(t, State{ModeChase, PhaseCaught}, r.agent.State())
	assert.True(t, r.nav.stopped)

	r.agent.Tick(tick)
	assert.Equal(t, PhaseCaught, r.agent.State().Phase)
	assert.Equal(t, 4*time.Second-tick, r.agent.Wait())
	assert.Equal(t, 0.0, r.nav.speed)
}

func TestResumeDelayCountsFromLastTick(t *testing.T) {
	r, err := newRig(testConfig(mgl64.Vec3{0, 0, -20}), mgl64.Vec3{})
	require.NoError(t, err)
	r.agent.Tick(100 * time.Millisecond)

	r.agent.OnContactBegin(TagPickup)
	r.agent.OnContactEnd(TagPickup)
	r.agent.Tick(400 * time.Millisecond)
	assert.True(t, r.agent.ResumePending())

	r.agent.Tick(100 * time.Millisecond)
	assert.False(t, r.agent.ResumePending())
	assert.False(t, r.agent.Colliding())
}
