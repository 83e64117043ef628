// Package guard drives a single patrolling NPC: it walks a waypoint route,
// watches a view cone for targets, chases what it sees and drops back to the
// route when the target is lost or out-distances it.
package guard

import (
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// Agent is one guard. It is not safe for concurrent use; the host calls Tick
// and the contact callbacks from its update loop.
type Agent struct {
	cfg     Config
	nav     Navigator
	spatial Spatial
	visual  Visual

	logger       *zap.Logger
	onTransition func(Transition)

	state    State
	route    Waypoints
	wait     time.Duration
	now      time.Duration
	rotation mgl64.Quat

	detection    Detection
	lastKnown    mgl64.Vec3
	hasLastKnown bool

	colliding        bool
	originalMaterial string
	deferred         deferredQueue

	last        Transition
	transitions int
}

type Option func(*Agent)

func WithLogger(l *zap.Logger) Option {
	return func(a *Agent) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithTransitionHook registers fn to be called after every state change.
func WithTransitionHook(fn func(Transition)) Option {
	return func(a *Agent) { a.onTransition = fn }
}

// WithRotation sets the spawn orientation.
func WithRotation(q mgl64.Quat) Option {
	return func(a *Agent) { a.rotation = q.Normalize() }
}

// New spawns an agent in Patrol, heading for the first waypoint at walk speed.
func New(cfg Config, c Collaborators, opts ...Option) (*Agent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("guard: new: %w", err)
	}
	if c.Navigator == nil {
		return nil, fmt.Errorf("guard: new: %w", ErrNoNavigator)
	}
	if c.Spatial == nil {
		return nil, fmt.Errorf("guard: new: %w", ErrNoSpatial)
	}

	a := &Agent{
		cfg:      cfg,
		nav:      c.Navigator,
		spatial:  c.Spatial,
		visual:   c.Visual,
		logger:   zap.NewNop(),
		route:    newWaypoints(cfg.Waypoints),
		wait:     cfg.WaitTime,
		rotation: mgl64.QuatIdent(),
	}
	a.cfg.Waypoints = a.route.points
	for _, opt := range opts {
		opt(a)
	}
	if a.visual != nil {
		a.originalMaterial = a.visual.Material()
	}

	a.nav.SetStoppingDistance(cfg.StoppingDistance)
	a.nav.SetSpeed(cfg.WalkSpeed)
	a.nav.Resume()
	a.nav.SetDestination(a.route.Current())
	a.transition(statePatrolMoving, ReasonSpawn)
	return a, nil
}

// Tick advances the agent by dt: due deferred actions, perception, behaviour,
// then facing. A negative dt is treated as zero.
func (a *Agent) Tick(dt time.Duration) {
	if a == nil {
		return
	}
	if dt < 0 {
		dt = 0
	}
	a.now += dt
	a.deferred.run(a.now)

	a.perceive()

	switch a.state.Mode {
	case ModeChase:
		a.chase(dt)
	default:
		a.patrol(dt)
	}

	a.face(dt)
}

// move asks the navigator to travel at speed. While a contact holds the agent
// the navigator stays stopped.
func (a *Agent) move(speed float64) {
	a.nav.SetSpeed(speed)
	if !a.colliding {
		a.nav.Resume()
	}
}

func (a *Agent) halt() {
	a.nav.SetSpeed(0)
	a.nav.Stop()
}

// arrived treats a non-finite remaining distance as still travelling.
func (a *Agent) arrived() bool {
	rem := a.nav.RemainingDistance()
	if math.IsNaN(rem) || math.IsInf(rem, 0) {
		return false
	}
	return rem <= a.nav.StoppingDistance()
}

// transition moves to a new state. An impossible mode and phase pair falls
// back to walking the route.
func (a *Agent) transition(to State, reason Reason) {
	if !to.valid() {
		a.logger.Warn("guard invalid state",
			zap.Stringer("state", to),
			zap.String("reason", string(reason)),
		)
		to = statePatrolMoving
		a.move(a.cfg.WalkSpeed)
		a.nav.SetDestination(a.route.Current())
	}
	from := a.state
	a.state = to
	t := Transition{From: from, To: to, Reason: reason, At: a.now}
	a.last = t
	a.transitions++
	a.logger.Debug("guard transition",
		zap.Stringer("from", from),
		zap.Stringer("to", to),
		zap.String("reason", string(reason)),
		zap.Int("waypoint", a.route.Index()),
		zap.Duration("at", a.now),
	)
	if a.onTransition != nil {
		a.onTransition(t)
	}
}

// enterChase switches from any patrol phase to pursuit.
func (a *Agent) enterChase(reason Reason) bool {
	if a.state.Mode != ModePatrol {
		return false
	}
	a.clearLastKnown()
	a.transition(stateChasePursuing, reason)
	return true
}

// enterPatrol drops out of the chase and heads back to the current waypoint.
func (a *Agent) enterPatrol(reason Reason) bool {
	if a.state.Mode != ModeChase {
		return false
	}
	a.wait = a.cfg.WaitTime
	a.move(a.cfg.WalkSpeed)
	a.nav.SetDestination(a.route.Current())
	a.restoreMaterial()
	a.transition(statePatrolMoving, reason)
	return true
}

func (a *Agent) beginWait() bool {
	if a.state != statePatrolMoving {
		return false
	}
	a.transition(statePatrolWaiting, ReasonArrived)
	return true
}

// resumeRoute ends a stop (waypoint wait or investigation) and walks on.
func (a *Agent) resumeRoute(reason Reason) bool {
	if a.state.Mode != ModePatrol || a.state.Phase == PhaseMoving {
		return false
	}
	a.transition(statePatrolMoving, reason)
	return true
}

func (a *Agent) beginInvestigate(pos mgl64.Vec3) bool {
	if a.state.Mode != ModePatrol {
		return false
	}
	a.lastKnown = pos
	a.hasLastKnown = true
	a.wait = a.cfg.WaitTime
	if a.state.Phase != PhaseInvestigating {
		a.transition(statePatrolInvestigating, ReasonAlerted)
	}
	return true
}

func (a *Agent) markCaught() bool {
	if a.state != stateChasePursuing {
		return false
	}
	a.wait = a.cfg.WaitTime
	a.halt()
	a.transition(stateChaseCaught, ReasonCaught)
	return true
}

func (a *Agent) resumePursuit() bool {
	if a.state != stateChaseCaught {
		return false
	}
	a.wait = a.cfg.WaitTime
	a.transition(stateChasePursuing, ReasonRecovered)
	return true
}

func (a *Agent) clearLastKnown() {
	a.lastKnown = mgl64.Vec3{}
	a.hasLastKnown = false
}

func (a *Agent) restoreMaterial() {
	if a.visual != nil && a.visual.Material() != a.originalMaterial {
		a.visual.SetMaterial(a.originalMaterial)
	}
}

// Alert reports the player near pos without a sighting, e.g. from a proximity
// trigger. A patrolling agent goes to look; a chasing one only notes it.
func (a *Agent) Alert(pos mgl64.Vec3) {
	if a == nil {
		return
	}
	if a.state.Mode == ModeChase {
		a.lastKnown = pos
		a.hasLastKnown = true
		return
	}
	a.beginInvestigate(pos)
}

// MarkCaught halts a pursuing agent for one wait period.
func (a *Agent) MarkCaught() {
	if a == nil {
		return
	}
	a.markCaught()
}

func (a *Agent) State() State { return a.state }

func (a *Agent) Rotation() mgl64.Quat { return a.rotation }

// Detection returns this tick's perception result.
func (a *Agent) Detection() Detection { return a.detection }

func (a *Agent) WaypointIndex() int { return a.route.Index() }

func (a *Agent) Waypoint(i int) mgl64.Vec3 { return a.route.At(i) }

func (a *Agent) WaypointCount() int { return a.route.Len() }

func (a *Agent) Wait() time.Duration { return a.wait }

func (a *Agent) Now() time.Duration { return a.now }

func (a *Agent) Colliding() bool { return a.colliding }

func (a *Agent) LastKnown() (mgl64.Vec3, bool) { return a.lastKnown, a.hasLastKnown }

func (a *Agent) LastTransition() Transition { return a.last }

func (a *Agent) Config() Config {
	c := a.cfg
	c.Waypoints = append([]mgl64.Vec3(nil), a.route.points...)
	return c
}
