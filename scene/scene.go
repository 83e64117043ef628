// Package scene assembles a playable guard scene: the physics world, the
// navigation grid, a guard and a scripted player, ticked in a fixed order.
package scene

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/milk9111/patrolai/common"
	"github.com/milk9111/patrolai/guard"
	"github.com/milk9111/patrolai/nav"
	"github.com/milk9111/patrolai/physics"
	"github.com/milk9111/patrolai/prefabs"
)

const (
	defaultCellSize     = 0.5
	defaultRadius       = 0.5
	defaultMaterial     = "steelblue"
	defaultPlayerRadius = 0.5
)

type options struct {
	logger *zap.Logger
	hook   func(guard.Transition)
}

type Option func(*options)

func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithTransitionHook observes every guard transition.
func WithTransitionHook(fn func(guard.Transition)) Option {
	return func(o *options) { o.hook = fn }
}

// Scene is one guard, one player and the static world they share.
type Scene struct {
	Name      string
	Bounds    prefabs.BoundsSpec
	World     *physics.World
	Grid      *nav.Grid
	Nav       *nav.Agent
	Guard     *guard.Agent
	GuardBody *physics.Body
	Visual    *Material
	Player    *Player
	Trigger   float64
	Obstacles []*physics.Body
	Pickups   []*physics.Body

	scheduler *Scheduler
	ticks     int
	logger    *zap.Logger
}

// Load reads a scene file, its guard prefab and its player script.
func Load(path string, opts ...Option) (*Scene, error) {
	spec, err := prefabs.LoadSceneSpec(path)
	if err != nil {
		return nil, err
	}
	gs, err := prefabs.LoadGuardSpec(spec.Guard.Prefab)
	if err != nil {
		return nil, err
	}
	var script *PlayerScript
	if spec.Player.Script != "" {
		script, err = LoadPlayerScript(spec.Player.Script)
		if err != nil {
			return nil, err
		}
	}
	return Build(spec, gs, script, opts...)
}

// Build wires a scene from already decoded specs. script may be nil for a
// stationary player.
func Build(spec prefabs.SceneSpec, gs prefabs.GuardSpec, script *PlayerScript, opts ...Option) (*Scene, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	if len(spec.Guard.Waypoints) > 0 {
		gs.Route = spec.Guard.Waypoints
	}
	cfg, err := gs.Config()
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	s := &Scene{
		Name:   spec.Name,
		Bounds: spec.Bounds,
		logger: o.logger,
	}
	s.World = physics.NewWorld(physics.WithLogger(o.logger.Named("physics")))
	for _, ob := range spec.Obstacles {
		s.Obstacles = append(s.Obstacles, s.World.AddObstacle(ob.Center.Vec3(), ob.HalfWidth, ob.HalfDepth))
	}
	for _, p := range spec.Pickups {
		r := p.Radius
		if r <= 0 {
			r = defaultRadius
		}
		s.Pickups = append(s.Pickups, s.World.AddPickup(p.Position.Vec3(), r))
	}

	cellSize := spec.CellSize
	if cellSize <= 0 {
		cellSize = defaultCellSize
	}
	clearance := spec.Clearance
	s.Grid = nav.NewGrid(spec.Bounds.MinX, spec.Bounds.MinZ, spec.Bounds.MaxX, spec.Bounds.MaxZ, cellSize, func(x, z float64) bool {
		return s.World.Blocked(x, z, clearance)
	})

	playerRadius := spec.Player.Radius
	if playerRadius <= 0 {
		playerRadius = defaultPlayerRadius
	}
	s.Player = &Player{
		body:   s.World.AddPlayer(spec.Player.Start.Vec3(), playerRadius),
		script: script,
		logger: o.logger.Named("player"),
	}

	spawn := cfg.Waypoints[0]
	if spec.Guard.Spawn != nil {
		spawn = spec.Guard.Spawn.Vec3()
	}
	radius := gs.Radius
	if radius <= 0 {
		radius = defaultRadius
	}
	s.Nav = nav.NewAgent(spawn, s.Grid)
	s.GuardBody = s.World.AddAgent(spawn, radius, gs.Trigger)
	s.Trigger = gs.Trigger

	material := gs.Material
	if material == "" {
		material = defaultMaterial
	}
	s.Visual = NewMaterial(material)

	guardOpts := []guard.Option{
		guard.WithLogger(o.logger.Named("guard")),
		guard.WithRotation(common.Yaw(spec.Guard.Yaw)),
	}
	if o.hook != nil {
		guardOpts = append(guardOpts, guard.WithTransitionHook(o.hook))
	}
	s.Guard, err = guard.New(cfg, guard.Collaborators{
		Navigator: s.Nav,
		Spatial:   s.World,
		Visual:    s.Visual,
	}, guardOpts...)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	s.World.SetContactHandler(s.onContact)
	s.scheduler = NewScheduler(
		s.Player,
		SystemFunc(s.stepPhysics),
		SystemFunc(s.Guard.Tick),
		SystemFunc(s.moveGuard),
	)
	return s, nil
}

// Update advances the whole scene by dt.
func (s *Scene) Update(dt time.Duration) {
	s.ticks++
	s.scheduler.Update(dt)
}

func (s *Scene) Ticks() int { return s.ticks }

func (s *Scene) stepPhysics(dt time.Duration) {
	s.GuardBody.SetPosition(s.Nav.Position())
	s.World.Step(dt)
}

func (s *Scene) moveGuard(dt time.Duration) {
	s.Nav.Update(dt)
	s.GuardBody.SetPosition(s.Nav.Position())
}

func (s *Scene) onContact(ev physics.ContactEvent) {
	if ev.Agent != s.GuardBody || ev.Other == nil {
		return
	}
	switch ev.Kind {
	case physics.ContactBegin:
		s.Guard.OnContactBegin(ev.Other.Tag())
	case physics.ContactEnd:
		s.Guard.OnContactEnd(ev.Other.Tag())
	case physics.TriggerEnter:
		if ev.Other.Tag() != guard.TagPlayer {
			return
		}
		s.logger.Info("player entered guard trigger", zap.Int("body", ev.Other.ID()))
		s.Guard.Alert(ev.Other.Position())
	case physics.TriggerExit:
		s.logger.Debug("player left guard trigger", zap.Int("body", ev.Other.ID()))
	}
}

// Snapshot is the per-tick record written by the headless runner.
type Snapshot struct {
	Tick   int          `json:"tick"`
	Player mgl64.Vec3   `json:"player"`
	Guard  guard.Status `json:"guard"`
}

func (s *Scene) Snapshot() Snapshot {
	return Snapshot{
		Tick:   s.ticks,
		Player: s.Player.Position(),
		Guard:  s.Guard.Status(),
	}
}
