package level

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/milk9111/puffball/clock"
	"github.com/milk9111/puffball/common"
	"github.com/milk9111/puffball/ecs"
	"github.com/milk9111/puffball/ecs/component"
	"github.com/milk9111/puffball/ecs/entity"
	"github.com/milk9111/puffball/ecs/system"
	"github.com/milk9111/puffball/prefabs"
)

// Spawn categories the orchestrator knows how to service.
const (
	CategoryPatroller = "patroller"
	CategoryJumper    = "jumper"
	CategoryFlyer     = "flyer"
)

// Transition is the orchestrator-level outcome of a tick, if any.
type Transition struct {
	Restart bool
	Next    string
}

// Scene owns one live world: the orchestrator. It spawns the scene's
// entities, runs the periodic flyer spawner, and services restart and
// next-scene events after each tick.
type Scene struct {
	ctx    *Context
	world  *ecs.World
	player ecs.Entity
	rng    *rand.Rand
	timers clock.Group
}

// NewScene builds a world for ctx. Systems passed in pre run before the
// simulation systems each tick; the game loop injects the input poller
// here, tests inject nothing and write input snapshots directly.
func NewScene(ctx *Context, pre ...ecs.System) (*Scene, error) {
	if ctx == nil {
		return nil, fmt.Errorf("level: nil context")
	}

	seed := ctx.Seed
	if seed == 0 {
		seed = 1
	}
	s := &Scene{
		ctx: ctx,
		rng: rand.New(rand.NewSource(seed)),
	}

	w := ecs.NewWorld()
	s.world = w

	pw := ecs.NewPhysicsWorld()
	for _, p := range ctx.Platforms {
		pw.AddStaticBox(p.X, p.Y, p.Width, p.Height)
	}
	addBorders(pw, ctx.Bounds)
	w.SetPhysics(pw)

	for _, sys := range pre {
		w.AddSystem(sys)
	}
	w.AddSystem(system.NewPhysicsSystem())
	w.AddSystem(system.NewCaptureSystem())
	w.AddSystem(system.NewCollisionSystem())
	w.AddSystem(system.NewClockSystem())
	w.AddSystem(system.NewAISystem())
	w.AddSystem(system.NewPullSystem())
	w.AddSystem(system.NewPlayerSystem())
	w.AddSystem(system.NewFlickerSystem())
	w.AddSystem(system.NewBoundsSystem(
		ctx.FallY,
		ctx.Bounds.X-ctx.Margin,
		ctx.Bounds.X+ctx.Bounds.Width+ctx.Margin,
	))

	system.RegisterRules(w, ctx.Next)

	player, err := entity.NewPlayer(w, ctx.PlayerStart.X, ctx.PlayerStart.Y)
	if err != nil {
		return nil, fmt.Errorf("level %s: spawn player: %w", ctx.Name, err)
	}
	if err := entity.BindControls(w, player); err != nil {
		return nil, fmt.Errorf("level %s: %w", ctx.Name, err)
	}
	s.player = player

	if err := s.spawnGroups(); err != nil {
		return nil, err
	}

	for _, b := range ctx.Exits {
		if _, err := entity.NewExitRegion(w, b.X, b.Y, b.Width, b.Height); err != nil {
			return nil, fmt.Errorf("level %s: spawn exit: %w", ctx.Name, err)
		}
	}

	if err := s.startFlyerSpawner(); err != nil {
		return nil, err
	}

	return s, nil
}

// addBorders walls off the left and right edges of the scene bounds so
// solid bodies cannot leave sideways. The bottom stays open; falling out is
// the fall-threshold's business.
func addBorders(pw *ecs.PhysicsWorld, b Box) {
	const thickness = 64.0
	pw.AddStaticBox(b.X-thickness/2, b.Y+b.Height/2, thickness, b.Height*3)
	pw.AddStaticBox(b.X+b.Width+thickness/2, b.Y+b.Height/2, thickness, b.Height*3)
}

func (s *Scene) spawnGroups() error {
	for _, p := range s.points(CategoryPatroller) {
		if _, err := entity.NewPatroller(s.world, p.X, p.Y); err != nil {
			return fmt.Errorf("level %s: spawn patroller: %w", s.ctx.Name, err)
		}
	}
	for _, p := range s.points(CategoryJumper) {
		if _, err := entity.NewJumper(s.world, p.X, p.Y); err != nil {
			return fmt.Errorf("level %s: spawn jumper: %w", s.ctx.Name, err)
		}
	}
	return nil
}

// points returns a category's spawn points; a missing category is a logged
// no-op, never an error.
func (s *Scene) points(category string) []Point {
	points, ok := s.ctx.Spawns[category]
	if !ok || len(points) == 0 {
		log.Printf("level %s: no spawn points for %q", s.ctx.Name, category)
		return nil
	}
	return points
}

func (s *Scene) startFlyerSpawner() error {
	points := s.points(CategoryFlyer)
	if len(points) == 0 {
		return nil
	}

	spec, err := prefabs.LoadFlyerSpec()
	if err != nil {
		return fmt.Errorf("level %s: %w", s.ctx.Name, err)
	}
	if len(spec.Speeds) == 0 {
		log.Printf("level %s: flyer spec has no speeds, spawner disabled", s.ctx.Name)
		return nil
	}
	interval := common.SecondsToTicks(spec.SpawnInterval)

	for _, p := range points {
		p := p
		timer := s.world.Clock().Every(interval, func() {
			speed := spec.Speeds[s.rng.Intn(len(spec.Speeds))]
			if _, err := entity.NewFlyer(s.world, p.X, p.Y, speed); err != nil {
				log.Printf("level %s: spawn flyer: %v", s.ctx.Name, err)
			}
		})
		s.timers.Add(timer)
	}
	return nil
}

// World returns the scene's live world.
func (s *Scene) World() *ecs.World {
	return s.world
}

// Player returns the live player handle.
func (s *Scene) Player() ecs.Entity {
	return s.player
}

// Input returns the player's input snapshot for external drivers.
func (s *Scene) Input() *component.Input {
	input, _ := ecs.Get(s.world, s.player, component.InputComponent)
	return input
}

// Step runs one tick and reports a scene transition, if one was requested.
func (s *Scene) Step() *Transition {
	s.world.Update()

	for _, ev := range s.world.Events().Drain() {
		switch ev.Type {
		case ecs.EventSceneRestart:
			s.timers.Cancel()
			return &Transition{Restart: true}
		case ecs.EventSceneNext:
			name, _ := ev.Data.(string)
			s.timers.Cancel()
			return &Transition{Next: name}
		}
	}
	return nil
}

// Context returns the scene's context.
func (s *Scene) Context() *Context {
	return s.ctx
}
