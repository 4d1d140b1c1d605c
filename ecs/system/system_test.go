package system

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/milk9111/puffball/ecs"
	"github.com/milk9111/puffball/ecs/component"
	"github.com/milk9111/puffball/ecs/entity"
)

// newBehaviorWorld wires the full headless pipeline in scene order. Tests
// drive it by writing the player's input snapshot directly and calling
// w.Update once per tick.
func newBehaviorWorld(next string) *ecs.World {
	w := ecs.NewWorld()
	w.AddSystem(NewPhysicsSystem())
	w.AddSystem(NewCaptureSystem())
	w.AddSystem(NewCollisionSystem())
	w.AddSystem(NewClockSystem())
	w.AddSystem(NewAISystem())
	w.AddSystem(NewPullSystem())
	w.AddSystem(NewPlayerSystem())
	w.AddSystem(NewFlickerSystem())
	RegisterRules(w, next)
	return w
}

// newEnemyWorld wires just enough to run enemy machines.
func newEnemyWorld() *ecs.World {
	w := ecs.NewWorld()
	w.AddSystem(NewPhysicsSystem())
	w.AddSystem(NewClockSystem())
	w.AddSystem(NewAISystem())
	return w
}

func spawnPlayer(t *testing.T, w *ecs.World, x, y float64) (ecs.Entity, *component.Player, *component.Input) {
	t.Helper()
	e, err := entity.NewPlayer(w, x, y)
	require.NoError(t, err)
	require.NoError(t, entity.BindControls(w, e))
	p, ok := ecs.Get(w, e, component.PlayerComponent)
	require.True(t, ok)
	input, ok := ecs.Get(w, e, component.InputComponent)
	require.True(t, ok)
	return e, p, input
}

// spawnStaticEnemy places an enemy with no velocity component so neither
// gravity nor the capture pull moves it.
func spawnStaticEnemy(t *testing.T, w *ecs.World, x, y float64) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	require.NoError(t, ecs.Add(w, e, component.TagsComponent, component.NewTags(component.TagEnemy)))
	require.NoError(t, ecs.Add(w, e, component.TransformComponent, &component.Transform{X: x, Y: y}))
	require.NoError(t, ecs.Add(w, e, component.ColliderComponent, &component.Collider{Width: 20, Height: 20}))
	return e
}

func spawnPullableEnemy(t *testing.T, w *ecs.World, x, y float64) ecs.Entity {
	t.Helper()
	e := spawnStaticEnemy(t, w, x, y)
	require.NoError(t, ecs.Add(w, e, component.VelocityComponent, &component.Velocity{}))
	return e
}

func step(w *ecs.World, n int) {
	for i := 0; i < n; i++ {
		w.Update()
	}
}

func TestPatrollerPacesOnSchedule(t *testing.T) {
	w := newEnemyWorld()
	e, err := entity.NewPatroller(w, 0, 0)
	require.NoError(t, err)
	pat, ok := ecs.Get(w, e, component.PatrollerComponent)
	require.True(t, ok)

	// idle_seconds 1.0 -> 60 ticks, move_seconds 2.0 -> 120 ticks.
	step(w, 59)
	require.Equal(t, component.PatrollerIdle, pat.Machine.Current())
	vx, _ := ecs.VelocityOf(w, e)
	require.Zero(t, vx)

	step(w, 1)
	require.Equal(t, component.PatrollerMoveLeft, pat.Machine.Current())
	vx, _ = ecs.VelocityOf(w, e)
	require.Equal(t, -pat.MoveSpeed, vx)

	step(w, 120)
	require.Equal(t, component.PatrollerMoveRight, pat.Machine.Current())
	vx, _ = ecs.VelocityOf(w, e)
	require.Equal(t, pat.MoveSpeed, vx)

	step(w, 120)
	require.Equal(t, component.PatrollerMoveLeft, pat.Machine.Current())
}

func TestJumperImpulseOnceThenLands(t *testing.T) {
	w := newEnemyWorld()
	e, err := entity.NewJumper(w, 0, 0)
	require.NoError(t, err)
	jmp, ok := ecs.Get(w, e, component.JumperComponent)
	require.True(t, ok)
	cs, ok := ecs.Get(w, e, component.CollisionStateComponent)
	require.True(t, ok)

	step(w, 59)
	require.Equal(t, component.JumperIdle, jmp.Machine.Current())

	step(w, 1)
	require.Equal(t, component.JumperJump, jmp.Machine.Current())
	_, vy := ecs.VelocityOf(w, e)
	require.Equal(t, -jmp.JumpSpeed, vy)

	// Airborne: the impulse is not reapplied and the machine stays put.
	step(w, 10)
	require.Equal(t, component.JumperJump, jmp.Machine.Current())
	_, vy = ecs.VelocityOf(w, e)
	require.Equal(t, -jmp.JumpSpeed, vy)

	// Ground contact: back to idle on the tick it is observed.
	cs.GroundGrace = 1
	step(w, 1)
	require.Equal(t, component.JumperIdle, jmp.Machine.Current())
}

func TestInhaleCaptureAndShoot(t *testing.T) {
	w := newBehaviorWorld("level_2")
	player, p, input := spawnPlayer(t, w, 100, 100)

	// In the zone's reach when facing right, outside the player's body.
	enemy := spawnPullableEnemy(t, w, 140, 100)

	input.Inhale = true
	input.InhalePressed = true
	step(w, 1)
	input.InhalePressed = false
	require.True(t, p.Machine.Is(component.PlayerInhaling))

	// Zone overlap flags the enemy on the next sweep.
	step(w, 1)
	require.True(t, ecs.Has(w, enemy, component.InhalableComponent))

	// The pull drags it into the mouth within a handful of ticks.
	for i := 0; i < 30 && !p.Machine.Is(component.PlayerFull); i++ {
		step(w, 1)
	}
	require.True(t, p.Machine.Is(component.PlayerFull))
	require.True(t, w.Destroyed(enemy))

	// Release while full fires exactly one star.
	input.Inhale = false
	input.InhaleReleased = true
	step(w, 1)
	input.InhaleReleased = false
	require.Len(t, ecs.Query(w, component.ProjectileComponent), 1)
	require.True(t, p.Machine.Is(component.PlayerFull))

	// A second release during the cooldown does not fire again.
	input.InhaleReleased = true
	step(w, 1)
	input.InhaleReleased = false
	require.Len(t, ecs.Query(w, component.ProjectileComponent), 1)

	// Cooldown expiry returns the machine to idle.
	step(w, p.ShootCooldownTicks)
	require.True(t, p.Machine.Is(component.PlayerIdle))

	// The projectile flies in the facing direction.
	shot := ecs.Query(w, component.ProjectileComponent)[0]
	vx, _ := ecs.VelocityOf(w, shot)
	require.Equal(t, p.ShootSpeed, vx)
	st, ok := ecs.Get(w, shot, component.TransformComponent)
	require.True(t, ok)
	require.Greater(t, st.X, 100.0)
	require.True(t, w.Alive(player))
}

func TestContactDamageStacksFlickerAndRestartsOnceDead(t *testing.T) {
	w := newBehaviorWorld("level_2")
	player, _, _ := spawnPlayer(t, w, 100, 100)
	enemy := spawnStaticEnemy(t, w, 110, 100)
	et, _ := ecs.Get(w, enemy, component.TransformComponent)

	h, ok := ecs.Get(w, player, component.HealthComponent)
	require.True(t, ok)
	require.Equal(t, 3, h.Current)

	step(w, 1)
	require.Equal(t, 2, h.Current)
	f, ok := ecs.Get(w, player, component.FlickerComponent)
	require.True(t, ok)
	require.Len(t, f.Spans, 1)

	// Held contact is a single hit.
	step(w, 5)
	require.Equal(t, 2, h.Current)

	// Leave and return: a fresh edge, a second hit, a stacked span.
	et.X = 400
	step(w, 1)
	et.X = 110
	step(w, 1)
	require.Equal(t, 1, h.Current)
	require.Len(t, f.Spans, 2)

	// Third hit is lethal: one restart event, player torn down with its
	// capture zone.
	et.X = 400
	step(w, 1)
	et.X = 110
	step(w, 1)
	require.Equal(t, 0, h.Current)
	require.True(t, w.Destroyed(player))

	restarts := 0
	for _, ev := range w.Events().Drain() {
		if ev.Type == ecs.EventSceneRestart {
			restarts++
		}
	}
	require.Equal(t, 1, restarts)
	require.Empty(t, ecs.Query(w, component.CaptureZoneComponent))

	// A dead player takes no further hits and pushes no further events.
	et.X = 400
	step(w, 1)
	et.X = 110
	step(w, 2)
	require.Empty(t, w.Events().Drain())
}

func TestProjectileClaimsOneEnemyOfTwo(t *testing.T) {
	w := ecs.NewWorld()
	w.AddSystem(NewCollisionSystem())
	RegisterRules(w, "level_2")

	shot, err := entity.NewProjectile(w, 0, 0, 0)
	require.NoError(t, err)
	first := spawnStaticEnemy(t, w, 6, 0)
	second := spawnStaticEnemy(t, w, -6, 0)

	step(w, 1)

	require.True(t, w.Destroyed(shot))
	require.True(t, w.Destroyed(first))
	require.True(t, w.Alive(second), "a spent projectile must not claim a second enemy")
}

func TestTwoProjectilesOneEnemyDestroyOnce(t *testing.T) {
	w := ecs.NewWorld()
	w.AddSystem(NewCollisionSystem())
	RegisterRules(w, "level_2")

	first, err := entity.NewProjectile(w, -6, 0, 0)
	require.NoError(t, err)
	second, err := entity.NewProjectile(w, 6, 0, 0)
	require.NoError(t, err)
	enemy := spawnStaticEnemy(t, w, 0, 0)

	step(w, 1)

	// The enemy is claimed exactly once; the claiming shot dies with it
	// and the other flies on.
	require.True(t, w.Destroyed(enemy))
	require.True(t, w.Destroyed(first))
	require.True(t, w.Alive(second))
}

func TestDoubleJumpConsumesAndReplenishes(t *testing.T) {
	w := newBehaviorWorld("level_2")
	player, p, input := spawnPlayer(t, w, 100, 100)
	cs, ok := ecs.Get(w, player, component.CollisionStateComponent)
	require.True(t, ok)

	// Grounded for exactly one tick: the first jump leaves the ground.
	cs.GroundGrace = 1
	input.JumpPressed = true
	step(w, 1)
	require.Equal(t, p.MaxJumps-1, p.JumpsLeft)
	_, vy := ecs.VelocityOf(w, player)
	require.Equal(t, -p.JumpSpeed, vy)

	// Second jump mid-air.
	step(w, 1)
	require.Zero(t, p.JumpsLeft)

	// Third press is ignored.
	step(w, 1)
	require.Zero(t, p.JumpsLeft)
	input.JumpPressed = false

	// Falling onto the ground replenishes the full count.
	ecs.SetVelocityY(w, player, 200)
	cs.GroundGrace = 1
	step(w, 1)
	require.Equal(t, p.MaxJumps, p.JumpsLeft)
}

func TestGraceWindowJumpIsNotRefunded(t *testing.T) {
	w := newBehaviorWorld("level_2")
	player, p, input := spawnPlayer(t, w, 100, 100)
	cs, ok := ecs.Get(w, player, component.CollisionStateComponent)
	require.True(t, ok)

	// Fresh ground contact holds the grounded flag through the grace
	// window; jumping spends it.
	cs.GroundGrace = 6
	input.JumpPressed = true
	step(w, 1)
	require.Equal(t, p.MaxJumps-1, p.JumpsLeft)
	require.False(t, cs.Grounded)
	require.Zero(t, cs.GroundGrace)

	// Second jump mid-air.
	step(w, 1)
	require.Zero(t, p.JumpsLeft)

	// Holding jump through the rest of the window buys nothing more.
	step(w, 6)
	require.Zero(t, p.JumpsLeft)
	_, vy := ecs.VelocityOf(w, player)
	require.Equal(t, -p.JumpSpeed, vy)
	input.JumpPressed = false

	// Descending ground contact is what replenishes.
	ecs.SetVelocityY(w, player, 200)
	cs.GroundGrace = 1
	step(w, 1)
	require.Equal(t, p.MaxJumps, p.JumpsLeft)
}

func TestInhalableFlagFollowsZoneOverlapEdges(t *testing.T) {
	w := newBehaviorWorld("level_2")
	_, p, input := spawnPlayer(t, w, 100, 100)
	enemy := spawnStaticEnemy(t, w, 160, 100)

	input.Inhale = true
	input.InhalePressed = true
	step(w, 2)
	input.InhalePressed = false
	require.True(t, ecs.Has(w, enemy, component.InhalableComponent))

	// Release: the zone goes dark and the flag drops on the next sweep.
	input.Inhale = false
	input.InhaleReleased = true
	step(w, 1)
	input.InhaleReleased = false
	require.True(t, p.Machine.Is(component.PlayerIdle))
	step(w, 1)
	require.False(t, ecs.Has(w, enemy, component.InhalableComponent))

	// A new inhale session re-flags the same enemy.
	input.Inhale = true
	input.InhalePressed = true
	step(w, 2)
	input.InhalePressed = false
	require.True(t, ecs.Has(w, enemy, component.InhalableComponent))
}

func TestPullOverridesEnemyMoveState(t *testing.T) {
	w := newBehaviorWorld("level_2")
	_, p, input := spawnPlayer(t, w, 100, 100)

	e, err := entity.NewPatroller(w, 150, 100)
	require.NoError(t, err)
	pat, ok := ecs.Get(w, e, component.PatrollerComponent)
	require.True(t, ok)
	pat.Machine.Enter(component.PatrollerMoveRight)

	input.Inhale = true
	input.InhalePressed = true
	step(w, 2)
	input.InhalePressed = false

	// The patroller keeps marching in its machine, but a flagged enemy
	// moves at the pull velocity, not its own.
	require.True(t, ecs.Has(w, e, component.InhalableComponent))
	require.Equal(t, component.PatrollerMoveRight, pat.Machine.Current())
	vx, _ := ecs.VelocityOf(w, e)
	require.Equal(t, -p.PullSpeed, vx)
}

func TestReleaseRestoresEnemyVelocity(t *testing.T) {
	w := newBehaviorWorld("level_2")
	_, p, input := spawnPlayer(t, w, 100, 100)
	drifter := spawnPullableEnemy(t, w, 160, 100)
	flyer, err := entity.NewFlyer(w, 168, 100, -110)
	require.NoError(t, err)

	input.Inhale = true
	input.InhalePressed = true
	step(w, 2)
	input.InhalePressed = false
	require.True(t, ecs.Has(w, drifter, component.InhalableComponent))
	require.True(t, ecs.Has(w, flyer, component.InhalableComponent))
	vx, _ := ecs.VelocityOf(w, drifter)
	require.Equal(t, -p.PullSpeed, vx)

	// Release before anything reaches the mouth: the flags drop and the
	// pull velocity goes with them. The flyer resumes its cruise speed.
	input.Inhale = false
	input.InhaleReleased = true
	step(w, 1)
	input.InhaleReleased = false
	step(w, 1)
	require.False(t, ecs.Has(w, drifter, component.InhalableComponent))
	require.False(t, ecs.Has(w, flyer, component.InhalableComponent))
	vx, _ = ecs.VelocityOf(w, drifter)
	require.Zero(t, vx)
	vx, _ = ecs.VelocityOf(w, flyer)
	require.Equal(t, -110.0, vx)
}

func TestFullContactWithFlaggedEnemyDoesNoDamage(t *testing.T) {
	w := newBehaviorWorld("level_2")
	player, p, input := spawnPlayer(t, w, 100, 100)
	// Nearly abreast, so both reach the mouth on the same sweep. Only one
	// fits; the other arrives flagged at a mouth that is already full.
	near := spawnPullableEnemy(t, w, 140, 100)
	trailing := spawnPullableEnemy(t, w, 141, 100)

	h, _ := ecs.Get(w, player, component.HealthComponent)

	input.Inhale = true
	input.InhalePressed = true
	step(w, 1)
	input.InhalePressed = false
	for i := 0; i < 40 && !p.Machine.Is(component.PlayerFull); i++ {
		step(w, 1)
	}
	require.True(t, p.Machine.Is(component.PlayerFull))
	require.True(t, w.Destroyed(near))

	// The second contact found the mouth full but the enemy still
	// flagged: ignored, not a hit.
	step(w, 10)
	require.Equal(t, h.Initial, h.Current)
	require.True(t, w.Alive(trailing))
}

func TestExitContactPushesNextScene(t *testing.T) {
	w := newBehaviorWorld("level_2")
	spawnPlayer(t, w, 100, 100)
	_, err := entity.NewExitRegion(w, 110, 100, 40, 40)
	require.NoError(t, err)

	step(w, 1)

	events := w.Events().Drain()
	require.Len(t, events, 1)
	require.Equal(t, ecs.EventSceneNext, events[0].Type)
	require.Equal(t, "level_2", events[0].Data)
}

func TestBoundsCullsAndRestarts(t *testing.T) {
	w := ecs.NewWorld()
	w.AddSystem(NewBoundsSystem(500, -100, 1000))

	player, err := entity.NewPlayer(w, 100, 600)
	require.NoError(t, err)
	enemy := spawnStaticEnemy(t, w, -200, 100)

	w.Update()

	require.True(t, w.Destroyed(player))
	require.True(t, w.Destroyed(enemy))
	events := w.Events().Drain()
	require.Len(t, events, 1)
	require.Equal(t, ecs.EventSceneRestart, events[0].Type)
}

func TestReplayIsDeterministic(t *testing.T) {
	build := func() (*ecs.World, ecs.Entity, *component.Input, []ecs.Entity) {
		w := newBehaviorWorld("level_2")
		player, _, input := spawnPlayer(t, w, 100, 100)
		pat, err := entity.NewPatroller(w, 400, 100)
		require.NoError(t, err)
		jmp, err := entity.NewJumper(w, 700, 100)
		require.NoError(t, err)
		return w, player, input, []ecs.Entity{player, pat, jmp}
	}

	script := func(input *component.Input, tick int) {
		input.MoveX = 0
		input.InhalePressed = false
		input.InhaleReleased = false
		switch {
		case tick < 90:
			input.MoveX = 1
		case tick == 90:
			input.Inhale = true
			input.InhalePressed = true
		case tick == 200:
			input.Inhale = false
			input.InhaleReleased = true
		case tick > 240:
			input.MoveX = -1
		}
	}

	run := func() []component.Transform {
		w, _, input, tracked := build()
		for tick := 1; tick <= 400; tick++ {
			script(input, tick)
			w.Update()
		}
		var out []component.Transform
		for _, e := range tracked {
			if tr, ok := ecs.Get(w, e, component.TransformComponent); ok {
				out = append(out, *tr)
			} else {
				out = append(out, component.Transform{})
			}
		}
		return out
	}

	require.Equal(t, run(), run())
}

func TestFlickerSpansExpireIndependently(t *testing.T) {
	w := ecs.NewWorld()
	w.AddSystem(NewFlickerSystem())

	e := w.CreateEntity()
	f := &component.Flicker{Spans: []component.FlickerSpan{
		{Frames: 8, Interval: 4, On: true},
		{Frames: 16, Interval: 4, On: true},
	}}
	require.NoError(t, ecs.Add(w, e, component.FlickerComponent, f))

	step(w, 8)
	got, ok := ecs.Get(w, e, component.FlickerComponent)
	require.True(t, ok)
	require.Len(t, got.Spans, 1)

	step(w, 8)
	require.False(t, ecs.Has(w, e, component.FlickerComponent))
}
