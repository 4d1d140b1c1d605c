package ecs

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/puffball/common"
	"github.com/milk9111/puffball/ecs/component"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypePlayer
	collisionTypeEnemy
	collisionTypeGroundSensor
)

const groundGraceTicks = 6

// PhysicsWorld owns the Chipmunk space, the static level geometry, and the
// ground-contact sensors. Gameplay overlap rules live in the Router; the
// space only resolves solid contact and gravity.
type PhysicsWorld struct {
	space         *cp.Space
	handlersReady bool

	groundToEntity map[*cp.Shape]entityID
	entityStates   map[entityID]*component.CollisionState
}

// NewPhysicsWorld creates a space with world gravity. Static geometry is
// added by the scene through AddStaticBox.
func NewPhysicsWorld() *PhysicsWorld {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: common.Gravity})

	pw := &PhysicsWorld{
		space:          space,
		groundToEntity: make(map[*cp.Shape]entityID),
		entityStates:   make(map[entityID]*component.CollisionState),
	}
	pw.setupHandlers()
	return pw
}

// AddStaticBox adds solid level geometry. x and y are the box center.
func (pw *PhysicsWorld) AddStaticBox(x, y, width, height float64) {
	if pw == nil || pw.space == nil || width <= 0 || height <= 0 {
		return
	}
	bb := cp.BB{
		L: x - width/2,
		B: y - height/2,
		R: x + width/2,
		T: y + height/2,
	}
	shape := cp.NewBox2(pw.space.StaticBody, bb, 0)
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypeSolid)
	pw.space.AddShape(shape)
}

// AddBody creates a dynamic box body for an entity, with a ground sensor
// strip under it feeding the entity's CollisionState.
func (pw *PhysicsWorld) AddBody(e Entity, t *component.Transform, width, height float64, tags component.Tags, gravityEnabled bool) *component.PhysicsBody {
	if pw == nil || pw.space == nil || t == nil || width <= 0 || height <= 0 {
		return nil
	}

	mass := 1.0
	body := cp.NewBody(mass, math.Inf(1)) // fixed rotation
	body.SetPosition(cp.Vector{X: t.X, Y: t.Y})

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(0)
	if tags.Has(component.TagPlayer) {
		shape.SetCollisionType(collisionTypePlayer)
	} else if tags.Has(component.TagEnemy) {
		shape.SetCollisionType(collisionTypeEnemy)
	}

	if !gravityEnabled {
		body.SetVelocityUpdateFunc(func(b *cp.Body, gravity cp.Vector, damping float64, dt float64) {
			cp.BodyUpdateVelocity(b, cp.Vector{}, damping, dt)
		})
	}

	pw.space.AddBody(body)
	pw.space.AddShape(shape)

	groundBB := cp.BB{
		L: -width * 0.45,
		B: height / 2,
		R: width * 0.45,
		T: height/2 + 2,
	}
	ground := cp.NewBox2(body, groundBB, 0)
	ground.SetSensor(true)
	ground.SetCollisionType(collisionTypeGroundSensor)
	pw.space.AddShape(ground)
	pw.groundToEntity[ground] = e.id()

	return &component.PhysicsBody{
		Body:        body,
		Shape:       shape,
		GroundShape: ground,
		Width:       width,
		Height:      height,
	}
}

// SetEntityState registers the collision state the ground handler writes to.
func (pw *PhysicsWorld) SetEntityState(e Entity, state *component.CollisionState) {
	if pw == nil {
		return
	}
	if state == nil {
		delete(pw.entityStates, e.id())
		return
	}
	pw.entityStates[e.id()] = state
}

// RemoveBody detaches an entity's body and shapes from the space.
func (pw *PhysicsWorld) RemoveBody(e Entity, b *component.PhysicsBody) {
	if pw == nil || pw.space == nil || b == nil || b.Body == nil {
		return
	}
	if b.GroundShape != nil {
		delete(pw.groundToEntity, b.GroundShape)
		pw.space.RemoveShape(b.GroundShape)
	}
	if b.Shape != nil {
		pw.space.RemoveShape(b.Shape)
	}
	pw.space.RemoveBody(b.Body)
	delete(pw.entityStates, e.id())
}

// Step advances the physics simulation.
func (pw *PhysicsWorld) Step(dt float64) {
	if pw == nil || pw.space == nil {
		return
	}
	pw.space.Step(dt)
}

func (pw *PhysicsWorld) setupHandlers() {
	if pw == nil || pw.handlersReady || pw.space == nil {
		return
	}

	groundHandler := pw.space.NewCollisionHandler(collisionTypeGroundSensor, collisionTypeSolid)
	groundHandler.UserData = pw
	groundHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*PhysicsWorld)
		if !ok || world == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		id, ok := world.groundToEntity[shapeA]
		if !ok {
			id, ok = world.groundToEntity[shapeB]
		}
		if !ok {
			return true
		}
		if state := world.entityStates[id]; state != nil {
			state.Grounded = true
			state.GroundGrace = groundGraceTicks
		}
		return true
	}

	// Player and enemy bodies pass through each other; the overlap itself
	// is the Router's business.
	passThrough := pw.space.NewCollisionHandler(collisionTypePlayer, collisionTypeEnemy)
	passThrough.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		return false
	}

	pw.handlersReady = true
}
