package component

// Transform stores an entity's world position. X and Y are the center of
// the entity's bounds.
type Transform struct {
	X float64
	Y float64
}

var TransformComponent = NewComponent[*Transform]()

// Velocity moves a kinematic entity; the physics system integrates it every
// tick. Entities with a dynamic body carry their velocity on the body
// instead.
type Velocity struct {
	X float64
	Y float64
}

var VelocityComponent = NewComponent[*Velocity]()

// Collider is the axis-aligned bounds used by the collision event router.
// Offsets are relative to the transform center. A disabled collider takes
// part in no overlaps; any active overlaps end on the tick it is disabled.
type Collider struct {
	Width    float64
	Height   float64
	OffsetX  float64
	OffsetY  float64
	Disabled bool
}

var ColliderComponent = NewComponent[*Collider]()

// CollisionState mirrors physics contact facts for behavior systems. The
// ground sensor refreshes GroundGrace on contact; Grounded stays true for a
// few ticks after leaving ground so landing checks are stable.
type CollisionState struct {
	Grounded    bool
	GroundGrace int
}

var CollisionStateComponent = NewComponent[*CollisionState]()
