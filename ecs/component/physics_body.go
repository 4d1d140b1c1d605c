package component

import "github.com/jakecoffman/cp"

// PhysicsBody links an entity to its dynamic Chipmunk body. The physics
// system syncs the transform from the body position each tick.
type PhysicsBody struct {
	Body        *cp.Body
	Shape       *cp.Shape
	GroundShape *cp.Shape
	Width       float64
	Height      float64
}

var PhysicsBodyComponent = NewComponent[*PhysicsBody]()
