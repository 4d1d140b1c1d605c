package component

import "github.com/milk9111/puffball/fsm"

// Patroller machine state names.
const (
	PatrollerIdle      = "idle"
	PatrollerMoveLeft  = "move_left"
	PatrollerMoveRight = "move_right"
)

// Patroller walks left then right forever with a fixed duration per leg.
type Patroller struct {
	MoveSpeed float64
	IdleTicks int
	MoveTicks int

	Machine *fsm.Machine
}

var PatrollerComponent = NewComponent[*Patroller]()

// Jumper machine state names.
const (
	JumperIdle = "idle"
	JumperJump = "jump"
)

// Jumper waits, applies one upward impulse, and returns to idle on the
// first tick it is grounded again. LeftGround guards the landing check
// against ground-contact grace lingering from before the impulse.
type Jumper struct {
	IdleTicks int
	JumpSpeed float64

	LeftGround bool

	Machine *fsm.Machine
}

var JumperComponent = NewComponent[*Jumper]()

// Flyer has no machine: it is spawned with a constant horizontal velocity
// and self-destructs outside the play margin.
type Flyer struct {
	Speed float64
}

var FlyerComponent = NewComponent[*Flyer]()
