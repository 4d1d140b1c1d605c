package component

import "github.com/milk9111/puffball/fsm"

// Player inhale machine state names.
const (
	PlayerIdle     = "idle"
	PlayerInhaling = "inhaling"
	PlayerFull     = "full"
)

// Player holds the player's tuning, facing, jump bookkeeping, and the
// three-state inhale machine. Horizontal movement and jumping are driven by
// input every tick regardless of the machine's state.
type Player struct {
	MoveSpeed  float64
	JumpSpeed  float64
	PullSpeed  float64
	ShootSpeed float64
	// ShootCooldownTicks keeps the machine in Full after a shot until the
	// projectile has departed.
	ShootCooldownTicks int

	MaxJumps  int
	JumpsLeft int

	FacingLeft bool
	// ShotFired blocks a second shot during the post-shot cooldown while
	// the machine is still in Full.
	ShotFired bool

	Machine *fsm.Machine
}

var PlayerComponent = NewComponent[*Player]()

// CaptureZone marks the directional sensor region attached to the player.
// Its collider is enabled only while the player is Inhaling.
type CaptureZone struct {
	OffsetX float64
	OffsetY float64
}

var CaptureZoneComponent = NewComponent[*CaptureZone]()

// Inhalable is the transient flag set while an enemy overlaps the active
// capture zone. It is edge-triggered: added once on begin-overlap, removed
// once on end-overlap or when the zone deactivates.
type Inhalable struct{}

var InhalableComponent = NewComponent[Inhalable]()

// Projectile marks a shot star. It travels at fixed speed and is destroyed
// on enemy contact or when it leaves the play margin.
type Projectile struct{}

var ProjectileComponent = NewComponent[Projectile]()
