package component

// Input is the per-tick input snapshot for a controlled entity. The input
// system writes it exactly once per tick; behavior systems only read it, so
// no handler can re-enter the tick loop through an input callback.
type Input struct {
	MoveX float64

	JumpPressed bool

	Inhale         bool
	InhalePressed  bool
	InhaleReleased bool
}

var InputComponent = NewComponent[*Input]()
