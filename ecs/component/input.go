package component

// Input is the per-frame copy of the input controller output.
type Input struct {
	Horizontal     float64
	Vertical       float64
	HorizontalAxis int
	VerticalAxis   int
	Dash           bool
	Jump           bool
	JumpPressed    bool
}

var InputComponent = NewComponent[Input]()
