package component

type Player struct {
	MoveSpeed  float64
	DashFactor float64
	JumpSpeed  float64
	Gravity    float64

	VelocityY float64
	Grounded  bool
	Moving    bool
	Dashing   bool
}

var PlayerComponent = NewComponent[Player]()
