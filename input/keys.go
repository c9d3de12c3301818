package input

// Key identifies a keyboard key by its browser-style name.
type Key string

const (
	KeyArrowUp    Key = "ArrowUp"
	KeyArrowDown  Key = "ArrowDown"
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
	KeyW          Key = "w"
	KeyShift      Key = "Shift"
	KeySpace      Key = " "
)

var (
	forwardKeys = []Key{KeyArrowUp, KeyW}
	backKeys    = []Key{KeyArrowDown}
	leftKeys    = []Key{KeyArrowLeft}
	rightKeys   = []Key{KeyArrowRight}
	dashKeys    = []Key{KeyShift}
	jumpKeys    = []Key{KeySpace}
)

// MobileButton is one of the on-screen touch buttons.
type MobileButton int

const (
	MobileUp MobileButton = iota
	MobileDown
	MobileLeft
	MobileRight
	MobileJump
	MobileDash
	mobileButtonCount
)

func (b MobileButton) String() string {
	switch b {
	case MobileUp:
		return "up"
	case MobileDown:
		return "down"
	case MobileLeft:
		return "left"
	case MobileRight:
		return "right"
	case MobileJump:
		return "jump"
	case MobileDash:
		return "dash"
	default:
		return "unknown"
	}
}

// PointerButton follows the DOM MouseEvent.button numbering.
type PointerButton int

const (
	PointerPrimary PointerButton = iota
	PointerAuxiliary
	PointerSecondary
)
