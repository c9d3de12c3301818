package input

type EventKind int

const (
	EventKeyDown EventKind = iota + 1
	EventKeyUp
	EventPointerDown
	EventPointerMove
	EventPointerUp
	EventMobilePress
	EventMobileRelease
	// EventFocusLost is emitted when the window loses focus.
	EventFocusLost
)

// Event is one raw device event. Only the fields relevant to Kind are set.
type Event struct {
	Kind EventKind

	Key    Key
	Button PointerButton
	Mobile MobileButton

	// X/Y is the pointer position in screen pixels.
	X, Y float64
	// MovementX/Y is the relative motion reported while the pointer is locked.
	MovementX, MovementY float64
}

func KeyDown(k Key) Event { return Event{Kind: EventKeyDown, Key: k} }

func KeyUp(k Key) Event { return Event{Kind: EventKeyUp, Key: k} }

func MobilePress(b MobileButton) Event { return Event{Kind: EventMobilePress, Mobile: b} }

func MobileRelease(b MobileButton) Event { return Event{Kind: EventMobileRelease, Mobile: b} }

func PointerDown(b PointerButton, x, y float64) Event {
	return Event{Kind: EventPointerDown, Button: b, X: x, Y: y}
}

func PointerMove(x, y, dx, dy float64) Event {
	return Event{Kind: EventPointerMove, X: x, Y: y, MovementX: dx, MovementY: dy}
}

func PointerUp(b PointerButton, x, y float64) Event {
	return Event{Kind: EventPointerUp, Button: b, X: x, Y: y}
}

func FocusLost() Event {
	return Event{Kind: EventFocusLost}
}

// Queue collects events between frames. It is drained once per frame.
type Queue struct {
	items []Event
}

func (q *Queue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain returns the queued events in arrival order and empties the queue.
func (q *Queue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
