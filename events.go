package dotgrid

// EventType identifies a kind of grid event.
type EventType uint8

const (
	EventPush  EventType = iota // a fast pointer move pushed dots
	EventShock                  // a click sent a shock through the grid
	EventLeave                  // the pointer left the grid or went behind an opaque element
)

func (t EventType) String() string {
	switch t {
	case EventPush:
		return "push"
	case EventShock:
		return "shock"
	case EventLeave:
		return "leave"
	default:
		return "unknown"
	}
}

// EntityStore is the interface for optional ECS integration.
// When set on an Effect, grid events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event GridEvent)
}

// GridEvent carries grid activity for the ECS bridge. Coordinates are
// canvas-local CSS pixels.
type GridEvent struct {
	Type EventType
	X, Y float64
	// Pointer velocity in px/s (EventPush only).
	VX, VY float64
	// Impulses is the number of dots the event started moving.
	Impulses int
}

// SetEntityStore sets the optional ECS bridge. Pass nil to detach it.
func (e *Effect) SetEntityStore(store EntityStore) {
	e.entities = store
}

func (e *Effect) emitEvent(ev GridEvent) {
	if e.entities == nil {
		return
	}
	e.entities.EmitEvent(ev)
}
