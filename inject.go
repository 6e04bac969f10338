package dotgrid

type syntheticKind uint8

const (
	syntheticMove syntheticKind = iota
	syntheticClick
	syntheticLeave
)

// syntheticEvent is one injected pointer event in client coordinates.
type syntheticEvent struct {
	kind syntheticKind
	x, y float64
}

// InjectMove queues a pointer move at client coordinates. The event is
// consumed on the next Update and goes through the move throttle like a
// real one.
func (e *Effect) InjectMove(x, y float64) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: syntheticMove, x: x, y: y})
}

// InjectClick queues a click at client coordinates.
func (e *Effect) InjectClick(x, y float64) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: syntheticClick, x: x, y: y})
}

// InjectLeave queues the pointer leaving the effect.
func (e *Effect) InjectLeave() {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: syntheticLeave})
}

// InjectSweep queues moves from (fromX, fromY) to (toX, toY) linearly
// interpolated over the given number of frames (minimum 2).
func (e *Effect) InjectSweep(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		e.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

// PendingInput returns the number of queued synthetic events.
func (e *Effect) PendingInput() int {
	return len(e.injectQueue)
}

// processInjectedInput pops one event from the queue and delivers it.
func (e *Effect) processInjectedInput() bool {
	if len(e.injectQueue) == 0 {
		return false
	}
	evt := e.injectQueue[0]
	copy(e.injectQueue, e.injectQueue[1:])
	e.injectQueue = e.injectQueue[:len(e.injectQueue)-1]

	switch evt.kind {
	case syntheticMove:
		e.PointerMove(evt.x, evt.y)
	case syntheticClick:
		e.Click(evt.x, evt.y)
	case syntheticLeave:
		e.PointerLeave()
	}
	return true
}
