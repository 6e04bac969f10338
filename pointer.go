package dotgrid

import (
	"math"
	"time"
)

// PointerSnapshot is the pointer state read once per frame. X and Y are
// canvas-local; both equal AbsentCoord when the pointer is absent.
type PointerSnapshot struct {
	X, Y   float64
	VX, VY float64
	Speed  float64
}

// Present reports whether the snapshot holds a real position.
func (p PointerSnapshot) Present() bool {
	return p.X != AbsentCoord || p.Y != AbsentCoord
}

// PointerTracker derives canvas-local position and clamped velocity from
// raw pointer-move samples.
type PointerTracker struct {
	maxSpeed float64
	origin   Vec2
	state    PointerSnapshot

	hasLast  bool
	lastTime float64 // ms
	lastX    float64 // client coordinates
	lastY    float64
}

// NewPointerTracker creates a tracker that starts absent.
func NewPointerTracker(maxSpeed float64) *PointerTracker {
	t := &PointerTracker{maxSpeed: maxSpeed}
	t.Reset()
	return t
}

// SetOrigin sets the client-space position of the canvas's top-left corner.
func (t *PointerTracker) SetOrigin(x, y float64) {
	t.origin = Vec2{X: x, Y: y}
}

// OnMove records a sample at client coordinates taken at timestampMs.
func (t *PointerTracker) OnMove(clientX, clientY, timestampMs float64) {
	dt := nominalFrameMs
	if t.hasLast {
		dt = timestampMs - t.lastTime
		if dt <= 0 {
			dt = nominalFrameMs
		}
	}
	vx := (clientX - t.lastX) / dt * 1000
	vy := (clientY - t.lastY) / dt * 1000
	vx, vy, speed := clampVelocity(vx, vy, t.maxSpeed)

	t.hasLast = true
	t.lastTime = timestampMs
	t.lastX = clientX
	t.lastY = clientY

	t.state = PointerSnapshot{
		X:     clientX - t.origin.X,
		Y:     clientY - t.origin.Y,
		VX:    vx,
		VY:    vy,
		Speed: speed,
	}
}

// Block marks the pointer absent without touching the sample history.
func (t *PointerTracker) Block() {
	t.state.X = AbsentCoord
	t.state.Y = AbsentCoord
}

// Reset marks the pointer absent and forgets all history.
func (t *PointerTracker) Reset() {
	t.state = PointerSnapshot{X: AbsentCoord, Y: AbsentCoord}
	t.hasLast = false
	t.lastTime = 0
	t.lastX = 0
	t.lastY = 0
}

// Snapshot returns the current pointer state.
func (t *PointerTracker) Snapshot() PointerSnapshot {
	return t.state
}

// clampVelocity rescales (vx, vy) so its magnitude does not exceed max,
// preserving direction. A non-positive max disables clamping.
func clampVelocity(vx, vy, max float64) (float64, float64, float64) {
	speed := math.Hypot(vx, vy)
	if max > 0 && speed > max {
		scale := max / speed
		return vx * scale, vy * scale, max
	}
	return vx, vy, speed
}

// moveThrottle delivers at most one call per window, on the leading edge.
type moveThrottle struct {
	limit  float64 // ms
	last   float64
	primed bool
}

func newMoveThrottle(limit time.Duration) moveThrottle {
	return moveThrottle{limit: float64(limit) / float64(time.Millisecond)}
}

// allow reports whether a call at nowMs should be delivered.
func (m *moveThrottle) allow(nowMs float64) bool {
	if m.primed && nowMs-m.last < m.limit {
		return false
	}
	m.primed = true
	m.last = nowMs
	return true
}

func (m *moveThrottle) reset() {
	m.primed = false
	m.last = 0
}
