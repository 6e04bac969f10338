package dotgrid

import "errors"

// Vec2 is a 2D vector used for positions, offsets and velocities.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// RGB is an opaque 8-bit color triple.
type RGB struct {
	R, G, B uint8
}

// AbsentCoord is the pointer coordinate used when the pointer is outside the
// effect or hidden behind an opaque element. It is far enough from any
// canvas that no dot can be within proximity of it.
const AbsentCoord = -1e6

const (
	// visibilityThreshold is the displacement (px) at or below which a dot
	// is treated as at rest and not drawn.
	visibilityThreshold = 0.5
	// fadeDistance is the displacement (px) at which a dot is fully opaque.
	fadeDistance = 7.0
	// nominalFrameMs is the delta assumed for the first pointer sample.
	nominalFrameMs = 16.0
	// maxPushDuration caps the fallback push tween, in seconds.
	maxPushDuration = 0.5
	// opaqueThreshold is the opacity/alpha at which an element hides the grid.
	opaqueThreshold = 0.99
)

var (
	// ErrInvalidConfig is returned when a Config fails validation.
	ErrInvalidConfig = errors.New("dotgrid: invalid config")
	// ErrInertiaUnavailable is reported by solvers that cannot integrate a
	// throw. It permanently selects the tween fallback.
	ErrInertiaUnavailable = errors.New("dotgrid: inertia solver unavailable")
	// ErrSurfaceUnavailable is logged when the effect is mounted on a surface
	// that cannot fill paths. The effect then stays disabled.
	ErrSurfaceUnavailable = errors.New("dotgrid: surface cannot fill paths")
)
