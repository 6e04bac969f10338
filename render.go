package dotgrid

import "math"

// Surface is a 2D drawing target sized to the effect's container. All
// coordinates are CSS pixels; the surface scales them by the backing
// store's device scale.
type Surface interface {
	// Resize reallocates the backing store.
	Resize(store BackingStore)
	// Clear erases the whole backing store regardless of any transform.
	Clear()
	// FillCircle fills a circle centered at (x, y) with color c at the given
	// opacity in [0, 1].
	FillCircle(x, y, radius float64, c RGB, alpha float64)
}

// PathSupport is implemented by surfaces that may lack a path fill
// primitive. A surface reporting false leaves the effect disabled.
type PathSupport interface {
	CanFillPath() bool
}

// surfaceUsable reports whether s can host the effect.
func surfaceUsable(s Surface) bool {
	if s == nil {
		return false
	}
	if ps, ok := s.(PathSupport); ok {
		return ps.CanFillPath()
	}
	return true
}

// DotCommand is one dot to draw this frame.
type DotCommand struct {
	X, Y  float64
	Color RGB
	Alpha float64
}

// palette holds the per-instance draw constants.
type palette struct {
	base, active RGB
	proximity    float64
	radius       float64
}

// appendDotCommands appends a command for every visibly displaced dot.
// The pointer snapshot is read once by the caller so every dot in a frame
// compares against the same position.
func appendDotCommands(buf []DotCommand, dots []*Dot, p PointerSnapshot, pal palette) []DotCommand {
	proxSq := pal.proximity * pal.proximity
	for _, d := range dots {
		disp := math.Hypot(d.XOffset, d.YOffset)
		if disp <= visibilityThreshold {
			continue
		}
		dx := d.CX - p.X
		dy := d.CY - p.Y
		dsq := dx*dx + dy*dy
		c := pal.base
		if dsq <= proxSq {
			c = pal.base.Lerp(pal.active, 1-math.Sqrt(dsq)/pal.proximity)
		}
		buf = append(buf, DotCommand{
			X:     d.CX + d.XOffset,
			Y:     d.CY + d.YOffset,
			Color: c,
			Alpha: math.Min(1, disp/fadeDistance),
		})
	}
	return buf
}

// submitDotCommands clears s and draws every command.
func submitDotCommands(s Surface, cmds []DotCommand, radius float64) {
	s.Clear()
	for i := range cmds {
		c := &cmds[i]
		s.FillCircle(c.X, c.Y, radius, c.Color, c.Alpha)
	}
}
