package dotgrid

import "math"

// Dot is one grid cell's animated state. CX and CY are the anchor in
// canvas-local CSS pixels and never change after the grid is built.
// XOffset and YOffset are written only by the Engine.
type Dot struct {
	CX, CY           float64
	XOffset, YOffset float64

	phase  impulsePhase
	motion motion
}

// ImpulseActive reports whether an impulse is in flight on the dot.
func (d *Dot) ImpulseActive() bool {
	return d.phase != phaseIdle
}

// Displacement returns the distance between the dot and its anchor.
func (d *Dot) Displacement() float64 {
	return math.Hypot(d.XOffset, d.YOffset)
}

// Position returns the current drawn position (anchor plus offset).
func (d *Dot) Position() Vec2 {
	return Vec2{X: d.CX + d.XOffset, Y: d.CY + d.YOffset}
}

// Layout describes how a grid fits a container.
type Layout struct {
	Cols, Rows     int
	Cell           float64
	StartX, StartY float64 // center of the first dot
}

// Count returns the number of dots in the layout.
func (l Layout) Count() int {
	return l.Cols * l.Rows
}

// ComputeLayout centers as many cells of dotSize+gap as fit in the
// container. Non-positive sizes produce an empty layout.
func ComputeLayout(width, height, dotSize, gap float64) Layout {
	cell := dotSize + gap
	if width <= 0 || height <= 0 || cell <= 0 {
		return Layout{}
	}
	cols := int(math.Floor((width + gap) / cell))
	rows := int(math.Floor((height + gap) / cell))
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	gridW := cell*float64(cols) - gap
	gridH := cell*float64(rows) - gap
	return Layout{
		Cols:   cols,
		Rows:   rows,
		Cell:   cell,
		StartX: (width-gridW)/2 + dotSize/2,
		StartY: (height-gridH)/2 + dotSize/2,
	}
}

// BuildGrid returns one idle dot per cell of ComputeLayout, row-major.
// Calling it again with the same inputs yields the same anchors.
func BuildGrid(width, height, dotSize, gap float64) []*Dot {
	l := ComputeLayout(width, height, dotSize, gap)
	if l.Count() == 0 {
		return nil
	}
	dots := make([]*Dot, 0, l.Count())
	for y := 0; y < l.Rows; y++ {
		for x := 0; x < l.Cols; x++ {
			dots = append(dots, &Dot{
				CX: l.StartX + float64(x)*l.Cell,
				CY: l.StartY + float64(y)*l.Cell,
			})
		}
	}
	return dots
}

// BackingStore is the pixel geometry of a drawing surface. Drawing happens
// in CSS pixels and is scaled by Scale into the backing pixels.
type BackingStore struct {
	CSSWidth, CSSHeight     float64
	Scale                   float64
	PixelWidth, PixelHeight int
}

// NewBackingStore sizes a backing store for a container of cssW×cssH at the
// given device pixel ratio. A non-positive ratio is treated as 1.
func NewBackingStore(cssW, cssH, deviceScale float64) BackingStore {
	if deviceScale <= 0 {
		deviceScale = 1
	}
	if cssW < 0 {
		cssW = 0
	}
	if cssH < 0 {
		cssH = 0
	}
	return BackingStore{
		CSSWidth:    cssW,
		CSSHeight:   cssH,
		Scale:       deviceScale,
		PixelWidth:  int(math.Round(cssW * deviceScale)),
		PixelHeight: int(math.Round(cssH * deviceScale)),
	}
}

// Empty reports whether the store has no drawable area.
func (b BackingStore) Empty() bool {
	return b.PixelWidth <= 0 || b.PixelHeight <= 0
}
