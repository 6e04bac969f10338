package dotgrid

import (
	"image"

	"github.com/gogpu/gg"
)

// CanvasSurface is a software Surface backed by a gg drawing context. It
// needs no GPU or window, which makes it the surface for headless rendering
// and tests.
type CanvasSurface struct {
	dc    *gg.Context
	store BackingStore
	err   error
}

// NewCanvasSurface creates an empty canvas. Call Resize before drawing.
func NewCanvasSurface() *CanvasSurface {
	return &CanvasSurface{}
}

// CanFillPath implements PathSupport.
func (s *CanvasSurface) CanFillPath() bool {
	return true
}

// Resize implements Surface. The context transform is reset to the device
// scale so callers keep drawing in CSS pixels.
func (s *CanvasSurface) Resize(store BackingStore) {
	if s.dc != nil {
		_ = s.dc.Close()
		s.dc = nil
	}
	s.store = store
	if store.Empty() {
		return
	}
	s.dc = gg.NewContext(store.PixelWidth, store.PixelHeight)
	s.dc.Scale(store.Scale, store.Scale)
}

// Clear implements Surface. The transform is swapped for identity while
// clearing so a scaled context cannot leave a partially cleared frame.
func (s *CanvasSurface) Clear() {
	if s.dc == nil {
		return
	}
	s.dc.Push()
	s.dc.Identity()
	s.dc.Clear()
	s.dc.Pop()
}

// FillCircle implements Surface.
func (s *CanvasSurface) FillCircle(x, y, radius float64, c RGB, alpha float64) {
	if s.dc == nil || alpha <= 0 {
		return
	}
	r, g, b := c.Floats()
	s.dc.SetRGBA(r, g, b, clamp01(alpha))
	s.dc.DrawCircle(x, y, radius)
	if err := s.dc.Fill(); err != nil && s.err == nil {
		s.err = err
	}
}

// Err returns the first fill error since the surface was created.
func (s *CanvasSurface) Err() error {
	return s.err
}

// Store returns the current backing store geometry.
func (s *CanvasSurface) Store() BackingStore {
	return s.store
}

// Snapshot returns the rendered pixels, or nil before the first Resize.
func (s *CanvasSurface) Snapshot() image.Image {
	if s.dc == nil {
		return nil
	}
	return s.dc.Image()
}

// SavePNG writes the current frame to path.
func (s *CanvasSurface) SavePNG(path string) error {
	if s.dc == nil {
		return ErrSurfaceUnavailable
	}
	return s.dc.SavePNG(path)
}

// Close releases the drawing context.
func (s *CanvasSurface) Close() error {
	if s.dc == nil {
		return nil
	}
	err := s.dc.Close()
	s.dc = nil
	return err
}
