package dotgrid

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// EbitenSurface is a persistent offscreen canvas for Ebitengine hosts. Dots
// are drawn from a cached, pre-rendered white circle tinted per draw, so a
// frame of dots batches into few draw calls.
type EbitenSurface struct {
	image *ebiten.Image
	store BackingStore

	// dot sprite cache, keyed by device-pixel diameter
	sprite     *ebiten.Image
	spriteDiam int
}

// NewEbitenSurface creates an empty surface. Call Resize before drawing.
func NewEbitenSurface() *EbitenSurface {
	return &EbitenSurface{}
}

// CanFillPath implements PathSupport.
func (s *EbitenSurface) CanFillPath() bool {
	return true
}

// Image returns the backing image, or nil while the store is empty.
func (s *EbitenSurface) Image() *ebiten.Image {
	return s.image
}

// Resize implements Surface. It deallocates the old image and creates a
// new one at the store's pixel size.
func (s *EbitenSurface) Resize(store BackingStore) {
	if s.image != nil {
		s.image.Deallocate()
		s.image = nil
	}
	s.store = store
	if store.Empty() {
		return
	}
	s.image = ebiten.NewImage(store.PixelWidth, store.PixelHeight)
}

// Clear implements Surface. Ebitengine images carry no transform, so this
// always clears the full backing store.
func (s *EbitenSurface) Clear() {
	if s.image != nil {
		s.image.Clear()
	}
}

// FillCircle implements Surface.
func (s *EbitenSurface) FillCircle(x, y, radius float64, c RGB, alpha float64) {
	if s.image == nil || alpha <= 0 || radius <= 0 {
		return
	}
	scale := s.store.Scale
	sprite := s.dotSprite(radius * 2 * scale)
	half := float64(s.spriteDiam) / 2

	var op ebiten.DrawImageOptions
	op.GeoM.Translate(x*scale-half, y*scale-half)
	r, g, b := c.Floats()
	a := clamp01(alpha)
	// ColorScale is premultiplied.
	op.ColorScale.Scale(float32(r*a), float32(g*a), float32(b*a), float32(a))
	s.image.DrawImage(sprite, &op)
}

// dotSprite returns a white anti-aliased circle of the given device-pixel
// diameter, re-rendering only when the diameter changes.
func (s *EbitenSurface) dotSprite(diameter float64) *ebiten.Image {
	d := int(math.Ceil(diameter))
	if d < 1 {
		d = 1
	}
	if s.sprite != nil && s.spriteDiam == d {
		return s.sprite
	}
	if s.sprite != nil {
		s.sprite.Deallocate()
	}
	s.sprite = ebiten.NewImage(d, d)
	r := float32(diameter / 2)
	vector.DrawFilledCircle(s.sprite, float32(d)/2, float32(d)/2, r, color.White, true)
	s.spriteDiam = d
	return s.sprite
}

// DrawTo draws the surface onto dst at the origin, pixel for pixel.
func (s *EbitenSurface) DrawTo(dst *ebiten.Image) {
	if s.image == nil {
		return
	}
	dst.DrawImage(s.image, nil)
}

// Snapshot reads the backing image back as straight-alpha NRGBA.
func (s *EbitenSurface) Snapshot() image.Image {
	if s.image == nil {
		return nil
	}
	return readNRGBA(s.image)
}

// Dispose deallocates the backing image and the sprite cache.
func (s *EbitenSurface) Dispose() {
	if s.image != nil {
		s.image.Deallocate()
		s.image = nil
	}
	if s.sprite != nil {
		s.sprite.Deallocate()
		s.sprite = nil
		s.spriteDiam = 0
	}
}

// readNRGBA converts an ebiten image's premultiplied pixels to NRGBA.
func readNRGBA(src *ebiten.Image) *image.NRGBA {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	src.ReadPixels(pixels)

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(pixels); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}
