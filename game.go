package dotgrid

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// Background fills the screen behind the dots. Zero is black.
	Background RGB
	ShowFPS    bool
}

// Game hosts an Effect as an ebiten.Game. It sizes the effect to the window
// at the monitor's device scale, forwards cursor moves and left clicks, and
// draws the effect's surface onto the screen.
type Game struct {
	effect  *Effect
	surface *EbitenSurface

	// Background fills the screen before the dots are drawn.
	Background RGB
	// ShowFPS draws an FPS/TPS readout in the top-left corner.
	ShowFPS bool
	// UpdateFunc, if set, runs after the effect's Update each tick.
	UpdateFunc func() error
	// DrawFunc, if set, draws on top of the dots each frame.
	DrawFunc func(screen *ebiten.Image)

	cssW, cssH   int
	scale        float64
	lastX, lastY int
	hasCursor    bool
	cursorInside bool
	fpsImage     *ebiten.Image
	fpsAccum     float64
}

// NewGame mounts an effect for cfg on a fresh EbitenSurface.
func NewGame(cfg Config, opts ...Option) (*Game, error) {
	surface := NewEbitenSurface()
	effect, err := NewEffect(cfg, surface, opts...)
	if err != nil {
		return nil, err
	}
	return &Game{effect: effect, surface: surface, scale: 1}, nil
}

// Effect returns the hosted effect.
func (g *Game) Effect() *Effect {
	return g.effect
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	dt := 1.0 / float64(ebiten.TPS())

	mx, my := ebiten.CursorPosition()
	// Screen coordinates are device pixels; the effect works in CSS pixels.
	cx, cy := float64(mx)/g.scale, float64(my)/g.scale
	inside := mx >= 0 && my >= 0 && cx < float64(g.cssW) && cy < float64(g.cssH)
	switch {
	case inside && (!g.hasCursor || mx != g.lastX || my != g.lastY):
		g.effect.PointerMove(cx, cy)
	case !inside && g.cursorInside:
		g.effect.PointerLeave()
	}
	g.hasCursor = true
	g.cursorInside = inside
	g.lastX, g.lastY = mx, my

	if inside && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.effect.Click(cx, cy)
	}

	g.effect.Update(dt)
	g.fpsAccum += dt

	if g.UpdateFunc != nil {
		return g.UpdateFunc()
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: g.Background.R, G: g.Background.G, B: g.Background.B, A: 0xff})
	g.effect.Draw()
	g.surface.DrawTo(screen)
	if g.DrawFunc != nil {
		g.DrawFunc(screen)
	}
	if g.ShowFPS {
		g.drawFPS(screen)
	}
}

// Layout implements ebiten.Game. The screen is laid out in device pixels
// and the effect is rebuilt whenever the window size or scale changes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := 1.0
	if m := ebiten.Monitor(); m != nil {
		scale = m.DeviceScaleFactor()
	}
	if scale <= 0 {
		scale = 1
	}
	if outsideWidth != g.cssW || outsideHeight != g.cssH || scale != g.scale {
		g.cssW, g.cssH, g.scale = outsideWidth, outsideHeight, scale
		g.effect.Resize(float64(outsideWidth), float64(outsideHeight), scale)
	}
	return int(float64(outsideWidth) * scale), int(float64(outsideHeight) * scale)
}

// drawFPS refreshes the readout about twice a second.
func (g *Game) drawFPS(screen *ebiten.Image) {
	if g.fpsImage == nil {
		// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
		g.fpsImage = ebiten.NewImage(100, 32)
		g.fpsAccum = 0.5
	}
	if g.fpsAccum >= 0.5 {
		g.fpsAccum = 0
		g.fpsImage.Clear()
		g.fpsImage.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(g.fpsImage, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	screen.DrawImage(g.fpsImage, nil)
}

// Close unmounts the effect and releases the surface.
func (g *Game) Close() {
	g.effect.Close()
	g.surface.Dispose()
	if g.fpsImage != nil {
		g.fpsImage.Deallocate()
		g.fpsImage = nil
	}
}

// Run opens a resizable window and runs the effect until it is closed.
func Run(cfg Config, run RunConfig, opts ...Option) error {
	g, err := NewGame(cfg, opts...)
	if err != nil {
		return err
	}
	defer g.Close()
	g.Background = run.Background
	g.ShowFPS = run.ShowFPS

	title := run.Title
	if title == "" {
		title = "dotgrid"
	}
	w, h := run.Width, run.Height
	if w <= 0 {
		w = 800
	}
	if h <= 0 {
		h = 600
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("dotgrid: run: %w", err)
	}
	return nil
}
