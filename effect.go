package dotgrid

import (
	"context"
	"time"
)

// Option configures an Effect at construction.
type Option func(*options)

type options struct {
	doc       Document
	root      Element
	solver    InertiaSolver
	solverSet bool
	clock     func() float64
}

// WithDocument enables occlusion testing: pointer positions are hit-tested
// against doc and ignored while an opaque element outside root covers them.
// A nil root turns occlusion off.
func WithDocument(doc Document, root Element) Option {
	return func(o *options) {
		o.doc = doc
		o.root = root
	}
}

// WithSolver replaces the default ProjectileSolver. Passing nil makes every
// impulse use the tween fallback.
func WithSolver(s InertiaSolver) Option {
	return func(o *options) {
		o.solver = s
		o.solverSet = true
	}
}

// WithClock sets the millisecond clock used to timestamp pointer samples.
// By default the effect counts time from the dt passed to Update.
func WithClock(now func() float64) Option {
	return func(o *options) {
		o.clock = now
	}
}

// Effect is one mounted dot grid: it owns the dots, the pointer tracker, the
// impulse engine and the drawing surface. Pointer events, Update and Draw
// must all be called from the same goroutine.
type Effect struct {
	cfg     Config
	pal     palette
	surface Surface
	enabled bool
	closed  bool

	doc  Document
	root Element

	tracker  *PointerTracker
	throttle moveThrottle
	engine   *Engine

	dots   []*Dot
	store  BackingStore
	origin Vec2
	cmds   []DotCommand

	clock   func() float64
	frameMs float64

	// Automation
	injectQueue     []syntheticEvent
	testRunner      *TestRunner
	screenshotQueue []string
	// ScreenshotDir is where Screenshot writes PNG files. Default "screenshots".
	ScreenshotDir string

	entities EntityStore
	debug    bool
	stats    frameStats
}

// NewEffect mounts a grid on surface. It fails only for an invalid config.
// A nil surface, or one without a path fill primitive, yields a disabled
// effect that ignores all input and draws nothing.
func NewEffect(cfg Config, surface Surface, opts ...Option) (*Effect, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	solver := o.solver
	if !o.solverSet {
		solver = ProjectileSolver{}
	}

	e := &Effect{
		cfg: cfg,
		pal: palette{
			base:      HexToRGB(cfg.BaseColor),
			active:    HexToRGB(cfg.ActiveColor),
			proximity: cfg.Proximity,
			radius:    cfg.DotSize / 2,
		},
		surface:       surface,
		enabled:       surfaceUsable(surface),
		doc:           o.doc,
		root:          o.root,
		tracker:       NewPointerTracker(cfg.MaxSpeed),
		throttle:      newMoveThrottle(cfg.MoveThrottle),
		engine:        NewEngine(cfg, solver),
		clock:         o.clock,
		ScreenshotDir: "screenshots",
	}
	if !e.enabled {
		Logger().Warn("dotgrid: effect disabled", "err", ErrSurfaceUnavailable)
		return e, nil
	}
	Logger().Info("dotgrid: mounted", "dotSize", cfg.DotSize, "gap", cfg.Gap, "inertia", solver != nil && InertiaAvailable())
	return e, nil
}

// Config returns the effect's configuration with defaults applied.
func (e *Effect) Config() Config {
	return e.cfg
}

// Enabled reports whether the effect is mounted on a usable surface and
// has not been closed.
func (e *Effect) Enabled() bool {
	return e.enabled && !e.closed
}

// Dots returns the current grid. The returned slice MUST NOT be mutated.
func (e *Effect) Dots() []*Dot {
	return e.dots
}

// Pointer returns the current pointer snapshot.
func (e *Effect) Pointer() PointerSnapshot {
	return e.tracker.Snapshot()
}

// Engine returns the impulse engine.
func (e *Effect) Engine() *Engine {
	return e.engine
}

// Store returns the current backing store geometry.
func (e *Effect) Store() BackingStore {
	return e.store
}

// now returns the pointer timestamp in milliseconds.
func (e *Effect) now() float64 {
	if e.clock != nil {
		return e.clock()
	}
	return e.frameMs
}

// Resize rebuilds the grid and the surface for a container of cssW×cssH at
// the given device pixel ratio. All dots are replaced; impulses on the old
// dots run out on their own.
func (e *Effect) Resize(cssW, cssH, deviceScale float64) {
	if !e.Enabled() {
		return
	}
	e.store = NewBackingStore(cssW, cssH, deviceScale)
	e.surface.Resize(e.store)
	e.dots = BuildGrid(cssW, cssH, e.cfg.DotSize, e.cfg.Gap)
	Logger().Info("dotgrid: grid rebuilt",
		"width", cssW, "height", cssH, "scale", e.store.Scale, "dots", len(e.dots))
}

// SetOrigin sets the client-space position of the surface's top-left
// corner. Pointer and click coordinates are translated by it.
func (e *Effect) SetOrigin(x, y float64) {
	e.origin = Vec2{X: x, Y: y}
	e.tracker.SetOrigin(x, y)
}

// blocked reports whether an opaque element covers the client point.
func (e *Effect) blocked(clientX, clientY float64) bool {
	if e.doc == nil {
		return false
	}
	hit := e.doc.ElementFromPoint(clientX, clientY)
	return IsBlocked(hit, e.root, e.doc.Body())
}

// PointerMove delivers a pointer-move event at client coordinates. Moves
// arriving faster than Config.MoveThrottle are dropped.
func (e *Effect) PointerMove(clientX, clientY float64) {
	if !e.Enabled() {
		return
	}
	now := e.now()
	if !e.throttle.allow(now) {
		return
	}
	e.handleMove(clientX, clientY, now)
}

func (e *Effect) handleMove(clientX, clientY, now float64) {
	if e.blocked(clientX, clientY) {
		e.leave()
		return
	}
	e.tracker.OnMove(clientX, clientY, now)
	p := e.tracker.Snapshot()
	if n := e.engine.TriggerMove(e.dots, p); n > 0 {
		e.emitEvent(GridEvent{Type: EventPush, X: p.X, Y: p.Y, VX: p.VX, VY: p.VY, Impulses: n})
	}
}

// PointerLeave marks the pointer absent, e.g. when it leaves the window.
func (e *Effect) PointerLeave() {
	if !e.Enabled() {
		return
	}
	e.leave()
}

// leave hides the pointer and reports the transition once.
func (e *Effect) leave() {
	was := e.tracker.Snapshot().Present()
	e.tracker.Block()
	if was {
		e.emitEvent(GridEvent{Type: EventLeave, X: AbsentCoord, Y: AbsentCoord})
	}
}

// Click delivers a click at client coordinates and sends a shock through
// the dots around it unless the point is occluded.
func (e *Effect) Click(clientX, clientY float64) {
	if !e.Enabled() {
		return
	}
	if e.blocked(clientX, clientY) {
		return
	}
	x, y := clientX-e.origin.X, clientY-e.origin.Y
	n := e.engine.TriggerShock(e.dots, x, y)
	e.emitEvent(GridEvent{Type: EventShock, X: x, Y: y, Impulses: n})
}

// Update advances time by dt seconds: it runs any attached test script,
// consumes one injected event and steps every impulse.
func (e *Effect) Update(dt float64) {
	if !e.Enabled() {
		return
	}
	e.frameMs += dt * 1000
	if e.testRunner != nil {
		e.testRunner.step(e)
	}
	e.processInjectedInput()
	e.engine.Update(dt)
}

// Draw renders one frame: clear, then every visibly displaced dot.
func (e *Effect) Draw() {
	if !e.Enabled() {
		return
	}
	var t0 time.Time
	if e.debug {
		t0 = time.Now()
	}

	p := e.tracker.Snapshot()
	e.cmds = appendDotCommands(e.cmds[:0], e.dots, p, e.pal)
	submitDotCommands(e.surface, e.cmds, e.pal.radius)

	if e.debug {
		e.stats = frameStats{
			drawTime: time.Since(t0),
			dots:     len(e.dots),
			drawn:    len(e.cmds),
			active:   e.engine.Active(),
		}
		e.debugLog(e.stats)
	}
	e.flushScreenshots()
}

// Commands returns the dot commands drawn by the last Draw. The returned
// slice MUST NOT be mutated and is overwritten by the next Draw.
func (e *Effect) Commands() []DotCommand {
	return e.cmds
}

// Close unmounts the effect: the pointer is reset, pending input is
// dropped and Update, Draw and event methods become no-ops. In-flight
// impulses are dropped with the dots.
func (e *Effect) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.tracker.Reset()
	e.throttle.reset()
	e.dots = nil
	e.injectQueue = nil
	e.testRunner = nil
	Logger().Info("dotgrid: unmounted")
}

// Run drives Update and Draw at fps frames per second until ctx is done,
// the effect is closed or an attached test script finishes. It is meant
// for headless surfaces; Ebitengine hosts use Game instead.
func (e *Effect) Run(ctx context.Context, fps int) error {
	if fps <= 0 {
		fps = 60
	}
	dt := 1 / float64(fps)
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		if !e.Enabled() {
			return nil
		}
		e.Update(dt)
		e.Draw()
		if e.testRunner != nil && e.testRunner.Done() {
			return nil
		}
	}
}
