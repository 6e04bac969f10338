package dotgrid

import (
	"fmt"
	"math"
	"sync/atomic"
)

// impulsePhase is the per-dot impulse state machine:
// idle → displacing → returning → idle.
type impulsePhase uint8

const (
	phaseIdle impulsePhase = iota
	phaseDisplacing
	phaseReturning
)

func (p impulsePhase) String() string {
	switch p {
	case phaseIdle:
		return "idle"
	case phaseDisplacing:
		return "displacing"
	case phaseReturning:
		return "returning"
	default:
		return fmt.Sprintf("impulsePhase(%d)", uint8(p))
	}
}

// inertiaDisabled is set once the first time an inertia solver fails and is
// never cleared. It is shared by every Engine in the process.
var inertiaDisabled atomic.Bool

// InertiaAvailable reports whether impulses may still use the inertia
// solver. It turns false permanently after the first solver failure.
func InertiaAvailable() bool {
	return !inertiaDisabled.Load()
}

// impulseStrategy starts the displacing phase of an impulse.
type impulseStrategy interface {
	applyImpulse(d *Dot, dx, dy float64) (motion, error)
}

// tweenStrategy pushes with an ease-out tween whose duration grows with the
// push distance, capped at maxPushDuration.
type tweenStrategy struct {
	resistance float64
}

func (s tweenStrategy) applyImpulse(d *Dot, dx, dy float64) (motion, error) {
	duration := math.Min(maxPushDuration, math.Hypot(dx, dy)/s.resistance)
	return newTweenPair(d.XOffset, d.YOffset, dx, dy, duration, pushEase), nil
}

// inertiaStrategy throws the dot through an InertiaSolver.
type inertiaStrategy struct {
	solver     InertiaSolver
	resistance float64
}

func (s inertiaStrategy) applyImpulse(d *Dot, dx, dy float64) (m motion, err error) {
	defer func() {
		if r := recover(); r != nil {
			m, err = nil, fmt.Errorf("%w: solver panic: %v", ErrInertiaUnavailable, r)
		}
	}()
	tr, err := s.solver.Throw(d.XOffset, d.YOffset, dx, dy, s.resistance)
	if err != nil {
		return nil, err
	}
	if tr == nil {
		return nil, fmt.Errorf("%w: solver returned no trajectory", ErrInertiaUnavailable)
	}
	return trajectoryMotion{tr}, nil
}

// trajectoryMotion adapts a Trajectory to motion, turning panics into errors.
type trajectoryMotion struct {
	tr Trajectory
}

func (m trajectoryMotion) step(dt float64) (x, y float64, done bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			x, y, done = 0, 0, false
			err = fmt.Errorf("%w: trajectory panic: %v", ErrInertiaUnavailable, r)
		}
	}()
	return m.tr.Step(dt)
}

// Engine runs impulses on dots. It is not safe for concurrent use; all
// calls happen on the frame loop.
type Engine struct {
	proximity      float64
	speedTrigger   float64
	shockRadius    float64
	shockStrength  float64
	velocityBlend  float64
	returnDuration float64

	inertia  impulseStrategy
	fallback impulseStrategy

	active []*Dot
}

// NewEngine creates an engine for cfg. A nil solver makes every impulse
// use the tween fallback.
func NewEngine(cfg Config, solver InertiaSolver) *Engine {
	cfg = cfg.withDefaults()
	e := &Engine{
		proximity:      cfg.Proximity,
		speedTrigger:   cfg.SpeedTrigger,
		shockRadius:    cfg.ShockRadius,
		shockStrength:  cfg.ShockStrength,
		velocityBlend:  cfg.VelocityBlend,
		returnDuration: cfg.ReturnDuration,
		fallback:       tweenStrategy{resistance: cfg.Resistance},
	}
	if solver != nil {
		e.inertia = inertiaStrategy{solver: solver, resistance: cfg.Resistance}
	}
	return e
}

// Active returns the number of dots with an impulse in flight, including
// dots orphaned by a grid rebuild.
func (e *Engine) Active() int {
	return len(e.active)
}

// Trigger starts an impulse that pushes d toward (dx, dy) relative to its
// anchor and then settles it back to rest. It returns false and does
// nothing if d already has an impulse in flight.
func (e *Engine) Trigger(d *Dot, dx, dy float64) bool {
	if d.ImpulseActive() {
		return false
	}
	// Cancel anything still attached to the dot before the new impulse.
	d.motion = nil
	d.phase = phaseDisplacing

	m, err := e.applyImpulse(d, dx, dy)
	if err != nil {
		// The fallback never fails; settle in place if it somehow does.
		e.startReturn(d)
	} else {
		d.motion = m
	}
	e.active = append(e.active, d)
	return true
}

// applyImpulse selects the inertia strategy while it is available and
// downgrades to the fallback on the first failure.
func (e *Engine) applyImpulse(d *Dot, dx, dy float64) (motion, error) {
	if e.inertia != nil && InertiaAvailable() {
		m, err := e.inertia.applyImpulse(d, dx, dy)
		if err == nil {
			return m, nil
		}
		disableInertia(err)
	}
	return e.fallback.applyImpulse(d, dx, dy)
}

func disableInertia(err error) {
	if inertiaDisabled.CompareAndSwap(false, true) {
		Logger().Warn("dotgrid: inertia solver failed, using tween fallback", "err", err)
	}
}

func (e *Engine) startReturn(d *Dot) {
	d.phase = phaseReturning
	d.motion = newTweenPair(d.XOffset, d.YOffset, 0, 0, e.returnDuration, returnEase)
}

// Update advances every in-flight impulse by dt seconds.
func (e *Engine) Update(dt float64) {
	n := 0
	for _, d := range e.active {
		if e.advance(d, dt) {
			e.active[n] = d
			n++
		}
	}
	for i := n; i < len(e.active); i++ {
		e.active[i] = nil
	}
	e.active = e.active[:n]
}

// advance steps one dot and reports whether it is still in flight.
func (e *Engine) advance(d *Dot, dt float64) bool {
	if d.motion == nil {
		d.phase = phaseIdle
		return false
	}
	x, y, done, err := d.motion.step(dt)
	if err != nil {
		disableInertia(err)
		e.startReturn(d)
		return true
	}
	d.XOffset, d.YOffset = x, y
	if !done {
		return true
	}
	switch d.phase {
	case phaseDisplacing:
		e.startReturn(d)
		return true
	default:
		d.XOffset, d.YOffset = 0, 0
		d.motion = nil
		d.phase = phaseIdle
		return false
	}
}

// TriggerMove pushes dots within proximity of a fast-moving pointer away
// from it, biased along the pointer's velocity. It returns the number of
// impulses started.
func (e *Engine) TriggerMove(dots []*Dot, p PointerSnapshot) int {
	if p.Speed <= e.speedTrigger {
		return 0
	}
	started := 0
	for _, d := range dots {
		if d.ImpulseActive() {
			continue
		}
		if math.Hypot(d.CX-p.X, d.CY-p.Y) >= e.proximity {
			continue
		}
		pushX := d.CX - p.X + p.VX*e.velocityBlend
		pushY := d.CY - p.Y + p.VY*e.velocityBlend
		if e.Trigger(d, pushX, pushY) {
			started++
		}
	}
	return started
}

// TriggerShock pushes every dot within the shock radius of (x, y) radially
// outward with linear falloff. It returns the number of impulses started.
func (e *Engine) TriggerShock(dots []*Dot, x, y float64) int {
	started := 0
	for _, d := range dots {
		if d.ImpulseActive() {
			continue
		}
		dist := math.Hypot(d.CX-x, d.CY-y)
		if dist >= e.shockRadius {
			continue
		}
		falloff := math.Max(0, 1-dist/e.shockRadius)
		pushX := (d.CX - x) * e.shockStrength * falloff
		pushY := (d.CY - y) * e.shockStrength * falloff
		if e.Trigger(d, pushX, pushY) {
			started++
		}
	}
	return started
}
