package dotgrid

import (
	"errors"
	"math"
	"testing"
)

const epsilon = 1e-6

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// resetInertia re-enables the inertia solver for the duration of a test.
func resetInertia(t *testing.T) {
	t.Helper()
	inertiaDisabled.Store(false)
	t.Cleanup(func() { inertiaDisabled.Store(false) })
}

// runUntilIdle steps e at 60 Hz until d settles or maxSeconds elapse. It
// returns the largest displacement seen along the way.
func runUntilIdle(t *testing.T, e *Engine, d *Dot, maxSeconds float64) float64 {
	t.Helper()
	const dt = 1.0 / 60
	maxDisp := 0.0
	for elapsed := 0.0; elapsed < maxSeconds; elapsed += dt {
		e.Update(dt)
		maxDisp = math.Max(maxDisp, d.Displacement())
		if !d.ImpulseActive() {
			return maxDisp
		}
	}
	t.Fatalf("dot still active after %.1fs (phase %v, offset %.3f,%.3f)",
		maxSeconds, d.phase, d.XOffset, d.YOffset)
	return maxDisp
}

// --- Surfaces ---

type fillCall struct {
	X, Y, Radius float64
	Color        RGB
	Alpha        float64
}

// recordingSurface records every call for inspection.
type recordingSurface struct {
	noPaths bool
	stores  []BackingStore
	clears  int
	fills   []fillCall
}

func (s *recordingSurface) CanFillPath() bool { return !s.noPaths }

func (s *recordingSurface) Resize(store BackingStore) { s.stores = append(s.stores, store) }

func (s *recordingSurface) Clear() {
	s.clears++
	s.fills = s.fills[:0]
}

func (s *recordingSurface) FillCircle(x, y, radius float64, c RGB, alpha float64) {
	s.fills = append(s.fills, fillCall{X: x, Y: y, Radius: radius, Color: c, Alpha: alpha})
}

// --- Solvers ---

var errSolverBroken = errors.New("solver broken")

// recordingSolver records throws and returns trajectories that land
// immediately at the throw target.
type recordingSolver struct {
	throws []Vec2
}

func (s *recordingSolver) Throw(fromX, fromY, vx, vy, resistance float64) (Trajectory, error) {
	s.throws = append(s.throws, Vec2{X: vx, Y: vy})
	return &landedTrajectory{x: fromX + vx, y: fromY + vy}, nil
}

type landedTrajectory struct {
	x, y float64
}

func (t *landedTrajectory) Step(float64) (float64, float64, bool, error) {
	return t.x, t.y, true, nil
}

type failingSolver struct {
	calls int
}

func (s *failingSolver) Throw(float64, float64, float64, float64, float64) (Trajectory, error) {
	s.calls++
	return nil, errSolverBroken
}

type panickingSolver struct{}

func (panickingSolver) Throw(float64, float64, float64, float64, float64) (Trajectory, error) {
	panic("boom")
}

// brokenTrajectorySolver returns trajectories that fail on their first step.
type brokenTrajectorySolver struct{}

func (brokenTrajectorySolver) Throw(float64, float64, float64, float64, float64) (Trajectory, error) {
	return brokenTrajectory{}, nil
}

type brokenTrajectory struct{}

func (brokenTrajectory) Step(float64) (float64, float64, bool, error) {
	return 0, 0, false, errSolverBroken
}
