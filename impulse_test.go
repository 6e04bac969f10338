package dotgrid

import (
	"math"
	"testing"
)

// --- Fallback tween ---

func TestTriggerFallbackRunsToRest(t *testing.T) {
	e := NewEngine(DefaultConfig(), nil)
	d := &Dot{CX: 100, CY: 100}

	if !e.Trigger(d, 30, 40) {
		t.Fatal("Trigger on an idle dot should start an impulse")
	}
	if !d.ImpulseActive() || d.phase != phaseDisplacing {
		t.Fatalf("phase = %v, want displacing", d.phase)
	}
	if e.Active() != 1 {
		t.Fatalf("Active = %d, want 1", e.Active())
	}

	maxDisp := runUntilIdle(t, e, d, 3)
	if maxDisp < 49 || maxDisp > 51 {
		t.Errorf("peak displacement = %.2f, want about 50", maxDisp)
	}
	if d.XOffset != 0 || d.YOffset != 0 {
		t.Errorf("offset at rest = (%v, %v), want exactly 0", d.XOffset, d.YOffset)
	}
	if d.phase != phaseIdle || e.Active() != 0 {
		t.Errorf("phase = %v, Active = %d; want idle, 0", d.phase, e.Active())
	}
	if d.CX != 100 || d.CY != 100 {
		t.Errorf("anchor moved to (%v, %v)", d.CX, d.CY)
	}
}

func TestTriggerWhileActiveIsNoop(t *testing.T) {
	e := NewEngine(DefaultConfig(), nil)
	d := &Dot{}
	e.Trigger(d, 10, 0)
	e.Update(0.01)
	x, y := d.XOffset, d.YOffset

	if e.Trigger(d, -500, 500) {
		t.Error("second Trigger should be ignored while active")
	}
	if e.Active() != 1 {
		t.Errorf("Active = %d, want 1", e.Active())
	}
	if d.XOffset != x || d.YOffset != y {
		t.Error("ignored Trigger changed the offset")
	}
}

func TestTriggerPhases(t *testing.T) {
	e := NewEngine(DefaultConfig(), nil)
	d := &Dot{}
	// 75px at resistance 750 is a 0.1s push.
	e.Trigger(d, 75, 0)

	e.Update(0.05)
	if d.phase != phaseDisplacing {
		t.Fatalf("after 0.05s phase = %v, want displacing", d.phase)
	}
	if d.XOffset <= 0 || d.XOffset >= 75 {
		t.Errorf("mid-push XOffset = %v, want in (0, 75)", d.XOffset)
	}

	e.Update(0.06)
	if d.phase != phaseReturning {
		t.Fatalf("after push phase = %v, want returning", d.phase)
	}
	if !approxEqual(d.XOffset, 75, 0.01) {
		t.Errorf("XOffset at end of push = %v, want 75", d.XOffset)
	}
	if !d.ImpulseActive() {
		t.Error("dot should stay active while returning")
	}

	// The elastic return overshoots past the anchor before settling.
	overshoot := false
	for i := 0; i < 200 && d.ImpulseActive(); i++ {
		e.Update(1.0 / 60)
		if d.XOffset < -0.5 {
			overshoot = true
		}
	}
	if !overshoot {
		t.Error("return never overshot the anchor")
	}
	if d.ImpulseActive() || d.XOffset != 0 {
		t.Errorf("phase = %v, XOffset = %v after return", d.phase, d.XOffset)
	}
}

func TestPushDurationCapped(t *testing.T) {
	e := NewEngine(DefaultConfig(), nil)
	d := &Dot{}
	// 3000px would take 4s at resistance 750; the push is capped at 0.5s.
	e.Trigger(d, 3000, 0)
	e.Update(0.49)
	if d.phase != phaseDisplacing {
		t.Fatalf("phase before cap = %v, want displacing", d.phase)
	}
	e.Update(0.02)
	if d.phase != phaseReturning {
		t.Errorf("phase after cap = %v, want returning", d.phase)
	}
}

func TestTriggerZeroPush(t *testing.T) {
	e := NewEngine(DefaultConfig(), nil)
	d := &Dot{}
	if !e.Trigger(d, 0, 0) {
		t.Fatal("zero push should still start an impulse")
	}
	maxDisp := runUntilIdle(t, e, d, 3)
	if maxDisp != 0 {
		t.Errorf("peak displacement = %v, want 0", maxDisp)
	}
}

func TestImpulsePhaseString(t *testing.T) {
	tests := []struct {
		p    impulsePhase
		want string
	}{
		{phaseIdle, "idle"},
		{phaseDisplacing, "displacing"},
		{phaseReturning, "returning"},
		{impulsePhase(9), "impulsePhase(9)"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

// --- Inertia solver ---

func TestTriggerUsesSolver(t *testing.T) {
	resetInertia(t)
	s := &recordingSolver{}
	e := NewEngine(DefaultConfig(), s)
	d := &Dot{}

	e.Trigger(d, 12, -5)
	if len(s.throws) != 1 || s.throws[0] != (Vec2{X: 12, Y: -5}) {
		t.Fatalf("throws = %v, want [{12 -5}]", s.throws)
	}
	e.Update(1.0 / 60)
	if d.phase != phaseReturning {
		t.Errorf("phase after landed throw = %v, want returning", d.phase)
	}
	if d.XOffset != 12 || d.YOffset != -5 {
		t.Errorf("offset = (%v, %v), want (12, -5)", d.XOffset, d.YOffset)
	}
	runUntilIdle(t, e, d, 3)
	if !InertiaAvailable() {
		t.Error("a working solver should keep inertia available")
	}
}

func TestSolverErrorDowngradesPermanently(t *testing.T) {
	resetInertia(t)
	broken := &failingSolver{}
	e := NewEngine(DefaultConfig(), broken)
	d := &Dot{}

	if !e.Trigger(d, 30, 40) {
		t.Fatal("Trigger should succeed through the fallback")
	}
	if InertiaAvailable() {
		t.Fatal("solver failure should disable inertia")
	}
	if d.phase != phaseDisplacing {
		t.Errorf("phase = %v, want displacing via fallback", d.phase)
	}
	maxDisp := runUntilIdle(t, e, d, 3)
	if maxDisp < 49 {
		t.Errorf("fallback peak displacement = %.2f, want about 50", maxDisp)
	}

	// Later impulses, on any engine, never reach a solver again.
	e.Trigger(d, 1, 1)
	other := &failingSolver{}
	NewEngine(DefaultConfig(), other).Trigger(&Dot{}, 1, 1)
	if broken.calls != 1 || other.calls != 0 {
		t.Errorf("solver calls = %d, %d; want 1, 0", broken.calls, other.calls)
	}
}

func TestSolverPanicDowngrades(t *testing.T) {
	resetInertia(t)
	e := NewEngine(DefaultConfig(), panickingSolver{})
	d := &Dot{}
	if !e.Trigger(d, 10, 0) {
		t.Fatal("Trigger should survive a panicking solver")
	}
	if InertiaAvailable() {
		t.Error("solver panic should disable inertia")
	}
	runUntilIdle(t, e, d, 3)
}

func TestTrajectoryErrorStartsReturn(t *testing.T) {
	resetInertia(t)
	e := NewEngine(DefaultConfig(), brokenTrajectorySolver{})
	d := &Dot{}
	e.Trigger(d, 10, 0)
	if !InertiaAvailable() {
		t.Fatal("inertia should still be available before the first step")
	}

	e.Update(1.0 / 60)
	if InertiaAvailable() {
		t.Error("failing trajectory should disable inertia")
	}
	if d.phase != phaseReturning {
		t.Errorf("phase = %v, want returning", d.phase)
	}
	runUntilIdle(t, e, d, 3)
}

func TestProjectileSolverThroughEngine(t *testing.T) {
	resetInertia(t)
	e := NewEngine(DefaultConfig(), ProjectileSolver{})
	d := &Dot{}
	e.Trigger(d, 300, 0)
	maxDisp := runUntilIdle(t, e, d, 4)
	if maxDisp <= 0 {
		t.Error("projectile throw never moved the dot")
	}
	if !InertiaAvailable() {
		t.Error("projectile solver should not disable inertia")
	}
}

// --- Triggers ---

func TestTriggerMove(t *testing.T) {
	resetInertia(t)
	s := &recordingSolver{}
	cfg := DefaultConfig()
	cfg.Proximity = 20
	e := NewEngine(cfg, s)
	dots := BuildGrid(100, 100, 5, 10) // anchors at 5, 20, ..., 95

	slow := PointerSnapshot{X: 50, Y: 50, VX: 100, Speed: 100}
	if n := e.TriggerMove(dots, slow); n != 0 {
		t.Fatalf("speed at trigger started %d impulses, want 0", n)
	}

	fast := PointerSnapshot{X: 50, Y: 50, VX: 1000, Speed: 1000}
	if n := e.TriggerMove(dots, fast); n != 5 {
		t.Fatalf("started %d impulses, want 5 (center and 4 neighbours)", n)
	}
	// The dot under the pointer is pushed along the velocity only.
	if !containsVec(s.throws, Vec2{X: 5, Y: 0}) {
		t.Errorf("throws = %v, want center pushed by {5 0}", s.throws)
	}
	if !containsVec(s.throws, Vec2{X: -15 + 5, Y: 0}) {
		t.Errorf("throws = %v, want left neighbour pushed by {-10 0}", s.throws)
	}

	// Active dots are skipped.
	if n := e.TriggerMove(dots, fast); n != 0 {
		t.Errorf("second move started %d impulses, want 0", n)
	}
}

func TestTriggerMoveAbsentPointer(t *testing.T) {
	e := NewEngine(DefaultConfig(), nil)
	dots := BuildGrid(100, 100, 5, 10)
	p := PointerSnapshot{X: AbsentCoord, Y: AbsentCoord, VX: 5000, Speed: 5000}
	if n := e.TriggerMove(dots, p); n != 0 {
		t.Errorf("absent pointer started %d impulses", n)
	}
}

func TestTriggerShockFalloff(t *testing.T) {
	resetInertia(t)
	s := &recordingSolver{}
	cfg := DefaultConfig()
	cfg.ShockRadius = 100
	cfg.ShockStrength = 5
	e := NewEngine(cfg, s)

	dots := []*Dot{
		{CX: 50, CY: 0},  // half radius
		{CX: 0, CY: -25}, // quarter radius
		{CX: 100, CY: 0}, // on the radius: excluded
		{CX: 0, CY: 0},   // at the click: zero push
	}
	if n := e.TriggerShock(dots, 0, 0); n != 3 {
		t.Fatalf("started %d impulses, want 3", n)
	}
	want := []Vec2{{X: 125, Y: 0}, {X: 0, Y: -93.75}, {X: 0, Y: 0}}
	for i, w := range want {
		if !approxEqual(s.throws[i].X, w.X, epsilon) || !approxEqual(s.throws[i].Y, w.Y, epsilon) {
			t.Errorf("throw %d = %v, want %v", i, s.throws[i], w)
		}
	}
	if dots[2].ImpulseActive() {
		t.Error("dot on the radius should not be pushed")
	}
}

func TestTriggerShockSkipsActive(t *testing.T) {
	e := NewEngine(DefaultConfig(), nil)
	dots := BuildGrid(100, 100, 5, 10)
	if n := e.TriggerShock(dots, 50, 50); n != len(dots) {
		t.Fatalf("first shock started %d, want %d", n, len(dots))
	}
	if n := e.TriggerShock(dots, 50, 50); n != 0 {
		t.Errorf("second shock started %d, want 0", n)
	}
	if e.Active() != len(dots) {
		t.Errorf("Active = %d, want %d", e.Active(), len(dots))
	}
}

func TestEngineKeepsOrphanedDots(t *testing.T) {
	e := NewEngine(DefaultConfig(), nil)
	dots := BuildGrid(100, 100, 5, 10)
	e.TriggerShock(dots, 50, 50)

	// The engine finishes impulses without the grid that started them.
	for i := 0; i < 200 && e.Active() > 0; i++ {
		e.Update(1.0 / 60)
	}
	if e.Active() != 0 {
		t.Errorf("Active = %d after 200 frames, want 0", e.Active())
	}
}

func containsVec(vs []Vec2, want Vec2) bool {
	for _, v := range vs {
		if math.Abs(v.X-want.X) < epsilon && math.Abs(v.Y-want.Y) < epsilon {
			return true
		}
	}
	return false
}
