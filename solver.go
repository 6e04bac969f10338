package dotgrid

import (
	"fmt"
	"math"

	"github.com/charmbracelet/harmonica"
)

// InertiaSolver integrates a decelerating throw: a dot leaving (fromX, fromY)
// with velocity (vx, vy) and slowing at resistance px/s² until it stops.
// Returning an error (or panicking) permanently disables inertia for the
// process and the tween fallback takes over.
type InertiaSolver interface {
	Throw(fromX, fromY, vx, vy, resistance float64) (Trajectory, error)
}

// Trajectory is an in-flight throw.
type Trajectory interface {
	// Step advances by dt seconds and returns the new offset. done is true
	// once the throw has come to rest.
	Step(dt float64) (x, y float64, done bool, err error)
}

// ProjectileSolver integrates throws with a harmonica projectile at a fixed
// tick. The zero value ticks at 60 Hz.
type ProjectileSolver struct {
	TPS int
}

// Throw implements InertiaSolver.
func (s ProjectileSolver) Throw(fromX, fromY, vx, vy, resistance float64) (Trajectory, error) {
	if resistance <= 0 || math.IsNaN(resistance) || math.IsInf(resistance, 0) {
		return nil, fmt.Errorf("%w: resistance %v", ErrInertiaUnavailable, resistance)
	}
	if !finite(fromX, fromY, vx, vy) {
		return nil, fmt.Errorf("%w: non-finite throw", ErrInertiaUnavailable)
	}
	tps := s.TPS
	if tps <= 0 {
		tps = 60
	}
	speed := math.Hypot(vx, vy)
	tr := &projectileTrajectory{
		tick: harmonica.FPS(tps),
		dirX: vx,
		dirY: vy,
	}
	if speed == 0 {
		tr.done = true
		tr.pos = harmonica.Point{X: fromX, Y: fromY}
		return tr, nil
	}
	ax := -vx / speed * resistance
	ay := -vy / speed * resistance
	tr.proj = harmonica.NewProjectile(
		tr.tick,
		harmonica.Point{X: fromX, Y: fromY},
		harmonica.Vector{X: vx, Y: vy},
		harmonica.Vector{X: ax, Y: ay},
	)
	tr.pos = tr.proj.Position()
	return tr, nil
}

type projectileTrajectory struct {
	proj       *harmonica.Projectile
	tick       float64
	acc        float64
	dirX, dirY float64 // initial velocity; the throw ends when velocity reverses
	pos        harmonica.Point
	done       bool
}

func (t *projectileTrajectory) Step(dt float64) (float64, float64, bool, error) {
	if t.done {
		return t.pos.X, t.pos.Y, true, nil
	}
	t.acc += dt
	for t.acc >= t.tick && !t.done {
		t.acc -= t.tick
		t.pos = t.proj.Update()
		v := t.proj.Velocity()
		if v.X*t.dirX+v.Y*t.dirY <= 0 {
			t.done = true
		}
	}
	if !finite(t.pos.X, t.pos.Y) {
		return 0, 0, false, fmt.Errorf("%w: trajectory diverged", ErrInertiaUnavailable)
	}
	return t.pos.X, t.pos.Y, t.done, nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
