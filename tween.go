package dotgrid

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// motion advances a dot's offset. step returns the new offset and whether
// the motion has finished. A non-nil error means the motion failed and the
// dot must be recovered by the caller.
type motion interface {
	step(dt float64) (x, y float64, done bool, err error)
}

// tweenPair animates an X/Y offset pair with two gween tweens sharing one
// duration and easing.
type tweenPair struct {
	x, y *gween.Tween
}

func newTweenPair(fromX, fromY, toX, toY, duration float64, fn ease.TweenFunc) *tweenPair {
	d := float32(duration)
	return &tweenPair{
		x: gween.New(float32(fromX), float32(toX), d, fn),
		y: gween.New(float32(fromY), float32(toY), d, fn),
	}
}

func (p *tweenPair) step(dt float64) (float64, float64, bool, error) {
	x, xDone := p.x.Update(float32(dt))
	y, yDone := p.y.Update(float32(dt))
	return float64(x), float64(y), xDone && yDone, nil
}

// elasticOut returns an out-elastic easing with the given amplitude and
// period (as fractions of the duration). Amplitudes below 1 are treated as
// 1 for overshoot and shorten the period instead.
func elasticOut(amplitude, period float64) ease.TweenFunc {
	p1 := math.Max(amplitude, 1)
	p2 := period / math.Min(amplitude, 1)
	p3 := p2 / (2 * math.Pi) * math.Asin(1/p1)
	w := 2 * math.Pi / p2
	return func(t, b, c, d float32) float32 {
		if d <= 0 {
			return b + c
		}
		p := float64(t / d)
		if p >= 1 {
			return b + c
		}
		v := p1*math.Pow(2, -10*p)*math.Sin((p-p3)*w) + 1
		return b + c*float32(v)
	}
}

// returnEase is the settle curve used for every return phase.
var returnEase = elasticOut(1, 0.75)

// pushEase is the fallback displacement curve.
var pushEase ease.TweenFunc = ease.OutQuad
