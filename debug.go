package dotgrid

import "time"

// frameStats holds per-frame metrics. Only populated in debug mode.
type frameStats struct {
	drawTime time.Duration
	dots     int
	drawn    int
	active   int
}

// SetDebugMode enables or disables per-frame stats logging at debug level.
func (e *Effect) SetDebugMode(enabled bool) {
	e.debug = enabled
}

// debugLog logs the stats of one frame.
func (e *Effect) debugLog(stats frameStats) {
	if !e.debug {
		return
	}
	Logger().Debug("dotgrid: frame",
		"draw", stats.drawTime,
		"dots", stats.dots,
		"drawn", stats.drawn,
		"impulses", stats.active,
	)
}
