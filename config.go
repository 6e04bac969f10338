package dotgrid

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Config controls the look and physics of a dot grid. Zero-valued fields
// take the defaults listed on each field. A Config is copied at
// construction; changing it afterwards has no effect on a running grid.
type Config struct {
	// DotSize is the dot diameter in CSS pixels. Default 16.
	DotSize float64 `json:"dotSize,omitempty"`
	// Gap is the spacing between dot edges in CSS pixels. Default 32.
	Gap float64 `json:"gap,omitempty"`
	// BaseColor is the hex color of dots away from the pointer. Default #5227FF.
	BaseColor string `json:"baseColor,omitempty"`
	// ActiveColor is the hex color dots blend toward near the pointer.
	// Default #5227FF.
	ActiveColor string `json:"activeColor,omitempty"`
	// Proximity is the radius within which the pointer tints and pushes
	// dots. Default 150.
	Proximity float64 `json:"proximity,omitempty"`
	// SpeedTrigger is the pointer speed (px/s) above which moves push dots.
	// Default 100.
	SpeedTrigger float64 `json:"speedTrigger,omitempty"`
	// ShockRadius is the click shock radius. Default 250.
	ShockRadius float64 `json:"shockRadius,omitempty"`
	// ShockStrength scales click displacement. Default 5.
	ShockStrength float64 `json:"shockStrength,omitempty"`
	// MaxSpeed clamps tracked pointer speed (px/s). Default 5000.
	MaxSpeed float64 `json:"maxSpeed,omitempty"`
	// Resistance controls how fast a pushed dot decelerates. Default 750.
	Resistance float64 `json:"resistance,omitempty"`
	// ReturnDuration is the elastic settle time in seconds. Default 1.5.
	ReturnDuration float64 `json:"returnDuration,omitempty"`
	// VelocityBlend is the fraction of pointer velocity added to the
	// anchor-minus-pointer push vector. Default 0.005.
	VelocityBlend float64 `json:"velocityBlend,omitempty"`
	// MoveThrottle bounds the pointer-move delivery rate. Default 50ms.
	MoveThrottle time.Duration `json:"-"`
	// MoveThrottleMs is MoveThrottle in milliseconds for JSON configs.
	MoveThrottleMs float64 `json:"moveThrottleMs,omitempty"`
}

// DefaultConfig returns the configuration used for zero-valued fields.
func DefaultConfig() Config {
	return Config{
		DotSize:        16,
		Gap:            32,
		BaseColor:      "#5227FF",
		ActiveColor:    "#5227FF",
		Proximity:      150,
		SpeedTrigger:   100,
		ShockRadius:    250,
		ShockStrength:  5,
		MaxSpeed:       5000,
		Resistance:     750,
		ReturnDuration: 1.5,
		VelocityBlend:  0.005,
		MoveThrottle:   50 * time.Millisecond,
	}
}

// withDefaults returns a copy of c with zero fields replaced by defaults.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.DotSize == 0 {
		c.DotSize = d.DotSize
	}
	if c.Gap == 0 {
		c.Gap = d.Gap
	}
	if c.BaseColor == "" {
		c.BaseColor = d.BaseColor
	}
	if c.ActiveColor == "" {
		c.ActiveColor = d.ActiveColor
	}
	if c.Proximity == 0 {
		c.Proximity = d.Proximity
	}
	if c.SpeedTrigger == 0 {
		c.SpeedTrigger = d.SpeedTrigger
	}
	if c.ShockRadius == 0 {
		c.ShockRadius = d.ShockRadius
	}
	if c.ShockStrength == 0 {
		c.ShockStrength = d.ShockStrength
	}
	if c.MaxSpeed == 0 {
		c.MaxSpeed = d.MaxSpeed
	}
	if c.Resistance == 0 {
		c.Resistance = d.Resistance
	}
	if c.ReturnDuration == 0 {
		c.ReturnDuration = d.ReturnDuration
	}
	if c.VelocityBlend == 0 {
		c.VelocityBlend = d.VelocityBlend
	}
	if c.MoveThrottle == 0 && c.MoveThrottleMs > 0 {
		c.MoveThrottle = time.Duration(c.MoveThrottleMs * float64(time.Millisecond))
	}
	if c.MoveThrottle == 0 {
		c.MoveThrottle = d.MoveThrottle
	}
	return c
}

// Validate reports the first invalid field after defaults are applied.
func (c Config) Validate() error {
	c = c.withDefaults()
	positive := []struct {
		name string
		v    float64
	}{
		{"dotSize", c.DotSize},
		{"gap", c.Gap},
		{"proximity", c.Proximity},
		{"speedTrigger", c.SpeedTrigger},
		{"shockRadius", c.ShockRadius},
		{"shockStrength", c.ShockStrength},
		{"maxSpeed", c.MaxSpeed},
		{"resistance", c.Resistance},
		{"returnDuration", c.ReturnDuration},
		{"velocityBlend", c.VelocityBlend},
		{"moveThrottleMs", c.MoveThrottleMs},
	}
	for _, f := range positive {
		if !finite(f.v) {
			return fmt.Errorf("%w: %s must be a finite number, got %v", ErrInvalidConfig, f.name, f.v)
		}
		if f.v < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalidConfig, f.name, f.v)
		}
	}
	if c.MoveThrottle < 0 {
		return fmt.Errorf("%w: moveThrottle must not be negative, got %v", ErrInvalidConfig, c.MoveThrottle)
	}
	if !validHex(c.BaseColor) {
		return fmt.Errorf("%w: baseColor %q is not a #rrggbb color", ErrInvalidConfig, c.BaseColor)
	}
	if !validHex(c.ActiveColor) {
		return fmt.Errorf("%w: activeColor %q is not a #rrggbb color", ErrInvalidConfig, c.ActiveColor)
	}
	return nil
}

// LoadConfig parses a JSON config. Missing fields take their defaults.
func LoadConfig(data []byte) (Config, error) {
	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("dotgrid: parse config: %w", err)
	}
	c = c.withDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// ConfigFromAttributes builds a Config from data-attribute style keys
// ("dot-size", "gap", "base-color", "active-color", "proximity",
// "speed-trigger", "shock-radius", "shock-strength", "max-speed",
// "resistance", "return-duration", "velocity-blend", "move-throttle-ms").
// Unknown keys are ignored. Empty values keep the default.
func ConfigFromAttributes(attrs map[string]string) (Config, error) {
	var c Config
	numeric := map[string]*float64{
		"dot-size":         &c.DotSize,
		"gap":              &c.Gap,
		"proximity":        &c.Proximity,
		"speed-trigger":    &c.SpeedTrigger,
		"shock-radius":     &c.ShockRadius,
		"shock-strength":   &c.ShockStrength,
		"max-speed":        &c.MaxSpeed,
		"resistance":       &c.Resistance,
		"return-duration":  &c.ReturnDuration,
		"velocity-blend":   &c.VelocityBlend,
		"move-throttle-ms": &c.MoveThrottleMs,
	}
	for key, raw := range attrs {
		if raw == "" {
			continue
		}
		switch key {
		case "base-color":
			c.BaseColor = raw
			continue
		case "active-color":
			c.ActiveColor = raw
			continue
		}
		dst, ok := numeric[key]
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Config{}, fmt.Errorf("dotgrid: attribute %s: %w", key, err)
		}
		*dst = v
	}
	c = c.withDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
