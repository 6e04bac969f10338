package dotgrid

import (
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// HexToRGB converts a "#rrggbb" or "rrggbb" string (any case) to an RGB
// triple. Malformed input yields black.
func HexToRGB(hex string) RGB {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 || !isHexDigits(s) {
		return RGB{}
	}
	c, err := colorful.Hex("#" + s)
	if err != nil {
		return RGB{}
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}
}

// validHex reports whether HexToRGB accepts s.
func validHex(s string) bool {
	s = strings.TrimPrefix(s, "#")
	return len(s) == 6 && isHexDigits(s)
}

func isHexDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// toColorful converts c to a go-colorful color with components in [0, 1].
func (c RGB) toColorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// Lerp linearly interpolates each channel from c toward to by t and rounds
// to the nearest integer. t is clamped to [0, 1].
func (c RGB) Lerp(to RGB, t float64) RGB {
	t = clamp01(t)
	r, g, b := c.toColorful().BlendRgb(to.toColorful(), t).RGB255()
	return RGB{R: r, G: g, B: b}
}

// Floats returns the channels scaled to [0, 1].
func (c RGB) Floats() (r, g, b float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255
}

// parseCSSAlpha returns the alpha channel of a computed CSS color value.
// Empty strings and "transparent" are fully transparent. Colors without an
// alpha component, named colors and unparsable alpha values are opaque.
func parseCSSAlpha(s string) float64 {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "" || s == "transparent":
		return 0
	case strings.HasPrefix(s, "rgb"):
		open := strings.IndexByte(s, '(')
		end := strings.LastIndexByte(s, ')')
		if open < 0 || end <= open {
			return 1
		}
		body := s[open+1 : end]
		var parts []string
		if strings.Contains(body, ",") {
			parts = strings.Split(body, ",")
		} else {
			// Space syntax: rgb(r g b / a).
			if slash := strings.IndexByte(body, '/'); slash >= 0 {
				return parseAlphaComponent(body[slash+1:])
			}
			return 1
		}
		if len(parts) != 4 {
			return 1
		}
		return parseAlphaComponent(parts[3])
	case strings.HasPrefix(s, "#"):
		h := s[1:]
		switch len(h) {
		case 8:
			if v, err := strconv.ParseUint(h[6:8], 16, 8); err == nil {
				return float64(v) / 255
			}
		case 4:
			if v, err := strconv.ParseUint(h[3:4], 16, 8); err == nil {
				return float64(v) / 15
			}
		}
		return 1
	default:
		return 1
	}
}

func parseAlphaComponent(s string) float64 {
	s = strings.TrimSpace(s)
	if pct, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(strings.TrimSpace(pct), 64)
		if err != nil {
			return 1
		}
		return v / 100
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 1
	}
	return v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
