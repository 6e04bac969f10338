package dotgrid

import "strings"

// ComputedStyle is the subset of an element's computed style that decides
// whether it hides the grid.
type ComputedStyle struct {
	// Opacity in [0, 1].
	Opacity float64
	// BackgroundColor is a CSS color value ("rgba(0, 0, 0, 0)", "#fff", ...).
	BackgroundColor string
	// BackgroundImage is "none" or empty when the element has no image.
	BackgroundImage string
}

// Element is a node of the host's element tree.
type Element interface {
	// Parent returns the containing element, or nil at the document root.
	Parent() Element
	// Style returns the element's computed style.
	Style() ComputedStyle
}

// Document resolves screen points to elements.
type Document interface {
	// ElementFromPoint returns the topmost element at (x, y), or nil.
	ElementFromPoint(x, y float64) Element
	// Body returns the element the occlusion walk stops at.
	Body() Element
}

// IsOpaque reports whether an element with style s paints an area that
// would hide the grid.
func IsOpaque(s ComputedStyle) bool {
	if s.Opacity < opaqueThreshold {
		return false
	}
	if img := strings.TrimSpace(s.BackgroundImage); img != "" && img != "none" {
		return true
	}
	return parseCSSAlpha(s.BackgroundColor) >= opaqueThreshold
}

// contains reports whether el is root or one of its descendants.
func contains(root, el Element) bool {
	for e := el; e != nil; e = e.Parent() {
		if e == root {
			return true
		}
	}
	return false
}

// IsBlocked reports whether an opaque element between hit and body covers
// the pointer, so the effect should treat the pointer as absent. Elements
// inside root never block. The document root (an element with no parent)
// and body are never tested for opacity.
func IsBlocked(hit, root, body Element) bool {
	if hit == nil || root == nil {
		return false
	}
	if contains(root, hit) {
		return false
	}
	for el := hit; el != nil && el != body; el = el.Parent() {
		if contains(root, el) {
			return false
		}
		if el.Parent() == nil {
			break
		}
		if IsOpaque(el.Style()) {
			return true
		}
	}
	return false
}
