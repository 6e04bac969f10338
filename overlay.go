package dotgrid

import "sort"

// HitShape is a custom hit region in absolute coordinates.
type HitShape interface {
	Contains(x, y float64) bool
}

// HitCircle is a circular hit area.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// Layer is a rectangular element of an overlay tree. Layers stand in for
// DOM elements in hosts that have none, such as UI panels drawn over the
// grid in an Ebitengine game.
type Layer struct {
	Name string
	// Bounds in absolute (client) coordinates.
	Bounds Rect
	// HitShape overrides Bounds for hit testing when set.
	HitShape HitShape
	// Computed style used by the occlusion test.
	Computed ComputedStyle
	Visible  bool
	ZIndex   int

	parent         *Layer
	children       []*Layer
	childrenSorted bool
	sortedChildren []*Layer
}

// NewLayer creates a visible layer.
func NewLayer(name string, bounds Rect, style ComputedStyle) *Layer {
	return &Layer{
		Name:           name,
		Bounds:         bounds,
		Computed:       style,
		Visible:        true,
		childrenSorted: true,
	}
}

// Parent implements Element. It returns nil (not a typed nil) at the root.
func (l *Layer) Parent() Element {
	if l.parent == nil {
		return nil
	}
	return l.parent
}

// Style implements Element.
func (l *Layer) Style() ComputedStyle {
	return l.Computed
}

// Children returns the child list. The returned slice MUST NOT be mutated.
func (l *Layer) Children() []*Layer {
	return l.children
}

// AddChild appends child, detaching it from any previous parent first.
func (l *Layer) AddChild(child *Layer) {
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = l
	l.children = append(l.children, child)
	l.childrenSorted = false
}

// RemoveChild detaches child. It is a no-op if child is not a direct child.
func (l *Layer) RemoveChild(child *Layer) {
	for i, c := range l.children {
		if c == child {
			copy(l.children[i:], l.children[i+1:])
			l.children[len(l.children)-1] = nil
			l.children = l.children[:len(l.children)-1]
			child.parent = nil
			l.childrenSorted = false
			return
		}
	}
}

// SetZIndex changes the painter order of l among its siblings.
func (l *Layer) SetZIndex(z int) {
	if l.ZIndex == z {
		return
	}
	l.ZIndex = z
	if l.parent != nil {
		l.parent.childrenSorted = false
	}
}

func (l *Layer) containsPoint(x, y float64) bool {
	if l.HitShape != nil {
		return l.HitShape.Contains(x, y)
	}
	return l.Bounds.Contains(x, y)
}

// paintOrder returns children sorted by ZIndex, stable on insertion order.
func (l *Layer) paintOrder() []*Layer {
	if !l.childrenSorted {
		l.sortedChildren = append(l.sortedChildren[:0], l.children...)
		sort.SliceStable(l.sortedChildren, func(i, j int) bool {
			return l.sortedChildren[i].ZIndex < l.sortedChildren[j].ZIndex
		})
		l.childrenSorted = true
	}
	return l.sortedChildren
}

// collectVisible walks the tree in painter order, appending visible layers.
func collectVisible(l *Layer, buf []*Layer) []*Layer {
	if !l.Visible {
		return buf
	}
	buf = append(buf, l)
	for _, child := range l.paintOrder() {
		buf = collectVisible(child, buf)
	}
	return buf
}

// Page is the root of an overlay tree and implements Document.
type Page struct {
	body   *Layer
	hitBuf []*Layer
}

// NewPage creates a page whose body covers width×height. The body has a
// document root parent so that it is never tested for opacity.
func NewPage(width, height float64) *Page {
	doc := NewLayer("document", Rect{Width: width, Height: height}, ComputedStyle{})
	body := NewLayer("body", Rect{Width: width, Height: height}, ComputedStyle{Opacity: 1})
	doc.AddChild(body)
	return &Page{body: body}
}

// Body implements Document.
func (p *Page) Body() Element {
	return p.body
}

// BodyLayer returns the body as a *Layer for building the tree.
func (p *Page) BodyLayer() *Layer {
	return p.body
}

// Resize updates the document and body bounds.
func (p *Page) Resize(width, height float64) {
	p.body.Bounds = Rect{Width: width, Height: height}
	if p.body.parent != nil {
		p.body.parent.Bounds = p.body.Bounds
	}
}

// ElementFromPoint implements Document. It returns the topmost visible
// layer containing (x, y), or nil outside the body.
func (p *Page) ElementFromPoint(x, y float64) Element {
	p.hitBuf = collectVisible(p.body, p.hitBuf[:0])
	// Reverse painter order: topmost first.
	for i := len(p.hitBuf) - 1; i >= 0; i-- {
		l := p.hitBuf[i]
		if l.containsPoint(x, y) {
			return l
		}
	}
	return nil
}
