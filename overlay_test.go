package dotgrid

import "testing"

func TestLayerParentRootIsUntypedNil(t *testing.T) {
	l := NewLayer("root", Rect{Width: 10, Height: 10}, ComputedStyle{})
	if p := l.Parent(); p != nil {
		t.Errorf("Parent() = %#v, want nil interface", p)
	}
}

func TestLayerAddChildReparents(t *testing.T) {
	a := NewLayer("a", Rect{}, ComputedStyle{})
	b := NewLayer("b", Rect{}, ComputedStyle{})
	c := NewLayer("c", Rect{}, ComputedStyle{})

	a.AddChild(c)
	b.AddChild(c)

	if len(a.Children()) != 0 {
		t.Errorf("a has %d children, want 0", len(a.Children()))
	}
	if len(b.Children()) != 1 || b.Children()[0] != c {
		t.Fatalf("b children = %v, want [c]", b.Children())
	}
	if c.Parent() != Element(b) {
		t.Error("c.Parent() should be b")
	}
}

func TestLayerRemoveChild(t *testing.T) {
	a := NewLayer("a", Rect{}, ComputedStyle{})
	b := NewLayer("b", Rect{}, ComputedStyle{})
	a.AddChild(b)
	a.RemoveChild(b)
	if len(a.Children()) != 0 {
		t.Errorf("children = %d, want 0", len(a.Children()))
	}
	if b.Parent() != nil {
		t.Error("removed child should have no parent")
	}
	// Not a child: no-op.
	a.RemoveChild(b)
}

func TestElementFromPointZOrder(t *testing.T) {
	page := NewPage(400, 400)
	body := page.BodyLayer()
	low := NewLayer("low", Rect{X: 0, Y: 0, Width: 200, Height: 200}, solidStyle)
	high := NewLayer("high", Rect{X: 100, Y: 100, Width: 200, Height: 200}, solidStyle)
	body.AddChild(high)
	body.AddChild(low)
	high.SetZIndex(2)
	low.SetZIndex(1)

	tests := []struct {
		name string
		x, y float64
		want *Layer
	}{
		{"only low", 50, 50, low},
		{"overlap takes higher z", 150, 150, high},
		{"only high", 250, 250, high},
		{"body", 350, 50, body},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := page.ElementFromPoint(tt.x, tt.y)
			if got != Element(tt.want) {
				t.Errorf("ElementFromPoint(%v, %v) = %v, want %s", tt.x, tt.y, got, tt.want.Name)
			}
		})
	}

	// Raising low puts it on top of the overlap.
	low.SetZIndex(3)
	if got := page.ElementFromPoint(150, 150); got != Element(low) {
		t.Errorf("after SetZIndex, overlap = %v, want low", got)
	}
}

func TestElementFromPointInsertionOrderBreaksTies(t *testing.T) {
	page := NewPage(100, 100)
	first := NewLayer("first", Rect{Width: 50, Height: 50}, solidStyle)
	second := NewLayer("second", Rect{Width: 50, Height: 50}, solidStyle)
	page.BodyLayer().AddChild(first)
	page.BodyLayer().AddChild(second)
	if got := page.ElementFromPoint(10, 10); got != Element(second) {
		t.Errorf("got %v, want later sibling", got)
	}
}

func TestElementFromPointNested(t *testing.T) {
	page := NewPage(400, 400)
	panel := NewLayer("panel", Rect{X: 10, Y: 10, Width: 200, Height: 200}, solidStyle)
	button := NewLayer("button", Rect{X: 20, Y: 20, Width: 50, Height: 20}, transparentStyle)
	panel.AddChild(button)
	page.BodyLayer().AddChild(panel)

	if got := page.ElementFromPoint(30, 30); got != Element(button) {
		t.Errorf("got %v, want button", got)
	}
	if got := page.ElementFromPoint(150, 150); got != Element(panel) {
		t.Errorf("got %v, want panel", got)
	}
}

func TestElementFromPointSkipsInvisible(t *testing.T) {
	page := NewPage(400, 400)
	panel := NewLayer("panel", Rect{Width: 200, Height: 200}, solidStyle)
	child := NewLayer("child", Rect{Width: 50, Height: 50}, solidStyle)
	panel.AddChild(child)
	page.BodyLayer().AddChild(panel)
	panel.Visible = false

	if got := page.ElementFromPoint(10, 10); got != Element(page.BodyLayer()) {
		t.Errorf("got %v, want body (hidden subtree)", got)
	}
}

func TestElementFromPointOutsideBody(t *testing.T) {
	page := NewPage(100, 100)
	if got := page.ElementFromPoint(150, 50); got != nil {
		t.Errorf("got %v, want nil", got)
	}
	page.Resize(200, 100)
	if got := page.ElementFromPoint(150, 50); got != page.Body() {
		t.Errorf("after Resize got %v, want body", got)
	}
}

func TestElementFromPointHitShape(t *testing.T) {
	page := NewPage(400, 400)
	disc := NewLayer("disc", Rect{X: 0, Y: 0, Width: 100, Height: 100}, solidStyle)
	disc.HitShape = HitCircle{CenterX: 50, CenterY: 50, Radius: 50}
	page.BodyLayer().AddChild(disc)

	if got := page.ElementFromPoint(50, 50); got != Element(disc) {
		t.Errorf("center: got %v, want disc", got)
	}
	// Inside the bounds but outside the circle.
	if got := page.ElementFromPoint(5, 5); got != page.Body() {
		t.Errorf("corner: got %v, want body", got)
	}
}
