package vg

import (
	"strings"
	"testing"

	"github.com/phanxgames/art"
)

// --- Constructor defaults ---

func TestConstructorDefaults(t *testing.T) {
	for _, n := range []*Node{
		NewGroup("g"), NewClip("c", 10, 20), NewShape("s"),
		NewText("t", "hi", art.FontSpec{}, art.AlignLeft),
	} {
		if n.ID == 0 {
			t.Errorf("%s: ID should be non-zero", n.Type)
		}
		if !n.Visible() || n.Alpha() != 1 {
			t.Errorf("%s: visible=%v alpha=%v", n.Type, n.Visible(), n.Alpha())
		}
		if n.Transform() != art.Identity {
			t.Errorf("%s: transform = %+v", n.Type, n.Transform())
		}
	}
	if w, h := NewClip("c", 10, 20).Size(); w != 10 || h != 20 {
		t.Errorf("clip size = %vx%v", w, h)
	}
}

// --- Tree manipulation ---

func TestAddChildReparents(t *testing.T) {
	a, b := NewGroup("a"), NewGroup("b")
	c := NewShape("c")
	a.AddChild(c)
	b.AddChild(c)
	if a.NumChildren() != 0 || b.NumChildren() != 1 || c.Parent() != b {
		t.Errorf("a=%d b=%d parent=%v", a.NumChildren(), b.NumChildren(), c.Parent())
	}
}

func TestAddChildBefore(t *testing.T) {
	p := NewGroup("p")
	x, y, z := NewShape("x"), NewShape("y"), NewShape("z")
	p.AddChild(x)
	p.AddChild(y)
	p.AddChildBefore(z, x)
	assertOrder(t, p, "z", "x", "y")

	// moving within the same parent
	p.AddChildBefore(y, z)
	assertOrder(t, p, "y", "z", "x")
}

func TestInjectBridgesArtNodes(t *testing.T) {
	p := NewGroup("p")
	x, y := NewShape("x"), NewShape("y")
	x.Inject(p)
	y.InjectBefore(x)
	assertOrder(t, p, "y", "x")
	y.Eject()
	y.Eject()
	assertOrder(t, p, "x")
}

func TestTreePanics(t *testing.T) {
	p := NewGroup("p")
	c := NewGroup("c")
	p.AddChild(c)
	cases := map[string]func(){
		"nil child":        func() { p.AddChild(nil) },
		"cycle":            func() { c.AddChild(p) },
		"self":             func() { p.AddChild(p) },
		"foreign sibling":  func() { p.AddChildBefore(NewShape("s"), NewShape("o")) },
		"before itself":    func() { p.AddChildBefore(c, c) },
		"remove non-child": func() { p.RemoveChild(NewShape("o")) },
		"foreign art node": func() { NewShape("s").Inject(fakeArtNode{}) },
		"detached sibling": func() { NewShape("s").InjectBefore(NewShape("o")) },
	}
	for name, fn := range cases {
		t.Run(name, func(t *testing.T) {
			defer func() {
				r := recover()
				if r == nil {
					t.Fatal("expected panic")
				}
				if msg, ok := r.(string); !ok || !strings.HasPrefix(msg, "vg: ") {
					t.Errorf("panic = %v, want a vg: message", r)
				}
			}()
			fn()
		})
	}
}

type fakeArtNode struct{ art.Node }

func TestWorldTransform(t *testing.T) {
	p := NewGroup("p")
	p.TransformTo(art.NewTransform(2, 0, 0, 2, 10, 0))
	c := NewShape("c")
	c.TransformTo(art.NewTransform(1, 0, 0, 1, 5, 5))
	p.AddChild(c)

	x, y := c.LocalToWorld(1, 1)
	if x != 22 || y != 12 {
		t.Errorf("LocalToWorld = (%v, %v), want (22, 12)", x, y)
	}
	lx, ly := c.WorldToLocal(22, 12)
	if lx != 1 || ly != 1 {
		t.Errorf("WorldToLocal = (%v, %v), want (1, 1)", lx, ly)
	}
}

// --- Paint state ---

func TestFillAndStrokeZeroRemoves(t *testing.T) {
	n := NewShape("s")
	n.Fill(art.ColorBlack)
	if c, ok := n.FillColor(); !ok || c != art.ColorBlack {
		t.Errorf("FillColor = %v, %v", c, ok)
	}
	n.Fill(art.Color{})
	if n.fill.kind != paintNone {
		t.Error("zero fill should clear")
	}
	n.FillLinear([]art.ColorStop{{0, art.ColorBlack}}, 0, 0, 1, 0)
	if _, ok := n.FillColor(); ok {
		t.Error("gradient fill reported as solid")
	}

	n.Stroke(art.ColorBlack, 2, art.CapButt, art.JoinMiter, []float64{1, 2})
	if n.stroke.width != 2 || len(n.stroke.dash) != 2 {
		t.Errorf("stroke = %+v", n.stroke)
	}
	n.Stroke(art.Color{}, 2, art.CapButt, art.JoinMiter, nil)
	if !n.stroke.color.IsZero() || n.stroke.width != 0 || n.stroke.dash != nil {
		t.Errorf("zero stroke should clear, got %+v", n.stroke)
	}
}

func TestDrawTextParsesFont(t *testing.T) {
	n := NewText("t", "", art.FontSpec{Size: 10}, art.AlignLeft)
	n.DrawText("hello", art.FontString("bold 24px mono"), art.AlignCenter, nil)
	if n.Text() != "hello" || n.font.Size != 24 || n.font.Weight != "bold" || n.align != art.AlignCenter {
		t.Errorf("text=%q font=%+v align=%v", n.Text(), n.font, n.align)
	}
	// an unusable font keeps the previous face
	n.DrawText("again", art.FontString("huge"), art.AlignLeft, nil)
	if n.font.Size != 24 {
		t.Errorf("font replaced by unusable spec: %+v", n.font)
	}
	// no font returns to the default face
	n.DrawText("plain", nil, art.AlignLeft, nil)
	if n.font != (art.FontSpec{}) {
		t.Errorf("nil font kept %+v, want the default spec", n.font)
	}
	if n.textDraws != 3 {
		t.Errorf("textDraws = %d", n.textDraws)
	}
}

// --- Subscriptions ---

func TestSubscribeAndRemove(t *testing.T) {
	n := NewShape("s")
	var calls int
	unsub := n.Subscribe(art.EventClick, func(art.Event) { calls++ })
	other := n.Subscribe(art.EventClick, func(art.Event) { calls += 10 })
	if n.Subscriptions() != 2 {
		t.Fatalf("subscriptions = %d", n.Subscriptions())
	}
	fire(art.EventClick, n, 0, 0, ButtonLeft)
	if calls != 11 {
		t.Errorf("calls = %d, want 11", calls)
	}
	unsub()
	unsub()
	fire(art.EventClick, n, 0, 0, ButtonLeft)
	if calls != 21 || n.Subscriptions() != 1 {
		t.Errorf("calls = %d subs = %d", calls, n.Subscriptions())
	}
	other()
	if n.Subscriptions() != 0 {
		t.Errorf("subscriptions = %d", n.Subscriptions())
	}
}

func TestFireBubbles(t *testing.T) {
	root := NewGroup("root")
	mid := NewGroup("mid")
	leaf := NewShape("leaf")
	root.AddChild(mid)
	mid.AddChild(leaf)

	var got []string
	record := func(name string) func(art.Event) {
		return func(e art.Event) {
			if e.Target != leaf {
				t.Errorf("%s: target = %v, want leaf", name, e.Target)
			}
			got = append(got, name)
		}
	}
	leaf.Subscribe(art.EventMouseDown, record("leaf"))
	root.Subscribe(art.EventMouseDown, record("root"))
	mid.Subscribe(art.EventMouseUp, record("mid-up"))

	fire(art.EventMouseDown, leaf, 1, 1, ButtonLeft)
	if strings.Join(got, ",") != "leaf,root" {
		t.Errorf("delivery = %v", got)
	}
}

func assertOrder(t *testing.T, p *Node, names ...string) {
	t.Helper()
	if p.NumChildren() != len(names) {
		t.Fatalf("children = %d, want %d", p.NumChildren(), len(names))
	}
	for i, name := range names {
		if got := p.ChildAt(i).Name; got != name {
			t.Errorf("child %d = %q, want %q", i, got, name)
		}
	}
}
