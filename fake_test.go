package art

import (
	"errors"
	"fmt"
	"image"
	"slices"
	"strings"
)

// callLog records backend mutations in call order.
type callLog struct {
	calls []string
}

func (l *callLog) add(format string, args ...any) {
	l.calls = append(l.calls, fmt.Sprintf(format, args...))
}

func (l *callLog) reset() { l.calls = nil }

// count returns how many calls contain substr.
func (l *callLog) count(substr string) int {
	n := 0
	for _, c := range l.calls {
		if strings.Contains(c, substr) {
			n++
		}
	}
	return n
}

// fakeBackend builds recording nodes. With plain set, shapes and texts lack
// the optional fill and blend capabilities.
type fakeBackend struct {
	log    callLog
	nextID int
	plain  bool

	canvasErr error
	canvases  []*fakeCanvas
}

func newFakeBackend() *fakeBackend { return &fakeBackend{} }

func (b *fakeBackend) newNode(kind string) *fakeNode {
	b.nextID++
	return &fakeNode{
		b:         b,
		id:        fmt.Sprintf("%s%d", kind, b.nextID),
		transform: Identity,
		visible:   true,
		opacity:   1,
	}
}

func (b *fakeBackend) NewGroup() Node             { return b.newNode("group") }
func (b *fakeBackend) NewClippingRectangle() Node { return b.newNode("clip") }

func (b *fakeBackend) NewShape() ShapeNode {
	n := b.newNode("shape")
	if b.plain {
		return plainShape{n}
	}
	return n
}

func (b *fakeBackend) NewText(text string, font Font, align Alignment, path *Path) TextNode {
	n := b.newNode("text")
	n.text, n.font, n.align = text, font, align
	b.log.add("%s.NewText(%q)", n.id, text)
	if b.plain {
		return plainText{n}
	}
	return n
}

func (b *fakeBackend) NewCanvas(w, h int) (Canvas, error) {
	if b.canvasErr != nil {
		return nil, b.canvasErr
	}
	c := &fakeCanvas{root: b.newNode("root"), w: w, h: h, b: b}
	b.canvases = append(b.canvases, c)
	return c, nil
}

// activeHandlers counts live handlers on the given nodes.
func activeHandlers(nodes ...*fakeNode) int {
	n := 0
	for _, fn := range nodes {
		for _, hs := range fn.handlers {
			for _, h := range hs {
				if !h.removed {
					n++
				}
			}
		}
	}
	return n
}

type plainShape struct{ ShapeNode }
type plainText struct{ TextNode }

func asFake(n Node) *fakeNode {
	switch v := n.(type) {
	case *fakeNode:
		return v
	case plainShape:
		return asFake(v.ShapeNode)
	case plainText:
		return asFake(v.TextNode)
	}
	panic(fmt.Sprintf("fake: foreign node %T", n))
}

type fakeHandler struct {
	fn       func(Event)
	removed  bool
	unsubbed int
}

type fakeNode struct {
	b  *fakeBackend
	id string

	transform Transform
	visible   bool
	opacity   float64
	cursor    string
	title     string
	w, h      float64

	fill   Color
	stroke Color
	dash   []float64
	path   *Path
	text   string
	font   Font
	align  Alignment

	parent   *fakeNode
	children []*fakeNode
	handlers map[EventType][]*fakeHandler
}

func (n *fakeNode) Transform() Transform { return n.transform }

func (n *fakeNode) TransformTo(t Transform) {
	n.b.log.add("%s.TransformTo(%v)", n.id, t.Array())
	n.transform = t
}

func (n *fakeNode) Show() {
	n.b.log.add("%s.Show", n.id)
	n.visible = true
}

func (n *fakeNode) Hide() {
	n.b.log.add("%s.Hide", n.id)
	n.visible = false
}

func (n *fakeNode) Indicate(cursor, title string) {
	n.b.log.add("%s.Indicate(%q, %q)", n.id, cursor, title)
	n.cursor, n.title = cursor, title
}

func (n *fakeNode) detach() {
	if n.parent == nil {
		return
	}
	p := n.parent
	p.children = slices.DeleteFunc(p.children, func(c *fakeNode) bool { return c == n })
	n.parent = nil
}

func (n *fakeNode) Inject(parent Node) {
	p := asFake(parent)
	n.b.log.add("%s.Inject(%s)", n.id, p.id)
	n.detach()
	p.children = append(p.children, n)
	n.parent = p
}

func (n *fakeNode) InjectBefore(sibling Node) {
	s := asFake(sibling)
	n.b.log.add("%s.InjectBefore(%s)", n.id, s.id)
	n.detach()
	p := s.parent
	i := slices.Index(p.children, s)
	p.children = slices.Insert(p.children, i, n)
	n.parent = p
}

func (n *fakeNode) Eject() {
	n.b.log.add("%s.Eject", n.id)
	n.detach()
}

func (n *fakeNode) Subscribe(t EventType, fn func(Event)) func() {
	n.b.log.add("%s.Subscribe(%s)", n.id, t)
	if n.handlers == nil {
		n.handlers = make(map[EventType][]*fakeHandler)
	}
	h := &fakeHandler{fn: fn}
	n.handlers[t] = append(n.handlers[t], h)
	return func() {
		n.b.log.add("%s.Unsubscribe(%s)", n.id, t)
		h.unsubbed++
		h.removed = true
	}
}

// emit delivers e to every live handler for its type.
func (n *fakeNode) emit(e Event) {
	e.Target = n
	for _, h := range n.handlers[e.Type] {
		if !h.removed {
			h.fn(e)
		}
	}
}

func (n *fakeNode) Blend(opacity float64) {
	n.b.log.add("%s.Blend(%v)", n.id, opacity)
	n.opacity = opacity
}

func (n *fakeNode) SetSize(w, h float64) {
	n.b.log.add("%s.SetSize(%v, %v)", n.id, w, h)
	n.w, n.h = w, h
}

func (n *fakeNode) Fill(c Color) {
	n.b.log.add("%s.Fill(%v)", n.id, c)
	n.fill = c
}

func (n *fakeNode) Stroke(c Color, width float64, cap LineCap, join LineJoin, dash []float64) {
	n.b.log.add("%s.Stroke(%v, %v, %d, %d, %v)", n.id, c, width, cap, join, dash)
	n.stroke, n.dash = c, dash
}

func (n *fakeNode) FillLinear(stops []ColorStop, x1, y1, x2, y2 float64) {
	n.b.log.add("%s.FillLinear(%d, %v, %v, %v, %v)", n.id, len(stops), x1, y1, x2, y2)
}

func (n *fakeNode) FillRadial(stops []ColorStop, fx, fy, rx, ry, cx, cy float64) {
	n.b.log.add("%s.FillRadial(%d, %v, %v, %v, %v, %v, %v)", n.id, len(stops), fx, fy, rx, ry, cx, cy)
}

func (n *fakeNode) FillImage(img image.Image, w, h, left, top float64) {
	n.b.log.add("%s.FillImage(%v, %v, %v, %v)", n.id, w, h, left, top)
}

func (n *fakeNode) DrawPath(p *Path, w, h float64) {
	n.b.log.add("%s.DrawPath(%s, %v, %v)", n.id, p, w, h)
	n.path, n.w, n.h = p, w, h
}

func (n *fakeNode) DrawText(text string, font Font, align Alignment, path *Path) {
	n.b.log.add("%s.DrawText(%q)", n.id, text)
	n.text, n.font, n.align, n.path = text, font, align, path
}

func (n *fakeNode) childIDs() []string {
	ids := make([]string, len(n.children))
	for i, c := range n.children {
		ids[i] = c.id
	}
	return ids
}

type fakeCanvas struct {
	b       *fakeBackend
	root    *fakeNode
	w, h    int
	renders int
	closed  bool

	resizeErr error
}

func (c *fakeCanvas) Root() Node { return c.root }

func (c *fakeCanvas) Resize(w, h int) error {
	c.b.log.add("canvas.Resize(%d, %d)", w, h)
	if c.resizeErr != nil {
		return c.resizeErr
	}
	c.w, c.h = w, h
	return nil
}

func (c *fakeCanvas) Render() error {
	c.b.log.add("canvas.Render")
	c.renders++
	return nil
}

func (c *fakeCanvas) Close() error {
	c.closed = true
	return nil
}

var errFake = errors.New("fake failure")

// testHost returns a host over a fresh fake backend and a container over one
// of its canvases.
func testHost() (*Host, *fakeBackend, *Container) {
	b := newFakeBackend()
	h := NewHost(b)
	c, _ := b.NewCanvas(100, 100)
	return h, b, NewContainer(c)
}

func mustCreate(h *Host, root *Container, tag string, p Props) *Instance {
	inst, err := h.CreateInstance(tag, p, root, HostContext{})
	if err != nil {
		panic(err)
	}
	return inst
}
