package vg

import (
	"image"

	"github.com/gogpu/gg/scene"

	"github.com/phanxgames/art"
)

// NodeType distinguishes the four scene object kinds.
type NodeType uint8

const (
	NodeTypeGroup NodeType = iota // container with no visual representation
	NodeTypeClip                  // container that clips its subtree to its size
	NodeTypeShape                 // filled and stroked path
	NodeTypeText                  // string drawn with a font face
)

var nodeTypeNames = [...]string{"group", "clip", "shape", "text"}

func (t NodeType) String() string {
	if int(t) < len(nodeTypeNames) {
		return nodeTypeNames[t]
	}
	return "unknown"
}

// nodeIDCounter is a plain counter; the backend is single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

type paintKind uint8

const (
	paintNone paintKind = iota
	paintSolid
	paintLinear
	paintRadial
	paintImage
)

// paint is the fill state of a renderable node.
type paint struct {
	kind  paintKind
	color art.Color
	stops []art.ColorStop

	// linear: x1 y1 x2 y2; radial: fx fy rx ry cx cy
	geom [6]float64

	image                    image.Image
	width, height, left, top float64
}

// strokeStyle is the outline state of a renderable node.
type strokeStyle struct {
	color art.Color
	width float64
	cap   art.LineCap
	join  art.LineJoin
	dash  []float64
}

// Node is the vg scene graph element. A single flat struct is used for every
// node type; fields a type does not use stay zero.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	parent   *Node
	children []*Node

	transform art.Transform
	visible   bool
	alpha     float64

	// Group and clip size; clips cut their subtree to (0, 0, width, height).
	width, height float64

	cursor, title string

	fill   paint
	stroke strokeStyle

	// Shape fields (NodeTypeShape)
	path                  *art.Path
	pathWidth, pathHeight float64
	hit                   *scene.Path
	hitSrc                *art.Path
	hitDelta              int

	// Text fields (NodeTypeText)
	text     string
	font     art.FontSpec
	align    art.Alignment
	textPath *art.Path

	handlers handlerRegistry

	// Counters for draw calls received from the host, read by tests and
	// debug logging.
	pathDraws, textDraws int
}

func newNode(t NodeType, name string) *Node {
	return &Node{
		ID:        nextNodeID(),
		Name:      name,
		Type:      t,
		transform: art.Identity,
		visible:   true,
		alpha:     1,
	}
}

// NewGroup creates a group node.
func NewGroup(name string) *Node { return newNode(NodeTypeGroup, name) }

// NewClip creates a clipping rectangle node of the given size.
func NewClip(name string, width, height float64) *Node {
	n := newNode(NodeTypeClip, name)
	n.width, n.height = width, height
	return n
}

// NewShape creates a shape node with no path.
func NewShape(name string) *Node { return newNode(NodeTypeShape, name) }

// NewText creates a text node.
func NewText(name, text string, font art.FontSpec, align art.Alignment) *Node {
	n := newNode(NodeTypeText, name)
	n.text = text
	n.font = font
	n.align = align
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	n.checkChild(child)
	child.detach()
	child.parent = n
	n.children = append(n.children, child)
}

// AddChildBefore inserts child immediately before sibling, which must be a
// child of n. Same reparenting and cycle-check behavior as AddChild.
func (n *Node) AddChildBefore(child, sibling *Node) {
	n.checkChild(child)
	if sibling == nil || sibling.parent != n {
		panic("vg: sibling's parent is not this node")
	}
	if child == sibling {
		panic("vg: cannot insert a node before itself")
	}
	child.detach()
	index := n.indexOf(sibling)
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	child.parent = n
}

// RemoveChild detaches child from this node.
// Panics if child's parent is not n.
func (n *Node) RemoveChild(child *Node) {
	if child == nil || child.parent != n {
		panic("vg: child's parent is not this node")
	}
	child.detach()
}

// RemoveFromParent detaches this node from its parent. No-op when detached.
func (n *Node) RemoveFromParent() {
	n.detach()
}

// Parent returns the parent node, or nil.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the child list. The slice must not be modified.
func (n *Node) Children() []*Node { return n.children }

// NumChildren returns the number of children.
func (n *Node) NumChildren() int { return len(n.children) }

// ChildAt returns the child at index.
func (n *Node) ChildAt(index int) *Node { return n.children[index] }

func (n *Node) checkChild(child *Node) {
	if child == nil {
		panic("vg: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("vg: adding child would create a cycle")
	}
}

func (n *Node) indexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

func (n *Node) detach() {
	if n.parent != nil {
		n.parent.removeChildByPtr(n)
		n.parent = nil
	}
}

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing its parent.
func (n *Node) removeChildByPtr(child *Node) {
	if i := n.indexOf(child); i >= 0 {
		copy(n.children[i:], n.children[i+1:])
		n.children[len(n.children)-1] = nil
		n.children = n.children[:len(n.children)-1]
	}
}

// --- art.Node ---

var (
	_ art.ShapeNode    = (*Node)(nil)
	_ art.TextNode     = (*Node)(nil)
	_ art.Blender      = (*Node)(nil)
	_ art.Sizer        = (*Node)(nil)
	_ art.LinearFiller = (*Node)(nil)
	_ art.RadialFiller = (*Node)(nil)
	_ art.ImageFiller  = (*Node)(nil)
)

// Transform returns the local transform.
func (n *Node) Transform() art.Transform { return n.transform }

// TransformTo replaces the local transform.
func (n *Node) TransformTo(t art.Transform) { n.transform = t }

// Show makes the node and its subtree visible.
func (n *Node) Show() { n.visible = true }

// Hide hides the node and its subtree. Hidden nodes are not drawn or hit.
func (n *Node) Hide() { n.visible = false }

// Visible reports whether the node itself is shown.
func (n *Node) Visible() bool { return n.visible }

// Indicate stores the hover cursor and title.
func (n *Node) Indicate(cursor, title string) {
	n.cursor, n.title = cursor, title
}

// Cursor returns the hover cursor hint.
func (n *Node) Cursor() string { return n.cursor }

// Title returns the hover title hint.
func (n *Node) Title() string { return n.title }

// Inject appends n to parent, which must be a *Node.
func (n *Node) Inject(parent art.Node) {
	asNode(parent, "Inject").AddChild(n)
}

// InjectBefore inserts n before sibling in sibling's parent.
func (n *Node) InjectBefore(sibling art.Node) {
	s := asNode(sibling, "InjectBefore")
	if s.parent == nil {
		panic("vg: InjectBefore on a detached sibling")
	}
	s.parent.AddChildBefore(n, s)
}

// Eject detaches n from its parent.
func (n *Node) Eject() { n.detach() }

func asNode(v art.Node, op string) *Node {
	n, ok := v.(*Node)
	if !ok || n == nil {
		panic("vg: " + op + " with a foreign node")
	}
	return n
}

// Blend sets the node opacity. Group opacity composites the subtree as one
// layer.
func (n *Node) Blend(opacity float64) { n.alpha = opacity }

// Alpha returns the node opacity.
func (n *Node) Alpha() float64 { return n.alpha }

// SetSize sets the group or clip size.
func (n *Node) SetSize(width, height float64) {
	n.width, n.height = width, height
}

// Size returns the group or clip size.
func (n *Node) Size() (width, height float64) { return n.width, n.height }

// Fill sets a solid fill; the zero Color removes it.
func (n *Node) Fill(c art.Color) {
	if c.IsZero() {
		n.fill = paint{}
		return
	}
	n.fill = paint{kind: paintSolid, color: c}
}

// FillLinear sets a linear gradient fill in local coordinates.
func (n *Node) FillLinear(stops []art.ColorStop, x1, y1, x2, y2 float64) {
	n.fill = paint{kind: paintLinear, stops: stops, geom: [6]float64{x1, y1, x2, y2}}
}

// FillRadial sets a radial gradient fill in local coordinates. The gradient
// starts at the focal point and reaches the outer edge at radius rx around
// (cx, cy); ry scales the ellipse vertically.
func (n *Node) FillRadial(stops []art.ColorStop, fx, fy, rx, ry, cx, cy float64) {
	n.fill = paint{kind: paintRadial, stops: stops, geom: [6]float64{fx, fy, rx, ry, cx, cy}}
}

// FillImage sets a tiled image fill. The image is scaled to width x height
// and offset by (left, top).
func (n *Node) FillImage(img image.Image, width, height, left, top float64) {
	n.fill = paint{kind: paintImage, image: img, width: width, height: height, left: left, top: top}
}

// FillColor returns the solid fill color, if the fill is solid.
func (n *Node) FillColor() (art.Color, bool) {
	return n.fill.color, n.fill.kind == paintSolid
}

// Stroke sets the outline; the zero Color removes it.
func (n *Node) Stroke(c art.Color, width float64, cap art.LineCap, join art.LineJoin, dash []float64) {
	if c.IsZero() {
		n.stroke = strokeStyle{}
		return
	}
	n.stroke = strokeStyle{color: c, width: width, cap: cap, join: join, dash: dash}
}

// DrawPath replaces the shape outline.
func (n *Node) DrawPath(p *art.Path, width, height float64) {
	n.path = p
	n.pathWidth, n.pathHeight = width, height
	n.pathDraws++
}

// Path returns the current shape outline.
func (n *Node) Path() *art.Path { return n.path }

// DrawText replaces the text content and styling. A nil font selects the
// default face; unparseable fonts keep the previous face and are logged.
func (n *Node) DrawText(text string, font art.Font, align art.Alignment, path *art.Path) {
	n.text = text
	n.align = align
	n.textPath = path
	if spec, err := art.ParseFont(font); err != nil {
		art.Logger().Warn("vg: unusable font", "node", n.ID, "err", err)
	} else {
		n.font = spec
	}
	n.textDraws++
}

// Text returns the text content.
func (n *Node) Text() string { return n.text }

// --- Coordinates ---

// WorldTransform returns the composite transform from local to canvas space.
func (n *Node) WorldTransform() art.Transform {
	t := n.transform
	for p := n.parent; p != nil; p = p.parent {
		w := p.transform
		w.Multiply(t)
		t = w
	}
	return t
}

// WorldToLocal maps canvas coordinates into n's local space.
func (n *Node) WorldToLocal(x, y float64) (float64, float64) {
	return n.WorldTransform().Invert().Point(x, y)
}

// LocalToWorld maps local coordinates to canvas space.
func (n *Node) LocalToWorld(x, y float64) (float64, float64) {
	return n.WorldTransform().Point(x, y)
}
