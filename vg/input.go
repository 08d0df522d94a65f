package vg

import "github.com/phanxgames/art"

// Mouse buttons, as carried in art.Event.Button.
const (
	ButtonLeft   = 0
	ButtonRight  = 1
	ButtonMiddle = 2
)

type pointerState struct {
	down      bool
	button    int
	lastX     float64
	lastY     float64
	seen      bool
	hitNode   *Node // node under the pointer at press time
	hoverNode *Node
}

// Pointer feeds one pointer sample into the canvas. (x, y) are canvas
// coordinates; pressed and button describe the current button state.
//
// The state machine mirrors a DOM pointer: a change of hovered node fires
// mouseout on the old node and mouseover on the new one, a press fires
// mousedown, a release fires mouseup and, when released over the node that
// was pressed, click. Movement fires mousemove. Every event bubbles from the
// hit node to the root.
func (c *Canvas) Pointer(x, y float64, pressed bool, button int) {
	ps := &c.pointer
	moved := !ps.seen || x != ps.lastX || y != ps.lastY
	ps.seen = true
	ps.lastX, ps.lastY = x, y

	if ps.down {
		button = ps.button
	}
	target := c.hitTest(x, y)

	if target != ps.hoverNode {
		if ps.hoverNode != nil {
			fire(art.EventMouseOut, ps.hoverNode, x, y, button)
		}
		if target != nil {
			fire(art.EventMouseOver, target, x, y, button)
		}
		ps.hoverNode = target
	}
	if moved && target != nil {
		fire(art.EventMouseMove, target, x, y, button)
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.hitNode = target
		fire(art.EventMouseDown, target, x, y, button)
	case !pressed && ps.down:
		fire(art.EventMouseUp, target, x, y, ps.button)
		if ps.hitNode != nil && ps.hitNode == target {
			fire(art.EventClick, target, x, y, ps.button)
		}
		ps.down = false
		ps.hitNode = nil
	}
}

// Hovered returns the node currently under the pointer, or nil.
func (c *Canvas) Hovered() *Node { return c.pointer.hoverNode }

// HoverCursor returns the cursor hint of the hovered node or its nearest
// ancestor that sets one.
func (c *Canvas) HoverCursor() string {
	for n := c.pointer.hoverNode; n != nil; n = n.parent {
		if n.cursor != "" {
			return n.cursor
		}
	}
	return ""
}

// HoverTitle returns the title hint of the hovered node or its nearest
// ancestor that sets one.
func (c *Canvas) HoverTitle() string {
	for n := c.pointer.hoverNode; n != nil; n = n.parent {
		if n.title != "" {
			return n.title
		}
	}
	return ""
}

// HitTest returns the topmost node under canvas point (x, y), or nil.
func (c *Canvas) HitTest(x, y float64) *Node { return c.hitTest(x, y) }
