package art

import "image"

// Node is the capability surface every backend scene object provides.
// Backends own the object; the host only drives it through these calls.
type Node interface {
	// Transform returns the currently applied local transform.
	Transform() Transform
	// TransformTo replaces the local transform.
	TransformTo(t Transform)

	Show()
	Hide()
	// Indicate sets the cursor and title hints shown while hovering.
	Indicate(cursor, title string)

	// Inject appends the node as the last child of parent.
	Inject(parent Node)
	// InjectBefore inserts the node into sibling's parent just before sibling.
	InjectBefore(sibling Node)
	// Eject detaches the node from its parent. No-op when detached.
	Eject()

	// Subscribe registers fn for events of type t and returns the handle
	// that removes the registration.
	Subscribe(t EventType, fn func(Event)) (unsubscribe func())
}

// Blender is implemented by nodes with an opacity channel.
type Blender interface {
	Blend(opacity float64)
}

// Sizer is implemented by groups and clipping rectangles that track a size.
type Sizer interface {
	SetSize(width, height float64)
}

// Renderable is a node that paints: Shape and Text.
type Renderable interface {
	Node
	// Fill sets a solid fill. The zero Color removes the fill.
	Fill(c Color)
	// Stroke sets the outline. The zero Color removes the stroke.
	Stroke(c Color, width float64, cap LineCap, join LineJoin, dash []float64)
}

// LinearFiller is implemented by renderables that support linear gradients.
type LinearFiller interface {
	FillLinear(stops []ColorStop, x1, y1, x2, y2 float64)
}

// RadialFiller is implemented by renderables that support radial gradients.
type RadialFiller interface {
	FillRadial(stops []ColorStop, fx, fy, rx, ry, cx, cy float64)
}

// ImageFiller is implemented by renderables that support image patterns.
type ImageFiller interface {
	FillImage(img image.Image, width, height, left, top float64)
}

// ShapeNode draws a path.
type ShapeNode interface {
	Renderable
	DrawPath(p *Path, width, height float64)
}

// TextNode draws a string.
type TextNode interface {
	Renderable
	DrawText(text string, font Font, align Alignment, path *Path)
}

// Canvas is a backend drawing surface. Root is the node top-level primitives
// are injected into.
type Canvas interface {
	Root() Node
}

// Resizer is implemented by canvases that can change size in place.
type Resizer interface {
	Resize(width, height int) error
}

// Renderer is implemented by canvases with an explicit render/flush step.
type Renderer interface {
	Render() error
}

// Backend constructs scene objects and drawing surfaces.
type Backend interface {
	NewGroup() Node
	NewClippingRectangle() Node
	NewShape() ShapeNode
	NewText(text string, font Font, align Alignment, path *Path) TextNode
	NewCanvas(width, height int) (Canvas, error)
}
