package art

import (
	"fmt"
	"image"
)

// Paint is a fill value: a Color or a FillDescriptor. Paint values are
// compared with == when diffing, so descriptors are always pointers.
type Paint interface {
	paint()
}

func (Color) paint() {}

// FillDescriptor is a gradient or pattern that knows how to apply itself to a
// renderable node.
type FillDescriptor interface {
	Paint
	ApplyFill(n Renderable) error
}

// ColorStop is a color at an offset in [0, 1] along a gradient.
type ColorStop struct {
	Offset float64
	Color  Color
}

// LinearGradient fills along the line (X1, Y1) → (X2, Y2).
type LinearGradient struct {
	stops          []ColorStop
	x1, y1, x2, y2 float64
}

// NewLinearGradient captures the gradient arguments. The stops slice is
// copied so later changes by the caller do not leak in.
func NewLinearGradient(stops []ColorStop, x1, y1, x2, y2 float64) *LinearGradient {
	return &LinearGradient{stops: append([]ColorStop(nil), stops...), x1: x1, y1: y1, x2: x2, y2: y2}
}

func (*LinearGradient) paint() {}

// Stops returns a copy of the color stops.
func (g *LinearGradient) Stops() []ColorStop { return append([]ColorStop(nil), g.stops...) }

// Line returns the gradient line end points.
func (g *LinearGradient) Line() (x1, y1, x2, y2 float64) { return g.x1, g.y1, g.x2, g.y2 }

// ApplyFill calls FillLinear on n.
func (g *LinearGradient) ApplyFill(n Renderable) error {
	lf, ok := n.(LinearFiller)
	if !ok {
		return fmt.Errorf("%w: linear gradient on %T", ErrUnsupportedFill, n)
	}
	lf.FillLinear(g.stops, g.x1, g.y1, g.x2, g.y2)
	return nil
}

// RadialGradient fills outward from the focal point (FX, FY) to an ellipse
// centered at (CX, CY) with radii (RX, RY).
type RadialGradient struct {
	stops                  []ColorStop
	fx, fy, rx, ry, cx, cy float64
}

// NewRadialGradient captures the gradient arguments.
func NewRadialGradient(stops []ColorStop, fx, fy, rx, ry, cx, cy float64) *RadialGradient {
	return &RadialGradient{
		stops: append([]ColorStop(nil), stops...),
		fx:    fx, fy: fy, rx: rx, ry: ry, cx: cx, cy: cy,
	}
}

func (*RadialGradient) paint() {}

// Stops returns a copy of the color stops.
func (g *RadialGradient) Stops() []ColorStop { return append([]ColorStop(nil), g.stops...) }

// Geometry returns the focal point, radii and center.
func (g *RadialGradient) Geometry() (fx, fy, rx, ry, cx, cy float64) {
	return g.fx, g.fy, g.rx, g.ry, g.cx, g.cy
}

// ApplyFill calls FillRadial on n.
func (g *RadialGradient) ApplyFill(n Renderable) error {
	rf, ok := n.(RadialFiller)
	if !ok {
		return fmt.Errorf("%w: radial gradient on %T", ErrUnsupportedFill, n)
	}
	rf.FillRadial(g.stops, g.fx, g.fy, g.rx, g.ry, g.cx, g.cy)
	return nil
}

// Pattern tiles an image, scaled to Width x Height and offset by
// (Left, Top).
type Pattern struct {
	img                      image.Image
	width, height, left, top float64
}

// NewPattern captures the pattern arguments.
func NewPattern(img image.Image, width, height, left, top float64) *Pattern {
	return &Pattern{img: img, width: width, height: height, left: left, top: top}
}

func (*Pattern) paint() {}

// Image returns the pattern image.
func (p *Pattern) Image() image.Image { return p.img }

// ApplyFill calls FillImage on n.
func (p *Pattern) ApplyFill(n Renderable) error {
	imf, ok := n.(ImageFiller)
	if !ok {
		return fmt.Errorf("%w: pattern on %T", ErrUnsupportedFill, n)
	}
	imf.FillImage(p.img, p.width, p.height, p.left, p.top)
	return nil
}
