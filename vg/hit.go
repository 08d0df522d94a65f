package vg

import (
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/scene"

	"github.com/phanxgames/art"
)

// flattenTolerance is the maximum distance, in local units, between a curve
// and its flattened polyline.
const flattenTolerance = 0.1

// flatten converts a path into polylines, one per subpath, using gg's curve
// flattening. Closed subpaths end at their first point.
func flatten(p *art.Path) [][]art.Vec2 {
	if p == nil {
		return nil
	}
	var (
		out         [][]art.Vec2
		sub         *gg.Path
		first, last art.Vec2
	)
	begin := func() {
		if sub == nil {
			sub = gg.NewPath()
			sub.MoveTo(last.X, last.Y)
			first = last
		}
	}
	flush := func() {
		if sub == nil {
			return
		}
		if pts := sub.Flatten(flattenTolerance); len(pts) > 1 {
			poly := make([]art.Vec2, len(pts))
			for i, pt := range pts {
				poly[i] = art.Vec2{X: pt.X, Y: pt.Y}
			}
			out = append(out, poly)
		}
		sub = nil
	}
	for _, e := range p.Elements() {
		switch e.Op {
		case art.PathMoveTo:
			flush()
			last = e.Points[0]
			begin()
		case art.PathLineTo:
			begin()
			last = e.Points[0]
			sub.LineTo(last.X, last.Y)
		case art.PathQuadTo:
			begin()
			c := e.Points[0]
			last = e.Points[1]
			sub.QuadraticTo(c.X, c.Y, last.X, last.Y)
		case art.PathCubicTo:
			begin()
			c1, c2 := e.Points[0], e.Points[1]
			last = e.Points[2]
			sub.CubicTo(c1.X, c1.Y, c2.X, c2.Y, last.X, last.Y)
		case art.PathClose:
			if sub != nil {
				sub.Close()
				last = first
			}
			flush()
		}
	}
	flush()
	return out
}

// fillPath converts p into a scene path for containment tests. Its Contains
// uses the non-zero winding rule, the same rule gg fills with.
func fillPath(p *art.Path) *scene.Path {
	sp := scene.NewPath()
	for _, e := range p.Elements() {
		switch e.Op {
		case art.PathMoveTo:
			sp.MoveTo(float32(e.Points[0].X), float32(e.Points[0].Y))
		case art.PathLineTo:
			sp.LineTo(float32(e.Points[0].X), float32(e.Points[0].Y))
		case art.PathQuadTo:
			c, to := e.Points[0], e.Points[1]
			sp.QuadTo(float32(c.X), float32(c.Y), float32(to.X), float32(to.Y))
		case art.PathCubicTo:
			c1, c2, to := e.Points[0], e.Points[1], e.Points[2]
			sp.CubicTo(float32(c1.X), float32(c1.Y), float32(c2.X), float32(c2.Y),
				float32(to.X), float32(to.Y))
		case art.PathClose:
			sp.Close()
		}
	}
	return sp
}

// hitPath returns the cached fill path for n, rebuilding it when the outline
// was replaced or mutated.
func (n *Node) hitPath() *scene.Path {
	if n.hit == nil || n.hitSrc != n.path || n.hitDelta != n.path.Delta() {
		n.hit = fillPath(n.path)
		n.hitSrc, n.hitDelta = n.path, n.path.Delta()
	}
	return n.hit
}

// nearPolyline reports whether (x, y) lies within dist of any segment.
func nearPolyline(polys [][]art.Vec2, x, y, dist float64) bool {
	for _, poly := range polys {
		for i := 1; i < len(poly); i++ {
			if segmentDistance(poly[i-1], poly[i], x, y) <= dist {
				return true
			}
		}
	}
	return false
}

func segmentDistance(a, b art.Vec2, x, y float64) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return math.Hypot(x-a.X, y-a.Y)
	}
	t := ((x-a.X)*dx + (y-a.Y)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(x-(a.X+t*dx), y-(a.Y+t*dy))
}

// shapeContains tests a local point against the shape's fill area and
// stroke band.
func shapeContains(n *Node, lx, ly float64) bool {
	if n.path == nil || n.path.Len() == 0 {
		return false
	}
	b := n.path.Bounds()
	pad := n.stroke.width / 2
	if lx < b.X-pad || lx > b.X+b.Width+pad || ly < b.Y-pad || ly > b.Y+b.Height+pad {
		return false
	}
	if n.fill.kind != paintNone && n.hitPath().Contains(float32(lx), float32(ly)) {
		return true
	}
	if !n.stroke.color.IsZero() && n.stroke.width > 0 {
		return nearPolyline(flatten(n.path), lx, ly, pad)
	}
	return false
}

// hitTest finds the topmost visible shape or text node under canvas point
// (x, y). Clips exclude points outside their rectangle from their subtree.
func (c *Canvas) hitTest(x, y float64) *Node {
	return c.hitNode(c.root, art.Identity, x, y)
}

func (c *Canvas) hitNode(n *Node, parent art.Transform, x, y float64) *Node {
	if !n.visible {
		return nil
	}
	world := parent
	world.Multiply(n.transform)
	lx, ly := world.Invert().Point(x, y)

	switch n.Type {
	case NodeTypeShape:
		if shapeContains(n, lx, ly) {
			return n
		}
		return nil
	case NodeTypeText:
		if c.textBounds(n).Contains(lx, ly) {
			return n
		}
		return nil
	case NodeTypeClip:
		if lx < 0 || ly < 0 || lx > n.width || ly > n.height {
			return nil
		}
	}
	for i := len(n.children) - 1; i >= 0; i-- {
		if hit := c.hitNode(n.children[i], world, x, y); hit != nil {
			return hit
		}
	}
	return nil
}
