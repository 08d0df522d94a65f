package vg

import (
	"math"

	"github.com/gogpu/gg"

	"github.com/phanxgames/art"
)

type renderStats struct {
	shapes, texts, layers int
}

func toRGBA(c art.Color) gg.RGBA {
	return gg.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// toMatrix converts an art transform to gg's row-major coefficients.
func toMatrix(t art.Transform) gg.Matrix {
	return gg.Matrix{A: t.XX, B: t.XY, C: t.X, D: t.YX, E: t.YY, F: t.Y}
}

// scaleFactor is the geometric mean of the transform's axis scales.
func scaleFactor(t art.Transform) float64 {
	return math.Sqrt(math.Abs(t.XX*t.YY - t.XY*t.YX))
}

var lineCaps = [...]gg.LineCap{
	art.CapDefault: gg.LineCapRound,
	art.CapButt:    gg.LineCapButt,
	art.CapRound:   gg.LineCapRound,
	art.CapSquare:  gg.LineCapSquare,
}

var lineJoins = [...]gg.LineJoin{
	art.JoinDefault: gg.LineJoinRound,
	art.JoinMiter:   gg.LineJoinMiter,
	art.JoinRound:   gg.LineJoinRound,
	art.JoinBevel:   gg.LineJoinBevel,
}

// drawNode paints n and its subtree in painter order. Translucent nodes are
// composited through a layer so overlapping children blend once.
func (c *Canvas) drawNode(n *Node, parent art.Transform, st *renderStats) error {
	if !n.visible || n.alpha <= 0 {
		return nil
	}
	world := parent
	world.Multiply(n.transform)

	layered := n.alpha < 1
	if layered {
		c.dc.PushLayer(gg.BlendNormal, n.alpha)
		st.layers++
	}
	var err error
	switch n.Type {
	case NodeTypeShape:
		err = c.drawShape(n, world)
		st.shapes++
	case NodeTypeText:
		err = c.drawText(n, world)
		st.texts++
	}
	if err == nil {
		clipped := n.Type == NodeTypeClip
		if clipped {
			c.dc.Push()
			c.dc.SetTransform(toMatrix(world))
			c.dc.ClipRect(0, 0, n.width, n.height)
		}
		for _, child := range n.children {
			if err = c.drawNode(child, world, st); err != nil {
				break
			}
		}
		if clipped {
			c.dc.Pop()
		}
	}
	if layered {
		c.dc.PopLayer()
	}
	return err
}

// tracePath replays p into the context's current path.
func tracePath(dc *gg.Context, p *art.Path) {
	for _, e := range p.Elements() {
		pt := e.Points
		switch e.Op {
		case art.PathMoveTo:
			dc.MoveTo(pt[0].X, pt[0].Y)
		case art.PathLineTo:
			dc.LineTo(pt[0].X, pt[0].Y)
		case art.PathQuadTo:
			dc.QuadraticTo(pt[0].X, pt[0].Y, pt[1].X, pt[1].Y)
		case art.PathCubicTo:
			dc.CubicTo(pt[0].X, pt[0].Y, pt[1].X, pt[1].Y, pt[2].X, pt[2].Y)
		case art.PathClose:
			dc.ClosePath()
		}
	}
}

func (c *Canvas) drawShape(n *Node, world art.Transform) error {
	if n.path == nil || n.path.Len() == 0 {
		return nil
	}
	dc := c.dc
	dc.SetTransform(toMatrix(world))
	dc.ClearPath()
	tracePath(dc, n.path)
	if n.fill.kind != paintNone {
		dc.SetFillBrush(fillBrush(&n.fill, world))
		if err := dc.FillPreserve(); err != nil {
			dc.ClearPath()
			return err
		}
	}
	if s := n.stroke; !s.color.IsZero() && s.width > 0 {
		dc.SetStrokeBrush(gg.Solid(toRGBA(s.color)))
		dc.SetLineWidth(s.width)
		dc.SetLineCap(lineCaps[s.cap])
		dc.SetLineJoin(lineJoins[s.join])
		if len(s.dash) > 0 {
			dc.SetDash(s.dash...)
		} else {
			dc.ClearDash()
		}
		if err := dc.StrokePreserve(); err != nil {
			dc.ClearPath()
			return err
		}
	}
	dc.ClearPath()
	return nil
}

// fillBrush builds the brush for a fill. gg samples brushes in device space,
// so gradient geometry is mapped through the world transform first.
func fillBrush(p *paint, world art.Transform) gg.Brush {
	switch p.kind {
	case paintLinear:
		x1, y1 := world.Point(p.geom[0], p.geom[1])
		x2, y2 := world.Point(p.geom[2], p.geom[3])
		g := gg.NewLinearGradientBrush(x1, y1, x2, y2)
		for _, s := range p.stops {
			g.AddColorStop(s.Offset, toRGBA(s.Color))
		}
		return g
	case paintRadial:
		cx, cy := world.Point(p.geom[4], p.geom[5])
		fx, fy := world.Point(p.geom[0], p.geom[1])
		g := gg.NewRadialGradientBrush(cx, cy, 0, p.geom[2]*scaleFactor(world))
		if fx != cx || fy != cy {
			g.SetFocus(fx, fy)
		}
		for _, s := range p.stops {
			g.AddColorStop(s.Offset, toRGBA(s.Color))
		}
		return g
	case paintImage:
		return patternBrush(p, world.Invert())
	}
	return gg.Solid(toRGBA(p.color))
}

// patternBrush tiles the pattern image, scaled to the pattern size and
// offset by its origin, in the node's local space.
func patternBrush(p *paint, inv art.Transform) gg.Brush {
	img := p.image
	if img == nil {
		return gg.Solid(gg.RGBA{})
	}
	b := img.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	w, h := p.width, p.height
	if w <= 0 {
		w = iw
	}
	if h <= 0 {
		h = ih
	}
	if iw == 0 || ih == 0 {
		return gg.Solid(gg.RGBA{})
	}
	return gg.NewCustomBrush(func(x, y float64) gg.RGBA {
		lx, ly := inv.Point(x, y)
		u := math.Mod(lx-p.left, w)
		v := math.Mod(ly-p.top, h)
		if u < 0 {
			u += w
		}
		if v < 0 {
			v += h
		}
		px := b.Min.X + min(int(u*iw/w), b.Dx()-1)
		py := b.Min.Y + min(int(v*ih/h), b.Dy()-1)
		return gg.FromColor(img.At(px, py))
	})
}

func (c *Canvas) drawText(n *Node, world art.Transform) error {
	if n.text == "" || n.fill.kind == paintNone {
		return nil
	}
	scale := scaleFactor(world)
	face := c.be.fonts.face(n.font, c.be.fontSize, scale)
	if face == nil {
		return nil
	}
	col := n.fill.color
	if n.fill.kind != paintSolid {
		col = firstStopColor(&n.fill)
	}
	dc := c.dc
	dc.Identity()
	dc.SetFont(face)
	dc.SetFillBrush(gg.Solid(toRGBA(col)))

	// Layout runs at the device size; positions are mapped back through
	// the transform with the scale divided out.
	l := layoutText(n.text, face)
	if n.textPath != nil && n.textPath.Len() > 0 {
		c.drawTextOnPath(n, world, l, scale)
		return nil
	}
	for i, line := range l.lines {
		lx := lineX(n.align, l.widths[i]) / scale
		ly := (l.ascent + float64(i)*l.lineHeight) / scale
		x, y := world.Point(lx, ly)
		dc.DrawString(line, x, y)
	}
	return nil
}

// drawTextOnPath places glyphs one at a time along the flattened path,
// starting at its first point. Glyphs stay upright.
func (c *Canvas) drawTextOnPath(n *Node, world art.Transform, l textLayout, scale float64) {
	polys := flatten(n.textPath)
	if len(polys) == 0 {
		return
	}
	pts := polys[0]
	face := c.dc.Font()
	total := 0.0
	for i := 1; i < len(pts); i++ {
		total += math.Hypot(pts[i].X-pts[i-1].X, pts[i].Y-pts[i-1].Y)
	}
	text := n.text
	dist := 0.0
	switch w := face.Advance(text) / scale; n.align {
	case art.AlignCenter:
		dist = (total - w) / 2
	case art.AlignRight:
		dist = total - w
	}
	for _, r := range text {
		s := string(r)
		if pos, ok := pointAt(pts, dist); ok {
			x, y := world.Point(pos.X, pos.Y)
			c.dc.DrawString(s, x, y)
		}
		dist += face.Advance(s) / scale
	}
}

// pointAt returns the point at arc length d along pts.
func pointAt(pts []art.Vec2, d float64) (art.Vec2, bool) {
	if d < 0 {
		return art.Vec2{}, false
	}
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		seg := math.Hypot(b.X-a.X, b.Y-a.Y)
		if d <= seg {
			if seg == 0 {
				return a, true
			}
			t := d / seg
			return art.Vec2{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}, true
		}
		d -= seg
	}
	return art.Vec2{}, false
}

func firstStopColor(p *paint) art.Color {
	if len(p.stops) > 0 {
		return p.stops[0].Color
	}
	return art.ColorBlack
}
