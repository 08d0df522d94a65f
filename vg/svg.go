package vg

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"io"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo/float"

	"github.com/phanxgames/art"
)

// errWriter remembers the first write error so the svgo calls, which do not
// return errors, can be checked once at the end.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

// svgDecimals is the precision of coordinates svgo formats itself.
const svgDecimals = 2

type svgEncoder struct {
	c      *Canvas
	s      *svg.SVG
	nextID int
}

// EncodeSVG writes the node tree as an SVG document of the canvas size.
// Transforms, opacity, clips, gradients and patterns are preserved as SVG
// constructs rather than rasterized.
func (c *Canvas) EncodeSVG(w io.Writer) error {
	if c.closed {
		return ErrClosed
	}
	ew := &errWriter{w: w}
	e := &svgEncoder{c: c, s: svg.New(ew)}
	// the document size and background are whole pixels
	e.s.Decimals = 0
	e.s.Start(float64(c.width), float64(c.height))
	if cc := c.be.clear; !cc.IsZero() {
		e.s.Rect(0, 0, float64(c.width), float64(c.height), colorAttrs("fill", cc)...)
	}
	e.s.Decimals = svgDecimals
	e.node(c.root)
	e.s.End()
	if ew.err != nil {
		return fmt.Errorf("vg: encode svg: %w", ew.err)
	}
	return nil
}

func (e *svgEncoder) id(prefix string) string {
	e.nextID++
	return prefix + strconv.Itoa(e.nextID)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func matrixAttr(t art.Transform) string {
	return fmt.Sprintf(`transform="matrix(%s %s %s %s %s %s)"`,
		num(t.XX), num(t.YX), num(t.XY), num(t.YY), num(t.X), num(t.Y))
}

func rgb(c art.Color) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", channel(c.R), channel(c.G), channel(c.B))
}

func channel(v float64) int {
	return int(max(0, min(1, v))*255 + 0.5)
}

// colorAttrs returns attr and its opacity attribute for c.
func colorAttrs(attr string, c art.Color) []string {
	out := []string{fmt.Sprintf(`%s="%s"`, attr, rgb(c))}
	if c.A < 1 {
		out = append(out, fmt.Sprintf(`%s-opacity="%s"`, attr, num(c.A)))
	}
	return out
}

func (e *svgEncoder) node(n *Node) {
	if !n.visible || n.alpha <= 0 {
		return
	}
	attrs := []string{}
	if n.transform != art.Identity {
		attrs = append(attrs, matrixAttr(n.transform))
	}
	if n.alpha < 1 {
		attrs = append(attrs, fmt.Sprintf(`opacity="%s"`, num(n.alpha)))
	}
	if n.Name != "" {
		attrs = append(attrs, fmt.Sprintf(`id=%q`, n.Name))
	}

	switch n.Type {
	case NodeTypeShape:
		e.shape(n, attrs)
		return
	case NodeTypeText:
		e.text(n, attrs)
		return
	case NodeTypeClip:
		id := e.id("clip")
		e.s.Def()
		e.s.ClipPath(fmt.Sprintf(`id="%s"`, id))
		e.s.Rect(0, 0, n.width, n.height)
		e.s.ClipEnd()
		e.s.DefEnd()
		// The clip rectangle is in the node's local space, so the clipped
		// content goes in an inner group under the transform.
		e.s.Group(attrs...)
		e.s.Group(fmt.Sprintf(`clip-path="url(#%s)"`, id))
		for _, child := range n.children {
			e.node(child)
		}
		e.s.Gend()
		e.s.Gend()
		return
	}
	e.s.Group(attrs...)
	for _, child := range n.children {
		e.node(child)
	}
	e.s.Gend()
}

// fillAttrs writes any gradient or pattern definition the fill needs and
// returns the fill attributes.
func (e *svgEncoder) fillAttrs(p *paint) []string {
	switch p.kind {
	case paintSolid:
		return colorAttrs("fill", p.color)
	case paintLinear:
		id := e.id("grad")
		e.s.Def()
		fmt.Fprintf(e.s.Writer, `<linearGradient id="%s" gradientUnits="userSpaceOnUse" x1="%s" y1="%s" x2="%s" y2="%s">`+"\n",
			id, num(p.geom[0]), num(p.geom[1]), num(p.geom[2]), num(p.geom[3]))
		e.stops(p.stops)
		fmt.Fprintln(e.s.Writer, `</linearGradient>`)
		e.s.DefEnd()
		return []string{fmt.Sprintf(`fill="url(#%s)"`, id)}
	case paintRadial:
		id := e.id("grad")
		fx, fy, rx, ry, cx, cy := p.geom[0], p.geom[1], p.geom[2], p.geom[3], p.geom[4], p.geom[5]
		transform := ""
		if rx != 0 && ry != rx {
			// An elliptical gradient is a circular one scaled about its
			// center.
			k := ry / rx
			transform = fmt.Sprintf(` gradientTransform="matrix(1 0 0 %s 0 %s)"`, num(k), num(cy-cy*k))
			fy = cy + (fy-cy)/k
		}
		e.s.Def()
		fmt.Fprintf(e.s.Writer, `<radialGradient id="%s" gradientUnits="userSpaceOnUse" cx="%s" cy="%s" r="%s" fx="%s" fy="%s"%s>`+"\n",
			id, num(cx), num(cy), num(rx), num(fx), num(fy), transform)
		e.stops(p.stops)
		fmt.Fprintln(e.s.Writer, `</radialGradient>`)
		e.s.DefEnd()
		return []string{fmt.Sprintf(`fill="url(#%s)"`, id)}
	case paintImage:
		href, err := dataURI(p)
		if err != nil {
			art.Logger().Warn("vg: svg pattern", "err", err)
			return []string{`fill="none"`}
		}
		b := p.image.Bounds()
		w, h := p.width, p.height
		if w <= 0 || h <= 0 {
			w, h = float64(b.Dx()), float64(b.Dy())
		}
		id := e.id("pattern")
		// svgo sizes images in whole pixels, so the image keeps its pixel
		// size and is scaled onto the tile.
		e.s.Def()
		e.s.Pattern(id, p.left, p.top, w, h, "user")
		e.s.Image(0, 0, b.Dx(), b.Dy(), href,
			`preserveAspectRatio="none"`,
			fmt.Sprintf(`transform="scale(%s %s)"`, num(w/float64(b.Dx())), num(h/float64(b.Dy()))))
		e.s.PatternEnd()
		e.s.DefEnd()
		return []string{fmt.Sprintf(`fill="url(#%s)"`, id)}
	}
	return []string{`fill="none"`}
}

func (e *svgEncoder) stops(stops []art.ColorStop) {
	for _, s := range stops {
		op := ""
		if s.Color.A < 1 {
			op = fmt.Sprintf(` stop-opacity="%s"`, num(s.Color.A))
		}
		fmt.Fprintf(e.s.Writer, `<stop offset="%s" stop-color="%s"%s/>`+"\n", num(s.Offset), rgb(s.Color), op)
	}
}

func dataURI(p *paint) (string, error) {
	if p.image == nil {
		return "", fmt.Errorf("no image")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, p.image); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

var svgCaps = [...]string{
	art.CapDefault: "round",
	art.CapButt:    "butt",
	art.CapRound:   "round",
	art.CapSquare:  "square",
}

var svgJoins = [...]string{
	art.JoinDefault: "round",
	art.JoinMiter:   "miter",
	art.JoinRound:   "round",
	art.JoinBevel:   "bevel",
}

func strokeAttrs(s strokeStyle) []string {
	if s.color.IsZero() || s.width <= 0 {
		return nil
	}
	out := colorAttrs("stroke", s.color)
	out = append(out,
		fmt.Sprintf(`stroke-width="%s"`, num(s.width)),
		fmt.Sprintf(`stroke-linecap="%s"`, svgCaps[s.cap]),
		fmt.Sprintf(`stroke-linejoin="%s"`, svgJoins[s.join]),
	)
	if len(s.dash) > 0 {
		parts := make([]string, len(s.dash))
		for i, d := range s.dash {
			parts[i] = num(d)
		}
		out = append(out, fmt.Sprintf(`stroke-dasharray="%s"`, strings.Join(parts, " ")))
	}
	return out
}

func (e *svgEncoder) shape(n *Node, attrs []string) {
	if n.path == nil || n.path.Len() == 0 {
		return
	}
	attrs = append(attrs, e.fillAttrs(&n.fill)...)
	attrs = append(attrs, strokeAttrs(n.stroke)...)
	e.s.Path(n.path.String(), attrs...)
}

var svgAnchors = [...]string{
	art.AlignLeft:   "start",
	art.AlignCenter: "middle",
	art.AlignRight:  "end",
}

func (e *svgEncoder) text(n *Node, attrs []string) {
	if n.text == "" {
		return
	}
	size := n.font.Size
	if size <= 0 {
		size = e.c.be.fontSize
	}
	l := layoutText(n.text, e.c.be.fonts.face(n.font, e.c.be.fontSize, 1))
	attrs = append(attrs, e.fillAttrs(&n.fill)...)
	attrs = append(attrs, strokeAttrs(n.stroke)...)
	attrs = append(attrs,
		fmt.Sprintf(`font-size="%s"`, num(size)),
		fmt.Sprintf(`text-anchor="%s"`, svgAnchors[n.align]),
	)
	if n.font.Family != "" {
		attrs = append(attrs, fmt.Sprintf(`font-family=%q`, n.font.Family))
	}
	if n.font.Weight != "" {
		attrs = append(attrs, fmt.Sprintf(`font-weight=%q`, n.font.Weight))
	}
	if n.font.Style != "" {
		attrs = append(attrs, fmt.Sprintf(`font-style=%q`, n.font.Style))
	}

	if n.textPath != nil && n.textPath.Len() > 0 {
		id := e.id("textpath")
		e.s.Def()
		e.s.Path(n.textPath.String(), fmt.Sprintf(`id="%s"`, id))
		e.s.DefEnd()
		e.s.Group(attrs...)
		e.s.Textpath(n.text, "#"+id)
		e.s.Gend()
		return
	}
	e.s.Group(attrs...)
	for i, line := range l.lines {
		e.s.Text(0, l.ascent+float64(i)*l.lineHeight, line)
	}
	e.s.Gend()
}
