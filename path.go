package art

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// PathOp is a recorded path command.
type PathOp uint8

const (
	PathMoveTo  PathOp = iota // Points[0]
	PathLineTo                // Points[0]
	PathQuadTo                // Points[0] control, Points[1] end
	PathCubicTo               // Points[0], Points[1] controls, Points[2] end
	PathClose
)

// PathElement is one absolute path command.
type PathElement struct {
	Op     PathOp
	Points [3]Vec2
}

// Path records drawing commands in absolute coordinates. Arcs are converted
// to cubic curves as they are added.
//
// Every mutation bumps Delta, so a Path edited in place can still signal that
// shapes drawing it must redraw, without changing identity.
type Path struct {
	elems  []PathElement
	cur    Vec2
	start  Vec2
	lastCP Vec2 // reflected control point source for S/T
	lastOp PathOp
	delta  int
}

// NewPath returns an empty path.
func NewPath() *Path {
	return &Path{lastOp: PathClose}
}

// Delta returns the mutation counter.
func (p *Path) Delta() int { return p.delta }

// Elements returns the recorded commands. The returned slice MUST NOT be
// mutated by the caller.
func (p *Path) Elements() []PathElement { return p.elems }

// Len returns the number of recorded commands.
func (p *Path) Len() int { return len(p.elems) }

// Reset clears all commands.
func (p *Path) Reset() *Path {
	p.elems = p.elems[:0]
	p.cur, p.start, p.lastCP = Vec2{}, Vec2{}, Vec2{}
	p.lastOp = PathClose
	p.delta++
	return p
}

func (p *Path) push(e PathElement) {
	p.elems = append(p.elems, e)
	p.lastOp = e.Op
	p.delta++
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) *Path {
	p.cur = Vec2{x, y}
	p.start = p.cur
	p.lastCP = p.cur
	p.push(PathElement{Op: PathMoveTo, Points: [3]Vec2{p.cur}})
	return p
}

// Move starts a new subpath offset by (dx, dy) from the current point.
func (p *Path) Move(dx, dy float64) *Path {
	return p.MoveTo(p.cur.X+dx, p.cur.Y+dy)
}

// LineTo adds a line to (x, y).
func (p *Path) LineTo(x, y float64) *Path {
	p.cur = Vec2{x, y}
	p.lastCP = p.cur
	p.push(PathElement{Op: PathLineTo, Points: [3]Vec2{p.cur}})
	return p
}

// Line adds a line offset by (dx, dy).
func (p *Path) Line(dx, dy float64) *Path {
	return p.LineTo(p.cur.X+dx, p.cur.Y+dy)
}

// QuadTo adds a quadratic curve with control (cx, cy) ending at (x, y).
func (p *Path) QuadTo(cx, cy, x, y float64) *Path {
	p.lastCP = Vec2{cx, cy}
	p.cur = Vec2{x, y}
	p.push(PathElement{Op: PathQuadTo, Points: [3]Vec2{{cx, cy}, p.cur}})
	return p
}

// CurveTo adds a cubic curve with controls (c1x, c1y), (c2x, c2y) ending at
// (x, y).
func (p *Path) CurveTo(c1x, c1y, c2x, c2y, x, y float64) *Path {
	p.lastCP = Vec2{c2x, c2y}
	p.cur = Vec2{x, y}
	p.push(PathElement{Op: PathCubicTo, Points: [3]Vec2{{c1x, c1y}, {c2x, c2y}, p.cur}})
	return p
}

// Curve is CurveTo with every point relative to the current point.
func (p *Path) Curve(c1x, c1y, c2x, c2y, x, y float64) *Path {
	o := p.cur
	return p.CurveTo(o.X+c1x, o.Y+c1y, o.X+c2x, o.Y+c2y, o.X+x, o.Y+y)
}

// ArcTo adds an SVG-style elliptical arc from the current point to (x, y).
// rotation is in degrees.
func (p *Path) ArcTo(rx, ry, rotation float64, large, sweep bool, x, y float64) *Path {
	x0, y0 := p.cur.X, p.cur.Y
	if x0 == x && y0 == y {
		return p
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		return p.LineTo(x, y)
	}
	sin, cos := math.Sincos(rotation * math.Pi / 180)
	dx2, dy2 := (x0-x)/2, (y0-y)/2
	x1p := cos*dx2 + sin*dy2
	y1p := -sin*dx2 + cos*dy2

	if l := x1p*x1p/(rx*rx) + y1p*y1p/(ry*ry); l > 1 {
		s := math.Sqrt(l)
		rx *= s
		ry *= s
	}
	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	var coef float64
	if den != 0 {
		coef = math.Sqrt(math.Max(0, num/den))
	}
	if large == sweep {
		coef = -coef
	}
	cxp := coef * rx * y1p / ry
	cyp := -coef * ry * x1p / rx
	cx := cos*cxp - sin*cyp + (x0+x)/2
	cy := sin*cxp + cos*cyp + (y0+y)/2

	ux, uy := (x1p-cxp)/rx, (y1p-cyp)/ry
	vx, vy := (-x1p-cxp)/rx, (-y1p-cyp)/ry
	theta := vecAngle(1, 0, ux, uy)
	dtheta := vecAngle(ux, uy, vx, vy)
	if !sweep && dtheta > 0 {
		dtheta -= 2 * math.Pi
	} else if sweep && dtheta < 0 {
		dtheta += 2 * math.Pi
	}

	segs := math.Ceil(math.Abs(dtheta) / (math.Pi / 2))
	step := dtheta / segs
	k := 4.0 / 3.0 * math.Tan(step/4)
	mapPt := func(px, py float64) (float64, float64) {
		return cx + rx*px*cos - ry*py*sin, cy + rx*px*sin + ry*py*cos
	}
	for i := 0; i < int(segs); i++ {
		a1 := theta + float64(i)*step
		a2 := a1 + step
		s1, c1 := math.Sincos(a1)
		s2, c2 := math.Sincos(a2)
		p1x, p1y := mapPt(c1-k*s1, s1+k*c1)
		p2x, p2y := mapPt(c2+k*s2, s2-k*c2)
		ex, ey := mapPt(c2, s2)
		if i == int(segs)-1 {
			ex, ey = x, y
		}
		p.CurveTo(p1x, p1y, p2x, p2y, ex, ey)
	}
	return p
}

// Arc is ArcTo with the end point relative to the current point.
func (p *Path) Arc(rx, ry, rotation float64, large, sweep bool, dx, dy float64) *Path {
	return p.ArcTo(rx, ry, rotation, large, sweep, p.cur.X+dx, p.cur.Y+dy)
}

// Close closes the current subpath.
func (p *Path) Close() *Path {
	p.cur = p.start
	p.lastCP = p.cur
	p.push(PathElement{Op: PathClose})
	return p
}

func vecAngle(ux, uy, vx, vy float64) float64 {
	return math.Atan2(ux*vy-uy*vx, ux*vx+uy*vy)
}

// Bounds returns the control-point bounding box of the path. Curves lie
// within it, though it may be larger than the tight bounds.
func (p *Path) Bounds() Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, e := range p.elems {
		n := 0
		switch e.Op {
		case PathMoveTo, PathLineTo:
			n = 1
		case PathQuadTo:
			n = 2
		case PathCubicTo:
			n = 3
		}
		for _, pt := range e.Points[:n] {
			minX = math.Min(minX, pt.X)
			minY = math.Min(minY, pt.Y)
			maxX = math.Max(maxX, pt.X)
			maxY = math.Max(maxY, pt.Y)
		}
	}
	if minX > maxX {
		return Rect{}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// String returns the path as SVG path data using absolute commands.
func (p *Path) String() string {
	var b strings.Builder
	num := func(v float64) {
		b.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
	}
	pt := func(v Vec2) {
		num(v.X)
		b.WriteByte(',')
		num(v.Y)
	}
	for i, e := range p.elems {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch e.Op {
		case PathMoveTo:
			b.WriteByte('M')
			pt(e.Points[0])
		case PathLineTo:
			b.WriteByte('L')
			pt(e.Points[0])
		case PathQuadTo:
			b.WriteByte('Q')
			pt(e.Points[0])
			b.WriteByte(' ')
			pt(e.Points[1])
		case PathCubicTo:
			b.WriteByte('C')
			pt(e.Points[0])
			b.WriteByte(' ')
			pt(e.Points[1])
			b.WriteByte(' ')
			pt(e.Points[2])
		case PathClose:
			b.WriteByte('Z')
		}
	}
	return b.String()
}

// ParsePath parses SVG path data (M L H V C S Q T A Z, absolute and relative).
func ParsePath(d string) (*Path, error) {
	p := NewPath()
	sc := pathScanner{s: d}
	var cmd byte
	for {
		sc.skipSpace()
		if sc.done() {
			return p, nil
		}
		if c := sc.peek(); isPathCommand(c) {
			cmd = c
			sc.i++
		} else if cmd == 0 {
			return nil, fmt.Errorf("art: path %q: expected command at offset %d", d, sc.i)
		}
		if err := p.applyCommand(&sc, cmd); err != nil {
			return nil, fmt.Errorf("art: path %q: %w", d, err)
		}
		switch cmd {
		case 'M':
			cmd = 'L'
		case 'm':
			cmd = 'l'
		case 'Z', 'z':
			cmd = 0
		}
	}
}

func (p *Path) applyCommand(sc *pathScanner, cmd byte) error {
	rel := cmd >= 'a'
	o := Vec2{}
	if rel {
		o = p.cur
	}
	switch cmd {
	case 'M', 'm':
		v, err := sc.numbers(2)
		if err != nil {
			return err
		}
		p.MoveTo(o.X+v[0], o.Y+v[1])
	case 'L', 'l':
		v, err := sc.numbers(2)
		if err != nil {
			return err
		}
		p.LineTo(o.X+v[0], o.Y+v[1])
	case 'H', 'h':
		v, err := sc.numbers(1)
		if err != nil {
			return err
		}
		p.LineTo(o.X+v[0], p.cur.Y)
	case 'V', 'v':
		v, err := sc.numbers(1)
		if err != nil {
			return err
		}
		p.LineTo(p.cur.X, o.Y+v[0])
	case 'C', 'c':
		v, err := sc.numbers(6)
		if err != nil {
			return err
		}
		p.CurveTo(o.X+v[0], o.Y+v[1], o.X+v[2], o.Y+v[3], o.X+v[4], o.Y+v[5])
	case 'S', 's':
		v, err := sc.numbers(4)
		if err != nil {
			return err
		}
		c1 := p.cur
		if p.lastOp == PathCubicTo {
			c1 = Vec2{2*p.cur.X - p.lastCP.X, 2*p.cur.Y - p.lastCP.Y}
		}
		p.CurveTo(c1.X, c1.Y, o.X+v[0], o.Y+v[1], o.X+v[2], o.Y+v[3])
	case 'Q', 'q':
		v, err := sc.numbers(4)
		if err != nil {
			return err
		}
		p.QuadTo(o.X+v[0], o.Y+v[1], o.X+v[2], o.Y+v[3])
	case 'T', 't':
		v, err := sc.numbers(2)
		if err != nil {
			return err
		}
		c := p.cur
		if p.lastOp == PathQuadTo {
			c = Vec2{2*p.cur.X - p.lastCP.X, 2*p.cur.Y - p.lastCP.Y}
		}
		p.QuadTo(c.X, c.Y, o.X+v[0], o.Y+v[1])
	case 'A', 'a':
		v, err := sc.numbers(3)
		if err != nil {
			return err
		}
		large, err := sc.flag()
		if err != nil {
			return err
		}
		sweep, err := sc.flag()
		if err != nil {
			return err
		}
		end, err := sc.numbers(2)
		if err != nil {
			return err
		}
		p.ArcTo(v[0], v[1], v[2], large, sweep, o.X+end[0], o.Y+end[1])
	case 'Z', 'z':
		p.Close()
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

func isPathCommand(c byte) bool {
	return strings.IndexByte("MmLlHhVvCcSsQqTtAaZz", c) >= 0
}

type pathScanner struct {
	s string
	i int
}

func (sc *pathScanner) done() bool { return sc.i >= len(sc.s) }
func (sc *pathScanner) peek() byte { return sc.s[sc.i] }

func (sc *pathScanner) skipSpace() {
	for !sc.done() {
		switch sc.peek() {
		case ' ', '\t', '\n', '\r', ',':
			sc.i++
		default:
			return
		}
	}
}

func (sc *pathScanner) numbers(n int) ([]float64, error) {
	out := make([]float64, n)
	for k := range out {
		v, err := sc.number()
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

func (sc *pathScanner) number() (float64, error) {
	sc.skipSpace()
	start := sc.i
	if !sc.done() && (sc.peek() == '-' || sc.peek() == '+') {
		sc.i++
	}
	dot, exp := false, false
	for !sc.done() {
		c := sc.peek()
		switch {
		case c >= '0' && c <= '9':
		case c == '.' && !dot && !exp:
			dot = true
		case (c == 'e' || c == 'E') && !exp:
			exp = true
			if sc.i+1 < len(sc.s) && (sc.s[sc.i+1] == '-' || sc.s[sc.i+1] == '+') {
				sc.i++
			}
		default:
			goto end
		}
		sc.i++
	}
end:
	if start == sc.i {
		return 0, fmt.Errorf("expected number at offset %d", start)
	}
	v, err := strconv.ParseFloat(sc.s[start:sc.i], 64)
	if err != nil {
		return 0, fmt.Errorf("bad number %q: %w", sc.s[start:sc.i], err)
	}
	return v, nil
}

func (sc *pathScanner) flag() (bool, error) {
	sc.skipSpace()
	if sc.done() {
		return false, fmt.Errorf("expected arc flag at offset %d", sc.i)
	}
	switch sc.peek() {
	case '0':
		sc.i++
		return false, nil
	case '1':
		sc.i++
		return true, nil
	}
	return false, fmt.Errorf("expected arc flag at offset %d", sc.i)
}
