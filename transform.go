package art

import "math"

// Transform is a 2D affine matrix in ART coefficient order:
//
//	| XX  XY  X |
//	| YX  YY  Y |
//	|  0   0  1 |
//
// A point (px, py) maps to (XX*px + XY*py + X, YX*px + YY*py + Y).
// Transform is a value type; the builder methods mutate the receiver and
// return it so calls chain.
type Transform struct {
	XX, YX, XY, YY, X, Y float64
}

// Identity is the identity transform.
var Identity = Transform{XX: 1, YY: 1}

// NewTransform returns a transform with the given coefficients.
func NewTransform(xx, yx, xy, yy, x, y float64) Transform {
	return Transform{XX: xx, YX: yx, XY: xy, YY: yy, X: x, Y: y}
}

// Reset sets t to the identity.
func (t *Transform) Reset() *Transform {
	*t = Identity
	return t
}

// Multiply post-multiplies t by m (t = t * m): m is applied first to points.
func (t *Transform) Multiply(m Transform) *Transform {
	*t = Transform{
		XX: t.XX*m.XX + t.XY*m.YX,
		YX: t.YX*m.XX + t.YY*m.YX,
		XY: t.XX*m.XY + t.XY*m.YY,
		YY: t.YX*m.XY + t.YY*m.YY,
		X:  t.XX*m.X + t.XY*m.Y + t.X,
		Y:  t.YX*m.X + t.YY*m.Y + t.Y,
	}
	return t
}

// Move adds (x, y) to the translation component, independent of the current
// linear part.
func (t *Transform) Move(x, y float64) *Transform {
	t.X += x
	t.Y += y
	return t
}

// Translate post-multiplies a translation by (x, y) in local coordinates.
func (t *Transform) Translate(x, y float64) *Transform {
	return t.Multiply(Transform{XX: 1, YY: 1, X: x, Y: y})
}

// Rotate post-multiplies a rotation of deg degrees around (ox, oy).
func (t *Transform) Rotate(deg, ox, oy float64) *Transform {
	if deg == 0 {
		return t
	}
	sin, cos := math.Sincos(deg * math.Pi / 180)
	t.Translate(ox, oy)
	t.Multiply(Transform{XX: cos, YX: sin, XY: -sin, YY: cos})
	return t.Translate(-ox, -oy)
}

// Scale post-multiplies a scale of (sx, sy) around (ox, oy).
func (t *Transform) Scale(sx, sy, ox, oy float64) *Transform {
	if sx == 1 && sy == 1 {
		return t
	}
	t.Translate(ox, oy)
	t.Multiply(Transform{XX: sx, YY: sy})
	return t.Translate(-ox, -oy)
}

// Point maps (x, y) through t.
func (t Transform) Point(x, y float64) (float64, float64) {
	return t.XX*x + t.XY*y + t.X, t.YX*x + t.YY*y + t.Y
}

// Invert returns the inverse of t. Returns the identity if t is singular.
func (t Transform) Invert() Transform {
	det := t.XX*t.YY - t.XY*t.YX
	if det > -1e-12 && det < 1e-12 {
		return Identity
	}
	inv := 1.0 / det
	xx := t.YY * inv
	yx := -t.YX * inv
	xy := -t.XY * inv
	yy := t.XX * inv
	return Transform{
		XX: xx, YX: yx, XY: xy, YY: yy,
		X: -(xx*t.X + xy*t.Y),
		Y: -(yx*t.X + yy*t.Y),
	}
}

// Array returns the coefficients as [XX, YX, XY, YY, X, Y].
func (t Transform) Array() [6]float64 {
	return [6]float64{t.XX, t.YX, t.XY, t.YY, t.X, t.Y}
}

// nodeTransform composes the local transform described by p:
// identity, move by (X, Y), rotate around the origin, scale around the
// origin, then the explicit Transform override if any.
func nodeTransform(p *Props) Transform {
	sx, sy := p.scale()
	var t Transform
	t.Reset().
		Move(p.X, p.Y).
		Rotate(p.Rotation, p.OriginX, p.OriginY).
		Scale(sx, sy, p.OriginX, p.OriginY)
	if p.Transform != nil {
		t.Multiply(*p.Transform)
	}
	return t
}
