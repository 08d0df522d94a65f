package art

import (
	"strconv"
	"strings"
)

// Props is the flat declarative attribute set for every primitive kind.
// Fields a kind does not use are ignored. Optional scalars are pointers so an
// absent attribute differs from an explicit zero; build them with Float and
// Bool.
type Props struct {
	// Placement
	X, Y             float64
	Rotation         float64 // degrees, clockwise, around (OriginX, OriginY)
	OriginX, OriginY float64
	Scale            *float64 // uniform scale; default 1
	ScaleX, ScaleY   *float64 // override Scale per axis
	Transform        *Transform

	// Presentation
	Cursor  string
	Title   string
	Opacity *float64 // default 1
	Visible *bool    // nil means visible

	// Listeners
	OnClick     Listener
	OnMouseMove Listener
	OnMouseOver Listener
	OnMouseOut  Listener
	OnMouseUp   Listener
	OnMouseDown Listener

	// Renderables (Shape, Text)
	Fill        Paint
	Stroke      Color
	StrokeWidth float64
	StrokeCap   LineCap
	StrokeJoin  LineJoin
	StrokeDash  []float64 // compared by identity, not contents

	// Shape; Width and Height also size Group and ClippingRectangle.
	D             *Path
	Width, Height float64

	// Children holds flattened text content: a string, a number, or nested
	// []any of those. Shape reads it as path data when D is nil; Text reads
	// it as the string to draw.
	Children any

	// Text
	Font      Font
	Alignment Alignment
	Path      *Path // path the text follows
}

// Float returns a pointer to v, for optional Props fields.
func Float(v float64) *float64 { return &v }

// Bool returns a pointer to v, for optional Props fields.
func Bool(v bool) *bool { return &v }

func (p *Props) scale() (sx, sy float64) {
	s := 1.0
	if p.Scale != nil {
		s = *p.Scale
	}
	sx, sy = s, s
	if p.ScaleX != nil {
		sx = *p.ScaleX
	}
	if p.ScaleY != nil {
		sy = *p.ScaleY
	}
	return sx, sy
}

// listener returns the listener attribute for event type t.
func (p *Props) listener(t EventType) Listener {
	var l Listener
	switch t {
	case EventClick:
		l = p.OnClick
	case EventMouseMove:
		l = p.OnMouseMove
	case EventMouseOver:
		l = p.OnMouseOver
	case EventMouseOut:
		l = p.OnMouseOut
	case EventMouseUp:
		l = p.OnMouseUp
	case EventMouseDown:
		l = p.OnMouseDown
	}
	// a nil func wrapped in ListenerFunc counts as no listener
	if f, ok := l.(ListenerFunc); ok && f == nil {
		return nil
	}
	return l
}

// isVisible reports the effective visibility: nil and true are visible.
func (p *Props) isVisible() bool {
	return p.Visible == nil || *p.Visible
}

func equalFloatPtr(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalBoolPtr(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// sameSlice reports whether a and b share the same backing array and length.
func sameSlice(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}

// HasTextContent reports whether children is direct text content (a string
// or a number) rather than nested nodes.
func HasTextContent(children any) bool {
	switch children.(type) {
	case string, int, int32, int64, uint, uint32, uint64, float32, float64:
		return true
	}
	return false
}

// FlattenText joins strings, numbers and nested []any/[]string slices into one
// string, the way mixed text children are flattened before primitive creation.
func FlattenText(children any) string {
	var b strings.Builder
	flattenInto(&b, children)
	return b.String()
}

func flattenInto(b *strings.Builder, v any) {
	switch c := v.(type) {
	case nil:
	case string:
		b.WriteString(c)
	case int:
		b.WriteString(strconv.Itoa(c))
	case int32:
		b.WriteString(strconv.FormatInt(int64(c), 10))
	case int64:
		b.WriteString(strconv.FormatInt(c, 10))
	case uint:
		b.WriteString(strconv.FormatUint(uint64(c), 10))
	case uint32:
		b.WriteString(strconv.FormatUint(uint64(c), 10))
	case uint64:
		b.WriteString(strconv.FormatUint(c, 10))
	case float32:
		b.WriteString(strconv.FormatFloat(float64(c), 'g', -1, 32))
	case float64:
		b.WriteString(strconv.FormatFloat(c, 'g', -1, 64))
	case []string:
		for _, s := range c {
			b.WriteString(s)
		}
	case []any:
		for _, e := range c {
			flattenInto(b, e)
		}
	}
}
