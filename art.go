package art

import (
	"fmt"
	"strconv"
	"strings"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// The zero Color is fully transparent and means "no paint" wherever a color
// is optional (fill, stroke).
type Color struct {
	R, G, B, A float64
}

// ColorBlack is opaque black.
var ColorBlack = Color{0, 0, 0, 1}

// ColorWhite is opaque white.
var ColorWhite = Color{1, 1, 1, 1}

// IsZero reports whether c is the zero (transparent, unset) color.
func (c Color) IsZero() bool {
	return c == Color{}
}

// WithAlpha returns c with its alpha multiplied by a.
func (c Color) WithAlpha(a float64) Color {
	c.A *= a
	return c
}

// Hex parses "#rgb", "#rgba", "#rrggbb" or "#rrggbbaa" (the leading '#' is
// optional).
func Hex(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(h) {
	case 3, 4:
		var b strings.Builder
		for _, r := range h {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		h = b.String()
	case 6, 8:
	default:
		return Color{}, fmt.Errorf("art: invalid hex color %q", s)
	}
	if len(h) == 6 {
		h += "ff"
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("art: invalid hex color %q: %w", s, err)
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

// MustHex is like Hex but panics on malformed input. Intended for literals.
func MustHex(s string) Color {
	c, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Vec2 is a 2D vector used for points and offsets.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Kind identifies which backend object and which prop-application strategy a
// node uses. The set is closed.
type Kind uint8

const (
	KindClippingRectangle Kind = iota // clips its children to Width x Height
	KindGroup                         // transform/visibility container
	KindShape                         // filled and stroked path
	KindText                          // string drawn with a font
)

var kindTags = [...]string{
	KindClippingRectangle: "ClippingRectangle",
	KindGroup:             "Group",
	KindShape:             "Shape",
	KindText:              "Text",
}

// String returns the declarative tag for k.
func (k Kind) String() string {
	if int(k) < len(kindTags) {
		return kindTags[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// ParseKind maps a declarative primitive tag to its Kind. Unknown tags fail
// with ErrUnsupportedKind.
func ParseKind(tag string) (Kind, error) {
	for k, t := range kindTags {
		if t == tag {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedKind, tag)
}

// EventType identifies a kind of pointer event stream on a node.
type EventType uint8

const (
	EventClick     EventType = iota // press then release over the same node
	EventMouseMove                  // pointer moved over the node
	EventMouseOver                  // pointer entered the node
	EventMouseOut                   // pointer left the node
	EventMouseUp                    // button released over the node
	EventMouseDown                  // button pressed over the node
)

// EventTypes lists every event stream the bridge manages, in binding order.
var EventTypes = [...]EventType{
	EventClick, EventMouseMove, EventMouseOver, EventMouseOut, EventMouseUp, EventMouseDown,
}

var eventNames = [...]string{
	EventClick:     "click",
	EventMouseMove: "mousemove",
	EventMouseOver: "mouseover",
	EventMouseOut:  "mouseout",
	EventMouseUp:   "mouseup",
	EventMouseDown: "mousedown",
}

// String returns the backend event stream name.
func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "EventType(" + strconv.Itoa(int(t)) + ")"
}

// LineCap controls the shape of stroke end points. The zero value leaves the
// choice to the backend (round, matching the usual ART default).
type LineCap uint8

const (
	CapDefault LineCap = iota
	CapButt
	CapRound
	CapSquare
)

// LineJoin controls the shape of stroke corners. The zero value leaves the
// choice to the backend (round).
type LineJoin uint8

const (
	JoinDefault LineJoin = iota
	JoinMiter
	JoinRound
	JoinBevel
)

// Alignment controls horizontal text alignment relative to the node origin.
type Alignment uint8

const (
	AlignLeft   Alignment = iota // text starts at the origin (default)
	AlignCenter                  // text is centered on the origin
	AlignRight                   // text ends at the origin
)

// ParseAlignment maps "left", "center"/"middle" and "right" to an Alignment.
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(s) {
	case "", "left", "start":
		return AlignLeft, nil
	case "center", "middle":
		return AlignCenter, nil
	case "right", "end":
		return AlignRight, nil
	}
	return AlignLeft, fmt.Errorf("art: unknown alignment %q", s)
}
