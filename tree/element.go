// Package tree is a small reconciliation engine for art primitives.
//
// A caller describes the scene as a tree of Elements and hands each new
// description to a mounted Root. The Root diffs it against the previously
// committed tree and drives an art.HostConfig with the minimal set of
// create, update, move and remove operations. Siblings are matched by Key
// when they carry one and by position otherwise.
//
//	rec := tree.New(art.NewHost(backend))
//	surface := art.NewSurface[[]tree.Element](backend, rec)
//	err := surface.Attach(400, 300, []tree.Element{
//		tree.Group(art.Props{X: 10},
//			tree.Shape(art.Props{D: path, Fill: art.ColorBlack}),
//		),
//	})
package tree

import (
	"fmt"

	"github.com/phanxgames/art"
)

// Element describes one node of a declarative tree. Type is a primitive tag
// ("Group", "ClippingRectangle", "Shape", "Text"); the empty Type marks a raw
// text node, which the host refuses to attach.
type Element struct {
	Type     string
	Key      string
	Props    art.Props
	Children []Element

	// Text is the content of a raw text node.
	Text string
}

// Group returns a Group element.
func Group(props art.Props, children ...Element) Element {
	return Element{Type: art.KindGroup.String(), Props: props, Children: children}
}

// ClippingRectangle returns a ClippingRectangle element sized by
// props.Width and props.Height.
func ClippingRectangle(props art.Props, children ...Element) Element {
	return Element{Type: art.KindClippingRectangle.String(), Props: props, Children: children}
}

// Shape returns a Shape element.
func Shape(props art.Props) Element {
	return Element{Type: art.KindShape.String(), Props: props}
}

// Text returns a Text element drawing content.
func Text(props art.Props, content string) Element {
	props.Children = content
	return Element{Type: art.KindText.String(), Props: props}
}

// RawText returns a bare text node.
func RawText(s string) Element {
	return Element{Text: s}
}

// WithKey returns e with its sibling key set.
func (e Element) WithKey(key string) Element {
	e.Key = key
	return e
}

func (e Element) isText() bool { return e.Type == "" }

func (e Element) String() string {
	name := e.Type
	if e.isText() {
		name = "text"
	}
	if e.Key != "" {
		return fmt.Sprintf("%s[%s]", name, e.Key)
	}
	return name
}

// Count returns the number of elements in the trees rooted at es.
func Count(es []Element) int {
	n := len(es)
	for _, e := range es {
		n += Count(e.Children)
	}
	return n
}
