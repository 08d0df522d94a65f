package vg

import (
	"fmt"

	"github.com/phanxgames/art"
)

// DefaultFontSize is the text size used when a font gives none.
const DefaultFontSize = 16

// Backend is an art.Backend that builds vg nodes and gg canvases.
type Backend struct {
	clear    art.Color
	fontSize float64
	fonts    *fontCache
}

var _ art.Backend = (*Backend)(nil)

// Option configures a Backend.
type Option func(*Backend)

// WithClearColor sets the color canvases are cleared to before each render.
// The zero Color clears to transparent.
func WithClearColor(c art.Color) Option {
	return func(b *Backend) { b.clear = c }
}

// WithFontSize sets the text size for fonts that do not specify one.
func WithFontSize(size float64) Option {
	return func(b *Backend) {
		if size > 0 {
			b.fontSize = size
		}
	}
}

// New creates a backend.
func New(opts ...Option) *Backend {
	b := &Backend{fontSize: DefaultFontSize, fonts: newFontCache()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ClearColor returns the canvas clear color.
func (b *Backend) ClearColor() art.Color { return b.clear }

// NewGroup creates a group node.
func (b *Backend) NewGroup() art.Node { return NewGroup("") }

// NewClippingRectangle creates a clip node with zero size.
func (b *Backend) NewClippingRectangle() art.Node { return NewClip("", 0, 0) }

// NewShape creates an empty shape node.
func (b *Backend) NewShape() art.ShapeNode { return NewShape("") }

// NewText creates a text node. An unparseable font falls back to the default
// face and is logged.
func (b *Backend) NewText(text string, font art.Font, align art.Alignment, path *art.Path) art.TextNode {
	spec, err := art.ParseFont(font)
	if err != nil {
		art.Logger().Warn("vg: unusable font", "err", err)
		spec = art.FontSpec{}
	}
	n := NewText("", text, spec, align)
	n.textPath = path
	return n
}

// NewCanvas creates a raster canvas; it satisfies art.Backend.
func (b *Backend) NewCanvas(width, height int) (art.Canvas, error) {
	c, err := b.Canvas(width, height)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Canvas creates a raster canvas of the given size.
func (b *Backend) Canvas(width, height int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("vg: invalid canvas size %dx%d", width, height)
	}
	return newCanvas(b, width, height), nil
}

// Close releases the parsed fonts. Canvases created by b must not render
// afterwards.
func (b *Backend) Close() error {
	b.fonts.close()
	return nil
}
