package vg

import (
	"errors"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/gogpu/gg"

	"github.com/phanxgames/art"
)

// ErrClosed is returned when a closed canvas is used.
var ErrClosed = errors.New("vg: canvas closed")

// Canvas is a raster drawing surface with a root group. It implements
// art.Canvas, art.Resizer, art.Renderer and io.Closer.
type Canvas struct {
	be     *Backend
	root   *Node
	dc     *gg.Context
	width  int
	height int

	pointer     pointerState
	injectQueue []syntheticPointerEvent

	renders int
	closed  bool
}

var (
	_ art.Canvas   = (*Canvas)(nil)
	_ art.Resizer  = (*Canvas)(nil)
	_ art.Renderer = (*Canvas)(nil)
	_ io.Closer    = (*Canvas)(nil)
)

func newCanvas(b *Backend, width, height int) *Canvas {
	return &Canvas{
		be:     b,
		root:   NewGroup("root"),
		dc:     gg.NewContext(width, height),
		width:  width,
		height: height,
	}
}

// Root returns the root group.
func (c *Canvas) Root() art.Node { return c.root }

// RootNode returns the root group as a *Node.
func (c *Canvas) RootNode() *Node { return c.root }

// Size returns the canvas size in pixels.
func (c *Canvas) Size() (width, height int) { return c.width, c.height }

// Renders returns how many times the canvas has been rendered.
func (c *Canvas) Renders() int { return c.renders }

// Resize changes the pixel size. The next Render repaints everything.
func (c *Canvas) Resize(width, height int) error {
	if c.closed {
		return ErrClosed
	}
	if err := c.dc.Resize(width, height); err != nil {
		return fmt.Errorf("vg: resize: %w", err)
	}
	c.width, c.height = width, height
	return nil
}

// Render clears the canvas and rasterizes the node tree.
func (c *Canvas) Render() error {
	if c.closed {
		return ErrClosed
	}
	start := time.Now()
	c.dc.Identity()
	c.dc.ResetClip()
	if cc := c.be.clear; cc.IsZero() {
		c.dc.Clear()
	} else {
		c.dc.ClearWithColor(toRGBA(cc))
	}
	var st renderStats
	if err := c.drawNode(c.root, art.Identity, &st); err != nil {
		return err
	}
	c.renders++
	art.Logger().Debug("vg: render",
		"shapes", st.shapes, "texts", st.texts, "layers", st.layers,
		"elapsed", time.Since(start))
	return nil
}

// Image returns a copy of the rendered pixels.
func (c *Canvas) Image() image.Image { return c.dc.Image() }

// EncodePNG writes the rendered pixels as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	if c.closed {
		return ErrClosed
	}
	return c.dc.EncodePNG(w)
}

// SavePNG writes the rendered pixels to a PNG file.
func (c *Canvas) SavePNG(path string) error {
	if c.closed {
		return ErrClosed
	}
	if err := c.dc.SavePNG(path); err != nil {
		return fmt.Errorf("vg: save %s: %w", path, err)
	}
	return nil
}

// Close releases the pixel buffer. Further use fails with ErrClosed.
func (c *Canvas) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.pointer = pointerState{}
	c.injectQueue = nil
	return c.dc.Close()
}

// Closed reports whether Close has been called.
func (c *Canvas) Closed() bool { return c.closed }
