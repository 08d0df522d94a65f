package vg

import (
	"math"
	"strings"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/phanxgames/art"
)

// faceKey selects one of the bundled Go font faces at a size.
type faceKey struct {
	mono, bold, italic bool
	size               float64
}

// fontCache lazily parses the bundled Go fonts and caches faces per size.
type fontCache struct {
	sources map[faceKey]*text.FontSource // size is zero in source keys
	faces   map[faceKey]text.Face
	failed  map[faceKey]bool
}

func newFontCache() *fontCache {
	return &fontCache{
		sources: make(map[faceKey]*text.FontSource),
		faces:   make(map[faceKey]text.Face),
		failed:  make(map[faceKey]bool),
	}
}

func fontData(k faceKey) []byte {
	switch {
	case k.mono && k.bold && k.italic:
		return gomonobolditalic.TTF
	case k.mono && k.bold:
		return gomonobold.TTF
	case k.mono && k.italic:
		return gomonoitalic.TTF
	case k.mono:
		return gomono.TTF
	case k.bold && k.italic:
		return gobolditalic.TTF
	case k.bold:
		return gobold.TTF
	case k.italic:
		return goitalic.TTF
	}
	return goregular.TTF
}

// keyFor maps a font spec onto the bundled families: monospace families use
// Go Mono, everything else Go Regular.
func keyFor(spec art.FontSpec, size float64) faceKey {
	family := strings.ToLower(spec.Family)
	weight := strings.ToLower(spec.Weight)
	return faceKey{
		mono:   strings.Contains(family, "mono") || strings.Contains(family, "courier"),
		bold:   weight == "bold" || weight == "bolder" || weight >= "600" && weight <= "900",
		italic: spec.Style == "italic" || spec.Style == "oblique",
		size:   size,
	}
}

// face returns the face for spec scaled by scale, or nil if the font could
// not be loaded.
func (fc *fontCache) face(spec art.FontSpec, defaultSize, scale float64) text.Face {
	size := spec.Size
	if size <= 0 {
		size = defaultSize
	}
	size = math.Round(size*scale*4) / 4
	if size <= 0 {
		return nil
	}
	k := keyFor(spec, size)
	if f, ok := fc.faces[k]; ok {
		return f
	}
	sk := k
	sk.size = 0
	if fc.failed[sk] {
		return nil
	}
	src, ok := fc.sources[sk]
	if !ok {
		var err error
		src, err = text.NewFontSource(fontData(sk))
		if err != nil {
			art.Logger().Warn("vg: font source", "family", spec.Family, "err", err)
			fc.failed[sk] = true
			return nil
		}
		fc.sources[sk] = src
	}
	f := src.Face(size)
	fc.faces[k] = f
	return f
}

// close releases the parsed font sources.
func (fc *fontCache) close() {
	for k, src := range fc.sources {
		_ = src.Close()
		delete(fc.sources, k)
	}
	clear(fc.faces)
}

// textLayout is the measured line layout of a text node in local units.
type textLayout struct {
	lines      []string
	widths     []float64
	width      float64
	lineHeight float64
	ascent     float64
}

// layoutText splits s into lines and measures them with face.
func layoutText(s string, face text.Face) textLayout {
	var l textLayout
	if face == nil {
		return l
	}
	m := face.Metrics()
	l.ascent = m.Ascent
	l.lineHeight = m.LineHeight()
	l.lines = strings.Split(s, "\n")
	l.widths = make([]float64, len(l.lines))
	for i, line := range l.lines {
		w := face.Advance(line)
		l.widths[i] = w
		l.width = math.Max(l.width, w)
	}
	return l
}

// lineX returns the left edge of a line of width w under align.
func lineX(align art.Alignment, w float64) float64 {
	switch align {
	case art.AlignCenter:
		return -w / 2
	case art.AlignRight:
		return -w
	}
	return 0
}

// textBounds returns the local bounding box of a text node: lines stack
// down from y = 0 and are aligned horizontally around x = 0.
func (c *Canvas) textBounds(n *Node) art.Rect {
	l := layoutText(n.text, c.be.fonts.face(n.font, c.be.fontSize, 1))
	if len(l.lines) == 0 {
		return art.Rect{}
	}
	return art.Rect{
		X:      lineX(n.align, l.width),
		Width:  l.width,
		Height: l.lineHeight * float64(len(l.lines)),
	}
}
