package vg

import (
	"bytes"
	"encoding/xml"
	"errors"
	"image"
	"io"
	"strings"
	"testing"

	"github.com/phanxgames/art"
)

func encodeSVG(t *testing.T, c *Canvas) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.EncodeSVG(&buf); err != nil {
		t.Fatalf("EncodeSVG: %v", err)
	}
	// the document must be well-formed XML
	dec := xml.NewDecoder(bytes.NewReader(buf.Bytes()))
	for {
		if _, err := dec.Token(); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("malformed svg: %v\n%s", err, buf.String())
		}
	}
	return buf.String()
}

func assertContains(t *testing.T, doc string, parts ...string) {
	t.Helper()
	for _, p := range parts {
		if !strings.Contains(doc, p) {
			t.Errorf("svg missing %q\n%s", p, doc)
		}
	}
}

func TestSVGShape(t *testing.T) {
	c := testCanvas(t)
	r := rectShape("r", 10, 20, 20, 20, red)
	r.Stroke(blue.WithAlpha(0.5), 2, art.CapSquare, art.JoinBevel, []float64{4, 2})
	c.RootNode().AddChild(r)

	doc := encodeSVG(t, c)
	assertContains(t, doc,
		`<svg width="100" height="100"`,
		`d="M0,0 L20,0 L20,20 L0,20 Z"`,
		`transform="matrix(1 0 0 1 10 20)"`,
		`fill="rgb(255,0,0)"`,
		`stroke="rgb(0,0,255)"`,
		`stroke-opacity="0.5"`,
		`stroke-linecap="square"`,
		`stroke-linejoin="bevel"`,
		`stroke-dasharray="4 2"`,
	)
}

func TestSVGGroupsClipsAndOpacity(t *testing.T) {
	c := testCanvas(t, WithClearColor(art.ColorWhite))
	g := NewGroup("g")
	g.Blend(0.25)
	clip := NewClip("clip", 30, 40)
	clip.AddChild(rectShape("inner", 0, 0, 80, 80, red))
	g.AddChild(clip)
	hidden := rectShape("hidden", 0, 0, 5, 5, red)
	hidden.Hide()
	g.AddChild(hidden)
	c.RootNode().AddChild(g)

	doc := encodeSVG(t, c)
	assertContains(t, doc,
		`opacity="0.25"`,
		`<clipPath id="clip1"`,
		`<rect x="0.00" y="0.00" width="30.00" height="40.00" />`,
		`clip-path="url(#clip1)"`,
		`<rect x="0" y="0" width="100" height="100" fill="rgb(255,255,255)" />`,
	)
	if strings.Contains(doc, `id="hidden"`) {
		t.Error("hidden node was encoded")
	}
}

func TestSVGGradientsAndPattern(t *testing.T) {
	c := testCanvas(t)
	stops := []art.ColorStop{{0, red}, {1, blue.WithAlpha(0.5)}}
	lin := rectShape("lin", 0, 0, 10, 10, red)
	lin.FillLinear(stops, 0, 0, 10, 0)
	rad := rectShape("rad", 0, 0, 10, 10, red)
	rad.FillRadial(stops, 5, 5, 5, 5, 5, 5)
	pat := rectShape("pat", 0, 0, 10, 10, red)
	pat.FillImage(image.NewRGBA(image.Rect(0, 0, 2, 2)), 4, 4, 1, 1)
	for _, n := range []*Node{lin, rad, pat} {
		c.RootNode().AddChild(n)
	}

	doc := encodeSVG(t, c)
	assertContains(t, doc,
		`<linearGradient id="grad1" gradientUnits="userSpaceOnUse" x1="0" y1="0" x2="10" y2="0">`,
		`<stop offset="1" stop-color="rgb(0,0,255)" stop-opacity="0.5"/>`,
		`fill="url(#grad1)"`,
		`<radialGradient id="grad2"`,
		`<pattern id="pattern3" x="1.00" y="1.00" width="4.00" height="4.00" patternUnits="userSpaceOnUse"`,
		`<image x="0.00" y="0.00" width="2.00" height="2.00" xlink:href="data:image/png;base64,`,
		`transform="scale(2 2)"`,
	)
}

func TestSVGText(t *testing.T) {
	c := testCanvas(t)
	txt := NewText("t", "a < b\nline two", art.FontSpec{Size: 12, Family: "Go Mono", Weight: "bold"}, art.AlignCenter)
	txt.Fill(art.ColorBlack)
	c.RootNode().AddChild(txt)
	onPath := NewText("p", "along", art.FontSpec{}, art.AlignLeft)
	onPath.DrawText("along", nil, art.AlignLeft, art.NewPath().MoveTo(0, 50).LineTo(100, 50))
	c.RootNode().AddChild(onPath)

	doc := encodeSVG(t, c)
	assertContains(t, doc,
		`text-anchor="middle"`,
		`font-size="12"`,
		`font-family="Go Mono"`,
		`font-weight="bold"`,
		`a &lt; b</text>`,
		`line two</text>`,
		`<textPath xlink:href="#textpath1">along</textPath>`,
	)
	if strings.Count(doc, "<text x=") != 2 {
		t.Errorf("want one <text> per line\n%s", doc)
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestSVGWriteError(t *testing.T) {
	c := testCanvas(t)
	if err := c.EncodeSVG(failWriter{}); err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("err = %v", err)
	}
}
