package scenefile

import (
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/art"
)

const sample = `
width: 200
height: 120
background: white
children:
  - type: Group
    key: header
    x: 20
    y: 10
    rotation: 45
    scale: 2
    opacity: 0.5
    cursor: pointer
    children:
      - type: Shape
        d: M0,0 L80,0 L80,40 Z
        fill: "#3366cc"
        stroke: black
        strokeWidth: 2
        strokeCap: round
        strokeJoin: bevel
        strokeDash: [4, 2]
      - type: Text
        text: Hello
        font: bold 16px sans-serif
        alignment: center
        fill:
          linear:
            x2: 80
            stops:
              - {offset: 0, color: red}
              - {offset: 1, color: "#0000ff80"}
  - type: ClippingRectangle
    width: 50
    height: 40
    visible: false
    transform: [1, 0, 0, 1, 5, 5]
    children:
      - type: Shape
        d: M0,0 H10 V10 Z
        fill:
          radial: {cx: 5, cy: 5, fx: 5, fy: 5, rx: 5}
`

func TestParseSample(t *testing.T) {
	s, err := Parse([]byte(sample), ".")
	require.NoError(t, err)
	assert.Equal(t, 200, s.Width)
	assert.Equal(t, 120, s.Height)
	assert.Equal(t, art.ColorWhite, s.Background)
	require.Len(t, s.Children, 2)

	g := s.Children[0]
	assert.Equal(t, "Group", g.Type)
	assert.Equal(t, "header", g.Key)
	assert.Equal(t, 20.0, g.Props.X)
	assert.Equal(t, 45.0, g.Props.Rotation)
	require.NotNil(t, g.Props.Scale)
	assert.Equal(t, 2.0, *g.Props.Scale)
	require.NotNil(t, g.Props.Opacity)
	assert.Equal(t, 0.5, *g.Props.Opacity)
	assert.Equal(t, "pointer", g.Props.Cursor)
	require.Len(t, g.Children, 2)

	shape := g.Children[0].Props
	require.NotNil(t, shape.D)
	assert.Equal(t, "M0,0 L80,0 L80,40 Z", shape.D.String())
	assert.Equal(t, art.MustHex("#3366cc"), shape.Fill)
	assert.Equal(t, art.ColorBlack, shape.Stroke)
	assert.Equal(t, 2.0, shape.StrokeWidth)
	assert.Equal(t, art.CapRound, shape.StrokeCap)
	assert.Equal(t, art.JoinBevel, shape.StrokeJoin)
	assert.Equal(t, []float64{4, 2}, shape.StrokeDash)

	text := g.Children[1]
	assert.Equal(t, "Text", text.Type)
	assert.Equal(t, "Hello", text.Props.Children)
	assert.Equal(t, art.FontString("bold 16px sans-serif"), text.Props.Font)
	assert.Equal(t, art.AlignCenter, text.Props.Alignment)
	lin, ok := text.Props.Fill.(*art.LinearGradient)
	require.True(t, ok, "fill = %T", text.Props.Fill)
	stops := lin.Stops()
	require.Len(t, stops, 2)
	assert.Equal(t, art.Color{R: 1, A: 1}, stops[0].Color)
	assert.InDelta(t, 128.0/255, stops[1].Color.A, 1e-9)
	_, _, x2, _ := lin.Line()
	assert.Equal(t, 80.0, x2)

	clip := s.Children[1]
	assert.Equal(t, "ClippingRectangle", clip.Type)
	assert.Equal(t, 50.0, clip.Props.Width)
	require.NotNil(t, clip.Props.Visible)
	assert.False(t, *clip.Props.Visible)
	require.NotNil(t, clip.Props.Transform)
	assert.Equal(t, art.NewTransform(1, 0, 0, 1, 5, 5), *clip.Props.Transform)
	rad, ok := clip.Children[0].Props.Fill.(*art.RadialGradient)
	require.True(t, ok)
	_, _, rx, ry, _, _ := rad.Geometry()
	assert.Equal(t, rx, ry, "missing ry defaults to rx")
}

func TestStructuredFont(t *testing.T) {
	s, err := Parse([]byte(`
width: 10
height: 10
children:
  - type: Text
    text: hi
    font: {size: 12, weight: bold, family: Go Mono}
`), ".")
	require.NoError(t, err)
	assert.Equal(t, &art.FontSpec{Size: 12, Weight: "bold", Family: "Go Mono"}, s.Children[0].Props.Font)
}

func TestPatternFill(t *testing.T) {
	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, "tile.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	require.NoError(t, f.Close())
	scene := []byte(`
width: 10
height: 10
children:
  - type: Shape
    d: M0,0 H10 V10 H0 Z
    fill:
      pattern: {image: tile.png, width: 4, height: 4}
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scene.yaml"), scene, 0o644))

	s, err := Load(filepath.Join(dir, "scene.yaml"))
	require.NoError(t, err)
	p, ok := s.Children[0].Props.Fill.(*art.Pattern)
	require.True(t, ok)
	assert.Equal(t, 4, p.Image().Bounds().Dx())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
		is      error
	}{
		{"bad yaml", "width: [", "parse", nil},
		{"no size", "children: []", "width and height", nil},
		{"unknown kind", "width: 1\nheight: 1\nchildren:\n  - type: Circle", "children[0]", art.ErrUnsupportedKind},
		{"unknown key", "width: 1\nheight: 1\nchildren:\n  - type: Group\n    colour: red", "colour", nil},
		{"bad color", "width: 1\nheight: 1\nchildren:\n  - type: Shape\n    fill: '#12'", "hex color", nil},
		{"bad cap", "width: 1\nheight: 1\nchildren:\n  - type: Shape\n    strokeCap: pointy", "stroke cap", nil},
		{"bad path", "width: 1\nheight: 1\nchildren:\n  - type: Shape\n    d: M0", "children[0]", nil},
		{"nested", "width: 1\nheight: 1\nchildren:\n  - type: Group\n    children:\n      - type: Group\n      - type: Nope", "children[0]: children[1]", art.ErrUnsupportedKind},
		{"short transform", "width: 1\nheight: 1\nchildren:\n  - type: Group\n    transform: [1, 2]", "6 values", nil},
		{"empty fill map", "width: 1\nheight: 1\nchildren:\n  - type: Shape\n    fill: {}", "want a color", nil},
		{"missing pattern", "width: 1\nheight: 1\nchildren:\n  - type: Shape\n    fill: {pattern: {image: nope.png}}", "nope.png", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), t.TempDir())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			if tt.is != nil {
				assert.True(t, errors.Is(err, tt.is), "errors.Is(%v, %v)", err, tt.is)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor(" Red ")
	require.NoError(t, err)
	assert.Equal(t, art.Color{R: 1, A: 1}, c)
	c, err = ParseColor("#fff")
	require.NoError(t, err)
	assert.Equal(t, art.ColorWhite, c)
	_, err = ParseColor("chartreuse-ish")
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
