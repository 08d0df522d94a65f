// Package scenefile loads YAML scene descriptions into element trees.
//
// A scene file has a size, an optional background and a list of children:
//
//	width: 200
//	height: 120
//	background: white
//	children:
//	  - type: Group
//	    x: 20
//	    y: 20
//	    children:
//	      - type: Shape
//	        d: M0,0 L80,0 L80,40 Z
//	        fill: "#3366cc"
//	        stroke: black
//	        strokeWidth: 2
//	      - type: Text
//	        y: 60
//	        text: Hello
//	        font: bold 16px sans-serif
//	        fill:
//	          linear:
//	            x1: 0
//	            x2: 80
//	            stops:
//	              - {offset: 0, color: red}
//	              - {offset: 1, color: blue}
//
// Fills are a color (a name or hex notation) or one of linear, radial or
// pattern. Pattern images are resolved relative to the scene file.
package scenefile

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/phanxgames/art"
	"github.com/phanxgames/art/tree"
)

// Scene is a decoded scene file.
type Scene struct {
	Width      int
	Height     int
	Background art.Color
	Children   []tree.Element
}

type sceneSpec struct {
	Width      int              `mapstructure:"width"`
	Height     int              `mapstructure:"height"`
	Background art.Color        `mapstructure:"background"`
	Children   []map[string]any `mapstructure:"children"`
}

// nodeSpec is one element as written in the file.
type nodeSpec struct {
	Type string `mapstructure:"type"`
	Key  string `mapstructure:"key"`

	X         float64   `mapstructure:"x"`
	Y         float64   `mapstructure:"y"`
	Rotation  float64   `mapstructure:"rotation"`
	OriginX   float64   `mapstructure:"originX"`
	OriginY   float64   `mapstructure:"originY"`
	Scale     *float64  `mapstructure:"scale"`
	ScaleX    *float64  `mapstructure:"scaleX"`
	ScaleY    *float64  `mapstructure:"scaleY"`
	Transform []float64 `mapstructure:"transform"`
	Cursor    string    `mapstructure:"cursor"`
	Title     string    `mapstructure:"title"`
	Opacity   *float64  `mapstructure:"opacity"`
	Visible   *bool     `mapstructure:"visible"`
	Width     float64   `mapstructure:"width"`
	Height    float64   `mapstructure:"height"`

	Fill        art.Paint     `mapstructure:"fill"`
	Stroke      art.Color     `mapstructure:"stroke"`
	StrokeWidth float64       `mapstructure:"strokeWidth"`
	StrokeCap   art.LineCap   `mapstructure:"strokeCap"`
	StrokeJoin  art.LineJoin  `mapstructure:"strokeJoin"`
	StrokeDash  []float64     `mapstructure:"strokeDash"`
	D           string        `mapstructure:"d"`
	Text        string        `mapstructure:"text"`
	Font        art.Font      `mapstructure:"font"`
	Alignment   art.Alignment `mapstructure:"alignment"`
	TextPath    string        `mapstructure:"textPath"`

	Children []map[string]any `mapstructure:"children"`
}

// Load reads and decodes the scene file at path.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenefile: %w", err)
	}
	s, err := Parse(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a scene document. Relative image paths are resolved against
// dir.
func Parse(data []byte, dir string) (*Scene, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("scenefile: parse: %w", err)
	}
	d := &decoder{dir: dir}
	var spec sceneSpec
	if err := d.decode(raw, &spec); err != nil {
		return nil, fmt.Errorf("scenefile: %w", err)
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return nil, fmt.Errorf("scenefile: width and height must be positive, got %dx%d", spec.Width, spec.Height)
	}
	children, err := d.elements(spec.Children)
	if err != nil {
		return nil, fmt.Errorf("scenefile: %w", err)
	}
	return &Scene{
		Width:      spec.Width,
		Height:     spec.Height,
		Background: spec.Background,
		Children:   children,
	}, nil
}

// elements decodes a child list. Errors name the failing child by index,
// outermost first.
func (d *decoder) elements(raw []map[string]any) ([]tree.Element, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]tree.Element, 0, len(raw))
	for i, m := range raw {
		e, err := d.element(m)
		if err != nil {
			return nil, fmt.Errorf("children[%d]: %w", i, err)
		}
		out = append(out, e)
	}
	return out, nil
}

func (d *decoder) element(m map[string]any) (tree.Element, error) {
	var n nodeSpec
	if err := d.decode(m, &n); err != nil {
		return tree.Element{}, err
	}
	kind, err := art.ParseKind(n.Type)
	if err != nil {
		return tree.Element{}, err
	}
	props := art.Props{
		X: n.X, Y: n.Y, Rotation: n.Rotation, OriginX: n.OriginX, OriginY: n.OriginY,
		Scale: n.Scale, ScaleX: n.ScaleX, ScaleY: n.ScaleY,
		Cursor: n.Cursor, Title: n.Title, Opacity: n.Opacity, Visible: n.Visible,
		Width: n.Width, Height: n.Height,
		Fill: n.Fill, Stroke: n.Stroke, StrokeWidth: n.StrokeWidth,
		StrokeCap: n.StrokeCap, StrokeJoin: n.StrokeJoin, StrokeDash: n.StrokeDash,
		Font: n.Font, Alignment: n.Alignment,
	}
	if len(n.Transform) > 0 {
		if len(n.Transform) != 6 {
			return tree.Element{}, fmt.Errorf("transform needs 6 values, got %d", len(n.Transform))
		}
		t := art.NewTransform(n.Transform[0], n.Transform[1], n.Transform[2], n.Transform[3], n.Transform[4], n.Transform[5])
		props.Transform = &t
	}
	if n.D != "" {
		p, err := art.ParsePath(n.D)
		if err != nil {
			return tree.Element{}, err
		}
		props.D = p
	}
	if n.TextPath != "" {
		p, err := art.ParsePath(n.TextPath)
		if err != nil {
			return tree.Element{}, fmt.Errorf("textPath: %w", err)
		}
		props.Path = p
	}

	e := tree.Element{Type: kind.String(), Key: n.Key, Props: props}
	switch kind {
	case art.KindText:
		e.Props.Children = n.Text
	case art.KindGroup, art.KindClippingRectangle:
		if e.Children, err = d.elements(n.Children); err != nil {
			return tree.Element{}, err
		}
	}
	return e, nil
}
