package scenefile

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/phanxgames/art"
)

var (
	colorType = reflect.TypeOf(art.Color{})
	paintType = reflect.TypeOf((*art.Paint)(nil)).Elem()
	fontType  = reflect.TypeOf((*art.Font)(nil)).Elem()
	capType   = reflect.TypeOf(art.CapDefault)
	joinType  = reflect.TypeOf(art.JoinDefault)
	alignType = reflect.TypeOf(art.AlignLeft)
)

var namedColors = map[string]art.Color{
	"transparent": {},
	"black":       art.ColorBlack,
	"white":       art.ColorWhite,
	"red":         {R: 1, A: 1},
	"green":       {G: 0.5, A: 1},
	"lime":        {G: 1, A: 1},
	"blue":        {B: 1, A: 1},
	"yellow":      {R: 1, G: 1, A: 1},
	"cyan":        {G: 1, B: 1, A: 1},
	"magenta":     {R: 1, B: 1, A: 1},
	"gray":        {R: 0.5, G: 0.5, B: 0.5, A: 1},
	"orange":      {R: 1, G: 0.647, A: 1},
}

// ParseColor accepts a color name or hex notation.
func ParseColor(s string) (art.Color, error) {
	if c, ok := namedColors[strings.ToLower(strings.TrimSpace(s))]; ok {
		return c, nil
	}
	return art.Hex(s)
}

var lineCaps = map[string]art.LineCap{
	"": art.CapDefault, "butt": art.CapButt, "round": art.CapRound, "square": art.CapSquare,
}

var lineJoins = map[string]art.LineJoin{
	"": art.JoinDefault, "miter": art.JoinMiter, "round": art.JoinRound, "bevel": art.JoinBevel,
}

type stopSpec struct {
	Offset float64   `mapstructure:"offset"`
	Color  art.Color `mapstructure:"color"`
}

func colorStops(specs []stopSpec) []art.ColorStop {
	out := make([]art.ColorStop, len(specs))
	for i, s := range specs {
		out[i] = art.ColorStop{Offset: s.Offset, Color: s.Color}
	}
	return out
}

type linearSpec struct {
	Stops []stopSpec `mapstructure:"stops"`
	X1    float64    `mapstructure:"x1"`
	Y1    float64    `mapstructure:"y1"`
	X2    float64    `mapstructure:"x2"`
	Y2    float64    `mapstructure:"y2"`
}

type radialSpec struct {
	Stops []stopSpec `mapstructure:"stops"`
	FX    float64    `mapstructure:"fx"`
	FY    float64    `mapstructure:"fy"`
	RX    float64    `mapstructure:"rx"`
	RY    float64    `mapstructure:"ry"`
	CX    float64    `mapstructure:"cx"`
	CY    float64    `mapstructure:"cy"`
}

type patternSpec struct {
	Image  string  `mapstructure:"image"`
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`
	Left   float64 `mapstructure:"left"`
	Top    float64 `mapstructure:"top"`
}

type paintSpec struct {
	Linear  *linearSpec  `mapstructure:"linear"`
	Radial  *radialSpec  `mapstructure:"radial"`
	Pattern *patternSpec `mapstructure:"pattern"`
}

type fontSpec struct {
	Size    float64 `mapstructure:"size"`
	Style   string  `mapstructure:"style"`
	Variant string  `mapstructure:"variant"`
	Weight  string  `mapstructure:"weight"`
	Family  string  `mapstructure:"family"`
}

// decoder holds the state the decode hooks need: the directory pattern
// images are resolved against.
type decoder struct {
	dir string
}

func (d *decoder) decode(input, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			d.colorHook, d.paintHook, d.fontHook, d.enumHook,
		),
		ErrorUnused: true,
		Result:      out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

func (d *decoder) colorHook(from, to reflect.Type, data any) (any, error) {
	if to != colorType || from.Kind() != reflect.String {
		return data, nil
	}
	return ParseColor(data.(string))
}

func (d *decoder) paintHook(from, to reflect.Type, data any) (any, error) {
	if to != paintType {
		return data, nil
	}
	if from.Kind() == reflect.String {
		return ParseColor(data.(string))
	}
	var ps paintSpec
	if err := d.decode(data, &ps); err != nil {
		return nil, fmt.Errorf("fill: %w", err)
	}
	switch {
	case ps.Linear != nil:
		g := ps.Linear
		return art.NewLinearGradient(colorStops(g.Stops), g.X1, g.Y1, g.X2, g.Y2), nil
	case ps.Radial != nil:
		g := ps.Radial
		if g.RY == 0 {
			g.RY = g.RX
		}
		return art.NewRadialGradient(colorStops(g.Stops), g.FX, g.FY, g.RX, g.RY, g.CX, g.CY), nil
	case ps.Pattern != nil:
		p := ps.Pattern
		img, err := d.loadImage(p.Image)
		if err != nil {
			return nil, fmt.Errorf("fill: %w", err)
		}
		return art.NewPattern(img, p.Width, p.Height, p.Left, p.Top), nil
	}
	return nil, fmt.Errorf("fill: want a color, linear, radial or pattern")
}

func (d *decoder) loadImage(name string) (image.Image, error) {
	if name == "" {
		return nil, fmt.Errorf("pattern has no image")
	}
	if !filepath.IsAbs(name) {
		name = filepath.Join(d.dir, name)
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return img, nil
}

func (d *decoder) fontHook(from, to reflect.Type, data any) (any, error) {
	if to != fontType {
		return data, nil
	}
	if from.Kind() == reflect.String {
		return art.FontString(data.(string)), nil
	}
	var fs fontSpec
	if err := d.decode(data, &fs); err != nil {
		return nil, fmt.Errorf("font: %w", err)
	}
	return &art.FontSpec{Size: fs.Size, Style: fs.Style, Variant: fs.Variant, Weight: fs.Weight, Family: fs.Family}, nil
}

func (d *decoder) enumHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}
	s := strings.ToLower(data.(string))
	switch to {
	case capType:
		if c, ok := lineCaps[s]; ok {
			return c, nil
		}
		return nil, fmt.Errorf("unknown stroke cap %q", s)
	case joinType:
		if j, ok := lineJoins[s]; ok {
			return j, nil
		}
		return nil, fmt.Errorf("unknown stroke join %q", s)
	case alignType:
		return art.ParseAlignment(s)
	}
	return data, nil
}
