package art

import (
	"fmt"
	"strconv"
	"strings"
)

// Font is either a FontString (CSS font shorthand) or a *FontSpec.
type Font interface {
	font()
}

// FontString is a CSS font shorthand such as "bold 12px Helvetica".
type FontString string

func (FontString) font() {}

// FontSpec is a structured font description. Empty strings mean "normal".
type FontSpec struct {
	Size    float64
	Style   string // normal, italic, oblique
	Variant string // normal, small-caps
	Weight  string // normal, bold, 100..900
	Family  string
}

func (*FontSpec) font() {}

// sameFont reports whether two fonts need no redraw. A bare string is only
// ever equal to an identical string; structured fonts compare field by field.
func sameFont(a, b Font) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if _, ok := a.(FontString); ok {
		return false
	}
	if _, ok := b.(FontString); ok {
		return false
	}
	sa, oka := a.(*FontSpec)
	sb, okb := b.(*FontSpec)
	if !oka || !okb || sa == nil || sb == nil {
		return false
	}
	return *sa == *sb
}

// ParseFont resolves a Font to a FontSpec. Shorthand strings are parsed as
// "[style] [variant] [weight] size[px|pt][/line-height] family"; a nil font
// yields the zero spec.
func ParseFont(f Font) (FontSpec, error) {
	switch v := f.(type) {
	case nil:
		return FontSpec{}, nil
	case *FontSpec:
		if v == nil {
			return FontSpec{}, nil
		}
		return *v, nil
	case FontString:
		return parseFontShorthand(string(v))
	}
	return FontSpec{}, fmt.Errorf("art: unknown font type %T", f)
}

func parseFontShorthand(s string) (FontSpec, error) {
	var spec FontSpec
	fields := strings.Fields(s)
	for i, f := range fields {
		lf := strings.ToLower(f)
		switch lf {
		case "normal":
			continue
		case "italic", "oblique":
			spec.Style = lf
			continue
		case "small-caps":
			spec.Variant = lf
			continue
		case "bold", "bolder", "lighter", "100", "200", "300", "400", "500", "600", "700", "800", "900":
			spec.Weight = lf
			continue
		}
		size, ok := parseFontSize(lf)
		if !ok {
			return FontSpec{}, fmt.Errorf("art: font %q: expected size before family, got %q", s, f)
		}
		spec.Size = size
		spec.Family = strings.Trim(strings.Join(fields[i+1:], " "), `"'`)
		return spec, nil
	}
	return FontSpec{}, fmt.Errorf("art: font %q has no size", s)
}

func parseFontSize(s string) (float64, bool) {
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	scale := 1.0
	switch {
	case strings.HasSuffix(s, "px"):
		s = strings.TrimSuffix(s, "px")
	case strings.HasSuffix(s, "pt"):
		s = strings.TrimSuffix(s, "pt")
		scale = 4.0 / 3.0
	case strings.HasSuffix(s, "em"):
		s = strings.TrimSuffix(s, "em")
		scale = 16
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v * scale, true
}
