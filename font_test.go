package art

import "testing"

func TestSameFont(t *testing.T) {
	spec := &FontSpec{Size: 10, Family: "sans"}
	cases := []struct {
		name string
		a, b Font
		want bool
	}{
		{"nil nil", nil, nil, true},
		{"equal strings", FontString("10px sans"), FontString("10px sans"), true},
		{"different strings", FontString("10px sans"), FontString("11px sans"), false},
		{"string vs spec", FontString("10px sans"), spec, false},
		{"spec vs string", spec, FontString("10px sans"), false},
		{"same pointer", spec, spec, true},
		{"equal specs", spec, &FontSpec{Size: 10, Family: "sans"}, true},
		{"different style", spec, &FontSpec{Size: 10, Family: "sans", Style: "italic"}, false},
		{"spec vs nil", spec, nil, false},
	}
	for _, c := range cases {
		if got := sameFont(c.a, c.b); got != c.want {
			t.Errorf("%s: sameFont = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestParseFontShorthand(t *testing.T) {
	got, err := ParseFont(FontString(`italic bold 12px/1.5 "Helvetica Neue"`))
	if err != nil {
		t.Fatal(err)
	}
	want := FontSpec{Size: 12, Style: "italic", Weight: "bold", Family: "Helvetica Neue"}
	if got != want {
		t.Errorf("ParseFont = %+v, want %+v", got, want)
	}
}

func TestParseFontUnits(t *testing.T) {
	cases := map[string]float64{
		"12px sans": 12,
		"9pt sans":  12,
		"1em sans":  16,
		"14 sans":   14,
	}
	for s, want := range cases {
		got, err := ParseFont(FontString(s))
		if err != nil {
			t.Errorf("ParseFont(%q): %v", s, err)
			continue
		}
		assertNear(t, s, got.Size, want)
	}
}

func TestParseFontErrors(t *testing.T) {
	for _, s := range []string{"", "bold", "huge sans"} {
		if _, err := ParseFont(FontString(s)); err == nil {
			t.Errorf("ParseFont(%q) succeeded, want error", s)
		}
	}
}

func TestParseFontSpecAndNil(t *testing.T) {
	spec := &FontSpec{Size: 20, Family: "mono"}
	got, err := ParseFont(spec)
	if err != nil || got != *spec {
		t.Errorf("ParseFont(spec) = %+v, %v", got, err)
	}
	got, err = ParseFont(nil)
	if err != nil || got != (FontSpec{}) {
		t.Errorf("ParseFont(nil) = %+v, %v", got, err)
	}
}
