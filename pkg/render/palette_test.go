package render

import (
	"testing"

	"github.com/isplab/citegraph/pkg/errors"
)

func TestPaletteColor(t *testing.T) {
	tests := []struct {
		name    string
		palette Palette
		id      int
		want    string
	}{
		{"First", DefaultPalette(), 0, "cyan"},
		{"Last", DefaultPalette(), 3, "violet"},
		{"Fallback", DefaultPalette(), 4, "black"},
		{"FarFallback", DefaultPalette(), 100, "black"},
		{"Wrap", Palette{Colors: []string{"red", "blue"}, Wrap: true}, 3, "blue"},
		{"EmptyFallback", Palette{Colors: []string{"red"}}, 1, "black"},
		{"Negative", Palette{Colors: []string{"red"}, Fallback: "gray", Wrap: true}, -1, "gray"},
		{"Extended", ExtendedPalette(), 6, "blue"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.palette.Color(tt.id); got != tt.want {
				t.Errorf("Color(%d) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestPaletteValidate(t *testing.T) {
	tests := []struct {
		name    string
		palette Palette
		wantErr bool
	}{
		{"Default", DefaultPalette(), false},
		{"Mix", Palette{Colors: []string{"blue!50!black"}, Fallback: "gray"}, false},
		{"Empty", Palette{}, true},
		{"BadColor", Palette{Colors: []string{"red", "not a color"}}, true},
		{"BadFallback", Palette{Colors: []string{"red"}, Fallback: "}{"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.palette.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidPalette) {
				t.Errorf("code = %q, want INVALID_PALETTE", errors.GetCode(err))
			}
		})
	}
}

func TestNamedPalette(t *testing.T) {
	if p, ok := NamedPalette("Extended"); !ok || len(p.Colors) != 7 {
		t.Errorf("NamedPalette(Extended) = %v, %v", p, ok)
	}
	if p, ok := NamedPalette(""); !ok || len(p.Colors) != 4 {
		t.Errorf("NamedPalette(\"\") = %v, %v", p, ok)
	}
	if _, ok := NamedPalette("neon"); ok {
		t.Error("NamedPalette(neon) should fail")
	}
}

func TestPaletteString(t *testing.T) {
	p := Palette{Colors: []string{"a", "b"}, Fallback: "c", Wrap: true}
	if got := p.String(); got != "a,b|c|wrap" {
		t.Errorf("String() = %q", got)
	}
}
