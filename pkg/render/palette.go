package render

import (
	"fmt"
	"strings"

	"github.com/isplab/citegraph/pkg/errors"
)

// Palette assigns a color name to every community id.
type Palette struct {
	Colors   []string `json:"colors,omitempty"`   // color of community i, in order
	Fallback string   `json:"fallback,omitempty"` // color for ids past the end of Colors
	Wrap     bool     `json:"wrap,omitempty"`     // reuse Colors cyclically instead of using Fallback
}

// DefaultPalette returns the four-color palette with a black fallback.
func DefaultPalette() Palette {
	return Palette{
		Colors:   []string{"cyan", "red", "green", "violet"},
		Fallback: "black",
	}
}

// ExtendedPalette returns a seven-color palette with a black fallback.
func ExtendedPalette() Palette {
	return Palette{
		Colors:   []string{"cyan", "red", "green", "violet", "orange", "yellow", "blue"},
		Fallback: "black",
	}
}

// NamedPalette returns a built-in palette by name ("default" or "extended").
func NamedPalette(name string) (Palette, bool) {
	switch strings.ToLower(name) {
	case "", "default":
		return DefaultPalette(), true
	case "extended":
		return ExtendedPalette(), true
	}
	return Palette{}, false
}

// Color returns the color of community id.
func (p Palette) Color(id int) string {
	if id >= 0 && id < len(p.Colors) {
		return p.Colors[id]
	}
	if p.Wrap && len(p.Colors) > 0 && id >= 0 {
		return p.Colors[id%len(p.Colors)]
	}
	if p.Fallback == "" {
		return "black"
	}
	return p.Fallback
}

// Validate checks that every color is a usable xcolor expression.
func (p Palette) Validate() error {
	if len(p.Colors) == 0 && p.Fallback == "" {
		return errors.New(errors.ErrCodeInvalidPalette, "palette has no colors")
	}
	for i, c := range p.Colors {
		if err := errors.ValidateColor(c); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPalette, err, "palette color %d", i)
		}
	}
	if p.Fallback != "" {
		if err := errors.ValidateColor(p.Fallback); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPalette, err, "palette fallback")
		}
	}
	return nil
}

// String renders the palette for logs and cache keys.
func (p Palette) String() string {
	s := fmt.Sprintf("%s|%s", strings.Join(p.Colors, ","), p.Fallback)
	if p.Wrap {
		s += "|wrap"
	}
	return s
}
