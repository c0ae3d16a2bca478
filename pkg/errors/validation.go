package errors

import (
	"math"
	"regexp"
	"unicode"
)

// ValidateNodeID validates a node identity before it enters a graph.
//
// The rules are deliberately narrow. Identities are opaque to the core, so
// only what would corrupt every output format is rejected:
//   - No empty identities
//   - No control characters (newlines break every line-based markup)
//   - Maximum length of 1024 characters
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "node id cannot be empty")
	}

	const maxIDLength = 1024
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidInput, "node id too long (max %d characters)", maxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "node id contains control characters: %q", id)
		}
	}

	return nil
}

// colorNameRegex matches xcolor names and mixes such as "violet" or "blue!50!black".
var colorNameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*(![0-9]{1,3}(![A-Za-z][A-Za-z0-9]*)?)*$`)

// ValidateColor validates a palette color name.
// Names must be usable both as xcolor expressions in TikZ and, for the plain
// names, as X11 color names in Graphviz.
func ValidateColor(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPalette, "color name cannot be empty")
	}
	if !colorNameRegex.MatchString(name) {
		return New(ErrCodeInvalidPalette, "invalid color name: %q", name)
	}
	return nil
}

// ValidatePositive checks that a numeric option is finite and strictly positive.
func ValidatePositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return New(ErrCodeInvalidOption, "%s must be a positive number, got %v", name, v)
	}
	return nil
}
