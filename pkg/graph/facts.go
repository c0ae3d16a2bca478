package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Facts Serialization API
// =============================================================================

// WriteFacts writes facts as JSON to an io.Writer.
func WriteFacts(f Facts, w io.Writer) error {
	return writeFactsTo(f, w)
}

// ReadFactsFile reads JSON facts from a file.
func ReadFactsFile(path string) (Facts, error) {
	f, err := os.Open(path)
	if err != nil {
		return Facts{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readFactsFrom(f)
}

// ReadFacts decodes JSON facts from an io.Reader.
// The CLI feeds it standard input for `render -`.
func ReadFacts(r io.Reader) (Facts, error) {
	return readFactsFrom(r)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeFactsTo(f Facts, w io.Writer) error {
	if f.Nodes == nil {
		f.Nodes = []NodeFact{}
	}
	if f.Edges == nil {
		f.Edges = []EdgeFact{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readFactsFrom(r io.Reader) (Facts, error) {
	var f Facts
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return Facts{}, fmt.Errorf("decode: %w", err)
	}
	return f, nil
}
