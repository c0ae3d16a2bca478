package pipeline

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/isplab/citegraph/pkg/errors"
	"github.com/isplab/citegraph/pkg/graph"
)

// InputOptions controls how raw facts become the pipeline's graph.
type InputOptions struct {
	// Known maps bibliography titles to captions. Nil admits every node.
	Known map[string]string `json:"known,omitempty"`

	// Match is the title matching rule used against Known.
	Match graph.MatchRule `json:"-"`

	// Exclude lists node identities or captions to leave out.
	Exclude []string `json:"exclude,omitempty"`

	// Sanitize rewrites identities into markup-safe tokens.
	Sanitize bool `json:"sanitize,omitempty"`
}

// Parse applies the admission filter and optional sanitizing to facts and
// builds the graph. Edges whose endpoints did not survive the filter are
// dropped; structural errors such as self-loops abort the build.
func Parse(facts graph.Facts, opts InputOptions) (*graph.Graph, error) {
	if opts.Known != nil || len(opts.Exclude) > 0 {
		facts = graph.Filter(facts, graph.FilterOptions{
			Known:   opts.Known,
			Match:   opts.Match,
			Exclude: opts.Exclude,
		})
	}
	if opts.Sanitize {
		facts = graph.Sanitize(facts)
	}
	g, err := graph.FromFacts(facts)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return g, nil
}

// ParseFile reads JSON facts from path and parses them.
func ParseFile(path string, opts InputOptions) (*graph.Graph, error) {
	facts, err := graph.ReadFactsFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read facts")
	}
	return Parse(facts, opts)
}

// ParseReader decodes JSON facts from r and parses them.
func ParseReader(r io.Reader, opts InputOptions) (*graph.Graph, error) {
	facts, err := graph.ReadFacts(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read facts")
	}
	return Parse(facts, opts)
}

// ReadTitles loads the known bibliography titles from path.
//
// Two layouts are accepted: a JSON object mapping title to caption, or a
// plain text file with one title per line (blank lines and lines starting
// with '#' are skipped). Plain titles have no caption.
func ReadTitles(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read titles %s", path)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var known map[string]string
		if err := json.Unmarshal(trimmed, &known); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode titles %s", path)
		}
		return known, nil
	}

	known := make(map[string]string)
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		known[line] = ""
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan titles: %w", err)
	}
	return known, nil
}
