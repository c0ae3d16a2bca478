package graph

import (
	"regexp"
	"strconv"
	"strings"
)

// MatchRule selects how node identities are matched against known titles.
type MatchRule int

const (
	// MatchExact compares identities byte for byte.
	MatchExact MatchRule = iota
	// MatchNormalized compares identities after CleanTitle.
	MatchNormalized
)

// String returns the rule name used in configuration files.
func (m MatchRule) String() string {
	if m == MatchNormalized {
		return "normalized"
	}
	return "exact"
}

// ParseMatchRule parses "exact" or "normalized". Unknown values yield MatchExact, false.
func ParseMatchRule(s string) (MatchRule, bool) {
	switch s {
	case "exact", "":
		return MatchExact, true
	case "normalized":
		return MatchNormalized, true
	}
	return MatchExact, false
}

var (
	nonAlnumRe = regexp.MustCompile(`[^a-z0-9]`)
	spacesRe   = regexp.MustCompile(` +`)
	citeRe     = regexp.MustCompile(`\\[A-Za-z]*cite[A-Za-z]*\*?(?:\[[^\]]*\])*\{([^}]*)\}`)
)

// CleanTitle normalizes a title for matching: lowercase, every character
// outside [a-z0-9] becomes a space, runs of spaces collapse, ends are trimmed.
//
//	CleanTitle("Location-Privacy: A Survey") == "location privacy a survey"
func CleanTitle(title string) string {
	s := strings.ToLower(title)
	s = nonAlnumRe.ReplaceAllString(s, " ")
	s = spacesRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// FilterOptions configures the admission filter.
type FilterOptions struct {
	// Known maps titles of bibliography entries to their caption. When nil,
	// every node passes the title check.
	Known map[string]string

	// Match selects exact or normalized title matching against Known.
	Match MatchRule

	// Exclude lists node identities, captions or citation keys that must
	// not be admitted. A key matches a caption that cites it, as in
	// \cite{Smith_Title_2019}.
	Exclude []string
}

// Filter applies the admission rule to facts.
//
// A node passes iff it matches a known title and no Exclude entry names it. A matched node without a caption takes the caption
// from Known. An edge passes iff both endpoints passed; the rule is applied
// to nodes and to both edge endpoints in the same way. Duplicate node ids
// keep their first occurrence.
func Filter(f Facts, opts FilterOptions) Facts {
	known := opts.Known
	if known != nil && opts.Match == MatchNormalized {
		known = make(map[string]string, len(opts.Known))
		for title, label := range opts.Known {
			known[CleanTitle(title)] = label
		}
	}

	excluded := make(map[string]bool, len(opts.Exclude))
	for _, x := range opts.Exclude {
		excluded[x] = true
	}

	admitted := make(map[string]bool, len(f.Nodes))
	out := Facts{Nodes: []NodeFact{}, Edges: []EdgeFact{}}

	for _, n := range f.Nodes {
		if admitted[n.ID] {
			continue
		}
		label := n.Label
		if known != nil {
			key := n.ID
			if opts.Match == MatchNormalized {
				key = CleanTitle(n.ID)
			}
			knownLabel, ok := known[key]
			if !ok {
				continue
			}
			if label == "" {
				label = knownLabel
			}
		}
		if isExcluded(n.ID, label, excluded) {
			continue
		}
		admitted[n.ID] = true
		out.Nodes = append(out.Nodes, NodeFact{ID: n.ID, Label: label})
	}

	for _, e := range f.Edges {
		if admitted[e.From] && admitted[e.To] {
			out.Edges = append(out.Edges, e)
		}
	}

	return out
}

func isExcluded(id, label string, excluded map[string]bool) bool {
	if len(excluded) == 0 {
		return false
	}
	if excluded[id] || (label != "" && excluded[label]) {
		return true
	}
	for _, key := range CiteKeys(label) {
		if excluded[key] {
			return true
		}
	}
	return false
}

// CiteKeys returns the citation keys referenced by LaTeX cite commands in
// caption, in order. Variants such as \citep or \textcite are recognized
// along with stars and optional arguments.
//
//	CiteKeys(`\cite[p.~3]{Gru03, Swe02}`) == []string{"Gru03", "Swe02"}
func CiteKeys(caption string) []string {
	var keys []string
	for _, m := range citeRe.FindAllStringSubmatch(caption, -1) {
		for _, key := range strings.Split(m[1], ",") {
			if key = strings.TrimSpace(key); key != "" {
				keys = append(keys, key)
			}
		}
	}
	return keys
}

// Sanitize rewrites node identities into markup-safe tokens built from
// [a-z0-9-]. Edge endpoints are rewritten with the same mapping. Endpoints
// that are not nodes get an unmappedPrefix token outside that alphabet, so
// they never alias a node token and the graph still drops the edge.
// Colliding tokens get numeric suffixes (-2, -3, ...) in node order.
func Sanitize(f Facts) Facts {
	mapping := make(map[string]string, len(f.Nodes))
	used := make(map[string]bool, len(f.Nodes))

	out := Facts{
		Nodes: make([]NodeFact, 0, len(f.Nodes)),
		Edges: make([]EdgeFact, 0, len(f.Edges)),
	}

	for _, n := range f.Nodes {
		token, seen := mapping[n.ID]
		if !seen {
			token = uniqueToken(tokenFor(n.ID), used)
			mapping[n.ID] = token
			used[token] = true
		}
		out.Nodes = append(out.Nodes, NodeFact{ID: token, Label: n.Label})
	}

	for _, e := range f.Edges {
		out.Edges = append(out.Edges, EdgeFact{
			From: endpointToken(e.From, mapping),
			To:   endpointToken(e.To, mapping),
		})
	}

	return out
}

// unmappedPrefix marks edge endpoints that name no node.
const unmappedPrefix = "?"

func endpointToken(id string, mapping map[string]string) string {
	if t, ok := mapping[id]; ok {
		return t
	}
	if id == "" {
		return ""
	}
	return unmappedPrefix + id
}

func tokenFor(id string) string {
	token := strings.ReplaceAll(CleanTitle(id), " ", "-")
	if token == "" {
		return "node"
	}
	return token
}

func uniqueToken(base string, used map[string]bool) string {
	if !used[base] {
		return base
	}
	for i := 2; ; i++ {
		candidate := base + "-" + strconv.Itoa(i)
		if !used[candidate] {
			return candidate
		}
	}
}
