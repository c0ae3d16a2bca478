package cli

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/isplab/citegraph/pkg/config"
	"github.com/isplab/citegraph/pkg/graph"
)

// isolate points config and cache lookups at a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv("HOME", dir)
	return dir
}

// writeFacts writes two triangles joined by a bridge to dir/name.
func writeFacts(t *testing.T, dir, name string) string {
	t.Helper()
	facts := graph.Facts{
		Nodes: []graph.NodeFact{
			{ID: "a", Label: "[1]"}, {ID: "b", Label: "[2]"}, {ID: "c", Label: "[3]"},
			{ID: "d", Label: "[4]"}, {ID: "e", Label: "[5]"}, {ID: "f", Label: "[6]"},
		},
		Edges: []graph.EdgeFact{
			{From: "a", To: "b"}, {From: "b", To: "c"}, {From: "a", To: "c"},
			{From: "c", To: "d"},
			{From: "d", To: "e"}, {From: "e", To: "f"}, {From: "d", To: "f"},
		},
	}
	data, err := json.Marshal(facts)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// runCLI executes the root command with args.
func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.Execute()
}

func TestRootCommandSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"render", "stats", "browse", "serve", "cache", "completion"} {
		if !slices.Contains(names, want) {
			t.Errorf("missing subcommand %q in %v", want, names)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"tikz", []string{"tikz"}},
		{"tikz,svg", []string{"tikz", "svg"}},
		{" tikz , dot ,", []string{"tikz", "dot"}},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCacheDir(t *testing.T) {
	dir := isolate(t)

	c := New(io.Discard, LogInfo)
	got, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(dir, "cache", appName); got != want {
		t.Errorf("cacheDir() = %q, want %q", got, want)
	}

	c.config = &config.Config{Cache: config.CacheConfig{Dir: "/tmp/elsewhere"}}
	if got, _ := c.cacheDir(); got != "/tmp/elsewhere" {
		t.Errorf("cacheDir() with config = %q, want /tmp/elsewhere", got)
	}
}

func TestNewCacheDisabled(t *testing.T) {
	isolate(t)
	c := New(io.Discard, LogInfo)
	c.config = &config.Config{Cache: config.CacheConfig{Disabled: true}}

	store, err := c.newCache(t.Context(), false)
	if err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := store.Get(t.Context(), "k"); hit {
		t.Error("disabled cache should never hit")
	}
}

func TestPlural(t *testing.T) {
	tests := []struct {
		n    int
		noun string
		want string
	}{
		{1, "node", "1 node"},
		{0, "node", "0 nodes"},
		{3, "edge", "3 edges"},
		{2, "community", "2 communities"},
		{1, "community", "1 community"},
	}
	for _, tt := range tests {
		if got := plural(tt.n, tt.noun); got != tt.want {
			t.Errorf("plural(%d, %q) = %q, want %q", tt.n, tt.noun, got, tt.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1536, "1.5 KiB"},
		{3 << 20, "3.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
