package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/isplab/citegraph/pkg/graph"
	"github.com/isplab/citegraph/pkg/pipeline"
	"github.com/isplab/citegraph/pkg/render"
)

func TestAnalyze(t *testing.T) {
	dir := isolate(t)
	path := writeFacts(t, dir, "refs.json")

	ctx := withLogger(t.Context(), newLogger(&bytes.Buffer{}, log.InfoLevel))
	report, err := New(&bytes.Buffer{}, LogInfo).analyze(ctx, path, pipeline.InputOptions{}, pipeline.Options{})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if report.NodeCount != 6 || report.EdgeCount != 7 {
		t.Errorf("counts = %d nodes, %d edges, want 6, 7", report.NodeCount, report.EdgeCount)
	}
	if len(report.CommunitySizes) != 2 {
		t.Errorf("communities = %v, want 2", report.CommunitySizes)
	}
}

func TestCommunityTable(t *testing.T) {
	report := &pipeline.Report{
		NodeCount:       6,
		EdgeCount:       7,
		CommunitySizes:  map[int]int{1: 3, 0: 2, 4: 1},
		Representatives: map[int]string{0: "[3]", 1: "[4]", 4: "[6]"},
	}
	out := communityTable(report, render.DefaultPalette())

	for _, want := range []string{"Community", "Representative", "cyan", "red", "black", "[3]", "[4]", "[6]"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "[3]") > strings.Index(out, "[4]") {
		t.Error("rows should be ordered by community id")
	}
}

func TestWriteReportJSON(t *testing.T) {
	report := &pipeline.Report{
		NodeCount:       3,
		EdgeCount:       2,
		Modularity:      0.25,
		CommunitySizes:  map[int]int{0: 3},
		Representatives: map[int]string{0: "b"},
	}
	var buf bytes.Buffer
	if err := writeReportJSON(&buf, report); err != nil {
		t.Fatal(err)
	}

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got["nodes"] != 3.0 || got["edges"] != 2.0 {
		t.Errorf("got %v", got)
	}
	if sizes, ok := got["communities"].(map[string]any); !ok || sizes["0"] != 3.0 {
		t.Errorf("communities = %v", got["communities"])
	}
}

func TestStatsCommand(t *testing.T) {
	dir := isolate(t)
	path := writeFacts(t, dir, "refs.json")

	if err := runCLI(t, "stats", path, "--json"); err != nil {
		t.Fatalf("stats: %v", err)
	}
	if err := runCLI(t, "stats", path, "--match", "fuzzy"); err == nil {
		t.Error("expected error for unknown match rule")
	}
}

func TestWriteAdmittedFacts(t *testing.T) {
	dir := isolate(t)
	path := writeFacts(t, dir, "refs.json")
	c := New(&bytes.Buffer{}, LogInfo)

	var buf bytes.Buffer
	if err := c.writeAdmittedFacts(&buf, path, pipeline.InputOptions{Exclude: []string{"[3]"}}); err != nil {
		t.Fatalf("writeAdmittedFacts: %v", err)
	}
	f, err := graph.ReadFacts(&buf)
	if err != nil {
		t.Fatalf("ReadFacts: %v", err)
	}
	if len(f.Nodes) != 5 {
		t.Errorf("nodes = %d, want 5 after excluding [3]", len(f.Nodes))
	}
	for _, e := range f.Edges {
		if e.From == "c" || e.To == "c" {
			t.Errorf("edge %v kept with excluded endpoint", e)
		}
	}
	if len(f.Edges) != 4 {
		t.Errorf("edges = %d, want 4", len(f.Edges))
	}
}

func TestAnalyzeStdin(t *testing.T) {
	dir := isolate(t)
	data, err := os.ReadFile(writeFacts(t, dir, "refs.json"))
	if err != nil {
		t.Fatal(err)
	}
	c := New(&bytes.Buffer{}, LogInfo)
	c.stdin = bytes.NewReader(data)

	report, err := c.analyze(t.Context(), "-", pipeline.InputOptions{}, pipeline.Options{})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if report.NodeCount != 6 {
		t.Errorf("NodeCount = %d, want 6", report.NodeCount)
	}
}
