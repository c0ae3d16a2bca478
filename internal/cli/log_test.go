package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/isplab/citegraph/pkg/pipeline"
)

func TestLogLevel(t *testing.T) {
	tests := []struct {
		name    string
		base    log.Level
		verbose bool
		quiet   bool
		want    log.Level
	}{
		{"default", log.InfoLevel, false, false, log.InfoLevel},
		{"verbose", log.InfoLevel, true, false, log.DebugLevel},
		{"quiet", log.InfoLevel, false, true, log.WarnLevel},
		{"verbose wins", log.InfoLevel, true, true, log.DebugLevel},
		{"keeps base", log.ErrorLevel, false, false, log.ErrorLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := logLevel(tt.base, tt.verbose, tt.quiet); got != tt.want {
				t.Errorf("logLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoggerFromContextDefault(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("loggerFromContext without a logger should return log.Default()")
	}
}

func TestFileLogger(t *testing.T) {
	var buf bytes.Buffer
	ctx := withLogger(context.Background(), newLogger(&buf, log.InfoLevel))

	fileLogger(ctx, "refs/a.json").Info("hello")
	if !strings.Contains(buf.String(), "hello file=refs/a.json") {
		t.Errorf("file logger output = %q", buf.String())
	}
}

func TestFileProgress(t *testing.T) {
	t.Run("Done", func(t *testing.T) {
		var buf bytes.Buffer
		prog := startFile(newLogger(&buf, log.InfoLevel).With("file", "a.json"))
		prog.done(&renderOutcome{
			files:  []string{"a.tex", "a.svg"},
			stats:  pipeline.Stats{NodeCount: 6, EdgeCount: 7, CommunityCount: 2},
			cached: true,
		})

		out := buf.String()
		if strings.Contains(out, "render started") {
			t.Error("start line should only show at debug level")
		}
		for _, want := range []string{"INFO rendered", "file=a.json", "nodes=6", "edges=7", "communities=2", "cached=true", "files=2", "elapsed="} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q: %q", want, out)
			}
		}
	})

	t.Run("FromLayout", func(t *testing.T) {
		var buf bytes.Buffer
		startFile(newLogger(&buf, log.InfoLevel)).done(&renderOutcome{fromLayout: true, files: []string{"a.dot"}})
		if !strings.Contains(buf.String(), "rendered from layout") || strings.Contains(buf.String(), "nodes=") {
			t.Errorf("layout render output = %q", buf.String())
		}
	})

	t.Run("FailedAtDebug", func(t *testing.T) {
		var buf bytes.Buffer
		prog := startFile(newLogger(&buf, log.DebugLevel))
		prog.failed(fmt.Errorf("boom"))

		out := buf.String()
		for _, want := range []string{"render started", "render failed", "err=boom"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q: %q", want, out)
			}
		}
	})
}

// renderLog runs the render command with the CLI logger writing to a buffer.
func renderLog(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf syncBuffer
	root := New(&buf, LogInfo).RootCommand()
	root.SetArgs(append([]string{"render"}, args...))
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	err := root.Execute()
	return buf.String(), err
}

func TestRenderLogsEachFile(t *testing.T) {
	dir := isolate(t)
	a := writeFacts(t, dir, "a.json")
	b := writeFacts(t, dir, "b.json")

	out, err := renderLog(t, a, b, "-o", filepath.Join(dir, "out"), "--no-cache")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, path := range []string{a, b} {
		line := ""
		for _, l := range strings.Split(out, "\n") {
			if strings.Contains(l, "INFO rendered") && strings.Contains(l, "file="+path) {
				line = l
			}
		}
		if line == "" {
			t.Errorf("no summary line for %s in:\n%s", path, out)
			continue
		}
		if !strings.Contains(line, "nodes=6") || !strings.Contains(line, "communities=2") || !strings.Contains(line, "cached=false") {
			t.Errorf("summary for %s = %q", path, line)
		}
	}
}

func TestRenderLogVerbosity(t *testing.T) {
	dir := isolate(t)
	input := writeFacts(t, dir, "refs.json")

	out, err := renderLog(t, input, "--no-cache", "-v")
	if err != nil {
		t.Fatalf("render -v: %v", err)
	}
	if !strings.Contains(out, "render started") {
		t.Errorf("-v should log the start of each file:\n%s", out)
	}

	out, err = renderLog(t, input, "--no-cache", "-q")
	if err != nil {
		t.Fatalf("render -q: %v", err)
	}
	if strings.Contains(out, "INFO") {
		t.Errorf("-q should drop info lines:\n%s", out)
	}
}
