package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates the CLI logger. Timestamps are wall-clock with
// hundredths of a second (e.g. "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// logLevel resolves the --verbose and --quiet flags against the level the
// CLI was created with. --verbose wins when both are given.
func logLevel(base log.Level, verbose, quiet bool) log.Level {
	switch {
	case verbose:
		return log.DebugLevel
	case quiet:
		return log.WarnLevel
	}
	return base
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger installed by the root command, or
// log.Default() outside a command run.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// fileLogger scopes the context logger to one input so that lines from
// concurrent renders can be told apart.
func fileLogger(ctx context.Context, path string) *log.Logger {
	return loggerFromContext(ctx).With("file", path)
}

// fileProgress logs the lifecycle of one input: a debug line when it starts
// and a summary line with counts and elapsed time when it finishes.
type fileProgress struct {
	logger *log.Logger
	start  time.Time
}

func startFile(logger *log.Logger) *fileProgress {
	logger.Debug("render started")
	return &fileProgress{logger: logger, start: time.Now()}
}

func (p *fileProgress) elapsed() time.Duration {
	return time.Since(p.start).Round(time.Millisecond)
}

// done logs the outcome of a finished input.
func (p *fileProgress) done(out *renderOutcome) {
	if out.fromLayout {
		p.logger.Info("rendered from layout", "files", len(out.files), "elapsed", p.elapsed())
		return
	}
	p.logger.Info("rendered",
		"nodes", out.stats.NodeCount,
		"edges", out.stats.EdgeCount,
		"communities", out.stats.CommunityCount,
		"cached", out.cached,
		"files", len(out.files),
		"elapsed", p.elapsed())
}

// failed logs why an input did not render. The error itself is returned to
// the user, so this only adds timing at debug level.
func (p *fileProgress) failed(err error) {
	p.logger.Debug("render failed", "err", err, "elapsed", p.elapsed())
}
