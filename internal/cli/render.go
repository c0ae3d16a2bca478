package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/isplab/citegraph/pkg/errors"
	"github.com/isplab/citegraph/pkg/graph"
	"github.com/isplab/citegraph/pkg/pipeline"
	"github.com/isplab/citegraph/pkg/render"
)

// renderFlags holds flag values for the render command.
type renderFlags struct {
	output  string
	formats string

	input inputFlags
	rank  rankFlags

	// palette
	palette  string
	colors   []string
	fallback string
	wrap     bool

	// layout
	scale      float64
	iterations int
	tolerance  float64

	// render
	tikzScale     float64
	legend        bool
	standalone    bool
	nodelinkScale float64
	detailed      bool
	pngScale      float64

	noCache    bool
	refresh    bool
	jobs       int
	fromLayout bool
}

// renderCommand creates the render command for generating diagrams from facts files.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render [facts.json...]",
		Short: "Render citation diagrams from facts files",
		Long: `Render groups the papers of each facts file into communities, marks the most
central paper of every community and writes the diagram.

Facts files are JSON objects with "nodes" ({"id", "label"}) and "edges"
({"from", "to"}). Several files are rendered concurrently. The input "-"
reads facts from standard input and needs -o.

Output formats: tikz (default), dot, svg, pdf, png, json (annotated layout).
With --from-layout the inputs are annotated layouts written by -f json and
only the render stage runs.`,
		Example: `  # TikZ picture next to the input
  citegraph render refs.json

  # Keep only papers from the bibliography, with a legend
  citegraph render refs.json --titles bibliography.txt --legend

  # Several formats into a directory
  citegraph render a.json b.json -f tikz,svg -o out/

  # Facts from another tool
  cat refs.json | citegraph render - -o figures/refs`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args, flags)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.output, "output", "o", "", "output base path, or directory for several inputs")
	f.StringVarP(&flags.formats, "format", "f", "", "output formats: "+strings.Join(pipeline.FormatNames(), ","))

	flags.input.register(f)
	flags.rank.register(f)

	f.StringVar(&flags.palette, "palette", "", "built-in palette: default or extended")
	f.StringSliceVar(&flags.colors, "colors", nil, "community colors in order")
	f.StringVar(&flags.fallback, "fallback", "", "color for communities past the palette")
	f.BoolVar(&flags.wrap, "wrap", false, "reuse palette colors cyclically")

	f.Float64Var(&flags.scale, "scale", 0, "layout scale")
	f.IntVar(&flags.iterations, "iterations", 0, "maximum layout iterations")
	f.Float64Var(&flags.tolerance, "tolerance", 0, "layout convergence tolerance")

	f.Float64Var(&flags.tikzScale, "tikz-scale", 0, "TikZ picture scale")
	f.BoolVar(&flags.legend, "legend", false, "add a community legend to TikZ output")
	f.BoolVar(&flags.standalone, "standalone", false, "wrap TikZ output in a standalone document")
	f.Float64Var(&flags.nodelinkScale, "nodelink-scale", 0, "node-link diagram scale")
	f.BoolVar(&flags.detailed, "detailed", false, "show centrality in node-link labels")
	f.Float64Var(&flags.pngScale, "png-scale", 0, "PNG rasterization factor")

	f.BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	f.BoolVar(&flags.refresh, "refresh", false, "recompute instead of reading the cache")
	f.IntVarP(&flags.jobs, "jobs", "j", runtime.NumCPU(), "files rendered concurrently")
	f.BoolVar(&flags.fromLayout, "from-layout", false, "inputs are annotated layouts (-f json output)")

	return cmd
}

// renderOutcome is what one input produced, printed after all inputs finish.
type renderOutcome struct {
	input      string
	fromLayout bool
	artifacts  map[string][]byte
	files      []string
	warnings   []error
	stats      pipeline.Stats
	cached     bool
}

// runRender renders every input concurrently and reports the written files.
func (c *CLI) runRender(ctx context.Context, inputs []string, flags renderFlags) error {
	opts, err := flags.pipelineOptions()
	if err != nil {
		return err
	}
	cfg := c.cfg()
	if err := cfg.Apply(&opts); err != nil {
		return err
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	input, err := flags.input.options(cfg)
	if err != nil {
		return err
	}

	bases, err := outputBases(inputs, flags.output)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	outcomes := make([]renderOutcome, len(inputs))
	multi := len(inputs) > 1

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", plural(len(inputs), "file")))
	spinner.Start()

	var finished atomic.Int32
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(max(flags.jobs, 1))
	for i, path := range inputs {
		eg.Go(func() error {
			out, err := c.renderFile(egCtx, runner, path, bases[i], opts, input, flags.fromLayout)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			outcomes[i] = *out
			if multi {
				spinner.SetMessage(fmt.Sprintf("Rendering %d/%d files...", finished.Add(1), len(inputs)))
			}
			return nil
		})
	}
	err = eg.Wait()
	spinner.Stop()
	if err != nil {
		if spinner.Cancelled() {
			return context.Canceled
		}
		return err
	}

	for _, out := range outcomes {
		printSuccess("Rendered %s", out.input)
		if !flags.fromLayout {
			printStats(out.stats.NodeCount, out.stats.EdgeCount, out.stats.CommunityCount, out.cached)
		}
		for _, w := range out.warnings {
			printWarning("%s", errors.UserMessage(w))
		}
		for _, file := range out.files {
			printFile(file)
		}
	}

	if tex := texOutput(outcomes); tex != "" {
		printNewline()
		printNextStep("Include in LaTeX", fmt.Sprintf(`\input{%s}`, strings.TrimSuffix(tex, ".tex")))
	}
	return nil
}

// renderFile runs the pipeline on one input and writes its artifacts next to base.
func (c *CLI) renderFile(ctx context.Context, runner *pipeline.Runner, path, base string, opts pipeline.Options, input pipeline.InputOptions, fromLayout bool) (*renderOutcome, error) {
	logger := fileLogger(ctx, path)
	opts.Logger = logger
	prog := startFile(logger)

	out, err := c.renderInput(ctx, runner, path, opts, input, fromLayout)
	if err == nil {
		out.files, err = writeArtifacts(base, opts.Formats, out.artifacts)
	}
	if err != nil {
		prog.failed(err)
		return nil, err
	}
	out.artifacts = nil
	prog.done(out)
	return out, nil
}

// renderInput produces the artifacts of one input, reading standard input
// when path is "-".
func (c *CLI) renderInput(ctx context.Context, runner *pipeline.Runner, path string, opts pipeline.Options, input pipeline.InputOptions, fromLayout bool) (*renderOutcome, error) {
	out := &renderOutcome{input: path, fromLayout: fromLayout}

	if fromLayout {
		l, err := c.readLayout(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read layout")
		}
		if out.artifacts, err = pipeline.RenderFromLayout(ctx, l, opts); err != nil {
			return nil, err
		}
		return out, nil
	}

	g, err := c.parseInput(path, input)
	if err != nil {
		return nil, err
	}
	result, err := runner.Execute(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	out.artifacts = result.Artifacts
	out.warnings = result.Warnings
	out.stats = result.Stats
	out.cached = result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit
	return out, nil
}

// parseInput builds the admitted graph of a facts file, or of standard
// input when path is "-".
func (c *CLI) parseInput(path string, input pipeline.InputOptions) (*graph.Graph, error) {
	if path == stdinInput {
		return pipeline.ParseReader(c.stdin, input)
	}
	return pipeline.ParseFile(path, input)
}

func (c *CLI) readLayout(path string) (graph.Layout, error) {
	if path != stdinInput {
		return graph.ReadLayoutFile(path)
	}
	data, err := io.ReadAll(c.stdin)
	if err != nil {
		return graph.Layout{}, fmt.Errorf("read stdin: %w", err)
	}
	return graph.UnmarshalLayout(data)
}

// pipelineOptions converts flag values into pipeline options.
// Unset flags stay zero so the config file and defaults can fill them.
func (f renderFlags) pipelineOptions() (pipeline.Options, error) {
	formats := parseFormats(f.formats)
	if err := pipeline.ValidateFormats(formats); err != nil {
		return pipeline.Options{}, err
	}

	opts := pipeline.Options{
		Resolution:    f.rank.resolution,
		Normalized:    f.rank.normalized,
		Scale:         f.scale,
		MaxIterations: f.iterations,
		Tolerance:     f.tolerance,
		Formats:       formats,
		TikzScale:     f.tikzScale,
		Legend:        f.legend,
		Standalone:    f.standalone,
		NodelinkScale: f.nodelinkScale,
		Detailed:      f.detailed,
		PNGScale:      f.pngScale,
		Refresh:       f.refresh,
	}

	palette, set, err := f.paletteValue()
	if err != nil {
		return pipeline.Options{}, err
	}
	if set {
		opts.Palette = palette
	}
	return opts, nil
}

// paletteValue builds a palette from the palette flags. set is false when
// no palette flag was given.
func (f renderFlags) paletteValue() (p render.Palette, set bool, err error) {
	if f.palette == "" && len(f.colors) == 0 && f.fallback == "" && !f.wrap {
		return render.Palette{}, false, nil
	}
	p, ok := render.NamedPalette(f.palette)
	if !ok {
		return render.Palette{}, false, errors.New(errors.ErrCodeInvalidPalette, "unknown palette %q", f.palette)
	}
	if len(f.colors) > 0 {
		p.Colors = f.colors
	}
	if f.fallback != "" {
		p.Fallback = f.fallback
	}
	p.Wrap = p.Wrap || f.wrap
	if err := p.Validate(); err != nil {
		return render.Palette{}, false, err
	}
	return p, true, nil
}

// =============================================================================
// Output Files
// =============================================================================

// stdinInput is the input name that reads facts from standard input.
const stdinInput = "-"

// basePath returns the output path of input without extension.
//
// Without -o the output sits next to the input. With several inputs -o is a
// directory; with one it is the base path itself, and a known output
// extension on it is dropped. Standard input is named "stdin".
func basePath(input, output string, multi bool) string {
	stem := "stdin"
	if input != stdinInput {
		stem = strings.TrimSuffix(input, filepath.Ext(input))
		stem = strings.TrimSuffix(stem, ".layout")
	}
	switch {
	case output == "":
		return stem
	case multi:
		return filepath.Join(output, filepath.Base(stem))
	}
	for _, ext := range pipeline.Extensions {
		if strings.HasSuffix(output, ext) {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}

// outputBases resolves the base path of every input. Two inputs that would
// write the same files are rejected, as is standard input without -o.
func outputBases(inputs []string, output string) ([]string, error) {
	multi := len(inputs) > 1
	bases := make([]string, len(inputs))
	owner := make(map[string]string, len(inputs))
	for i, in := range inputs {
		if in == stdinInput && output == "" {
			return nil, errors.New(errors.ErrCodeInvalidOption, "reading facts from stdin requires -o")
		}
		base := basePath(in, output, multi)
		key := filepath.Clean(base)
		if prev, ok := owner[key]; ok {
			return nil, errors.New(errors.ErrCodeInvalidOption, "%s and %s would both write %s.*; render them separately", prev, in, base)
		}
		owner[key] = in
		bases[i] = base
	}
	return bases, nil
}

// writeArtifacts writes one file per format and returns the paths in format order.
func writeArtifacts(base string, formats []string, artifacts map[string][]byte) ([]string, error) {
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}
	var paths []string
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := base + pipeline.Extensions[format]
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// texOutput returns the first TikZ file written, if any.
func texOutput(outcomes []renderOutcome) string {
	for _, out := range outcomes {
		for _, f := range out.files {
			if strings.HasSuffix(f, pipeline.Extensions[pipeline.FormatTikZ]) {
				return f
			}
		}
	}
	return ""
}

// plural formats a count with its noun, e.g. "3 communities".
func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	if strings.HasSuffix(noun, "y") {
		return fmt.Sprintf("%d %sies", n, strings.TrimSuffix(noun, "y"))
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
