package config

import (
	"github.com/isplab/citegraph/pkg/pipeline"
)

// Apply fills the zero-valued fields of opts from c. Fields the caller has
// already set, typically from command-line flags, win over the file.
// Boolean switches can only be turned on by the file.
func (c *Config) Apply(opts *pipeline.Options) error {
	if opts.Resolution == 0 {
		opts.Resolution = c.Community.Resolution
	}
	opts.Normalized = opts.Normalized || c.Community.Normalized

	if opts.Scale == 0 {
		opts.Scale = c.Layout.Scale
	}
	if opts.MaxIterations == 0 {
		opts.MaxIterations = c.Layout.Iterations
	}
	if opts.Tolerance == 0 {
		opts.Tolerance = c.Layout.Tolerance
	}

	if len(opts.Formats) == 0 {
		opts.Formats = c.Render.Formats
	}
	if len(opts.Palette.Colors) == 0 && opts.Palette.Fallback == "" {
		p, err := c.PaletteValue()
		if err != nil {
			return err
		}
		opts.Palette = p
	}
	if opts.TikzScale == 0 {
		opts.TikzScale = c.Render.TikzScale
	}
	if opts.NodelinkScale == 0 {
		opts.NodelinkScale = c.Render.NodelinkScale
	}
	if opts.PNGScale == 0 {
		opts.PNGScale = c.Render.PNGScale
	}
	opts.Legend = opts.Legend || c.Render.Legend
	opts.Standalone = opts.Standalone || c.Render.Standalone
	opts.Detailed = opts.Detailed || c.Render.Detailed
	return nil
}

// ApplyInput fills the admission filter settings of in from c.
func (c *Config) ApplyInput(in *pipeline.InputOptions) {
	if in.Match == 0 {
		in.Match = c.MatchRule()
	}
	in.Exclude = append(in.Exclude, c.Filter.Exclude...)
	in.Sanitize = in.Sanitize || c.Filter.Sanitize
}
