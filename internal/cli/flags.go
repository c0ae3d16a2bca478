package cli

import (
	"github.com/spf13/pflag"

	"github.com/isplab/citegraph/pkg/config"
	"github.com/isplab/citegraph/pkg/errors"
	"github.com/isplab/citegraph/pkg/graph"
	"github.com/isplab/citegraph/pkg/pipeline"
)

// inputFlags are the admission filter flags shared by every command that
// reads facts files.
type inputFlags struct {
	titles   string
	match    string
	exclude  []string
	sanitize bool
}

func (f *inputFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.titles, "titles", "", "bibliography titles (one per line, or a JSON title→caption object)")
	fs.StringVar(&f.match, "match", "", "title matching: exact or normalized (default normalized)")
	fs.StringSliceVar(&f.exclude, "exclude", nil, "node ids or captions to leave out")
	fs.BoolVar(&f.sanitize, "sanitize", false, "rewrite node ids into markup-safe tokens")
}

// options builds the input options, merging the [filter] section of cfg.
// An explicit --match wins over the file.
func (f inputFlags) options(cfg *config.Config) (pipeline.InputOptions, error) {
	var rule graph.MatchRule
	if f.match != "" {
		var ok bool
		if rule, ok = graph.ParseMatchRule(f.match); !ok {
			return pipeline.InputOptions{}, errors.New(errors.ErrCodeInvalidOption, "--match must be exact or normalized, got %q", f.match)
		}
	}

	in := pipeline.InputOptions{
		Exclude:  f.exclude,
		Sanitize: f.sanitize,
	}
	if f.titles != "" {
		known, err := pipeline.ReadTitles(f.titles)
		if err != nil {
			return pipeline.InputOptions{}, err
		}
		in.Known = known
	}

	cfg.ApplyInput(&in)
	if f.match != "" {
		// ApplyInput cannot tell an explicit "exact" from unset.
		in.Match = rule
	}
	return in, nil
}

// rankFlags configure community detection and centrality ranking.
type rankFlags struct {
	resolution float64
	normalized bool
}

func (f *rankFlags) register(fs *pflag.FlagSet) {
	fs.Float64Var(&f.resolution, "resolution", 0, "modularity resolution (default 1)")
	fs.BoolVar(&f.normalized, "normalized", false, "normalize betweenness scores")
}

// options returns analysis options with the config file applied.
func (f rankFlags) options(cfg *config.Config) (pipeline.Options, error) {
	opts := pipeline.Options{
		Resolution: f.resolution,
		Normalized: f.normalized,
	}
	if err := cfg.Apply(&opts); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}
