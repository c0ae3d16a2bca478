package community

// Options configures the Louvain optimizer.
type Options struct {
	// Resolution weights the null-model term of the gain. Values above 1
	// favor smaller communities. Default 1.
	Resolution float64

	// MaxLevels bounds the number of aggregation levels. Default 32.
	MaxLevels int

	// MaxSweeps bounds the local moving sweeps per level. Default 100.
	MaxSweeps int

	// MinGain is the improvement a move must exceed over staying put.
	// Default 1e-12.
	MinGain float64
}

// Defaults for Options.
const (
	DefaultResolution = 1.0
	DefaultMaxLevels  = 32
	DefaultMaxSweeps  = 100
	DefaultMinGain    = 1e-12
)

func (o Options) withDefaults() Options {
	if o.Resolution <= 0 {
		o.Resolution = DefaultResolution
	}
	if o.MaxLevels <= 0 {
		o.MaxLevels = DefaultMaxLevels
	}
	if o.MaxSweeps <= 0 {
		o.MaxSweeps = DefaultMaxSweeps
	}
	if o.MinGain <= 0 {
		o.MinGain = DefaultMinGain
	}
	return o
}

// Community is a group of nodes sharing a community id.
type Community struct {
	ID      int
	Members []int // node indices, ascending

	// Representative is the node index with the highest centrality, or -1
	// until the centrality ranker has run.
	Representative int
}

// Size returns the number of members.
func (c Community) Size() int { return len(c.Members) }

// Result is the output of Detect.
type Result struct {
	Communities []Community // indexed by community id
	Membership  []int       // node index -> community id
	Modularity  float64
	Levels      int // aggregation levels that moved at least one node
}

// Sizes returns community id -> member count.
func (r *Result) Sizes() map[int]int {
	sizes := make(map[int]int, len(r.Communities))
	for _, c := range r.Communities {
		sizes[c.ID] = len(c.Members)
	}
	return sizes
}
