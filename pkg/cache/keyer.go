package cache

// Keyer derives cache keys from content hashes and options.
type Keyer interface {
	// LayoutKey identifies the annotated layout of a graph.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string

	// ArtifactKey identifies one rendered output of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts lists every option that changes the annotated layout.
type LayoutKeyOpts struct {
	Resolution    float64 `json:"resolution"`
	Normalized    bool    `json:"normalized"`
	Scale         float64 `json:"scale"`
	MaxIterations int     `json:"max_iterations"`
	Tolerance     float64 `json:"tolerance"`
}

// ArtifactKeyOpts lists every option that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format        string  `json:"format"`
	Palette       string  `json:"palette"`
	TikzScale     float64 `json:"tikz_scale,omitempty"`
	Legend        bool    `json:"legend,omitempty"`
	Standalone    bool    `json:"standalone,omitempty"`
	NodelinkScale float64 `json:"nodelink_scale,omitempty"`
	Detailed      bool    `json:"detailed,omitempty"`
	PNGScale      float64 `json:"png_scale,omitempty"`
}

// DefaultKeyer hashes options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
