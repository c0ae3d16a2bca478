package layout

import (
	"math"

	"github.com/isplab/citegraph/pkg/errors"
	"github.com/isplab/citegraph/pkg/graph"
)

// Defaults for Options.
const (
	DefaultScale         = 20.0
	DefaultMaxIterations = 500
	DefaultTolerance     = 1e-6
)

// Options configures KamadaKawai.
type Options struct {
	Scale         float64 // largest absolute output coordinate; default 20
	MaxIterations int     // sweep limit; default 500
	Tolerance     float64 // relative stress change that ends the run; default 1e-6

	// Fallback is the target distance between nodes of different
	// components. Zero selects twice the longest finite distance (at least 2).
	Fallback float64
}

func (o Options) withDefaults() Options {
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.Tolerance <= 0 {
		o.Tolerance = DefaultTolerance
	}
	return o
}

// Result is the output of KamadaKawai.
type Result struct {
	Positions  []graph.Position // indexed by node index, after rescaling
	Stress     float64          // final stress, before rescaling
	Iterations int

	// Warnings holds non-fatal conditions such as
	// *errors.DisconnectedGraphWarning.
	Warnings []error
}

// KamadaKawai lays out g and writes every node's position into its Pos
// annotation. It fails with *errors.EmptyGraphError when g has no nodes.
func KamadaKawai(g *graph.Graph, opts Options) (*Result, error) {
	n := g.NodeCount()
	if n == 0 {
		return nil, &errors.EmptyGraphError{Stage: "layout"}
	}
	opts = opts.withDefaults()

	res := &Result{}
	if comps := len(g.Components()); comps > 1 {
		res.Warnings = append(res.Warnings, &errors.DisconnectedGraphWarning{Components: comps})
	}

	hops := Distances(g)
	far := longest(hops)
	fallback := opts.Fallback
	if fallback <= 0 {
		fallback = math.Max(2*float64(far), 2)
	}
	target := make([][]float64, n)
	for i, row := range hops {
		target[i] = make([]float64, n)
		for j, d := range row {
			if d == Unreachable {
				target[i][j] = fallback
			} else {
				target[i][j] = float64(d)
			}
		}
	}

	pos := Circular(n, math.Max(float64(far)/2, 1))
	if n > 1 {
		s := newSolver(pos, target)
		prev := s.stress()
		for res.Iterations < opts.MaxIterations {
			s.sweep()
			res.Iterations++
			cur := s.stress()
			if prev == 0 || math.Abs(prev-cur)/prev < opts.Tolerance {
				prev = cur
				break
			}
			prev = cur
		}
		res.Stress = prev
	}

	Rescale(pos, opts.Scale)
	for i, p := range pos {
		g.Node(i).Pos = p
	}
	res.Positions = pos
	return res, nil
}

// solver runs localized stress majorization over pos in place.
type solver struct {
	pos    []graph.Position
	target [][]float64
	weight [][]float64
}

func newSolver(pos []graph.Position, target [][]float64) *solver {
	n := len(pos)
	w := make([][]float64, n)
	for i := range w {
		w[i] = make([]float64, n)
		for j := range w[i] {
			if i != j {
				d := target[i][j]
				w[i][j] = 1 / (d * d)
			}
		}
	}
	return &solver{pos: pos, target: target, weight: w}
}

// sweep moves every node, in index order, to the minimizer of its local
// stress given the current positions of the others.
func (s *solver) sweep() {
	for i := range s.pos {
		var nx, ny, wsum float64
		pi := s.pos[i]
		for j, pj := range s.pos {
			if i == j {
				continue
			}
			w := s.weight[i][j]
			dx, dy := pi.X-pj.X, pi.Y-pj.Y
			norm := math.Hypot(dx, dy)
			tx, ty := pj.X, pj.Y
			if norm > 0 {
				tx += s.target[i][j] * dx / norm
				ty += s.target[i][j] * dy / norm
			}
			nx += w * tx
			ny += w * ty
			wsum += w
		}
		s.pos[i] = graph.Position{X: nx / wsum, Y: ny / wsum}
	}
}

func (s *solver) stress() float64 {
	var total float64
	for i := range s.pos {
		for j := i + 1; j < len(s.pos); j++ {
			d := math.Hypot(s.pos[i].X-s.pos[j].X, s.pos[i].Y-s.pos[j].Y)
			diff := d - s.target[i][j]
			total += s.weight[i][j] * diff * diff
		}
	}
	return total
}
