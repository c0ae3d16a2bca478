package layout

import (
	"math"

	"github.com/isplab/citegraph/pkg/graph"
)

// Circular places n nodes evenly on a circle of the given radius around the
// origin. Node i sits at angle 2πi/n.
func Circular(n int, radius float64) []graph.Position {
	pos := make([]graph.Position, n)
	if n == 0 {
		return pos
	}
	step := 2 * math.Pi / float64(n)
	for i := range pos {
		angle := float64(i) * step
		pos[i] = graph.Position{
			X: radius * math.Cos(angle),
			Y: radius * math.Sin(angle),
		}
	}
	return pos
}

// Rescale centers pos on its mean and scales it so the largest absolute
// coordinate equals scale. Degenerate inputs (a single point, or all points
// coincident) end up at the origin.
func Rescale(pos []graph.Position, scale float64) {
	if len(pos) == 0 {
		return
	}
	var cx, cy float64
	for _, p := range pos {
		cx += p.X
		cy += p.Y
	}
	cx /= float64(len(pos))
	cy /= float64(len(pos))

	var lim float64
	for i := range pos {
		pos[i].X -= cx
		pos[i].Y -= cy
		lim = math.Max(lim, math.Max(math.Abs(pos[i].X), math.Abs(pos[i].Y)))
	}
	if lim == 0 {
		for i := range pos {
			pos[i] = graph.Position{}
		}
		return
	}
	for i := range pos {
		pos[i].X *= scale / lim
		pos[i].Y *= scale / lim
	}
}
