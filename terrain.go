package deck

import (
	"fmt"
	"math"
	"math/rand"
)

// HeightField triangulates a regular grid of heights into a terrain surface.
// The point of row i and column j lies at origin + (i·dx, j·dy, heights[i][j]),
// so rows advance along X and columns along Y. Faces point up.
func HeightField(origin Point, dx, dy float64, heights [][]float64) (*Mesh, error) {
	if !(dx > 0) || !(dy > 0) || math.IsInf(dx, 0) || math.IsInf(dy, 0) {
		return nil, fmt.Errorf("%w: grid step %g×%g", ErrInvalidParameter, dx, dy)
	}
	rows := len(heights)
	if rows < 2 {
		return nil, fmt.Errorf("%w: got %d grid rows, need 2", ErrInsufficientInput, rows)
	}
	cols := len(heights[0])
	if cols < 2 {
		return nil, fmt.Errorf("%w: got %d grid columns, need 2", ErrInsufficientInput, cols)
	}
	m := &Mesh{Vertices: make([]Point, 0, rows*cols)}
	for i, row := range heights {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: grid row %d has %d heights, row 0 has %d", ErrInvalidParameter, i, len(row), cols)
		}
		for j, h := range row {
			if math.IsNaN(h) || math.IsInf(h, 0) {
				return nil, fmt.Errorf("%w: grid height (%d, %d) is %g", ErrInvalidParameter, i, j, h)
			}
			m.Vertices = append(m.Vertices, origin.Translate(Vec(float64(i)*dx, float64(j)*dy, h)))
		}
	}
	m.Faces = make([][3]int, 0, 2*(rows-1)*(cols-1))
	for i := range rows - 1 {
		for j := range cols - 1 {
			a := i*cols + j
			b := a + cols
			m.Faces = append(m.Faces, [3]int{a, b, b + 1}, [3]int{a, b + 1, a + 1})
		}
	}
	return m, nil
}

// RandomHeights returns a rows×cols grid of heights drawn uniformly from
// [lo, hi) by rng.
func RandomHeights(rng *rand.Rand, rows, cols int, lo, hi float64) ([][]float64, error) {
	if rng == nil {
		return nil, fmt.Errorf("%w: random source", ErrInputMissing)
	}
	if rows < 0 || cols < 0 || !(hi >= lo) {
		return nil, fmt.Errorf("%w: %d×%d heights in [%g, %g)", ErrInvalidParameter, rows, cols, lo, hi)
	}
	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, cols)
		for j := range out[i] {
			out[i][j] = lo + rng.Float64()*(hi-lo)
		}
	}
	return out, nil
}
