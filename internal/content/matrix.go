package content

// Matrix is a PDF 3x3 affine transform restricted to its six free
// components [[a b 0][c d 0][e f 1]], the shape PDF 1.7 §9.4.2 defines
// for the text and line matrices.
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity transform, the value BT resets both
// matrices to.
func Identity() Matrix { return Matrix{A: 1, D: 1} }

// Translation returns the transform that translates by (tx, ty).
func Translation(tx, ty float64) Matrix { return Matrix{A: 1, D: 1, E: tx, F: ty} }

// Mul computes m × n, the row-vector composition PDF matrices use:
// a point p is transformed by m then n via p×(m×n) == (p×m)×n.
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.B*n.C,
		B: m.A*n.B + m.B*n.D,
		C: m.C*n.A + m.D*n.C,
		D: m.C*n.B + m.D*n.D,
		E: m.E*n.A + m.F*n.C + n.E,
		F: m.E*n.B + m.F*n.D + n.F,
	}
}

// Apply transforms the point (x, y) by m.
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return x*m.A + y*m.C + m.E, x*m.B + y*m.D + m.F
}

// Point is a 2D coordinate in user space.
type Point struct {
	X, Y float64
}
