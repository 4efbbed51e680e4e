package render

// Matrix is a 2D affine transform in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// giving x' = a*x + b*y + c, y' = d*x + e*y + f. Cameras compose a
// Scale and a Translate into the view-projection handed to every
// backend each frame.
type Matrix struct {
	A, B, C float32
	D, E, F float32
}

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{A: 1, E: 1}
}

// Translate returns a pure translation.
func Translate(x, y float32) Matrix {
	return Matrix{A: 1, E: 1, C: x, F: y}
}

// Scale returns a pure scale about the origin.
func Scale(s float32) Matrix {
	return Matrix{A: s, E: s}
}

// Multiply returns m composed with other, applying other first (m * other).
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// TransformPoint maps a world-space point through m.
func (m Matrix) TransformPoint(x, y float32) (float32, float32) {
	return m.A*x + m.B*y + m.C, m.D*x + m.E*y + m.F
}
