package projection

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Matrix is a 4x4 projection matrix. Row i is read with m.Row(i).
type Matrix = mgl64.Mat4

// Clamp01 limits t to [0, 1].
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// RowwiseLerp interpolates each row of a towards the same row of b by t,
// clamped to [0, 1]. The endpoints are returned exactly.
func RowwiseLerp(a, b Matrix, t float64) Matrix {
	t = Clamp01(t)
	if t == 0 {
		return a
	}
	if t == 1 {
		return b
	}
	var out Matrix
	for i := 0; i < 4; i++ {
		ra, rb := a.Row(i), b.Row(i)
		out.SetRow(i, ra.Add(rb.Sub(ra).Mul(t)))
	}
	return out
}

// Distance is the Frobenius norm of a-b.
func Distance(a, b Matrix) float64 {
	d := a.Sub(b)
	sum := 0.0
	for _, v := range d {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func ApproxEqual(a, b Matrix, eps float64) bool {
	return a.ApproxEqualThreshold(b, eps)
}

// Rows returns m in row-major order.
func Rows(m Matrix) [4][4]float64 {
	var r [4][4]float64
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			r[i][j] = m.At(i, j)
		}
	}
	return r
}

// FromRows builds a matrix from row-major values.
func FromRows(r [4][4]float64) Matrix {
	var m Matrix
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			m.Set(i, j, r[i][j])
		}
	}
	return m
}

func IsFinite(m Matrix) bool {
	for _, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
