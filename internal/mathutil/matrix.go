package mathutil

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Matrix is a dense row-major matrix. It is a general-purpose linear
// algebra utility and not part of the rasterizer's hot path.
type Matrix struct {
	rows, cols int
	m          []float64
}

// NewMatrix allocates a zeroed rows x cols matrix.
func NewMatrix(rows, cols int) Matrix {
	return Matrix{rows: rows, cols: cols, m: make([]float64, rows*cols)}
}

// Identity returns the n x n identity matrix.
func Identity(n int) Matrix {
	e := NewMatrix(n, n)
	for i := 0; i < n; i++ {
		e.m[i*n+i] = 1
	}
	return e
}

// Projection returns the 4x4 perspective matrix for a camera at
// distance z on the z-axis.
func Projection(z float64) Matrix {
	p := Identity(4)
	p.Set(3, 2, -1/z)
	return p
}

func (a Matrix) Rows() int { return a.rows }
func (a Matrix) Cols() int { return a.cols }

func (a Matrix) At(i, j int) float64 { return a.m[i*a.cols+j] }

func (a Matrix) Set(i, j int, v float64) { a.m[i*a.cols+j] = v }

// Transpose returns a new transposed matrix.
func (a Matrix) Transpose() Matrix {
	t := NewMatrix(a.cols, a.rows)
	for i := 0; i < a.rows; i++ {
		for j := 0; j < a.cols; j++ {
			t.m[j*t.cols+i] = a.m[i*a.cols+j]
		}
	}
	return t
}

// Mul returns the matrix product a*b. Panics when the inner dimensions
// disagree, which is a programming error rather than a data error.
func (a Matrix) Mul(b Matrix) Matrix {
	if a.cols != b.rows {
		panic(fmt.Sprintf("mathutil: mul %dx%d by %dx%d", a.rows, a.cols, b.rows, b.cols))
	}
	res := NewMatrix(a.rows, b.cols)
	for i := 0; i < a.rows; i++ {
		for k := 0; k < b.cols; k++ {
			var sum float64
			for j := 0; j < a.cols; j++ {
				sum += a.m[i*a.cols+j] * b.m[j*b.cols+k]
			}
			res.m[i*res.cols+k] = sum
		}
	}
	return res
}

// ErrSingular reports a matrix with no inverse.
var ErrSingular = errors.New("mathutil: singular matrix")

// Inverse inverts a square matrix via LU decomposition with partial
// pivoting, so a zero leading pivot (e.g. a permutation matrix) is
// handled instead of dividing by zero. Returns ErrSingular when no
// nonzero pivot exists.
func (a Matrix) Inverse() (Matrix, error) {
	if a.rows != a.cols {
		return Matrix{}, fmt.Errorf("mathutil: inverse of non-square %dx%d matrix", a.rows, a.cols)
	}
	n := a.rows
	lu := make([]float64, len(a.m))
	copy(lu, a.m)
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	for col := 0; col < n; col++ {
		p := col
		for i := col + 1; i < n; i++ {
			if math.Abs(lu[i*n+col]) > math.Abs(lu[p*n+col]) {
				p = i
			}
		}
		if lu[p*n+col] == 0 {
			return Matrix{}, ErrSingular
		}
		if p != col {
			for j := 0; j < n; j++ {
				lu[p*n+j], lu[col*n+j] = lu[col*n+j], lu[p*n+j]
			}
			perm[p], perm[col] = perm[col], perm[p]
		}
		piv := lu[col*n+col]
		for i := col + 1; i < n; i++ {
			f := lu[i*n+col] / piv
			lu[i*n+col] = f
			for j := col + 1; j < n; j++ {
				lu[i*n+j] -= f * lu[col*n+j]
			}
		}
	}

	inv := NewMatrix(n, n)
	y := make([]float64, n)
	for c := 0; c < n; c++ {
		// forward-substitute L*y = P*e_c
		for i := 0; i < n; i++ {
			v := 0.0
			if perm[i] == c {
				v = 1
			}
			for k := 0; k < i; k++ {
				v -= lu[i*n+k] * y[k]
			}
			y[i] = v
		}
		// back-substitute U*x = y
		for i := n - 1; i >= 0; i-- {
			v := y[i]
			for k := i + 1; k < n; k++ {
				v -= lu[i*n+k] * inv.m[k*n+c]
			}
			inv.m[i*n+c] = v / lu[i*n+i]
		}
	}
	return inv, nil
}

// String formats the matrix row by row for debugging.
func (a Matrix) String() string {
	var sb strings.Builder
	for i := 0; i < a.rows; i++ {
		for j := 0; j < a.cols; j++ {
			if j > 0 {
				sb.WriteByte('\t')
			}
			fmt.Fprintf(&sb, "%.2f", a.m[i*a.cols+j])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
