package mathutil

import (
	"errors"
	"math"
	"testing"
)

const eps = 1e-9

func matFrom(rows, cols int, vals []float64) Matrix {
	m := NewMatrix(rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			m.Set(i, j, vals[i*cols+j])
		}
	}
	return m
}

func matNear(t *testing.T, got, want Matrix) {
	t.Helper()
	if got.Rows() != want.Rows() || got.Cols() != want.Cols() {
		t.Fatalf("size %dx%d, want %dx%d", got.Rows(), got.Cols(), want.Rows(), want.Cols())
	}
	for i := 0; i < got.Rows(); i++ {
		for j := 0; j < got.Cols(); j++ {
			if math.Abs(got.At(i, j)-want.At(i, j)) > eps {
				t.Fatalf("at (%d,%d): got %g, want %g\n%s", i, j, got.At(i, j), want.At(i, j), got)
			}
		}
	}
}

func TestIdentity(t *testing.T) {
	e := Identity(3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			if e.At(i, j) != want {
				t.Errorf("identity at (%d,%d) = %g", i, j, e.At(i, j))
			}
		}
	}
}

func TestTranspose(t *testing.T) {
	a := matFrom(2, 3, []float64{1, 2, 3, 4, 5, 6})
	matNear(t, a.Transpose(), matFrom(3, 2, []float64{1, 4, 2, 5, 3, 6}))
}

func TestMul(t *testing.T) {
	a := matFrom(2, 3, []float64{1, 2, 3, 4, 5, 6})
	b := matFrom(3, 2, []float64{7, 8, 9, 10, 11, 12})
	matNear(t, a.Mul(b), matFrom(2, 2, []float64{58, 64, 139, 154}))

	e := Identity(3)
	matNear(t, e.Mul(e), e)
}

func TestMulDimensionMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("want panic")
		}
	}()
	matFrom(2, 3, make([]float64, 6)).Mul(matFrom(2, 2, make([]float64, 4)))
}

func TestInverse(t *testing.T) {
	tests := []struct {
		name string
		n    int
		m    []float64
		want []float64
	}{
		{
			"2x2", 2,
			[]float64{4, 7, 2, 6},
			[]float64{0.6, -0.7, -0.2, 0.4},
		},
		{
			// leading pivot is zero, so elimination without row
			// exchange would divide by zero
			"permutation", 2,
			[]float64{0, 1, 1, 0},
			[]float64{0, 1, 1, 0},
		},
		{
			"3x3", 3,
			[]float64{2, 0, 1, 1, 1, 0, 0, 1, 1},
			[]float64{1.0 / 3, 1.0 / 3, -1.0 / 3, -1.0 / 3, 2.0 / 3, 1.0 / 3, 1.0 / 3, -2.0 / 3, 2.0 / 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := matFrom(tt.n, tt.n, tt.m)
			inv, err := a.Inverse()
			if err != nil {
				t.Fatal(err)
			}
			matNear(t, inv, matFrom(tt.n, tt.n, tt.want))
			matNear(t, a.Mul(inv), Identity(tt.n))
		})
	}
}

func TestInverseSingular(t *testing.T) {
	a := matFrom(2, 2, []float64{1, 2, 2, 4})
	if _, err := a.Inverse(); !errors.Is(err, ErrSingular) {
		t.Fatalf("got %v, want ErrSingular", err)
	}

	z := NewMatrix(3, 3)
	if _, err := z.Inverse(); !errors.Is(err, ErrSingular) {
		t.Fatalf("zero matrix: got %v, want ErrSingular", err)
	}
}

func TestInverseNonSquare(t *testing.T) {
	if _, err := NewMatrix(2, 3).Inverse(); err == nil {
		t.Fatal("want error for non-square matrix")
	}
}

func TestProjection(t *testing.T) {
	p := Projection(5)
	if got := p.At(3, 2); math.Abs(got-(-0.2)) > eps {
		t.Fatalf("projection coefficient %g, want -0.2", got)
	}
	inv, err := p.Inverse()
	if err != nil {
		t.Fatal(err)
	}
	matNear(t, p.Mul(inv), Identity(4))
}

func TestVec3(t *testing.T) {
	a := Vec3{1, 0, 0}
	b := Vec3{0, 1, 0}
	if got := a.Cross(b); got != (Vec3{0, 0, 1}) {
		t.Errorf("cross = %v", got)
	}
	if got := a.Dot(b); got != 0 {
		t.Errorf("dot = %g", got)
	}
	if got := (Vec3{3, 4, 0}).Len(); got != 5 {
		t.Errorf("len = %g", got)
	}
	n := (Vec3{0, 0, 7}).Normalize()
	if n != (Vec3{0, 0, 1}) {
		t.Errorf("normalize = %v", n)
	}
	if z := (Vec3{}).Normalize(); z != (Vec3{}) {
		t.Errorf("normalize zero = %v", z)
	}
}

func TestVec2Lerp(t *testing.T) {
	a := Vec2{0, 10}
	b := Vec2{10, 0}
	if got := a.Lerp(b, 0.5); got != (Vec2{5, 5}) {
		t.Errorf("lerp = %v", got)
	}
	if got := a.Lerp(b, 0); got != a {
		t.Errorf("lerp 0 = %v", got)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("lerp 1 = %v", got)
	}
}
