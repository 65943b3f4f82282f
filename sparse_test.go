package gounwrap

import (
	"math"
	"testing"
)

const float64EqualityThreshold = 1e-6

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= float64EqualityThreshold
}

func TestSparseMatrixAccumulatesSymmetric(t *testing.T) {
	m := NewSparseMatrix(3)
	m.Add(0, 0, 2)
	m.Add(1, 0, 1)
	m.Add(0, 1, 1) // same slot as (1,0)
	m.Add(2, 2, 4)

	x := []float64{1, 2, 3}
	y := make([]float64, 3)
	m.Multiply(x, y)

	// A = [[2,2,0],[2,0,0],[0,0,4]]
	want := []float64{6, 2, 12}
	for i := range want {
		if !almostEqual(y[i], want[i]) {
			t.Errorf("y[%d] = %f, want %f", i, y[i], want[i])
		}
	}
}

func TestSparseMatrixDropsTinyValues(t *testing.T) {
	m := NewSparseMatrix(2)
	m.Add(0, 0, 1e-31)
	m.Add(1, 1, 1)

	x := []float64{1, 1}
	y := make([]float64, 2)
	m.Multiply(x, y)

	if y[0] != 0 {
		t.Errorf("y[0] = %v, tiny contribution should have been dropped", y[0])
	}
	if y[1] != 1 {
		t.Errorf("y[1] = %v, want 1", y[1])
	}
}

func TestConjugateGradientDiagonal(t *testing.T) {
	// A = diag(4, 9, 16), b = (4, 9, 16), so x = (1, 1, 1).
	m := NewSparseMatrix(3)
	m.Add(0, 0, 4)
	m.Add(1, 1, 9)
	m.Add(2, 2, 16)
	b := []float64{4, 9, 16}

	x := ConjugateGradient(m, b, 10, 1e-8)

	for i := range x {
		if math.Abs(x[i]-1) > 1e-7 {
			t.Errorf("x[%d] = %v, want 1 within 1e-7", i, x[i])
		}
	}
}

func TestConjugateGradient2x2(t *testing.T) {
	// A = [[4,1],[1,3]], b = (1,2): x = (1/11, 7/11).
	m := NewSparseMatrix(2)
	m.Add(0, 0, 4)
	m.Add(1, 0, 1)
	m.Add(1, 1, 3)
	b := []float64{1, 2}

	x := ConjugateGradient(m, b, 100, 1e-12)

	if !almostEqual(x[0], 1.0/11) || !almostEqual(x[1], 7.0/11) {
		t.Errorf("x = %v, want (1/11, 7/11)", x)
	}
}

func TestConjugateGradientZeroRHS(t *testing.T) {
	m := NewSparseMatrix(2)
	m.Add(0, 0, 1)
	m.Add(1, 1, 1)
	b := []float64{0, 0}

	x := ConjugateGradient(m, b, 100, 1e-10)

	if x[0] != 0 || x[1] != 0 {
		t.Errorf("x = %v, want zero vector", x)
	}
}

func TestConjugateGradientIterationCapReturnsIterate(t *testing.T) {
	m := NewSparseMatrix(2)
	m.Add(0, 0, 4)
	m.Add(1, 0, 1)
	m.Add(1, 1, 3)
	b := []float64{1, 2}

	// One iteration cannot meet the tolerance; the call must still hand back
	// the partial iterate rather than fail.
	x := ConjugateGradient(m, b, 1, 1e-14)
	if len(x) != 2 {
		t.Fatalf("len(x) = %d, want 2", len(x))
	}
	if x[0] == 0 && x[1] == 0 {
		t.Error("one CG iteration should have moved off the origin")
	}
}
