package gounwrap

import "math"

// Contributions smaller than this are dropped instead of stored.
const sparseDropThreshold = 1e-30

type sparseEntry struct {
	row, col int
	value    float64
}

// SparseMatrix is a symmetric matrix that stores only the lower triangle
// (row >= col). Entries accumulate additively. Storage is insertion-ordered
// so that repeated solves sum floating-point terms in the same order.
type SparseMatrix struct {
	size    int
	entries []sparseEntry
	index   map[uint64]int
}

func NewSparseMatrix(size int) *SparseMatrix {
	return &SparseMatrix{
		size:  size,
		index: make(map[uint64]int),
	}
}

func (s *SparseMatrix) Size() int {
	return s.size
}

// Add accumulates value at (i,j). The pair is normalized into the lower
// triangle, so Add(i,j,v) and Add(j,i,v) hit the same slot.
func (s *SparseMatrix) Add(i, j int, value float64) {
	if math.Abs(value) < sparseDropThreshold {
		return
	}
	if i < j {
		i, j = j, i
	}
	key := uint64(i)<<32 | uint64(uint32(j))
	if at, ok := s.index[key]; ok {
		s.entries[at].value += value
		return
	}
	s.index[key] = len(s.entries)
	s.entries = append(s.entries, sparseEntry{row: i, col: j, value: value})
}

// Multiply computes y = A*x, mirroring every off-diagonal entry so the full
// symmetric product is formed from the stored lower triangle.
func (s *SparseMatrix) Multiply(x, y []float64) {
	for i := range y {
		y[i] = 0
	}
	for _, e := range s.entries {
		y[e.row] += e.value * x[e.col]
		if e.row != e.col {
			y[e.col] += e.value * x[e.row]
		}
	}
}

// ConjugateGradient solves A*x = b for a symmetric positive (semi)definite A
// by unpreconditioned conjugate gradients, starting from x = 0. It stops
// early when the search direction's curvature collapses or the residual norm
// drops below tol relative to ||b||. Hitting maxIters is not an error: the
// last iterate is returned as-is, so a caller that needs the tolerance met
// must verify the residual itself.
func ConjugateGradient(a *SparseMatrix, b []float64, maxIters int, tol float64) []float64 {
	n := len(b)
	x := make([]float64, n)
	r := make([]float64, n)
	p := make([]float64, n)
	ap := make([]float64, n)

	copy(r, b)
	copy(p, b)

	bNorm := 0.0
	for _, v := range b {
		bNorm += v * v
	}
	bNorm = math.Sqrt(bNorm)
	threshold := tol * math.Max(bNorm, 1e-10)

	rsOld := 0.0
	for _, v := range r {
		rsOld += v * v
	}

	for iter := 0; iter < maxIters; iter++ {
		if math.Sqrt(rsOld) < threshold {
			break
		}

		a.Multiply(p, ap)

		pap := 0.0
		for i := 0; i < n; i++ {
			pap += p[i] * ap[i]
		}
		if math.Abs(pap) < sparseDropThreshold {
			break
		}

		alpha := rsOld / pap
		for i := 0; i < n; i++ {
			x[i] += alpha * p[i]
			r[i] -= alpha * ap[i]
		}

		rsNew := 0.0
		for _, v := range r {
			rsNew += v * v
		}

		beta := rsNew / rsOld
		for i := 0; i < n; i++ {
			p[i] = r[i] + beta*p[i]
		}
		rsOld = rsNew
	}

	return x
}
