/*
 Copyright (C) 2024 Douglas Wayne Potter

 This program is free software: you can redistribute it and/or modify
 it under the terms of the GNU Affero General Public License as
 published by the Free Software Foundation, either version 3 of the
 License, or (at your option) any later version.

 This program is distributed in the hope that it will be useful,
 but WITHOUT ANY WARRANTY; without even the implied warranty of
 MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 GNU Affero General Public License for more details.

 You should have received a copy of the GNU Affero General Public License
 along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

// internal/activeset maintains the incremental QR-style factorization the
// dual active-set driver uses to add and drop constraints without
// recomputing from scratch: J (n-by-n, the accumulated inverse-transpose
// of the active-set transformation) and R (upper triangular, order niact).
package activeset

import (
	"errors"
	"math"

	"github.com/cygnyx/quadprog-c-json/internal/linalg"
)

// ErrLinearlyDependent signals that a candidate constraint column is
// linearly dependent on the current active set. The driver catches it and
// retries by dropping an active inequality; when there is none to drop, or
// when an equality constraint is the dependent one, solve.Solve returns an
// error wrapping it.
var ErrLinearlyDependent = errors.New("activeset: candidate constraint is linearly dependent on the active set")

// Factorization holds J, R and the bookkeeping (iact, niact) of §3/§4.C.
//
// R is kept as a dense capacity-by-capacity matrix with only its upper
// triangle (rows/cols < NIact) meaningful. spec.md describes R as packed
// triangular storage; this rewrite trades that byte-for-byte packing for
// a typed dense accessor so the row-oriented Givens sweep in Drop can
// address a "row" of R directly instead of walking scattered packed
// offsets — the invariant (upper triangular, order NIact, non-singular)
// is unchanged, only the layout is.
type Factorization struct {
	n        int
	capacity int // min(n, m)
	J        *linalg.Matrix
	r        *linalg.Matrix // capacity x capacity, upper triangle used
	Iact     []int
	NIact    int
}

// New builds the initial factorization for an order-n problem with up to
// capacity active constraints, given the Cholesky factor l (upper
// triangular, reciprocal diagonal, per internal/linalg.Factorize).
func New(n, capacity int, l *linalg.Matrix) *Factorization {
	f := &Factorization{
		n:        n,
		capacity: capacity,
		J:        linalg.NewMatrix(n),
		r:        linalg.NewMatrix(capacity),
		Iact:     make([]int, capacity),
	}

	e := make([]float64, n)
	for k := 0; k < n; k++ {
		e[k] = 1
		linalg.SolveUpper(l, e, f.J.Col(k))
		e[k] = 0
	}

	return f
}

// Add incorporates the constraint column index origIndex, whose
// L-transformed direction is d = J^T nHat, into the factorization. d is
// scratch: it is overwritten. nHatNorm is ||nHat||, used to scale the
// linear-dependence threshold.
//
// On success it returns the new column's diagonal entry (the pivot) and
// appends origIndex to Iact, incrementing NIact. If the candidate is
// linearly dependent on the active set it returns ErrLinearlyDependent and
// leaves R, Iact and NIact unchanged. The rotations already applied to
// columns NIact..n-1 of J stay in place; they only mix those null-space
// columns among themselves.
func (f *Factorization) Add(d []float64, origIndex int, nHatNorm float64) (float64, error) {
	if f.NIact >= f.capacity {
		// Already holding min(n, m) active constraints: no room left in
		// either the active-set's rank (n) or the constraint budget (m),
		// so any further candidate is necessarily dependent.
		return 0, ErrLinearlyDependent
	}

	for l := f.n - 1; l > f.NIact; l-- {
		rot := linalg.ComputeGivens(d[l-1], d[l])
		if rot.IsIdentity {
			continue
		}
		rot.Apply(f.J.Col(l-1), f.J.Col(l))
		applyToPair(rot, d, l-1, l)
	}

	pivot := d[f.NIact]
	threshold := linalg.Vsmall() * nHatNorm
	if math.Abs(pivot) < threshold {
		return 0, ErrLinearlyDependent
	}

	for row := 0; row <= f.NIact; row++ {
		f.r.Set(row, f.NIact, d[row])
	}
	f.Iact[f.NIact] = origIndex
	f.NIact++

	return pivot, nil
}

func applyToPair(rot linalg.Rotation, d []float64, i, j int) {
	x, y := d[i], d[j]
	d[i] = rot.C*x + rot.S*y
	d[j] = rot.C*y - rot.S*x
}

// Transform computes d = J^T nHat for the full n-by-n J, i.e. d[k] =
// Dot(J column k, nHat) for every k. out must have length n.
func (f *Factorization) Transform(nHat []float64, out []float64) {
	for k := 0; k < f.n; k++ {
		out[k] = linalg.Dot(f.J.Col(k), nHat)
	}
}

// NullSpaceStep computes z = J[:, niact:n] * d[niact:n], the primal step
// direction, given d as produced by Transform (or by Add's rotation, for
// the candidate currently being considered).
func (f *Factorization) NullSpaceStep(d []float64, out []float64) {
	for i := 0; i < f.n; i++ {
		out[i] = 0
	}
	for k := f.NIact; k < f.n; k++ {
		dk := d[k]
		if dk == 0 {
			continue
		}
		col := f.J.Col(k)
		for i := 0; i < f.n; i++ {
			out[i] += dk * col[i]
		}
	}
}

// DualStep solves R r = d[0:niact] for r (the dual step direction), where
// R is the current niact-by-niact upper-triangular block.
func (f *Factorization) DualStep(d []float64, out []float64) {
	for i := f.NIact - 1; i >= 0; i-- {
		sum := d[i]
		for j := i + 1; j < f.NIact; j++ {
			sum -= f.r.At(i, j) * out[j]
		}
		out[i] = sum / f.r.At(i, i)
	}
}

// Drop removes the constraint at active-set position l (0 <= l < NIact),
// re-triangularizing R with a sweep of Givens rotations applied in mirror
// to J, and shifts Iact left to close the gap.
func (f *Factorization) Drop(l int) {
	// Extract the surviving columns (skipping l), each still holding one
	// extra "bulge" row where the column used to sit one position to the
	// right.
	for col := l; col < f.NIact-1; col++ {
		for row := 0; row <= col+1; row++ {
			f.r.Set(row, col, f.r.At(row, col+1))
		}
	}

	for row := l; row < f.NIact-1; row++ {
		rot := linalg.ComputeGivens(f.r.At(row, row), f.r.At(row+1, row))
		if !rot.IsIdentity {
			rotateRows(f.r, rot, row, row+1, row, f.NIact-2)
			rot.Apply(f.J.Col(row), f.J.Col(row+1))
		}
		f.r.Set(row+1, row, 0)
	}

	copy(f.Iact[l:f.NIact-1], f.Iact[l+1:f.NIact])
	f.NIact--
}

// rotateRows applies rot to the pair of rows (i, j) of m across columns
// [colStart, colEnd].
func rotateRows(m *linalg.Matrix, rot linalg.Rotation, i, j, colStart, colEnd int) {
	for c := colStart; c <= colEnd; c++ {
		xi, xj := m.At(i, c), m.At(j, c)
		m.Set(i, c, rot.C*xi+rot.S*xj)
		m.Set(j, c, rot.C*xj-rot.S*xi)
	}
}
