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

package solve

import (
	"math"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/cygnyx/quadprog-c-json/internal/linalg"
)

func nearly(t *testing.T, got, want float64) {
	t.Helper()
	assert.Assert(t, math.Abs(got-want) < 1e-7, "got %v want %v", got, want)
}

func nearlyVec(t *testing.T, got, want []float64) {
	t.Helper()
	assert.Equal(t, len(got), len(want))
	for i := range want {
		nearly(t, got[i], want[i])
	}
}

func twiceIdentity2() *linalg.Matrix {
	g := linalg.NewMatrix(2)
	g.Set(0, 0, 2)
	g.Set(1, 1, 2)
	return g
}

// The unconstrained minimum already satisfies every constraint: the active
// set stays empty and the driver returns on its first violation scan.
func TestSolveAlreadyFeasible(t *testing.T) {
	in := Input{
		N: 2, M: 1, Meq: 0,
		G: twiceIdentity2(),
		A: []float64{2, 2},
		C: linalg.NewColMajor(2, 1, []float64{1, 1}),
		B: []float64{-10},
	}
	result, err := Solve(in)
	assert.NilError(t, err)
	nearlyVec(t, result.X, []float64{1, 1})
	nearlyVec(t, result.Unconstrained, []float64{1, 1})
	assert.Equal(t, result.Niact, 0)
}

// One inequality becomes active: x1+x2<=1, unconstrained optimum (1,1)
// violates it, constrained optimum sits at (0.5, 0.5).
func TestSolveSingleActiveInequality(t *testing.T) {
	in := Input{
		N: 2, M: 1, Meq: 0,
		G: twiceIdentity2(),
		A: []float64{2, 2},
		C: linalg.NewColMajor(2, 1, []float64{-1, -1}),
		B: []float64{-1},
	}
	result, err := Solve(in)
	assert.NilError(t, err)
	nearlyVec(t, result.X, []float64{0.5, 0.5})
	nearly(t, result.Value, -1.5)
	assert.Equal(t, result.Niact, 1)
	assert.Equal(t, result.Iact[0], 0)
	nearly(t, result.U[0], 1)
}

// A single equality constraint pins x1 = 1 exactly; the dual active-set
// loop must add it in the initial equality pass, not the inequality loop.
func TestSolveEqualityConstraint(t *testing.T) {
	in := Input{
		N: 2, M: 1, Meq: 1,
		G: twiceIdentity2(),
		A: []float64{2, 2},
		C: linalg.NewColMajor(2, 1, []float64{1, 0}),
		B: []float64{1},
	}
	result, err := Solve(in)
	assert.NilError(t, err)
	nearlyVec(t, result.X, []float64{1, 1})
	assert.Equal(t, result.Niact, 1)
}

// n=1: minimize x^2 - 2x subject to x <= 0; unconstrained optimum is x=1,
// constrained optimum is x=0.
func TestSolveScalarProblem(t *testing.T) {
	g := linalg.NewMatrix(1)
	g.Set(0, 0, 2)
	in := Input{
		N: 1, M: 1, Meq: 0,
		G: g,
		A: []float64{2},
		C: linalg.NewColMajor(1, 1, []float64{-1}),
		B: []float64{0},
	}
	result, err := Solve(in)
	assert.NilError(t, err)
	nearlyVec(t, result.X, []float64{0})
	assert.Equal(t, result.Niact, 1)
}

// m > n with redundant inequalities: x <= -0.25 implies x <= 0 and
// x <= 0.5. The third constraint is the most violated at the unconstrained
// optimum x = 1, so it is added first and fills the factorization's
// capacity of min(n, m) = n = 1; the other two are then satisfied.
func TestSolveRedundantConstraints(t *testing.T) {
	in := Input{
		N: 1, M: 3, Meq: 0,
		G: func() *linalg.Matrix {
			g := linalg.NewMatrix(1)
			g.Set(0, 0, 2)
			return g
		}(),
		A: []float64{2},
		C: linalg.NewColMajor(1, 3, []float64{-1, -1, -1}),
		B: []float64{0, -0.5, 0.25},
	}
	result, err := Solve(in)
	assert.NilError(t, err)
	nearlyVec(t, result.X, []float64{-0.25})
	assert.Equal(t, result.Niact, 1)
}

// No finite step exists: two parallel, mutually exclusive inequalities.
func TestSolveInfeasible(t *testing.T) {
	in := Input{
		N: 1, M: 2, Meq: 0,
		G: func() *linalg.Matrix {
			g := linalg.NewMatrix(1)
			g.Set(0, 0, 2)
			return g
		}(),
		A: []float64{0},
		C: linalg.NewColMajor(1, 2, []float64{1, -1}),
		B: []float64{1, 1},
	}
	_, err := Solve(in)
	assert.ErrorIs(t, err, ErrInfeasible)
}
