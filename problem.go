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

// Package quadprog solves strictly convex quadratic programs
//
//	minimize   (1/2) x^T G x - a^T x
//	subject to C^T x >= b, with the first Meq columns of C treated as
//	equalities
//
// using the Goldfarb-Idnani dual active-set method. The numerically
// interesting machinery — Cholesky factorization, the incremental
// active-set factorization and the dual active-set loop itself — lives in
// internal/linalg, internal/activeset and internal/solve; this package is
// the harness that validates a Problem's shape, drives a solve, and
// exposes the result.
package quadprog

import (
	"fmt"

	"github.com/cygnyx/quadprog-c-json/internal/linalg"
	"github.com/cygnyx/quadprog-c-json/internal/solve"
)

// Problem is a quadratic program in the form described in the package doc.
// G, C are column-major: G has N*N entries, C has N*M entries (column j is
// the coefficient vector of constraint j). A Problem is immutable during a
// solve; Solve operates on copies of G and C.
type Problem struct {
	N    int
	M    int
	Meq  int
	G    []float64
	A    []float64
	C    []float64
	B    []float64

	// Factorized, when true, means G already holds the upper-triangular
	// Cholesky factor L of the "real" G, with L's diagonal stored as
	// reciprocals (internal/linalg.Factorize's convention). The Cholesky
	// step is then skipped.
	Factorized bool
}

// NewProblem validates shapes and builds a Problem. m may be 0, in which
// case c and b may be nil or empty.
func NewProblem(n, m, meq int, g, a, c, b []float64, factorized bool) (*Problem, error) {
	if n < 1 {
		return nil, fmt.Errorf("quadprog: n must be at least 1, got %d", n)
	}
	if m < 0 {
		return nil, fmt.Errorf("quadprog: m must be nonnegative, got %d", m)
	}
	if meq < 0 || meq > m {
		return nil, fmt.Errorf("quadprog: meq must satisfy 0 <= meq <= m, got meq=%d m=%d", meq, m)
	}
	if len(g) != n*n {
		return nil, fmt.Errorf("quadprog: G must have n*n=%d entries, got %d", n*n, len(g))
	}
	if len(a) != n {
		return nil, fmt.Errorf("quadprog: a must have n=%d entries, got %d", n, len(a))
	}
	if m > 0 {
		if len(c) != n*m {
			return nil, fmt.Errorf("quadprog: C must have n*m=%d entries, got %d", n*m, len(c))
		}
		if len(b) != m {
			return nil, fmt.Errorf("quadprog: b must have m=%d entries, got %d", m, len(b))
		}
	}

	return &Problem{N: n, M: m, Meq: meq, G: g, A: a, C: c, B: b, Factorized: factorized}, nil
}

// Solve validates nothing further (NewProblem already did) and runs the
// dual active-set method to completion.
func (p *Problem) Solve() (*Solution, error) {
	g := linalg.NewMatrix(p.N)
	copy(g.RawData(), p.G)

	var c linalg.ColMajor
	if p.M > 0 {
		cData := make([]float64, len(p.C))
		copy(cData, p.C)
		c = linalg.NewColMajor(p.N, p.M, cData)
	}

	a := make([]float64, p.N)
	copy(a, p.A)
	b := make([]float64, p.M)
	copy(b, p.B)

	result, err := solve.Solve(solve.Input{
		N: p.N, M: p.M, Meq: p.Meq,
		G: g, A: a, C: c, B: b,
		Factorized: p.Factorized,
	})
	if err != nil {
		return nil, err
	}

	return &Solution{
		X:             result.X,
		Value:         result.Value,
		U:             result.U[:result.Niact],
		Iact:          result.Iact[:result.Niact],
		Niact:         result.Niact,
		Iter:          result.Iter,
		Unconstrained: result.Unconstrained,
		L:             result.L.RawData(),
	}, nil
}
