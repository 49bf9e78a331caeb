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

// internal/solve is the dual active-set driver (spec component D): the
// outer loop that picks a violated constraint, computes primal/dual step
// directions, determines step lengths, and adds or drops constraints
// until optimality or infeasibility.
package solve

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/cygnyx/quadprog-c-json/internal/activeset"
	"github.com/cygnyx/quadprog-c-json/internal/linalg"
)

// Input is the validated, shape-checked problem the driver consumes. G is
// mutated in place by Factorize unless Factorized is true, in which case G
// is already the upper-triangular Cholesky factor with reciprocal
// diagonal.
type Input struct {
	N, M, Meq  int
	G          *linalg.Matrix
	A          []float64
	C          linalg.ColMajor
	B          []float64
	Factorized bool
}

// Result is the driver's output. U and Iact have length M; only the first
// Niact entries are meaningful, the remainder are zero, matching the
// "padded with zeros" convention of spec.md §4.D.
type Result struct {
	X             []float64
	Unconstrained []float64
	Value         float64
	U             []float64
	Iact          []int
	Niact         int
	Iter          [2]int
	L             *linalg.Matrix
}

// Solve runs the dual active-set method to completion.
func Solve(in Input) (*Result, error) {
	l := in.G
	if !in.Factorized {
		if err := linalg.Factorize(l); err != nil {
			return nil, fmt.Errorf("solve: cholesky factorization failed: %w", err)
		}
	}

	x := make([]float64, in.N)
	unconstrained := make([]float64, in.N)
	{
		y := make([]float64, in.N)
		linalg.SolveUpperTranspose(l, in.A, y)
		linalg.SolveUpper(l, y, unconstrained)
		copy(x, unconstrained)
	}
	value := -0.5 * linalg.Dot(in.A, x)

	r := min(in.N, in.M)
	fact := activeset.New(in.N, r, l)

	u := make([]float64, in.M)
	iact := make([]int, in.M)

	d := make([]float64, in.N)
	z := make([]float64, in.N)
	rvec := make([]float64, r)

	for i := 0; i < in.Meq; i++ {
		nHat := in.C.Col(i)
		fact.Transform(nHat, d)
		fact.NullSpaceStep(d, z)
		zDotN := linalg.Dot(z, nHat)
		if math.Abs(zDotN) < linalg.Vsmall() {
			return nil, fmt.Errorf("solve: equality constraint %d is linearly dependent on the preceding ones", i)
		}

		s := linalg.Dot(in.C.Col(i), x) - in.B[i]
		t := -s / zDotN

		axpy(x, t, z)
		value += 0.5 * t * t * zDotN

		nNorm := math.Sqrt(linalg.Dot(nHat, nHat))
		pivot, err := fact.Add(d, i, nNorm)
		if err != nil {
			return nil, fmt.Errorf("solve: equality constraint %d is linearly dependent on the preceding ones: %w", i, err)
		}
		slog.Debug("added equality constraint", "index", i, "pivot", pivot)
		u[fact.NIact-1] = t
	}

	iter := [2]int{}

	for {
		jStar, sStar, found := mostViolated(in, x, fact)
		if !found {
			copy(iact, fact.Iact[:fact.NIact])
			return &Result{
				X: x, Unconstrained: unconstrained, Value: value,
				U: u, Iact: iact, Niact: fact.NIact, Iter: iter, L: l,
			}, nil
		}

		uNew := 0.0
		nHat := in.C.Col(jStar)
		nNorm := math.Sqrt(linalg.Dot(nHat, nHat))

		for {
			fact.Transform(nHat, d)
			fact.NullSpaceStep(d, z)
			fact.DualStep(d, rvec[:fact.NIact])

			zDotN := linalg.Dot(z, nHat)
			t1 := math.Inf(1)
			if math.Abs(zDotN) >= linalg.Vsmall() {
				t1 = -sStar / zDotN
			}

			t2 := math.Inf(1)
			lStar := -1
			for k := in.Meq; k < fact.NIact; k++ {
				if rvec[k] > linalg.Vsmall() {
					cand := u[k] / rvec[k]
					if cand < t2 {
						t2 = cand
						lStar = k
					}
				}
			}

			t := math.Min(t1, t2)
			if math.IsInf(t, 1) {
				return nil, ErrInfeasible
			}

			for k := 0; k < fact.NIact; k++ {
				u[k] -= t * rvec[k]
			}
			uOld := uNew
			uNew += t

			if t2 <= t1 {
				if !math.IsInf(t1, 1) {
					// Partial step: move x as far as the dual step allows
					// before dropping, so x stays optimal for the active set.
					axpy(x, t, z)
					value += t * zDotN * (0.5*t + uOld)
					sStar += t * zDotN
				}
				dropAt(u, fact, lStar)
				iter[1]++
				slog.Debug("dropped constraint", "position", lStar, "step", t)
				continue
			}

			axpy(x, t, z)
			value += t * zDotN * (0.5*t + uOld)

			pivot, err := fact.Add(d, jStar, nNorm)
			if err != nil {
				if lStar < 0 {
					return nil, fmt.Errorf("solve: candidate constraint %d is linearly dependent with no active constraint to drop: %w", jStar, err)
				}
				dropAt(u, fact, lStar)
				iter[1]++
				slog.Debug("dropped constraint after failed add", "position", lStar)
				continue
			}

			u[fact.NIact-1] = uNew
			iter[0]++
			slog.Debug("added constraint", "index", jStar, "pivot", pivot)
			break
		}
	}
}

// mostViolated finds the most-violated inequality constraint not already
// active (smallest slack, ties broken by smallest index), per spec.md
// §4.D Step 1.
func mostViolated(in Input, x []float64, fact *activeset.Factorization) (j int, slack float64, found bool) {
	epsSlack := linalg.Vsmall()
	best := math.Inf(1)
	bestJ := -1

	for j := in.Meq; j < in.M; j++ {
		if isActive(fact, j) {
			continue
		}
		s := linalg.Dot(in.C.Col(j), x) - in.B[j]
		if s < -epsSlack && s < best {
			best = s
			bestJ = j
		}
	}

	if bestJ < 0 {
		return 0, 0, false
	}
	return bestJ, best, true
}

func isActive(fact *activeset.Factorization, j int) bool {
	for _, i := range fact.Iact[:fact.NIact] {
		if i == j {
			return true
		}
	}
	return false
}

func dropAt(u []float64, fact *activeset.Factorization, l int) {
	fact.Drop(l)
	copy(u[l:], u[l+1:])
	u[len(u)-1] = 0
}

func axpy(x []float64, t float64, z []float64) {
	for i := range x {
		x[i] += t * z[i]
	}
}
