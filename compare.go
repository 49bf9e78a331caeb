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

package quadprog

import (
	"math"

	"github.com/cygnyx/quadprog-c-json/internal/linalg"
)

// Verdict is the outcome of comparing a computed Solution against a
// reference RegressionRecord.
type Verdict int

const (
	// Pass means the primal solution, unconstrained solution and
	// objective value all matched within tolerance.
	Pass Verdict = iota
	// PassMinor means the primal solution, unconstrained solution and
	// objective value matched, but the Lagrange multipliers, iteration
	// counts or active set did not.
	PassMinor
	// Fail means the primal solution, unconstrained solution or
	// objective value did not match.
	Fail
	// Skip means the record could not be evaluated at all (malformed
	// input, solve error).
	Skip
)

func (v Verdict) String() string {
	switch v {
	case Pass:
		return "PASS"
	case PassMinor:
		return "PASS-minor"
	case Fail:
		return "FAIL"
	case Skip:
		return "SKIP"
	default:
		return "UNKNOWN"
	}
}

// NearlyEqualScalars reports whether p and q agree within the asymmetric
// tolerance threshold = epsilon + 1e-10 * (q<0 ? -p : p), matching the
// historical samed1 comparator.
func NearlyEqualScalars(p, q float64) bool {
	diff := math.Abs(p - q)
	var threshold float64
	if q < 0 {
		threshold = linalg.Vsmall() + 1e-10*-p
	} else {
		threshold = linalg.Vsmall() + 1e-10*p
	}
	return diff <= threshold
}

// NearlyEqualVectors reports whether p and q, of equal length, agree
// pairwise per NearlyEqualScalars.
func NearlyEqualVectors(p, q []float64) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if !NearlyEqualScalars(p[i], q[i]) {
			return false
		}
	}
	return true
}

func nearlyEqualInts(p, q []int) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// Classify compares a computed solution against a reference RegressionRecord,
// returning Pass, PassMinor or Fail. The primal solution, unconstrained
// solution and objective value are "major": any mismatch is a Fail. The
// Lagrange multipliers, iteration counts and active set are "minor": a
// mismatch downgrades Pass to PassMinor but is not by itself a failure.
func Classify(got *Solution, want *RegressionRecord) Verdict {
	if !NearlyEqualVectors(got.X, want.Solution) {
		return Fail
	}
	if !NearlyEqualVectors(got.Unconstrained, want.UnconstrainedSolution) {
		return Fail
	}
	if !NearlyEqualScalars(got.Value, want.Value) {
		return Fail
	}

	minor := false

	wantLagrangian := want.Lagrangian
	gotLagrangian := make([]float64, len(wantLagrangian))
	for i, idx := range got.Iact {
		if idx < len(gotLagrangian) {
			gotLagrangian[idx] = got.U[i]
		}
	}
	if len(wantLagrangian) > 0 && !NearlyEqualVectors(gotLagrangian, wantLagrangian) {
		minor = true
	}

	if len(want.Iterations) == 2 && (got.Iter[0] != want.Iterations[0] || got.Iter[1] != want.Iterations[1]) {
		minor = true
	}

	if !nearlyEqualInts(got.Iact, want.Iact) {
		minor = true
	}

	if minor {
		return PassMinor
	}
	return Pass
}
