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

// Solution is the result of a successful Solve. Iact and U are laid out in
// activation order and both have length Niact (spec.md's "padded with
// zeros" convention is not carried here: callers that want the full-length,
// zero-padded Lagrangian should index by Iact themselves, as Classify
// does).
type Solution struct {
	// X is the primal optimum.
	X []float64
	// Unconstrained is the unconstrained minimizer G^-1 a, computed before
	// any constraint is considered.
	Unconstrained []float64
	// Value is (1/2) X^T G X - a^T X at the optimum.
	Value float64
	// U holds the Lagrange multiplier for each entry of Iact, in the same
	// order.
	U []float64
	// Iact holds the 0-based indices (into the columns of C) of the active
	// constraints, in the order they were added.
	Iact []int
	// Niact is len(Iact) == len(U).
	Niact int
	// Iter holds the outer-loop counters: Iter[0] counts constraint
	// additions, Iter[1] counts drops.
	Iter [2]int
	// L holds the upper-triangular Cholesky factor of G in its upper
	// triangle, with its diagonal stored as reciprocals, column-major. The
	// entries below the diagonal are those of G and are not read when L is
	// passed back in as G with Factorized set, which skips re-factorization.
	L []float64
}
