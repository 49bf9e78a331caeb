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

package linalg

import (
	"errors"
	"math"
)

// ErrNotPositiveDefinite signals that Factorize hit a non-positive pivot;
// G was not (numerically) positive-definite.
var ErrNotPositiveDefinite = errors.New("linalg: matrix is not positive definite")

// Factorize computes, in place, the upper-triangular Cholesky factor L of
// the symmetric positive-definite matrix g such that g = L^T L, overwrites
// g's upper triangle with L, and then overwrites L's diagonal with its
// reciprocal (so later triangular solves multiply instead of divide). Only
// the upper triangle of g is read.
//
// g = L^T L (rather than L L^T) because the driver works with L as an
// upper-triangular object throughout: SolveUpper/SolveUpperTranspose expect
// this orientation.
func Factorize(g *Matrix) error {
	n := g.N()
	for j := 0; j < n; j++ {
		sum := g.At(j, j)
		for k := 0; k < j; k++ {
			v := g.At(k, j)
			sum -= v * v
		}
		if sum <= 0 {
			return ErrNotPositiveDefinite
		}
		diag := math.Sqrt(sum)
		g.Set(j, j, diag)

		for i := j + 1; i < n; i++ {
			sum := g.At(j, i)
			for k := 0; k < j; k++ {
				sum -= g.At(k, j) * g.At(k, i)
			}
			g.Set(j, i, sum/diag)
		}
	}

	for j := 0; j < n; j++ {
		g.Set(j, j, 1/g.At(j, j))
	}

	return nil
}
