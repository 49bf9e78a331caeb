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

// internal/linalg holds the dense numeric primitives the dual active-set
// driver is built on: triangular solves, the Cholesky factorizer, and the
// machine-epsilon-scale constant the driver uses for its thresholds.
package linalg

import "sync"

var (
	vsmallOnce  sync.Once
	vsmallValue float64
)

// Vsmall returns the smallest positive float64 such that 1/Vsmall does not
// overflow and Vsmall+1 > 1 under the active rounding. It is derived once,
// by halving a seed from above until the defining inequalities first fail,
// then returning the last value for which they held.
func Vsmall() float64 {
	vsmallOnce.Do(func() {
		vsmallValue = computeVsmall()
	})
	return vsmallValue
}

func computeVsmall() float64 {
	v := 1.0
	for {
		candidate := v / 2
		if candidate+1.0 <= 1.0 {
			// candidate rounds away to nothing when added to 1; v is still good.
			break
		}
		if 1.0/candidate > maxFloat64 {
			// candidate's reciprocal would overflow; v is still good.
			break
		}
		v = candidate
	}
	return v
}

const maxFloat64 = 1.7976931348623157e+308
