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

package quadprog_test

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/cygnyx/quadprog-c-json"
)

func TestNearlyEqualScalarsAsymmetricTolerance(t *testing.T) {
	assert.Assert(t, quadprog.NearlyEqualScalars(1.0000000001, 1.0))
	assert.Assert(t, !quadprog.NearlyEqualScalars(1.1, 1.0))
	// q < 0 flips the sign used to scale the tolerance against p, not q.
	assert.Assert(t, quadprog.NearlyEqualScalars(-1.0000000001, -1.0))
}

func TestClassifyDistinguishesMajorFromMinor(t *testing.T) {
	want := &quadprog.RegressionRecord{
		Solution:              []float64{0.5, 0.5},
		UnconstrainedSolution: []float64{1, 1},
		Value:                 -1.5,
		Lagrangian:            []float64{1},
		Iterations:            []int{1, 0},
		Iact:                  []int{0},
	}

	exact := &quadprog.Solution{
		X:             []float64{0.5, 0.5},
		Unconstrained: []float64{1, 1},
		Value:         -1.5,
		U:             []float64{1},
		Iact:          []int{0},
		Niact:         1,
		Iter:          [2]int{1, 0},
	}
	assert.Equal(t, quadprog.Classify(exact, want), quadprog.Pass)

	differentIterCount := *exact
	differentIterCount.Iter = [2]int{2, 1}
	assert.Equal(t, quadprog.Classify(&differentIterCount, want), quadprog.PassMinor)

	wrongPrimal := *exact
	wrongPrimal.X = []float64{0, 0}
	assert.Equal(t, quadprog.Classify(&wrongPrimal, want), quadprog.Fail)
}
