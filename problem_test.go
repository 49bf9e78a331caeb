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

func TestNewProblemRejectsBadShapes(t *testing.T) {
	_, err := quadprog.NewProblem(0, 0, 0, nil, nil, nil, nil, false)
	assert.ErrorContains(t, err, "n must be at least 1")

	_, err = quadprog.NewProblem(2, 1, 2, []float64{1, 0, 0, 1}, []float64{0, 0}, []float64{1, 0}, []float64{0}, false)
	assert.ErrorContains(t, err, "meq must satisfy")

	_, err = quadprog.NewProblem(2, 0, 0, []float64{1, 0, 0}, []float64{0, 0}, nil, nil, false)
	assert.ErrorContains(t, err, "G must have")

	_, err = quadprog.NewProblem(2, 1, 0, []float64{1, 0, 0, 1}, []float64{0, 0}, []float64{1}, []float64{0}, false)
	assert.ErrorContains(t, err, "C must have")
}

func TestProblemSolveUnconstrained(t *testing.T) {
	problem, err := quadprog.NewProblem(2, 0, 0,
		[]float64{2, 0, 0, 2},
		[]float64{4, 6},
		nil, nil, false)
	assert.NilError(t, err)

	solution, err := problem.Solve()
	assert.NilError(t, err)
	assert.Assert(t, quadprog.NearlyEqualVectors(solution.X, []float64{2, 3}))
	assert.Equal(t, solution.Niact, 0)
	assert.Equal(t, len(solution.Iact), 0)
}

func TestProblemSolveFactorizedRoundTrip(t *testing.T) {
	problem, err := quadprog.NewProblem(2, 0, 0,
		[]float64{2, 0, 0, 2},
		[]float64{4, 6},
		nil, nil, false)
	assert.NilError(t, err)

	first, err := problem.Solve()
	assert.NilError(t, err)

	refactored, err := quadprog.NewProblem(2, 0, 0, first.L, []float64{4, 6}, nil, nil, true)
	assert.NilError(t, err)

	second, err := refactored.Solve()
	assert.NilError(t, err)
	assert.Assert(t, quadprog.NearlyEqualVectors(second.X, first.X))
}
