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

package activeset

import (
	"math"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/cygnyx/quadprog-c-json/internal/linalg"
)

func identityCholesky(n int) *linalg.Matrix {
	l := linalg.NewMatrix(n)
	for i := 0; i < n; i++ {
		l.Set(i, i, 1)
	}
	return l
}

func TestNewJIsIdentityInverseTranspose(t *testing.T) {
	l := identityCholesky(3)
	f := New(3, 3, l)

	for j := 0; j < 3; j++ {
		col := f.J.Col(j)
		for i := 0; i < 3; i++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			assert.Assert(t, math.Abs(col[i]-want) < 1e-12)
		}
	}
}

func TestAddAndDropRestoresIact(t *testing.T) {
	l := identityCholesky(2)
	f := New(2, 2, l)

	d := make([]float64, 2)
	f.Transform([]float64{1, 0}, d)
	_, err := f.Add(d, 5, 1)
	assert.NilError(t, err)
	assert.Equal(t, f.NIact, 1)
	assert.DeepEqual(t, f.Iact[:f.NIact], []int{5})

	d2 := make([]float64, 2)
	f.Transform([]float64{0, 1}, d2)
	_, err = f.Add(d2, 9, 1)
	assert.NilError(t, err)
	assert.Equal(t, f.NIact, 2)
	assert.DeepEqual(t, f.Iact[:f.NIact], []int{5, 9})

	f.Drop(0)
	assert.Equal(t, f.NIact, 1)
	assert.DeepEqual(t, f.Iact[:f.NIact], []int{9})
}

func TestAddRejectsLinearlyDependentColumn(t *testing.T) {
	l := identityCholesky(2)
	f := New(2, 2, l)

	d := make([]float64, 2)
	f.Transform([]float64{1, 0}, d)
	_, err := f.Add(d, 0, 1)
	assert.NilError(t, err)

	d2 := make([]float64, 2)
	f.Transform([]float64{1, 0}, d2)
	_, err = f.Add(d2, 1, 1)
	assert.ErrorIs(t, err, ErrLinearlyDependent)
	assert.Equal(t, f.NIact, 1)
}

func TestAddRejectsPastCapacity(t *testing.T) {
	l := identityCholesky(2)
	f := New(2, 1, l)

	d := make([]float64, 2)
	f.Transform([]float64{1, 0}, d)
	_, err := f.Add(d, 0, 1)
	assert.NilError(t, err)
	assert.Equal(t, f.NIact, 1)

	d2 := make([]float64, 2)
	f.Transform([]float64{0, 1}, d2)
	_, err = f.Add(d2, 1, 1)
	assert.ErrorIs(t, err, ErrLinearlyDependent)
	assert.Equal(t, f.NIact, 1)
}
