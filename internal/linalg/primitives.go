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
	"math"

	"gonum.org/v1/gonum/floats"
)

// Matrix is a dense, column-major n-by-n matrix, stored contiguously the
// way the teacher's internal/math package stores its compressed binary
// matrices as one flat slice with typed accessors hiding the layout.
type Matrix struct {
	n    int
	data []float64
}

// NewMatrix allocates a zeroed n-by-n column-major matrix.
func NewMatrix(n int) *Matrix {
	return &Matrix{n: n, data: make([]float64, n*n)}
}

// NewMatrixFromColumnMajor wraps an existing column-major buffer; it is not
// copied.
func NewMatrixFromColumnMajor(n int, data []float64) *Matrix {
	return &Matrix{n: n, data: data}
}

func (m *Matrix) N() int { return m.n }

func (m *Matrix) At(i, j int) float64 { return m.data[j*m.n+i] }

func (m *Matrix) Set(i, j int, v float64) { m.data[j*m.n+i] = v }

// Col returns the underlying slice for column j; mutating it mutates m.
func (m *Matrix) Col(j int) []float64 { return m.data[j*m.n : (j+1)*m.n] }

// RawData returns the full column-major backing slice; mutating it mutates m.
func (m *Matrix) RawData() []float64 { return m.data }

// ColMajor is a dense rows-by-cols column-major rectangular matrix, used
// for the constraint matrix C (n rows, m columns, one column per
// constraint).
type ColMajor struct {
	Rows, Cols int
	Data       []float64
}

// NewColMajor wraps an existing column-major buffer of length rows*cols;
// it is not copied.
func NewColMajor(rows, cols int, data []float64) ColMajor {
	return ColMajor{Rows: rows, Cols: cols, Data: data}
}

// Col returns the underlying slice for column j; mutating it mutates the
// backing array.
func (m ColMajor) Col(j int) []float64 { return m.Data[j*m.Rows : (j+1)*m.Rows] }

// Dot computes the dot product of two length-n vectors.
func Dot(x, y []float64) float64 {
	return floats.Dot(x, y)
}

// SolveUpper solves L x = b for x, where L is the upper-triangular order-n
// matrix whose diagonal is stored as reciprocals (see Factorize).
// b may alias out. The diagonal is always read as reciprocals; solving with
// a unit vector e_k as b yields column k of L^-1.
func SolveUpper(l *Matrix, b []float64, out []float64) {
	n := l.N()
	for i := n - 1; i >= 0; i-- {
		sum := b[i]
		for j := i + 1; j < n; j++ {
			sum -= l.At(i, j) * out[j]
		}
		out[i] = sum * l.At(i, i)
	}
}

// SolveUpperTranspose solves L^T x = b for x, where L is stored as in
// SolveUpper (reciprocal diagonal).
func SolveUpperTranspose(l *Matrix, b []float64, out []float64) {
	n := l.N()
	for i := 0; i < n; i++ {
		sum := b[i]
		for j := 0; j < i; j++ {
			sum -= l.At(j, i) * out[j]
		}
		out[i] = sum * l.At(i, i)
	}
}

// Rotation is a Givens rotation (c, s) such that applying it to the 2-vector
// (x, y) produces (±sqrt(x^2+y^2), 0). It uses the numerically safe form:
// when |y| <= |x|, t = y/x, c = 1/sqrt(1+t^2), s = c*t, and the first
// component takes the sign of x; otherwise the roles of x and y are
// swapped and it takes the sign of y. A zero rotation is reported through IsIdentity
// rather than relying on the sign bit of a negative zero, per spec.md's
// Design Notes (the rewrite trades the historical sign-bit flag for an
// explicit boolean).
type Rotation struct {
	C, S       float64
	IsIdentity bool
}

// ComputeGivens derives the rotation that zeros y against x.
func ComputeGivens(x, y float64) Rotation {
	if y == 0 {
		return Rotation{C: 1, S: 0, IsIdentity: true}
	}

	absX, absY := math.Abs(x), math.Abs(y)
	if absY <= absX {
		t := y / x
		c := 1 / math.Sqrt(1+t*t)
		s := c * t
		return Rotation{C: c, S: s}
	}

	t := x / y
	s := 1 / math.Sqrt(1+t*t)
	c := s * t
	return Rotation{C: c, S: s}
}

// Apply rotates the pair (xi, yi) in place for every index i: new xi = c*xi
// + s*yi, new yi = c*yi - s*xi. x and y must have equal length and must not
// overlap.
func (r Rotation) Apply(x, y []float64) {
	if r.IsIdentity {
		return
	}
	for i := range x {
		xi, yi := x[i], y[i]
		x[i] = r.C*xi + r.S*yi
		y[i] = r.C*yi - r.S*xi
	}
}
