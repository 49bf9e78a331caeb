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

package main

import (
	"fmt"
	"io"
	"sort"

	"golang.org/x/exp/slices"

	"github.com/cygnyx/quadprog-c-json"
)

// numberFormats mirrors the historical gfmt table: -f0 is a bare %g, -f1
// (the default) requests 13 significant digits, -f2 requests 18 (a
// round-trippable double).
var numberFormats = []string{"%g", "%15.13g", "%20.18g"}

func putVector(w io.Writer, label string, v []float64, format string) {
	fmt.Fprintf(w, "%s: [", label)
	for i, x := range v {
		if i > 0 {
			fmt.Fprint(w, ", ")
		}
		fmt.Fprintf(w, format, x)
	}
	fmt.Fprintln(w, "]")
}

func putIntVector(w io.Writer, label string, v []int) {
	fmt.Fprintf(w, "%s: %v\n", label, v)
}

// reportProblem dumps a problem's inputs, matching qp_info("problem", p) at
// verbosity 2 and above.
func reportProblem(w io.Writer, name string, rec *quadprog.RegressionRecord, format string) {
	fmt.Fprintf(w, "-- %s --\n", name)
	putVector(w, "G", rec.G, format)
	putVector(w, "a", rec.A, format)
	if rec.M > 0 {
		putVector(w, "C", rec.C, format)
		putVector(w, "b", rec.B, format)
	}
	fmt.Fprintf(w, "meq: %d\n", rec.Meq)
	fmt.Fprintf(w, "factorized: %t\n", rec.Factorized)
}

// reportSolution dumps a solved result, matching qp_info("solution", q).
func reportSolution(w io.Writer, name string, sol *quadprog.Solution, format string) {
	fmt.Fprintf(w, "-- %s --\n", name)
	putVector(w, "solution", sol.X, format)
	putVector(w, "unconstrained.solution", sol.Unconstrained, format)
	fmt.Fprintf(w, "value: "+format+"\n", sol.Value)
	putIntVector(w, "iterations", sol.Iter[:])

	// iact is reported in activation order for diagnostic purposes but
	// sorted for display here, on a clone so the driver's own activation
	// order (which Classify and callers rely on) is never disturbed.
	sortedIact := slices.Clone(sol.Iact)
	sort.Ints(sortedIact)
	putIntVector(w, "iact", sortedIact)
}
