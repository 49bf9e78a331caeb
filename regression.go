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
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"golang.org/x/exp/slices"
)

// RegressionRecord is a single fixture: a problem plus the reference
// solution it is expected to produce. Its JSON shape mirrors the historical
// flat key-value contract byte for byte, including the deliberately
// un-nested "unconstrained.solution" key (a literal key containing a dot,
// not a nested object).
type RegressionRecord struct {
	Source string `json:"source,omitempty"`
	Notes  string `json:"notes,omitempty"`

	N   int       `json:"-"`
	M   int       `json:"-"`
	G   []float64 `json:"G"`
	A   []float64 `json:"a"`
	C   []float64 `json:"C,omitempty"`
	B   []float64 `json:"b,omitempty"`
	Meq int       `json:"meq"`

	Factorized bool `json:"factorized"`

	Solution              []float64 `json:"solution"`
	Value                 float64   `json:"value"`
	UnconstrainedSolution []float64 `json:"unconstrained.solution"`
	Lagrangian            []float64 `json:"Lagrangian"`
	Iterations            []int     `json:"iterations"`
	Iact                  []int     `json:"iact"`
}

// ReadRegressionRecord reads and validates a single fixture from path,
// inferring N from len(A) and M from len(B).
func ReadRegressionRecord(path string) (*RegressionRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("quadprog: reading %s: %w", path, err)
	}

	var rec RegressionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("quadprog: parsing %s: %w", path, err)
	}

	rec.N = len(rec.A)
	rec.M = len(rec.B)

	if rec.N == 0 {
		return nil, fmt.Errorf("quadprog: %s: empty or missing \"a\"", path)
	}
	if len(rec.G) != rec.N*rec.N {
		return nil, fmt.Errorf("quadprog: %s: G has %d entries, want n*n=%d", path, len(rec.G), rec.N*rec.N)
	}
	if rec.M > 0 && len(rec.C) != rec.N*rec.M {
		return nil, fmt.Errorf("quadprog: %s: C has %d entries, want n*m=%d", path, len(rec.C), rec.N*rec.M)
	}
	if len(rec.Iact) > 0 {
		seen := make([]int, 0, len(rec.Iact))
		for _, idx := range rec.Iact {
			if slices.Contains(seen, idx) {
				return nil, fmt.Errorf("quadprog: %s: reference \"iact\" contains duplicate index %d", path, idx)
			}
			seen = append(seen, idx)
		}
	}

	return &rec, nil
}

// Problem builds the Problem described by the record.
func (r *RegressionRecord) Problem() (*Problem, error) {
	return NewProblem(r.N, r.M, r.Meq, r.G, r.A, r.C, r.B, r.Factorized)
}

// MarshalJSON writes the record out under the same keys
// ReadRegressionRecord reads. The solved fields are always written: they
// are not omitted when "solution" is empty, and nil slices are written as
// null.
func (r *RegressionRecord) MarshalJSON() ([]byte, error) {
	type alias RegressionRecord
	return json.Marshal((*alias)(r))
}

// SortedFilenames returns a sorted, de-duplicated copy of names. The
// cmd/quadprog batch run does not call it: it runs its files in the order
// given.
func SortedFilenames(names []string) []string {
	out := slices.Clone(names)
	sort.Strings(out)
	return slices.Compact(out)
}
