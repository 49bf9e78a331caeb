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

package solve

import (
	"errors"

	"github.com/cygnyx/quadprog-c-json/internal/linalg"
)

// ErrNotPositiveDefinite is returned (wrapped) when the Cholesky
// factorization finds G not positive-definite. A factor supplied with
// Factorized set is used as given and is not checked.
var ErrNotPositiveDefinite = linalg.ErrNotPositiveDefinite

// ErrInfeasible is returned when the dual active-set loop finds no finite
// step: no primal movement is possible and no active inequality can be
// dropped to make room.
var ErrInfeasible = errors.New("solve: problem is infeasible")
