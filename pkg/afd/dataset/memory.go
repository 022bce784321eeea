// Copyright AFDScan Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package dataset

import (
	"fmt"

	"github.com/afdscan/afd-core/pkg/afd/afderr"
)

// Memory is a column-major, in-memory Dataset. Columns are stored
// independently (one []string per column) rather than row-major, mirroring
// the teacher's column-oriented trace representation: column access (which
// PLI.Build needs) is then a simple slice read with no row-stride
// arithmetic.
type Memory struct {
	columns []memoryColumn
	height  uint
}

type memoryColumn struct {
	name string
	data []string
}

// NewMemory constructs a Memory dataset from named columns. Every column
// must have the same length, i.e. same number of rows; a mismatch is
// rejected with ErrDimensionMismatch.
func NewMemory(names []string, columns [][]string) (*Memory, error) {
	if len(names) != len(columns) {
		return nil, fmt.Errorf("%w: %d names but %d columns", afderr.ErrDimensionMismatch, len(names), len(columns))
	}

	var height uint

	if len(columns) > 0 {
		height = uint(len(columns[0]))
	}

	cols := make([]memoryColumn, len(columns))

	for i, col := range columns {
		if uint(len(col)) != height {
			return nil, fmt.Errorf("%w: column %q has %d rows, expected %d",
				afderr.ErrDimensionMismatch, names[i], len(col), height)
		}

		cols[i] = memoryColumn{names[i], col}
	}

	return &Memory{cols, height}, nil
}

// RowCount implements Dataset.
func (m *Memory) RowCount() uint {
	return m.height
}

// ColumnCount implements Dataset.
func (m *Memory) ColumnCount() uint {
	return uint(len(m.columns))
}

// Value implements Dataset.
func (m *Memory) Value(row, col uint) (string, error) {
	if col >= uint(len(m.columns)) {
		return "", fmt.Errorf("%w: %d", afderr.ErrInvalidColumn, col)
	}

	if row >= m.height {
		return "", fmt.Errorf("%w: row %d out of range [0,%d)", afderr.ErrDimensionMismatch, row, m.height)
	}

	return m.columns[col].data[row], nil
}

// ColumnName implements Dataset.
func (m *Memory) ColumnName(col uint) string {
	if col >= uint(len(m.columns)) {
		return ""
	}

	return m.columns[col].name
}
