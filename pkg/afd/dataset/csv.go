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
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/afdscan/afd-core/pkg/afd/afderr"
)

// LoadCSV reads a CSV file into a Memory dataset. When hasHeader is true the
// first row supplies column names; otherwise columns are named "col0",
// "col1", etc. Every data row must have the same width as the header (or the
// first row, if headless) or loading fails with ErrDimensionMismatch.
func LoadCSV(r io.Reader, hasHeader bool) (*Memory, error) {
	reader := csv.NewReader(r)
	// Tolerate leading whitespace in fields the way most CSV producers do.
	reader.TrimLeadingSpace = true
	// Leave field counts unchecked here so the width check below reports a
	// ragged row as ErrDimensionMismatch.
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}

	if len(records) == 0 {
		return NewMemory(nil, nil)
	}

	var names []string

	rows := records

	if hasHeader {
		names = records[0]
		rows = records[1:]
	} else {
		names = make([]string, len(records[0]))
		for i := range names {
			names[i] = "col" + strconv.Itoa(i)
		}
	}

	width := len(names)
	columns := make([][]string, width)

	for i := range columns {
		columns[i] = make([]string, 0, len(rows))
	}

	for rowIdx, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d fields, expected %d",
				afderr.ErrDimensionMismatch, rowIdx, len(row), width)
		}

		for col, token := range row {
			columns[col] = append(columns[col], token)
		}
	}

	return NewMemory(names, columns)
}
