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

// Package pli implements the Position-List Index: the partition of row-IDs
// induced by agreement on a column set, with singleton classes elided.
package pli

import (
	"fmt"

	"github.com/afdscan/afd-core/pkg/afd/afderr"
	"github.com/afdscan/afd-core/pkg/afd/colset"
	"github.com/afdscan/afd-core/pkg/afd/dataset"
)

// PLI holds the equivalence classes induced by a column set over a dataset.
// Every class has size >= 2; rows which are alone in their group (hence
// trivially consistent with everything) are not recorded. Class order is
// stable within one instance but otherwise has no semantic meaning.
type PLI struct {
	columns colset.Set
	classes [][]uint
}

// Columns returns the column set which induced this PLI.
func (p *PLI) Columns() colset.Set {
	return p.columns
}

// Classes returns the equivalence classes of this PLI.
func (p *PLI) Classes() [][]uint {
	return p.classes
}

// KeyCount returns the number of non-singleton classes.
func (p *PLI) KeyCount() uint {
	return uint(len(p.classes))
}

// EntropyContribution returns sum(|class| * (|class|-1)) across all classes,
// i.e. the number of ordered pairs of distinct rows that agree on this PLI's
// columns.
func (p *PLI) EntropyContribution() uint64 {
	var total uint64

	for _, class := range p.classes {
		n := uint64(len(class))
		total += n * (n - 1)
	}

	return total
}

// Build groups the rows of d by the value they hold in column c, dropping
// singleton groups, and yields PLI({c}, classes).
func Build(c uint, d dataset.Dataset) (*PLI, error) {
	if c >= d.ColumnCount() {
		return nil, fmt.Errorf("%w: %d", afderr.ErrInvalidColumn, c)
	}

	groups := make(map[string][]uint)
	order := make([]string, 0)

	n := d.RowCount()
	for row := uint(0); row < n; row++ {
		token, err := d.Value(row, c)
		if err != nil {
			return nil, err
		}

		if _, seen := groups[token]; !seen {
			order = append(order, token)
		}

		groups[token] = append(groups[token], row)
	}

	classes := make([][]uint, 0, len(order))

	for _, token := range order {
		if rows := groups[token]; len(rows) >= 2 {
			classes = append(classes, rows)
		}
	}

	return &PLI{colset.Of(c), classes}, nil
}

// Intersect refines p and q: two rows end up in the same output class iff
// they were in the same class in both p and q. The result's column set is
// p.columns ∪ q.columns. Intersect is commutative and associative up to
// class order.
func Intersect(p, q *PLI) *PLI {
	// Build an auxiliary row -> class-label map from q once, then classify
	// every row of each p-class by that label. This keeps the cost at
	// O(sum |class in p|) + O(rows in q), as called for by the design.
	rowToQClass := make(map[uint]int)

	for classIdx, class := range q.classes {
		for _, row := range class {
			rowToQClass[row] = classIdx
		}
	}

	classes := make([][]uint, 0, len(p.classes))

	for _, pClass := range p.classes {
		groups := make(map[int][]uint)
		order := make([]int, 0)

		for _, row := range pClass {
			label, inQ := rowToQClass[row]
			if !inQ {
				// row is a singleton under q; it cannot join any >=2 group.
				continue
			}

			if _, seen := groups[label]; !seen {
				order = append(order, label)
			}

			groups[label] = append(groups[label], row)
		}

		for _, label := range order {
			if rows := groups[label]; len(rows) >= 2 {
				classes = append(classes, rows)
			}
		}
	}

	return &PLI{p.columns.Union(q.columns), classes}
}
