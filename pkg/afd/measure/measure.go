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

// Package measure implements the g3 approximate-FD error measure and the
// sampling strategy used to estimate it cheaply before a full validation.
package measure

import (
	"github.com/afdscan/afd-core/pkg/afd/cache"
	"github.com/afdscan/afd-core/pkg/afd/colset"
	"github.com/afdscan/afd-core/pkg/afd/dataset"
)

// ErrorMeasure computes the error of a candidate FD X -> rhs. CalculateError
// is exact; EstimateError is a cheaper, sample-based approximation.
type ErrorMeasure interface {
	// CalculateError computes g3(lhs -> rhs) exactly over the whole dataset.
	CalculateError(lhs colset.Set, rhs uint, d dataset.Dataset, c *cache.Cache) (float64, error)
	// EstimateError computes an unbiased estimate of g3(lhs -> rhs) from a
	// sample of k rows drawn via sampler.
	EstimateError(lhs colset.Set, rhs uint, d dataset.Dataset, c *cache.Cache, sampler SamplingStrategy, k uint) (float64, error)
}

// SamplingStrategy produces k row-IDs from [0, n) for estimation. Default
// implementation (Uniform) samples without replacement from a seeded PRNG so
// that estimate() is deterministic given (X, rhs, dataset, sampler seed).
type SamplingStrategy interface {
	Sample(n, k uint) []uint
}

// G3 is the default ErrorMeasure. g3(X -> a) = (sum_E (|E| - top(E))) / n,
// where E ranges over the equivalence classes of P_X and top(E) is the size
// of E's largest sub-class under column a.
type G3 struct{}

// CalculateError implements ErrorMeasure.CalculateError.
func (G3) CalculateError(lhs colset.Set, rhs uint, d dataset.Dataset, c *cache.Cache) (float64, error) {
	n := d.RowCount()
	if n == 0 {
		return 0, nil
	}

	pX, err := pliOrWholeTable(lhs, d, c)
	if err != nil {
		return 0, err
	}

	pA, err := c.GetPLI(colset.Of(rhs))
	if err != nil {
		return 0, err
	}

	rowToAClass := rowToClassLabel(pA)

	var violating uint64

	for _, class := range pX.Classes() {
		violating += uint64(len(class)) - topOf(class, rowToAClass)
	}

	return float64(violating) / float64(n), nil
}

// EstimateError implements ErrorMeasure.EstimateError: it draws k rows via
// sampler, restricts every PLI class to that row sample, and computes g3 on
// the restricted (smaller) instance, which is an unbiased estimate of the
// full g3.
func (G3) EstimateError(
	lhs colset.Set, rhs uint, d dataset.Dataset, c *cache.Cache, sampler SamplingStrategy, k uint,
) (float64, error) {
	n := d.RowCount()
	if n == 0 || k == 0 {
		return 0, nil
	}

	if k > n {
		k = n
	}

	sampled := sampler.Sample(n, k)
	inSample := make(map[uint]bool, len(sampled))

	for _, row := range sampled {
		inSample[row] = true
	}

	pX, err := pliOrWholeTable(lhs, d, c)
	if err != nil {
		return 0, err
	}

	pA, err := c.GetPLI(colset.Of(rhs))
	if err != nil {
		return 0, err
	}

	rowToAClass := rowToClassLabel(pA)

	var violating uint64

	for _, class := range pX.Classes() {
		restricted := make([]uint, 0, len(class))

		for _, row := range class {
			if inSample[row] {
				restricted = append(restricted, row)
			}
		}

		if len(restricted) == 0 {
			continue
		}

		violating += uint64(len(restricted)) - topOf(restricted, rowToAClass)
	}

	if len(inSample) == 0 {
		return 0, nil
	}

	// A sampled row whose LHS class is a singleton never contributes a
	// violation, so the denominator is every sampled row, not just the ones
	// that landed in a non-singleton class above.
	return float64(violating) / float64(len(inSample)), nil
}

// pliOrWholeTable special-cases the level-0 FD (lhs = empty set, "is rhs
// constant"): the empty-set PLI is the single whole-table class and is never
// stored in the cache, per the cache's EmptyColumnSet contract.
func pliOrWholeTable(lhs colset.Set, d dataset.Dataset, c *cache.Cache) (wholeTablePLI, error) {
	if lhs.IsEmpty() {
		n := d.RowCount()
		rows := make([]uint, n)

		for i := range rows {
			rows[i] = uint(i)
		}

		return wholeTablePLI{[][]uint{rows}}, nil
	}

	p, err := c.GetPLI(lhs)
	if err != nil {
		return wholeTablePLI{}, err
	}

	return wholeTablePLI{p.Classes()}, nil
}

// wholeTablePLI adapts either a cached multi-column PLI or the synthetic
// empty-set "whole table" partition to the same Classes() shape.
type wholeTablePLI struct {
	classes [][]uint
}

// Classes returns the equivalence classes of this adapted PLI.
func (w wholeTablePLI) Classes() [][]uint {
	return w.classes
}

// rowToClassLabel builds an auxiliary row -> class-index lookup from a PLI,
// the same device PLI.Intersect uses, so membership-in-a-class can be
// tested in O(1) per row.
func rowToClassLabel(p interface{ Classes() [][]uint }) map[uint]int {
	m := make(map[uint]int)

	for classIdx, class := range p.Classes() {
		for _, row := range class {
			m[row] = classIdx
		}
	}

	return m
}

// topOf returns the size of the largest sub-group of class when further
// partitioned by rowToAClass; rows absent from rowToAClass are singletons
// under a and each contribute a sub-group of size 1.
func topOf(class []uint, rowToAClass map[uint]int) uint64 {
	counts := make(map[int]uint64)

	var best uint64

	for _, row := range class {
		label, grouped := rowToAClass[row]
		if !grouped {
			// singleton under a: its own sub-group of size 1
			if best < 1 {
				best = 1
			}

			continue
		}

		counts[label]++
		if counts[label] > best {
			best = counts[label]
		}
	}

	return best
}
