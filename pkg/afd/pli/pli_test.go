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
package pli

import (
	"sort"
	"testing"

	"github.com/afdscan/afd-core/pkg/afd/afderr"
	"github.com/afdscan/afd-core/pkg/afd/dataset"
	"github.com/stretchr/testify/require"
)

// canon renders a PLI's classes as a sorted set-of-sets, so tests can compare
// results regardless of internal class/row ordering.
func canon(p *PLI) [][]uint {
	classes := make([][]uint, len(p.classes))

	for i, c := range p.classes {
		cp := append([]uint(nil), c...)
		sort.Slice(cp, func(i, j int) bool { return cp[i] < cp[j] })
		classes[i] = cp
	}

	sort.Slice(classes, func(i, j int) bool {
		if len(classes[i]) != len(classes[j]) {
			return len(classes[i]) < len(classes[j])
		}

		for k := range classes[i] {
			if classes[i][k] != classes[j][k] {
				return classes[i][k] < classes[j][k]
			}
		}

		return false
	})

	return classes
}

func s4Dataset(t *testing.T) dataset.Dataset {
	t.Helper()

	ds, err := dataset.NewMemory([]string{"c0", "c1"}, [][]string{
		{"A", "A", "B", "B"},
		{"1", "2", "1", "2"},
	})
	require.NoError(t, err)

	return ds
}

func TestBuildDropsSingletons(t *testing.T) {
	ds := s4Dataset(t)

	p0, err := Build(0, ds)
	require.NoError(t, err)
	require.Equal(t, [][]uint{{0, 1}, {2, 3}}, canon(p0))

	p1, err := Build(1, ds)
	require.NoError(t, err)
	require.Equal(t, [][]uint{{0, 2}, {1, 3}}, canon(p1))
}

func TestBuildInvalidColumn(t *testing.T) {
	ds := s4Dataset(t)

	_, err := Build(5, ds)
	require.ErrorIs(t, err, afderr.ErrInvalidColumn)
}

func TestIntersectS4(t *testing.T) {
	ds := s4Dataset(t)

	p0, _ := Build(0, ds)
	p1, _ := Build(1, ds)

	joined := Intersect(p0, p1)
	require.Empty(t, joined.Classes(), "every class should be a singleton once both columns are fixed")
}

func TestIntersectCommutative(t *testing.T) {
	ds, err := dataset.NewMemory([]string{"c0", "c1"}, [][]string{
		{"A", "A", "A", "B"},
		{"X", "X", "Y", "Y"},
	})
	require.NoError(t, err)

	p0, _ := Build(0, ds)
	p1, _ := Build(1, ds)

	ab := Intersect(p0, p1)
	ba := Intersect(p1, p0)

	require.Equal(t, canon(ab), canon(ba))
}

func TestIntersectAssociative(t *testing.T) {
	ds, err := dataset.NewMemory([]string{"c0", "c1", "c2"}, [][]string{
		{"A", "A", "A", "B", "B", "B"},
		{"X", "X", "Y", "X", "X", "Y"},
		{"1", "2", "1", "1", "2", "2"},
	})
	require.NoError(t, err)

	p0, _ := Build(0, ds)
	p1, _ := Build(1, ds)
	p2, _ := Build(2, ds)

	left := Intersect(Intersect(p0, p1), p2)
	right := Intersect(p0, Intersect(p1, p2))

	require.Equal(t, canon(left), canon(right))
}

func TestKeyCountAndEntropyContribution(t *testing.T) {
	ds := s4Dataset(t)

	p0, _ := Build(0, ds)
	require.Equal(t, uint(2), p0.KeyCount())
	// two classes of size 2: 2*1 + 2*1 = 4
	require.Equal(t, uint64(4), p0.EntropyContribution())
}
