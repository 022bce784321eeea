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
package measure

import (
	"testing"

	"github.com/afdscan/afd-core/pkg/afd/cache"
	"github.com/afdscan/afd-core/pkg/afd/colset"
	"github.com/afdscan/afd-core/pkg/afd/dataset"
	"github.com/afdscan/afd-core/pkg/afd/metrics"
	"github.com/stretchr/testify/require"
)

func TestG3ExactFD(t *testing.T) {
	// S2: rows [(A,1),(A,1),(B,2)], column 0 uniquely determines column 1.
	ds, err := dataset.NewMemory([]string{"c0", "c1"}, [][]string{
		{"A", "A", "B"},
		{"1", "1", "2"},
	})
	require.NoError(t, err)

	c, err := cache.New(ds, 0, metrics.Noop{})
	require.NoError(t, err)

	g := G3{}

	e, err := g.CalculateError(colset.Of(0), 1, ds, c)
	require.NoError(t, err)
	require.Equal(t, 0.0, e)
}

func TestG3ApproximateS3(t *testing.T) {
	ds, err := dataset.NewMemory([]string{"c0", "c1"}, [][]string{
		{"A", "A", "A", "B"},
		{"1", "1", "2", "3"},
	})
	require.NoError(t, err)

	c, err := cache.New(ds, 0, metrics.Noop{})
	require.NoError(t, err)

	g := G3{}

	e, err := g.CalculateError(colset.Of(0), 1, ds, c)
	require.NoError(t, err)
	require.InDelta(t, 0.25, e, 1e-9)
}

func TestG3ConstantColumnEmptyLHS(t *testing.T) {
	ds, err := dataset.NewMemory([]string{"c0", "c1"}, [][]string{
		{"A", "A", "A"},
		{"X", "Y", "Z"},
	})
	require.NoError(t, err)

	c, err := cache.New(ds, 0, metrics.Noop{})
	require.NoError(t, err)

	g := G3{}

	e, err := g.CalculateError(colset.Empty(), 0, ds, c)
	require.NoError(t, err)
	require.Equal(t, 0.0, e, "column 0 is constant, so {} -> 0 is exact")
}

func TestUniformSamplerDeterministic(t *testing.T) {
	s1 := NewUniformSampler(1, 2)
	s2 := NewUniformSampler(1, 2)

	a := s1.Sample(100, 10)
	b := s2.Sample(100, 10)

	require.Equal(t, a, b)
}

func TestUniformSamplerNoDuplicatesOrOutOfRange(t *testing.T) {
	s := NewUniformSampler(7, 42)
	rows := s.Sample(20, 20)

	require.Len(t, rows, 20)

	seen := make(map[uint]bool)
	for _, r := range rows {
		require.False(t, seen[r], "duplicate row %d", r)
		require.Less(t, r, uint(20))

		seen[r] = true
	}
}

func TestEstimateErrorIsPlausible(t *testing.T) {
	ds, err := dataset.NewMemory([]string{"c0", "c1"}, [][]string{
		{"A", "A", "A", "B"},
		{"1", "1", "2", "3"},
	})
	require.NoError(t, err)

	c, err := cache.New(ds, 0, metrics.Noop{})
	require.NoError(t, err)

	g := G3{}
	sampler := NewUniformSampler(3, 9)

	e, err := g.EstimateError(colset.Of(0), 1, ds, c, sampler, 4)
	require.NoError(t, err)
	require.GreaterOrEqual(t, e, 0.0)
	require.LessOrEqual(t, e, 1.0)
}
