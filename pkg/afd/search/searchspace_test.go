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
package search

import (
	"testing"

	"github.com/afdscan/afd-core/pkg/afd/cache"
	"github.com/afdscan/afd-core/pkg/afd/colset"
	"github.com/afdscan/afd-core/pkg/afd/dataset"
	"github.com/afdscan/afd-core/pkg/afd/measure"
	"github.com/afdscan/afd-core/pkg/afd/metrics"
	"github.com/afdscan/afd-core/pkg/util"
	"github.com/stretchr/testify/require"
)

func newTestSpace(
	t *testing.T, ds dataset.Dataset, rhs uint, columnCount uint, maxError float64,
) *SearchSpace {
	t.Helper()

	c, err := cache.New(ds, 0, metrics.Noop{})
	require.NoError(t, err)

	return New(rhs, columnCount, ds, c, measure.G3{}, measure.NewUniformSampler(1, 2), 50, maxError, nil, nil)
}

func containsFD(fds []FunctionalDependency, lhs colset.Set, rhs uint) bool {
	for _, fd := range fds {
		if fd.RHS == rhs && fd.LHS.Equals(lhs) {
			return true
		}
	}

	return false
}

func TestDiscoverS1ConstantColumn(t *testing.T) {
	ds, err := dataset.NewMemory([]string{"c0", "c1"}, [][]string{
		{"A", "A", "A"},
		{"X", "Y", "Z"},
	})
	require.NoError(t, err)

	sp := newTestSpace(t, ds, 0, 2, 0)

	fds, err := sp.Discover()
	require.NoError(t, err)
	require.Len(t, fds, 1)
	require.True(t, fds[0].LHS.IsEmpty())
	require.Equal(t, uint(0), fds[0].RHS)
}

func TestDiscoverS2DuplicateRows(t *testing.T) {
	ds, err := dataset.NewMemory([]string{"c0", "c1"}, [][]string{
		{"A", "A", "B"},
		{"1", "1", "2"},
	})
	require.NoError(t, err)

	sp := newTestSpace(t, ds, 1, 2, 0)

	fds, err := sp.Discover()
	require.NoError(t, err)
	require.True(t, containsFD(fds, colset.Of(0), 1))
}

func TestDiscoverS3Approximate(t *testing.T) {
	ds, err := dataset.NewMemory([]string{"c0", "c1"}, [][]string{
		{"A", "A", "A", "B"},
		{"1", "1", "2", "3"},
	})
	require.NoError(t, err)

	spExact := newTestSpace(t, ds, 1, 2, 0)

	fds, err := spExact.Discover()
	require.NoError(t, err)
	require.False(t, containsFD(fds, colset.Of(0), 1))

	spApprox := newTestSpace(t, ds, 1, 2, 0.25)

	fds, err = spApprox.Discover()
	require.NoError(t, err)
	require.True(t, containsFD(fds, colset.Of(0), 1))

	for _, fd := range fds {
		if fd.LHS.Equals(colset.Of(0)) {
			require.InDelta(t, 0.25, fd.Error, 1e-9)
		}
	}
}

func TestDiscoverS5Minimality(t *testing.T) {
	// column 0 determines column 3 exactly; column 1 is along for the ride
	// and must not appear in the emitted LHS.
	ds, err := dataset.NewMemory([]string{"c0", "c1", "c2", "c3"}, [][]string{
		{"A", "A", "B", "B"},
		{"X", "Y", "X", "Y"},
		{"p", "q", "r", "s"},
		{"1", "1", "2", "2"},
	})
	require.NoError(t, err)

	sp := newTestSpace(t, ds, 3, 4, 0)

	fds, err := sp.Discover()
	require.NoError(t, err)
	require.True(t, containsFD(fds, colset.Of(0), 3))
	require.False(t, containsFD(fds, colset.Of(0, 1), 3))
}

func TestDiscoverS6EscapeCorrectness(t *testing.T) {
	// Two disjoint minimal FDs for the same RHS: {0,1} -> 4 and {2,3} -> 4.
	// Neither column alone, nor either cross-pair {0,3}/{1,2}, determines
	// column 4 -- only escaping past the first-found peak surfaces the
	// second one.
	ds, err := dataset.NewMemory([]string{"c0", "c1", "c2", "c3", "c4"}, [][]string{
		{"A", "A", "A", "A", "B", "B"},
		{"P", "P", "Q", "Q", "P", "P"},
		{"X", "X", "Y", "Y", "X", "X"},
		{"R", "R", "R", "R", "S", "S"},
		{"1", "1", "2", "2", "3", "3"},
	})
	require.NoError(t, err)

	sp := newTestSpace(t, ds, 4, 5, 0)

	fds, err := sp.Discover()
	require.NoError(t, err)
	require.True(t, containsFD(fds, colset.Of(0, 1), 4))
	require.True(t, containsFD(fds, colset.Of(2, 3), 4))
}

func TestDiscoverInvariantsHoldOnRandomish(t *testing.T) {
	// Invariants 1 and 2 below are structural guarantees of the search
	// itself (every emitted FD validates, every proper subset doesn't), not
	// properties of any particular dataset, so they are checked against a
	// freshly randomized table each run rather than one fixed literal.
	const rows = 8

	alphabet := []string{"A", "B", "C"}

	ds, err := dataset.NewMemory([]string{"c0", "c1", "c2"}, [][]string{
		util.GenerateRandomElements(rows, alphabet),
		util.GenerateRandomElements(rows, alphabet),
		util.GenerateRandomElements(rows, alphabet),
	})
	require.NoError(t, err)

	sp := newTestSpace(t, ds, 2, 3, 0)

	fds, err := sp.Discover()
	require.NoError(t, err)

	g := measure.G3{}
	c, err := cache.New(ds, 0, metrics.Noop{})
	require.NoError(t, err)

	for _, fd := range fds {
		e, err := g.CalculateError(fd.LHS, fd.RHS, ds, c)
		require.NoError(t, err)
		require.LessOrEqual(t, e, 0.0+1e-9, "invariant 1: emitted FD must validate within epsilon")

		for _, col := range fd.LHS.Columns() {
			sub := fd.LHS.Remove(col)
			if sub.IsEmpty() {
				continue
			}

			subErr, err := g.CalculateError(sub, fd.RHS, ds, c)
			require.NoError(t, err)
			require.Greater(t, subErr, 0.0, "invariant 2: every proper non-empty subset must exceed epsilon")
		}
	}
}

func TestAntiChainInvariant(t *testing.T) {
	a := newAntiChain()

	require.True(t, a.insertMinimal(colset.Of(0, 1)))
	require.True(t, a.insertMinimal(colset.Of(0)))

	// {0} subsumes {0,1}, so the wider set must have been dropped.
	require.Len(t, a.Members(), 1)
	require.True(t, a.Members()[0].Equals(colset.Of(0)))

	require.False(t, a.insertMinimal(colset.Of(0, 2)))
}

func TestNodeRoundTripLaw(t *testing.T) {
	ds, err := dataset.NewMemory([]string{"c0", "c1"}, [][]string{
		{"A", "A", "A", "B"},
		{"1", "1", "2", "3"},
	})
	require.NoError(t, err)

	c, err := cache.New(ds, 0, metrics.Noop{})
	require.NoError(t, err)

	n := NewNode(colset.Of(0))
	sampler := measure.NewUniformSampler(1, 2)

	require.NoError(t, n.Estimate(1, ds, c, measure.G3{}, sampler, 4))
	require.Equal(t, Estimated, n.State())

	require.NoError(t, n.Validate(1, ds, c, measure.G3{}))
	require.Equal(t, Validated, n.State())
	require.InDelta(t, 0.25, n.Error(), 1e-9)

	// second Validate is a no-op per the round-trip law
	n.err = -1
	require.NoError(t, n.Validate(1, ds, c, measure.G3{}))
	require.Equal(t, -1.0, n.Error())
}
