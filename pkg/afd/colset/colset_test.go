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
package colset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmptySetHasNoColumns(t *testing.T) {
	s := Empty()
	require.True(t, s.IsEmpty())
	require.Equal(t, uint(0), s.Cardinality())
}

func TestInsertAndContains(t *testing.T) {
	s := Of(1, 3, 5)

	require.True(t, s.Contains(1))
	require.True(t, s.Contains(3))
	require.True(t, s.Contains(5))
	require.False(t, s.Contains(2))
	require.Equal(t, uint(3), s.Cardinality())
}

func TestInsertionOrderIrrelevant(t *testing.T) {
	a := Of(1, 2, 3)
	b := Of(3, 1, 2)

	require.True(t, a.Equals(b))
	require.Equal(t, a.Hash(), b.Hash())
}

func TestRemove(t *testing.T) {
	s := Of(1, 2, 3).Remove(2)

	require.False(t, s.Contains(2))
	require.Equal(t, uint(2), s.Cardinality())
}

func TestUnion(t *testing.T) {
	a := Of(1, 2)
	b := Of(2, 3)
	u := a.Union(b)

	require.True(t, u.Equals(Of(1, 2, 3)))
	// originals untouched
	require.Equal(t, uint(2), a.Cardinality())
}

func TestDifference(t *testing.T) {
	a := Of(1, 2, 3)
	b := Of(2)
	d := a.Difference(b)

	require.True(t, d.Equals(Of(1, 3)))
}

func TestSubsetSuperset(t *testing.T) {
	small := Of(1)
	big := Of(1, 2)

	require.True(t, small.IsSubsetOf(big))
	require.True(t, big.IsSupersetOf(small))
	require.False(t, big.IsSubsetOf(small))
}

func TestColumnsAreSortedAscending(t *testing.T) {
	s := Of(5, 1, 3)

	require.Equal(t, []uint{1, 3, 5}, s.Columns())
}

func TestStringRendering(t *testing.T) {
	require.Equal(t, "{}", Empty().String())
	require.Equal(t, "{1,2,3}", Of(3, 1, 2).String())
}
