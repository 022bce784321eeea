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
package cache

import (
	"testing"
	"time"

	"github.com/afdscan/afd-core/pkg/afd/afderr"
	"github.com/afdscan/afd-core/pkg/afd/colset"
	"github.com/afdscan/afd-core/pkg/afd/dataset"
	"github.com/afdscan/afd-core/pkg/afd/metrics"
	"github.com/stretchr/testify/require"
)

// countingCollector records CacheHit/CacheMiss counts so tests can assert on
// them without pulling in the logrus-backed Basic collector.
type countingCollector struct {
	hits   int
	misses int
}

func (c *countingCollector) RHSStarted(uint)                 {}
func (c *countingCollector) RHSFinished(uint, time.Duration) {}
func (c *countingCollector) CacheHit()                       { c.hits++ }
func (c *countingCollector) CacheMiss()                      { c.misses++ }

var _ metrics.Collector = (*countingCollector)(nil)

func newTestDataset(t *testing.T) dataset.Dataset {
	t.Helper()

	ds, err := dataset.NewMemory([]string{"c0", "c1", "c2"}, [][]string{
		{"A", "A", "A", "B", "B", "B"},
		{"X", "X", "Y", "X", "X", "Y"},
		{"1", "2", "1", "1", "2", "2"},
	})
	require.NoError(t, err)

	return ds
}

func TestGetPLIEmptySet(t *testing.T) {
	ds := newTestDataset(t)
	c, err := New(ds, 0, metrics.Noop{})
	require.NoError(t, err)

	_, err = c.GetPLI(colset.Empty())
	require.ErrorIs(t, err, afderr.ErrEmptyColumnSet)
}

func TestGetPLIInvalidColumn(t *testing.T) {
	ds := newTestDataset(t)
	c, err := New(ds, 0, metrics.Noop{})
	require.NoError(t, err)

	_, err = c.GetPLI(colset.Of(99))
	require.ErrorIs(t, err, afderr.ErrInvalidColumn)
}

func TestGetPLIDeterminism(t *testing.T) {
	ds := newTestDataset(t)
	c, err := New(ds, 0, metrics.Noop{})
	require.NoError(t, err)

	x := colset.Of(0, 1, 2)

	p1, err := c.GetPLI(x)
	require.NoError(t, err)

	p2, err := c.GetPLI(x)
	require.NoError(t, err)

	require.Same(t, p1, p2, "same instance should be returned for equal X")
}

func TestGetPLIPathIndependence(t *testing.T) {
	ds := newTestDataset(t)
	c1, err := New(ds, 0, metrics.Noop{})
	require.NoError(t, err)
	c2, err := New(ds, 0, metrics.Noop{})
	require.NoError(t, err)

	// c1 builds {0,1,2} directly; c2 warms {0,1} first.
	_, err = c2.GetPLI(colset.Of(0, 1))
	require.NoError(t, err)

	p1, err := c1.GetPLI(colset.Of(0, 1, 2))
	require.NoError(t, err)

	p2, err := c2.GetPLI(colset.Of(0, 1, 2))
	require.NoError(t, err)

	require.ElementsMatch(t, p1.Classes(), p2.Classes())
}

func TestBoundedCacheEvictsButRebuilds(t *testing.T) {
	ds := newTestDataset(t)
	c, err := New(ds, 1, metrics.Noop{})
	require.NoError(t, err)

	_, err = c.GetPLI(colset.Of(0, 1))
	require.NoError(t, err)
	require.Equal(t, uint(1), c.Size())

	_, err = c.GetPLI(colset.Of(1, 2))
	require.NoError(t, err)
	require.Equal(t, uint(1), c.Size(), "bounded cache should evict to stay within maxSize")

	// Evicted entry must still be rebuildable transparently.
	p, err := c.GetPLI(colset.Of(0, 1))
	require.NoError(t, err)
	require.NotNil(t, p)
}

func TestSingleColumnPLIsPinned(t *testing.T) {
	ds := newTestDataset(t)
	c, err := New(ds, 1, metrics.Noop{})
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		_, err = c.GetPLI(colset.Of(uint(i % 3)))
		require.NoError(t, err)
	}
	// Multi-column memo should remain untouched by single-column lookups.
	require.Equal(t, uint(0), c.Size())
}

func TestCacheRecordsHitsAndMisses(t *testing.T) {
	ds := newTestDataset(t)
	collector := &countingCollector{}
	c, err := New(ds, 0, collector)
	require.NoError(t, err)

	x := colset.Of(0, 1)

	_, err = c.GetPLI(x)
	require.NoError(t, err)
	require.Equal(t, 0, collector.hits, "first request for a multi-column set must miss")
	require.Equal(t, 1, collector.misses)

	_, err = c.GetPLI(x)
	require.NoError(t, err)
	require.Equal(t, 1, collector.hits, "second request for the same set must hit the memo")
	require.Equal(t, 1, collector.misses)
}
