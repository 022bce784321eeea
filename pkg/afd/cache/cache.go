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

// Package cache memoizes PLIs keyed by column set, building higher-arity
// PLIs by intersecting smaller ones already in the cache.
package cache

import (
	"container/list"
	"fmt"
	"sync"

	"github.com/afdscan/afd-core/pkg/afd/afderr"
	"github.com/afdscan/afd-core/pkg/afd/colset"
	"github.com/afdscan/afd-core/pkg/afd/dataset"
	"github.com/afdscan/afd-core/pkg/afd/metrics"
	"github.com/afdscan/afd-core/pkg/afd/pli"
	"github.com/afdscan/afd-core/pkg/util/collection/hash"
	"github.com/afdscan/afd-core/pkg/util/math"
)

// Cache memoizes PLIs for a fixed dataset. Single-column PLIs are built
// eagerly at construction time and pinned (never evicted). For |X| > 1, the
// PLI of X is obtained by recursively fetching the PLI of X minus its
// lowest-indexed column and intersecting with that column's PLI; the policy
// is deterministic in X alone, so getPLI(X) is independent of call history.
//
// Safe for concurrent use: the only mutation is memoization, implemented as
// a compute-if-absent under a single mutex, matching the "read-only,
// thread-safe PLI cache" resource model the search relies on to let
// different RHSs run in parallel.
type Cache struct {
	dataset   dataset.Dataset
	collector metrics.Collector

	mu      sync.Mutex
	single  map[uint]*pli.PLI // pinned, never evicted
	memo    *hash.Map[colset.Set, *pli.PLI]
	lruElem map[uint64]*list.Element // by colset.Set.Hash(), for O(1) touch
	lru     *list.List               // front = most recently used; elements hold colset.Set
	maxSize uint                     // 0 = unbounded
}

// New constructs a Cache over d, building every single-column PLI
// immediately. maxSize bounds the number of multi-column PLIs retained
// before LRU eviction kicks in; 0 means unbounded. collector records memo
// hit/miss counts for the multi-column lookups; a nil collector is treated
// as metrics.Noop{}.
func New(d dataset.Dataset, maxSize uint, collector metrics.Collector) (*Cache, error) {
	if collector == nil {
		collector = metrics.Noop{}
	}

	c := &Cache{
		dataset:   d,
		collector: collector,
		single:    make(map[uint]*pli.PLI),
		memo:      hash.NewMap[colset.Set, *pli.PLI](0),
		lruElem:   make(map[uint64]*list.Element),
		lru:       list.New(),
		maxSize:   maxSize,
	}

	m := d.ColumnCount()
	for col := uint(0); col < m; col++ {
		p, err := pli.Build(col, d)
		if err != nil {
			return nil, err
		}

		c.single[col] = p
	}

	return c, nil
}

// GetPLI returns the PLI of X, building and memoizing it if necessary.
func (c *Cache) GetPLI(x colset.Set) (*pli.PLI, error) {
	if x.IsEmpty() {
		return nil, afderr.ErrEmptyColumnSet
	}

	m := c.dataset.ColumnCount()

	for i := x.Iter(); i.HasNext(); {
		if col := i.Next(); col >= m {
			return nil, fmt.Errorf("%w: %d", afderr.ErrInvalidColumn, col)
		}
	}

	if x.Cardinality() == 1 {
		col := x.Columns()[0]
		return c.single[col], nil
	}

	if p, ok := c.touch(x); ok {
		c.collector.CacheHit()
		return p, nil
	}

	c.collector.CacheMiss()

	// Recurse outside the lock: building is pure and may itself recurse
	// through GetPLI, so holding the lock here would deadlock on reentry.
	cols := x.Columns()
	lowest := cols[0]
	rest := x.Remove(lowest)

	restPLI, err := c.GetPLI(rest)
	if err != nil {
		return nil, err
	}

	colPLI := c.single[lowest]
	result := pli.Intersect(restPLI, colPLI)

	c.mu.Lock()
	defer c.mu.Unlock()

	if p, ok := c.memo.Get(x); ok {
		c.promote(x)
		return p, nil
	}

	c.memo.Insert(x, result)
	c.promote(x)
	c.evictIfNeeded()

	return result, nil
}

// touch looks up x and, if present, moves it to the front of the LRU list.
func (c *Cache) touch(x colset.Set) (*pli.PLI, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.memo.Get(x)
	if !ok {
		return nil, false
	}

	c.promote(x)

	return p, true
}

// promote marks x as most-recently-used. Must be called with mu held.
func (c *Cache) promote(x colset.Set) {
	key := x.Hash()
	if elem, ok := c.lruElem[key]; ok {
		c.lru.MoveToFront(elem)
		return
	}

	c.lruElem[key] = c.lru.PushFront(x)
}

// evictIfNeeded drops least-recently-used multi-column entries until the
// cache is back within maxSize. Must be called with mu held.
func (c *Cache) evictIfNeeded() {
	if c.maxSize == 0 {
		return
	}

	for uint(c.memo.Size()) > c.maxSize {
		back := c.lru.Back()
		if back == nil {
			return
		}

		victim := back.Value.(colset.Set)
		c.memo.Remove(victim)
		delete(c.lruElem, victim.Hash())
		c.lru.Remove(back)
	}
}

// Size returns the number of multi-column PLIs currently memoized.
func (c *Cache) Size() uint {
	c.mu.Lock()
	defer c.mu.Unlock()

	return uint(c.memo.Size())
}

// WorstCasePLICount returns 2^columnCount, the upper bound on distinct
// column-set PLIs a cache over this many columns could ever be asked to
// hold (every subset of the lattice, per the resource policy this cache's
// bounded mode exists to guard against).
func WorstCasePLICount(columnCount uint) uint64 {
	return math.PowUint64(2, uint64(columnCount))
}
