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

// Package metrics provides the instrumentation collector injected into a
// discovery run, adapted from the teacher's process-wide PerfStats into a
// per-run, non-singleton handle.
package metrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/afdscan/afd-core/pkg/afd/alog"
	"github.com/afdscan/afd-core/pkg/util"
	"github.com/afdscan/afd-core/pkg/util/math"
)

// Collector records per-RHS timings and PLI cache hit/miss counts for one
// discovery run. It is injected through Config rather than held as a
// process-wide global, so multiple concurrent discover() calls (e.g. in
// tests) do not share state.
type Collector interface {
	// RHSStarted marks the beginning of the search for one RHS column.
	RHSStarted(rhs uint)
	// RHSFinished records how long the search for rhs took.
	RHSFinished(rhs uint, elapsed time.Duration)
	// CacheHit records a PLI cache memo hit.
	CacheHit()
	// CacheMiss records a PLI cache memo miss (a PLI had to be built).
	CacheMiss()
}

// Noop discards every measurement. The zero value is ready to use.
type Noop struct{}

// RHSStarted implements Collector.
func (Noop) RHSStarted(uint) {}

// RHSFinished implements Collector.
func (Noop) RHSFinished(uint, time.Duration) {}

// CacheHit implements Collector.
func (Noop) CacheHit() {}

// CacheMiss implements Collector.
func (Noop) CacheMiss() {}

// Basic is a Collector built directly on the teacher's util.PerfStats
// (rather than reimplementing its MemStats-diff-plus-elapsed-time snapshot),
// with hit/miss counters accumulated under a mutex and per-RHS timings
// logged as they complete.
type Basic struct {
	logger alog.Logger
	perf   *util.PerfStats

	mu        sync.Mutex
	hits      uint64
	misses    uint64
	rhsTiming map[uint]time.Duration
}

// NewBasic constructs a Basic collector which logs through logger.
func NewBasic(logger alog.Logger) *Basic {
	return &Basic{
		logger:    logger,
		perf:      util.NewPerfStats(),
		rhsTiming: make(map[uint]time.Duration),
	}
}

// RHSStarted implements Collector.
func (b *Basic) RHSStarted(rhs uint) {
	b.logger.Debugf("rhs %d: search started", rhs)
}

// RHSFinished implements Collector.
func (b *Basic) RHSFinished(rhs uint, elapsed time.Duration) {
	b.mu.Lock()
	b.rhsTiming[rhs] = elapsed
	b.mu.Unlock()

	b.logger.Debugf("rhs %d: search took %s", rhs, elapsed)
}

// CacheHit implements Collector.
func (b *Basic) CacheHit() {
	b.mu.Lock()
	b.hits++
	b.mu.Unlock()
}

// CacheMiss implements Collector.
func (b *Basic) CacheMiss() {
	b.mu.Lock()
	b.misses++
	b.mu.Unlock()
}

// String renders a one-line summary: the underlying PerfStats snapshot plus
// this run's cache hit/miss counts and their total.
func (b *Basic) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	total := math.Sum(b.hits, b.misses)

	return fmt.Sprintf("%s cache_hits=%d cache_misses=%d cache_lookups=%d", b.perf.String(), b.hits, b.misses, total)
}
