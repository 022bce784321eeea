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
package discover

import (
	"fmt"
	"sync"
	"time"

	"github.com/afdscan/afd-core/pkg/afd/afderr"
	"github.com/afdscan/afd-core/pkg/afd/cache"
	"github.com/afdscan/afd-core/pkg/afd/dataset"
	"github.com/afdscan/afd-core/pkg/afd/search"
)

// FunctionalDependency is a discovered minimal X -> a dependency, re-exported
// from search so callers of this package never need to import it directly.
type FunctionalDependency = search.FunctionalDependency

// Discover is the engine's single public entry point: it enumerates every
// minimal LHS X for each requested RHS column such that g3(X -> a) <= ε,
// running one SearchSpace per RHS (in parallel when config.Parallel > 1)
// over a shared, read-only PLI cache.
func Discover(d dataset.Dataset, config Config) ([]FunctionalDependency, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	config = config.withDefaults()

	m := d.ColumnCount()
	if m == 0 {
		return nil, nil
	}

	rhsColumns := config.RHS
	if len(rhsColumns) == 0 {
		rhsColumns = make([]uint, m)
		for i := range rhsColumns {
			rhsColumns[i] = uint(i)
		}
	}

	for _, rhs := range rhsColumns {
		if rhs >= m {
			return nil, fmt.Errorf("%w: %d", afderr.ErrInvalidColumn, rhs)
		}
	}

	plis, err := cache.New(d, config.CacheSize, config.Metrics)
	if err != nil {
		return nil, err
	}

	config.Logger.Debugf("worst-case PLI count for %d columns: %d", m, cache.WorstCasePLICount(m))

	workers := config.Parallel
	if workers == 0 {
		workers = 1
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		results  []FunctionalDependency
		firstErr error
	)

	sem := make(chan struct{}, workers)

	for _, rhs := range rhsColumns {
		rhs := rhs

		wg.Add(1)
		sem <- struct{}{}

		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			config.Metrics.RHSStarted(rhs)
			start := time.Now()

			sp := search.New(
				rhs, m, d, plis, config.Measure, config.Sampler, config.SampleSize, config.MaxError,
				config.Logger, nil,
			)

			fds, err := sp.Discover()

			config.Metrics.RHSFinished(rhs, time.Since(start))

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				if firstErr == nil {
					firstErr = err
				}

				return
			}

			for _, fd := range fds {
				config.Logger.Infof("minimal FD found: %s -> %d (error=%f)", fd.LHS, fd.RHS, fd.Error)
			}

			results = append(results, fds...)
		}()
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	return results, nil
}
