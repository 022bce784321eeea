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

// Package discover is the public entry point of the AFD engine: Discover
// wires a dataset, config and collaborators through one SearchSpace per RHS
// column and collects every minimal approximate functional dependency.
package discover

import (
	"fmt"

	"github.com/afdscan/afd-core/pkg/afd/afderr"
	"github.com/afdscan/afd-core/pkg/afd/alog"
	"github.com/afdscan/afd-core/pkg/afd/measure"
	"github.com/afdscan/afd-core/pkg/afd/metrics"
)

// Config holds every collaborator and tunable discover() needs.
type Config struct {
	// MaxError is the g3 tolerance epsilon, required to be in [0,1].
	MaxError float64
	// Measure computes/estimates g3; defaults to measure.G3{} when nil.
	Measure measure.ErrorMeasure
	// Sampler drives estimate()'s row sampling; defaults to a seeded
	// UniformSampler when nil.
	Sampler measure.SamplingStrategy
	// SampleSize is the number of rows estimate() draws per candidate.
	SampleSize uint
	// CacheSize bounds the PLI cache's multi-column entries; 0 is unbounded.
	CacheSize uint
	// Parallel caps how many RHS searches run concurrently; 0 or 1 means
	// sequential.
	Parallel uint
	// Logger receives start/peak/minimal-FD events; defaults to a Noop
	// logger when nil.
	Logger alog.Logger
	// Metrics receives per-RHS timing and cache hit/miss events; defaults
	// to metrics.Noop{} when nil.
	Metrics metrics.Collector
	// RHS restricts the search to this subset of columns; nil/empty means
	// every column 0 <= a < m.
	RHS []uint
}

// Validate checks Config's numeric invariants: MaxError outside [0,1] is an
// ErrNumericDomain error. Discover calls Validate before doing any other
// work.
func (c Config) Validate() error {
	if c.MaxError < 0 || c.MaxError > 1 {
		return fmt.Errorf("%w: max error %f not in [0,1]", afderr.ErrNumericDomain, c.MaxError)
	}

	return nil
}

func (c Config) withDefaults() Config {
	if c.Measure == nil {
		c.Measure = measure.G3{}
	}

	if c.Sampler == nil {
		c.Sampler = measure.NewUniformSampler(1, 2)
	}

	if c.SampleSize == 0 {
		c.SampleSize = 100
	}

	if c.Logger == nil {
		c.Logger = alog.Noop{}
	}

	if c.Metrics == nil {
		c.Metrics = metrics.Noop{}
	}

	return c
}
