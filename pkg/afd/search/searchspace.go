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
	"github.com/afdscan/afd-core/pkg/afd/alog"
	"github.com/afdscan/afd-core/pkg/afd/cache"
	"github.com/afdscan/afd-core/pkg/afd/colset"
	"github.com/afdscan/afd-core/pkg/afd/dataset"
	"github.com/afdscan/afd-core/pkg/afd/measure"
	"github.com/afdscan/afd-core/pkg/util/collection/hash"
)

// FunctionalDependency is one discovered minimal LHS -> RHS dependency,
// annotated with its validated g3 error.
type FunctionalDependency struct {
	LHS   colset.Set
	RHS   uint
	Error float64
}

// SearchSpace holds all per-RHS search state: the node cache, the two
// pruning antichains, the set of discovered peaks, and the launchpad
// frontier. One SearchSpace is built and run per RHS column.
type SearchSpace struct {
	rhs         uint
	columnCount uint
	universe    colset.Set
	dataset     dataset.Dataset
	cache       *cache.Cache
	measure     measure.ErrorMeasure
	sampler     measure.SamplingStrategy
	sampleSize  uint
	maxError    float64
	logger      alog.Logger
	cancelled   func() bool

	nodeMap    *hash.Map[colset.Set, *Node]
	minValidFD *antiChain
	maxNonFD   *antiChain
	peaks      *hash.Set[colset.Set]
	launchpads *priorityQueue
}

// New builds a SearchSpace for rhs over a dataset with columnCount columns.
// A nil logger discards every log event. cancelled, if non-nil, is polled
// between main-loop iterations to support cooperative early termination
// (e.g. a context deadline in the caller).
func New(
	rhs uint, columnCount uint, d dataset.Dataset, c *cache.Cache, m measure.ErrorMeasure, sampler measure.SamplingStrategy,
	sampleSize uint, maxError float64, logger alog.Logger, cancelled func() bool,
) *SearchSpace {
	universe := colset.Empty()
	for i := uint(0); i < columnCount; i++ {
		universe = universe.Insert(i)
	}

	if logger == nil {
		logger = alog.Noop{}
	}

	if cancelled == nil {
		cancelled = func() bool { return false }
	}

	return &SearchSpace{
		rhs:         rhs,
		columnCount: columnCount,
		universe:    universe,
		dataset:     d,
		cache:       c,
		measure:     m,
		sampler:     sampler,
		sampleSize:  sampleSize,
		maxError:    maxError,
		logger:      logger,
		cancelled:   cancelled,
		nodeMap:     hash.NewMap[colset.Set, *Node](0),
		minValidFD:  newAntiChain(),
		maxNonFD:    newAntiChain(),
		peaks:       hash.NewSet[colset.Set](0),
		launchpads:  newPriorityQueue(),
	}
}

// getOrCreateNode returns the cached Node for lhs, creating and memoizing a
// fresh Unknown node on first reference.
func (s *SearchSpace) getOrCreateNode(lhs colset.Set) *Node {
	if n, ok := s.nodeMap.Get(lhs); ok {
		return n
	}

	n := NewNode(lhs)
	s.nodeMap.Insert(lhs, n)

	return n
}

func (s *SearchSpace) estimate(n *Node) error {
	return n.Estimate(s.rhs, s.dataset, s.cache, s.measure, s.sampler, s.sampleSize)
}

func (s *SearchSpace) validate(n *Node) error {
	return n.Validate(s.rhs, s.dataset, s.cache, s.measure)
}

func (s *SearchSpace) checkValidPrune(x colset.Set) bool {
	return s.minValidFD.containsSubsetOf(x)
}

func (s *SearchSpace) checkInvalidPrune(x colset.Set) bool {
	return s.maxNonFD.containsSupersetOf(x)
}

// children returns the nodes reachable from lhs by adding exactly one
// column not already present in lhs and not equal to the RHS.
func (s *SearchSpace) children(lhs colset.Set) []*Node {
	out := make([]*Node, 0, s.columnCount)

	for i := uint(0); i < s.columnCount; i++ {
		if i == s.rhs || lhs.Contains(i) {
			continue
		}

		out = append(out, s.getOrCreateNode(lhs.Insert(i)))
	}

	return out
}

// parents returns the nodes reachable from lhs by removing exactly one of
// its columns: its one-level-down neighbors in the lattice.
func (s *SearchSpace) parents(lhs colset.Set) []*Node {
	cols := lhs.Columns()
	out := make([]*Node, 0, len(cols))

	for _, col := range cols {
		out = append(out, s.getOrCreateNode(lhs.Remove(col)))
	}

	return out
}

// Discover runs the full root-check / main-loop / escape algorithm and
// returns every minimal X -> rhs dependency with g3 error <= maxError.
func (s *SearchSpace) Discover() ([]FunctionalDependency, error) {
	s.logger.Debugf("rhs %d: search started over %d columns", s.rhs, s.columnCount)

	root := s.getOrCreateNode(colset.Empty())
	if err := s.validate(root); err != nil {
		return nil, err
	}

	if root.IsValid(s.maxError) {
		s.minValidFD.insertMinimal(colset.Empty())
		s.logger.Infof("rhs %d: minimal FD found {} -> %d (error=%f)", s.rhs, s.rhs, root.Error())

		return s.collectResults(), nil
	}

	for i := uint(0); i < s.columnCount; i++ {
		if i == s.rhs {
			continue
		}

		n := s.getOrCreateNode(colset.Of(i))
		if err := s.estimate(n); err != nil {
			return nil, err
		}

		s.launchpads.Push(n)
	}

	for s.launchpads.Len() > 0 {
		if s.cancelled() {
			break
		}

		l := s.launchpads.Pop()

		if s.checkValidPrune(l.LHS()) {
			continue
		}

		var peak *Node

		switch {
		case s.checkInvalidPrune(l.LHS()):
			// l is already known invalid via an existing maxNonFD member;
			// no peak to find above it on this visit.
		default:
			if err := s.validate(l); err != nil {
				return nil, err
			}

			if l.IsValid(s.maxError) {
				peak = l
			} else {
				p, highestInvalid, err := s.ascend(l)
				if err != nil {
					return nil, err
				}

				if highestInvalid != nil {
					s.maxNonFD.insertMaximal(highestInvalid.LHS())
				}

				peak = p
			}
		}

		if peak != nil {
			s.peaks.Insert(peak.LHS())
			s.logger.Infof("rhs %d: peak found %s (error=%f)", s.rhs, peak.LHS(), peak.Error())

			if err := s.trickleDown(peak); err != nil {
				return nil, err
			}
		}

		newLaunchpads, err := s.escape(l.LHS())
		if err != nil {
			return nil, err
		}

		for _, lp := range newLaunchpads {
			n := s.getOrCreateNode(lp)
			if n.State() == Unknown {
				if err := s.estimate(n); err != nil {
					return nil, err
				}
			}

			s.launchpads.Push(n)
		}
	}

	return s.collectResults(), nil
}

func (s *SearchSpace) collectResults() []FunctionalDependency {
	members := s.minValidFD.Members()
	out := make([]FunctionalDependency, 0, len(members))

	for _, lhs := range members {
		n := s.getOrCreateNode(lhs)
		out = append(out, FunctionalDependency{LHS: lhs, RHS: s.rhs, Error: n.Error()})
	}

	return out
}
