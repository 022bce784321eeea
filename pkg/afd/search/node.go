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

// Package search implements the per-RHS lattice search: SearchSpace and its
// ascend / trickleDown / escape algorithms.
package search

import (
	"github.com/afdscan/afd-core/pkg/afd/cache"
	"github.com/afdscan/afd-core/pkg/afd/colset"
	"github.com/afdscan/afd-core/pkg/afd/dataset"
	"github.com/afdscan/afd-core/pkg/afd/measure"
)

// State is a Node's position in its monotone state machine: Unknown ->
// Estimated -> Validated. An already-Validated node is never re-estimated.
type State int

const (
	// Unknown means neither estimate nor validate has run yet.
	Unknown State = iota
	// Estimated means error holds a sample-based approximation.
	Estimated
	// Validated means error holds the exact g3 value.
	Validated
)

// Node is one lattice vertex for a fixed RHS: an LHS column set, its error
// (estimated or validated), and a derived level = popcount(LHS).
type Node struct {
	lhs   colset.Set
	err   float64
	state State
}

// NewNode constructs a fresh, Unknown node for lhs.
func NewNode(lhs colset.Set) *Node {
	return &Node{lhs: lhs}
}

// LHS returns this node's column set.
func (n *Node) LHS() colset.Set {
	return n.lhs
}

// Error returns the last computed (estimated or validated) error.
func (n *Node) Error() float64 {
	return n.err
}

// State returns this node's position in the Unknown/Estimated/Validated
// state machine.
func (n *Node) State() State {
	return n.state
}

// Level returns popcount(LHS), this node's level in the lattice.
func (n *Node) Level() uint {
	return n.lhs.Cardinality()
}

// IsValid reports whether this node has been validated and its error is at
// most maxError.
func (n *Node) IsValid(maxError float64) bool {
	return n.state == Validated && n.err <= maxError
}

// Estimate samples n's error via m and sampler, storing an unbiased estimate
// and transitioning to Estimated. A no-op once the node is Validated.
func (n *Node) Estimate(
	rhs uint, d dataset.Dataset, c *cache.Cache, m measure.ErrorMeasure, sampler measure.SamplingStrategy, sampleSize uint,
) error {
	if n.state == Validated {
		return nil
	}

	e, err := m.EstimateError(n.lhs, rhs, d, c, sampler, sampleSize)
	if err != nil {
		return err
	}

	n.err = e
	n.state = Estimated

	return nil
}

// Validate computes n's exact g3 error and transitions to Validated. Per the
// round-trip law, calling Validate again is a no-op: it neither recomputes
// nor changes state.
func (n *Node) Validate(rhs uint, d dataset.Dataset, c *cache.Cache, m measure.ErrorMeasure) error {
	if n.state == Validated {
		return nil
	}

	e, err := m.CalculateError(n.lhs, rhs, d, c)
	if err != nil {
		return err
	}

	n.err = e
	n.state = Validated

	return nil
}
