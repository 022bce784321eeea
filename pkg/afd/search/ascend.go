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

import "github.com/afdscan/afd-core/pkg/util"

// ascend climbs from a non-validated launchpad toward a valid LHS while
// widening the known non-FD frontier. It returns the first valid node
// found (the peak, nil if none is reachable) and the highest-level invalid
// node encountered along the way (nil if none).
func (s *SearchSpace) ascend(launchpad *Node) (*Node, *Node, error) {
	var (
		peak           *Node
		highestInvalid *Node
	)

	current := launchpad

	for {
		unpruned := make([]*Node, 0, s.columnCount)

		for _, child := range s.children(current.LHS()) {
			if !s.checkValidPrune(child.LHS()) {
				unpruned = append(unpruned, child)
			}
		}

		if len(unpruned) == 0 {
			return peak, highestInvalid, nil
		}

		for _, child := range unpruned {
			if err := s.estimate(child); err != nil {
				return nil, nil, err
			}
		}

		extremes := errorExtremes(unpruned)
		minChild, maxChild := extremes.Split()

		if err := s.validate(minChild); err != nil {
			return nil, nil, err
		}

		if minChild.IsValid(s.maxError) {
			if peak == nil {
				peak = minChild
			}

			if maxChild == minChild {
				return peak, highestInvalid, nil
			}

			if err := s.validate(maxChild); err != nil {
				return nil, nil, err
			}

			if maxChild.IsValid(s.maxError) {
				return peak, highestInvalid, nil
			}

			highestInvalid = higherLevel(highestInvalid, maxChild)
			current = maxChild

			continue
		}

		highestInvalid = higherLevel(highestInvalid, minChild)
		current = minChild
	}
}

// errorExtremes pairs the lowest- and highest-error node of a non-empty
// slice, the two candidates ascend widens towards on each iteration of its
// climb.
func errorExtremes(nodes []*Node) util.Pair[*Node, *Node] {
	minNode, maxNode := nodes[0], nodes[0]

	for _, n := range nodes[1:] {
		if n.Error() < minNode.Error() {
			minNode = n
		}

		if n.Error() > maxNode.Error() {
			maxNode = n
		}
	}

	return util.NewPair(minNode, maxNode)
}

// higherLevel returns whichever of a, b sits at the greater lattice level,
// treating a nil candidate as absent.
func higherLevel(a, b *Node) *Node {
	if a == nil {
		return b
	}

	if b == nil {
		return a
	}

	if b.Level() > a.Level() {
		return b
	}

	return a
}
