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

// trickleDown walks downward from a known-valid peak to find every minimal
// valid LHS reachable beneath it. It uses a local priority queue ordered by
// (level asc, error asc) so a node's one-column-removed parents are always
// popped before its own second visit, and a local visited set implementing
// the two-visit scheme: first visit validates, second visit (once all
// parents are resolved) confirms minimality.
func (s *SearchSpace) trickleDown(peak *Node) error {
	pq := newPriorityQueue()
	visited := make(map[uint64]bool)

	pq.Push(peak)

	for pq.Len() > 0 {
		if s.cancelled() {
			return nil
		}

		n := pq.Pop()
		if n.LHS().IsEmpty() {
			continue
		}

		key := n.LHS().Hash()

		if s.checkValidPrune(n.LHS()) {
			if !visited[key] {
				visited[key] = true

				if err := s.enqueueParents(n, pq); err != nil {
					return err
				}
			}

			continue
		}

		if visited[key] {
			s.minValidFD.insertMinimal(n.LHS())
			s.logger.Infof("rhs %d: minimal FD found %s -> %d (error=%f)", s.rhs, n.LHS(), s.rhs, n.Error())

			continue
		}

		if err := s.validate(n); err != nil {
			return err
		}

		if n.IsValid(s.maxError) {
			visited[key] = true
			pq.Push(n)

			if err := s.enqueueParents(n, pq); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *SearchSpace) enqueueParents(n *Node, pq *priorityQueue) error {
	for _, parent := range s.parents(n.LHS()) {
		if parent.State() == Unknown {
			if err := s.estimate(parent); err != nil {
				return err
			}
		}

		pq.Push(parent)
	}

	return nil
}
