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

import "container/heap"

// nodeItem wraps a Node with the insertion sequence number used to break
// ties deterministically, the same nodeItem/index bookkeeping that
// katalvlaran-lvlath's graph package uses for its Dijkstra priority queue.
type nodeItem struct {
	node  *Node
	seq   uint64
	index int
}

// nodePQ is a container/heap.Interface ordering by (level asc, error asc,
// insertion order), used for both launchpads and trickleDown's frontier.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	li, lj := pq[i].node.Level(), pq[j].node.Level()
	if li != lj {
		return li < lj
	}

	ei, ej := pq[i].node.Error(), pq[j].node.Error()
	if ei != ej {
		return ei < ej
	}

	return pq[i].seq < pq[j].seq
}

func (pq nodePQ) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *nodePQ) Push(x any) {
	item, _ := x.(*nodeItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *nodePQ) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[:n-1]

	return item
}

// priorityQueue is the ergonomic wrapper around nodePQ: Push/Pop operate on
// *Node directly and hide the heap bookkeeping.
type priorityQueue struct {
	pq  nodePQ
	seq uint64
}

func newPriorityQueue() *priorityQueue {
	pq := &priorityQueue{}
	heap.Init(&pq.pq)

	return pq
}

// Push inserts n, stamping it with the next insertion sequence number.
func (p *priorityQueue) Push(n *Node) {
	heap.Push(&p.pq, &nodeItem{node: n, seq: p.seq})
	p.seq++
}

// Pop removes and returns the minimum (level, error, insertion order) node.
func (p *priorityQueue) Pop() *Node {
	item, _ := heap.Pop(&p.pq).(*nodeItem)
	return item.node
}

// Len reports the number of queued nodes.
func (p *priorityQueue) Len() int {
	return p.pq.Len()
}
