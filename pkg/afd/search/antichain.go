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

import "github.com/afdscan/afd-core/pkg/afd/colset"

// antiChain stores a set of column sets none of which is a subset of
// another, backing both minValidFD (minimal valid LHSs) and maxNonFD
// (maximal invalid LHSs). Membership queries walk the (small) member list
// directly rather than a true column-indexed trie: the number of minimal
// FDs for one RHS is rarely more than a few dozen, so a linear antichain
// scan stays cheap while keeping the invariant trivial to enforce.
type antiChain struct {
	members []colset.Set
}

func newAntiChain() *antiChain {
	return &antiChain{}
}

// containsSubsetOf reports whether some stored member is a subset of x
// (including x itself). Used as checkValidPrune over minValidFD.
func (a *antiChain) containsSubsetOf(x colset.Set) bool {
	for _, m := range a.members {
		if m.IsSubsetOf(x) {
			return true
		}
	}

	return false
}

// containsSupersetOf reports whether some stored member is a superset of x
// (including x itself). Used as checkInvalidPrune over maxNonFD.
func (a *antiChain) containsSupersetOf(x colset.Set) bool {
	for _, m := range a.members {
		if x.IsSubsetOf(m) {
			return true
		}
	}

	return false
}

// insertMinimal adds x as a new minimal member, dropping any existing
// member that x now makes redundant (one of which x is a subset). Returns
// false without modifying the chain if x is itself already dominated by an
// existing, smaller member.
func (a *antiChain) insertMinimal(x colset.Set) bool {
	for _, m := range a.members {
		if m.IsSubsetOf(x) {
			return false
		}
	}

	kept := a.members[:0]

	for _, m := range a.members {
		if !x.IsSubsetOf(m) {
			kept = append(kept, m)
		}
	}

	a.members = append(kept, x)

	return true
}

// insertMaximal adds x as a new maximal member, the mirror image of
// insertMinimal for the maxNonFD chain.
func (a *antiChain) insertMaximal(x colset.Set) bool {
	for _, m := range a.members {
		if x.IsSubsetOf(m) {
			return false
		}
	}

	kept := a.members[:0]

	for _, m := range a.members {
		if !m.IsSubsetOf(x) {
			kept = append(kept, m)
		}
	}

	a.members = append(kept, x)

	return true
}

// Members returns the antichain's elements in insertion order.
func (a *antiChain) Members() []colset.Set {
	return a.members
}
