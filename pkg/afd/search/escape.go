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

// escape computes the next round of launchpads reachable from l: for every
// known peak P with l subset of P, the "gap" G_P is the set of columns not
// yet in P (and not the RHS) -- the columns that would step outside P's
// valid region. A minimal hitting set H over the family {G_P} picks one
// escape column per covering peak; l union H is a new launchpad guaranteed
// not to be redundant with any known peak.
func (s *SearchSpace) escape(l colset.Set) ([]colset.Set, error) {
	var gaps []colset.Set

	for _, peak := range s.peaks.Items() {
		if !l.IsSubsetOf(peak) {
			continue
		}

		gap := s.universe.Difference(peak.Insert(s.rhs))
		if !gap.IsEmpty() {
			gaps = append(gaps, gap)
		}
	}

	if len(gaps) == 0 {
		return nil, nil
	}

	hitters := minimalHittingSets(gaps)
	out := make([]colset.Set, 0, len(hitters))

	for _, h := range hitters {
		out = append(out, l.Union(h))
	}

	return out, nil
}

// minimalHittingSets computes every inclusion-minimal set that intersects
// every member of gaps, by incrementally folding each gap into the current
// family of hitters: a hitter already intersecting the new gap survives
// unchanged, otherwise it is replaced by one extension per column of the
// gap, after which any hitter dominated by another is discarded.
func minimalHittingSets(gaps []colset.Set) []colset.Set {
	hitters := []colset.Set{colset.Empty()}

	for _, gap := range gaps {
		next := make([]colset.Set, 0, len(hitters))

		for _, h := range hitters {
			if intersects(h, gap) {
				next = append(next, h)
				continue
			}

			for _, col := range gap.Columns() {
				next = append(next, h.Insert(col))
			}
		}

		hitters = keepMinimal(next)
	}

	return hitters
}

// keepMinimal drops every set in candidates that is a proper superset of
// another candidate, leaving an antichain.
func keepMinimal(candidates []colset.Set) []colset.Set {
	out := make([]colset.Set, 0, len(candidates))

	for i, c := range candidates {
		dominated := false

		for j, other := range candidates {
			if i == j {
				continue
			}

			if other.IsSubsetOf(c) && !other.Equals(c) {
				dominated = true
				break
			}
		}

		if !dominated {
			out = append(out, c)
		}
	}

	return dedupe(out)
}

// intersects reports whether a and b share at least one column.
func intersects(a, b colset.Set) bool {
	for i := a.Iter(); i.HasNext(); {
		if b.Contains(i.Next()) {
			return true
		}
	}

	return false
}

func dedupe(sets []colset.Set) []colset.Set {
	out := make([]colset.Set, 0, len(sets))

	for _, s := range sets {
		found := false

		for _, kept := range out {
			if kept.Equals(s) {
				found = true
				break
			}
		}

		if !found {
			out = append(out, s)
		}
	}

	return out
}
