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

// Package colset provides the column-set (LHS) type used throughout the
// discovery engine: a dense bitset of fixed conceptual width m, compared and
// hashed by the set of bits it has set.
package colset

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/afdscan/afd-core/pkg/util/collection/bit"
	"github.com/afdscan/afd-core/pkg/util/collection/iter"
)

// Set represents a subset of {0, ..., m-1}. The zero value is the empty set.
// Two Sets are equal iff they designate the same subset; insertion order is
// irrelevant. Set is a value type: every mutator returns a new Set rather
// than modifying the receiver, so Sets can be shared safely across
// goroutines. Set is not comparable with ==; it keys a hash.Map / hash.Set
// through Equals and Hash.
type Set struct {
	bits bit.Set
}

// Empty returns the empty column set.
func Empty() Set {
	return Set{}
}

// Of constructs a column set containing exactly the given column indices.
func Of(cols ...uint) Set {
	s := Empty()
	for _, c := range cols {
		s = s.Insert(c)
	}

	return s
}

// Insert returns a new Set containing this set's columns plus col.
func (s Set) Insert(col uint) Set {
	b := s.bits.Clone()
	b.Insert(col)

	return Set{b}
}

// Remove returns a new Set containing this set's columns minus col.
func (s Set) Remove(col uint) Set {
	b := s.bits.Clone()
	b.Remove(col)

	return Set{b}
}

// Contains checks whether col is a member of this set.
func (s Set) Contains(col uint) bool {
	b := s.bits

	return b.Contains(col)
}

// Union returns the union of this set and other.
func (s Set) Union(other Set) Set {
	b := s.bits.Clone()
	b.Union(other.bits)

	return Set{b}
}

// Difference returns the columns present in this set but not in other.
func (s Set) Difference(other Set) Set {
	r := Empty()

	for i := s.Iter(); i.HasNext(); {
		col := i.Next()
		if !other.Contains(col) {
			r = r.Insert(col)
		}
	}

	return r
}

// IsSubsetOf checks whether every column of this set is also in other.
func (s Set) IsSubsetOf(other Set) bool {
	for i := s.Iter(); i.HasNext(); {
		if !other.Contains(i.Next()) {
			return false
		}
	}

	return true
}

// IsSupersetOf checks whether this set contains every column of other.
func (s Set) IsSupersetOf(other Set) bool {
	return other.IsSubsetOf(s)
}

// Equals checks whether this set and other designate the same subset.
func (s Set) Equals(other Set) bool {
	return s.Cardinality() == other.Cardinality() && s.IsSubsetOf(other)
}

// Cardinality returns the number of columns in this set ("level" in the
// lattice, popcount of the underlying bitset).
func (s Set) Cardinality() uint {
	b := s.bits

	return b.Count()
}

// IsEmpty checks whether this set has no columns.
func (s Set) IsEmpty() bool {
	return s.Cardinality() == 0
}

// Iter returns an iterator over this set's columns in ascending order.
func (s Set) Iter() iter.Iterator[uint] {
	b := s.bits

	return b.Iter()
}

// Columns returns this set's columns as a sorted-ascending slice, the
// canonical key representation used by the minValidFD / maxNonFD tries.
func (s Set) Columns() []uint {
	return s.Iter().Collect()
}

// Hash computes a 64-bit hashcode over the sorted column indices, so that Set
// satisfies hash.Hasher[Set] and can key a hash.Map / hash.Set.
func (s Set) Hash() uint64 {
	h := fnv.New64a()

	for i := s.Iter(); i.HasNext(); {
		col := i.Next()
		h.Write([]byte{
			byte(col), byte(col >> 8), byte(col >> 16), byte(col >> 24),
			byte(col >> 32), byte(col >> 40), byte(col >> 48), byte(col >> 56),
		})
	}

	return h.Sum64()
}

// String renders this set as e.g. "{0,2,5}".
func (s Set) String() string {
	var b strings.Builder

	b.WriteString("{")

	first := true

	for i := s.Iter(); i.HasNext(); {
		if !first {
			b.WriteString(",")
		}

		first = false

		fmt.Fprintf(&b, "%d", i.Next())
	}

	b.WriteString("}")

	return b.String()
}
