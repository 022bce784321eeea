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
package measure

import "math/rand/v2"

// UniformSampler draws k row-IDs from [0, n) without replacement, using a
// seeded PRNG so that estimate() stays deterministic given a fixed seed. It
// follows the shape of enum.Sample, which instead draws from the
// package-global math/rand source and so is not reproducible.
type UniformSampler struct {
	rng *rand.Rand
}

// NewUniformSampler seeds a UniformSampler from a fixed 128-bit seed.
func NewUniformSampler(seed1, seed2 uint64) *UniformSampler {
	return &UniformSampler{rand.New(rand.NewPCG(seed1, seed2))}
}

// Sample implements SamplingStrategy using a partial Fisher-Yates shuffle:
// O(k) time and space rather than shuffling the whole [0,n) index space.
func (s *UniformSampler) Sample(n, k uint) []uint {
	if k > n {
		k = n
	}

	// pool[i] tracks where index i's value currently lives, using the
	// standard trick of only materializing entries that have been swapped.
	pool := make(map[uint]uint, k)
	result := make([]uint, 0, k)

	remaining := n

	for i := uint(0); i < k; i++ {
		j := uint(s.rng.Uint64N(uint64(remaining)))

		pick := j
		if v, ok := pool[j]; ok {
			pick = v
		}

		last := remaining - 1

		lastVal := last
		if v, ok := pool[last]; ok {
			lastVal = v
		}

		pool[j] = lastVal

		result = append(result, pick)
		remaining--
	}

	return result
}
