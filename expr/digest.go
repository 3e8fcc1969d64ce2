// Copyright 2026 The Symmetrica Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package expr

// FNV-1a 64-bit constants. The digest is deliberately hand-rolled rather
// than delegated to hash/fnv or a reflection-based struct hasher: it must
// mix a specific, ordered sequence of typed fields (operator tag, payload
// bytes, then each child's already-computed digest) and be reproducible
// byte-for-byte across processes, which rules out anything keyed by
// pointer identity or map iteration order.
const (
	fnvOffset64 uint64 = 14695981039346656037
	fnvPrime64  uint64 = 1099511628211
)

func fnvByte(h uint64, b byte) uint64 {
	h ^= uint64(b)
	h *= fnvPrime64
	return h
}

func fnvUint64(h uint64, v uint64) uint64 {
	for i := 0; i < 8; i++ {
		h = fnvByte(h, byte(v>>(56-8*i)))
	}
	return h
}

func fnvString(h uint64, s string) uint64 {
	for i := 0; i < len(s); i++ {
		h = fnvByte(h, s[i])
	}
	return h
}

// computeDigest is a pure function of operator, payload, and the child
// digests already computed for this node's children, per the store's
// determinism contract: the digest of a node depends only on structure.
func computeDigest(op Op, name string, intVal, ratN, ratD int64, childDigests []uint64) uint64 {
	h := fnvOffset64
	h = fnvByte(h, byte(op))
	h = fnvString(h, name)
	h = fnvUint64(h, uint64(intVal))
	h = fnvUint64(h, uint64(ratN))
	h = fnvUint64(h, uint64(ratD))
	h = fnvUint64(h, uint64(len(childDigests)))
	for _, cd := range childDigests {
		h = fnvUint64(h, cd)
	}
	return h
}
