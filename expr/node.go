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

// Handle is an opaque, cheap-to-copy index into a Store's arena. Handles
// are stable for the lifetime of the store that issued them and are
// meaningless across distinct stores.
type Handle int

// Invalid is the zero-value-adjacent sentinel handle returned alongside
// an error from constructors that can fail (Store.Rational).
const Invalid Handle = -1

// node is the store's internal representation. Exactly one of the
// payload fields is meaningful, selected by op, per the shape table in
// the expression kernel's specification.
type node struct {
	op       Op
	name     string  // Symbol or Function name.
	intVal   int64   // Integer payload.
	ratN     int64   // Rational payload numerator (d >= 2 always).
	ratD     int64   // Rational payload denominator.
	children []Handle
	digest   uint64
}

// Node is the read-only, exported view of a node returned by Store.Get.
// External collaborators (printers, evaluators, parsers building on top of
// the store) inspect expressions only through this shape.
type Node struct {
	Op       Op
	Name     string
	Int      int64
	RatN     int64
	RatD     int64
	Children []Handle
	Digest   uint64
}
