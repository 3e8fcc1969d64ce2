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

// Op tags the operator of an expression node.
type Op int

const (
	// OpInteger nodes carry an integer payload and no children.
	OpInteger Op = iota
	// OpRational nodes carry a reduced (n, d) payload with d >= 2 and no
	// children. Denominator-1 rationals are never stored; they are
	// folded to OpInteger at construction.
	OpRational
	// OpSymbol nodes carry a non-empty name and no children.
	OpSymbol
	// OpFunction nodes carry a name and an ordered, order-significant
	// argument list.
	OpFunction
	// OpAdd nodes carry no payload and at least two children, sorted by
	// digest, with at most one numeric child.
	OpAdd
	// OpMul nodes carry no payload and at least two children, sorted by
	// digest, with at most one numeric child.
	OpMul
	// OpPow nodes carry no payload and exactly two children: base and
	// exponent.
	OpPow
)

// String renders the operator's name, used by tests and diagnostics.
func (op Op) String() string {
	switch op {
	case OpInteger:
		return "Integer"
	case OpRational:
		return "Rational"
	case OpSymbol:
		return "Symbol"
	case OpFunction:
		return "Function"
	case OpAdd:
		return "Add"
	case OpMul:
		return "Mul"
	case OpPow:
		return "Pow"
	default:
		return "Unknown"
	}
}

// precedence orders operators for the pretty printer: Add < Mul < Pow <
// atom (Symbol/Integer/Rational/Function).
func (op Op) precedence() int {
	switch op {
	case OpAdd:
		return 1
	case OpMul:
		return 2
	case OpPow:
		return 3
	default:
		return 4
	}
}
