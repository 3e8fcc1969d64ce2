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

import (
	"strconv"
	"strings"
)

// Format renders h as a precedence-aware, human-readable string. This is
// the reference printer that any external S-expression/LaTeX/JSON
// serializer is expected to agree with on grouping; it owns no format
// beyond plain infix text.
func (s *Store) Format(h Handle) string {
	return s.formatNode(h)
}

func (s *Store) formatNode(h Handle) string {
	n := s.nodes[h]
	switch n.op {
	case OpInteger:
		return strconv.FormatInt(n.intVal, 10)
	case OpRational:
		return strconv.FormatInt(n.ratN, 10) + "/" + strconv.FormatInt(n.ratD, 10)
	case OpSymbol:
		return n.name
	case OpFunction:
		args := make([]string, len(n.children))
		for i, c := range n.children {
			args[i] = s.formatNode(c)
		}
		return n.name + "(" + strings.Join(args, ", ") + ")"
	case OpAdd:
		parts := make([]string, len(n.children))
		for i, c := range n.children {
			parts[i] = s.formatOperand(c, OpAdd.precedence())
		}
		return joinSigned(parts)
	case OpMul:
		parts := make([]string, len(n.children))
		for i, c := range n.children {
			parts[i] = s.formatOperand(c, OpMul.precedence())
		}
		return strings.Join(parts, " * ")
	case OpPow:
		base := s.formatOperand(n.children[0], OpPow.precedence())
		exp := s.formatExponent(n.children[1])
		return base + "^" + exp
	default:
		return "?"
	}
}

// formatOperand renders child, parenthesizing it when its precedence is
// strictly lower than minPrec — i.e. when printing it bare at this
// position would change its grouping (an Add term inside a Mul, or either
// inside a Pow base).
func (s *Store) formatOperand(child Handle, minPrec int) string {
	str := s.formatNode(child)
	if s.nodes[child].op.precedence() < minPrec {
		return "(" + str + ")"
	}
	return str
}

// formatExponent renders a Pow's exponent, additionally parenthesizing a
// bare rational exponent (e.g. "x^(1/2)" rather than the harder-to-read
// "x^1/2") even though a Rational node's nominal precedence is atomic.
func (s *Store) formatExponent(exp Handle) string {
	if s.nodes[exp].op == OpRational {
		return "(" + s.formatNode(exp) + ")"
	}
	return s.formatOperand(exp, OpPow.precedence())
}

// joinSigned joins Add operand strings with " + ", rewriting a leading
// "-" on any operand after the first into " - " so sums of negative
// terms read as subtraction instead of "a + -b".
func joinSigned(parts []string) string {
	if len(parts) == 0 {
		return "0"
	}
	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		if strings.HasPrefix(p, "-") {
			b.WriteString(" - ")
			b.WriteString(p[1:])
		} else {
			b.WriteString(" + ")
			b.WriteString(p)
		}
	}
	return b.String()
}
