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

package simplify

import (
	"symmetrica/expr"
	"symmetrica/rational"
)

// splitCoefficient decomposes term into (rational coefficient, base) so
// Add's like-term collection can group by base: a bare numeral is
// (value, 1); a Mul with exactly one numeric child is (that numeric
// value, product of the rest); anything else is (1, term).
func splitCoefficient(s *expr.Store, term expr.Handle) (rational.Rational, expr.Handle) {
	n := s.Get(term)
	switch n.Op {
	case expr.OpInteger:
		return rational.FromInt(n.Int), s.Integer(1)
	case expr.OpRational:
		r, _ := rational.New(n.RatN, n.RatD)
		return r, s.Integer(1)
	case expr.OpMul:
		var coeff *rational.Rational
		var rest []expr.Handle
		for _, c := range n.Children {
			cn := s.Get(c)
			if coeff == nil && (cn.Op == expr.OpInteger || cn.Op == expr.OpRational) {
				r := ratOf(s, c)
				coeff = &r
				continue
			}
			rest = append(rest, c)
		}
		if coeff == nil {
			return rational.One(), term
		}
		base := s.Mul(rest)
		return *coeff, base
	default:
		return rational.One(), term
	}
}

// splitPower decomposes factor into (base, exponent) for Mul's power
// merging: a Pow node yields its own (base, exponent); anything else is
// (factor, 1).
func splitPower(s *expr.Store, factor expr.Handle) (expr.Handle, expr.Handle) {
	n := s.Get(factor)
	if n.Op == expr.OpPow {
		return n.Children[0], n.Children[1]
	}
	return factor, s.Integer(1)
}

func ratOf(s *expr.Store, h expr.Handle) rational.Rational {
	n := s.Get(h)
	if n.Op == expr.OpInteger {
		return rational.FromInt(n.Int)
	}
	r, _ := rational.New(n.RatN, n.RatD)
	return r
}

func isNumeric(s *expr.Store, h expr.Handle) bool {
	op := s.Get(h).Op
	return op == expr.OpInteger || op == expr.OpRational
}

func isIntegerValue(s *expr.Store, h expr.Handle, v int64) bool {
	n := s.Get(h)
	return n.Op == expr.OpInteger && n.Int == v
}

func isFunctionNamed(s *expr.Store, h expr.Handle, name string) (expr.Node, bool) {
	n := s.Get(h)
	if n.Op == expr.OpFunction && n.Name == name && len(n.Children) == 1 {
		return n, true
	}
	return n, false
}
