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

// Package diff implements structural symbolic differentiation: a
// straightforward recursive descent over the expression DAG, one rule
// per operator and per named function, with every result run back
// through the simplifier before being handed to the caller.
package diff

import (
	"symmetrica/expr"
	"symmetrica/simplify"
)

// Differentiate returns d/d(variable) of the expression at h, simplified.
func Differentiate(store *expr.Store, h expr.Handle, variable string) expr.Handle {
	raw := derive(store, h, variable)
	return simplify.Simplify(store, raw, nil)
}

func derive(s *expr.Store, h expr.Handle, variable string) expr.Handle {
	n := s.Get(h)
	switch n.Op {
	case expr.OpInteger, expr.OpRational:
		return s.Integer(0)
	case expr.OpSymbol:
		if n.Name == variable {
			return s.Integer(1)
		}
		return s.Integer(0)
	case expr.OpAdd:
		terms := make([]expr.Handle, len(n.Children))
		for i, c := range n.Children {
			terms[i] = derive(s, c, variable)
		}
		return s.Add(terms)
	case expr.OpMul:
		return deriveProduct(s, n.Children, variable)
	case expr.OpPow:
		return derivePow(s, n.Children[0], n.Children[1], variable)
	case expr.OpFunction:
		return deriveFunction(s, n.Name, n.Children, variable)
	default:
		return s.Integer(0)
	}
}

// deriveProduct applies the generalized product rule: the derivative of
// f1*...*fn is the sum, over i, of d(fi) times the product of every
// other factor.
func deriveProduct(s *expr.Store, factors []expr.Handle, variable string) expr.Handle {
	terms := make([]expr.Handle, len(factors))
	for i := range factors {
		dfi := derive(s, factors[i], variable)
		rest := make([]expr.Handle, 0, len(factors)-1)
		for j, f := range factors {
			if j != i {
				rest = append(rest, f)
			}
		}
		rest = append(rest, dfi)
		terms[i] = s.Mul(rest)
	}
	return s.Add(terms)
}

// derivePow differentiates Pow(u, exp). A literal integer exponent uses
// the elementary power rule; anything else (a symbolic exponent, or an
// exponent that itself depends on variable) uses the general
// logarithmic-differentiation rule.
func derivePow(s *expr.Store, base, exponent expr.Handle, variable string) expr.Handle {
	expNode := s.Get(exponent)
	if expNode.Op == expr.OpInteger {
		n := expNode.Int
		switch n {
		case 0:
			return s.Integer(0)
		case 1:
			return derive(s, base, variable)
		default:
			du := derive(s, base, variable)
			reduced := s.Pow(base, s.Integer(n-1))
			return s.Mul([]expr.Handle{s.Integer(n), reduced, du})
		}
	}

	// Pow(u, v)' = Pow(u, v) * (v' * ln(u) + v * u'/u)
	du := derive(s, base, variable)
	dv := derive(s, exponent, variable)
	lnU := s.Function("ln", []expr.Handle{base})
	uInv := s.Pow(base, s.Integer(-1))
	term1 := s.Mul([]expr.Handle{dv, lnU})
	term2 := s.Mul([]expr.Handle{exponent, du, uInv})
	return s.Mul([]expr.Handle{s.Pow(base, exponent), s.Add([]expr.Handle{term1, term2})})
}

func deriveFunction(s *expr.Store, name string, args []expr.Handle, variable string) expr.Handle {
	if len(args) != 1 {
		return s.Integer(0)
	}
	u := args[0]
	du := derive(s, u, variable)

	switch name {
	case "sin":
		cos := s.Function("cos", []expr.Handle{u})
		return s.Mul([]expr.Handle{cos, du})
	case "cos":
		sin := s.Function("sin", []expr.Handle{u})
		return s.Mul([]expr.Handle{s.Integer(-1), sin, du})
	case "exp":
		expU := s.Function("exp", []expr.Handle{u})
		return s.Mul([]expr.Handle{expU, du})
	case "ln", "log":
		uInv := s.Pow(u, s.Integer(-1))
		return s.Mul([]expr.Handle{du, uInv})
	case "sinh":
		cosh := s.Function("cosh", []expr.Handle{u})
		return s.Mul([]expr.Handle{cosh, du})
	case "cosh":
		sinh := s.Function("sinh", []expr.Handle{u})
		return s.Mul([]expr.Handle{sinh, du})
	case "tanh":
		tanh := s.Function("tanh", []expr.Handle{u})
		tanhSq := s.Pow(tanh, s.Integer(2))
		oneMinusTanhSq := s.Add([]expr.Handle{s.Integer(1), s.Mul([]expr.Handle{s.Integer(-1), tanhSq})})
		return s.Mul([]expr.Handle{oneMinusTanhSq, du})
	default:
		return s.Integer(0)
	}
}
