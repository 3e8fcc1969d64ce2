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

// Package integrate implements a pattern-driven, depth-bounded symbolic
// integrator: a fixed dispatch order of closed-form rules, falling back
// to LIATE-ordered integration by parts, and reporting "no closed form"
// rather than ever risking an incorrect antiderivative.
package integrate

import (
	"symmetrica/assume"
	"symmetrica/config"
	"symmetrica/expr"
	"symmetrica/poly"
	"symmetrica/rational"
	"symmetrica/simplify"
)

// Integrate searches for a closed-form antiderivative of h with respect
// to variable. It returns (handle, true) on success, or (expr.Invalid,
// false) when no rule in the dispatch order applies — never an
// incorrect antiderivative. The result never includes a constant of
// integration; callers add their own.
func Integrate(store *expr.Store, h expr.Handle, variable string, a *assume.Assumptions, cfg config.Config) (expr.Handle, bool) {
	bdg := budget{cfg: cfg, startNodes: store.NodeCount()}
	return integrate(store, h, variable, a, bdg, 0)
}

// budget carries the resource limits for one top-level Integrate call: a
// recursion-depth cap, plus the store's node count at the moment the
// search started so growth (not absolute size) is what's bounded.
type budget struct {
	cfg        config.Config
	startNodes int
}

func (b budget) exceeded(s *expr.Store) bool {
	return b.cfg.MaxNodes > 0 && s.NodeCount()-b.startNodes > b.cfg.MaxNodes
}

func integrate(s *expr.Store, h expr.Handle, variable string, a *assume.Assumptions, cfg budget, depth int) (expr.Handle, bool) {
	if depth > cfg.cfg.MaxRecursionDepth || cfg.exceeded(s) {
		return expr.Invalid, false
	}

	if isConstantIn(s, h, variable) {
		return finish(s, a, s.Mul([]expr.Handle{h, s.Symbol(variable)})), true
	}

	n := s.Get(h)
	switch n.Op {
	case expr.OpSymbol:
		if n.Name == variable {
			half, _ := s.Rational(1, 2)
			return finish(s, a, s.Mul([]expr.Handle{half, s.Pow(s.Symbol(variable), s.Integer(2))})), true
		}
	case expr.OpAdd:
		return integrateSum(s, n.Children, variable, a, cfg, depth)
	case expr.OpPow:
		if out, ok := integratePower(s, n.Children[0], n.Children[1], variable, a); ok {
			return out, true
		}
		if out, ok := integrateTrigSquare(s, n.Children[0], n.Children[1], variable, a); ok {
			return out, true
		}
		if out, ok := integrateWeierstrass(s, n.Children[0], n.Children[1], variable, a); ok {
			return out, true
		}
		if out, ok := integrateProduct(s, []expr.Handle{h}, variable, a, cfg, depth); ok {
			return out, true
		}
	case expr.OpFunction:
		if out, ok := integrateLinearArgFunction(s, n.Name, n.Children, variable, a); ok {
			return out, true
		}
	case expr.OpMul:
		if out, ok := integrateProduct(s, n.Children, variable, a, cfg, depth); ok {
			return out, true
		}
	}

	return expr.Invalid, false
}

func finish(s *expr.Store, a *assume.Assumptions, h expr.Handle) expr.Handle {
	return simplify.Simplify(s, h, a)
}

// isConstantIn reports whether h contains no occurrence of the symbol
// named variable anywhere in its subtree.
func isConstantIn(s *expr.Store, h expr.Handle, variable string) bool {
	constant := true
	s.Walk(h, func(node expr.Handle) bool {
		n := s.Get(node)
		if n.Op == expr.OpSymbol && n.Name == variable {
			constant = false
			return false
		}
		return true
	})
	return constant
}

func integrateSum(s *expr.Store, terms []expr.Handle, variable string, a *assume.Assumptions, cfg budget, depth int) (expr.Handle, bool) {
	out := make([]expr.Handle, len(terms))
	for i, t := range terms {
		r, ok := integrate(s, t, variable, a, cfg, depth+1)
		if !ok {
			return expr.Invalid, false
		}
		out[i] = r
	}
	return finish(s, a, s.Add(out)), true
}

// integratePower handles rule 2 (x^n, n != -1) and rule 3 (x^-1 -> ln x)
// for a bare power of the integration variable.
func integratePower(s *expr.Store, base, exponent expr.Handle, variable string, a *assume.Assumptions) (expr.Handle, bool) {
	baseNode := s.Get(base)
	expNode := s.Get(exponent)
	if baseNode.Op != expr.OpSymbol || baseNode.Name != variable || expNode.Op != expr.OpInteger {
		return expr.Invalid, false
	}
	if expNode.Int == -1 {
		return finish(s, a, s.Function("ln", []expr.Handle{base})), true
	}
	nPlus1 := expNode.Int + 1
	power := s.Pow(base, s.Integer(nPlus1))
	coeff, _ := s.Rational(1, nPlus1)
	return finish(s, a, s.Mul([]expr.Handle{coeff, power})), true
}

// linearArg reports (a, b, true) when h = a*variable + b for rational a,
// b, with a != 0.
func linearArg(s *expr.Store, h expr.Handle, variable string) (rational.Rational, rational.Rational, bool) {
	p, ok := poly.ExpressionToPolynomial(s, h, variable)
	if !ok || p.Degree() > 1 {
		return rational.Rational{}, rational.Rational{}, false
	}
	a := rational.Zero()
	if p.Degree() == 1 {
		a = p.Coeffs()[1]
	}
	b := rational.Zero()
	if len(p.Coeffs()) > 0 {
		b = p.Coeffs()[0]
	}
	if a.IsZero() {
		return rational.Rational{}, rational.Rational{}, false
	}
	return a, b, true
}

func numericHandle(s *expr.Store, r rational.Rational) expr.Handle {
	if r.IsInteger() {
		return s.Integer(r.Num())
	}
	h, _ := s.Rational(r.Num(), r.Den())
	return h
}

// integrateLinearArgFunction handles rules 4 and 5: sin/cos/exp and the
// hyperbolic analogues, each with argument a*variable + b.
func integrateLinearArgFunction(s *expr.Store, name string, args []expr.Handle, variable string, a *assume.Assumptions) (expr.Handle, bool) {
	if len(args) != 1 {
		return expr.Invalid, false
	}
	slope, _, ok := linearArg(s, args[0], variable)
	if !ok {
		return expr.Invalid, false
	}
	invSlope := numericHandle(s, rational.One())
	if !slope.Equal(rational.One()) {
		r, _ := rational.One().Div(slope)
		invSlope = numericHandle(s, r)
	}

	switch name {
	case "sin":
		cos := s.Function("cos", args)
		return finish(s, a, s.Mul([]expr.Handle{s.Integer(-1), invSlope, cos})), true
	case "cos":
		sin := s.Function("sin", args)
		return finish(s, a, s.Mul([]expr.Handle{invSlope, sin})), true
	case "exp":
		expFn := s.Function("exp", args)
		return finish(s, a, s.Mul([]expr.Handle{invSlope, expFn})), true
	case "sinh":
		cosh := s.Function("cosh", args)
		return finish(s, a, s.Mul([]expr.Handle{invSlope, cosh})), true
	case "cosh":
		sinh := s.Function("sinh", args)
		return finish(s, a, s.Mul([]expr.Handle{invSlope, sinh})), true
	}
	return expr.Invalid, false
}
