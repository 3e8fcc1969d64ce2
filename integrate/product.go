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

package integrate

import (
	"symmetrica/assume"
	"symmetrica/diff"
	"symmetrica/expr"
	"symmetrica/poly"
	"symmetrica/rational"
	"symmetrica/simplify"
)

// integrateProduct dispatches rules 6 through 11 of the integrator's
// search order over a Mul node's factors: the logarithmic pattern,
// u-substitution for a composite power, the sin*cos product identity,
// rational functions via partial fractions, and finally integration by
// parts.
func integrateProduct(s *expr.Store, factors []expr.Handle, variable string, a *assume.Assumptions, cfg budget, depth int) (expr.Handle, bool) {
	if out, ok := integrateLogPattern(s, factors, variable, a); ok {
		return out, true
	}
	if out, ok := integrateUSubPower(s, factors, variable, a); ok {
		return out, true
	}
	if out, ok := integrateTrigProduct(s, factors, variable, a); ok {
		return out, true
	}
	if out, ok := integrateRationalFunction(s, factors, variable, a); ok {
		return out, true
	}
	if out, ok := integrateByParts(s, factors, variable, a, cfg, depth); ok {
		return out, true
	}
	return expr.Invalid, false
}

// splitNumericCoefficient decomposes h into (rational coefficient, base)
// exactly as simplify.splitCoefficient does, duplicated locally since
// that helper is private to the simplify package.
func splitNumericCoefficient(s *expr.Store, h expr.Handle) (rational.Rational, expr.Handle) {
	n := s.Get(h)
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
			if coeff == nil && cn.Op == expr.OpInteger {
				r := rational.FromInt(cn.Int)
				coeff = &r
				continue
			}
			if coeff == nil && cn.Op == expr.OpRational {
				r, _ := rational.New(cn.RatN, cn.RatD)
				coeff = &r
				continue
			}
			rest = append(rest, c)
		}
		if coeff == nil {
			return rational.One(), h
		}
		return *coeff, s.Mul(rest)
	default:
		return rational.One(), h
	}
}

// asRationalMultiple simplifies target and of, then reports the rational
// k such that target = k * of, comparing bases by handle identity after
// simplification.
func asRationalMultiple(s *expr.Store, target, of expr.Handle) (rational.Rational, bool) {
	st := simplify.Simplify(s, target, nil)
	so := simplify.Simplify(s, of, nil)
	coeffT, baseT := splitNumericCoefficient(s, st)
	coeffO, baseO := splitNumericCoefficient(s, so)
	if baseT != baseO || coeffO.IsZero() {
		return rational.Rational{}, false
	}
	k, _ := coeffT.Div(coeffO)
	return k, true
}

func withoutIndex(factors []expr.Handle, i int) []expr.Handle {
	out := make([]expr.Handle, 0, len(factors)-1)
	for j, f := range factors {
		if j != i {
			out = append(out, f)
		}
	}
	return out
}

// integrateLogPattern implements rule 6: if one factor is Pow(u, -1) and
// the product of the remaining factors is a rational multiple k of
// d(u), the integral is k * ln(u).
func integrateLogPattern(s *expr.Store, factors []expr.Handle, variable string, a *assume.Assumptions) (expr.Handle, bool) {
	for i, f := range factors {
		n := s.Get(f)
		if n.Op != expr.OpPow {
			continue
		}
		expNode := s.Get(n.Children[1])
		if expNode.Op != expr.OpInteger || expNode.Int != -1 {
			continue
		}
		u := n.Children[0]
		du := diff.Differentiate(s, u, variable)
		remaining := s.Mul(withoutIndex(factors, i))
		k, ok := asRationalMultiple(s, remaining, du)
		if !ok {
			continue
		}
		lnU := s.Function("ln", []expr.Handle{u})
		return finish(s, a, s.Mul([]expr.Handle{numericHandle(s, k), lnU})), true
	}
	return expr.Invalid, false
}

// integrateUSubPower implements rule 7: if one factor is Pow(u, n) with
// integer n != -1 and the remaining factors are a rational multiple k of
// d(u), the integral is (k/(n+1)) * Pow(u, n+1).
func integrateUSubPower(s *expr.Store, factors []expr.Handle, variable string, a *assume.Assumptions) (expr.Handle, bool) {
	for i, f := range factors {
		n := s.Get(f)
		if n.Op != expr.OpPow {
			continue
		}
		expNode := s.Get(n.Children[1])
		if expNode.Op != expr.OpInteger || expNode.Int == -1 {
			continue
		}
		u := n.Children[0]
		du := diff.Differentiate(s, u, variable)
		remaining := s.Mul(withoutIndex(factors, i))
		k, ok := asRationalMultiple(s, remaining, du)
		if !ok {
			continue
		}
		nPlus1 := expNode.Int + 1
		scale, _ := k.Div(rational.FromInt(nPlus1))
		power := s.Pow(u, s.Integer(nPlus1))
		return finish(s, a, s.Mul([]expr.Handle{numericHandle(s, scale), power})), true
	}
	return expr.Invalid, false
}

// integrateTrigProduct implements rule 8's product form:
// c * sin(u) * cos(u) -> -(c/(4a)) * cos(2u), for u = a*variable + b.
func integrateTrigProduct(s *expr.Store, factors []expr.Handle, variable string, a *assume.Assumptions) (expr.Handle, bool) {
	var sinArg, cosArg expr.Handle
	sinIdx, cosIdx := -1, -1
	for i, f := range factors {
		if n, ok := asFunctionCall(s, f, "sin"); ok && sinIdx == -1 {
			sinIdx = i
			sinArg = n.Children[0]
		} else if n, ok := asFunctionCall(s, f, "cos"); ok && cosIdx == -1 {
			cosIdx = i
			cosArg = n.Children[0]
		}
	}
	if sinIdx == -1 || cosIdx == -1 || sinArg != cosArg {
		return expr.Invalid, false
	}
	slope, _, ok := linearArg(s, sinArg, variable)
	if !ok {
		return expr.Invalid, false
	}
	var coeffFactors []expr.Handle
	for i, f := range factors {
		if i != sinIdx && i != cosIdx {
			coeffFactors = append(coeffFactors, f)
		}
	}
	coeff := rational.One()
	if len(coeffFactors) > 0 {
		c, ok := asRationalMultiple(s, s.Mul(coeffFactors), s.Integer(1))
		if !ok {
			return expr.Invalid, false
		}
		coeff = c
	}
	factor, _ := coeff.Div(rational.FromInt(4))
	factor, _ = factor.Div(slope)
	double := s.Mul([]expr.Handle{s.Integer(2), sinArg})
	cos2u := s.Function("cos", []expr.Handle{double})
	return finish(s, a, s.Mul([]expr.Handle{numericHandle(s, factor.Neg()), cos2u})), true
}

func asFunctionCall(s *expr.Store, h expr.Handle, name string) (expr.Node, bool) {
	n := s.Get(h)
	if n.Op == expr.OpFunction && n.Name == name && len(n.Children) == 1 {
		return n, true
	}
	return n, false
}

// integrateTrigSquare implements rule 8's power form:
// sin(u)^2 -> u'/2 ... expressed here for u = a*x+b as x/2 - sin(2u)/(4a),
// cos(u)^2 -> x/2 + sin(2u)/(4a).
func integrateTrigSquare(s *expr.Store, base, exponent expr.Handle, variable string, a *assume.Assumptions) (expr.Handle, bool) {
	expNode := s.Get(exponent)
	if expNode.Op != expr.OpInteger || expNode.Int != 2 {
		return expr.Invalid, false
	}
	sinNode, isSin := asFunctionCall(s, base, "sin")
	cosNode, isCos := asFunctionCall(s, base, "cos")
	if !isSin && !isCos {
		return expr.Invalid, false
	}
	var arg expr.Handle
	if isSin {
		arg = sinNode.Children[0]
	} else {
		arg = cosNode.Children[0]
	}
	slope, _, ok := linearArg(s, arg, variable)
	if !ok {
		return expr.Invalid, false
	}

	half, _ := s.Rational(1, 2)
	xTerm := s.Mul([]expr.Handle{half, s.Symbol(variable)})
	quarterOverA, _ := rational.New(1, 4)
	quarterOverA, _ = quarterOverA.Div(slope)
	double := s.Mul([]expr.Handle{s.Integer(2), arg})
	sin2u := s.Function("sin", []expr.Handle{double})
	sinTerm := s.Mul([]expr.Handle{numericHandle(s, quarterOverA), sin2u})

	if isSin {
		return finish(s, a, s.Add([]expr.Handle{xTerm, s.Mul([]expr.Handle{s.Integer(-1), sinTerm})})), true
	}
	return finish(s, a, s.Add([]expr.Handle{xTerm, sinTerm})), true
}

// integrateWeierstrass implements rule 9: 1/(1+cos(u)) -> tan(u/2)/a,
// 1/(1-cos(u)) -> -cot(u/2)/a, for u = a*variable + b.
func integrateWeierstrass(s *expr.Store, base, exponent expr.Handle, variable string, a *assume.Assumptions) (expr.Handle, bool) {
	expNode := s.Get(exponent)
	if expNode.Op != expr.OpInteger || expNode.Int != -1 {
		return expr.Invalid, false
	}
	baseNode := s.Get(base)
	if baseNode.Op != expr.OpAdd || len(baseNode.Children) != 2 {
		return expr.Invalid, false
	}

	var cosTerm expr.Handle
	foundConst, foundCos := false, false
	for _, c := range baseNode.Children {
		cn := s.Get(c)
		if cn.Op == expr.OpInteger && cn.Int == 1 {
			foundConst = true
			continue
		}
		cosTerm = c
		foundCos = true
	}
	if !foundConst || !foundCos {
		return expr.Invalid, false
	}

	coeff, body := splitNumericCoefficient(s, cosTerm)
	if !coeff.Equal(rational.One()) && !coeff.Equal(rational.One().Neg()) {
		return expr.Invalid, false
	}
	cosNode, ok := asFunctionCall(s, body, "cos")
	if !ok {
		return expr.Invalid, false
	}
	slope, _, ok := linearArg(s, cosNode.Children[0], variable)
	if !ok {
		return expr.Invalid, false
	}

	half, _ := s.Rational(1, 2)
	halfArg := s.Mul([]expr.Handle{half, cosNode.Children[0]})
	invSlope, _ := rational.One().Div(slope)

	if coeff.Sign() > 0 {
		tan := s.Function("tan", []expr.Handle{halfArg})
		return finish(s, a, s.Mul([]expr.Handle{numericHandle(s, invSlope), tan})), true
	}
	cot := s.Function("cot", []expr.Handle{halfArg})
	return finish(s, a, s.Mul([]expr.Handle{numericHandle(s, invSlope.Neg()), cot})), true
}

// integrateRationalFunction implements rule 10: if exactly one factor is
// Pow(den, -1) and the remaining factors form a numerator, both convert
// to polynomials, and the denominator factors into distinct linear
// rational roots, integrate the partial-fraction decomposition term by
// term.
func integrateRationalFunction(s *expr.Store, factors []expr.Handle, variable string, a *assume.Assumptions) (expr.Handle, bool) {
	denIdx := -1
	var den expr.Handle
	for i, f := range factors {
		n := s.Get(f)
		if n.Op != expr.OpPow {
			continue
		}
		expNode := s.Get(n.Children[1])
		if expNode.Op == expr.OpInteger && expNode.Int == -1 {
			if denIdx != -1 {
				return expr.Invalid, false // more than one candidate denominator
			}
			denIdx = i
			den = n.Children[0]
		}
	}
	if denIdx == -1 {
		return expr.Invalid, false
	}

	var numerator expr.Handle
	rest := withoutIndex(factors, denIdx)
	if len(rest) == 0 {
		numerator = s.Integer(1)
	} else {
		numerator = s.Mul(rest)
	}

	numPoly, ok := poly.ExpressionToPolynomial(s, numerator, variable)
	if !ok {
		return expr.Invalid, false
	}
	denPoly, ok := poly.ExpressionToPolynomial(s, den, variable)
	if !ok {
		return expr.Invalid, false
	}

	quotient, residues, ok := poly.PartialFractionsSimple(numPoly, denPoly)
	if !ok {
		return expr.Invalid, false
	}

	terms := []expr.Handle{integratePolynomialExpr(s, variable, quotient)}
	sym := s.Symbol(variable)
	for _, res := range residues {
		root := numericHandle(s, res.Root)
		xMinusRoot := s.Add([]expr.Handle{sym, s.Mul([]expr.Handle{s.Integer(-1), root})})
		lnTerm := s.Function("ln", []expr.Handle{xMinusRoot})
		terms = append(terms, s.Mul([]expr.Handle{numericHandle(s, res.Residue), lnTerm}))
	}
	return finish(s, a, s.Add(terms)), true
}

// integratePolynomialExpr returns the (unsimplified) term-by-term
// antiderivative of the polynomial p with respect to its variable.
func integratePolynomialExpr(s *expr.Store, variable string, p poly.Polynomial) expr.Handle {
	sym := s.Symbol(variable)
	var terms []expr.Handle
	for i, c := range p.Coeffs() {
		if c.IsZero() {
			continue
		}
		scaled := c.Mul(rational.MustNew(1, int64(i+1)))
		coeffHandle := numericHandle(s, scaled)
		power := s.Pow(sym, s.Integer(int64(i+1)))
		terms = append(terms, s.Mul([]expr.Handle{coeffHandle, power}))
	}
	return s.Add(terms)
}

// liatePriority ranks factor for the LIATE integration-by-parts
// heuristic: lower is a better choice for u. Logarithm > Inverse-trig >
// Algebraic > Trig > Exponential.
func liatePriority(s *expr.Store, factor expr.Handle) int {
	n := s.Get(factor)
	if n.Op == expr.OpFunction && len(n.Children) == 1 {
		switch n.Name {
		case "ln", "log":
			return 0
		case "asin", "acos", "atan", "acot", "asec", "acsc":
			return 1
		case "sin", "cos", "tan", "cot", "sec", "csc":
			return 3
		case "exp":
			return 4
		}
	}
	return 2 // algebraic: symbols, powers, numerals, and anything else
}

// integrateByParts implements rule 11: pick u by LIATE priority among
// the factors, integrate the rest as dv, and recurse on u'*v.
func integrateByParts(s *expr.Store, factors []expr.Handle, variable string, a *assume.Assumptions, cfg budget, depth int) (expr.Handle, bool) {
	if len(factors) < 2 {
		return expr.Invalid, false
	}
	uIdx := 0
	for i := 1; i < len(factors); i++ {
		if liatePriority(s, factors[i]) < liatePriority(s, factors[uIdx]) {
			uIdx = i
		}
	}
	u := factors[uIdx]
	dv := s.Mul(withoutIndex(factors, uIdx))

	v, ok := integrate(s, dv, variable, a, cfg, depth+1)
	if !ok {
		return expr.Invalid, false
	}
	du := diff.Differentiate(s, u, variable)
	duV := s.Mul([]expr.Handle{du, v})
	second, ok := integrate(s, duV, variable, a, cfg, depth+1)
	if !ok {
		return expr.Invalid, false
	}
	uv := s.Mul([]expr.Handle{u, v})
	return finish(s, a, s.Add([]expr.Handle{uv, s.Mul([]expr.Handle{s.Integer(-1), second})})), true
}
