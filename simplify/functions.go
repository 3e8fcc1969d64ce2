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
)

// simplifyFunction simplifies a function call's argument(s), then applies
// the function-specific identities: ln(exp(u)) -> u and exp(ln(u)) -> u
// unconditionally (the spec states these without an assumption guard),
// and sqrt(u) -> u^(1/2) desugaring so power-merging in simplifyPow picks
// up any nested-radical cancellation for free.
func (sp *simplifier) simplifyFunction(name string, children []expr.Handle) expr.Handle {
	args := make([]expr.Handle, len(children))
	for i, c := range children {
		args[i] = sp.simplify(c)
	}

	switch name {
	case "ln":
		if inner, ok := isFunctionNamed(sp.store, args[0], "exp"); ok {
			return inner.Children[0]
		}
		if rewritten, ok := sp.lnOfPositivePower(args[0]); ok {
			return rewritten
		}
		if sum, ok := sp.lnOfPositiveProduct(args[0]); ok {
			return sum
		}
	case "exp":
		if inner, ok := isFunctionNamed(sp.store, args[0], "ln"); ok {
			return inner.Children[0]
		}
	case "sqrt":
		half, _ := sp.store.Rational(1, 2)
		return sp.simplify(sp.store.Pow(args[0], half))
	}

	return sp.store.Function(name, args)
}

// lnOfPositivePower rewrites ln(u^k) -> k*ln(u) when u is a symbol known to
// be positive, for any rational exponent k (not just an integer one) — the
// identity holds regardless of k's shape once u's sign is pinned down, so
// unlike the numeric radical-extraction rule in simplifyPow, this one
// never needs to inspect k itself.
func (sp *simplifier) lnOfPositivePower(u expr.Handle) (expr.Handle, bool) {
	n := sp.store.Get(u)
	if n.Op != expr.OpPow {
		return expr.Invalid, false
	}
	base := sp.store.Get(n.Children[0])
	if base.Op != expr.OpSymbol || !sp.assume.IsPositive(base.Name) {
		return expr.Invalid, false
	}
	lnBase := sp.store.Function("ln", []expr.Handle{n.Children[0]})
	return sp.store.Mul([]expr.Handle{n.Children[1], lnBase}), true
}

// lnOfPositiveProduct rewrites ln(u) -> ln(f1) + ... + ln(fn) when u is a
// product and every factor is a symbol known to be positive. The rewrite
// is unsound in general — ln(a*b) = ln(a) + ln(b) only once both factors'
// signs are pinned down — so it only fires under the assumption guard,
// unlike ln(exp(u)), which the spec states unconditionally.
func (sp *simplifier) lnOfPositiveProduct(u expr.Handle) (expr.Handle, bool) {
	n := sp.store.Get(u)
	if n.Op != expr.OpMul {
		return expr.Invalid, false
	}
	terms := make([]expr.Handle, len(n.Children))
	for i, f := range n.Children {
		fn := sp.store.Get(f)
		if fn.Op != expr.OpSymbol || !sp.assume.IsPositive(fn.Name) {
			return expr.Invalid, false
		}
		terms[i] = sp.store.Function("ln", []expr.Handle{f})
	}
	return sp.store.Add(terms), true
}

// foldPythagorean scans the fully-grouped term list of an Add for a
// sin(u)^2 + cos(u)^2 pair sharing the same argument u and collapses it
// to the integer 1, replacing both terms with the constant and leaving
// the rest of the sum untouched. Only one such pair is folded per call;
// the Add canonicalizer that runs after folding re-sorts the survivors.
func foldPythagorean(s *expr.Store, terms []expr.Handle) []expr.Handle {
	return foldSquarePair(s, terms, "sin", "cos")
}

// foldHyperbolicIdentity folds cosh(u)^2 - sinh(u)^2 -> 1. Because Add's
// term list already carries signed coefficients folded into each term
// (via splitCoefficient upstream), the "subtraction" is just a cosh^2
// term with coefficient +1 paired with a sinh^2 term with coefficient -1.
// foldSquarePair matches only coefficient-1 terms, so this helper calls a
// dedicated signed variant.
func foldHyperbolicIdentity(s *expr.Store, terms []expr.Handle) []expr.Handle {
	return foldSignedSquarePair(s, terms, "cosh", "sinh")
}

// foldSquarePair finds term1 = fn1(u)^2 and term2 = fn2(u)^2 for some
// shared u, each with coefficient 1, and replaces the pair with the
// integer 1.
func foldSquarePair(s *expr.Store, terms []expr.Handle, fn1, fn2 string) []expr.Handle {
	for i := 0; i < len(terms); i++ {
		argI, okI := squaredFunctionArg(s, terms[i], fn1)
		if !okI {
			continue
		}
		for j := 0; j < len(terms); j++ {
			if i == j {
				continue
			}
			argJ, okJ := squaredFunctionArg(s, terms[j], fn2)
			if !okJ || argJ != argI {
				continue
			}
			return replacePairWithOne(s, terms, i, j)
		}
	}
	return terms
}

// foldSignedSquarePair finds fn1(u)^2 + (-1)*fn2(u)^2 (in either order)
// and replaces the pair with the integer 1, as required by
// cosh(u)^2 - sinh(u)^2 = 1.
func foldSignedSquarePair(s *expr.Store, terms []expr.Handle, fn1, fn2 string) []expr.Handle {
	for i := 0; i < len(terms); i++ {
		coefI, argI, fnI, okI := signedSquaredFunctionArg(s, terms[i], fn1, fn2)
		if !okI {
			continue
		}
		for j := 0; j < len(terms); j++ {
			if i == j {
				continue
			}
			coefJ, argJ, fnJ, okJ := signedSquaredFunctionArg(s, terms[j], fn1, fn2)
			if !okJ || argJ != argI || fnJ == fnI {
				continue
			}
			if coefI == 1 && fnI == fn1 && coefJ == -1 && fnJ == fn2 {
				return replacePairWithOne(s, terms, i, j)
			}
			if coefJ == 1 && fnJ == fn1 && coefI == -1 && fnI == fn2 {
				return replacePairWithOne(s, terms, i, j)
			}
		}
	}
	return terms
}

// squaredFunctionArg reports (u, true) when term is exactly fn(u)^2 with
// coefficient 1.
func squaredFunctionArg(s *expr.Store, term expr.Handle, fn string) (expr.Handle, bool) {
	n := s.Get(term)
	if n.Op != expr.OpPow || !isIntegerValue(s, n.Children[1], 2) {
		return expr.Invalid, false
	}
	if inner, ok := isFunctionNamed(s, n.Children[0], fn); ok {
		return inner.Children[0], true
	}
	return expr.Invalid, false
}

// signedSquaredFunctionArg reports the integer coefficient (1 or -1), the
// shared argument, and which of fn1/fn2 matched, for a term of the shape
// coeff * fnX(u)^2.
func signedSquaredFunctionArg(s *expr.Store, term expr.Handle, fn1, fn2 string) (int64, expr.Handle, string, bool) {
	n := s.Get(term)
	coeff := int64(1)
	body := term
	if n.Op == expr.OpMul && len(n.Children) == 2 {
		for i, c := range n.Children {
			if isIntegerValue(s, c, -1) {
				coeff = -1
				body = n.Children[1-i]
				break
			}
		}
	}
	if arg, ok := squaredFunctionArg(s, body, fn1); ok {
		return coeff, arg, fn1, true
	}
	if arg, ok := squaredFunctionArg(s, body, fn2); ok {
		return coeff, arg, fn2, true
	}
	return 0, expr.Invalid, "", false
}

func replacePairWithOne(s *expr.Store, terms []expr.Handle, i, j int) []expr.Handle {
	return replacePairWith(s, terms, i, j, s.Integer(1))
}

// replacePairWith drops terms[i] and terms[j] and appends replacement in
// their place.
func replacePairWith(s *expr.Store, terms []expr.Handle, i, j int, replacement expr.Handle) []expr.Handle {
	out := make([]expr.Handle, 0, len(terms)-1)
	for k, t := range terms {
		if k == i || k == j {
			continue
		}
		out = append(out, t)
	}
	out = append(out, replacement)
	return out
}

// halfAngleSquare rewrites Pow(base, 2) to (1-cos(u))/2 or (1+cos(u))/2
// when base is sin(u/2) or cos(u/2) respectively. It runs directly in
// simplifyPow rather than post-processing an Add's term list — unlike the
// pairing folds above, it needs only one term, so it fires wherever the
// Pow node appears, standalone or as one summand of a larger Add.
func halfAngleSquare(s *expr.Store, base, exp expr.Handle) (expr.Handle, bool) {
	if !isIntegerValue(s, exp, 2) {
		return expr.Invalid, false
	}
	inner := s.Get(base)
	if inner.Op != expr.OpFunction || len(inner.Children) != 1 {
		return expr.Invalid, false
	}
	u, ok := halvedArgument(s, inner.Children[0])
	if !ok {
		return expr.Invalid, false
	}
	half, _ := s.Rational(1, 2)
	cosU := s.Function("cos", []expr.Handle{u})
	switch inner.Name {
	case "sin":
		negCosU := s.Mul([]expr.Handle{s.Integer(-1), cosU})
		return s.Mul([]expr.Handle{half, s.Add([]expr.Handle{s.Integer(1), negCosU})}), true
	case "cos":
		return s.Mul([]expr.Handle{half, s.Add([]expr.Handle{s.Integer(1), cosU})}), true
	default:
		return expr.Invalid, false
	}
}

// halvedArgument reports (u, true) when arg is exactly u * (1/2), in
// either child order, as produced by the store's canonical Mul sorting.
func halvedArgument(s *expr.Store, arg expr.Handle) (expr.Handle, bool) {
	n := s.Get(arg)
	if n.Op != expr.OpMul || len(n.Children) != 2 {
		return expr.Invalid, false
	}
	for i, c := range n.Children {
		cn := s.Get(c)
		if cn.Op == expr.OpRational && cn.RatN == 1 && cn.RatD == 2 {
			return n.Children[1-i], true
		}
	}
	return expr.Invalid, false
}

// foldSumToProduct rewrites sin(a) + sin(b) -> 2*sin((a+b)/2)*cos((a-b)/2)
// when two bare (coefficient 1) sin terms with distinct arguments appear in
// an Add's term list.
func foldSumToProduct(s *expr.Store, terms []expr.Handle) []expr.Handle {
	for i := 0; i < len(terms); i++ {
		argI, okI := bareFunctionArg(s, terms[i], "sin")
		if !okI {
			continue
		}
		for j := i + 1; j < len(terms); j++ {
			argJ, okJ := bareFunctionArg(s, terms[j], "sin")
			if !okJ || argJ == argI {
				continue
			}
			half, _ := s.Rational(1, 2)
			negArgJ := s.Mul([]expr.Handle{s.Integer(-1), argJ})
			sumHalf := s.Mul([]expr.Handle{half, s.Add([]expr.Handle{argI, argJ})})
			diffHalf := s.Mul([]expr.Handle{half, s.Add([]expr.Handle{argI, negArgJ})})
			replacement := s.Mul([]expr.Handle{
				s.Integer(2),
				s.Function("sin", []expr.Handle{sumHalf}),
				s.Function("cos", []expr.Handle{diffHalf}),
			})
			return replacePairWith(s, terms, i, j, replacement)
		}
	}
	return terms
}

// bareFunctionArg reports (u, true) when term is exactly fn(u), with no
// surrounding coefficient.
func bareFunctionArg(s *expr.Store, term expr.Handle, fn string) (expr.Handle, bool) {
	if n, ok := isFunctionNamed(s, term, fn); ok {
		return n.Children[0], true
	}
	return expr.Invalid, false
}

// foldProductToSum rewrites 2*sin(u)*cos(u) -> sin(2u) when exactly that
// shape appears among a Mul's grouped factors. It only matches the
// literal coefficient 2 times one sin and one cos factor sharing an
// argument; anything else is left alone.
func foldProductToSum(s *expr.Store, factors []expr.Handle) []expr.Handle {
	var sinArg, cosArg expr.Handle
	sinIdx, cosIdx, coeffIdx := -1, -1, -1
	for i, f := range factors {
		if n, ok := isFunctionNamed(s, f, "sin"); ok && sinIdx == -1 {
			sinIdx = i
			sinArg = n.Children[0]
			continue
		}
		if n, ok := isFunctionNamed(s, f, "cos"); ok && cosIdx == -1 {
			cosIdx = i
			cosArg = n.Children[0]
			continue
		}
		if isIntegerValue(s, f, 2) && coeffIdx == -1 {
			coeffIdx = i
		}
	}
	if sinIdx == -1 || cosIdx == -1 || coeffIdx == -1 || sinArg != cosArg {
		return factors
	}

	double := s.Mul([]expr.Handle{s.Integer(2), sinArg})
	replacement := s.Function("sin", []expr.Handle{double})

	out := make([]expr.Handle, 0, len(factors)-2)
	for i, f := range factors {
		if i == sinIdx || i == cosIdx || i == coeffIdx {
			continue
		}
		out = append(out, f)
	}
	out = append(out, replacement)
	return out
}
