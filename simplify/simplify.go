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

// Package simplify implements the bottom-up rewriting pass: like-term
// collection, power merging, and assumption-guarded logarithm, exponent,
// radical, and trigonometric identities. Simplify is total and idempotent
// by handle identity: it never fails, and simplifying an already-simplified
// expression returns the same handle.
package simplify

import (
	"symmetrica/assume"
	"symmetrica/expr"
	"symmetrica/rational"

	"github.com/sirupsen/logrus"
)

// Option configures the simplifier, mirroring expr.Store's optional
// logger injection.
type Option func(*simplifier)

// WithLogger attaches a logrus logger that receives Debug-level events
// when a rewrite rule fires.
func WithLogger(l *logrus.Logger) Option {
	return func(sp *simplifier) { sp.logger = l }
}

type simplifier struct {
	store  *expr.Store
	assume *assume.Assumptions
	logger *logrus.Logger
	memo   map[expr.Handle]expr.Handle
}

// Simplify reduces h to its simplified form under the given assumption
// context (which may be nil, meaning no assumptions are asserted).
func Simplify(store *expr.Store, h expr.Handle, a *assume.Assumptions, opts ...Option) expr.Handle {
	sp := &simplifier{store: store, assume: a, memo: make(map[expr.Handle]expr.Handle)}
	for _, opt := range opts {
		opt(sp)
	}
	return sp.simplify(h)
}

func (sp *simplifier) simplify(h expr.Handle) expr.Handle {
	if out, ok := sp.memo[h]; ok {
		return out
	}
	n := sp.store.Get(h)
	var out expr.Handle
	switch n.Op {
	case expr.OpInteger, expr.OpRational, expr.OpSymbol:
		out = h
	case expr.OpAdd:
		out = sp.simplifyAdd(n.Children)
	case expr.OpMul:
		out = sp.simplifyMul(n.Children)
	case expr.OpPow:
		out = sp.simplifyPow(n.Children[0], n.Children[1])
	case expr.OpFunction:
		out = sp.simplifyFunction(n.Name, n.Children)
	default:
		out = h
	}
	sp.memo[h] = out
	sp.log(h, out)
	return out
}

func (sp *simplifier) log(in, out expr.Handle) {
	if sp.logger == nil {
		return
	}
	sp.logger.WithFields(logrus.Fields{
		"in":  sp.store.Digest(in),
		"out": sp.store.Digest(out),
	}).Debug("simplify: rewrote node")
}

// simplifyAdd collects like terms: each simplified term splits into
// (coefficient, base), terms sharing a base have their coefficients
// summed, zero-coefficient groups are dropped, and the survivors are
// rebuilt and handed to the store's canonical Add for final folding,
// sorting, and degenerate-arity collapse.
func (sp *simplifier) simplifyAdd(children []expr.Handle) expr.Handle {
	order := make([]expr.Handle, 0, len(children))
	groups := make(map[expr.Handle]*rational.Rational)

	for _, c := range children {
		sc := sp.simplify(c)
		coeff, base := splitCoefficient(sp.store, sc)
		if existing, ok := groups[base]; ok {
			sum := existing.Add(coeff)
			groups[base] = &sum
		} else {
			order = append(order, base)
			v := coeff
			groups[base] = &v
		}
	}

	terms := make([]expr.Handle, 0, len(order))
	for _, base := range order {
		coeff := *groups[base]
		if coeff.IsZero() {
			continue
		}
		terms = append(terms, rebuildTerm(sp.store, coeff, base))
	}

	terms = foldPythagorean(sp.store, terms)
	terms = foldHyperbolicIdentity(sp.store, terms)
	terms = foldSumToProduct(sp.store, terms)

	return sp.store.Add(terms)
}

// rebuildTerm reconstructs coefficient * base, letting the store's
// canonical Mul drop an identity coefficient or fold the base==1
// constant sentinel automatically.
func rebuildTerm(s *expr.Store, coeff rational.Rational, base expr.Handle) expr.Handle {
	coeffHandle := numericHandle(s, coeff)
	return s.Mul([]expr.Handle{coeffHandle, base})
}

func numericHandle(s *expr.Store, r rational.Rational) expr.Handle {
	if r.IsInteger() {
		return s.Integer(r.Num())
	}
	h, _ := s.Rational(r.Num(), r.Den())
	return h
}

// simplifyMul merges powers of equal bases: each simplified factor splits
// into (base, exponent), factors sharing a base have their exponents
// summed (as expressions — exponents may themselves be symbolic), and the
// survivors are rebuilt as base^exponent and handed to the store's
// canonical Mul for final numeric folding, sorting, and degenerate-arity
// collapse.
func (sp *simplifier) simplifyMul(children []expr.Handle) expr.Handle {
	order := make([]expr.Handle, 0, len(children))
	exponents := make(map[expr.Handle][]expr.Handle)

	for _, c := range children {
		sc := sp.simplify(c)
		base, exp := splitPower(sp.store, sc)
		if _, ok := exponents[base]; !ok {
			order = append(order, base)
		}
		exponents[base] = append(exponents[base], exp)
	}

	factors := make([]expr.Handle, 0, len(order))
	for _, base := range order {
		expSum := sp.store.Add(exponents[base])
		factors = append(factors, sp.store.Pow(base, expSum))
	}

	factors = foldProductToSum(sp.store, factors)

	return sp.store.Mul(factors)
}

// simplifyPow simplifies base and exponent, then combines nested powers:
// Pow(Pow(inner, e1), e) -> Pow(inner, e1*e) when e is an integer, or when
// inner is a positive number or a symbol known positive. The
// sqrt-of-square case (e1=2, e=1/2) therefore reduces to x only for a
// positive x; otherwise the nested power is kept.
func (sp *simplifier) simplifyPow(base, exp expr.Handle) expr.Handle {
	sBase := sp.simplify(base)
	sExp := sp.simplify(exp)

	baseNode := sp.store.Get(sBase)
	expNode := sp.store.Get(sExp)

	if baseNode.Op == expr.OpPow {
		inner := baseNode.Children[0]
		innerNode := sp.store.Get(inner)
		innerPositive := (innerNode.Op == expr.OpSymbol && sp.assume.IsPositive(innerNode.Name)) ||
			(isNumeric(sp.store, inner) && ratOf(sp.store, inner).Sign() > 0)
		if expNode.Op == expr.OpInteger || innerPositive {
			innerExp := baseNode.Children[1]
			combinedExp := sp.store.Mul([]expr.Handle{innerExp, sExp})
			return sp.store.Pow(inner, combinedExp)
		}
	}

	if rewritten, ok := halfAngleSquare(sp.store, sBase, sExp); ok {
		return rewritten
	}

	// Pow(Mul(f1,...,fn), k) -> Mul(Pow(f1,k),...,Pow(fn,k)) for an integer
	// k: (f1*...*fn)^k = f1^k*...*fn^k holds regardless of the factors'
	// signs whenever k is an integer, unlike a fractional exponent, which
	// needs a positivity side condition per factor to distribute soundly.
	if baseNode.Op == expr.OpMul && expNode.Op == expr.OpInteger {
		distributed := make([]expr.Handle, len(baseNode.Children))
		for i, f := range baseNode.Children {
			distributed[i] = sp.simplifyPow(f, sExp)
		}
		return sp.simplifyMul(distributed)
	}

	// Pow(0, 0) is preserved literally per the store's own canonicalization
	// rule, and a zero base with a negative exponent is not folded either;
	// every other numeric base with an integer exponent folds.
	baseIsZero := isNumeric(sp.store, sBase) && ratOf(sp.store, sBase).IsZero()
	if isNumeric(sp.store, sBase) && expNode.Op == expr.OpInteger && !(baseIsZero && expNode.Int <= 0) {
		folded, err := ratOf(sp.store, sBase).Pow(int(expNode.Int))
		if err == nil {
			return numericHandle(sp.store, folded)
		}
	}

	// Pow(v, 1/n) for a positive numeric v extracts any perfect n-th-power
	// factor: v = k^n * rest rewrites to k * Pow(rest, 1/n), leaving the
	// radical in place when v carries no such factor (k == 1).
	if n, ok := unitFractionDenominator(sp.store, sExp); ok && isNumeric(sp.store, sBase) {
		if rewritten, ok := sp.extractRadical(sBase, sExp, n); ok {
			return rewritten
		}
	}

	return sp.store.Pow(sBase, sExp)
}

// unitFractionDenominator reports (n, true) when exp is the literal
// rational 1/n for some integer n >= 2.
func unitFractionDenominator(s *expr.Store, exp expr.Handle) (int, bool) {
	n := s.Get(exp)
	if n.Op != expr.OpRational || n.RatN != 1 || n.RatD < 2 {
		return 0, false
	}
	return int(n.RatD), true
}

// extractRadical rewrites Pow(base, 1/n) to outside * Pow(inside, 1/n)
// using rational.Rational.ExtractRadical, or to outside alone when inside
// reduces to 1 (base was itself a perfect n-th power). It reports false
// when base carries no extractable factor, leaving the radical untouched.
func (sp *simplifier) extractRadical(base, exp expr.Handle, n int) (expr.Handle, bool) {
	r := ratOf(sp.store, base)
	if r.Sign() <= 0 {
		return expr.Invalid, false
	}
	outside, inside := r.ExtractRadical(n)
	if outside.Equal(rational.One()) {
		return expr.Invalid, false
	}
	outsideHandle := numericHandle(sp.store, outside)
	if inside.Equal(rational.One()) {
		return outsideHandle, true
	}
	radical := sp.store.Pow(numericHandle(sp.store, inside), exp)
	return sp.store.Mul([]expr.Handle{outsideHandle, radical}), true
}
