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

// Package solve implements a factor-and-deflate univariate polynomial
// solver: square-free decomposition drives a factoring loop, linear and
// quadratic factors close in closed form, and higher-degree factors are
// deflated by synthetic division on rational roots found via the
// rational root theorem, recursing until nothing but a closed-form
// factor or an irreducible remainder is left.
package solve

import (
	"symmetrica/assume"
	"symmetrica/config"
	"symmetrica/expr"
	"symmetrica/poly"
	"symmetrica/rational"
)

// SolveUnivariate returns the roots of h = 0 as a function of variable.
// It returns (roots, true) on success — roots may be empty when h is the
// zero polynomial (infinitely many solutions) or a nonzero constant (no
// solutions) — or (nil, false) when h does not convert to a polynomial
// in variable, or a degree-three-or-higher factor remains after
// rational-root deflation with no rational root left to find.
//
// A root is listed once per occurrence of its irreducible factor: a
// repeated factor in h, surfaced by the square-free decomposition,
// produces a repeated root in the result.
func SolveUnivariate(store *expr.Store, h expr.Handle, variable string, _ *assume.Assumptions, cfg config.Config) ([]expr.Handle, bool) {
	p, ok := poly.ExpressionToPolynomial(store, h, variable)
	if !ok {
		return nil, false
	}

	if p.IsZero() {
		return nil, true
	}
	if p.Degree() == 0 {
		return nil, true
	}

	factors, err := p.SquareFreeDecomposition()
	if err != nil {
		return nil, false
	}

	startNodes := store.NodeCount()
	var roots []expr.Handle
	for _, f := range factors {
		rs, ok := solveFactor(store, f.Factor, cfg, startNodes, 0)
		if !ok {
			return nil, false
		}
		for i := 0; i < f.Multiplicity; i++ {
			roots = append(roots, rs...)
		}
	}
	return roots, true
}

// solveFactor solves one square-free polynomial factor to zero,
// deflating degree by degree via rational roots until a linear or
// quadratic remainder closes the recursion. Root expressions are built
// directly in store, the same store the caller passed to
// SolveUnivariate. startNodes is the store's node count when
// SolveUnivariate began, bounding how much the deflation loop may grow
// the store rather than the store's absolute size.
func solveFactor(store *expr.Store, p poly.Polynomial, cfg config.Config, startNodes, depth int) ([]expr.Handle, bool) {
	if depth > cfg.MaxRecursionDepth {
		return nil, false
	}
	if cfg.MaxNodes > 0 && store.NodeCount()-startNodes > cfg.MaxNodes {
		return nil, false
	}

	switch p.Degree() {
	case -1, 0:
		return nil, true
	case 1:
		return []expr.Handle{solveLinear(store, p)}, true
	case 2:
		return solveQuadratic(store, p), true
	}

	root, rest, ok := deflateOneRationalRoot(store, p)
	if !ok {
		return nil, false
	}
	tail, ok := solveFactor(store, rest, cfg, startNodes, depth+1)
	if !ok {
		return nil, false
	}
	return append([]expr.Handle{root}, tail...), true
}

// solveLinear returns -b/a for ax + b.
func solveLinear(store *expr.Store, p poly.Polynomial) expr.Handle {
	coeffs := p.Coeffs()
	b := coeffs[0]
	a := coeffs[1]
	r, _ := b.Neg().Div(a)
	return numericHandle(store, r)
}

// solveQuadratic returns the two roots of ax^2 + bx + c via the
// quadratic formula. When the discriminant is a perfect square of a
// rational, the whole computation is done in exact rational arithmetic
// and the roots come back as plain numeric handles; otherwise sqrt(Δ)
// stays a symbolic Pow(Δ, 1/2) and 1/(2a) — itself always rational — is
// carried as an exact coefficient rather than a symbolic Pow(2a, -1).
func solveQuadratic(store *expr.Store, p poly.Polynomial) []expr.Handle {
	coeffs := p.Coeffs()
	b := coeffs[1]
	a := coeffs[2]

	disc, _ := p.Discriminant()
	twoA := a.Add(a)
	invTwoA, _ := rational.One().Div(twoA)
	negB := b.Neg()

	if root, ok := disc.IsPerfectSquare(); ok {
		r1 := negB.Add(root).Mul(invTwoA)
		r2 := negB.Sub(root).Mul(invTwoA)
		return []expr.Handle{numericHandle(store, r1), numericHandle(store, r2)}
	}

	half, _ := store.Rational(1, 2)
	sqrtDisc := store.Pow(numericHandle(store, disc), half)
	negBHandle := numericHandle(store, negB)
	invTwoAHandle := numericHandle(store, invTwoA)

	plus := store.Add([]expr.Handle{negBHandle, sqrtDisc})
	minus := store.Add([]expr.Handle{negBHandle, store.Mul([]expr.Handle{store.Integer(-1), sqrtDisc})})

	return []expr.Handle{
		store.Mul([]expr.Handle{plus, invTwoAHandle}),
		store.Mul([]expr.Handle{minus, invTwoAHandle}),
	}
}

// deflateOneRationalRoot finds a single rational root of p (degree >=
// 3) via the rational root theorem and divides it out by synthetic
// division, returning the root as an expression handle in store and the
// quotient polynomial. ok is false when p has no rational root, meaning
// p is an irreducible remainder the solver cannot factor further.
func deflateOneRationalRoot(store *expr.Store, p poly.Polynomial) (expr.Handle, poly.Polynomial, bool) {
	roots := poly.RationalRoots(p)
	if len(roots) == 0 {
		return expr.Invalid, poly.Polynomial{}, false
	}
	r := roots[0]

	linear := poly.New(p.Variable(), []rational.Rational{r.Neg(), rational.One()})
	quotient, _, err := p.DivideWithRemainder(linear)
	if err != nil {
		return expr.Invalid, poly.Polynomial{}, false
	}

	return numericHandle(store, r), quotient, true
}

func numericHandle(store *expr.Store, r rational.Rational) expr.Handle {
	if r.IsInteger() {
		return store.Integer(r.Num())
	}
	h, _ := store.Rational(r.Num(), r.Den())
	return h
}
