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

// Package poly implements dense univariate polynomials over exact
// rational coefficients: arithmetic, Euclidean division and GCD,
// square-free decomposition, resultants and discriminants via the
// Sylvester matrix, and partial fraction decomposition over distinct
// linear factors. It also bridges to and from the expr DAG for the
// polynomial-shaped subset of expressions the integrator and
// solver operate on.
package poly

import (
	goerrors "gopkg.in/src-d/go-errors.v1"

	"symmetrica/expr"
	"symmetrica/rational"
)

// ErrDivisionByZero is returned when dividing by the zero polynomial.
var ErrDivisionByZero = goerrors.NewKind("division by the zero polynomial")

// ErrDimensionMismatch is returned when an operation is attempted between
// two non-zero polynomials that name different variables.
var ErrDimensionMismatch = goerrors.NewKind("polynomials do not share a variable: %s vs %s")

// Polynomial is a dense univariate polynomial over a single named
// variable. coeffs[k] is the coefficient of x^k; trailing (highest
// degree) zero coefficients are always trimmed, so the zero polynomial
// is the empty coefficient sequence.
type Polynomial struct {
	variable string
	coeffs   []rational.Rational
}

// New constructs a trimmed polynomial in variable with the given dense
// coefficient list, lowest degree first.
func New(variable string, coeffs []rational.Rational) Polynomial {
	return Polynomial{variable: variable, coeffs: trim(coeffs)}
}

// Zero returns the zero polynomial in variable.
func Zero(variable string) Polynomial {
	return Polynomial{variable: variable, coeffs: nil}
}

func trim(coeffs []rational.Rational) []rational.Rational {
	n := len(coeffs)
	for n > 0 && coeffs[n-1].IsZero() {
		n--
	}
	out := make([]rational.Rational, n)
	copy(out, coeffs[:n])
	return out
}

// Variable returns the polynomial's variable name.
func (p Polynomial) Variable() string { return p.variable }

// Coeffs returns a copy of the dense coefficient list, lowest degree
// first.
func (p Polynomial) Coeffs() []rational.Rational {
	out := make([]rational.Rational, len(p.coeffs))
	copy(out, p.coeffs)
	return out
}

// IsZero reports whether p is the zero polynomial.
func (p Polynomial) IsZero() bool { return len(p.coeffs) == 0 }

// Degree returns the polynomial's degree, or -1 for the zero polynomial.
func (p Polynomial) Degree() int { return len(p.coeffs) - 1 }

// LeadingCoefficient returns the coefficient of the highest-degree term,
// or zero for the zero polynomial.
func (p Polynomial) LeadingCoefficient() rational.Rational {
	if p.IsZero() {
		return rational.Zero()
	}
	return p.coeffs[len(p.coeffs)-1]
}

// Monic returns p divided by its leading coefficient. It fails with
// ErrDivisionByZero when p is the zero polynomial.
func (p Polynomial) Monic() (Polynomial, error) {
	if p.IsZero() {
		return Polynomial{}, ErrDivisionByZero.New()
	}
	lead := p.LeadingCoefficient()
	out := make([]rational.Rational, len(p.coeffs))
	for i, c := range p.coeffs {
		q, _ := c.Div(lead)
		out[i] = q
	}
	return Polynomial{variable: p.variable, coeffs: trim(out)}, nil
}

func checkVariables(a, b Polynomial) error {
	if a.IsZero() || b.IsZero() {
		return nil
	}
	if a.variable != b.variable {
		return ErrDimensionMismatch.New(a.variable, b.variable)
	}
	return nil
}

func sharedVariable(a, b Polynomial) string {
	if a.variable != "" {
		return a.variable
	}
	return b.variable
}

// Add returns a + b. It fails with ErrDimensionMismatch when both are
// non-zero and name different variables.
func (a Polynomial) Add(b Polynomial) (Polynomial, error) {
	if err := checkVariables(a, b); err != nil {
		return Polynomial{}, err
	}
	n := len(a.coeffs)
	if len(b.coeffs) > n {
		n = len(b.coeffs)
	}
	out := make([]rational.Rational, n)
	for i := 0; i < n; i++ {
		out[i] = at(a.coeffs, i).Add(at(b.coeffs, i))
	}
	return Polynomial{variable: sharedVariable(a, b), coeffs: trim(out)}, nil
}

// Subtract returns a - b. It fails with ErrDimensionMismatch when both
// are non-zero and name different variables.
func (a Polynomial) Subtract(b Polynomial) (Polynomial, error) {
	if err := checkVariables(a, b); err != nil {
		return Polynomial{}, err
	}
	n := len(a.coeffs)
	if len(b.coeffs) > n {
		n = len(b.coeffs)
	}
	out := make([]rational.Rational, n)
	for i := 0; i < n; i++ {
		out[i] = at(a.coeffs, i).Sub(at(b.coeffs, i))
	}
	return Polynomial{variable: sharedVariable(a, b), coeffs: trim(out)}, nil
}

// Multiply returns a * b. It fails with ErrDimensionMismatch when both
// are non-zero and name different variables.
func (a Polynomial) Multiply(b Polynomial) (Polynomial, error) {
	if err := checkVariables(a, b); err != nil {
		return Polynomial{}, err
	}
	if a.IsZero() || b.IsZero() {
		return Zero(sharedVariable(a, b)), nil
	}
	out := make([]rational.Rational, len(a.coeffs)+len(b.coeffs)-1)
	for i := range out {
		out[i] = rational.Zero()
	}
	for i, ac := range a.coeffs {
		for j, bc := range b.coeffs {
			out[i+j] = out[i+j].Add(ac.Mul(bc))
		}
	}
	return Polynomial{variable: sharedVariable(a, b), coeffs: trim(out)}, nil
}

func at(coeffs []rational.Rational, i int) rational.Rational {
	if i >= len(coeffs) {
		return rational.Zero()
	}
	return coeffs[i]
}

// DivideWithRemainder returns (quotient, remainder) such that
// dividend = quotient*divisor + remainder and degree(remainder) <
// degree(divisor). It fails with ErrDivisionByZero when divisor is zero,
// and with ErrDimensionMismatch when both are non-zero and name
// different variables.
func (dividend Polynomial) DivideWithRemainder(divisor Polynomial) (Polynomial, Polynomial, error) {
	if divisor.IsZero() {
		return Polynomial{}, Polynomial{}, ErrDivisionByZero.New()
	}
	if err := checkVariables(dividend, divisor); err != nil {
		return Polynomial{}, Polynomial{}, err
	}
	variable := sharedVariable(dividend, divisor)
	remainder := append([]rational.Rational(nil), dividend.coeffs...)
	quotientDeg := dividend.Degree() - divisor.Degree()
	var quotient []rational.Rational
	if quotientDeg >= 0 {
		quotient = make([]rational.Rational, quotientDeg+1)
		for i := range quotient {
			quotient[i] = rational.Zero()
		}
	}

	divisorLead := divisor.LeadingCoefficient()
	for {
		degR := lastNonzero(remainder)
		if degR < divisor.Degree() {
			break
		}
		coeff, _ := remainder[degR].Div(divisorLead)
		shift := degR - divisor.Degree()
		quotient[shift] = coeff
		for i, dc := range divisor.coeffs {
			remainder[shift+i] = remainder[shift+i].Sub(coeff.Mul(dc))
		}
	}

	return Polynomial{variable: variable, coeffs: trim(quotient)},
		Polynomial{variable: variable, coeffs: trim(remainder)},
		nil
}

// lastNonzero returns the index of the highest-degree non-zero
// coefficient in coeffs, or -1 when every coefficient is zero.
func lastNonzero(coeffs []rational.Rational) int {
	for i := len(coeffs) - 1; i >= 0; i-- {
		if !coeffs[i].IsZero() {
			return i
		}
	}
	return -1
}

// EuclideanGCD returns the monic greatest common divisor of a and b via
// the Euclidean algorithm (repeated division until a zero remainder).
func EuclideanGCD(a, b Polynomial) (Polynomial, error) {
	if err := checkVariables(a, b); err != nil {
		return Polynomial{}, err
	}
	variable := sharedVariable(a, b)
	if a.IsZero() {
		if b.IsZero() {
			return Zero(variable), nil
		}
		return b.Monic()
	}
	for !b.IsZero() {
		_, r, err := a.DivideWithRemainder(b)
		if err != nil {
			return Polynomial{}, err
		}
		a, b = b, r
	}
	if a.IsZero() {
		return Zero(variable), nil
	}
	return a.Monic()
}

// Derivative returns the symbolic derivative of p with respect to its
// variable.
func (p Polynomial) Derivative() Polynomial {
	if p.Degree() <= 0 {
		return Zero(p.variable)
	}
	out := make([]rational.Rational, p.Degree())
	for i := 1; i < len(p.coeffs); i++ {
		out[i-1] = p.coeffs[i].Mul(rational.FromInt(int64(i)))
	}
	return Polynomial{variable: p.variable, coeffs: trim(out)}
}

// Evaluate computes p(point) via Horner's method.
func (p Polynomial) Evaluate(point rational.Rational) rational.Rational {
	acc := rational.Zero()
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		acc = acc.Mul(point).Add(p.coeffs[i])
	}
	return acc
}

// Factor pairs a square-free factor with its multiplicity in the
// original polynomial's factorization.
type Factor struct {
	Factor       Polynomial
	Multiplicity int
}

// SquareFreeDecomposition returns the square-free factors of p (Yun's
// algorithm over the rationals): p = c * prod(factor_i ^ i), with each
// factor_i square-free and pairwise coprime. Every returned factor is
// monic and the leading constant c appears in none of them; callers
// that need it should take p.LeadingCoefficient().
func (p Polynomial) SquareFreeDecomposition() ([]Factor, error) {
	if p.IsZero() {
		return nil, nil
	}
	monicP, err := p.Monic()
	if err != nil {
		return nil, err
	}

	deriv := monicP.Derivative()
	g, err := EuclideanGCD(monicP, deriv)
	if err != nil {
		return nil, err
	}

	var factors []Factor
	if g.Degree() <= 0 {
		factors = append(factors, Factor{Factor: monicP, Multiplicity: 1})
		return factors, nil
	}

	c, _, err := monicP.DivideWithRemainder(g)
	if err != nil {
		return nil, err
	}
	w, _, err := deriv.DivideWithRemainder(g)
	if err != nil {
		return nil, err
	}

	mult := 1
	for c.Degree() > 0 {
		cDeriv := c.Derivative()
		y, err := w.Subtract(cDeriv)
		if err != nil {
			return nil, err
		}
		factor, err := EuclideanGCD(c, y)
		if err != nil {
			return nil, err
		}
		if factor.Degree() > 0 {
			factors = append(factors, Factor{Factor: factor, Multiplicity: mult})
		}
		nextC, _, err := c.DivideWithRemainder(factor)
		if err != nil {
			return nil, err
		}
		nextW, _, err := y.DivideWithRemainder(factor)
		if err != nil {
			return nil, err
		}
		c, w = nextC, nextW
		mult++
	}
	return factors, nil
}

// Resultant computes the resultant of f and g as the determinant of
// their Sylvester matrix, via Gaussian elimination over the exact
// rational field (no floating point is ever involved, so the result is
// exact; this plays the role fraction-free elimination serves over an
// integer domain). The resultant is zero exactly when f and g share a
// common factor of positive degree.
func Resultant(f, g Polynomial) (rational.Rational, error) {
	if err := checkVariables(f, g); err != nil {
		return rational.Rational{}, err
	}
	if f.IsZero() || g.IsZero() {
		return rational.Zero(), nil
	}
	n, m := f.Degree(), g.Degree()
	size := n + m
	if size == 0 {
		return rational.One(), nil
	}

	matrix := make([][]rational.Rational, size)
	for i := range matrix {
		matrix[i] = make([]rational.Rational, size)
		for j := range matrix[i] {
			matrix[i][j] = rational.Zero()
		}
	}
	// m rows of f's coefficients, shifted.
	for row := 0; row < m; row++ {
		for k := 0; k <= n; k++ {
			matrix[row][row+k] = f.coeffs[n-k]
		}
	}
	// n rows of g's coefficients, shifted.
	for row := 0; row < n; row++ {
		for k := 0; k <= m; k++ {
			matrix[m+row][row+k] = g.coeffs[m-k]
		}
	}

	return determinant(matrix), nil
}

// determinant computes the determinant of a square rational matrix via
// Gaussian elimination with partial pivoting (by sign only, since
// rational division is always exact).
func determinant(m [][]rational.Rational) rational.Rational {
	n := len(m)
	sign := rational.One()
	for col := 0; col < n; col++ {
		pivot := -1
		for row := col; row < n; row++ {
			if !m[row][col].IsZero() {
				pivot = row
				break
			}
		}
		if pivot == -1 {
			return rational.Zero()
		}
		if pivot != col {
			m[pivot], m[col] = m[col], m[pivot]
			sign = sign.Neg()
		}
		for row := col + 1; row < n; row++ {
			if m[row][col].IsZero() {
				continue
			}
			factor, _ := m[row][col].Div(m[col][col])
			for k := col; k < n; k++ {
				m[row][k] = m[row][k].Sub(factor.Mul(m[col][k]))
			}
		}
	}
	det := sign
	for i := 0; i < n; i++ {
		det = det.Mul(m[i][i])
	}
	return det
}

// Discriminant returns ((-1)^(n(n-1)/2) / leading) * Resultant(p, p')
// for p of degree n.
func (p Polynomial) Discriminant() (rational.Rational, error) {
	n := p.Degree()
	if n <= 0 {
		return rational.Zero(), nil
	}
	deriv := p.Derivative()
	res, err := Resultant(p, deriv)
	if err != nil {
		return rational.Rational{}, err
	}
	signExp := (n * (n - 1) / 2) % 2
	sign := rational.One()
	if signExp != 0 {
		sign = sign.Neg()
	}
	lead := p.LeadingCoefficient()
	scaled, err := sign.Div(lead)
	if err != nil {
		return rational.Rational{}, err
	}
	return scaled.Mul(res), nil
}

// Residue pairs a simple-pole residue with the root it is taken at.
type Residue struct {
	Residue rational.Rational
	Root    rational.Rational
}

// divisors returns the positive divisors of the absolute value of v,
// or just 1 when v is zero.
func divisors(v int64) []int64 {
	if v < 0 {
		v = -v
	}
	if v == 0 {
		return []int64{1}
	}
	var out []int64
	for d := int64(1); d*d <= v; d++ {
		if v%d == 0 {
			out = append(out, d)
			if d != v/d {
				out = append(out, v/d)
			}
		}
	}
	return out
}

// RationalRoots enumerates the rational roots of p via the rational
// root theorem. Callers that need to deflate a polynomial of degree
// three or higher down to a quadratic use this to find a root to
// divide out.
func RationalRoots(p Polynomial) []rational.Rational {
	return rationalRoots(p)
}

// rationalRoots enumerates candidate rational roots of p via the
// rational root theorem (divisors of the constant term over divisors of
// the leading coefficient, both signs) and returns those that are
// actually roots.
func rationalRoots(p Polynomial) []rational.Rational {
	if p.IsZero() || p.Degree() == 0 {
		return nil
	}
	constTerm := p.coeffs[0]
	if constTerm.IsZero() {
		// x is a factor; 0 is a root. Still enumerate the rest via the
		// deflated polynomial's constant term.
		deflated := Polynomial{variable: p.variable, coeffs: p.coeffs[1:]}
		roots := rationalRoots(trimPoly(deflated))
		return append([]rational.Rational{rational.Zero()}, roots...)
	}

	// Scale by the lcm of the coefficient denominators so the theorem's
	// integer-coefficient divisor test applies.
	scale := int64(1)
	for _, c := range p.coeffs {
		scale = scale / rational.GCD(scale, c.Den()) * c.Den()
	}
	numDivisors := divisors(constTerm.Mul(rational.FromInt(scale)).Num())
	denDivisors := divisors(p.LeadingCoefficient().Mul(rational.FromInt(scale)).Num())
	seen := make(map[string]bool)
	var roots []rational.Rational
	for _, nd := range numDivisors {
		for _, dd := range denDivisors {
			for _, sign := range []int64{1, -1} {
				cand, err := rational.New(sign*nd, dd)
				if err != nil {
					continue
				}
				key := cand.String()
				if seen[key] {
					continue
				}
				seen[key] = true
				if p.Evaluate(cand).IsZero() {
					roots = append(roots, cand)
				}
			}
		}
	}
	return roots
}

func trimPoly(p Polynomial) Polynomial {
	return Polynomial{variable: p.variable, coeffs: trim(p.coeffs)}
}

// PartialFractionsSimple decomposes num/den as quotient + sum of
// residue_i/(x - root_i), defined only when den factors into distinct
// linear factors over the rationals. ok is false when den has a
// repeated or irrational/complex root.
func PartialFractionsSimple(num, den Polynomial) (quotient Polynomial, residues []Residue, ok bool) {
	if den.IsZero() {
		return Polynomial{}, nil, false
	}
	if err := checkVariables(num, den); err != nil {
		return Polynomial{}, nil, false
	}

	q, remainder, err := num.DivideWithRemainder(den)
	if err != nil {
		return Polynomial{}, nil, false
	}

	roots := rationalRoots(den)
	if len(roots) != den.Degree() {
		return Polynomial{}, nil, false
	}

	denDeriv := den.Derivative()
	out := make([]Residue, 0, len(roots))
	for _, r := range roots {
		denAtR := denDeriv.Evaluate(r)
		if denAtR.IsZero() {
			return Polynomial{}, nil, false
		}
		numAtR := remainder.Evaluate(r)
		residue, _ := numAtR.Div(denAtR)
		out = append(out, Residue{Residue: residue, Root: r})
	}
	return q, out, true
}

// ExpressionToPolynomial attempts to read h as a polynomial in variable:
// a sum of terms, each a rational coefficient times a non-negative
// integer power of the variable (or the variable itself, or a rational
// constant). It fails (ok=false) when the expression is not of this
// shape.
func ExpressionToPolynomial(s *expr.Store, h expr.Handle, variable string) (Polynomial, bool) {
	var terms []expr.Handle
	n := s.Get(h)
	if n.Op == expr.OpAdd {
		terms = n.Children
	} else {
		terms = []expr.Handle{h}
	}

	coeffs := map[int]rational.Rational{}
	for _, t := range terms {
		coeff, exp, ok := monomial(s, t, variable)
		if !ok {
			return Polynomial{}, false
		}
		existing, had := coeffs[exp]
		if had {
			coeffs[exp] = existing.Add(coeff)
		} else {
			coeffs[exp] = coeff
		}
	}

	maxDeg := -1
	for exp := range coeffs {
		if exp > maxDeg {
			maxDeg = exp
		}
	}
	if maxDeg < 0 {
		return Zero(variable), true
	}
	dense := make([]rational.Rational, maxDeg+1)
	for i := range dense {
		dense[i] = rational.Zero()
	}
	for exp, c := range coeffs {
		dense[exp] = c
	}
	return New(variable, dense), true
}

// monomial reads term as coefficient * variable^exponent, returning the
// rational coefficient and the non-negative integer exponent.
func monomial(s *expr.Store, term expr.Handle, variable string) (rational.Rational, int, bool) {
	n := s.Get(term)
	switch n.Op {
	case expr.OpInteger:
		return rational.FromInt(n.Int), 0, true
	case expr.OpRational:
		r, _ := rational.New(n.RatN, n.RatD)
		return r, 0, true
	case expr.OpSymbol:
		if n.Name == variable {
			return rational.One(), 1, true
		}
		return rational.Rational{}, 0, false
	case expr.OpPow:
		base := s.Get(n.Children[0])
		exp := s.Get(n.Children[1])
		if base.Op == expr.OpSymbol && base.Name == variable && exp.Op == expr.OpInteger && exp.Int >= 0 {
			return rational.One(), int(exp.Int), true
		}
		return rational.Rational{}, 0, false
	case expr.OpMul:
		coeff := rational.One()
		exp := 0
		sawVariable := false
		for _, c := range n.Children {
			cCoeff, cExp, ok := monomial(s, c, variable)
			if !ok {
				return rational.Rational{}, 0, false
			}
			if cExp > 0 {
				if sawVariable {
					return rational.Rational{}, 0, false
				}
				sawVariable = true
				exp = cExp
			}
			coeff = coeff.Mul(cCoeff)
		}
		return coeff, exp, true
	default:
		return rational.Rational{}, 0, false
	}
}

// PolynomialToExpression rebuilds p as a canonical sum of monomial
// terms coefficient * variable^exponent.
func PolynomialToExpression(s *expr.Store, p Polynomial) expr.Handle {
	if p.IsZero() {
		return s.Integer(0)
	}
	sym := s.Symbol(p.variable)
	var terms []expr.Handle
	for exp, c := range p.coeffs {
		if c.IsZero() {
			continue
		}
		coeffHandle := numericHandle(s, c)
		switch exp {
		case 0:
			terms = append(terms, coeffHandle)
		case 1:
			terms = append(terms, s.Mul([]expr.Handle{coeffHandle, sym}))
		default:
			power := s.Pow(sym, s.Integer(int64(exp)))
			terms = append(terms, s.Mul([]expr.Handle{coeffHandle, power}))
		}
	}
	return s.Add(terms)
}

func numericHandle(s *expr.Store, r rational.Rational) expr.Handle {
	if r.IsInteger() {
		return s.Integer(r.Num())
	}
	h, _ := s.Rational(r.Num(), r.Den())
	return h
}
