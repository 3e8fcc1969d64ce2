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

// Package rational implements exact, always-reduced rational arithmetic
// over bounded int64 numerator/denominator pairs. It is the arithmetic
// substrate for the expr and poly packages.
package rational

import (
	"fmt"
	"math"

	"github.com/spf13/cast"
	goerrors "gopkg.in/src-d/go-errors.v1"
)

// ErrZeroDenominator is returned when a rational is constructed with a
// zero denominator.
var ErrZeroDenominator = goerrors.NewKind("zero denominator")

// ErrDivisionByZero is returned when dividing by a zero rational.
var ErrDivisionByZero = goerrors.NewKind("division by zero")

// Rational is an exact, always-reduced fraction n/d with d >= 1 and
// gcd(|n|, d) == 1. The zero value has d == 0: it reports IsZero but is not
// Equal to Zero(), and arithmetic on it does not give correct results.
type Rational struct {
	n, d int64
}

// GCD returns the non-negative greatest common divisor of a and b, with
// GCD(0, n) = |n|.
func GCD(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func reduce(n, d int64) Rational {
	if d < 0 {
		n, d = -n, -d
	}
	if n == 0 {
		return Rational{0, 1}
	}
	g := GCD(n, d)
	return Rational{n / g, d / g}
}

// New constructs a reduced rational n/d. It fails with ErrZeroDenominator
// when d is zero.
func New(n, d int64) (Rational, error) {
	if d == 0 {
		return Rational{}, ErrZeroDenominator.New()
	}
	return reduce(n, d), nil
}

// MustNew is like New but panics on error. Intended for internal call
// sites where d is already known to be non-zero, such as re-wrapping an
// already-reduced pair.
func MustNew(n, d int64) Rational {
	r, err := New(n, d)
	if err != nil {
		panic(err)
	}
	return r
}

// FromInt returns the rational representing the integer n.
func FromInt(n int64) Rational { return Rational{n, 1} }

// FromAny coerces a mixed numeric-literal value (int, int64, int32,
// string, ...) into an integer-valued Rational, the way fixture-building
// test helpers across the pack accept loosely typed literals.
func FromAny(v interface{}) (Rational, error) {
	n, err := cast.ToInt64E(v)
	if err != nil {
		return Rational{}, fmt.Errorf("rational: cannot convert %v to an integer: %w", v, err)
	}
	return FromInt(n), nil
}

// Zero returns the rational 0.
func Zero() Rational { return Rational{0, 1} }

// One returns the rational 1.
func One() Rational { return Rational{1, 1} }

// Num returns the reduced numerator.
func (r Rational) Num() int64 { return r.n }

// Den returns the reduced denominator (always >= 1).
func (r Rational) Den() int64 { return r.d }

// IsZero reports whether r is zero.
func (r Rational) IsZero() bool { return r.n == 0 }

// IsInteger reports whether r has denominator 1.
func (r Rational) IsInteger() bool { return r.d == 1 }

// Sign returns -1, 0, or 1 according to the sign of r.
func (r Rational) Sign() int {
	switch {
	case r.n > 0:
		return 1
	case r.n < 0:
		return -1
	default:
		return 0
	}
}

// Neg returns -r.
func (r Rational) Neg() Rational { return Rational{-r.n, r.d} }

// Abs returns |r|.
func (r Rational) Abs() Rational {
	if r.n < 0 {
		return r.Neg()
	}
	return r
}

// Add returns r + o.
func (r Rational) Add(o Rational) Rational {
	return reduce(r.n*o.d+o.n*r.d, r.d*o.d)
}

// Sub returns r - o.
func (r Rational) Sub(o Rational) Rational {
	return r.Add(o.Neg())
}

// Mul returns r * o.
func (r Rational) Mul(o Rational) Rational {
	return reduce(r.n*o.n, r.d*o.d)
}

// Div returns r / o. It fails with ErrDivisionByZero when o is zero.
func (r Rational) Div(o Rational) (Rational, error) {
	if o.n == 0 {
		return Rational{}, ErrDivisionByZero.New()
	}
	return reduce(r.n*o.d, r.d*o.n), nil
}

// Cmp returns -1, 0, or 1 according to whether r is less than, equal to,
// or greater than o.
func (r Rational) Cmp(o Rational) int {
	lhs := r.n * o.d
	rhs := o.n * r.d
	switch {
	case lhs < rhs:
		return -1
	case lhs > rhs:
		return 1
	default:
		return 0
	}
}

// Equal reports whether r and o denote the same rational number.
func (r Rational) Equal(o Rational) bool { return r.n == o.n && r.d == o.d }

// Pow raises r to the integer power exp, which may be negative. It fails
// with ErrDivisionByZero when exp is negative and r is zero.
func (r Rational) Pow(exp int) (Rational, error) {
	if exp == 0 {
		return One(), nil
	}
	neg := exp < 0
	if neg {
		exp = -exp
	}
	result := One()
	for i := 0; i < exp; i++ {
		result = result.Mul(r)
	}
	if neg {
		return One().Div(result)
	}
	return result, nil
}

// String renders r as "n" when integral, or "n/d" otherwise.
func (r Rational) String() string {
	if r.d == 1 {
		return fmt.Sprintf("%d", r.n)
	}
	return fmt.Sprintf("%d/%d", r.n, r.d)
}

// IsPerfectSquare reports whether r is the square of another rational,
// returning that rational when it is. Used by the solver's
// quadratic-discriminant handling.
func (r Rational) IsPerfectSquare() (Rational, bool) {
	if r.Sign() < 0 {
		return Rational{}, false
	}
	nRoot, ok := isqrt(r.n)
	if !ok {
		return Rational{}, false
	}
	dRoot, ok := isqrt(r.d)
	if !ok {
		return Rational{}, false
	}
	return reduce(nRoot, dRoot), true
}

func isqrt(v int64) (int64, bool) {
	if v < 0 {
		return 0, false
	}
	if v == 0 {
		return 0, true
	}
	root := int64(math.Sqrt(float64(v)))
	for root > 0 && root*root > v {
		root--
	}
	for (root+1)*(root+1) <= v {
		root++
	}
	if root*root == v {
		return root, true
	}
	return 0, false
}

// ExtractPerfectPower factors a positive v as k^n * rest, where k is the
// largest integer whose n-th power divides v and rest carries no further
// perfect n-th-power factor. It trial-divides v by every candidate factor
// up to its own shrinking square root, the same style isqrt above uses for
// n=2. Called with v <= 0 or n < 2 it returns v unfactored.
func ExtractPerfectPower(v int64, n int) (k, rest int64) {
	if v <= 0 || n < 2 {
		return 1, v
	}
	k, rest = 1, v
	for p := int64(2); p*p <= rest; p++ {
		count := 0
		for rest%p == 0 {
			rest /= p
			count++
		}
		if count == 0 {
			continue
		}
		full, remainder := count/n, count%n
		for i := 0; i < full; i++ {
			k *= p
		}
		for i := 0; i < remainder; i++ {
			rest *= p
		}
	}
	return k, rest
}

// ExtractRadical factors r = outside^n * inside for an integer n >= 2,
// pulling the largest perfect n-th power out of r's numerator and
// denominator independently (sound because a reduced Rational's numerator
// and denominator share no common factor). It is the rational-arithmetic
// half of the simplifier's radical-extraction rule: Pow(r, 1/n) rewrites to
// outside * Pow(inside, 1/n). Only odd n pulls a negative r's sign outside
// the radical; for even n, r must already be non-negative and the sign
// question does not arise.
func (r Rational) ExtractRadical(n int) (outside, inside Rational) {
	if n < 2 || r.n == 0 {
		return One(), r
	}
	sign := r.Sign()
	absNum := r.n
	if absNum < 0 {
		absNum = -absNum
	}
	kNum, restNum := ExtractPerfectPower(absNum, n)
	kDen, restDen := ExtractPerfectPower(r.d, n)
	outside = reduce(kNum, kDen)
	inside = reduce(restNum, restDen)
	if sign < 0 && n%2 == 1 {
		outside = outside.Neg()
	}
	return outside, inside
}
