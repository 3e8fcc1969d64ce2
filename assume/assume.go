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

// Package assume provides a minimal, read-only predicate store the
// simplifier consults before firing a rewrite that depends on a symbol's
// domain: is it real, positive, an integer, known non-zero. It is
// deliberately not a fact database — no property implies another, and
// nothing is ever inferred. Callers assert each property they rely on.
package assume

import "strings"

// Property is one of the fixed, enumerated predicates the engine reasons
// about. There is no open extension point: adding a new property is a
// deliberate change to this package, mirroring a closed permission
// enumeration rather than a pluggable rule set.
type Property int

const (
	// Real means the symbol ranges over the reals.
	Real Property = 1 << iota
	// Positive means the symbol is strictly greater than zero.
	Positive
	// Integer means the symbol ranges over the integers.
	Integer
	// Nonzero means the symbol is known never to be zero.
	Nonzero
)

var propertyNames = map[string]Property{
	"real":     Real,
	"positive": Positive,
	"integer":  Integer,
	"nonzero":  Nonzero,
}

// String renders the set of properties set in p, comma-joined, in a
// fixed, deterministic order.
func (p Property) String() string {
	var names []string
	for _, name := range []string{"real", "positive", "integer", "nonzero"} {
		if p&propertyNames[name] != 0 {
			names = append(names, name)
		}
	}
	return strings.Join(names, ", ")
}

// TriState is the result of an assumption query: True, False, or Unknown.
// The store never produces False in the current, open-world scheme —
// absence of an assertion means Unknown, not a proof of the negative.
type TriState int

const (
	// Unknown means the store holds no information either way.
	Unknown TriState = iota
	// True means the property was explicitly asserted.
	True
	// False is reserved for a future closed-world extension; the store
	// never returns it today.
	False
)

// Assumptions is a read-only-to-the-simplifier, write-only-to-the-caller
// map from symbol name to the set of properties asserted about it.
type Assumptions struct {
	props map[string]Property
}

// New returns an empty assumption set: every query against it answers
// Unknown.
func New() *Assumptions {
	return &Assumptions{props: make(map[string]Property)}
}

// Assume asserts that symbol has property. Asserting the same property
// twice is a no-op; there is no way to retract an assumption, matching
// the spec's "callers must assert each property they rely on" discipline
// (an engine that let you take assumptions back would need to invalidate
// any simplification already performed under them).
func (a *Assumptions) Assume(symbol string, property Property) {
	a.props[symbol] = a.props[symbol] | property
}

// Has reports whether symbol is known to have property. A nil
// *Assumptions answers Unknown for everything, so call sites that thread
// an optional assumption context through never need a nil check.
func (a *Assumptions) Has(symbol string, property Property) TriState {
	if a == nil {
		return Unknown
	}
	if a.props[symbol]&property != 0 {
		return True
	}
	return Unknown
}

// IsPositive is a convenience wrapper used by simplify wherever a
// rewrite's soundness hinges on a positivity side condition.
func (a *Assumptions) IsPositive(symbol string) bool {
	return a.Has(symbol, Positive) == True
}

// IsNonzero is a convenience wrapper; note Positive does not imply
// Nonzero automatically — no property implies another — so callers that
// need "nonzero" for a positive symbol must assert both.
func (a *Assumptions) IsNonzero(symbol string) bool {
	return a.Has(symbol, Nonzero) == True
}

// IsInteger reports whether symbol is known to range over the integers.
func (a *Assumptions) IsInteger(symbol string) bool {
	return a.Has(symbol, Integer) == True
}

// IsReal reports whether symbol is known to range over the reals.
func (a *Assumptions) IsReal(symbol string) bool {
	return a.Has(symbol, Real) == True
}
