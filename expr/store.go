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

// Package expr implements the hash-consed, immutable expression DAG: an
// arena-backed store with canonical n-ary Add/Mul, binary Pow, atoms, and
// functions, deterministic 64-bit digests, and structural interning.
//
// The store is append-only and single-threaded: one Store per goroutine
// that needs one. There is no locking because there is nothing to lock
// around; the zero-value discipline of handles (plain ints) means callers
// can freely copy and compare them without touching the store itself.
package expr

import (
	"encoding/binary"

	"github.com/sirupsen/logrus"

	"symmetrica/metrics"
	"symmetrica/rational"
)

// internKey is the structural identity of a node: operator, payload, and
// the *sequence* of child digests (not the node's own rolled-up digest).
// Two structurally distinct nodes that happen to collide on their rolled
// digest must not unify; keying on the full child-digest sequence plus
// payload keeps collisions harmless, exactly as the collision-tolerance
// invariant requires.
type internKey struct {
	op       Op
	name     string
	intVal   int64
	ratN     int64
	ratD     int64
	children string // packed big-endian uint64 child digests
}

func packDigests(digests []uint64) string {
	buf := make([]byte, 8*len(digests))
	for i, d := range digests {
		binary.BigEndian.PutUint64(buf[i*8:], d)
	}
	return string(buf)
}

// Store owns a single expression arena. Construction methods are total
// except Rational, which can fail on a zero denominator.
type Store struct {
	nodes   []node
	byKey   map[internKey]Handle
	logger  *logrus.Logger
	counter *metrics.NodeCounter
}

// Option configures a Store at construction time.
type Option func(*Store)

// WithLogger attaches a logrus logger that receives Debug-level
// structured events on every successful intern. A nil logger (the
// default) disables logging without branching at call sites.
func WithLogger(l *logrus.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithMetrics attaches a NodeCounter that mirrors the store's size and
// intern hit/miss rate into prometheus collectors.
func WithMetrics(nc *metrics.NodeCounter) Option {
	return func(s *Store) { s.counter = nc }
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		byKey: make(map[internKey]Handle),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NodeCount returns the number of distinct nodes currently interned.
func (s *Store) NodeCount() int { return len(s.nodes) }

// Get returns the exported view of the node at h.
func (s *Store) Get(h Handle) Node {
	n := s.nodes[h]
	children := make([]Handle, len(n.children))
	copy(children, n.children)
	return Node{
		Op:       n.op,
		Name:     n.name,
		Int:      n.intVal,
		RatN:     n.ratN,
		RatD:     n.ratD,
		Children: children,
		Digest:   n.digest,
	}
}

// Children returns the child handles of h.
func (s *Store) Children(h Handle) []Handle {
	return s.Get(h).Children
}

// Digest returns the cached structural digest of h.
func (s *Store) Digest(h Handle) uint64 {
	return s.nodes[h].digest
}

func (s *Store) intern(op Op, name string, intVal, ratN, ratD int64, children []Handle) Handle {
	childDigests := make([]uint64, len(children))
	for i, c := range children {
		childDigests[i] = s.nodes[c].digest
	}
	key := internKey{op: op, name: name, intVal: intVal, ratN: ratN, ratD: ratD, children: packDigests(childDigests)}
	if h, ok := s.byKey[key]; ok {
		s.counter.RecordHit()
		return h
	}
	d := computeDigest(op, name, intVal, ratN, ratD, childDigests)
	kids := make([]Handle, len(children))
	copy(kids, children)
	h := Handle(len(s.nodes))
	s.nodes = append(s.nodes, node{op: op, name: name, intVal: intVal, ratN: ratN, ratD: ratD, children: kids, digest: d})
	s.byKey[key] = h
	s.counter.RecordMiss(len(s.nodes))
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"op":     op.String(),
			"digest": d,
			"handle": int(h),
		}).Debug("expr: interned node")
	}
	return h
}

// Symbol constructs (or retrieves the existing handle for) the symbol
// named name.
func (s *Store) Symbol(name string) Handle {
	return s.intern(OpSymbol, name, 0, 0, 0, nil)
}

// Integer constructs (or retrieves) the integer literal k.
func (s *Store) Integer(k int64) Handle {
	return s.intern(OpInteger, "", k, 0, 0, nil)
}

// Rational constructs (or retrieves) the rational n/d, reduced. It fails
// with rational.ErrZeroDenominator when d is zero. A denominator-1 result
// is stored (and returned) as an Integer node, per the rational
// normalization invariant.
func (s *Store) Rational(n, d int64) (Handle, error) {
	r, err := rational.New(n, d)
	if err != nil {
		return Invalid, err
	}
	return s.numeric(r), nil
}

// numeric returns the canonical handle for a reduced rational: an Integer
// node when it has denominator 1, an OpRational node otherwise.
func (s *Store) numeric(r rational.Rational) Handle {
	if r.IsInteger() {
		return s.Integer(r.Num())
	}
	return s.intern(OpRational, "", 0, r.Num(), r.Den(), nil)
}

// ratOf reinflates the rational.Rational carried by an Integer or
// Rational node.
func (s *Store) ratOf(h Handle) rational.Rational {
	n := s.nodes[h]
	if n.op == OpInteger {
		return rational.FromInt(n.intVal)
	}
	r, _ := rational.New(n.ratN, n.ratD) // invariant: ratD != 0
	return r
}

func (s *Store) isNumeric(h Handle) bool {
	op := s.nodes[h].op
	return op == OpInteger || op == OpRational
}

// Function constructs (or retrieves) a call to name with the given
// ordered arguments. Argument order is significant and never reordered.
func (s *Store) Function(name string, args []Handle) Handle {
	return s.intern(OpFunction, name, 0, 0, 0, args)
}

// Add builds the canonical sum of children: Add children are flattened
// in, numeric children fold into one running accumulator, the result is
// sorted by digest, and degenerate arities collapse (empty -> 0,
// singleton -> the element itself).
func (s *Store) Add(children []Handle) Handle {
	flat := s.flatten(children, OpAdd)

	acc := rational.Zero()
	kept := make([]Handle, 0, len(flat))
	for _, c := range flat {
		if s.isNumeric(c) {
			acc = acc.Add(s.ratOf(c))
			continue
		}
		kept = append(kept, c)
	}
	if !acc.IsZero() {
		kept = append(kept, s.numeric(acc))
	}
	s.sortByDigest(kept)

	switch len(kept) {
	case 0:
		return s.Integer(0)
	case 1:
		return kept[0]
	default:
		return s.intern(OpAdd, "", 0, 0, 0, kept)
	}
}

// Mul builds the canonical product of children: Mul children are
// flattened in, numeric children fold into one running accumulator with
// an immediate short-circuit to integer 0 the moment a zero factor is
// seen, the result is sorted by digest, and degenerate arities collapse
// (empty -> 1, singleton -> the element itself).
func (s *Store) Mul(children []Handle) Handle {
	flat := s.flatten(children, OpMul)

	acc := rational.One()
	kept := make([]Handle, 0, len(flat))
	for _, c := range flat {
		if s.isNumeric(c) {
			r := s.ratOf(c)
			if r.IsZero() {
				return s.Integer(0)
			}
			acc = acc.Mul(r)
			continue
		}
		kept = append(kept, c)
	}
	if !acc.Equal(rational.One()) {
		kept = append(kept, s.numeric(acc))
	}
	s.sortByDigest(kept)

	switch len(kept) {
	case 0:
		return s.Integer(1)
	case 1:
		return kept[0]
	default:
		return s.intern(OpMul, "", 0, 0, 0, kept)
	}
}

// flatten splices any child whose operator equals op into the result
// list in its place, since a canonical node of that operator never
// contains a child of the same operator (flatness invariant), so one
// level of splicing is always sufficient.
func (s *Store) flatten(children []Handle, op Op) []Handle {
	flat := make([]Handle, 0, len(children))
	for _, c := range children {
		if s.nodes[c].op == op {
			flat = append(flat, s.nodes[c].children...)
		} else {
			flat = append(flat, c)
		}
	}
	return flat
}

func (s *Store) sortByDigest(hs []Handle) {
	// Insertion sort: arity is small in practice (term counts in a sum
	// or factor counts in a product) and this keeps the comparator
	// trivial to reason about; ties on digest (a tolerated, rare
	// collision) break on handle value to stay deterministic within a
	// run.
	for i := 1; i < len(hs); i++ {
		for j := i; j > 0 && s.less(hs[j], hs[j-1]); j-- {
			hs[j], hs[j-1] = hs[j-1], hs[j]
		}
	}
}

func (s *Store) less(a, b Handle) bool {
	da, db := s.nodes[a].digest, s.nodes[b].digest
	if da != db {
		return da < db
	}
	return a < b
}

// Pow builds the canonical power of base and exp. Pow(x, 1) = x;
// Pow(x, 0) = 1 unless base is integer zero, in which case the literal
// Pow(0, 0) node is returned unsimplified (spec'd as the caller's
// responsibility). Combining powers of equal bases and expanding products
// in exponents is deliberately not done here — that lives in the
// simplifier, which has the assumption context to do it soundly.
func (s *Store) Pow(base, exp Handle) Handle {
	expNode := s.nodes[exp]
	if expNode.op == OpInteger {
		switch expNode.intVal {
		case 1:
			return base
		case 0:
			baseNode := s.nodes[base]
			if baseNode.op == OpInteger && baseNode.intVal == 0 {
				return s.intern(OpPow, "", 0, 0, 0, []Handle{base, exp})
			}
			return s.Integer(1)
		}
	}
	return s.intern(OpPow, "", 0, 0, 0, []Handle{base, exp})
}

// Walk performs a depth-first traversal of h and its descendants,
// invoking visit on each handle exactly once (children may be shared, so
// a node reachable through multiple paths is visited only on first
// encounter). Traversal stops early if visit returns false.
func (s *Store) Walk(h Handle, visit func(Handle) bool) {
	seen := make(map[Handle]bool)
	s.walk(h, visit, seen)
}

func (s *Store) walk(h Handle, visit func(Handle) bool, seen map[Handle]bool) bool {
	if seen[h] {
		return true
	}
	seen[h] = true
	if !visit(h) {
		return false
	}
	for _, c := range s.nodes[h].children {
		if !s.walk(c, visit, seen) {
			return false
		}
	}
	return true
}
