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

// Package metrics provides the optional instrumentation an expr.Store
// reports through while it interns nodes: a live node-count gauge and
// intern hit/miss counters. None of this is required for correctness; a
// Store with no NodeCounter attached behaves identically, just silently.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// NodeCounter tracks the size of a single expr.Store's arena and how
// often construction calls hit the hash-cons table versus growing it.
type NodeCounter struct {
	nodes        prometheus.Gauge
	internHits   prometheus.Counter
	internMisses prometheus.Counter
}

// NewNodeCounter creates a NodeCounter registered under the given
// registerer. Passing a fresh prometheus.NewRegistry() keeps metrics
// scoped to one store; passing nil skips registration (the gauge/counters
// still work, just unexported to any collector).
func NewNodeCounter(reg prometheus.Registerer) *NodeCounter {
	nc := &NodeCounter{
		nodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "symmetrica_store_nodes",
			Help: "Current number of interned nodes in an expression store.",
		}),
		internHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "symmetrica_store_intern_hits_total",
			Help: "Number of construction calls that resolved to an existing node.",
		}),
		internMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "symmetrica_store_intern_misses_total",
			Help: "Number of construction calls that interned a new node.",
		}),
	}
	if reg != nil {
		reg.MustRegister(nc.nodes, nc.internHits, nc.internMisses)
	}
	return nc
}

// RecordHit records an intern lookup that resolved to an existing node.
func (nc *NodeCounter) RecordHit() {
	if nc == nil {
		return
	}
	nc.internHits.Inc()
}

// RecordMiss records an intern lookup that grew the arena to size.
func (nc *NodeCounter) RecordMiss(size int) {
	if nc == nil {
		return
	}
	nc.internMisses.Inc()
	nc.nodes.Set(float64(size))
}

// Snapshot returns the current (hits, misses) counts for tests and
// diagnostics, reading the underlying prometheus collectors.
func (nc *NodeCounter) Snapshot() (hits, misses float64) {
	if nc == nil {
		return 0, 0
	}
	return testutil.ToFloat64(nc.internHits), testutil.ToFloat64(nc.internMisses)
}

// NodeCount returns the current value of the node gauge.
func (nc *NodeCounter) NodeCount() int {
	if nc == nil {
		return 0
	}
	return int(testutil.ToFloat64(nc.nodes))
}
