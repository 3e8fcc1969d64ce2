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

// Package symmetrica is the root facade: it wires one expression store,
// one assumption set, and one resource-limit configuration into the
// simplify, diff, integrate, and solve packages, the way an
// sql.Engine wires a catalog, analyzer, and executor together behind a
// single entry point.
package symmetrica

import (
	"symmetrica/assume"
	"symmetrica/config"
	"symmetrica/diff"
	"symmetrica/expr"
	"symmetrica/integrate"
	"symmetrica/metrics"
	"symmetrica/simplify"
	"symmetrica/solve"

	"github.com/sirupsen/logrus"
)

// Engine owns one expression store and the assumption set consulted by
// every operation it exposes. An Engine is not safe for concurrent use,
// mirroring the store it wraps.
type Engine struct {
	store  *expr.Store
	assume *assume.Assumptions
	cfg    config.Config
}

// Option configures an Engine at construction time.
type Option func(*engineOptions)

type engineOptions struct {
	logger  *logrus.Logger
	counter *metrics.NodeCounter
}

// WithLogger attaches a logrus logger to the Engine's underlying store,
// receiving Debug-level events for interning. The logger is not passed to
// the simplifier, so Engine.Simplify emits no rewrite events.
func WithLogger(l *logrus.Logger) Option {
	return func(o *engineOptions) { o.logger = l }
}

// WithMetrics attaches a NodeCounter mirroring the Engine's store size
// and intern hit/miss rate into prometheus collectors.
func WithMetrics(nc *metrics.NodeCounter) Option {
	return func(o *engineOptions) { o.counter = nc }
}

// NewEngine constructs an Engine with a fresh store and an empty
// assumption set, bounded by cfg.
func NewEngine(cfg config.Config, opts ...Option) *Engine {
	o := &engineOptions{}
	for _, opt := range opts {
		opt(o)
	}

	var storeOpts []expr.Option
	if o.logger != nil {
		storeOpts = append(storeOpts, expr.WithLogger(o.logger))
	}
	if o.counter != nil {
		storeOpts = append(storeOpts, expr.WithMetrics(o.counter))
	}

	return &Engine{
		store:  expr.NewStore(storeOpts...),
		assume: assume.New(),
		cfg:    cfg,
	}
}

// Store returns the Engine's underlying expression store. Handles
// produced by the store's constructors are the currency every Engine
// method accepts and returns.
func (e *Engine) Store() *expr.Store { return e.store }

// Assumptions returns the Engine's assumption set, which callers assert
// facts into (symbol is real, positive, an integer, non-zero) ahead of
// calling Simplify, Integrate, or SolveUnivariate.
func (e *Engine) Assumptions() *assume.Assumptions { return e.assume }

// Config returns the Engine's resource-limit configuration.
func (e *Engine) Config() config.Config { return e.cfg }

// Simplify rewrites h to its simplified form under the Engine's current
// assumptions.
func (e *Engine) Simplify(h expr.Handle) expr.Handle {
	return simplify.Simplify(e.store, h, e.assume)
}

// Differentiate returns d/d(variable) of h, simplified.
func (e *Engine) Differentiate(h expr.Handle, variable string) expr.Handle {
	return diff.Differentiate(e.store, h, variable)
}

// Integrate searches for a closed-form antiderivative of h with respect
// to variable, bounded by the Engine's configured recursion depth.
func (e *Engine) Integrate(h expr.Handle, variable string) (expr.Handle, bool) {
	return integrate.Integrate(e.store, h, variable, e.assume, e.cfg)
}

// SolveUnivariate returns the roots of h = 0 as a function of variable.
func (e *Engine) SolveUnivariate(h expr.Handle, variable string) ([]expr.Handle, bool) {
	return solve.SolveUnivariate(e.store, h, variable, e.assume, e.cfg)
}
