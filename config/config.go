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

// Package config holds the resource limits threaded through the
// recursion-bounded algorithms (integrate's integration-by-parts search
// and solve's deflation loop). Nothing
// here is persisted by the kernel itself; a caller may load it from YAML
// or build it by hand.
package config

import (
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cast"
	"gopkg.in/src-d/go-errors.v1"
	"gopkg.in/yaml.v2"
)

// ErrResourceLimit is returned by Validate when a recursion depth or
// node-count cap is not positive. The search operations
// (integrate.Integrate, solve.SolveUnivariate) never return this value:
// per the engine's "no closed form" contract they fold an exceeded cap
// into their ordinary (handle, false) result, the same as any other
// failed search.
var ErrResourceLimit = errors.NewKind("resource limit exceeded: %s")

// Config bounds the search algorithms that recurse or iterate over a
// growing expression store.
type Config struct {
	// MaxRecursionDepth bounds integration-by-parts and solver deflation
	// recursion.
	MaxRecursionDepth int `yaml:"max_recursion_depth"`
	// MaxNodes bounds how many nodes a single search operation may cause
	// a store to grow by before giving up.
	MaxNodes int `yaml:"max_nodes"`
}

// DefaultConfig returns the limits used when a caller builds an Engine
// without supplying its own Config.
func DefaultConfig() Config {
	return Config{
		MaxRecursionDepth: 32,
		MaxNodes:          1 << 20,
	}
}

// Validate reports every way cfg's fields fail to bound anything,
// collecting all violations rather than stopping at the first one found
// so a caller loading a hand-edited YAML document sees every problem in
// one pass.
func (cfg Config) Validate() error {
	var result *multierror.Error
	if cfg.MaxRecursionDepth <= 0 {
		result = multierror.Append(result, ErrResourceLimit.New("max_recursion_depth must be positive"))
	}
	if cfg.MaxNodes <= 0 {
		result = multierror.Append(result, ErrResourceLimit.New("max_nodes must be positive"))
	}
	return result.ErrorOrNil()
}

// LoadConfig reads a YAML document into a Config, starting from
// DefaultConfig so a partial document only overrides what it names.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, err
	}
	if len(data) == 0 {
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyOverrides merges loosely typed override values (as might arrive
// from a CLI flag set or environment overlay parsed elsewhere) onto cfg,
// coercing each value with spf13/cast. Unknown keys are ignored.
func (cfg Config) ApplyOverrides(overrides map[string]interface{}) (Config, error) {
	out := cfg
	if v, ok := overrides["max_recursion_depth"]; ok {
		n, err := cast.ToIntE(v)
		if err != nil {
			return Config{}, err
		}
		out.MaxRecursionDepth = n
	}
	if v, ok := overrides["max_nodes"]; ok {
		n, err := cast.ToIntE(v)
		if err != nil {
			return Config{}, err
		}
		out.MaxNodes = n
	}
	if err := out.Validate(); err != nil {
		return Config{}, err
	}
	return out, nil
}
