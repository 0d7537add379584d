// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"encoding/json"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Options holds the solver configuration normally read from a model file.
type Options struct {
	Integrator       Integrator `json:"integrator"`
	Solver           Solver     `json:"solver"`
	Iterations       int        `json:"iterations"`
	NoslipIterations int        `json:"noslip_iterations"`
	Timestep         float64    `json:"timestep"`

	Disable DisableFlag `json:"disable"`
	Enable  EnableFlag  `json:"enable"`

	// UseSparseJacobian selects the sparse Jacobian-times-vector code path.
	UseSparseJacobian bool `json:"sparse"`
}

// Disabled reports whether the given flag is set in o.Disable.
func (o *Options) Disabled(f DisableFlag) bool { return o.Disable&f != 0 }

// Enabled reports whether the given flag is set in o.Enable.
func (o *Options) Enabled(f EnableFlag) bool { return o.Enable&f != 0 }

// ReadOptions parses and validates JSON-encoded solver options.
func ReadOptions(data []byte) (o *Options, err error) {
	o = new(Options)
	if err = json.Unmarshal(data, o); err != nil {
		return nil, chk.Err("cannot parse options JSON:\n%v", err)
	}
	if o.Timestep <= 0 {
		return nil, chk.Err("timestep must be positive (h = %v is incorrect)", o.Timestep)
	}
	if o.Iterations <= 0 {
		return nil, chk.Err("iterations must be positive (iterations = %v is incorrect)", o.Iterations)
	}
	return o, nil
}

// String prints the resolved options on one diagnostic line.
func (o *Options) String() string {
	return io.Sf("integrator=%v, solver=%v, h=%v, iterations=%d, noslip_iterations=%d, sparse=%v",
		o.Integrator, o.Solver, o.Timestep, o.Iterations, o.NoslipIterations, o.UseSparseJacobian)
}
