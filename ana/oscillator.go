// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ana holds closed-form and ODE-numerical reference solutions for a
// linear damped oscillator, independent of the driver's own code. It is
// self-contained: the engine package and its tests do not import it.
package ana

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/ode"
)

// DampedOscillator is a single linear damped harmonic oscillator
//
//	m*q'' + c*q' + k*q = 0,  k = m*omega^2,  c = 2*zeta*m*omega
//
// the linearization a single damped pendulum or a joint-damped single-DOF
// slider reduces to near equilibrium.
type DampedOscillator struct {
	Omega float64 // natural frequency, sqrt(k/m)
	Zeta  float64 // damping ratio, c/(2*sqrt(k*m)); 0 <= Zeta < 1 (underdamped)
	Mass  float64
	sol   ode.ODE
}

// Init sets up the oscillator; if withNum is true it also prepares a
// Radau5 numerical solver for CalcNum.
func (o *DampedOscillator) Init(omega, zeta, mass float64, withNum bool) {
	o.Omega = omega
	o.Zeta = zeta
	o.Mass = mass

	if withNum {
		silent := true
		o.sol.Init("Radau5", 2, func(f []float64, dT, T float64, y []float64, args ...interface{}) error {
			q, v := y[0], y[1]
			k := o.Mass * o.Omega * o.Omega
			c := 2 * o.Zeta * o.Mass * o.Omega
			f[0] = v
			f[1] = -(c*v + k*q) / o.Mass
			return nil
		}, nil, nil, nil, silent)
		o.sol.Distr = false
	}
}

// Calc returns the closed-form underdamped solution (q, v) at time t given
// initial conditions (q0, v0). Panics if Zeta >= 1 (critically/over-damped
// regimes use a different closed form not needed by the test scenarios
// this package supports).
func (o DampedOscillator) Calc(t, q0, v0 float64) (q, v float64) {
	if o.Zeta >= 1 {
		chk.Panic("DampedOscillator.Calc: only the underdamped regime (Zeta<1) is implemented, got Zeta=%v", o.Zeta)
	}
	wd := o.Omega * math.Sqrt(1-o.Zeta*o.Zeta)
	a := q0
	b := (v0 + o.Zeta*o.Omega*q0) / wd
	decay := math.Exp(-o.Zeta * o.Omega * t)
	cos, sin := math.Cos(wd*t), math.Sin(wd*t)
	q = decay * (a*cos + b*sin)
	v = decay*(-o.Zeta*o.Omega*(a*cos+b*sin)+wd*(-a*sin+b*cos))
	return
}

// CalcNum integrates the same system with gosl/ode's Radau5, as an
// independent cross-check of Calc over the same time horizon.
func (o *DampedOscillator) CalcNum(t, q0, v0 float64) (q, v float64) {
	y := []float64{q0, v0}
	err := o.sol.Solve(y, 0, t, t, false)
	if err != nil {
		chk.Panic("DampedOscillator.CalcNum: ODE solve failed: %v", err)
	}
	return y[0], y[1]
}

// Energy returns the mechanical energy 0.5*m*v^2 + 0.5*k*q^2 of the
// undamped system (Zeta is ignored here).
func (o DampedOscillator) Energy(q, v float64) float64 {
	k := o.Mass * o.Omega * o.Omega
	return 0.5*o.Mass*v*v + 0.5*k*q*q
}
