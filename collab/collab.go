// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package collab names the external collaborators the forward-dynamics
// driver (package engine) depends on but does not implement: kinematics,
// inertia, collision, constraint formulation, the iterative solvers,
// sensors, and the optional user callbacks. Set is a configuration record
// of optional function values passed through the call graph, in place of
// process-global callback pointers.
package collab

import "github.com/dynsim/rbdyn/model"

// Set bundles every external collaborator into one value the caller
// constructs once per (Model, Data) pair and threads through every engine
// call. Fields may be left nil: the engine skips an unset stage, sensor or
// solver collaborator and falls back to a dense reference or a neutral value
// for the rest (e.g. an unset MuscleGain or ActGain yields gain 1). The
// exceptions are MulJacVec and MulARVec, which the engine panics without
// when Opt.UseSparseJacobian is set.
type Set struct {
	// position stage
	Kinematics        func(*model.Model, *model.Data)
	ComPos            func(*model.Model, *model.Data)
	Camlight          func(*model.Model, *model.Data)
	Tendon            func(*model.Model, *model.Data)
	Transmission      func(*model.Model, *model.Data)
	CRB               func(*model.Model, *model.Data)
	FactorM           func(*model.Model, *model.Data)
	Collision         func(*model.Model, *model.Data)
	MakeConstraint    func(*model.Model, *model.Data)
	ProjectConstraint func(*model.Model, *model.Data)

	// velocity stage
	ComVel              func(*model.Model, *model.Data)
	Passive             func(*model.Model, *model.Data)
	ReferenceConstraint func(*model.Model, *model.Data)
	RNE                 func(m *model.Model, d *model.Data, qacc []float64) []float64

	// shared numeric primitives. MulARVec, when the model is sparse,
	// multiplies dst = A_R*src for the PGS warmstart quadratic-cost check;
	// dense models never need it, since fwdConstraint falls back to
	// collab.DenseMatVec(EfcAR).
	MulJacVec func(m *model.Model, d *model.Data, dst, src []float64)
	MulARVec  func(m *model.Model, d *model.Data, dst, src []float64)
	MulM      func(m *model.Model, d *model.Data, dst, src []float64)
	SolveM    func(m *model.Model, d *model.Data, dst, src []float64)

	// constraint stage
	ConstraintUpdate func(m *model.Model, d *model.Data, jarOrB []float64, wantGrad bool) (cost float64)
	SolPGS           func(m *model.Model, d *model.Data, iterations int)
	SolCG            func(m *model.Model, d *model.Data, iterations int)
	SolNewton        func(m *model.Model, d *model.Data, iterations int)
	SolNoSlip        func(m *model.Model, d *model.Data, iterations int)

	// forces and integration
	XfrcAccumulate func(m *model.Model, d *model.Data, dst []float64)
	IntegratePos   func(m *model.Model, qpos, qvel []float64, h float64)

	// sensors and energy
	SensorPos func(*model.Model, *model.Data)
	SensorVel func(*model.Model, *model.Data)
	SensorAcc func(*model.Model, *model.Data)
	EnergyPos func(*model.Model, *model.Data)
	EnergyVel func(*model.Model, *model.Data)

	// implicit integrator support
	MakeMSparse    func(m *model.Model, d *model.Data)
	SetMSparse     func(m *model.Model, d *model.Data)
	DSmoothVel     func(m *model.Model, d *model.Data)
	FactorLUSparse func(m *model.Model, d *model.Data, scratchInt []int)
	SolveLUSparse  func(m *model.Model, d *model.Data, dst, src []float64)

	// actuator muscle model
	MuscleGain     func(length, velocity float64, lengthrange [2]float64, acc0 float64, prm [model.NGAIN]float64) float64
	MuscleBias     func(length, velocity float64, lengthrange [2]float64, acc0 float64, prm [model.NBIAS]float64) float64
	MuscleDynamics func(ctrl, act float64, prm [model.NDYN]float64) float64

	// optional control/actuation callbacks
	Control func(*model.Model, *model.Data)
	ActGain func(m *model.Model, d *model.Data, i int) float64
	ActBias func(m *model.Model, d *model.Data, i int) float64
	ActDyn  func(m *model.Model, d *model.Data, i int) float64

	// value-sanity primitive
	IsBad func(x float64) bool
}

// Call invokes f if non-nil; every position/velocity-stage collaborator is
// a no-op when unset so a minimal model (e.g. a single free joint with no
// tendons) does not require stub functions it will never exercise.
func Call(f func(*model.Model, *model.Data), m *model.Model, d *model.Data) {
	if f != nil {
		f(m, d)
	}
}
