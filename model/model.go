// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package model holds the immutable model M and mutable simulation data D
// consumed by the engine package's forward-dynamics driver.
package model

import "github.com/cpmech/gosl/chk"

// Fixed-size actuator parameter counts. Gain/bias/dynamics parameters are
// packed into small arrays instead of per-type structs so one Actuator
// shape covers every law.
const (
	NGAIN = 10
	NBIAS = 10
	NDYN  = 10
)

// Integrator selects the time-integration scheme used by step/step2.
type Integrator int

const (
	IntegratorEuler Integrator = iota
	IntegratorRK4
	IntegratorImplicit
)

func (t Integrator) String() string {
	switch t {
	case IntegratorEuler:
		return "Euler"
	case IntegratorRK4:
		return "RK4"
	case IntegratorImplicit:
		return "implicit"
	default:
		return "unknown"
	}
}

// Solver selects the constraint sub-problem solver used by fwdConstraint.
type Solver int

const (
	SolverPGS Solver = iota
	SolverCG
	SolverNewton
)

func (s Solver) String() string {
	switch s {
	case SolverPGS:
		return "PGS"
	case SolverCG:
		return "CG"
	case SolverNewton:
		return "Newton"
	default:
		return "unknown"
	}
}

// GainType selects an actuator's force-gain law.
type GainType int

const (
	GainFixed GainType = iota
	GainMuscle
	GainUser
)

// BiasType selects an actuator's force-bias law.
type BiasType int

const (
	BiasNone BiasType = iota
	BiasAffine
	BiasMuscle
	BiasUser
)

// DynType selects a stateful actuator's activation dynamics.
type DynType int

const (
	DynNone DynType = iota
	DynIntegrator
	DynFilter
	DynMuscle
	DynUser
)

// DisableFlag switches off an engine feature when set in Options.Disable.
type DisableFlag uint32

const (
	DisableActuation DisableFlag = 1 << iota
	DisableClampCtrl
	DisableWarmstart
	DisableEulerDamp // skip the implicit damping branch in Euler
)

type EnableFlag uint32

const (
	EnableEnergy EnableFlag = 1 << iota
	EnableFwdInv
)

// Actuator holds the per-actuator configuration consumed by fwdActuation.
type Actuator struct {
	CtrlLimited  bool
	CtrlRange    [2]float64
	ForceLimited bool
	ForceRange   [2]float64
	ActLimited   bool
	ActRange     [2]float64

	GainType GainType
	BiasType BiasType
	DynType  DynType

	Gainprm [NGAIN]float64
	Biasprm [NBIAS]float64
	Dynprm  [NDYN]float64

	LengthRange [2]float64
	Acc0        float64
}

// Model is the read-only description of the system being simulated. The
// engine package never mutates a Model.
type Model struct {
	Opt Options

	Nq  int // size of qpos
	Nv  int // size of qvel/qacc
	Nu  int // number of actuators
	Na  int // number of stateful actuators (activations); Na <= Nu
	NM  int // size of qM (custom sparse mass layout)
	ND  int // size of qDeriv/qLU (implicit integrator sparse layout)
	Nte int // number of tendons

	DofDamping []float64 // [Nv] per-DoF linear damping coefficient
	DofMadr    []int     // [Nv] address of this DoF's diagonal entry in qM

	Actuators []Actuator // [Nu]

	DefaultQpos []float64 // [Nq] reset target; nil means zero
	DefaultQvel []float64 // [Nv] reset target; nil means zero
}

// StatefulIndex maps a stateful actuator's global index i (in
// [Nu-Na, Nu)) to its activation-state slot j (in [0, Na)). Every caller
// must go through this helper; hand-written i-(nu-na) arithmetic is how
// off-by-ones creep in.
func (m *Model) StatefulIndex(i int) int {
	return i - (m.Nu - m.Na)
}

// IsStateful reports whether actuator i has non-NONE dynamics, i.e. occupies
// one of the last Na actuator slots.
func (m *Model) IsStateful(i int) bool {
	return i >= m.Nu-m.Na
}

// IsSparse reports whether this model uses the sparse constraint/tendon
// Jacobian representation. This is the single predicate every sparse/dense
// branch in the engine consults.
func (m *Model) IsSparse() bool {
	return m.Opt.UseSparseJacobian
}

// CheckActuatorIndex panics (a programmer error, not a runtime warning) if i
// is out of range.
func (m *Model) CheckActuatorIndex(i int) {
	if i < 0 || i >= m.Nu {
		chk.Panic("actuator index out of range: i=%d, nu=%d", i, m.Nu)
	}
}
