// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import "time"

// Data holds the mutable simulation state D. The engine package never
// resizes these arrays; NewData allocates them once from a Model's
// dimensions and every operation reads/writes in place.
type Data struct {
	// configuration
	Qpos []float64 // [nq]
	Qvel []float64 // [nv]
	Act  []float64 // [na]
	Time float64

	// inputs
	Ctrl        []float64    // [nu]
	QfrcApplied []float64    // [nv]
	XfrcApplied [][6]float64 // [nbody] Cartesian wrenches, consumed by xfrcAccumulate

	// kinematic caches (stage 1)
	TenJ             []float64 // [ntendon*nv] dense, or nil when sparse
	TenJRownnz       []int
	TenJRowadr       []int
	TenJColind       []int
	ActuatorMoment   []float64 // [nu*nv]
	ActuatorLength   []float64 // [nu]
	ActuatorVelocity []float64 // [nu]
	TenVelocity      []float64 // [ntendon]

	QM            []float64 // [nM] custom sparse mass layout
	QLD           []float64 // [nM] L*D*L^T factorization
	QLDiagInv     []float64 // [nv]
	QLDiagSqrtInv []float64 // [nv]

	// constraint block (stage 1/2/5)
	Nefc     int
	EfcJ     []float64 // [nefc*nv] dense constraint Jacobian, or nil when sparse (accessed via collaborator)
	EfcAref  []float64 // [nefc]
	EfcB     []float64 // [nefc]
	EfcForce []float64 // [nefc]
	EfcAR    []float64 // [nefc*nefc] dense, or nil when sparse (accessed via collaborator)

	// force accumulators, all [nv]
	QfrcPassive    []float64
	QfrcBias       []float64
	QfrcActuator   []float64
	QfrcSmooth     []float64
	QfrcConstraint []float64

	// acceleration slots, all [nv]
	QaccSmooth    []float64
	Qacc          []float64
	QaccWarmstart []float64

	// actuator state
	ActuatorForce []float64 // [nu]
	ActDot        []float64 // [na]

	// implicit integrator scratch
	DRownnz []int
	DRowadr []int
	DColind []int
	QDeriv  []float64 // [nD]
	QLU     []float64 // [nD]

	// diagnostics
	Warnings   [NumWarnings]Warning
	Timers     map[string]*TimerStat
	SolverIter int

	// actuatorMomentRows is a cached row-slice view over ActuatorMoment
	// shared by fwdVelocity and fwdActuation. ActuatorMoment is sized
	// nu*nv once by NewData and never resized, so the view can be built
	// once here instead of reallocated every step.
	actuatorMomentRows [][]float64
}

// TimerStat accumulates elapsed wall-clock time and a call count for one
// named stage or step.
type TimerStat struct {
	Duration time.Duration
	Count    int
}

// AddTimer accumulates elapsed into the named timer, creating it on first
// use.
func (d *Data) AddTimer(name string, elapsed time.Duration) {
	t := d.Timers[name]
	if t == nil {
		t = &TimerStat{}
		d.Timers[name] = t
	}
	t.Duration += elapsed
	t.Count++
}

// DecTimerCount decrements the named timer's call count by one without
// touching its accumulated duration. Step2 uses this to correct the STEP
// timer: Step1 and Step2 together advance exactly one step, but each calls
// AddTimer("STEP", ...) once, so Step2 backs out the double count.
func (d *Data) DecTimerCount(name string) {
	if t := d.Timers[name]; t != nil {
		t.Count--
	}
}

// ActuatorMomentRows returns the cached nu*nv row-slice view over
// ActuatorMoment, built lazily on first use and reused thereafter.
func (d *Data) ActuatorMomentRows(nu, nv int) [][]float64 {
	if d.actuatorMomentRows == nil && nu > 0 {
		rows := make([][]float64, nu)
		for i := 0; i < nu; i++ {
			rows[i] = d.ActuatorMoment[i*nv : i*nv+nv]
		}
		d.actuatorMomentRows = rows
	}
	return d.actuatorMomentRows
}

// NewData allocates a Data with every float64 array sized from m's
// dimensions. The sparse row-index arrays (TenJRownnz/Rowadr/Colind,
// DRownnz/Rowadr/Colind) are left nil for the collaborators that build them.
func NewData(m *Model, nefc, nbody int) *Data {
	d := &Data{
		Qpos:             make([]float64, m.Nq),
		Qvel:             make([]float64, m.Nv),
		Act:              make([]float64, m.Na),
		Ctrl:             make([]float64, m.Nu),
		QfrcApplied:      make([]float64, m.Nv),
		XfrcApplied:      make([][6]float64, nbody),
		TenJ:             make([]float64, m.Nte*m.Nv),
		ActuatorMoment:   make([]float64, m.Nu*m.Nv),
		ActuatorLength:   make([]float64, m.Nu),
		ActuatorVelocity: make([]float64, m.Nu),
		TenVelocity:      make([]float64, m.Nte),
		QM:               make([]float64, m.NM),
		QLD:              make([]float64, m.NM),
		QLDiagInv:        make([]float64, m.Nv),
		QLDiagSqrtInv:    make([]float64, m.Nv),
		QfrcPassive:      make([]float64, m.Nv),
		QfrcBias:         make([]float64, m.Nv),
		QfrcActuator:     make([]float64, m.Nv),
		QfrcSmooth:       make([]float64, m.Nv),
		QfrcConstraint:   make([]float64, m.Nv),
		QaccSmooth:       make([]float64, m.Nv),
		Qacc:             make([]float64, m.Nv),
		QaccWarmstart:    make([]float64, m.Nv),
		ActuatorForce:    make([]float64, m.Nu),
		ActDot:           make([]float64, m.Na),
		QDeriv:           make([]float64, m.ND),
		QLU:              make([]float64, m.ND),
		Timers:           make(map[string]*TimerStat),
	}
	d.ResizeConstraints(m, nefc)
	return d
}

// ResizeConstraints (re)allocates the constraint block for a new nefc. The
// engine itself never calls this mid-step (nefc is constant across the
// stages of one step); it exists for the external makeConstraint
// collaborator to call whenever positions change.
func (d *Data) ResizeConstraints(m *Model, nefc int) {
	d.Nefc = nefc
	d.EfcJ = make([]float64, nefc*m.Nv)
	d.EfcAref = make([]float64, nefc)
	d.EfcB = make([]float64, nefc)
	d.EfcForce = make([]float64, nefc)
	d.EfcAR = make([]float64, nefc*nefc)
}
