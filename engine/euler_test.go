// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/dynsim/rbdyn/model"
)

// TestEulerNoDampingExact: with no DOF damping, Euler satisfies
// qvel_{t+1} = qvel_t + h*qacc_t exactly (to floating point), since the
// undamped path is a single fused multiply-add per DOF with no intervening
// refactorization.
func TestEulerNoDampingExact(tst *testing.T) {
	chk.PrintTitle("Euler: exact update with no damping")

	m, d, c, st := newSlider(2, model.IntegratorEuler)
	d.Qvel[0] = 1.25
	d.Qacc[0] = -3.0
	qvelBefore := d.Qvel[0]
	qaccBefore := d.Qacc[0]

	Euler(m, d, c, st)

	chk.Float64(tst, "qvel", 1e-17, d.Qvel[0], qvelBefore+m.Opt.Timestep*qaccBefore)
}

// TestEulerTimeAdvancesByTimestep: after a step, time increases by exactly
// timestep.
func TestEulerTimeAdvancesByTimestep(tst *testing.T) {
	chk.PrintTitle("Euler: time advances by exactly h")

	m, d, c, st := newSlider(1, model.IntegratorEuler)
	t0 := d.Time
	Euler(m, d, c, st)
	chk.Float64(tst, "time", 1e-17, d.Time, t0+m.Opt.Timestep)
}

// TestStepTimeAdvancesByTimestep checks the same invariant at the Step
// entry point, across all three integrators.
func TestStepTimeAdvancesByTimestep(tst *testing.T) {
	chk.PrintTitle("Step: time advances by exactly h, all integrators")

	for _, it := range []model.Integrator{model.IntegratorEuler, model.IntegratorRK4, model.IntegratorImplicit} {
		m, d, c, st := newSlider(1, it)
		t0 := d.Time
		Step(m, d, c, st)
		chk.Float64(tst, "time/"+it.String(), 1e-12, d.Time, t0+m.Opt.Timestep)
	}
}

// TestStep1Step2MatchesStep checks that calling Step1 then Step2 produces
// the same qpos/qvel/time as a single Step call from identical initial
// conditions (the split is transparent to the result when the controller
// writes nothing new between halves).
func TestStep1Step2MatchesStep(tst *testing.T) {
	chk.PrintTitle("Step1+Step2 matches Step")

	m1, d1, c1, st1 := newSlider(2, model.IntegratorEuler)
	d1.Qvel[0] = 0.7
	d1.QfrcApplied[0] = 1.5
	Step(m1, d1, c1, st1)

	m2, d2, c2, st2 := newSlider(2, model.IntegratorEuler)
	d2.Qvel[0] = 0.7
	d2.QfrcApplied[0] = 1.5
	Step1(m2, d2, c2, st2)
	Step2(m2, d2, c2, st2)

	chk.Float64(tst, "qpos", 1e-13, d2.Qpos[0], d1.Qpos[0])
	chk.Float64(tst, "qvel", 1e-13, d2.Qvel[0], d1.Qvel[0])
	chk.Float64(tst, "time", 1e-17, d2.Time, d1.Time)
}
