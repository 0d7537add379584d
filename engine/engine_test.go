// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"github.com/dynsim/rbdyn/collab"
	"github.com/dynsim/rbdyn/model"
	"github.com/dynsim/rbdyn/scratch"
)

// newSlider builds a single free slider (nq=nv=1) of the given mass with
// no kinematics/collision collaborators; every collab.Set field stays nil
// so fwdPosition/fwdVelocity/fwdConstraint are pure no-ops (or the dense
// reference fallback) and the test exercises only the arithmetic this
// package itself owns.
func newSlider(mass float64, integrator model.Integrator) (*model.Model, *model.Data, *collab.Set, *scratch.Stack) {
	m := &model.Model{
		Opt: model.Options{
			Integrator: integrator,
			Solver:     model.SolverPGS,
			Iterations: 1,
			Timestep:   0.01,
		},
		Nq:         1,
		Nv:         1,
		NM:         1,
		DofDamping: []float64{0},
		DofMadr:    []int{0},
	}
	d := model.NewData(m, 0, 0)
	d.QM[0] = mass
	c := &collab.Set{}
	st := scratch.NewStack(32)
	return m, d, c, st
}

// newSliderWithActuator extends newSlider with one stateful actuator
// driving act via the INTEGRATOR activation law, for the activation clamp
// tests.
func newSliderWithActuator(ctrl float64, actRange [2]float64) (*model.Model, *model.Data, *collab.Set, *scratch.Stack) {
	m, d, c, st := newSlider(1, model.IntegratorEuler)
	m.Nu = 1
	m.Na = 1
	m.Actuators = []model.Actuator{{
		GainType:   model.GainFixed,
		BiasType:   model.BiasAffine,
		DynType:    model.DynIntegrator,
		ActLimited: true,
		ActRange:   actRange,
		Gainprm:    [model.NGAIN]float64{100},
		Biasprm:    [model.NBIAS]float64{0, -100, 0},
	}}
	d2 := model.NewData(m, 0, 0)
	d2.QM[0] = d.QM[0]
	d2.Ctrl[0] = ctrl
	return m, d2, c, st
}
