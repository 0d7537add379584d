// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"github.com/dynsim/rbdyn/collab"
	"github.com/dynsim/rbdyn/model"
	"github.com/dynsim/rbdyn/scratch"
)

// Euler advances (qvel, act, qpos, time) by one step of semi-implicit
// Euler. DOF damping, when present, is treated implicitly: the damping term
// is folded into the mass matrix before the solve rather than applied
// explicitly, which is unconditionally stable for any h.
func Euler(m *model.Model, d *model.Data, c *collab.Set, st *scratch.Stack) {
	damped := false
	if !m.Opt.Disabled(model.DisableEulerDamp) {
		for _, b := range m.DofDamping {
			if b > 0 {
				damped = true
				break
			}
		}
	}

	if !damped {
		for i := 0; i < m.Nv; i++ {
			d.Qvel[i] += m.Opt.Timestep * d.Qacc[i]
		}
	} else {
		eulerDamped(m, d, c, st)
	}

	advanceActivations(m, d)
	if c.IntegratePos != nil {
		c.IntegratePos(m, d.Qpos, d.Qvel, m.Opt.Timestep)
	} else {
		collab.EuclideanIntegratePos(m, d.Qpos, d.Qvel, m.Opt.Timestep)
	}
	d.Time += m.Opt.Timestep
}

// eulerDamped is the implicit-in-velocity damping path: save the
// factorization, stiffen the mass matrix's diagonal by h*damping, refactor,
// solve, step qvel, then restore the saved factorization so later stages
// see the undamped M again.
func eulerDamped(m *model.Model, d *model.Data, c *collab.Set, st *scratch.Stack) {
	mark := st.Mark()
	defer st.FreeTo(mark)

	h := m.Opt.Timestep

	savedQM := st.Vec(len(d.QM))
	copy(savedQM, d.QM)
	savedQLD := st.Vec(len(d.QLD))
	copy(savedQLD, d.QLD)
	savedDiagInv := st.Vec(len(d.QLDiagInv))
	copy(savedDiagInv, d.QLDiagInv)
	savedDiagSqrtInv := st.Vec(len(d.QLDiagSqrtInv))
	copy(savedDiagSqrtInv, d.QLDiagSqrtInv)

	for i := 0; i < m.Nv; i++ {
		if m.DofDamping[i] > 0 {
			d.QM[m.DofMadr[i]] += h * m.DofDamping[i]
		}
	}
	collab.Call(c.FactorM, m, d)

	qfrc := st.Vec(m.Nv)
	for i := 0; i < m.Nv; i++ {
		qfrc[i] = d.QfrcSmooth[i] + d.QfrcConstraint[i]
	}

	qaccDamped := st.Vec(m.Nv)
	if c.SolveM != nil {
		c.SolveM(m, d, qaccDamped, qfrc)
	} else {
		collab.DenseMassSolve(m, d, qaccDamped, qfrc)
	}

	for i := 0; i < m.Nv; i++ {
		d.Qvel[i] += h * qaccDamped[i]
	}

	copy(d.QM, savedQM)
	copy(d.QLD, savedQLD)
	copy(d.QLDiagInv, savedDiagInv)
	copy(d.QLDiagSqrtInv, savedDiagSqrtInv)
}

// advanceActivations integrates act by h*act_dot and clamps stateful
// actuators into actrange when actlimited. Used by Euler; RungeKutta writes
// act itself and clamps through advanceActivationClamp.
func advanceActivations(m *model.Model, d *model.Data) {
	h := m.Opt.Timestep
	for i := m.Nu - m.Na; i < m.Nu; i++ {
		j := m.StatefulIndex(i)
		d.Act[j] += h * d.ActDot[j]
		a := &m.Actuators[i]
		if a.ActLimited {
			d.Act[j] = clamp(d.Act[j], a.ActRange)
		}
	}
}
