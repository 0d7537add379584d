// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"github.com/dynsim/rbdyn/collab"
	"github.com/dynsim/rbdyn/model"
	"github.com/dynsim/rbdyn/scratch"
)

// Implicit advances (qvel, act, qpos, time) by one step of the fully
// implicit-in-velocity integrator. It calls the MakeMSparse, DSmoothVel and
// SetMSparse collaborators, then FactorLUSparse, and solves
// qLU*qacc' = qfrc_smooth + qfrc_constraint with SolveLUSparse. The driver
// does not form qLU = M - h*qDeriv itself; that matrix is whatever those
// collaborators leave in d.QLU. When SolveLUSparse is nil the solve falls
// back to SolveM, or to collab.DenseMassSolve on d.QM, and the -h*qDeriv
// term enters only if that SolveM includes it. Unlike Euler and RK4,
// activations are advanced without clamping here.
func Implicit(m *model.Model, d *model.Data, c *collab.Set, st *scratch.Stack) {
	mark := st.Mark()
	defer st.FreeTo(mark)

	h := m.Opt.Timestep

	collab.Call(c.MakeMSparse, m, d)
	collab.Call(c.DSmoothVel, m, d)
	collab.Call(c.SetMSparse, m, d)

	pivot := st.IntVec(m.Nv)
	if c.FactorLUSparse != nil {
		c.FactorLUSparse(m, d, pivot)
	}

	qfrc := st.Vec(m.Nv)
	for i := 0; i < m.Nv; i++ {
		qfrc[i] = d.QfrcSmooth[i] + d.QfrcConstraint[i]
	}

	qaccPrime := st.Vec(m.Nv)
	if c.SolveLUSparse != nil {
		c.SolveLUSparse(m, d, qaccPrime, qfrc)
	} else if c.SolveM != nil {
		c.SolveM(m, d, qaccPrime, qfrc)
	} else {
		collab.DenseMassSolve(m, d, qaccPrime, qfrc)
	}

	for i := 0; i < m.Nv; i++ {
		d.Qvel[i] += h * qaccPrime[i]
	}
	for j := 0; j < m.Na; j++ {
		d.Act[j] += h * d.ActDot[j]
	}

	if c.IntegratePos != nil {
		c.IntegratePos(m, d.Qpos, d.Qvel, h)
	} else {
		collab.EuclideanIntegratePos(m, d.Qpos, d.Qvel, h)
	}
	d.Time += h
}
