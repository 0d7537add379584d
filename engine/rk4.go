// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"github.com/cpmech/gosl/chk"

	"github.com/dynsim/rbdyn/collab"
	"github.com/dynsim/rbdyn/model"
	"github.com/dynsim/rbdyn/scratch"
)

// Tableau is an explicit Runge-Kutta Butcher tableau. A is the lower
// triangular (N-1)x(N-1) coefficient matrix, B the length-N quadrature
// weights; C is derived from A. Only N=4 is wired to a solver today, but
// the data shape is general.
type Tableau struct {
	A [][]float64
	B []float64
}

// C returns the row sums of A, the fractional sub-step times used to build
// T[i] = time + C[i]*h.
func (t Tableau) C() []float64 {
	c := make([]float64, len(t.A))
	for i, row := range t.A {
		var sum float64
		for _, a := range row {
			sum += a
		}
		c[i] = sum
	}
	return c
}

// DefaultTableau is the classic 4th-order Runge-Kutta tableau, the only
// order this package's RungeKutta accepts.
var DefaultTableau = Tableau{
	A: [][]float64{
		{0.5, 0, 0},
		{0, 0.5, 0},
		{0, 0, 1},
	},
	B: []float64{1.0 / 6, 1.0 / 3, 1.0 / 3, 1.0 / 6},
}

// rk4Stage holds one sub-stage's state X[k] and derivative F[k].
type rk4Stage struct {
	pos, vel, act []float64
	accel, actdot []float64
}

// RungeKutta advances (qpos, qvel, act, time) by one step of explicit
// Runge-Kutta using tableau t. Only N=4 is supported; any other order is a
// fatal error. The caller must have already run a full Forward so the first
// stage can be seeded from d.
func RungeKutta(m *model.Model, d *model.Data, c *collab.Set, st *scratch.Stack, t Tableau) {
	n := len(t.B)
	if n != 4 {
		chk.Panic("RungeKutta: unsupported order N=%d (only N=4 is wired)", n)
	}

	mark := st.Mark()
	defer st.FreeTo(mark)

	h := m.Opt.Timestep
	timeEntry := d.Time
	cs := t.C()

	stages := make([]rk4Stage, n)
	for k := range stages {
		stages[k] = rk4Stage{
			pos:    st.Vec(m.Nq),
			vel:    st.Vec(m.Nv),
			act:    st.Vec(m.Na),
			accel:  st.Vec(m.Nv),
			actdot: st.Vec(m.Na),
		}
	}

	copy(stages[0].pos, d.Qpos)
	copy(stages[0].vel, d.Qvel)
	copy(stages[0].act, d.Act)
	copy(stages[0].accel, d.Qacc)
	copy(stages[0].actdot, d.ActDot)

	dxVel := st.Vec(m.Nv)
	dxAcc := st.Vec(m.Nv)
	dxActdot := st.Vec(m.Na)

	for k := 1; k < n; k++ {
		for i := range dxVel {
			dxVel[i] = 0
		}
		for i := range dxAcc {
			dxAcc[i] = 0
		}
		for i := range dxActdot {
			dxActdot[i] = 0
		}
		for j := 0; j < k; j++ {
			a := t.A[k-1][j]
			if a == 0 {
				continue
			}
			for i := 0; i < m.Nv; i++ {
				dxVel[i] += a * stages[j].vel[i]
				dxAcc[i] += a * stages[j].accel[i]
			}
			for i := 0; i < m.Na; i++ {
				dxActdot[i] += a * stages[j].actdot[i]
			}
		}

		copy(d.Qpos, stages[0].pos)
		if c.IntegratePos != nil {
			c.IntegratePos(m, d.Qpos, dxVel, h)
		} else {
			collab.EuclideanIntegratePos(m, d.Qpos, dxVel, h)
		}
		for i := 0; i < m.Nv; i++ {
			d.Qvel[i] = stages[0].vel[i] + h*dxAcc[i]
		}
		for i := 0; i < m.Na; i++ {
			d.Act[i] = stages[0].act[i] + h*dxActdot[i]
		}

		d.Time = timeEntry + cs[k-1]*h
		ForwardSkip(m, d, c, st, StageNone, true)

		copy(stages[k].pos, d.Qpos)
		copy(stages[k].vel, d.Qvel)
		copy(stages[k].act, d.Act)
		copy(stages[k].accel, d.Qacc)
		copy(stages[k].actdot, d.ActDot)
	}

	sumVel := st.Vec(m.Nv)
	sumAcc := st.Vec(m.Nv)
	sumActdot := st.Vec(m.Na)
	for k := 0; k < n; k++ {
		b := t.B[k]
		for i := 0; i < m.Nv; i++ {
			sumVel[i] += b * stages[k].vel[i]
			sumAcc[i] += b * stages[k].accel[i]
		}
		for i := 0; i < m.Na; i++ {
			sumActdot[i] += b * stages[k].actdot[i]
		}
	}

	copy(d.Qpos, stages[0].pos)
	if c.IntegratePos != nil {
		c.IntegratePos(m, d.Qpos, sumVel, h)
	} else {
		collab.EuclideanIntegratePos(m, d.Qpos, sumVel, h)
	}
	for i := 0; i < m.Nv; i++ {
		d.Qvel[i] = stages[0].vel[i] + h*sumAcc[i]
	}
	for i := 0; i < m.Na; i++ {
		d.Act[i] = stages[0].act[i] + h*sumActdot[i]
	}
	advanceActivationClamp(m, d)

	d.Time = timeEntry + h
}

// advanceActivationClamp clamps stateful actuators into actrange after the
// final RK4 update, matching Euler's clamp without re-integrating act
// (already written by the caller).
func advanceActivationClamp(m *model.Model, d *model.Data) {
	for i := m.Nu - m.Na; i < m.Nu; i++ {
		j := m.StatefulIndex(i)
		a := &m.Actuators[i]
		if a.ActLimited {
			d.Act[j] = clamp(d.Act[j], a.ActRange)
		}
	}
}
