// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/dynsim/rbdyn/collab"
	"github.com/dynsim/rbdyn/model"
	"github.com/dynsim/rbdyn/scratch"
)

// fwdVelocity runs the velocity-dependent computations: tendon and actuator
// velocity, COM velocity, passive forces, the constraint reference, and the
// bias force via a reduced Newton-Euler evaluation with zero acceleration.
// It marks and frees st even on the no-tendon/no-actuator path so every
// caller sees a matched mark/free pair.
func fwdVelocity(m *model.Model, d *model.Data, c *collab.Set, st *scratch.Stack) {
	mark := st.Mark()
	defer st.FreeTo(mark)

	// ten_velocity = ten_J * qvel; mulTenJac owns the sparse/dense branch.
	if m.Nte > 0 {
		mulTenJac(m, d, c, d.TenVelocity, d.Qvel)
	}

	// actuator_velocity = actuator_moment * qvel, always dense.
	if m.Nu > 0 {
		la.MatVecMul(d.ActuatorVelocity, 1, d.ActuatorMomentRows(m.Nu, m.Nv), d.Qvel)
	}

	collab.Call(c.ComVel, m, d)
	collab.Call(c.Passive, m, d)
	collab.Call(c.ReferenceConstraint, m, d)

	// qfrc_bias = RNE(qvel, qacc==0): abbreviated recursive Newton-Euler
	// for Coriolis + gravity bias forces. The zero-acceleration argument
	// comes from the scratch stack rather than a per-call make.
	if c.RNE != nil {
		zero := st.Vec(m.Nv)
		bias := c.RNE(m, d, zero)
		copy(d.QfrcBias, bias)
	}
}

// mulTenJac encapsulates the tendon Jacobian-times-vector product behind
// one branch on IsSparse.
func mulTenJac(m *model.Model, d *model.Data, c *collab.Set, dst, src []float64) {
	if m.IsSparse() {
		if c.MulJacVec == nil {
			chk.Panic("mulTenJac: model.Opt.UseSparseJacobian is set but no MulJacVec collaborator is wired")
		}
		c.MulJacVec(m, d, dst, src)
		return
	}
	// reference dense fallback for models that never populate the sparse
	// row-index arrays.
	collab.DenseMatVec(d.TenJ, m.Nte, m.Nv, src, dst)
}
