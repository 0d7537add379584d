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

// fwdConstraint warmstarts and solves the constraint sub-problem, writing
// qacc, qacc_warmstart and efc_force. The nefc==0 fast path must not mark
// the scratch stack: there is nothing to free and every other caller in the
// pipeline assumes a matching mark/free pair, so an unpaired mark here
// would leak across the step.
func fwdConstraint(m *model.Model, d *model.Data, c *collab.Set, st *scratch.Stack) {
	if d.Nefc == 0 {
		copy(d.Qacc, d.QaccSmooth)
		copy(d.QaccWarmstart, d.QaccSmooth)
		for i := range d.QfrcConstraint {
			d.QfrcConstraint[i] = 0
		}
		d.SolverIter = 0
		return
	}

	mark := st.Mark()
	defer st.FreeTo(mark)

	nefc := d.Nefc

	// 1. efc_b = J*qacc_smooth - efc_aref
	mulEfcJac(m, d, c, d.EfcB, d.QaccSmooth)
	for i := 0; i < nefc; i++ {
		d.EfcB[i] -= d.EfcAref[i]
	}

	if !m.Opt.Disabled(model.DisableWarmstart) {
		copy(d.Qacc, d.QaccWarmstart)

		jar := st.Vec(nefc)
		mulEfcJac(m, d, c, jar, d.QaccWarmstart)
		for i := 0; i < nefc; i++ {
			jar[i] -= d.EfcAref[i]
		}

		var costWarmstart float64
		if c.ConstraintUpdate != nil {
			costWarmstart = c.ConstraintUpdate(m, d, jar, false)
		}

		if m.Opt.Solver == model.SolverPGS {
			var phi float64
			for i := 0; i < nefc; i++ {
				phi += d.EfcForce[i] * d.EfcB[i]
			}
			ar := st.Vec(nefc)
			mulEfcAR(m, d, c, ar, d.EfcForce)
			for i := 0; i < nefc; i++ {
				phi += 0.5 * d.EfcForce[i] * ar[i]
			}
			if phi > 0 {
				for i := range d.EfcForce {
					d.EfcForce[i] = 0
				}
				for i := range d.QfrcConstraint {
					d.QfrcConstraint[i] = 0
				}
			}
		} else {
			qm := st.Vec(m.Nv)
			if c.MulM != nil {
				c.MulM(m, d, qm, d.QaccWarmstart)
			} else {
				collab.DenseMassMul(m, d, qm, d.QaccWarmstart)
			}
			var gauss float64
			for i := 0; i < m.Nv; i++ {
				gauss += (qm[i] - d.QfrcSmooth[i]) * (d.QaccWarmstart[i] - d.QaccSmooth[i])
			}
			costWarmstart += 0.5 * gauss

			var costSmooth float64
			if c.ConstraintUpdate != nil {
				costSmooth = c.ConstraintUpdate(m, d, d.EfcB, false)
			}
			if costWarmstart > costSmooth {
				copy(d.Qacc, d.QaccSmooth)
			}
		}
	} else {
		copy(d.Qacc, d.QaccSmooth)
		for i := range d.EfcForce {
			d.EfcForce[i] = 0
		}
	}

	switch m.Opt.Solver {
	case model.SolverPGS:
		if c.SolPGS != nil {
			c.SolPGS(m, d, m.Opt.Iterations)
		}
	case model.SolverCG:
		if c.SolCG != nil {
			c.SolCG(m, d, m.Opt.Iterations)
		}
	case model.SolverNewton:
		if c.SolNewton != nil {
			c.SolNewton(m, d, m.Opt.Iterations)
		}
	default:
		chk.Panic("fwdConstraint: unknown solver %v", m.Opt.Solver)
	}
	d.SolverIter = m.Opt.Iterations

	copy(d.QaccWarmstart, d.Qacc)

	if m.Opt.NoslipIterations > 0 && c.SolNoSlip != nil {
		c.SolNoSlip(m, d, m.Opt.NoslipIterations)
	}
}

// mulEfcJac encapsulates the constraint Jacobian-times-vector product
// behind one branch on IsSparse. It shares the same external mulJacVec
// collaborator as the tendon Jacobian (engine/velocity.go); only the dense
// reference fallback differs, since the two Jacobians have unrelated row
// counts (nefc vs ntendon).
func mulEfcJac(m *model.Model, d *model.Data, c *collab.Set, dst, src []float64) {
	if m.IsSparse() {
		if c.MulJacVec == nil {
			chk.Panic("mulEfcJac: model.Opt.UseSparseJacobian is set but no MulJacVec collaborator is wired")
		}
		c.MulJacVec(m, d, dst, src)
		return
	}
	collab.DenseMatVec(d.EfcJ, d.Nefc, m.Nv, src, dst)
}

// mulEfcAR encapsulates the A_R product used by the PGS warmstart
// quadratic-cost check, branching on IsSparse exactly like mulEfcJac.
// Dense models read d.EfcAR directly; sparse models must supply MulARVec,
// since d.EfcAR is left nil when the constraint-build collaborator lays the
// matrix out sparsely instead.
func mulEfcAR(m *model.Model, d *model.Data, c *collab.Set, dst, src []float64) {
	if m.IsSparse() {
		if c.MulARVec == nil {
			chk.Panic("mulEfcAR: model.Opt.UseSparseJacobian is set but no MulARVec collaborator is wired")
		}
		c.MulARVec(m, d, dst, src)
		return
	}
	collab.DenseMatVec(d.EfcAR, d.Nefc, d.Nefc, src, dst)
}
