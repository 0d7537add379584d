// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"github.com/dynsim/rbdyn/collab"
	"github.com/dynsim/rbdyn/model"
	"github.com/dynsim/rbdyn/scratch"
)

// fwdAcceleration assembles qfrc_smooth and solves the unconstrained
// acceleration qacc_smooth = M^-1 * qfrc_smooth. The sign convention on
// qfrc_bias is deliberate: rne returns the bias with the opposite sign, so
// it is subtracted here.
func fwdAcceleration(m *model.Model, d *model.Data, c *collab.Set, st *scratch.Stack) {
	mark := st.Mark()
	defer st.FreeTo(mark)

	xfrc := st.Vec(m.Nv)
	if c.XfrcAccumulate != nil {
		c.XfrcAccumulate(m, d, xfrc)
	}

	for i := 0; i < m.Nv; i++ {
		d.QfrcSmooth[i] = d.QfrcPassive[i] - d.QfrcBias[i] + d.QfrcApplied[i] + d.QfrcActuator[i] + xfrc[i]
	}

	if c.SolveM != nil {
		c.SolveM(m, d, d.QaccSmooth, d.QfrcSmooth)
	} else {
		collab.DenseMassSolve(m, d, d.QaccSmooth, d.QfrcSmooth)
	}
}
