// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package engine implements the forward-dynamics driver: the staged
// pipeline that turns positions, velocities, controls and activations
// into accelerations, the warmstart-and-solve logic for the constraint
// sub-problem, and the Euler / RK4 / implicit integrators.
package engine

import (
	"github.com/dynsim/rbdyn/collab"
	"github.com/dynsim/rbdyn/model"
	"github.com/dynsim/rbdyn/scratch"
)

func isBad(c *collab.Set, x float64) bool {
	if c.IsBad != nil {
		return c.IsBad(x)
	}
	return collab.IsBadFloat(x)
}

// checkPos scans qpos for non-finite values. On the first offender it
// raises BADQPOS and resets d to model defaults.
func checkPos(m *model.Model, d *model.Data, c *collab.Set) {
	for i, v := range d.Qpos {
		if isBad(c, v) {
			d.Raise(model.WarnBadQpos, i)
			d.Reset(m)
			return
		}
	}
}

// checkVel scans qvel for non-finite values.
func checkVel(m *model.Model, d *model.Data, c *collab.Set) {
	for i, v := range d.Qvel {
		if isBad(c, v) {
			d.Raise(model.WarnBadQvel, i)
			d.Reset(m)
			return
		}
	}
}

// checkAcc scans qacc for non-finite values. Unlike checkPos/checkVel, on
// an offender it also re-runs Forward so the post-reset state is fully
// consistent.
func checkAcc(m *model.Model, d *model.Data, c *collab.Set, st *scratch.Stack) {
	for i, v := range d.Qacc {
		if isBad(c, v) {
			d.Raise(model.WarnBadQacc, i)
			d.Reset(m)
			Forward(m, d, c, st)
			return
		}
	}
}
