// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"github.com/dynsim/rbdyn/collab"
	"github.com/dynsim/rbdyn/model"
)

// fwdPosition runs the position-dependent computations in fixed order:
// kinematics, COM, cameras/lights, tendon lengths, transmission,
// composite-rigid-body inertia, mass factorization, collision, constraint
// build, constraint projection. Each step depends on the previous one's
// outputs, so there is no branching here; the driver's only obligation is
// the order.
func fwdPosition(m *model.Model, d *model.Data, c *collab.Set) {
	collab.Call(c.Kinematics, m, d)
	collab.Call(c.ComPos, m, d)
	collab.Call(c.Camlight, m, d)
	collab.Call(c.Tendon, m, d)
	collab.Call(c.Transmission, m, d)
	collab.Call(c.CRB, m, d)
	collab.Call(c.FactorM, m, d)
	collab.Call(c.Collision, m, d)
	collab.Call(c.MakeConstraint, m, d)
	collab.Call(c.ProjectConstraint, m, d)
}
