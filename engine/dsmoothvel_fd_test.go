// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"

	"github.com/dynsim/rbdyn/model"
)

// TestDSmoothVelMatchesFiniteDifference cross-checks the analytic
// d(qfrc_smooth)/d(qvel) a DSmoothVel collaborator is expected to produce
// against gonum's finite-difference Jacobian, for a toy linear-damping
// smooth force law. DSmoothVel is an external collaborator the driver
// trusts, so this test only exercises the reference law used by the other
// Implicit tests in this package, not engine code itself.
func TestDSmoothVelMatchesFiniteDifference(tst *testing.T) {
	chk.PrintTitle("DSmoothVel vs finite-difference Jacobian (gonum/diff/fd)")

	const damp = 7.5

	// qfrc_smooth(qvel) = -damp*qvel, the same law TestImplicitDampsVelocity
	// wires through c.Passive/c.DSmoothVel.
	qfrcSmooth := func(y, qvel []float64) {
		y[0] = -damp * qvel[0]
	}
	analyticDeriv := -damp

	x := []float64{1.25}
	jac := mat.NewDense(1, 1, nil)
	fd.Jacobian(jac, qfrcSmooth, x, &fd.JacobianSettings{
		Formula: fd.Central,
		Step:    1e-6,
	})

	numericDeriv := jac.At(0, 0)
	chk.Float64(tst, "d(qfrc_smooth)/d(qvel)", 1e-6, numericDeriv, analyticDeriv)

	// sanity: confirm model.Model/model.Data still describe an nv=1 system
	// consistent with this toy law, so the comparison above is meaningful
	// for the same model shape Implicit() steps in implicit_test.go.
	m := &model.Model{Nv: 1}
	if m.Nv != len(x) {
		tst.Fatalf("toy Jacobian dimension %d does not match model.Nv=%d", len(x), m.Nv)
	}
}
