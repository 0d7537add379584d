// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/dynsim/rbdyn/model"
)

// TestNefcZeroFastPath: when nefc==0, qacc must equal qacc_smooth exactly
// and qfrc_constraint must be zero, and the scratch stack must come back
// untouched (the fast path must not mark).
func TestNefcZeroFastPath(tst *testing.T) {
	chk.PrintTitle("fwdConstraint: nefc==0 fast path")

	m, d, c, st := newSlider(2, model.IntegratorEuler)
	d.QaccSmooth[0] = 3.5
	d.QfrcConstraint[0] = 99 // poison; must be cleared

	markBefore := st.Mark()
	fwdConstraint(m, d, c, st)
	if st.Mark() != markBefore {
		tst.Errorf("fwdConstraint must not mark the scratch stack on the nefc==0 path")
	}

	chk.Float64(tst, "qacc", 1e-17, d.Qacc[0], d.QaccSmooth[0])
	chk.Float64(tst, "qacc_warmstart", 1e-17, d.QaccWarmstart[0], d.QaccSmooth[0])
	chk.Float64(tst, "qfrc_constraint", 1e-17, d.QfrcConstraint[0], 0)
	chk.IntAssert(d.SolverIter, 0)
}

// TestBadControlRecovery: a non-finite ctrl entry must raise BADCTRL,
// record lastinfo at the offending index, and zero every control. The
// recovery lives in fwdActuation, so the test calls that stage directly
// rather than a full Step.
func TestBadControlRecovery(tst *testing.T) {
	chk.PrintTitle("bad-control recovery")

	m, _, c, _ := newSlider(1, model.IntegratorEuler)
	m.Nu = 2
	m.Actuators = []model.Actuator{{GainType: model.GainFixed}, {GainType: model.GainFixed}}
	d2 := model.NewData(m, 0, 0)
	d2.QM[0] = 1
	d2.Ctrl[0] = 1
	d2.Ctrl[1] = posInf()

	fwdActuation(m, d2, c)

	w := d2.Warnings[model.WarnBadCtrl]
	chk.IntAssert(w.Number, 1)
	chk.IntAssert(w.LastInfo, 1)
	for i, v := range d2.Ctrl {
		if v != 0 {
			tst.Errorf("ctrl[%d]=%v should have been zeroed by the recovery path", i, v)
		}
	}
}

func posInf() float64 {
	x := 0.0
	return 1 / x
}
