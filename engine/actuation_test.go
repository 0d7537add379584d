// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/dynsim/rbdyn/model"
)

// TestActivationUpperClamp: a single INTEGRATOR actuator driven by ctrl=1
// must never exceed actrange[1]=1, must stay
// below it for a while, and once it reaches the bound it must stay
// pinned there exactly (not drift back down or overshoot).
func TestActivationUpperClamp(tst *testing.T) {
	chk.PrintTitle("activation upper clamp")

	m, d, c, st := newSliderWithActuator(1, [2]float64{-1, 1})

	sawBelow := false
	sawAtBound := false
	for i := 0; i < 200; i++ {
		Step(m, d, c, st)
		act := d.Act[0]
		if act <= -1 {
			tst.Fatalf("step %d: act=%v should always stay > -1", i, act)
		}
		if act > 1+1e-12 {
			tst.Fatalf("step %d: act=%v should never exceed +1", i, act)
		}
		if act < 1 {
			sawBelow = true
		}
		if act >= 1-1e-9 {
			sawAtBound = true
		}
		if sawAtBound {
			if act < 1-1e-9 || act > 1+1e-12 {
				tst.Fatalf("step %d: act=%v should equal exactly 1 once clamped", i, act)
			}
		}
	}
	if !sawBelow {
		tst.Errorf("act should be below 1 during the early steps")
	}
	if !sawAtBound {
		tst.Errorf("act should reach the +1 bound within 200 steps")
	}
}

// TestActivationLowerClamp is the mirror image: ctrl=-1 driving act toward
// actrange[0]=-1.
func TestActivationLowerClamp(tst *testing.T) {
	chk.PrintTitle("activation lower clamp")

	m, d, c, st := newSliderWithActuator(-1, [2]float64{-1, 1})

	sawAbove := false
	sawAtBound := false
	for i := 0; i < 200; i++ {
		Step(m, d, c, st)
		act := d.Act[0]
		if act >= 1 {
			tst.Fatalf("step %d: act=%v should always stay < 1", i, act)
		}
		if act < -1-1e-12 {
			tst.Fatalf("step %d: act=%v should never go below -1", i, act)
		}
		if act > -1 {
			sawAbove = true
		}
		if act <= -1+1e-9 {
			sawAtBound = true
		}
	}
	if !sawAbove {
		tst.Errorf("act should be above -1 during the early steps")
	}
	if !sawAtBound {
		tst.Errorf("act should reach the -1 bound within 200 steps")
	}
}

// TestActuatorForceRange checks the force-range clamp: actuator_force must
// land inside forcerange whenever forcelimited.
func TestActuatorForceRange(tst *testing.T) {
	chk.PrintTitle("actuator force range clamp")

	m, d, c, st := newSlider(1, model.IntegratorEuler)
	_ = st
	m.Nu = 1
	m.Actuators = []model.Actuator{{
		GainType:     model.GainFixed,
		Gainprm:      [model.NGAIN]float64{1000},
		ForceLimited: true,
		ForceRange:   [2]float64{-5, 5},
	}}
	d2 := model.NewData(m, 0, 0)
	d2.QM[0] = 1
	d2.Ctrl[0] = 1

	fwdActuation(m, d2, c)
	if d2.ActuatorForce[0] < -5-1e-12 || d2.ActuatorForce[0] > 5+1e-12 {
		tst.Fatalf("actuator_force=%v escaped forcerange [-5,5]", d2.ActuatorForce[0])
	}
	chk.Float64(tst, "actuator_force", 1e-13, d2.ActuatorForce[0], 5)
}
