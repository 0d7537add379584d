// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"time"

	"github.com/cpmech/gosl/chk"

	"github.com/dynsim/rbdyn/collab"
	"github.com/dynsim/rbdyn/model"
	"github.com/dynsim/rbdyn/scratch"
)

// timeStage runs fn and accumulates its elapsed wall-clock time into d's
// named timer.
func timeStage(d *model.Data, name string, fn func()) {
	t0 := time.Now()
	fn()
	d.AddTimer(name, time.Since(t0))
}

// Stage labels the point in the pipeline a ForwardSkip call should start
// from: a stage only runs if skipstage is strictly less than the stage's
// own label.
type Stage int

const (
	StageNone Stage = iota
	StagePos
	StageVel
	StageAcc
)

// ForwardSkip runs the staged pipeline starting after skipstage, gating
// sensors on skipsensor and energy on the EnableEnergy flag. The user
// control callback runs unconditionally at acceleration-stage entry so it
// observes post-velocity sensors.
func ForwardSkip(m *model.Model, d *model.Data, c *collab.Set, st *scratch.Stack, skipstage Stage, skipsensor bool) {
	if skipstage < StagePos {
		timeStage(d, "pos", func() { fwdPosition(m, d, c) })
		if !skipsensor {
			collab.Call(c.SensorPos, m, d)
		}
		if m.Opt.Enabled(model.EnableEnergy) {
			collab.Call(c.EnergyPos, m, d)
		}
	}

	if skipstage < StageVel {
		timeStage(d, "vel", func() { fwdVelocity(m, d, c, st) })
		if !skipsensor {
			collab.Call(c.SensorVel, m, d)
		}
		if m.Opt.Enabled(model.EnableEnergy) {
			collab.Call(c.EnergyVel, m, d)
		}
	}

	if skipstage < StageAcc {
		collab.Call(c.Control, m, d)
		timeStage(d, "acc", func() {
			fwdActuation(m, d, c)
			fwdAcceleration(m, d, c, st)
			fwdConstraint(m, d, c, st)
		})
		if !skipsensor {
			collab.Call(c.SensorAcc, m, d)
		}
	}
}

// Forward runs the full pipeline with sensors enabled: forwardSkip(NONE, 0).
func Forward(m *model.Model, d *model.Data, c *collab.Set, st *scratch.Stack) {
	ForwardSkip(m, d, c, st, StageNone, false)
}

// Step runs one full simulation step: sanity checks, forward dynamics, and
// the configured integrator.
func Step(m *model.Model, d *model.Data, c *collab.Set, st *scratch.Stack) {
	t0 := time.Now()
	defer func() { d.AddTimer("STEP", time.Since(t0)) }()

	checkPos(m, d, c)
	checkVel(m, d, c)
	Forward(m, d, c, st)
	checkAcc(m, d, c, st)

	if m.Opt.Enabled(model.EnableFwdInv) {
		compareFwdInv(m, d, c)
	}

	runIntegrator(m, d, c, st, m.Opt.Integrator)
}

// Step1 runs through velocity-stage sensors/energy and the control
// callback, stopping short of actuation. A caller observes sensor data here
// and may write d.Ctrl before calling Step2.
func Step1(m *model.Model, d *model.Data, c *collab.Set, st *scratch.Stack) {
	t0 := time.Now()
	defer func() { d.AddTimer("STEP", time.Since(t0)) }()

	checkPos(m, d, c)
	checkVel(m, d, c)
	timeStage(d, "pos", func() { fwdPosition(m, d, c) })
	collab.Call(c.SensorPos, m, d)
	if m.Opt.Enabled(model.EnableEnergy) {
		collab.Call(c.EnergyPos, m, d)
	}
	timeStage(d, "vel", func() { fwdVelocity(m, d, c, st) })
	collab.Call(c.SensorVel, m, d)
	if m.Opt.Enabled(model.EnableEnergy) {
		collab.Call(c.EnergyVel, m, d)
	}
	collab.Call(c.Control, m, d)
}

// Step2 runs actuation through integration, picking up where Step1 left
// off. RK4 is downgraded to Euler here because RK4's intermediate stages
// need a full ForwardSkip re-evaluation, which would re-enter the user
// control callback Step1 just ran.
func Step2(m *model.Model, d *model.Data, c *collab.Set, st *scratch.Stack) {
	t0 := time.Now()
	defer func() {
		d.AddTimer("STEP", time.Since(t0))
		// Step1 already counted this step once; this call and that one
		// together are one step, not two.
		d.DecTimerCount("STEP")
	}()

	timeStage(d, "acc", func() {
		fwdActuation(m, d, c)
		fwdAcceleration(m, d, c, st)
		fwdConstraint(m, d, c, st)
	})
	collab.Call(c.SensorAcc, m, d)
	checkAcc(m, d, c, st)

	if m.Opt.Enabled(model.EnableFwdInv) {
		compareFwdInv(m, d, c)
	}

	integrator := m.Opt.Integrator
	if integrator == model.IntegratorRK4 {
		integrator = model.IntegratorEuler
	}
	runIntegrator(m, d, c, st, integrator)
}

func runIntegrator(m *model.Model, d *model.Data, c *collab.Set, st *scratch.Stack, integrator model.Integrator) {
	switch integrator {
	case model.IntegratorEuler:
		Euler(m, d, c, st)
	case model.IntegratorRK4:
		RungeKutta(m, d, c, st, DefaultTableau)
	case model.IntegratorImplicit:
		Implicit(m, d, c, st)
	default:
		chk.Panic("step: unknown integrator %v", integrator)
	}
}

// compareFwdInv is the optional forward/inverse-dynamics consistency check
// gated by EnableFwdInv. Inverse dynamics has no collaborator wired yet, so
// this is a no-op with the call site kept in place.
func compareFwdInv(m *model.Model, d *model.Data, c *collab.Set) {
}
