// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// step-demo drives a single damped-slider model through the forward-
// dynamics pipeline with the chosen integrator, printing a Snapshot per
// step. It exists to exercise engine.Step end-to-end without requiring a
// full kinematics/collision/constraint collaborator set: every collab.Set
// field except the optional Control callback is left nil, so the driver
// falls back to the dense reference collaborators in package collab.
package main

import (
	"flag"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"

	"github.com/dynsim/rbdyn/collab"
	"github.com/dynsim/rbdyn/engine"
	"github.com/dynsim/rbdyn/model"
	"github.com/dynsim/rbdyn/report"
	"github.com/dynsim/rbdyn/scratch"
)

func main() {
	integrator := flag.String("integrator", "euler", "integrator: euler, rk4, implicit")
	steps := flag.Int("steps", 100, "number of steps to run")
	h := flag.Float64("h", 0.01, "timestep")
	mass := flag.Float64("mass", 1.0, "slider mass")
	damping := flag.Float64("damping", 0.0, "dof damping coefficient")
	force := flag.Float64("force", 0.0, "constant qfrc_applied")
	x0 := flag.Float64("x0", 1.0, "initial position")
	v0 := flag.Float64("v0", 0.0, "initial velocity")
	ctrlGain := flag.Float64("ctrl-gain", 0.0, "fixed-gain actuator gain; 0 disables the actuator")
	ctrl := flag.Float64("ctrl", 0.0, "constant control signal driving the actuator (ignored if -ctrl-gain=0)")
	flag.Parse()

	io.PfWhite("\nrbdyn step-demo -- single damped slider, forward-dynamics pipeline\n\n")

	var it model.Integrator
	switch *integrator {
	case "euler":
		it = model.IntegratorEuler
	case "rk4":
		it = model.IntegratorRK4
	case "implicit":
		it = model.IntegratorImplicit
	default:
		chk.Panic("unknown -integrator %q (want euler, rk4, implicit)", *integrator)
	}

	m := &model.Model{
		Opt: model.Options{
			Integrator: it,
			Solver:     model.SolverPGS,
			Iterations: 10,
			Timestep:   *h,
		},
		Nq:         1,
		Nv:         1,
		NM:         1,
		DofDamping: []float64{*damping},
		DofMadr:    []int{0},
	}

	c := &collab.Set{}

	// an optional fixed-gain actuator driven by a constant gosl/fun.TimeSpace
	// control law -- a trivial "hold ctrl at a constant value" controller, so
	// the Control collaborator seam gets exercised instead of writing d.Ctrl
	// from the flag directly.
	if *ctrlGain != 0 {
		m.Nu = 1
		m.Actuators = []model.Actuator{{
			GainType: model.GainFixed,
			Gainprm:  [model.NGAIN]float64{*ctrlGain},
		}}
		ctrlLaw := fun.TimeSpace(&fun.Cte{C: *ctrl})
		c.Control = func(mm *model.Model, dd *model.Data) {
			dd.Ctrl[0] = ctrlLaw.F(dd.Time, nil)
		}
	}

	d := model.NewData(m, 0, 0)
	d.Qpos[0] = *x0
	d.Qvel[0] = *v0
	d.QfrcApplied[0] = *force
	d.QM[0] = *mass

	st := scratch.NewStack(64)

	defer utl.DoProf(false)()

	snaps := make(report.Snapshots, 0, *steps)
	for i := 0; i < *steps; i++ {
		engine.Step(m, d, c, st)
		snaps = append(snaps, report.Snapshot{
			Step: i,
			Time: d.Time,
			Qpos: append([]float64(nil), d.Qpos...),
			Qvel: append([]float64(nil), d.Qvel...),
			Qacc: append([]float64(nil), d.Qacc...),
		})
	}

	io.Pf("%v\n", snaps)
}
