// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"math"

	"github.com/cpmech/gosl/la"

	"github.com/dynsim/rbdyn/collab"
	"github.com/dynsim/rbdyn/model"
)

// minval is the smallest denominator allowed in the FILTER activation
// dynamics law.
const minval = 1e-15

// fwdActuation produces actuator_force[nu], qfrc_actuator[nv] and
// act_dot[na].
func fwdActuation(m *model.Model, d *model.Data, c *collab.Set) {

	// 1. zero accumulators
	for i := range d.QfrcActuator {
		d.QfrcActuator[i] = 0
	}
	for i := range d.ActuatorForce {
		d.ActuatorForce[i] = 0
	}

	// 2. non-finite control recovery: zero ALL controls, not just the
	// offending slot.
	for i, v := range d.Ctrl {
		if isBad(c, v) {
			d.Raise(model.WarnBadCtrl, i)
			for j := range d.Ctrl {
				d.Ctrl[j] = 0
			}
			break
		}
	}

	// 3. nothing to do
	if m.Nu == 0 || m.Opt.Disabled(model.DisableActuation) {
		return
	}

	clampCtrl := !m.Opt.Disabled(model.DisableClampCtrl)

	// 4. per-actuator gain/bias/force assembly
	for i := 0; i < m.Nu; i++ {
		a := &m.Actuators[i]

		if a.CtrlLimited && clampCtrl {
			d.Ctrl[i] = clamp(d.Ctrl[i], a.CtrlRange)
		}

		gain := actuatorGain(m, d, c, i, a)

		var drive float64
		if a.DynType == model.DynNone {
			drive = d.Ctrl[i]
		} else {
			drive = d.Act[m.StatefulIndex(i)]
		}

		force := gain * drive
		force += actuatorBias(m, d, c, i, a)
		d.ActuatorForce[i] = force
	}

	// 5. force clamp
	for i := 0; i < m.Nu; i++ {
		a := &m.Actuators[i]
		if a.ForceLimited {
			d.ActuatorForce[i] = clamp(d.ActuatorForce[i], a.ForceRange)
		}
	}

	// 6. qfrc_actuator = moment^T * force. The row view is cached on d so
	// steady-state stepping does not reshape it on every call.
	la.MatTrVecMulAdd(d.QfrcActuator, 1, d.ActuatorMomentRows(m.Nu, m.Nv), d.ActuatorForce)

	// 7. stateful actuator dynamics
	for i := m.Nu - m.Na; i < m.Nu; i++ {
		a := &m.Actuators[i]
		j := m.StatefulIndex(i)
		d.ActDot[j] = actuatorActDot(m, d, c, i, j, a)
	}
}

// actuatorGain selects the force gain by the actuator's gain type.
func actuatorGain(m *model.Model, d *model.Data, c *collab.Set, i int, a *model.Actuator) float64 {
	switch a.GainType {
	case model.GainFixed:
		return a.Gainprm[0]
	case model.GainMuscle:
		if c.MuscleGain != nil {
			return c.MuscleGain(d.ActuatorLength[i], d.ActuatorVelocity[i], a.LengthRange, a.Acc0, a.Gainprm)
		}
		return 1
	default:
		if c.ActGain != nil {
			return c.ActGain(m, d, i)
		}
		return 1
	}
}

// actuatorBias selects the force bias by the actuator's bias type.
func actuatorBias(m *model.Model, d *model.Data, c *collab.Set, i int, a *model.Actuator) float64 {
	switch a.BiasType {
	case model.BiasNone:
		return 0
	case model.BiasAffine:
		return a.Biasprm[0] + a.Biasprm[1]*d.ActuatorLength[i] + a.Biasprm[2]*d.ActuatorVelocity[i]
	case model.BiasMuscle:
		if c.MuscleBias != nil {
			return c.MuscleBias(d.ActuatorLength[i], d.ActuatorVelocity[i], a.LengthRange, a.Acc0, a.Biasprm)
		}
		return 0
	default:
		if c.ActBias != nil {
			return c.ActBias(m, d, i)
		}
		return 0
	}
}

// actuatorActDot computes the activation derivative of stateful actuator i
// by its dynamics type.
func actuatorActDot(m *model.Model, d *model.Data, c *collab.Set, i, j int, a *model.Actuator) float64 {
	switch a.DynType {
	case model.DynIntegrator:
		return d.Ctrl[i]
	case model.DynFilter:
		tau := math.Max(minval, a.Dynprm[0])
		return (d.Ctrl[i] - d.Act[j]) / tau
	case model.DynMuscle:
		if c.MuscleDynamics != nil {
			return c.MuscleDynamics(d.Ctrl[i], d.Act[j], a.Dynprm)
		}
		return 0
	default:
		if c.ActDyn != nil {
			return c.ActDyn(m, d, i)
		}
		return 0
	}
}

func clamp(x float64, r [2]float64) float64 {
	if x < r[0] {
		return r[0]
	}
	if x > r[1] {
		return r[1]
	}
	return x
}
