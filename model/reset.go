// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

// Reset restores d to m's default initial state, the recovery action taken
// on a non-finite qpos/qvel/qacc. DefaultQpos/DefaultQvel may be nil, in
// which case the corresponding arrays are simply zeroed.
func (d *Data) Reset(m *Model) {
	resetOrZero(d.Qpos, m.DefaultQpos)
	resetOrZero(d.Qvel, m.DefaultQvel)
	for i := range d.Act {
		d.Act[i] = 0
	}
	for i := range d.Ctrl {
		d.Ctrl[i] = 0
	}
	for i := range d.QfrcApplied {
		d.QfrcApplied[i] = 0
	}
	for i := range d.XfrcApplied {
		d.XfrcApplied[i] = [6]float64{}
	}
	for i := range d.Qacc {
		d.Qacc[i] = 0
	}
	for i := range d.QaccWarmstart {
		d.QaccWarmstart[i] = 0
	}
	for i := range d.QaccSmooth {
		d.QaccSmooth[i] = 0
	}
	for i := range d.EfcForce {
		d.EfcForce[i] = 0
	}
	d.SolverIter = 0
}

func resetOrZero(dst, defaults []float64) {
	if defaults != nil {
		copy(dst, defaults)
		return
	}
	for i := range dst {
		dst[i] = 0
	}
}
