// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestStatefulIndex(tst *testing.T) {
	chk.PrintTitle("StatefulIndex")

	m := &Model{Nu: 5, Na: 2}
	chk.IntAssert(m.StatefulIndex(3), 0)
	chk.IntAssert(m.StatefulIndex(4), 1)
	if m.IsStateful(2) {
		tst.Errorf("actuator 2 should not be stateful when nu=5, na=2")
	}
	if !m.IsStateful(3) || !m.IsStateful(4) {
		tst.Errorf("actuators 3 and 4 should be stateful when nu=5, na=2")
	}
}

func TestCheckActuatorIndexPanics(tst *testing.T) {
	chk.PrintTitle("CheckActuatorIndex")

	m := &Model{Nu: 3}
	defer func() {
		if r := recover(); r == nil {
			tst.Errorf("CheckActuatorIndex(5) should have panicked with nu=3")
		}
	}()
	m.CheckActuatorIndex(5)
}

func TestReadOptionsValidation(tst *testing.T) {
	chk.PrintTitle("ReadOptions")

	if _, err := ReadOptions([]byte(`{"timestep":0,"iterations":10}`)); err == nil {
		tst.Errorf("ReadOptions should reject a non-positive timestep")
	}
	if _, err := ReadOptions([]byte(`{"timestep":0.01,"iterations":0}`)); err == nil {
		tst.Errorf("ReadOptions should reject non-positive iterations")
	}

	o, err := ReadOptions([]byte(`{"timestep":0.01,"iterations":10,"solver":1}`))
	if err != nil {
		tst.Errorf("ReadOptions failed on valid input: %v", err)
	}
	chk.Float64(tst, "timestep", 1e-17, o.Timestep, 0.01)
	chk.IntAssert(int(o.Solver), int(SolverCG))
}
