// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package collab

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/dynsim/rbdyn/model"
)

func TestDenseMassSolveRecoversIdentity(tst *testing.T) {
	chk.PrintTitle("DenseMassSolve against identity mass")

	m := &model.Model{Nv: 3}
	d := &model.Data{QM: []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}}
	src := []float64{2, -3, 5}
	dst := make([]float64, 3)
	DenseMassSolve(m, d, dst, src)
	for i := range src {
		chk.Float64(tst, "dst", 1e-13, dst[i], src[i])
	}
}

func TestDenseMassSolveDiagonal(tst *testing.T) {
	chk.PrintTitle("DenseMassSolve against a diagonal mass")

	m := &model.Model{Nv: 2}
	d := &model.Data{QM: []float64{
		2, 0,
		0, 4,
	}}
	src := []float64{4, 8}
	dst := make([]float64, 2)
	DenseMassSolve(m, d, dst, src)
	chk.Float64(tst, "dst[0]", 1e-13, dst[0], 2)
	chk.Float64(tst, "dst[1]", 1e-13, dst[1], 2)
}

func TestReshape(tst *testing.T) {
	chk.PrintTitle("Reshape shares the backing array")

	flat := []float64{1, 2, 3, 4, 5, 6}
	rows := Reshape(flat, 2, 3)
	chk.IntAssert(len(rows), 2)
	chk.Float64(tst, "rows[1][2]", 1e-17, rows[1][2], 6)

	rows[0][0] = 99
	chk.Float64(tst, "flat[0] after mutating view", 1e-17, flat[0], 99)
}

func TestEuclideanIntegratePos(tst *testing.T) {
	chk.PrintTitle("EuclideanIntegratePos")

	m := &model.Model{Nv: 2}
	qpos := []float64{1, 2}
	qvel := []float64{0.5, -1}
	EuclideanIntegratePos(m, qpos, qvel, 0.1)
	chk.Float64(tst, "qpos[0]", 1e-13, qpos[0], 1.05)
	chk.Float64(tst, "qpos[1]", 1e-13, qpos[1], 1.9)
}

func TestIsBadFloat(tst *testing.T) {
	chk.PrintTitle("IsBadFloat")

	if IsBadFloat(1.0) {
		tst.Errorf("1.0 should not be bad")
	}
	if !IsBadFloat(1.0 / zero()) {
		tst.Errorf("+Inf should be bad")
	}
}

func zero() float64 { return 0 }
