// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package collab

import (
	"math"

	"github.com/cpmech/gosl/la"

	"github.com/dynsim/rbdyn/model"
)

// The functions in this file are reference collaborator implementations
// for models small enough that dense linear algebra is adequate (tests,
// cmd/step-demo). Production models are expected to supply their own
// kinematics/CRB/factorization/collision/constraint-build collaborators;
// those have no implementation here.

// DenseMassMul multiplies dst = M*src using a dense row-major nv*nv mass
// matrix stored in d.QM (NM == nv*nv).
func DenseMassMul(m *model.Model, d *model.Data, dst, src []float64) {
	nv := m.Nv
	for i := 0; i < nv; i++ {
		var sum float64
		row := d.QM[i*nv : i*nv+nv]
		for j := 0; j < nv; j++ {
			sum += row[j] * src[j]
		}
		dst[i] = sum
	}
}

// DenseMassSolve solves M*dst = src by Gauss-Jordan elimination on a copy
// of the dense mass matrix. This is a reference SolveM for small models
// only; production models are expected to solve through the L*D*L^T
// factorization (qLD/qLDiagInv/qLDiagSqrtInv) their factorM collaborator
// maintains.
func DenseMassSolve(m *model.Model, d *model.Data, dst, src []float64) {
	nv := m.Nv
	a := la.MatAlloc(nv, nv)
	for i := 0; i < nv; i++ {
		copy(a[i], d.QM[i*nv:i*nv+nv])
	}
	x := make([]float64, nv)
	copy(x, src)

	for col := 0; col < nv; col++ {
		piv := col
		best := math.Abs(a[col][col])
		for r := col + 1; r < nv; r++ {
			if v := math.Abs(a[r][col]); v > best {
				piv, best = r, v
			}
		}
		if piv != col {
			a[col], a[piv] = a[piv], a[col]
			x[col], x[piv] = x[piv], x[col]
		}
		d0 := a[col][col]
		for r := 0; r < nv; r++ {
			if r == col {
				continue
			}
			f := a[r][col] / d0
			if f == 0 {
				continue
			}
			for c := col; c < nv; c++ {
				a[r][c] -= f * a[col][c]
			}
			x[r] -= f * x[col]
		}
	}
	for i := 0; i < nv; i++ {
		dst[i] = x[i] / a[i][i]
	}
}

// DenseMatVec multiplies dst = A*src where A is a dense row-major
// rows*cols matrix, used as a drop-in MulJacVec for models that keep a
// dense tendon/constraint Jacobian instead of the sparse row layout.
func DenseMatVec(a []float64, rows, cols int, src, dst []float64) {
	la.MatVecMul(dst, 1, Reshape(a, rows, cols), src)
}

// Reshape views a flat row-major matrix as a slice of row slices sharing
// the same backing array, for use with gosl/la's [][]float64 matrix APIs.
func Reshape(flat []float64, rows, cols int) [][]float64 {
	out := make([][]float64, rows)
	for i := 0; i < rows; i++ {
		out[i] = flat[i*cols : i*cols+cols]
	}
	return out
}

// EuclideanIntegratePos advances qpos by h*qvel component-wise. This is the
// correct integratePos for models without quaternion (ball/free) joints;
// models with such joints must supply an IntegratePos collaborator that
// handles the quaternion block, since nq > nv there and linear addition is
// wrong.
func EuclideanIntegratePos(m *model.Model, qpos, qvel []float64, h float64) {
	la.VecAdd2(qpos, 1, qpos, h, qvel)
}

// IsBadFloat reports whether x is NaN or infinite, the reference IsBad.
func IsBadFloat(x float64) bool {
	return math.IsNaN(x) || math.IsInf(x, 0)
}
