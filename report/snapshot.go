// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report formats engine stepping output for human consumption: a
// JSON-ish line per step with state vectors and warning counters.
package report

import "github.com/cpmech/gosl/io"

// Snapshot is a point-in-time view of model.Data worth printing: the step
// index, time, state vectors and the running warning counts.
type Snapshot struct {
	Step     int
	Time     float64
	Qpos     []float64
	Qvel     []float64
	Qacc     []float64
	Warnings map[string]int // kind name -> cumulative count, zero entries omitted
}

// String renders the snapshot as a hand-built JSON-ish line, not
// encoding/json, so the output stays one greppable line per step.
func (s Snapshot) String() string {
	l := io.Sf("{\"step\":%d, \"time\":%g, \"qpos\":%s, \"qvel\":%s, \"qacc\":%s",
		s.Step, s.Time, vecStr(s.Qpos), vecStr(s.Qvel), vecStr(s.Qacc))
	if len(s.Warnings) > 0 {
		l += ", \"warnings\":{"
		first := true
		for kind, n := range s.Warnings {
			if !first {
				l += ", "
			}
			l += io.Sf("%q:%d", kind, n)
			first = false
		}
		l += "}"
	}
	l += "}"
	return l
}

func vecStr(v []float64) string {
	l := "["
	for i, x := range v {
		if i > 0 {
			l += ","
		}
		l += io.Sf("%g", x)
	}
	return l + "]"
}

// Snapshots is a sequence of Snapshot, printed one per line.
type Snapshots []Snapshot

func (ss Snapshots) String() string {
	l := "[\n"
	for i, s := range ss {
		if i > 0 {
			l += ",\n"
		}
		l += io.Sf("  %v", s)
	}
	l += "\n]"
	return l
}
