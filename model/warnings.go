// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import "github.com/cpmech/gosl/io"

// WarningKind enumerates the value-sanity and control warnings the engine
// can raise.
type WarningKind int

const (
	WarnBadQpos WarningKind = iota
	WarnBadQvel
	WarnBadQacc
	WarnBadCtrl
	NumWarnings
)

func (k WarningKind) String() string {
	switch k {
	case WarnBadQpos:
		return "BADQPOS"
	case WarnBadQvel:
		return "BADQVEL"
	case WarnBadQacc:
		return "BADQACC"
	case WarnBadCtrl:
		return "BADCTRL"
	default:
		return "UNKNOWN"
	}
}

// Warning counts occurrences of a warning kind and records the index of the
// last offending entry.
type Warning struct {
	Number   int
	LastInfo int
}

// Raise increments the counter, records info, and logs one line.
func (d *Data) Raise(kind WarningKind, info int) {
	w := &d.Warnings[kind]
	w.Number++
	w.LastInfo = info
	io.Pfyel("warning: %v at index %d (count=%d)\n", kind, info, w.Number)
}
