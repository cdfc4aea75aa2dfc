// Copyright 2021 Datawire. All rights reserved.
//
// This file is based on Go 1.17.1 sync/cond.go.
//
// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE. file.

package dsync

import (
	"sync/atomic"
	"unsafe"
)

// noCopyRuntime may be embedded into structs which must not be copied after the first use, and then
// .check() called to detect copies at runtime.
//
// The first check() records the address of the field itself; a copy carries that recorded address
// to a new location, where it no longer matches.
type noCopyRuntime uintptr

// return whether the check is OK
func (c *noCopyRuntime) check() bool {
	self := uintptr(unsafe.Pointer(c))
	if atomic.LoadUintptr((*uintptr)(c)) == self {
		return true
	}
	// First use: claim it.  Losing the race to another first use is fine, as long as the winner
	// recorded the same address.
	if atomic.CompareAndSwapUintptr((*uintptr)(c), 0, self) {
		return true
	}
	return atomic.LoadUintptr((*uintptr)(c)) == self
}

// noCopyVet may be embedded into structs which must not be copied after the first use, in order for
// `go vet -copylocks` to detect the copy.
//
// See https://golang.org/issues/8005#issuecomment-190753527 for details.
type noCopyVet struct{}

// Lock is a no-op used by -copylocks checker from `go vet`.
func (*noCopyVet) Lock()   {}
func (*noCopyVet) Unlock() {}
