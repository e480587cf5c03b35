// Package memzero wipes secrets held in byte slices and arrays.
package memzero

import (
	"crypto/subtle"
	"runtime"
)

// Zero overwrites b with zeros. XORing b with itself is a write the compiler
// cannot prove dead.
func Zero(b []byte) {
	if len(b) == 0 {
		return
	}
	subtle.XORBytes(b, b, b)
	runtime.KeepAlive(b)
}

// ZeroAll wipes every slice in bs.
func ZeroAll(bs ...[]byte) {
	for _, b := range bs {
		Zero(b)
	}
}
