// Package memzero clears key material once a caller is done with it.
package memzero

import "runtime"

// Zero overwrites b with zeros. The KeepAlive fence keeps the writes from
// being elided when b is about to go out of scope.
//
//go:noinline
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}
