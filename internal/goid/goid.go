// Package goid extracts the numeric id of the calling goroutine.
//
// The id is advisory bookkeeping only: glx records which goroutine
// last made a context current, mirroring the single-active-goroutine
// convention callers are expected to honor. Nothing enforces it.
package goid

import (
	"bytes"
	"runtime"
	"strconv"
)

var prefix = []byte("goroutine ")

// ID returns the id of the calling goroutine.
//
// It parses the header line of a single-goroutine stack dump
// ("goroutine N [running]:"). This costs a runtime.Stack call and is
// only meant for low-frequency diagnostic use, never per-frame paths.
func ID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := bytes.TrimPrefix(buf[:n], prefix)
	if i := bytes.IndexByte(b, ' '); i > 0 {
		b = b[:i]
	}
	id, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
