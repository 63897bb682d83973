// Package glx bridges an X11 GLX-style graphics context abstraction
// onto a native, OS-level graphics context API.
//
// # Overview
//
// Client rendering calls issued against the X windowing protocol are
// executed against a different underlying graphics driver stack. The
// package owns the context lifecycle and the drawable-binding
// registry: a concurrency-safe store of every live context in the
// process, the state machine that binds a context to a drawable
// ("make current"), and the cross-referencing needed to resolve an
// opaque surface identifier back to its owning context from an
// asynchronous notification path.
//
// # Quick Start
//
//	import (
//		glx "github.com/viking-saver/AppleSGLX"
//		"github.com/viking-saver/AppleSGLX/drawable"
//		"github.com/viking-saver/AppleSGLX/native"
//		"github.com/viking-saver/AppleSGLX/visual"
//		_ "github.com/viking-saver/AppleSGLX/native/software"
//	)
//
//	sys, err := native.InitDefault()
//	if err != nil {
//		// no backend could start
//	}
//	reg := glx.NewRegistry(sys)
//	disp := glx.NewDisplay(drawable.NewXDisplay(xconn), drawable.NewRegistry())
//
//	ctx, err := glx.CreateContext(reg, 0, visual.Mode{ColorBits: 24, DoubleBuffer: true}, nil)
//	if err != nil {
//		// environment fault: the native subsystem could not produce a context
//	}
//	if err := ctx.MakeCurrent(disp, drawableID); err != nil {
//		// recoverable: abandon the bind, the context state stays consistent
//	}
//	defer ctx.Destroy(disp)
//
// # Architecture
//
// The module is organized into:
//   - glx (this package): context registry, lifecycle, surface lookup
//   - native: the native graphics subsystem contract and its backends
//   - visual: pixel-format resolution
//   - drawable: the reference-counted drawable registry
//
// The native subsystem is an opaque capability: backends register
// themselves via side-effect imports (native/wgpu for the Pure Go GPU
// stack, native/software for the CPU fallback) and are selected by
// priority, or explicitly by name.
//
// # Concurrency
//
// A single coarse lock serializes registry membership mutations and
// the surface uid scan. Context churn happens only at create/destroy
// boundaries, never per frame, so contention is not a concern.
// Drawable reference counts are guarded by the drawable registry's
// own lock; the destroy path drops the context registry lock before
// touching drawable state so that surface-destroyed notifications
// arriving on other goroutines can never deadlock against a
// destroying goroutine.
package glx

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 2

	// VersionPatch is the patch version
	VersionPatch = 0
)
