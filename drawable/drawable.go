// Package drawable tracks the renderable targets contexts bind to.
//
// A Drawable pairs a windowing-protocol drawable identifier with the
// opaque surface the native compositor assigned for it. Records are
// reference counted: every context bound to a drawable holds one
// reference, and the registry's garbage-collection pass is the sole
// reclamation point for records whose count reached zero.
//
// The registry has its own lock, independent of the context
// registry's; callers may hold either without ordering constraints
// because no code path takes both at once.
package drawable

import (
	"github.com/jezek/xgb/xproto"

	"github.com/viking-saver/AppleSGLX/native"
)

// UID is the numeric identifier correlating a native surface back to
// the drawable record that owns it. Asynchronous surface-teardown
// notifications carry a UID.
type UID uint32

// Drawable is one renderable target: an on-screen window or an
// off-screen buffer.
//
// The identifying fields (ID, SurfaceID, UID, dimensions) are set at
// creation and never change, so they may be read without holding the
// registry lock. The reference count is owned by the registry.
type Drawable struct {
	id     xproto.Drawable
	sid    native.SurfaceID
	uid    UID
	width  int
	height int

	// Guarded by the owning registry's mutex.
	refs             int
	surfaceDestroyed bool
}

// ID returns the windowing-protocol drawable identifier.
func (d *Drawable) ID() xproto.Drawable { return d.id }

// SurfaceID returns the surface identifier the native compositor
// assigned for this drawable.
func (d *Drawable) SurfaceID() native.SurfaceID { return d.sid }

// UID returns the notification correlation id for this drawable.
func (d *Drawable) UID() UID { return d.uid }

// Size returns the drawable dimensions in pixels.
func (d *Drawable) Size() (width, height int) { return d.width, d.height }
