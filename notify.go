package glx

import (
	"github.com/viking-saver/AppleSGLX/drawable"
)

// HandleSurfaceDestroyed reacts to an asynchronous notification that
// the windowing system tore down the surface identified by uid. If a
// live context is bound to the surface's drawable, its native surface
// binding is detached so the next frame does not touch freed memory.
//
// Finding no context is a normal outcome: the notification may race a
// local teardown that already removed the binding. The handler
// reports whether a binding was found; a detach failure on a found
// binding is an environment fault.
func HandleSurfaceDestroyed(reg *Registry, uid drawable.UID) (bool, error) {
	b, ok := reg.SurfaceByUID(uid)
	if !ok {
		Logger().Debug("surface teardown notification matched no context", "uid", uint32(uid))
		return false, nil
	}
	if err := b.Context.ClearDrawable(); err != nil {
		return true, fault("clear drawable after surface teardown", err)
	}
	Logger().Debug("surface teardown handled",
		"uid", uint32(uid), "surface", uint32(b.SurfaceID))
	return true, nil
}
