package glx

import (
	"fmt"

	"github.com/jezek/xgb/xproto"

	"github.com/viking-saver/AppleSGLX/internal/goid"
	"github.com/viking-saver/AppleSGLX/native"
	"github.com/viking-saver/AppleSGLX/visual"
)

// CreateContext builds a new context on reg's subsystem for the given
// screen and visual mode, optionally sharing object state with an
// existing context. The new context starts unbound and not current.
//
// Failures here are environment faults: the subsystem refused to
// produce a pixel format or context for a mode it advertised, which
// leaves nothing sensible to retry.
func CreateContext(reg *Registry, screen int, mode visual.Mode, shared *Context) (*Context, error) {
	desc := visual.Resolve(mode)

	pf, err := reg.sys.CreatePixelFormat(desc)
	if err != nil {
		return nil, fault("create pixel format", err)
	}

	var shareWith native.Context
	if shared != nil {
		shareWith = shared.nctx
	}
	nctx, err := reg.sys.CreateContext(pf, shareWith)
	if err != nil {
		if derr := pf.Destroy(); derr != nil {
			Logger().Warn("pixel format teardown failed after context creation failure", "err", derr)
		}
		return nil, fault("create native context", err)
	}

	c := &Context{
		reg:            reg,
		nctx:           nctx,
		pf:             pf,
		screen:         screen,
		doubleBuffered: pf.DoubleBuffered(),
		owner:          goid.ID(),
	}
	c.handle = reg.insert(c)

	Logger().Debug("context created",
		"screen", screen, "doubleBuffered", c.doubleBuffered, "shared", shared != nil)
	return c, nil
}

// MakeCurrent binds the context to the drawable id and makes it the
// current context for the calling goroutine. Passing None leaves the
// drawable binding untouched and re-asserts currency with no surface
// attached.
//
// The reference to the previously bound drawable is released before
// the new one is acquired. If surface negotiation or attachment then
// fails, the old reference is not restored and, on attachment failure,
// the new binding stays in place; this mirrors the historical behavior
// of the path. The error is recoverable and the caller may retry.
func (c *Context) MakeCurrent(disp *Display, id xproto.Drawable) error {
	c.reg.mu.Lock()
	dead := c.destroyed
	c.reg.mu.Unlock()
	if dead {
		return ErrContextDestroyed
	}

	if id == None {
		if err := c.nctx.ClearDrawable(); err != nil {
			return fmt.Errorf("glx: clear drawable: %w", err)
		}
		if err := c.reg.sys.SetCurrent(c.nctx); err != nil {
			return fmt.Errorf("glx: set current: %w", err)
		}
		c.setOwner(goid.ID())
		return nil
	}

	// Drop the old binding before acquiring the new one. Rebinding the
	// same drawable nets out: the release here is balanced by the find
	// below.
	c.reg.mu.Lock()
	old := c.drawable
	c.drawable = nil
	c.reg.mu.Unlock()
	if old != nil {
		disp.draws.Release(old)
	}

	d := disp.draws.Find(id)
	if d == nil {
		var err error
		d, err = disp.draws.Create(disp.surfaces, id)
		if err != nil {
			return fmt.Errorf("glx: %w", err)
		}
	}
	c.reg.mu.Lock()
	c.drawable = d
	c.reg.mu.Unlock()

	w, h := d.Size()
	if err := c.nctx.AttachSurface(d.SurfaceID(), w, h); err != nil {
		// The binding stays in place even though the native side never
		// attached; see the method comment.
		return fmt.Errorf("glx: attach surface %d: %w", uint32(d.SurfaceID()), err)
	}
	if err := c.reg.sys.SetCurrent(c.nctx); err != nil {
		return fmt.Errorf("glx: set current: %w", err)
	}
	c.setOwner(goid.ID())

	Logger().Debug("context made current",
		"drawable", uint32(id), "surface", uint32(d.SurfaceID()))
	return nil
}

func (c *Context) setOwner(id uint64) {
	c.reg.mu.Lock()
	c.owner = id
	c.reg.mu.Unlock()
}

// Destroy tears the context down: it clears the subsystem's current
// context, unlinks the context from the registry, detaches and frees
// the native resources, releases the bound drawable, and finally runs
// a garbage-collection pass over the drawable registry.
//
// The registry unlink happens before any drawable interaction, so a
// concurrent surface notification can never observe a context whose
// teardown has begun. Failures on the native paths are environment
// faults.
func (c *Context) Destroy(disp *Display) error {
	if c == nil {
		return nil
	}

	c.reg.mu.Lock()
	if c.destroyed {
		c.reg.mu.Unlock()
		return ErrContextDestroyed
	}
	c.reg.mu.Unlock()

	// Whatever was current is now unusable; clear before unlinking so
	// a fault here leaves the context intact in the registry.
	if err := c.reg.sys.SetCurrent(nil); err != nil {
		return fault("clear current context", err)
	}

	c.reg.mu.Lock()
	if c.destroyed {
		c.reg.mu.Unlock()
		return ErrContextDestroyed
	}
	c.destroyed = true
	old := c.drawable
	c.drawable = nil
	c.reg.removeLocked(c.handle)
	c.reg.mu.Unlock()
	if err := c.nctx.ClearDrawable(); err != nil {
		return fault("clear drawable", err)
	}

	if old != nil {
		if last := disp.draws.Release(old); last {
			if err := disp.surfaces.DestroySurface(c.screen, old.ID()); err != nil {
				Logger().Warn("surface teardown failed during context destruction",
					"drawable", uint32(old.ID()), "err", err)
			}
			disp.draws.MarkSurfaceDestroyed(old)
		}
	}

	if err := c.pf.Destroy(); err != nil {
		return fault("destroy pixel format", err)
	}
	if err := c.nctx.Destroy(); err != nil {
		return fault("destroy native context", err)
	}

	if n := disp.draws.GarbageCollect(disp.surfaces, c.screen); n > 0 {
		Logger().Debug("drawable records reclaimed", "count", n)
	}
	return nil
}
