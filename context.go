package glx

import (
	"github.com/jezek/xgb/xproto"

	"github.com/viking-saver/AppleSGLX/drawable"
	"github.com/viking-saver/AppleSGLX/native"
)

// None is the drawable value that unbinds a context from its surface
// while keeping it current for the calling goroutine.
const None xproto.Drawable = 0

// Context is one rendering context bridged onto the native subsystem.
//
// The identity fields (nctx, pf, screen, doubleBuffered) are fixed at
// creation. The binding fields (drawable, owner, destroyed) are
// guarded by the registry mutex so the uid scan observes them
// consistently.
type Context struct {
	reg    *Registry
	handle Handle

	nctx   native.Context
	pf     native.PixelFormat
	screen int

	// Kept separately from pf so the answer survives pixel-format
	// teardown during destruction.
	doubleBuffered bool

	// Guarded by reg.mu.
	drawable  *drawable.Drawable
	owner     uint64 // goroutine id, advisory only
	destroyed bool
}

// Screen returns the screen the context was created for.
func (c *Context) Screen() int { return c.screen }

// DoubleBuffered reports whether the context renders into a
// double-buffered pixel format.
func (c *Context) DoubleBuffered() bool { return c.doubleBuffered }

// Drawable returns the currently bound drawable record, or nil when
// the context is unbound.
func (c *Context) Drawable() *drawable.Drawable {
	c.reg.mu.Lock()
	defer c.reg.mu.Unlock()
	return c.drawable
}

// Owner returns the id of the goroutine that last made the context
// current. The field is advisory: nothing stops another goroutine from
// using the context, exactly as the underlying API allows.
func (c *Context) Owner() uint64 {
	c.reg.mu.Lock()
	defer c.reg.mu.Unlock()
	return c.owner
}
