package glx

import (
	"github.com/jezek/xgb/xproto"
)

// IsCurrentDrawable reports whether the context is bound to the given
// drawable. The answer is only meaningful while the context has a
// drawable bound; for an unbound context it is false.
func (c *Context) IsCurrentDrawable(id xproto.Drawable) bool {
	c.reg.mu.Lock()
	d := c.drawable
	c.reg.mu.Unlock()
	return d != nil && d.ID() == id
}
