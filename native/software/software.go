// Package software provides the CPU fallback native subsystem.
//
// It keeps only the bookkeeping state the glx core observes through
// the native contract: pixel formats, context handles, surface
// attachment, and the current-context pointer. No pixels are
// produced. It is always available, which makes it the backend of
// last resort and the workhorse for tests.
//
// Import for side effect to register it:
//
//	import _ "github.com/viking-saver/AppleSGLX/native/software"
package software

import (
	"fmt"
	"sync"

	"github.com/viking-saver/AppleSGLX/native"
)

func init() {
	native.Register(native.BackendSoftware, func() native.Subsystem { return New() })
}

// Subsystem is the CPU bookkeeping implementation of native.Subsystem.
type Subsystem struct {
	mu      sync.Mutex
	ready   bool
	current *Context
}

// New returns an uninitialized software subsystem.
func New() *Subsystem {
	return &Subsystem{}
}

// Name returns the backend identifier.
func (s *Subsystem) Name() string { return native.BackendSoftware }

// Init marks the subsystem ready. It cannot fail.
func (s *Subsystem) Init() error {
	s.mu.Lock()
	s.ready = true
	s.mu.Unlock()
	return nil
}

// Close releases the subsystem. Outstanding handles become invalid.
func (s *Subsystem) Close() {
	s.mu.Lock()
	s.ready = false
	s.current = nil
	s.mu.Unlock()
}

// CreatePixelFormat resolves desc into a bookkeeping pixel format.
func (s *Subsystem) CreatePixelFormat(desc native.PixelFormatDescriptor) (native.PixelFormat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return nil, native.ErrNotInitialized
	}
	return &PixelFormat{desc: desc}, nil
}

// CreateContext creates a bookkeeping context. Sharing with another
// software context links their shared-state group; sharing with a
// context from a different backend is an error.
func (s *Subsystem) CreateContext(pf native.PixelFormat, share native.Context) (native.Context, error) {
	spf, ok := pf.(*PixelFormat)
	if !ok || spf == nil {
		return nil, fmt.Errorf("software: pixel format %T is not a software handle", pf)
	}

	var group *shareGroup
	if share != nil {
		sc, ok := share.(*Context)
		if !ok {
			return nil, fmt.Errorf("software: shared context %T is not a software handle", share)
		}
		group = sc.group
	} else {
		group = &shareGroup{}
	}

	spf.mu.Lock()
	pfDestroyed := spf.destroyed
	spf.mu.Unlock()
	if pfDestroyed {
		return nil, native.ErrDestroyed
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return nil, native.ErrNotInitialized
	}
	return &Context{sys: s, group: group}, nil
}

// SetCurrent records ctx as the current context. Nil clears it.
func (s *Subsystem) SetCurrent(ctx native.Context) error {
	var sc *Context
	if ctx != nil {
		var ok bool
		sc, ok = ctx.(*Context)
		if !ok {
			return fmt.Errorf("software: context %T is not a software handle", ctx)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return native.ErrNotInitialized
	}
	if sc != nil {
		sc.mu.Lock()
		destroyed := sc.destroyed
		sc.mu.Unlock()
		if destroyed {
			return native.ErrDestroyed
		}
	}
	s.current = sc
	return nil
}

// Current returns the context recorded by the last SetCurrent call,
// or nil. Diagnostic accessor used by tests.
func (s *Subsystem) Current() *Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// shareGroup ties together contexts created with shared state.
type shareGroup struct{}

// Context is the software bookkeeping context handle.
type Context struct {
	mu        sync.Mutex
	sys       *Subsystem
	group     *shareGroup
	attached  bool
	surface   native.SurfaceID
	width     int
	height    int
	destroyed bool
}

// AttachSurface binds the context to sid, replacing any previous binding.
func (c *Context) AttachSurface(sid native.SurfaceID, width, height int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return native.ErrDestroyed
	}
	c.attached = true
	c.surface = sid
	c.width = width
	c.height = height
	return nil
}

// ClearDrawable drops the surface binding.
func (c *Context) ClearDrawable() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return native.ErrDestroyed
	}
	c.attached = false
	c.surface = 0
	c.width, c.height = 0, 0
	return nil
}

// Destroy invalidates the handle. Destroying twice is an error.
func (c *Context) Destroy() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return native.ErrDestroyed
	}
	c.destroyed = true
	return nil
}

// Attached reports the current surface binding. Diagnostic accessor.
func (c *Context) Attached() (native.SurfaceID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.surface, c.attached
}

// SharesWith reports whether c and other were created in the same
// shared-state group.
func (c *Context) SharesWith(other *Context) bool {
	return other != nil && c.group == other.group
}

// PixelFormat is the software bookkeeping pixel format handle.
type PixelFormat struct {
	mu        sync.Mutex
	desc      native.PixelFormatDescriptor
	destroyed bool
}

// DoubleBuffered reports whether the format carries a back buffer.
func (p *PixelFormat) DoubleBuffered() bool {
	return p.desc.DoubleBuffered
}

// Destroy invalidates the handle. Destroying twice is an error.
func (p *PixelFormat) Destroy() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.destroyed {
		return native.ErrDestroyed
	}
	p.destroyed = true
	return nil
}
