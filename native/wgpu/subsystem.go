//go:build !nogpu

package wgpu

import (
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"

	glx "github.com/viking-saver/AppleSGLX"
	"github.com/viking-saver/AppleSGLX/native"
)

func init() {
	native.Register(native.BackendWGPU, func() native.Subsystem { return New() })
}

// Subsystem is the gogpu/wgpu HAL implementation of native.Subsystem.
type Subsystem struct {
	mu          sync.Mutex
	instance    hal.Instance
	adapter     hal.Adapter
	adapterName string

	// Shared device adopted from a host provider, when set. Contexts
	// then never open their own device.
	hostDevice hal.Device
	hostQueue  hal.Queue
	hostFormat gputypes.TextureFormat

	current *Context
	ready   bool
}

// New returns an uninitialized wgpu subsystem.
func New() *Subsystem {
	return &Subsystem{}
}

// Name returns the backend identifier.
func (s *Subsystem) Name() string { return native.BackendWGPU }

// Init creates a HAL instance and selects an adapter, preferring
// discrete and integrated GPUs over software rasterizers.
func (s *Subsystem) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready {
		return nil
	}
	if s.hostDevice != nil {
		// Adopted device; no instance of our own to create.
		s.ready = true
		return nil
	}

	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("wgpu: vulkan backend not compiled in: %w", native.ErrNotAvailable)
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("wgpu: create instance: %w", err)
	}
	if err := s.selectAdapter(instance); err != nil {
		instance.Destroy()
		return err
	}
	s.instance = instance
	s.ready = true
	glx.Logger().Info("native backend initialized", "backend", native.BackendWGPU, "adapter", s.adapterName)
	return nil
}

// selectAdapter picks an adapter from instance. Caller holds s.mu.
func (s *Subsystem) selectAdapter(instance hal.Instance) error {
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		return fmt.Errorf("wgpu: no GPU adapters found: %w", native.ErrNotAvailable)
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	s.adapter = selected.Adapter
	s.adapterName = selected.Info.Name
	return nil
}

// initWith initializes the subsystem from an already-created HAL
// instance. Used by tests to run against the noop API.
func (s *Subsystem) initWith(instance hal.Instance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.selectAdapter(instance); err != nil {
		return err
	}
	s.instance = instance
	s.ready = true
	return nil
}

// Close releases the subsystem. Contexts still holding devices keep
// them until their own Destroy.
func (s *Subsystem) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.instance != nil {
		s.instance.Destroy()
		s.instance = nil
	}
	s.adapter = nil
	s.hostDevice = nil
	s.hostQueue = nil
	s.current = nil
	s.ready = false
}

// CreatePixelFormat resolves desc into a wgpu pixel format handle.
// An undefined color format falls back to the host surface format
// when a device provider is attached, else BGRA8.
func (s *Subsystem) CreatePixelFormat(desc native.PixelFormatDescriptor) (native.PixelFormat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return nil, native.ErrNotInitialized
	}
	if desc.Format == gputypes.TextureFormatUndefined {
		if s.hostFormat != gputypes.TextureFormatUndefined {
			desc.Format = s.hostFormat
		} else {
			desc.Format = gputypes.TextureFormatBGRA8Unorm
		}
	}
	if desc.SampleCount == 0 {
		desc.SampleCount = 1
	}
	return &PixelFormat{desc: desc}, nil
}

// CreateContext opens a device for the new context, or re-uses the
// share context's (or the adopted host) device.
func (s *Subsystem) CreateContext(pf native.PixelFormat, share native.Context) (native.Context, error) {
	wpf, ok := pf.(*PixelFormat)
	if !ok || wpf == nil {
		return nil, fmt.Errorf("wgpu: pixel format %T is not a wgpu handle", pf)
	}
	wpf.mu.Lock()
	pfDestroyed := wpf.destroyed
	desc := wpf.desc
	wpf.mu.Unlock()
	if pfDestroyed {
		return nil, native.ErrDestroyed
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return nil, native.ErrNotInitialized
	}

	ctx := &Context{
		sys:     s,
		format:  desc.Format,
		samples: desc.SampleCount,
	}
	switch {
	case share != nil:
		sc, ok := share.(*Context)
		if !ok {
			return nil, fmt.Errorf("wgpu: shared context %T is not a wgpu handle", share)
		}
		sc.mu.Lock()
		ctx.device, ctx.queue = sc.device, sc.queue
		sc.mu.Unlock()
		if ctx.device == nil {
			return nil, native.ErrDestroyed
		}
	case s.hostDevice != nil:
		ctx.device, ctx.queue = s.hostDevice, s.hostQueue
	default:
		openDev, err := s.adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
		if err != nil {
			return nil, fmt.Errorf("wgpu: open device: %w", err)
		}
		ctx.device = openDev.Device
		ctx.queue = openDev.Queue
		ctx.ownsDevice = true
	}
	return ctx, nil
}

// SetCurrent records ctx as the subsystem's current context. The HAL
// has no thread-local current pointer, so this is process bookkeeping
// matching the contract's observable behavior.
func (s *Subsystem) SetCurrent(ctx native.Context) error {
	var wc *Context
	if ctx != nil {
		var ok bool
		wc, ok = ctx.(*Context)
		if !ok {
			return fmt.Errorf("wgpu: context %T is not a wgpu handle", ctx)
		}
		wc.mu.Lock()
		destroyed := wc.destroyed
		wc.mu.Unlock()
		if destroyed {
			return native.ErrDestroyed
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return native.ErrNotInitialized
	}
	s.current = wc
	return nil
}

// Current returns the context recorded by the last SetCurrent call.
func (s *Subsystem) Current() *Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Context is a wgpu native context handle: a device/queue pair plus
// the render-attachment texture standing in for the attached surface.
type Context struct {
	mu         sync.Mutex
	sys        *Subsystem
	device     hal.Device
	queue      hal.Queue
	ownsDevice bool

	format  gputypes.TextureFormat
	samples uint32

	sid        native.SurfaceID
	target     hal.Texture
	targetView hal.TextureView
	attached   bool
	destroyed  bool
}

// AttachSurface allocates the render target for sid, replacing any
// previous attachment.
func (c *Context) AttachSurface(sid native.SurfaceID, width, height int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return native.ErrDestroyed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("wgpu: attach surface %d: invalid size %dx%d", sid, width, height)
	}
	c.dropTargetLocked()

	target, err := c.device.CreateTexture(&hal.TextureDescriptor{
		Label: fmt.Sprintf("glx_surface_%d", sid),
		Size: hal.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   c.samples,
		Dimension:     gputypes.TextureDimension2D,
		Format:        c.format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("wgpu: attach surface %d: create render target: %w", sid, err)
	}
	view, err := c.device.CreateTextureView(target, &hal.TextureViewDescriptor{
		Label: fmt.Sprintf("glx_surface_%d_view", sid),
	})
	if err != nil {
		c.device.DestroyTexture(target)
		return fmt.Errorf("wgpu: attach surface %d: create target view: %w", sid, err)
	}
	c.sid = sid
	c.target = target
	c.targetView = view
	c.attached = true
	return nil
}

// ClearDrawable releases the render target.
func (c *Context) ClearDrawable() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return native.ErrDestroyed
	}
	c.dropTargetLocked()
	return nil
}

// dropTargetLocked frees the current render target. Caller holds c.mu.
func (c *Context) dropTargetLocked() {
	if c.targetView != nil {
		c.device.DestroyTextureView(c.targetView)
		c.targetView = nil
	}
	if c.target != nil {
		c.device.DestroyTexture(c.target)
		c.target = nil
	}
	c.attached = false
	c.sid = 0
}

// Destroy releases the render target and, when this context opened
// its own device, the device as well. Destroying twice is an error.
func (c *Context) Destroy() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return native.ErrDestroyed
	}
	c.dropTargetLocked()
	if c.ownsDevice && c.device != nil {
		c.device.Destroy()
	}
	c.device = nil
	c.queue = nil
	c.destroyed = true
	return nil
}

// Attached reports the current surface binding. Diagnostic accessor.
func (c *Context) Attached() (native.SurfaceID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sid, c.attached
}

// PixelFormat is the wgpu pixel format handle.
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
