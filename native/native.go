package native

import "github.com/gogpu/gputypes"

// SurfaceID is the opaque surface identifier assigned by the native
// compositor side of the bridge. It correlates a drawable record with
// the native surface a context renders into.
type SurfaceID uint32

// Subsystem is the native graphics subsystem consumed by the glx core.
//
// All methods are synchronous foreign calls from the core's point of
// view. Implementations must be safe for concurrent use: contexts
// owned by different goroutines are created and destroyed without
// external serialization.
type Subsystem interface {
	// Name returns the backend identifier (e.g., "software", "wgpu").
	Name() string

	// Init initializes the backend.
	// This must be called before any context or pixel format creation.
	Init() error

	// Close releases all backend resources.
	// The backend should not be used after Close is called.
	Close()

	// CreatePixelFormat resolves desc into a pixel format handle.
	// The returned handle is exclusively owned by the caller and must
	// be destroyed exactly once.
	CreatePixelFormat(desc PixelFormatDescriptor) (PixelFormat, error)

	// CreateContext creates a native context for the given pixel
	// format, optionally sharing state with share (nil for none).
	// The returned handle is exclusively owned by the caller and must
	// be destroyed exactly once.
	CreateContext(pf PixelFormat, share Context) (Context, error)

	// SetCurrent makes ctx the subsystem's current context for the
	// calling goroutine's rendering stream. A nil ctx clears the
	// current-context pointer.
	SetCurrent(ctx Context) error
}

// Context is a ready-to-use native graphics context handle.
type Context interface {
	// AttachSurface binds the context to the native surface sid,
	// sized width by height pixels. Any previous attachment is
	// replaced.
	AttachSurface(sid SurfaceID, width, height int) error

	// ClearDrawable detaches the context from whatever surface it is
	// attached to. Detaching an unattached context is a no-op.
	ClearDrawable() error

	// Destroy releases the native context. The handle must not be
	// used afterwards; destroying twice is an error.
	Destroy() error
}

// PixelFormat is a native pixel format handle produced by
// Subsystem.CreatePixelFormat.
type PixelFormat interface {
	// DoubleBuffered reports whether the format was resolved with a
	// back buffer.
	DoubleBuffered() bool

	// Destroy releases the pixel format. Destroying twice is an error.
	Destroy() error
}

// PixelFormatDescriptor is the subsystem-consumable form of a visual
// mode, produced by the visual package's resolver.
type PixelFormatDescriptor struct {
	// Format is the color buffer texture format.
	Format gputypes.TextureFormat

	// SampleCount is the multisample count (1 for no multisampling).
	SampleCount uint32

	// DepthBits is the requested depth buffer size in bits, 0 for none.
	DepthBits int

	// StencilBits is the requested stencil buffer size in bits, 0 for none.
	StencilBits int

	// DoubleBuffered requests a back buffer.
	DoubleBuffered bool
}
