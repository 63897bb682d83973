// Package visual resolves windowing-protocol visual modes into
// pixel-format descriptors the native subsystem can consume.
//
// Resolution is total: unsupported channel layouts fall back to the
// closest supported format rather than failing, and the resolver is
// the single place that decides whether a context is double-buffered.
package visual

import (
	"github.com/gogpu/gputypes"

	"github.com/viking-saver/AppleSGLX/native"
)

// Mode describes a requested visual configuration, in the shape the
// windowing protocol advertises it.
type Mode struct {
	// ColorBits is the total RGB size in bits (e.g. 24 for 8/8/8).
	ColorBits int

	// AlphaBits is the alpha channel size in bits.
	AlphaBits int

	// DepthBits is the requested depth buffer size in bits.
	DepthBits int

	// StencilBits is the requested stencil buffer size in bits.
	StencilBits int

	// DoubleBuffer requests a back buffer.
	DoubleBuffer bool

	// Samples is the multisample count; 0 and 1 both mean none.
	Samples int
}

// Resolve maps mode to a native pixel-format descriptor. It never
// fails: color layouts without an exact match fall back to 8-bit
// BGRA, and sample counts are clamped to a supported power of two.
func Resolve(mode Mode) native.PixelFormatDescriptor {
	return native.PixelFormatDescriptor{
		Format:         colorFormat(mode),
		SampleCount:    sampleCount(mode.Samples),
		DepthBits:      mode.DepthBits,
		StencilBits:    mode.StencilBits,
		DoubleBuffered: mode.DoubleBuffer,
	}
}

// colorFormat picks the texture format for the color buffer. X visuals
// advertise BGR channel order, so BGRA is the default; requests wider
// than 8 bits per channel fall back to RGBA8.
func colorFormat(mode Mode) gputypes.TextureFormat {
	if mode.ColorBits > 24 {
		return gputypes.TextureFormatRGBA8Unorm
	}
	return gputypes.TextureFormatBGRA8Unorm
}

// sampleCount clamps a requested multisample count to 1, 2 or 4.
func sampleCount(samples int) uint32 {
	switch {
	case samples >= 4:
		return 4
	case samples >= 2:
		return 2
	default:
		return 1
	}
}
