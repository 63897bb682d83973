//go:build !nogpu

// Package wgpu provides the Pure Go GPU native subsystem built on
// gogpu/wgpu's HAL.
//
// A native context owns a hal.Device and hal.Queue opened from the
// selected adapter; contexts created with shared state re-use the
// sharing context's device. Attaching a context to a surface
// allocates a render-attachment texture sized to the drawable, which
// stands in for the compositor-owned surface on the native side of
// the bridge.
//
// Import for side effect to register it:
//
//	import _ "github.com/viking-saver/AppleSGLX/native/wgpu"
//
// If no Vulkan-capable adapter is found, Init fails and backend
// selection falls through to the software subsystem.
//
// Host applications that already own a GPU device (for example a
// gogpu app) can hand it to the subsystem through UseDeviceProvider
// instead of letting it open its own.
package wgpu
