// Package native defines the contract between the glx core and the
// native, OS-level graphics subsystem.
//
// The subsystem is an opaque capability: the core asks it for
// contexts and pixel formats, attaches contexts to compositor
// surfaces, and flips the process-wide current-context pointer. The
// core never looks inside a handle.
//
// Implementations register themselves via side-effect imports:
//
//	import (
//		_ "github.com/viking-saver/AppleSGLX/native/wgpu"     // Pure Go GPU stack
//		_ "github.com/viking-saver/AppleSGLX/native/software" // CPU fallback
//	)
//
// and are selected by priority (wgpu before software) through
// Default, or explicitly by name through Get.
package native
