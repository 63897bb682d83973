package glx

import (
	"log/slog"

	"github.com/viking-saver/AppleSGLX/internal/logging"
)

// SetLogger configures the logger for glx and all its sub-packages.
// By default, glx produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by glx:
//   - [slog.LevelDebug]: internal diagnostics (registry membership, drawable binds)
//   - [slog.LevelInfo]: important lifecycle events (native backend selected)
//   - [slog.LevelWarn]: non-fatal issues (make-current failures reported to callers)
//   - [slog.LevelError]: environment faults the caller is expected to terminate on
//
// Example:
//
//	// Enable info-level logging to stderr:
//	glx.SetLogger(slog.Default())
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger used by glx.
// Sub-packages (native/, drawable/) share the same logger
// configuration through an internal indirection, so there is exactly
// one active logger for the whole module.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logging.Logger()
}
