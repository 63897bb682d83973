// Command sglxdemo exercises the GLX bridge against a live X server:
// it brings up a native backend, creates a context, makes it current
// on the root window and tears everything down again.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	glx "github.com/viking-saver/AppleSGLX"
	"github.com/viking-saver/AppleSGLX/drawable"
	"github.com/viking-saver/AppleSGLX/native"
	"github.com/viking-saver/AppleSGLX/visual"

	_ "github.com/viking-saver/AppleSGLX/native/software"
	_ "github.com/viking-saver/AppleSGLX/native/wgpu"
)

func main() {
	var (
		configPath = flag.String("config", "sglxdemo.toml", "configuration file")
		display    = flag.String("display", "", "X display (defaults to $DISPLAY)")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		slog.Error("bad configuration", "err", err)
		os.Exit(2)
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	glx.SetLogger(logger)

	if err := run(cfg, *display); err != nil {
		logger.Error("demo failed", "err", err)
		if glx.IsFault(err) {
			// Environment faults have no recovery path; the library
			// leaves the terminate decision to us.
			os.Exit(1)
		}
		os.Exit(2)
	}
}

func run(cfg config, displayName string) error {
	var sys native.Subsystem
	var err error
	if cfg.Backend != "" {
		sys = native.Get(cfg.Backend)
		if sys == nil {
			return &unknownBackendError{name: cfg.Backend}
		}
		err = sys.Init()
	} else {
		sys, err = native.InitDefault()
	}
	if err != nil {
		return err
	}
	defer sys.Close()
	slog.Info("native backend ready", "backend", sys.Name())

	conn, err := xgb.NewConnDisplay(displayName)
	if err != nil {
		return err
	}
	defer conn.Close()

	root := xproto.Setup(conn).DefaultScreen(conn).Root
	disp := glx.NewDisplay(drawable.NewXDisplay(conn), drawable.NewRegistry())
	reg := glx.NewRegistry(sys)

	mode := visual.Mode{
		ColorBits:    cfg.Mode.ColorBits,
		AlphaBits:    cfg.Mode.AlphaBits,
		DepthBits:    cfg.Mode.DepthBits,
		StencilBits:  cfg.Mode.StencilBits,
		DoubleBuffer: cfg.Mode.DoubleBuffer,
		Samples:      cfg.Mode.Samples,
	}
	ctx, err := glx.CreateContext(reg, cfg.Screen, mode, nil)
	if err != nil {
		return err
	}
	slog.Info("context created", "screen", cfg.Screen, "doubleBuffered", ctx.DoubleBuffered())

	if err := ctx.MakeCurrent(disp, xproto.Drawable(root)); err != nil {
		slog.Warn("make current failed, destroying context", "err", err)
		if derr := ctx.Destroy(disp); derr != nil {
			return derr
		}
		return err
	}
	slog.Info("context current on root window",
		"drawable", uint32(root), "owner", ctx.Owner())

	return ctx.Destroy(disp)
}

type unknownBackendError struct{ name string }

func (e *unknownBackendError) Error() string {
	return "unknown backend: " + e.name
}
