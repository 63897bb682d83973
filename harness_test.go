package glx

import (
	"errors"
	"sync"
	"testing"

	"github.com/jezek/xgb/xproto"

	"github.com/viking-saver/AppleSGLX/drawable"
	"github.com/viking-saver/AppleSGLX/native"
)

// fakeSubsystem is an in-memory native.Subsystem with injectable
// failures.
type fakeSubsystem struct {
	mu                sync.Mutex
	current           native.Context
	failCreateContext bool
	failSetCurrent    bool
}

func (s *fakeSubsystem) Name() string { return "fake" }
func (s *fakeSubsystem) Init() error  { return nil }
func (s *fakeSubsystem) Close()       {}

func (s *fakeSubsystem) CreatePixelFormat(desc native.PixelFormatDescriptor) (native.PixelFormat, error) {
	return &fakePixelFormat{db: desc.DoubleBuffered}, nil
}

func (s *fakeSubsystem) CreateContext(pf native.PixelFormat, share native.Context) (native.Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failCreateContext {
		return nil, errors.New("context creation refused")
	}
	return &fakeContext{}, nil
}

func (s *fakeSubsystem) SetCurrent(ctx native.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSetCurrent {
		return errors.New("set current refused")
	}
	s.current = ctx
	return nil
}

func (s *fakeSubsystem) currentContext() native.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

type fakePixelFormat struct {
	mu        sync.Mutex
	db        bool
	destroyed int
}

func (f *fakePixelFormat) DoubleBuffered() bool { return f.db }

func (f *fakePixelFormat) Destroy() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destroyed++
	if f.destroyed > 1 {
		return errors.New("pixel format destroyed twice")
	}
	return nil
}

type fakeContext struct {
	mu         sync.Mutex
	attached   bool
	sid        native.SurfaceID
	width      int
	height     int
	cleared    int
	destroyed  int
	failAttach bool
}

func (f *fakeContext) AttachSurface(sid native.SurfaceID, width, height int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAttach {
		return errors.New("attach refused")
	}
	f.attached = true
	f.sid = sid
	f.width = width
	f.height = height
	return nil
}

func (f *fakeContext) ClearDrawable() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attached = false
	f.cleared++
	return nil
}

func (f *fakeContext) Destroy() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destroyed++
	if f.destroyed > 1 {
		return errors.New("context destroyed twice")
	}
	return nil
}

func (f *fakeContext) isAttached() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.attached
}

func (f *fakeContext) clearCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cleared
}

// memDisplay negotiates surfaces in memory and counts teardowns.
type memDisplay struct {
	mu        sync.Mutex
	nextSID   native.SurfaceID
	nextUID   drawable.UID
	uids      map[xproto.Drawable]drawable.UID
	destroyed map[xproto.Drawable]int
}

func newMemDisplay() *memDisplay {
	return &memDisplay{
		nextSID:   100,
		nextUID:   1000,
		uids:      make(map[xproto.Drawable]drawable.UID),
		destroyed: make(map[xproto.Drawable]int),
	}
}

func (m *memDisplay) CreateSurface(id xproto.Drawable) (drawable.SurfaceInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextSID++
	m.nextUID++
	m.uids[id] = m.nextUID
	return drawable.SurfaceInfo{
		SurfaceID: m.nextSID,
		UID:       m.nextUID,
		Width:     800,
		Height:    600,
	}, nil
}

func (m *memDisplay) DestroySurface(screen int, id xproto.Drawable) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.destroyed[id]++
	return nil
}

func (m *memDisplay) uid(id xproto.Drawable) drawable.UID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.uids[id]
}

func (m *memDisplay) destroyCount(id xproto.Drawable) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.destroyed[id]
}

// newHarness wires a fake subsystem, registry and display for a test.
func newHarness(t *testing.T) (*fakeSubsystem, *Registry, *memDisplay, *Display) {
	t.Helper()
	sys := &fakeSubsystem{}
	reg := NewRegistry(sys)
	md := newMemDisplay()
	disp := NewDisplay(md, drawable.NewRegistry())
	return sys, reg, md, disp
}
