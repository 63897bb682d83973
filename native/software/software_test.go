package software

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/viking-saver/AppleSGLX/native"
)

func newReady(t *testing.T) *Subsystem {
	t.Helper()
	s := New()
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return s
}

func testDesc() native.PixelFormatDescriptor {
	return native.PixelFormatDescriptor{
		Format:         gputypes.TextureFormatBGRA8Unorm,
		SampleCount:    1,
		DepthBits:      16,
		DoubleBuffered: true,
	}
}

func TestRegistered(t *testing.T) {
	if !native.IsRegistered(native.BackendSoftware) {
		t.Fatal("software backend not registered by init()")
	}
}

func TestUseBeforeInit(t *testing.T) {
	s := New()
	if _, err := s.CreatePixelFormat(testDesc()); !errors.Is(err, native.ErrNotInitialized) {
		t.Errorf("CreatePixelFormat before Init: err = %v, want ErrNotInitialized", err)
	}
}

func TestContextLifecycle(t *testing.T) {
	s := newReady(t)
	defer s.Close()

	pf, err := s.CreatePixelFormat(testDesc())
	if err != nil {
		t.Fatalf("CreatePixelFormat: %v", err)
	}
	if !pf.DoubleBuffered() {
		t.Error("DoubleBuffered = false, want true")
	}

	ctx, err := s.CreateContext(pf, nil)
	if err != nil {
		t.Fatalf("CreateContext: %v", err)
	}

	if err := ctx.AttachSurface(7, 640, 480); err != nil {
		t.Fatalf("AttachSurface: %v", err)
	}
	sc := ctx.(*Context)
	if sid, ok := sc.Attached(); !ok || sid != 7 {
		t.Errorf("Attached = (%d, %v), want (7, true)", sid, ok)
	}

	if err := ctx.ClearDrawable(); err != nil {
		t.Fatalf("ClearDrawable: %v", err)
	}
	if _, ok := sc.Attached(); ok {
		t.Error("still attached after ClearDrawable")
	}

	if err := ctx.Destroy(); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if err := ctx.Destroy(); !errors.Is(err, native.ErrDestroyed) {
		t.Errorf("second Destroy: err = %v, want ErrDestroyed", err)
	}
	if err := pf.Destroy(); err != nil {
		t.Fatalf("pixel format Destroy: %v", err)
	}
	if err := pf.Destroy(); !errors.Is(err, native.ErrDestroyed) {
		t.Errorf("second pixel format Destroy: err = %v, want ErrDestroyed", err)
	}
}

func TestSetCurrent(t *testing.T) {
	s := newReady(t)
	defer s.Close()

	pf, _ := s.CreatePixelFormat(testDesc())
	ctx, _ := s.CreateContext(pf, nil)

	if err := s.SetCurrent(ctx); err != nil {
		t.Fatalf("SetCurrent: %v", err)
	}
	if s.Current() != ctx.(*Context) {
		t.Error("Current does not match the context made current")
	}
	if err := s.SetCurrent(nil); err != nil {
		t.Fatalf("SetCurrent(nil): %v", err)
	}
	if s.Current() != nil {
		t.Error("Current non-nil after clearing")
	}
}

func TestSetCurrentDestroyed(t *testing.T) {
	s := newReady(t)
	defer s.Close()

	pf, _ := s.CreatePixelFormat(testDesc())
	ctx, _ := s.CreateContext(pf, nil)
	if err := ctx.Destroy(); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if err := s.SetCurrent(ctx); !errors.Is(err, native.ErrDestroyed) {
		t.Errorf("SetCurrent on destroyed context: err = %v, want ErrDestroyed", err)
	}
}

func TestShareGroups(t *testing.T) {
	s := newReady(t)
	defer s.Close()

	pf, _ := s.CreatePixelFormat(testDesc())
	a, _ := s.CreateContext(pf, nil)
	b, _ := s.CreateContext(pf, a)
	c, _ := s.CreateContext(pf, nil)

	if !a.(*Context).SharesWith(b.(*Context)) {
		t.Error("b created sharing a, but groups differ")
	}
	if a.(*Context).SharesWith(c.(*Context)) {
		t.Error("c created unshared, but shares a's group")
	}
}

func TestCreateContextDestroyedFormat(t *testing.T) {
	s := newReady(t)
	defer s.Close()

	pf, _ := s.CreatePixelFormat(testDesc())
	if err := pf.Destroy(); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if _, err := s.CreateContext(pf, nil); !errors.Is(err, native.ErrDestroyed) {
		t.Errorf("CreateContext with destroyed format: err = %v, want ErrDestroyed", err)
	}
}
