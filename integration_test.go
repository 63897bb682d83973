package glx

import (
	"testing"

	"github.com/viking-saver/AppleSGLX/drawable"
	"github.com/viking-saver/AppleSGLX/native"
	"github.com/viking-saver/AppleSGLX/native/software"
	"github.com/viking-saver/AppleSGLX/visual"
)

// TestLifecycleOnSoftwareBackend drives the full path through a real
// registered backend instead of the in-package fakes.
func TestLifecycleOnSoftwareBackend(t *testing.T) {
	sys := native.Get(native.BackendSoftware)
	if sys == nil {
		t.Fatal("software backend not registered")
	}
	if err := sys.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer sys.Close()

	reg := NewRegistry(sys)
	md := newMemDisplay()
	disp := NewDisplay(md, drawable.NewRegistry())

	c1, err := CreateContext(reg, 0, visual.Mode{ColorBits: 24, DepthBits: 24, DoubleBuffer: true}, nil)
	if err != nil {
		t.Fatalf("CreateContext: %v", err)
	}
	c2, err := CreateContext(reg, 0, visual.Mode{ColorBits: 24}, c1)
	if err != nil {
		t.Fatalf("CreateContext(shared): %v", err)
	}

	n1 := c1.nctx.(*software.Context)
	n2 := c2.nctx.(*software.Context)
	if !n1.SharesWith(n2) {
		t.Error("shared creation did not link the contexts' share group")
	}

	if err := c1.MakeCurrent(disp, 5); err != nil {
		t.Fatalf("MakeCurrent: %v", err)
	}
	if got := sys.(*software.Subsystem).Current(); got != n1 {
		t.Error("software backend current context not set by MakeCurrent")
	}
	sid, attached := n1.Attached()
	if !attached {
		t.Fatal("native context not attached")
	}
	if want := c1.Drawable().SurfaceID(); sid != want {
		t.Errorf("attached surface = %d, want %d", sid, want)
	}

	if found, err := HandleSurfaceDestroyed(reg, md.uid(5)); err != nil || !found {
		t.Fatalf("HandleSurfaceDestroyed = (%v, %v), want (true, nil)", found, err)
	}
	if _, attached := n1.Attached(); attached {
		t.Error("native context still attached after teardown notification")
	}

	if err := c1.Destroy(disp); err != nil {
		t.Fatalf("c1.Destroy: %v", err)
	}
	if err := c2.Destroy(disp); err != nil {
		t.Fatalf("c2.Destroy: %v", err)
	}
	if got := sys.(*software.Subsystem).Current(); got != nil {
		t.Error("current context survives destroy")
	}
	if got := reg.Len(); got != 0 {
		t.Errorf("registry holds %d contexts, want 0", got)
	}
	if got := md.destroyCount(5); got != 1 {
		t.Errorf("surface destroyed %d times, want 1", got)
	}
}
