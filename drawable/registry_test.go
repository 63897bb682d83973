package drawable

import (
	"fmt"
	"sync"
	"testing"

	"github.com/jezek/xgb/xproto"

	"github.com/viking-saver/AppleSGLX/native"
)

// fakeDisplay implements Display in memory and counts teardowns.
type fakeDisplay struct {
	mu        sync.Mutex
	nextSID   native.SurfaceID
	nextUID   UID
	destroyed map[xproto.Drawable]int
	failNext  bool
}

func newFakeDisplay() *fakeDisplay {
	return &fakeDisplay{nextSID: 100, nextUID: 1000, destroyed: make(map[xproto.Drawable]int)}
}

func (f *fakeDisplay) CreateSurface(id xproto.Drawable) (SurfaceInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext {
		f.failNext = false
		return SurfaceInfo{}, fmt.Errorf("no surface for you")
	}
	f.nextSID++
	f.nextUID++
	return SurfaceInfo{SurfaceID: f.nextSID, UID: f.nextUID, Width: 640, Height: 480}, nil
}

func (f *fakeDisplay) DestroySurface(screen int, id xproto.Drawable) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destroyed[id]++
	return nil
}

func (f *fakeDisplay) destroyCount(id xproto.Drawable) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.destroyed[id]
}

func TestCreateAndFind(t *testing.T) {
	r := NewRegistry()
	disp := newFakeDisplay()

	d, err := r.Create(disp, 42)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if d.ID() != 42 {
		t.Errorf("ID = %d, want 42", d.ID())
	}
	if got := r.Refs(d); got != 1 {
		t.Errorf("refs after Create = %d, want 1", got)
	}
	if w, h := d.Size(); w != 640 || h != 480 {
		t.Errorf("Size = %dx%d, want 640x480", w, h)
	}

	found := r.Find(42)
	if found != d {
		t.Fatal("Find returned a different record")
	}
	if got := r.Refs(d); got != 2 {
		t.Errorf("refs after Find = %d, want 2", got)
	}

	if r.Find(99) != nil {
		t.Error("Find for unknown id returned a record")
	}
}

func TestCreateDuplicate(t *testing.T) {
	r := NewRegistry()
	disp := newFakeDisplay()

	if _, err := r.Create(disp, 42); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := r.Create(disp, 42); err == nil {
		t.Fatal("duplicate Create succeeded")
	}
}

func TestCreateSurfaceFailure(t *testing.T) {
	r := NewRegistry()
	disp := newFakeDisplay()
	disp.failNext = true

	if _, err := r.Create(disp, 42); err == nil {
		t.Fatal("Create succeeded despite surface negotiation failure")
	}
	if r.Len() != 0 {
		t.Errorf("registry holds %d records after failed Create, want 0", r.Len())
	}
}

func TestReleaseLastReference(t *testing.T) {
	r := NewRegistry()
	disp := newFakeDisplay()

	d, _ := r.Create(disp, 42)
	r.Find(42)

	if last := r.Release(d); last {
		t.Error("Release reported last reference with one remaining")
	}
	if last := r.Release(d); !last {
		t.Error("Release did not report last reference")
	}
	// Pinned at zero: further releases stay false.
	if last := r.Release(d); last {
		t.Error("Release on zero-reference record reported last again")
	}
}

func TestGarbageCollect(t *testing.T) {
	r := NewRegistry()
	disp := newFakeDisplay()

	d1, _ := r.Create(disp, 1)
	d2, _ := r.Create(disp, 2)
	r.Release(d1)

	if n := r.GarbageCollect(disp, 0); n != 1 {
		t.Errorf("GarbageCollect reclaimed %d records, want 1", n)
	}
	if got := disp.destroyCount(1); got != 1 {
		t.Errorf("drawable 1 surface destroyed %d times, want 1", got)
	}
	if got := disp.destroyCount(2); got != 0 {
		t.Errorf("drawable 2 surface destroyed %d times, want 0", got)
	}
	if r.Len() != 1 {
		t.Errorf("registry holds %d records, want 1", r.Len())
	}
	_ = d2
}

func TestGarbageCollectSkipsDestroyedSurfaces(t *testing.T) {
	r := NewRegistry()
	disp := newFakeDisplay()

	d, _ := r.Create(disp, 7)
	r.Release(d)
	// The lifecycle already tore the surface down.
	_ = disp.DestroySurface(0, 7)
	r.MarkSurfaceDestroyed(d)

	if n := r.GarbageCollect(disp, 0); n != 1 {
		t.Errorf("GarbageCollect reclaimed %d records, want 1", n)
	}
	if got := disp.destroyCount(7); got != 1 {
		t.Errorf("drawable 7 surface destroyed %d times total, want 1", got)
	}
}

func TestConcurrentFindRelease(t *testing.T) {
	r := NewRegistry()
	disp := newFakeDisplay()

	d, _ := r.Create(disp, 42)

	const workers = 16
	const rounds = 200
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				got := r.Find(42)
				if got == nil {
					t.Error("Find returned nil for a live record")
					return
				}
				r.Release(got)
			}
		}()
	}
	wg.Wait()

	if got := r.Refs(d); got != 1 {
		t.Errorf("refs after balanced find/release storm = %d, want 1", got)
	}
}
