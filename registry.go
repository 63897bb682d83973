package glx

import (
	"sync"

	"github.com/viking-saver/AppleSGLX/drawable"
	"github.com/viking-saver/AppleSGLX/native"
)

// Handle addresses a context slot in a Registry. The generation tag
// detects stale handles: a slot reused for a new context invalidates
// every handle minted for its previous occupant.
type Handle struct {
	index int32
	gen   uint32
}

// slot is one arena cell. pos is the cell's position in the iteration
// order, -1 while the cell is on the free list.
type slot struct {
	ctx *Context
	gen uint32
	pos int32
}

// Registry owns every live context for one native subsystem. All slot
// and per-context mutable state is guarded by a single mutex; the
// operations here are short and uncontended enough that finer locking
// buys nothing.
type Registry struct {
	sys native.Subsystem

	mu    sync.Mutex
	slots []slot
	free  []int32
	order []int32 // occupied slot indices, oldest first
}

// NewRegistry returns an empty context registry bound to sys. The
// subsystem must already be initialized.
func NewRegistry(sys native.Subsystem) *Registry {
	return &Registry{sys: sys}
}

// Subsystem returns the native subsystem the registry was built over.
func (r *Registry) Subsystem() native.Subsystem { return r.sys }

// insert stores c in a free slot and returns its handle.
func (r *Registry) insert(c *Context) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	var idx int32
	if n := len(r.free); n > 0 {
		idx = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		idx = int32(len(r.slots))
		r.slots = append(r.slots, slot{pos: -1})
	}

	s := &r.slots[idx]
	s.ctx = c
	s.pos = int32(len(r.order))
	r.order = append(r.order, idx)
	return Handle{index: idx, gen: s.gen}
}

// removeLocked unlinks the slot addressed by h. Stale handles are
// ignored. Caller holds r.mu.
func (r *Registry) removeLocked(h Handle) bool {
	if h.index < 0 || int(h.index) >= len(r.slots) {
		return false
	}
	s := &r.slots[h.index]
	if s.gen != h.gen || s.ctx == nil {
		return false
	}

	// Swap-remove from the iteration order, then retag the slot so
	// outstanding handles for it go stale.
	last := r.order[len(r.order)-1]
	r.order[s.pos] = last
	r.slots[last].pos = s.pos
	r.order = r.order[:len(r.order)-1]

	s.ctx = nil
	s.pos = -1
	s.gen++
	r.free = append(r.free, h.index)
	return true
}

// Len returns the number of live contexts.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}

// SurfaceBinding is the result of a uid lookup: the surface the
// notification refers to and the native context it is bound to.
type SurfaceBinding struct {
	SurfaceID native.SurfaceID
	Context   native.Context
}

// SurfaceByUID scans the live contexts for one whose bound drawable
// carries the given notification uid. When several contexts are bound
// to the same drawable, the oldest registered one wins; the choice is
// immaterial to the caller, which only detaches the shared surface.
func (r *Registry) SurfaceByUID(uid drawable.UID) (SurfaceBinding, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, idx := range r.order {
		c := r.slots[idx].ctx
		if d := c.drawable; d != nil && d.UID() == uid {
			return SurfaceBinding{SurfaceID: d.SurfaceID(), Context: c.nctx}, true
		}
	}
	return SurfaceBinding{}, false
}
