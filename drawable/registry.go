package drawable

import (
	"fmt"
	"sync"

	"github.com/jezek/xgb/xproto"

	"github.com/viking-saver/AppleSGLX/internal/logging"
	"github.com/viking-saver/AppleSGLX/native"
)

// Display is the surface-negotiation side of the windowing protocol,
// consumed when drawable records are created and reclaimed.
type Display interface {
	// CreateSurface negotiates a native surface for the drawable and
	// returns its surface id, notification uid and pixel dimensions.
	CreateSurface(id xproto.Drawable) (SurfaceInfo, error)

	// DestroySurface tears down the native surface for the drawable.
	// Called only after the last reference to its record is gone.
	DestroySurface(screen int, id xproto.Drawable) error
}

// SurfaceInfo describes a freshly negotiated native surface.
type SurfaceInfo struct {
	SurfaceID native.SurfaceID
	UID       UID
	Width     int
	Height    int
}

// Registry is the process-wide store of drawable records, keyed by
// the windowing-protocol drawable identifier.
type Registry struct {
	mu      sync.Mutex
	records map[xproto.Drawable]*Drawable
}

// NewRegistry returns an empty drawable registry.
func NewRegistry() *Registry {
	return &Registry{records: make(map[xproto.Drawable]*Drawable)}
}

// Find returns the record for id with its reference count
// incremented, or nil when no record exists. The caller owns the
// acquired reference and must pair it with Release.
func (r *Registry) Find(id xproto.Drawable) *Drawable {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.records[id]
	if !ok {
		return nil
	}
	d.refs++
	return d
}

// Create negotiates a native surface for id via disp and stores a new
// record with a reference count of one (the caller's reference).
// Creating an id that already has a record is a caller error.
func (r *Registry) Create(disp Display, id xproto.Drawable) (*Drawable, error) {
	info, err := disp.CreateSurface(id)
	if err != nil {
		return nil, fmt.Errorf("drawable: create surface for 0x%x: %w", uint32(id), err)
	}

	d := &Drawable{
		id:     id,
		sid:    info.SurfaceID,
		uid:    info.UID,
		width:  info.Width,
		height: info.Height,
		refs:   1,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[id]; ok {
		return nil, fmt.Errorf("drawable: record for 0x%x already exists", uint32(id))
	}
	r.records[id] = d
	return d, nil
}

// Release drops one reference to d and reports whether it was the
// last one. The record itself stays in the registry until the next
// garbage-collection pass.
func (r *Registry) Release(d *Drawable) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d.refs <= 0 {
		// Releasing an unreferenced record indicates corrupted
		// bookkeeping; keep the count pinned rather than going negative.
		return false
	}
	d.refs--
	return d.refs == 0
}

// MarkSurfaceDestroyed records that the native surface for d has
// already been torn down, so the garbage collector will not issue a
// second teardown.
func (r *Registry) MarkSurfaceDestroyed(d *Drawable) {
	r.mu.Lock()
	d.surfaceDestroyed = true
	r.mu.Unlock()
}

// GarbageCollect reclaims every record whose reference count is zero,
// tearing down its native surface first unless that already happened.
// It returns the number of records reclaimed.
//
// This pass is the sole reclamation point for orphaned records; it
// runs after every context destruction.
func (r *Registry) GarbageCollect(disp Display, screen int) int {
	type victim struct {
		id          xproto.Drawable
		needSurface bool
	}

	r.mu.Lock()
	var victims []victim
	for id, d := range r.records {
		if d.refs == 0 {
			victims = append(victims, victim{id: id, needSurface: !d.surfaceDestroyed})
			d.surfaceDestroyed = true
			delete(r.records, id)
		}
	}
	r.mu.Unlock()

	// Surface teardown happens outside the lock: the display call can
	// fan back into notification handlers.
	for _, v := range victims {
		if v.needSurface {
			if err := disp.DestroySurface(screen, v.id); err != nil {
				logging.Logger().Warn("surface teardown failed during garbage collection",
					"drawable", uint32(v.id), "err", err)
			}
		}
	}
	return len(victims)
}

// Refs returns d's current reference count. Diagnostic accessor.
func (r *Registry) Refs(d *Drawable) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return d.refs
}

// Len returns the number of records, including zero-reference ones
// awaiting garbage collection.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}
