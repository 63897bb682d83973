package drawable

import (
	"fmt"
	"sync/atomic"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"github.com/viking-saver/AppleSGLX/internal/logging"
	"github.com/viking-saver/AppleSGLX/native"
)

// XDisplay negotiates surfaces against a live X server connection.
//
// Drawable dimensions come from the server via GetGeometry. Surface
// and uid allocation is process-local: the compositor side of the
// historical direct-rendering extension is not part of this bridge,
// so the identifiers only need to be unique within the process.
type XDisplay struct {
	conn    *xgb.Conn
	nextSID atomic.Uint32
	nextUID atomic.Uint32
}

// NewXDisplay wraps an established X connection.
func NewXDisplay(conn *xgb.Conn) *XDisplay {
	d := &XDisplay{conn: conn}
	// Start at 1; 0 reads as "no surface" in diagnostics.
	d.nextSID.Store(1)
	d.nextUID.Store(1)
	return d
}

// CreateSurface queries the drawable's geometry and allocates a
// surface id and notification uid for it.
func (d *XDisplay) CreateSurface(id xproto.Drawable) (SurfaceInfo, error) {
	geom, err := xproto.GetGeometry(d.conn, id).Reply()
	if err != nil {
		return SurfaceInfo{}, fmt.Errorf("get geometry for 0x%x: %w", uint32(id), err)
	}

	info := SurfaceInfo{
		SurfaceID: native.SurfaceID(d.nextSID.Add(1) - 1),
		UID:       UID(d.nextUID.Add(1) - 1),
		Width:     int(geom.Width),
		Height:    int(geom.Height),
	}
	logging.Logger().Debug("surface created",
		"drawable", uint32(id), "surface", uint32(info.SurfaceID), "uid", uint32(info.UID),
		"width", info.Width, "height", info.Height)
	return info, nil
}

// DestroySurface tears down the native surface for the drawable.
// With no compositor protocol in play there is nothing to send to the
// server; the teardown is local bookkeeping.
func (d *XDisplay) DestroySurface(screen int, id xproto.Drawable) error {
	logging.Logger().Debug("surface destroyed", "screen", screen, "drawable", uint32(id))
	return nil
}

var _ Display = (*XDisplay)(nil)
