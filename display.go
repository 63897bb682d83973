package glx

import (
	"github.com/viking-saver/AppleSGLX/drawable"
)

// Display bundles the windowing-protocol state the bridge operates
// against: the surface negotiator and the drawable registry.
//
// For a live X server, pass a drawable.XDisplay; tests substitute an
// in-memory drawable.Display.
type Display struct {
	surfaces drawable.Display
	draws    *drawable.Registry
}

// NewDisplay returns a Display over the given surface negotiator and
// drawable registry.
func NewDisplay(surfaces drawable.Display, draws *drawable.Registry) *Display {
	return &Display{surfaces: surfaces, draws: draws}
}

// Drawables returns the drawable registry.
func (d *Display) Drawables() *drawable.Registry { return d.draws }

// Surfaces returns the surface negotiator.
func (d *Display) Surfaces() drawable.Display { return d.surfaces }
