//go:build !nogpu

package wgpu

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// halProvider is implemented by device providers that expose raw HAL
// handles alongside the gpucontext abstraction.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// UseDeviceProvider configures the subsystem to adopt the host
// application's GPU device instead of opening its own. Every context
// created afterwards shares the host device, and pixel formats with
// an undefined color format resolve to the host surface format.
//
// The provider must expose its HAL handles (HalDevice/HalQueue); the
// plain gpucontext device abstraction is not enough to allocate the
// render targets surface attachment needs.
//
// Must be called before Init; the subsystem is ready immediately
// after a successful call.
func (s *Subsystem) UseDeviceProvider(p gpucontext.DeviceProvider) error {
	if p == nil {
		return fmt.Errorf("wgpu: nil device provider")
	}
	hp, ok := p.(halProvider)
	if !ok {
		return fmt.Errorf("wgpu: provider %T does not expose HAL handles", p)
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return fmt.Errorf("wgpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return fmt.Errorf("wgpu: provider HalQueue is not hal.Queue")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.instance != nil {
		return fmt.Errorf("wgpu: subsystem already initialized with its own instance")
	}
	s.hostDevice = device
	s.hostQueue = queue
	if f := p.SurfaceFormat(); f != gputypes.TextureFormatUndefined {
		s.hostFormat = f
	}
	s.ready = true
	return nil
}
