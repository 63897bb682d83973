package native

import (
	"sync"
)

// Backend names.
const (
	// BackendWGPU is the Pure Go GPU subsystem built on gogpu/wgpu.
	BackendWGPU = "wgpu"

	// BackendSoftware is the CPU bookkeeping fallback.
	BackendSoftware = "software"
)

// Factory creates a new subsystem instance.
type Factory func() Subsystem

// registry holds registered subsystems.
var (
	registryMu sync.RWMutex
	backends   = make(map[string]Factory)
	// Priority order for backend selection (first available wins).
	// wgpu > software (software is the always-present fallback).
	backendPriority = []string{BackendWGPU, BackendSoftware}
)

// Register registers a subsystem factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it will be replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns a list of registered backend names.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Get returns a subsystem instance by name.
// Returns nil if the backend is not registered.
func Get(name string) Subsystem {
	registryMu.RLock()
	defer registryMu.RUnlock()

	factory, ok := backends[name]
	if !ok {
		return nil
	}
	return factory()
}

// Default returns the best available subsystem based on priority.
// Returns nil if no backends are registered.
func Default() Subsystem {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range backendPriority {
		if factory, ok := backends[name]; ok {
			if s := factory(); s != nil {
				return s
			}
		}
	}

	// Fallback: return first available
	for _, factory := range backends {
		if s := factory(); s != nil {
			return s
		}
	}

	return nil
}

// MustDefault returns the default subsystem or panics.
func MustDefault() Subsystem {
	s := Default()
	if s == nil {
		panic("native: no backend available")
	}
	return s
}

// InitDefault selects the default subsystem and initializes it.
func InitDefault() (Subsystem, error) {
	s := Default()
	if s == nil {
		return nil, ErrNotAvailable
	}

	if err := s.Init(); err != nil {
		return nil, err
	}

	return s, nil
}
