package backend

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/config"
)

// Priority order for automatic selection (first that opens wins).
// WGPU > OpenGL > Software: Software is the fallback.
var backendPriority = []string{WGPU, OpenGL, Software}

var registry = gpucontext.NewRegistry[Factory](gpucontext.WithPriority(backendPriority...))

// Register registers a backend factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it will be replaced.
func Register(name string, factory Factory) {
	registry.Register(name, func() Factory { return factory })
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registry.Unregister(name)
}

// Available returns the registered backend names in sorted order.
func Available() []string {
	names := registry.Available()
	slices.Sort(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	return registry.Has(name)
}

// Open constructs the backend registered under name.
func Open(name string, cfg config.Config) (gfx.Device, error) {
	factory := registry.Get(name)
	if factory == nil {
		return nil, fmt.Errorf("%w: %q (available: %v)", gfx.ErrUnknownBackend, name, Available())
	}
	dev, err := factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("backend: open %s: %w", name, err)
	}
	gfx.Logger().Info("backend: device opened", "backend", name)
	return dev, nil
}

// OpenDefault opens cfg.Backend when set. Otherwise it tries every
// registered backend in priority order and returns the first that
// constructs. Backends not in the priority list are tried last, by name.
func OpenDefault(cfg config.Config) (gfx.Device, error) {
	if cfg.Backend != "" {
		return Open(cfg.Backend, cfg)
	}

	var errs []error
	for _, name := range selectionOrder() {
		dev, err := Open(name, cfg)
		if err == nil {
			return dev, nil
		}
		gfx.Logger().Warn("backend: unavailable, trying next", "backend", name, "error", err)
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil, fmt.Errorf("%w: no backends registered", gfx.ErrBackendUnavailable)
	}
	return nil, errors.Join(append([]error{gfx.ErrBackendUnavailable}, errs...)...)
}

func selectionOrder() []string {
	order := make([]string, 0, registry.Count())
	for _, name := range backendPriority {
		if registry.Has(name) {
			order = append(order, name)
		}
	}
	for _, name := range Available() {
		if !slices.Contains(backendPriority, name) {
			order = append(order, name)
		}
	}
	return order
}
