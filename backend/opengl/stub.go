//go:build nogl

package opengl

import (
	"fmt"

	"github.com/gogpu/gfx"
)

// Device is not available in nogl builds.
type Device struct{}

// Create always fails in nogl builds. The backend is not registered.
func Create(Options) (*Device, error) {
	return nil, fmt.Errorf("opengl: built with nogl: %w", gfx.ErrBackendUnavailable)
}
