package backend

import (
	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/config"
)

// Names under which the bundled backends register.
const (
	// Software is the CPU backend in backend/software. It is always
	// available.
	Software = "software"

	// WGPU is the GPU backend in backend/wgpu built on the gogpu/wgpu HAL.
	WGPU = "wgpu"

	// OpenGL is the OpenGL 3.3 backend in backend/opengl.
	OpenGL = "opengl"
)

// Factory constructs a device from a configuration. A factory that cannot
// initialize on this system returns an error wrapping
// gfx.ErrBackendUnavailable.
type Factory func(cfg config.Config) (gfx.Device, error)
