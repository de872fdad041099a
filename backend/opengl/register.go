//go:build !nogl

package opengl

import (
	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/backend"
	"github.com/gogpu/gfx/config"
)

func init() {
	backend.Register(backend.OpenGL, func(cfg config.Config) (gfx.Device, error) {
		return Create(OptionsFromConfig(cfg))
	})
}
