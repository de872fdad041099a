package software

import (
	"image/color"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/backend"
	"github.com/gogpu/gfx/config"
)

func init() {
	backend.Register(backend.Software, func(cfg config.Config) (gfx.Device, error) {
		return New(OptionsFromConfig(cfg))
	})
}

// OptionsFromConfig maps the shared and [software] settings of cfg.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		MaxCanvases: cfg.MaxCanvases,
		ClearColor:  toNRGBA(cfg.ClearColor),
		StampTitle:  cfg.Software.StampTitle,
	}
}

func toNRGBA(c [4]float64) color.NRGBA {
	ch := func(v float64) uint8 {
		return uint8(min(max(v, 0), 1)*255 + 0.5)
	}
	return color.NRGBA{R: ch(c[0]), G: ch(c[1]), B: ch(c[2]), A: ch(c[3])}
}
