package wgpu

import (
	"fmt"
	"os"
	"strings"

	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/backend"
	"github.com/gogpu/gfx/config"

	// Register every platform HAL backend.
	_ "github.com/gogpu/wgpu/hal/allbackends"
)

// BuiltinGradient names GradientBackdrop in [wgpu] backdrop.
const BuiltinGradient = "gradient"

func init() {
	backend.Register(backend.WGPU, func(cfg config.Config) (gfx.Device, error) {
		opts, err := OptionsFromConfig(cfg)
		if err != nil {
			return nil, err
		}
		return New(opts)
	})
}

// OptionsFromConfig maps the shared and [wgpu] settings of cfg.
// The api "noop" selects the no-op HAL backend regardless of what else is
// registered. A backdrop other than "gradient" is read as a WGSL file.
func OptionsFromConfig(cfg config.Config) (Options, error) {
	opts := DefaultOptions()

	variant, err := config.ParseAPI(cfg.WGPU.API)
	if err != nil {
		return opts, err
	}
	opts.Variant = variant
	if strings.EqualFold(cfg.WGPU.API, "noop") {
		opts.API = noop.API{}
	}

	if opts.PresentMode, err = config.ParsePresentMode(cfg.WGPU.PresentMode, cfg.VSync); err != nil {
		return opts, err
	}
	if opts.Format, err = config.ParseFormat(cfg.WGPU.Format); err != nil {
		return opts, err
	}

	switch cfg.WGPU.Backdrop {
	case "":
	case BuiltinGradient:
		opts.Backdrop = GradientBackdrop
	default:
		src, err := os.ReadFile(cfg.WGPU.Backdrop)
		if err != nil {
			return opts, fmt.Errorf("wgpu: backdrop: %w", err)
		}
		opts.Backdrop = string(src)
	}

	opts.ClearColor = cfg.ClearRGBA()
	opts.MaxCanvases = cfg.MaxCanvases
	return opts, nil
}
