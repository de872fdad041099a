package opengl

import (
	"errors"

	"github.com/gogpu/gfx/config"
)

// Options configures an OpenGL device.
type Options struct {
	// VSync sets a swap interval of one on every canvas.
	VSync bool

	// ClearColor is the RGBA color every canvas is cleared to at BeginDraw.
	ClearColor [4]float32

	// MaxCanvases limits the number of live canvases. Zero means no limit.
	MaxCanvases int

	// Hidden creates every window invisible. Tests and offscreen tools use
	// it.
	Hidden bool
}

// DefaultOptions returns vsync on and an opaque black clear.
func DefaultOptions() Options {
	return Options{VSync: true, ClearColor: [4]float32{0, 0, 0, 1}}
}

// ErrWindowClosed is reported by Process after the user closed the
// canvas's window.
var ErrWindowClosed = errors.New("opengl: window closed by user")

// OptionsFromConfig maps the shared and [opengl] settings of cfg.
func OptionsFromConfig(cfg config.Config) Options {
	var bg [4]float32
	for i, v := range cfg.ClearColor {
		bg[i] = float32(v)
	}
	return Options{
		VSync:       cfg.VSync,
		ClearColor:  bg,
		MaxCanvases: cfg.MaxCanvases,
		Hidden:      cfg.OpenGL.Hidden,
	}
}
