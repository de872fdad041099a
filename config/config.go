// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package config loads gfx device settings from TOML.
//
// A configuration file selects a backend and the canvases to open:
//
//	backend = "software"
//	vsync = true
//	clear_color = [0.1, 0.1, 0.12, 1.0]
//
//	[[canvas]]
//	title = "Demo"
//	width = 800
//	height = 600
//
//	[wgpu]
//	api = "vulkan"
//	present_mode = "mailbox"
//
// Unknown keys are rejected so typos surface as errors instead of silently
// falling back to defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/gfx"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config holds the settings shared by every backend plus one table per
// backend.
type Config struct {
	// Backend names the registered backend to open. Empty selects the best
	// available one.
	Backend string `toml:"backend"`

	// VSync synchronizes Present with the display refresh.
	VSync bool `toml:"vsync"`

	// ClearColor is the RGBA color, each component in [0, 1], every canvas
	// is cleared to at BeginDraw.
	ClearColor [4]float64 `toml:"clear_color"`

	// MaxCanvases limits the number of live canvases. Zero means no limit.
	MaxCanvases int `toml:"max_canvases"`

	Canvases []CanvasConfig `toml:"canvas"`

	Software SoftwareConfig `toml:"software"`
	WGPU     WGPUConfig     `toml:"wgpu"`
	OpenGL   OpenGLConfig   `toml:"opengl"`
}

// CanvasConfig describes one canvas to create at startup.
type CanvasConfig struct {
	Title  string `toml:"title"`
	X      uint32 `toml:"x"`
	Y      uint32 `toml:"y"`
	Width  uint32 `toml:"width"`
	Height uint32 `toml:"height"`
}

// Options converts c to canvas creation options.
func (c CanvasConfig) Options() gfx.CanvasOptions {
	return gfx.CanvasOptions{
		Title:    c.Title,
		Position: gfx.Point{X: c.X, Y: c.Y},
		Size:     gfx.Extent{Width: c.Width, Height: c.Height},
	}
}

// SoftwareConfig configures the CPU backend.
type SoftwareConfig struct {
	// StampTitle draws each canvas title into its frame.
	StampTitle bool `toml:"stamp_title"`
}

// WGPUConfig configures the GPU backend.
type WGPUConfig struct {
	// API is one of "noop", "vulkan", "metal", "dx12" or "gl".
	// Empty picks the platform default.
	API string `toml:"api"`

	// PresentMode is one of "fifo", "fifo_relaxed", "immediate" or
	// "mailbox". Empty derives it from VSync.
	PresentMode string `toml:"present_mode"`

	// Format is the surface format, "bgra8unorm" or "rgba8unorm".
	// Empty uses the first format the surface supports.
	Format string `toml:"format"`

	// Backdrop is a path to a WGSL file with vs_main and fs_main entry
	// points drawn behind every frame, or "gradient" for the built-in one.
	Backdrop string `toml:"backdrop"`
}

// OpenGLConfig configures the OpenGL backend.
type OpenGLConfig struct {
	// Hidden creates windows without showing them.
	Hidden bool `toml:"hidden"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		VSync:      true,
		ClearColor: [4]float64{0, 0, 0, 1},
	}
}

// Load reads and validates the TOML file at path. Keys missing from the file
// keep their Default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(string(data))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates a TOML document.
func Parse(doc string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(doc, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("%w: unknown keys %s", ErrInvalid, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	gfx.Logger().Debug("config: parsed", "backend", cfg.Backend, "canvases", len(cfg.Canvases))
	return cfg, nil
}

// Save writes cfg to path as TOML.
func Save(path string, cfg Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Validate checks value ranges and enumerated names.
func (c Config) Validate() error {
	if c.MaxCanvases < 0 {
		return fmt.Errorf("%w: max_canvases must not be negative, got %d", ErrInvalid, c.MaxCanvases)
	}
	for i, v := range c.ClearColor {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: clear_color[%d] = %v out of [0, 1]", ErrInvalid, i, v)
		}
	}
	if c.MaxCanvases > 0 && len(c.Canvases) > c.MaxCanvases {
		return fmt.Errorf("%w: %d canvases exceed max_canvases %d", ErrInvalid, len(c.Canvases), c.MaxCanvases)
	}
	if _, err := ParseAPI(c.WGPU.API); err != nil {
		return err
	}
	if _, err := ParsePresentMode(c.WGPU.PresentMode, c.VSync); err != nil {
		return err
	}
	if _, err := ParseFormat(c.WGPU.Format); err != nil {
		return err
	}
	return nil
}

// ClearRGBA returns ClearColor as a GPU color.
func (c Config) ClearRGBA() gputypes.Color {
	return gputypes.Color{R: c.ClearColor[0], G: c.ClearColor[1], B: c.ClearColor[2], A: c.ClearColor[3]}
}

// ParseAPI maps a wgpu api name to a HAL backend variant. Both "" and
// "noop" map to gputypes.BackendEmpty.
func ParseAPI(name string) (gputypes.Backend, error) {
	switch strings.ToLower(name) {
	case "", "noop":
		return gputypes.BackendEmpty, nil
	case "vulkan":
		return gputypes.BackendVulkan, nil
	case "metal":
		return gputypes.BackendMetal, nil
	case "dx12":
		return gputypes.BackendDX12, nil
	case "gl", "gles":
		return gputypes.BackendGL, nil
	default:
		return gputypes.BackendEmpty, fmt.Errorf("%w: unknown wgpu api %q", ErrInvalid, name)
	}
}

// ParsePresentMode maps a present mode name. Empty selects Fifo with vsync
// and Immediate without.
func ParsePresentMode(name string, vsync bool) (gputypes.PresentMode, error) {
	switch strings.ToLower(name) {
	case "":
		if vsync {
			return gputypes.PresentModeFifo, nil
		}
		return gputypes.PresentModeImmediate, nil
	case "fifo":
		return gputypes.PresentModeFifo, nil
	case "fifo_relaxed":
		return gputypes.PresentModeFifoRelaxed, nil
	case "immediate":
		return gputypes.PresentModeImmediate, nil
	case "mailbox":
		return gputypes.PresentModeMailbox, nil
	default:
		return gputypes.PresentModeUndefined, fmt.Errorf("%w: unknown present mode %q", ErrInvalid, name)
	}
}

// ParseFormat maps a surface format name. Empty returns
// TextureFormatUndefined, meaning "first supported".
func ParseFormat(name string) (gputypes.TextureFormat, error) {
	switch strings.ToLower(name) {
	case "":
		return gputypes.TextureFormatUndefined, nil
	case "bgra8unorm":
		return gputypes.TextureFormatBGRA8Unorm, nil
	case "bgra8unorm-srgb":
		return gputypes.TextureFormatBGRA8UnormSrgb, nil
	case "rgba8unorm":
		return gputypes.TextureFormatRGBA8Unorm, nil
	case "rgba8unorm-srgb":
		return gputypes.TextureFormatRGBA8UnormSrgb, nil
	default:
		return gputypes.TextureFormatUndefined, fmt.Errorf("%w: unknown surface format %q", ErrInvalid, name)
	}
}
