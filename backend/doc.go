// Package backend selects and constructs gfx devices by name.
//
// # Backend Registration
//
// Backends are registered via init() functions and selected at runtime.
// Import the backends you want for their side effects:
//
//	import (
//		_ "github.com/gogpu/gfx/backend/software"
//		_ "github.com/gogpu/gfx/backend/wgpu"
//	)
//
// or import backend/all for every bundled backend.
//
// # Backend Selection
//
// Use OpenDefault to get the best available device, or Open to request a
// specific backend by name:
//
//	cfg, err := config.Load("gfx.toml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	dev, err := backend.OpenDefault(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer dev.Close()
//
// # Available Backends
//
//   - "wgpu": GPU surfaces via gogpu/wgpu HAL
//   - "opengl": OpenGL 3.3 core via GLFW (excluded with -tags nogl)
//   - "software": CPU double-buffered images (always available)
package backend
