// Package all registers every bundled gfx backend.
//
//	import _ "github.com/gogpu/gfx/backend/all"
package all

import (
	_ "github.com/gogpu/gfx/backend/opengl"
	_ "github.com/gogpu/gfx/backend/software"
	_ "github.com/gogpu/gfx/backend/wgpu"
)
