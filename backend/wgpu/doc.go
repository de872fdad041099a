// Package wgpu provides a GPU gfx backend built on the gogpu/wgpu HAL.
//
// A Device owns one HAL instance, adapter, device and queue. Every canvas
// owns a native window, opened through Options.Windows, and the hal.Surface
// created for it.
//
// # Frames
//
// BeginDraw acquires one surface texture per configured canvas and opens a
// render pass on each that clears to Options.ClearColor and then draws the
// optional backdrop shader. Applications record more commands through
// Canvas.Pass. EndDraw finishes every pass into a single command buffer and
// Present submits it and presents all textures.
//
// BeginDraw reports false without an error when a surface is outdated or
// not ready. Outdated surfaces are reconfigured at once; resized windows are
// reconfigured by Canvas.Process. Canvases whose window has zero area stay
// unconfigured and are left out of frames until they grow again.
//
// Command buffers are recycled once Queue.PollCompleted shows the GPU has
// finished them.
//
// # Backends
//
// Importing this package registers every platform HAL backend
// (Vulkan, Metal, DX12, GLES and the software rasterizer). The no-op HAL
// backend serves tests and CI:
//
//	dev, err := wgpu.New(wgpu.Options{API: noop.API{}})
//
// Real surfaces need a WindowSystem that yields platform handles; the
// default Headless windows suit noop and software only.
//
// # gpucontext
//
// Device implements gpucontext.DeviceProvider and Canvas implements
// gpucontext.WindowProvider, so gogpu libraries can render into a canvas
// with the device's own HAL objects.
package wgpu
