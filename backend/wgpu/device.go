// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gfx"
)

// Device is a gfx.Device backed by a gogpu/wgpu HAL device.
//
// Each canvas owns a hal.Surface. A frame acquires one texture per drawable
// canvas, records a render pass into each, and submits them together in one
// command buffer.
type Device struct {
	gfx.FrameCycle

	opts     Options
	life     *gfx.Lifetime
	canvases gfx.CanvasSet[*Canvas]

	api      hal.Backend
	instance hal.Instance
	adapter  hal.Adapter
	info     GPUInfo
	device   hal.Device
	queue    hal.Queue

	format      gputypes.TextureFormat
	presentMode gputypes.PresentMode
	alphaMode   gputypes.CompositeAlphaMode
	backdrop    *backdrop

	// Current frame.
	encoder hal.CommandEncoder
	cmdBuf  hal.CommandBuffer
	frame   []*Canvas

	pool     []hal.CommandEncoder
	inflight []submission
	lost     error
}

// submission is a command buffer the GPU may still be executing.
type submission struct {
	index   uint64
	encoder hal.CommandEncoder
	cmdBuf  hal.CommandBuffer
	views   []hal.TextureView
}

var (
	_ gfx.Device                = (*Device)(nil)
	_ gpucontext.DeviceProvider = (*Device)(nil)
)

// New opens a HAL instance, selects an adapter and opens a device.
// Failures wrap gfx.ErrBackendUnavailable.
func New(opts Options) (*Device, error) {
	if opts.MaxCanvases < 0 {
		return nil, fmt.Errorf("wgpu: negative MaxCanvases %d", opts.MaxCanvases)
	}
	if opts.Windows == nil {
		opts.Windows = Headless()
	}
	if opts.PresentMode == gputypes.PresentModeUndefined {
		opts.PresentMode = gputypes.PresentModeFifo
	}

	var bd *backdrop
	if opts.Backdrop != "" {
		var err error
		if bd, err = newBackdrop(opts.Backdrop); err != nil {
			return nil, err
		}
	}

	api, err := selectAPI(opts)
	if err != nil {
		return nil, fmt.Errorf("wgpu: select backend: %w: %w", gfx.ErrBackendUnavailable, err)
	}

	instance, err := api.CreateInstance(&hal.InstanceDescriptor{
		Backends: gputypes.Backends(1) << api.Variant(),
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create %s instance: %w: %w", api.Variant(), gfx.ErrBackendUnavailable, err)
	}

	exposed, ok := selectAdapter(instance.EnumerateAdapters(nil))
	if !ok {
		instance.Destroy()
		return nil, fmt.Errorf("wgpu: %s: no adapters: %w", api.Variant(), gfx.ErrBackendUnavailable)
	}

	limits := exposed.Capabilities.Limits
	if limits == (gputypes.Limits{}) {
		limits = gputypes.DefaultLimits()
	}
	open, err := exposed.Adapter.Open(0, limits)
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("wgpu: open device: %w: %w", gfx.ErrBackendUnavailable, err)
	}

	d := &Device{
		opts:        opts,
		life:        gfx.NewLifetime(),
		api:         api,
		instance:    instance,
		adapter:     exposed.Adapter,
		info:        newGPUInfo(exposed.Info),
		device:      open.Device,
		queue:       open.Queue,
		format:      opts.Format,
		presentMode: opts.PresentMode,
		alphaMode:   gputypes.CompositeAlphaModeOpaque,
		backdrop:    bd,
	}
	gfx.Logger().Info("wgpu: device opened", "gpu", d.info.String(), "driver", d.info.Driver)
	return d, nil
}

// Info describes the selected GPU.
func (d *Device) Info() GPUInfo {
	return d.info
}

// CreateCanvas opens a window through Options.Windows and creates a surface
// for it. The first canvas fixes the surface format when Options.Format is
// undefined.
func (d *Device) CreateCanvas(opts gfx.CanvasOptions) (gfx.Canvas, error) {
	if d.Closed() {
		return nil, gfx.ErrDeviceClosed
	}
	if d.opts.MaxCanvases > 0 && d.canvases.Len() >= d.opts.MaxCanvases {
		return nil, fmt.Errorf("wgpu: %d canvases: %w", d.canvases.Len(), gfx.ErrCanvasLimit)
	}

	opts = opts.Normalize()
	window, err := d.opts.Windows.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("wgpu: open window %q: %w", opts.Title, err)
	}
	display, handle := window.Handles()
	surface, err := d.instance.CreateSurface(display, handle)
	if err != nil {
		window.Close()
		return nil, fmt.Errorf("wgpu: create surface %q: %w", opts.Title, err)
	}

	d.negotiate(surface)

	c := &Canvas{
		CanvasBase: gfx.NewCanvasBase(opts, d.life),
		dev:        d,
		window:     window,
		surface:    surface,
	}
	if err := c.configure(); err != nil {
		surface.Destroy()
		window.Close()
		return nil, err
	}
	if d.backdrop != nil {
		if err := d.backdrop.ensure(d.device, d.format); err != nil {
			c.release()
			return nil, err
		}
	}
	d.canvases.Add(c)
	gfx.Logger().Info("wgpu: canvas created", "title", opts.Title, "size", opts.Size, "format", d.format)
	return c, nil
}

// negotiate resolves format, present mode and alpha mode against the
// capabilities of surface.
func (d *Device) negotiate(surface hal.Surface) {
	caps := d.adapter.SurfaceCapabilities(surface)
	if caps == nil {
		if d.format == gputypes.TextureFormatUndefined {
			d.format = gputypes.TextureFormatBGRA8Unorm
		}
		return
	}
	if d.format == gputypes.TextureFormatUndefined {
		switch {
		case slices.Contains(caps.Formats, gputypes.TextureFormatBGRA8Unorm):
			d.format = gputypes.TextureFormatBGRA8Unorm
		case len(caps.Formats) > 0:
			d.format = caps.Formats[0]
		default:
			d.format = gputypes.TextureFormatBGRA8Unorm
		}
	}
	if len(caps.PresentModes) > 0 && !slices.Contains(caps.PresentModes, d.presentMode) {
		gfx.Logger().Debug("wgpu: present mode unsupported, using Fifo", "requested", d.presentMode)
		d.presentMode = gputypes.PresentModeFifo
	}
	if len(caps.AlphaModes) > 0 && !slices.Contains(caps.AlphaModes, d.alphaMode) {
		d.alphaMode = caps.AlphaModes[0]
	}
}

// BeginDraw acquires a texture from every configured canvas and records a
// clear pass into each. It reports false when a surface is outdated, not
// ready, lost, or the device is lost; every texture acquired so far is
// then returned to its surface.
func (d *Device) BeginDraw() (bool, error) {
	return d.Begin(d.openFrame)
}

func (d *Device) openFrame() (bool, error) {
	if d.lost != nil {
		return false, nil
	}
	d.reclaim(d.queue.PollCompleted())

	var frame []*Canvas
	for _, c := range d.canvases.Snapshot() {
		if !c.configured || c.Check() != nil {
			continue
		}
		ok, err := c.acquire()
		if err != nil {
			d.discard(frame)
			return false, err
		}
		if !ok {
			d.discard(frame)
			return false, nil
		}
		frame = append(frame, c)
	}
	d.frame = frame
	if len(frame) == 0 {
		return true, nil
	}

	encoder, err := d.takeEncoder()
	if err != nil {
		d.discard(frame)
		return false, err
	}
	if err := encoder.BeginEncoding("gfx_frame"); err != nil {
		d.pool = append(d.pool, encoder)
		d.discard(frame)
		return false, fmt.Errorf("wgpu: begin encoding: %w", err)
	}
	d.encoder = encoder

	for _, c := range frame {
		c.pass = encoder.BeginRenderPass(&hal.RenderPassDescriptor{
			Label: "gfx_canvas_pass",
			ColorAttachments: []hal.RenderPassColorAttachment{
				{
					View:       c.view,
					LoadOp:     gputypes.LoadOpClear,
					StoreOp:    gputypes.StoreOpStore,
					ClearValue: d.opts.ClearColor,
				},
			},
		})
		if d.backdrop != nil {
			d.backdrop.draw(c.pass)
		}
	}
	return true, nil
}

// EndDraw ends every render pass and finishes the command buffer.
func (d *Device) EndDraw() error {
	return d.End(func() error {
		if d.encoder == nil {
			return nil
		}
		for _, c := range d.frame {
			if c.pass != nil {
				c.pass.End()
				c.pass = nil
			}
		}
		cmdBuf, err := d.encoder.EndEncoding()
		if err != nil {
			d.abortFrame()
			return fmt.Errorf("wgpu: end encoding: %w", err)
		}
		d.cmdBuf = cmdBuf
		return nil
	})
}

// Present submits the frame and presents every acquired texture. The
// command buffer is kept until the GPU reports the submission complete.
func (d *Device) Present() error {
	return d.FrameCycle.Present(d.presentFrame)
}

func (d *Device) presentFrame() error {
	frame := d.frame
	d.frame = nil
	if d.cmdBuf == nil {
		return nil
	}

	index, err := d.queue.Submit([]hal.CommandBuffer{d.cmdBuf})
	if err != nil {
		d.frame = frame
		d.abortFrame()
		if errors.Is(err, hal.ErrDeviceLost) {
			d.markLost(err)
			return nil
		}
		return fmt.Errorf("wgpu: submit: %w", err)
	}

	sub := submission{index: index, encoder: d.encoder, cmdBuf: d.cmdBuf}
	d.encoder, d.cmdBuf = nil, nil

	var errs []error
	for _, c := range frame {
		sub.views = append(sub.views, c.view)
		if err := c.present(); err != nil {
			errs = append(errs, err)
		}
	}
	d.inflight = append(d.inflight, sub)
	d.retireClosed(frame)
	return errors.Join(errs...)
}

// abortFrame returns acquired textures and drops recorded commands.
func (d *Device) abortFrame() {
	for _, c := range d.frame {
		if c.pass != nil {
			c.pass.End()
			c.pass = nil
		}
	}
	if d.encoder != nil {
		if d.cmdBuf != nil {
			d.encoder.ResetAll([]hal.CommandBuffer{d.cmdBuf})
		} else {
			d.encoder.DiscardEncoding()
		}
		d.pool = append(d.pool, d.encoder)
		d.encoder, d.cmdBuf = nil, nil
	}
	frame := d.frame
	d.discard(frame)
	d.frame = nil
	d.retireClosed(frame)
}

// discard returns the textures acquired by canvases in frame.
func (d *Device) discard(frame []*Canvas) {
	for _, c := range frame {
		c.discard()
	}
}

// retireClosed releases canvases closed while they were part of a frame.
func (d *Device) retireClosed(frame []*Canvas) {
	for _, c := range frame {
		if c.Closed() && c.surface != nil {
			d.waitIdle()
			c.release()
		}
	}
}

func (d *Device) takeEncoder() (hal.CommandEncoder, error) {
	if n := len(d.pool); n > 0 {
		enc := d.pool[n-1]
		d.pool = d.pool[:n-1]
		return enc, nil
	}
	enc, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "gfx_frame_encoder"})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	return enc, nil
}

// reclaim recycles submissions whose index is at most completed.
func (d *Device) reclaim(completed uint64) {
	cutoff := 0
	for i := range d.inflight {
		sub := &d.inflight[i]
		if sub.index > completed {
			break
		}
		cutoff = i + 1
		for _, v := range sub.views {
			d.device.DestroyTextureView(v)
		}
		sub.encoder.ResetAll([]hal.CommandBuffer{sub.cmdBuf})
		d.pool = append(d.pool, sub.encoder)
	}
	if cutoff > 0 {
		d.inflight = d.inflight[cutoff:]
	}
}

func (d *Device) waitIdle() {
	if err := d.device.WaitIdle(); err != nil {
		gfx.Logger().Warn("wgpu: wait idle", "error", err)
	}
	if n := len(d.inflight); n > 0 {
		d.reclaim(d.inflight[n-1].index)
	}
}

// markLost records device loss. Every later BeginDraw reports false and
// every canvas reports the loss from Process.
func (d *Device) markLost(err error) {
	if d.lost != nil {
		return
	}
	d.lost = err
	gfx.Logger().Error("wgpu: device lost", "gpu", d.info.String(), "error", err)
	d.canvases.Each(func(c *Canvas) {
		c.Fail(fmt.Errorf("wgpu: %w", err))
	})
}

// Canvases returns the live canvases in creation order.
func (d *Device) Canvases() []gfx.Canvas {
	return d.canvases.Canvases()
}

// Close waits for the GPU, then releases every canvas and the device.
func (d *Device) Close() error {
	if !d.FrameCycle.Close(d.abortFrame) {
		return nil
	}
	d.life.End()
	d.waitIdle()
	for _, c := range d.canvases.Drain() {
		c.release()
	}
	if d.backdrop != nil {
		d.backdrop.destroy()
	}
	for _, enc := range d.pool {
		enc.Destroy()
	}
	d.pool = nil
	d.device.Destroy()
	d.instance.Destroy()
	gfx.Logger().Info("wgpu: device closed", "frames", d.Frames())
	return nil
}

// Device returns the underlying hal.Device.
func (d *Device) Device() gpucontext.Device { return d.device }

// Queue returns the underlying hal.Queue.
func (d *Device) Queue() gpucontext.Queue { return d.queue }

// Adapter returns the underlying hal.Adapter.
func (d *Device) Adapter() gpucontext.Adapter { return d.adapter }

// SurfaceFormat returns the format surfaces are configured with.
// It is TextureFormatUndefined until the first canvas is created when no
// format was requested.
func (d *Device) SurfaceFormat() gputypes.TextureFormat { return d.format }

// AdapterInfo describes the adapter for gpucontext consumers.
func (d *Device) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: d.info.Name, Type: adapterType(d.info.DeviceType)}
}
