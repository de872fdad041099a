// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// GradientBackdrop is a built-in backdrop shader that fills each canvas with
// a dark vertical gradient.
//
//go:embed shaders/gradient.wgsl
var GradientBackdrop string

// compileWGSL compiles WGSL source to SPIR-V words.
func compileWGSL(source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("wgpu: compile backdrop: %w", err)
	}

	// SPIR-V is little-endian 32-bit words.
	spirv := make([]uint32, len(spirvBytes)/4)
	for i := range spirv {
		spirv[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return spirv, nil
}

// backdrop is the full-screen pipeline drawn after the clear.
// The pipeline is created on first use, when the surface format is known.
type backdrop struct {
	source string
	spirv  []uint32

	device   hal.Device
	format   gputypes.TextureFormat
	shader   hal.ShaderModule
	layout   hal.PipelineLayout
	pipeline hal.RenderPipeline
}

func newBackdrop(source string) (*backdrop, error) {
	spirv, err := compileWGSL(source)
	if err != nil {
		return nil, err
	}
	return &backdrop{source: source, spirv: spirv}, nil
}

// ensure creates the pipeline for format, recreating it if format changed.
func (b *backdrop) ensure(device hal.Device, format gputypes.TextureFormat) error {
	if b.pipeline != nil && b.format == format {
		return nil
	}
	b.destroy()
	b.device = device
	b.format = format

	shader, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "gfx_backdrop_shader",
		Source: hal.ShaderSource{WGSL: b.source, SPIRV: b.spirv},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create backdrop shader: %w", err)
	}
	b.shader = shader

	layout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: "gfx_backdrop_layout",
	})
	if err != nil {
		b.destroy()
		return fmt.Errorf("wgpu: create backdrop layout: %w", err)
	}
	b.layout = layout

	pipeline, err := device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "gfx_backdrop_pipeline",
		Layout: layout,
		Vertex: hal.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.DefaultMultisampleState(),
		Fragment: &hal.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    format,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
	})
	if err != nil {
		b.destroy()
		return fmt.Errorf("wgpu: create backdrop pipeline: %w", err)
	}
	b.pipeline = pipeline
	return nil
}

// draw records the full-screen triangle into pass.
func (b *backdrop) draw(pass hal.RenderPassEncoder) {
	if b.pipeline == nil {
		return
	}
	pass.SetPipeline(b.pipeline)
	pass.Draw(3, 1, 0, 0)
}

func (b *backdrop) destroy() {
	if b.device == nil {
		return
	}
	if b.pipeline != nil {
		b.device.DestroyRenderPipeline(b.pipeline)
		b.pipeline = nil
	}
	if b.layout != nil {
		b.device.DestroyPipelineLayout(b.layout)
		b.layout = nil
	}
	if b.shader != nil {
		b.device.DestroyShaderModule(b.shader)
		b.shader = nil
	}
}
