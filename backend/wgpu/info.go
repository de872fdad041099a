// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// GPUInfo contains information about the selected GPU.
type GPUInfo struct {
	// Name is the GPU name (e.g., "NVIDIA GeForce RTX 3080").
	Name string
	// Vendor is the GPU vendor.
	Vendor string
	// DeviceType is the type of GPU (discrete, integrated, etc.).
	DeviceType gputypes.DeviceType
	// Backend is the graphics API in use (Vulkan, Metal, DX12).
	Backend gputypes.Backend
	// Driver is the driver version string.
	Driver string
}

// String returns a human-readable description of the GPU.
func (g GPUInfo) String() string {
	return fmt.Sprintf("%s (%s, %s)", g.Name, g.DeviceType, g.Backend)
}

func newGPUInfo(info gputypes.AdapterInfo) GPUInfo {
	return GPUInfo{
		Name:       info.Name,
		Vendor:     info.Vendor,
		DeviceType: info.DeviceType,
		Backend:    info.Backend,
		Driver:     info.Driver,
	}
}

// adapterType maps the HAL device type to the gpucontext classification.
func adapterType(t gputypes.DeviceType) gpucontext.AdapterType {
	switch t {
	case gputypes.DeviceTypeDiscreteGPU:
		return gpucontext.AdapterTypeDiscrete
	case gputypes.DeviceTypeIntegratedGPU:
		return gpucontext.AdapterTypeIntegrated
	case gputypes.DeviceTypeCPU:
		return gpucontext.AdapterTypeSoftware
	default:
		return gpucontext.AdapterTypeUnknown
	}
}

// adapterRank orders device types: discrete first, CPU last.
func adapterRank(t gputypes.DeviceType) int {
	switch t {
	case gputypes.DeviceTypeDiscreteGPU:
		return 0
	case gputypes.DeviceTypeIntegratedGPU:
		return 1
	case gputypes.DeviceTypeCPU:
		return 3
	default:
		return 2
	}
}

// selectAdapter returns the best-ranked adapter. Ties keep enumeration
// order.
func selectAdapter(adapters []hal.ExposedAdapter) (hal.ExposedAdapter, bool) {
	if len(adapters) == 0 {
		return hal.ExposedAdapter{}, false
	}
	best := 0
	for i := 1; i < len(adapters); i++ {
		if adapterRank(adapters[i].Info.DeviceType) < adapterRank(adapters[best].Info.DeviceType) {
			best = i
		}
	}
	return adapters[best], true
}

// selectAPI resolves the HAL backend for opts.
func selectAPI(opts Options) (hal.Backend, error) {
	if opts.API != nil {
		return opts.API, nil
	}
	if opts.Variant == gputypes.BackendEmpty {
		api, err := hal.SelectBestBackend()
		if err != nil {
			return nil, err
		}
		return api, nil
	}
	if api, ok := hal.GetBackend(opts.Variant); ok {
		return api, nil
	}
	api, err := hal.CreateBackend(opts.Variant)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opts.Variant, err)
	}
	return api, nil
}
