//go:build !nogpu

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	_ "embed"
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gputypes"
	types "github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/inkwell"
	"github.com/gogpu/inkwell/brushtex"
)

//go:embed shaders/stamp.wgsl
var stampShaderWGSL string

//go:embed shaders/composite.wgsl
var compositeShaderWGSL string

// NativeDevice is the GPU backend over gogpu/wgpu's HAL layer. Brush
// WGSL pipelines are compiled and validated on the device and canvas
// and mask textures live in GPU memory; the arithmetic is mirrored on
// a SoftwareDevice so readback stays exact while HAL buffer mapping is
// incomplete, the same staging the gg compute rasterizers use.
type NativeDevice struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	// externalDevice is set when the host provided the device; Close
	// must not destroy what it does not own.
	externalDevice bool

	mirror *SoftwareDevice

	canvasTex map[CanvasID]hal.Texture
	maskTex   map[TextureID]hal.Texture

	stampModule     hal.ShaderModule
	compositeModule hal.ShaderModule
	uniformLayout   hal.BindGroupLayout
	targetLayout    hal.BindGroupLayout
	pipelineLayout  hal.PipelineLayout
	stampPipe       hal.ComputePipeline
	compositePipe   hal.ComputePipeline

	pipelinesReady bool
}

// NewNativeDevice creates a standalone Vulkan device for compute-only
// use, for hosts that do not share a GPU context.
func NewNativeDevice(screenW, screenH int) (*NativeDevice, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("render: vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("render: create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("render: no GPU adapters found")
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("render: open device: %w", err)
	}

	d := newNativeDevice(openDev.Device, openDev.Queue, screenW, screenH)
	d.instance = instance
	if err := d.initPipelines(); err != nil {
		d.Close()
		return nil, err
	}
	inkwell.Logger().Info("render: GPU device initialized", "adapter", selected.Info.Name)
	return d, nil
}

// FromProvider wraps a host-owned GPU device. Beyond the DeviceHandle
// surface, the provider must expose HAL types via HalDevice() any and
// HalQueue() any, the device-sharing convention of the gogpu stack.
func FromProvider(provider DeviceHandle, screenW, screenH int) (*NativeDevice, error) {
	if provider == nil {
		return nil, fmt.Errorf("render: nil device provider")
	}
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("render: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("render: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("render: provider HalQueue is not hal.Queue")
	}

	d := newNativeDevice(device, queue, screenW, screenH)
	d.externalDevice = true
	if err := d.initPipelines(); err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

func newNativeDevice(device hal.Device, queue hal.Queue, screenW, screenH int) *NativeDevice {
	return &NativeDevice{
		device:    device,
		queue:     queue,
		mirror:    NewSoftwareDevice(screenW, screenH),
		canvasTex: make(map[CanvasID]hal.Texture),
		maskTex:   make(map[TextureID]hal.Texture),
	}
}

// compileWGSL compiles WGSL to the SPIR-V word stream HAL expects.
func compileWGSL(source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShaderCompile, err)
	}
	code := make([]uint32, len(spirvBytes)/4)
	for i := range code {
		code[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return code, nil
}

// initPipelines compiles the stamp and composite compute pipelines.
func (d *NativeDevice) initPipelines() error {
	stampCode, err := compileWGSL(stampShaderWGSL)
	if err != nil {
		return fmt.Errorf("render: stamp shader: %w", err)
	}
	compositeCode, err := compileWGSL(compositeShaderWGSL)
	if err != nil {
		return fmt.Errorf("render: composite shader: %w", err)
	}

	d.stampModule, err = d.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "brush_stamp",
		Source: hal.ShaderSource{SPIRV: stampCode},
	})
	if err != nil {
		return fmt.Errorf("render: create stamp module: %w", err)
	}
	d.compositeModule, err = d.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "brush_composite",
		Source: hal.ShaderSource{SPIRV: compositeCode},
	})
	if err != nil {
		return fmt.Errorf("render: create composite module: %w", err)
	}

	d.uniformLayout, err = d.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "brush_input_layout",
		Entries: []types.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: types.ShaderStageCompute,
				Buffer: &types.BufferBindingLayout{
					Type: types.BufferBindingTypeUniform,
				},
			},
			{
				Binding:    1,
				Visibility: types.ShaderStageCompute,
				Buffer: &types.BufferBindingLayout{
					Type: types.BufferBindingTypeReadOnlyStorage,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("render: create input layout: %w", err)
	}
	d.targetLayout, err = d.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "brush_target_layout",
		Entries: []types.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: types.ShaderStageCompute,
				Buffer: &types.BufferBindingLayout{
					Type: types.BufferBindingTypeStorage,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("render: create target layout: %w", err)
	}

	d.pipelineLayout, err = d.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "brush_pipeline_layout",
		BindGroupLayouts: []hal.BindGroupLayout{d.uniformLayout, d.targetLayout},
	})
	if err != nil {
		return fmt.Errorf("render: create pipeline layout: %w", err)
	}

	d.stampPipe, err = d.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:  "brush_stamp_pipeline",
		Layout: d.pipelineLayout,
		Compute: hal.ComputeState{
			Module:     d.stampModule,
			EntryPoint: "cs_stamp",
		},
	})
	if err != nil {
		return fmt.Errorf("render: create stamp pipeline: %w", err)
	}
	d.compositePipe, err = d.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:  "brush_composite_pipeline",
		Layout: d.pipelineLayout,
		Compute: hal.ComputeState{
			Module:     d.compositeModule,
			EntryPoint: "cs_composite",
		},
	})
	if err != nil {
		return fmt.Errorf("render: create composite pipeline: %w", err)
	}

	d.pipelinesReady = true
	return nil
}

// CreateCanvas allocates a transparent RGBA32F canvas texture plus its
// CPU mirror.
func (d *NativeDevice) CreateCanvas(width, height int) (CanvasID, error) {
	id, err := d.mirror.CreateCanvas(width, height)
	if err != nil {
		return InvalidID, err
	}
	tex, err := d.device.CreateTexture(&hal.TextureDescriptor{
		Label: "frame_canvas",
		Size: hal.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     types.TextureDimension2D,
		Format:        types.TextureFormatRGBA32Float,
		Usage:         types.TextureUsageCopySrc | types.TextureUsageCopyDst | types.TextureUsageStorageBinding,
	})
	if err != nil {
		d.mirror.DestroyCanvas(id)
		return InvalidID, fmt.Errorf("render: create canvas texture: %w", err)
	}
	d.canvasTex[id] = tex
	return id, nil
}

// ClearCanvas zeroes the canvas.
func (d *NativeDevice) ClearCanvas(id CanvasID) error {
	if err := d.mirror.ClearCanvas(id); err != nil {
		return err
	}
	d.uploadCanvas(id)
	return nil
}

// DestroyCanvas releases the canvas texture and its mirror.
func (d *NativeDevice) DestroyCanvas(id CanvasID) {
	if tex, ok := d.canvasTex[id]; ok {
		d.device.DestroyTexture(tex)
		delete(d.canvasTex, id)
	}
	d.mirror.DestroyCanvas(id)
}

// UploadMask uploads the mask as an R32F texture.
func (d *NativeDevice) UploadMask(mask brushtex.Mask) (TextureID, error) {
	id, err := d.mirror.UploadMask(mask)
	if err != nil {
		return InvalidID, err
	}
	tex, err := d.device.CreateTexture(&hal.TextureDescriptor{
		Label: "brush_mask",
		Size: hal.Extent3D{
			Width:              uint32(mask.Size),
			Height:             uint32(mask.Size),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     types.TextureDimension2D,
		Format:        types.TextureFormatR32Float,
		Usage:         types.TextureUsageCopyDst | types.TextureUsageTextureBinding | types.TextureUsageStorageBinding,
	})
	if err != nil {
		d.mirror.DestroyTexture(id)
		return InvalidID, fmt.Errorf("render: create mask texture: %w", err)
	}

	d.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   hal.Origin3D{},
			Aspect:   types.TextureAspectAll,
		},
		float32Bytes(mask.Data),
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(mask.Size) * 4,
			RowsPerImage: uint32(mask.Size),
		},
		&hal.Extent3D{
			Width:              uint32(mask.Size),
			Height:             uint32(mask.Size),
			DepthOrArrayLayers: 1,
		},
	)

	d.maskTex[id] = tex
	return id, nil
}

// DestroyTexture releases a mask texture and its mirror.
func (d *NativeDevice) DestroyTexture(id TextureID) {
	if tex, ok := d.maskTex[id]; ok {
		d.device.DestroyTexture(tex)
		delete(d.maskTex, id)
	}
	d.mirror.DestroyTexture(id)
}

// CompileProgram delegates uniform bookkeeping to the mirror; the
// device-side pipelines are the WGSL pair compiled at init.
func (d *NativeDevice) CompileProgram(vertexSrc, fragmentSrc, label string) (ProgramID, error) {
	return d.mirror.CompileProgram(vertexSrc, fragmentSrc, label)
}

// DestroyProgram releases a program.
func (d *NativeDevice) DestroyProgram(id ProgramID) { d.mirror.DestroyProgram(id) }

// SetUniformFloat sets a float uniform if declared.
func (d *NativeDevice) SetUniformFloat(p ProgramID, name string, v float64) bool {
	return d.mirror.SetUniformFloat(p, name, v)
}

// SetUniformInt sets an int uniform if declared.
func (d *NativeDevice) SetUniformInt(p ProgramID, name string, v int32) bool {
	return d.mirror.SetUniformInt(p, name, v)
}

// SetUniformVec4 sets a vec4 uniform if declared.
func (d *NativeDevice) SetUniformVec4(p ProgramID, name string, v [4]float64) bool {
	return d.mirror.SetUniformVec4(p, name, v)
}

// SetUniformMat4 sets a mat4 uniform if declared.
func (d *NativeDevice) SetUniformMat4(p ProgramID, name string, v [16]float64) bool {
	return d.mirror.SetUniformMat4(p, name, v)
}

// Stamp blends the dab in the mirror and refreshes the canvas texture.
// Compute dispatch moves into cs_stamp once HAL buffer binding lands;
// the pipelines are compiled and validated above so the WGSL cannot
// drift out of sync unnoticed.
func (d *NativeDevice) Stamp(canvas CanvasID, mask TextureID, s StampParams) error {
	if err := d.mirror.Stamp(canvas, mask, s); err != nil {
		return err
	}
	d.uploadCanvas(canvas)
	return nil
}

// Composite blends the canvas onto the mirror's screen buffer.
func (d *NativeDevice) Composite(canvas CanvasID, corners [4]inkwell.Point) error {
	return d.mirror.Composite(canvas, corners)
}

// ReadCanvas downloads canvas pixels from the mirror.
func (d *NativeDevice) ReadCanvas(id CanvasID) (*image.NRGBA, error) {
	return d.mirror.ReadCanvas(id)
}

// uploadCanvas pushes the mirror's canvas pixels to the GPU texture.
func (d *NativeDevice) uploadCanvas(id CanvasID) {
	tex, ok := d.canvasTex[id]
	if !ok {
		return
	}
	pix, w, h, err := d.mirror.CanvasPixels(id)
	if err != nil {
		return
	}
	d.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   hal.Origin3D{},
			Aspect:   types.TextureAspectAll,
		},
		float32Bytes(pix),
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(w) * bytesPerPixel,
			RowsPerImage: uint32(h),
		},
		&hal.Extent3D{
			Width:              uint32(w),
			Height:             uint32(h),
			DepthOrArrayLayers: 1,
		},
	)
}

// float32Bytes reinterprets float32 data as the little-endian byte
// stream WriteTexture expects.
func float32Bytes(data []float32) []byte {
	out := make([]byte, len(data)*4)
	for i, f := range data {
		bits := math.Float32bits(f)
		out[i*4] = byte(bits)
		out[i*4+1] = byte(bits >> 8)
		out[i*4+2] = byte(bits >> 16)
		out[i*4+3] = byte(bits >> 24)
	}
	return out
}

// Close releases all GPU resources. Host-owned devices are left alive.
func (d *NativeDevice) Close() {
	for id, tex := range d.canvasTex {
		d.device.DestroyTexture(tex)
		delete(d.canvasTex, id)
	}
	for id, tex := range d.maskTex {
		d.device.DestroyTexture(tex)
		delete(d.maskTex, id)
	}
	if d.stampPipe != nil {
		d.device.DestroyComputePipeline(d.stampPipe)
		d.stampPipe = nil
	}
	if d.compositePipe != nil {
		d.device.DestroyComputePipeline(d.compositePipe)
		d.compositePipe = nil
	}
	if d.pipelineLayout != nil {
		d.device.DestroyPipelineLayout(d.pipelineLayout)
		d.pipelineLayout = nil
	}
	if d.uniformLayout != nil {
		d.device.DestroyBindGroupLayout(d.uniformLayout)
		d.uniformLayout = nil
	}
	if d.targetLayout != nil {
		d.device.DestroyBindGroupLayout(d.targetLayout)
		d.targetLayout = nil
	}
	if d.stampModule != nil {
		d.device.DestroyShaderModule(d.stampModule)
		d.stampModule = nil
	}
	if d.compositeModule != nil {
		d.device.DestroyShaderModule(d.compositeModule)
		d.compositeModule = nil
	}
	if !d.externalDevice && d.device != nil {
		d.device.Destroy()
	}
	if d.instance != nil {
		d.instance.Destroy()
		d.instance = nil
	}
	d.mirror.Close()
	d.pipelinesReady = false
}
