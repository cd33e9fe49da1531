// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "log/slog"

// ShaderCache compiles programs once per name. Compilation failure is
// fatal to that call and surfaces the compiler diagnostics, but a
// failed compile never touches programs already in the cache: the new
// program is registered only after the device accepts it.
type ShaderCache struct {
	device   Device
	programs map[string]*Program
	log      *slog.Logger
}

// Program is a cached shader with typed uniform setters. Setters
// silently no-op when the uniform was optimized out of this variant.
type Program struct {
	ID     ProgramID
	Name   string
	device Device
}

// NewShaderCache creates an empty cache over the device.
func NewShaderCache(device Device, log *slog.Logger) *ShaderCache {
	if log == nil {
		log = slog.Default()
	}
	return &ShaderCache{
		device:   device,
		programs: make(map[string]*Program),
		log:      log,
	}
}

// Compile returns the cached program for name, compiling the source
// pair on first use.
func (sc *ShaderCache) Compile(vertexSrc, fragmentSrc, name string) (*Program, error) {
	if p, ok := sc.programs[name]; ok {
		return p, nil
	}

	id, err := sc.device.CompileProgram(vertexSrc, fragmentSrc, name)
	if err != nil {
		return nil, err
	}
	p := &Program{ID: id, Name: name, device: sc.device}
	sc.programs[name] = p
	sc.log.Debug("compiled shader program", "name", name)
	return p, nil
}

// Get returns a cached program without compiling, or nil.
func (sc *ShaderCache) Get(name string) *Program {
	return sc.programs[name]
}

// Len returns the number of cached programs.
func (sc *ShaderCache) Len() int { return len(sc.programs) }

// Clear destroys every cached program.
func (sc *ShaderCache) Clear() {
	for name, p := range sc.programs {
		sc.device.DestroyProgram(p.ID)
		delete(sc.programs, name)
	}
}

// SetFloat sets a float uniform if the program declares it.
func (p *Program) SetFloat(name string, v float64) bool {
	return p.device.SetUniformFloat(p.ID, name, v)
}

// SetInt sets an int uniform if the program declares it.
func (p *Program) SetInt(name string, v int32) bool {
	return p.device.SetUniformInt(p.ID, name, v)
}

// SetVec4 sets a vec4 uniform if the program declares it.
func (p *Program) SetVec4(name string, v [4]float64) bool {
	return p.device.SetUniformVec4(p.ID, name, v)
}

// SetMat4 sets a mat4 uniform if the program declares it.
func (p *Program) SetMat4(name string, v [16]float64) bool {
	return p.device.SetUniformMat4(p.ID, name, v)
}
