// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"testing"
)

func TestShaderCacheCompileOnce(t *testing.T) {
	d := newTestDevice()
	defer d.Close()
	sc := NewShaderCache(d, nil)

	a, err := sc.Compile(brushVertSrc, brushFragSrc, "brush")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	b, err := sc.Compile(brushVertSrc, brushFragSrc, "brush")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if a != b {
		t.Error("second Compile with the same name must return the cached program")
	}
	if sc.Len() != 1 {
		t.Errorf("Len() = %d; want 1", sc.Len())
	}
}

func TestShaderCacheFailureKeepsCache(t *testing.T) {
	d := newTestDevice()
	defer d.Close()
	sc := NewShaderCache(d, nil)

	good, err := sc.Compile(brushVertSrc, brushFragSrc, "brush")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	if _, err := sc.Compile("", "", "broken"); !errors.Is(err, ErrShaderCompile) {
		t.Fatalf("Compile(broken) = %v; want ErrShaderCompile", err)
	}

	// The failure registered nothing and did not disturb the cached program.
	if sc.Get("broken") != nil {
		t.Error("failed compile left a partial entry in the cache")
	}
	if sc.Get("brush") != good {
		t.Error("failed compile corrupted a previously cached program")
	}
	if !good.SetVec4("u_color", [4]float64{1, 1, 1, 1}) {
		t.Error("cached program no longer accepts its uniforms")
	}
}

func TestProgramSettersNoOp(t *testing.T) {
	d := newTestDevice()
	defer d.Close()
	sc := NewShaderCache(d, nil)

	p, err := sc.Compile(compositeVertSrc, compositeFragSrc, "composite")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !p.SetFloat("u_opacity", 0.5) {
		t.Error("declared uniform reported false")
	}
	// u_hardness exists only in the brush shader variant.
	if p.SetFloat("u_hardness", 0.5) {
		t.Error("optimized-out uniform reported true")
	}
}
