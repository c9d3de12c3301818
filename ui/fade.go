package ui

import (
	_ "embed"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

//go:embed fade.kage
var fadeShaderSrc []byte

// FadeShader darkens a rendered frame by a level in [0, 1].
type FadeShader struct {
	shader *ebiten.Shader
}

func NewFadeShader() (*FadeShader, error) {
	sh, err := ebiten.NewShader(fadeShaderSrc)
	if err != nil {
		return nil, fmt.Errorf("ui: compile fade shader: %w", err)
	}
	return &FadeShader{shader: sh}, nil
}

// Apply draws src onto dst scaled by level. A level of 1 or more is a plain
// copy and skips the shader.
func (f *FadeShader) Apply(dst, src *ebiten.Image, level float64) {
	if f == nil || f.shader == nil || level >= 1 {
		dst.DrawImage(src, nil)
		return
	}
	level = max(level, 0)

	b := src.Bounds()
	opts := &ebiten.DrawRectShaderOptions{}
	opts.Uniforms = map[string]any{
		"FadeLevel": float32(level),
	}
	opts.Images[0] = src
	dst.DrawRectShader(b.Dx(), b.Dy(), f.shader, opts)
}
