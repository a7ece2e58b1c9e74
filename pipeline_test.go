package skiff

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPipelinePassOrder(t *testing.T) {
	assets := NewAssets(t.TempDir())
	p, err := NewPipeline(assets)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	want := []string{"background", "sprites", "particles", "paths", "text"}
	got := p.PassNames()
	if len(got) != len(want) {
		t.Fatalf("PassNames = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pass %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPipelineInitCompilesBuiltinShaders(t *testing.T) {
	assets := NewAssets(t.TempDir())
	if _, err := NewPipeline(assets); err != nil {
		t.Fatalf("NewPipeline with built-in shaders: %v", err)
	}
	if _, ok := assets.Shaders.Get(backgroundShaderPath); !ok {
		t.Error("background shader not primed at init")
	}
	if _, ok := assets.Shaders.Get(spriteShaderPath); !ok {
		t.Error("sprite shader not primed at init")
	}
}

func TestPipelineInitFailsOnBrokenShaderFile(t *testing.T) {
	dir := t.TempDir()
	shaderDir := filepath.Join(dir, "shaders")
	if err := os.MkdirAll(shaderDir, 0o755); err != nil {
		t.Fatal(err)
	}
	// An on-disk file overrides the built-in source; garbage must be fatal.
	if err := os.WriteFile(filepath.Join(shaderDir, "sprite.kage"), []byte("not a shader"), 0o644); err != nil {
		t.Fatal(err)
	}

	assets := NewAssets(dir)
	if _, err := NewPipeline(assets); err == nil {
		t.Error("expected init error for a malformed shader file")
	}
}

func TestPipelineBackgroundLayers(t *testing.T) {
	assets := NewAssets(t.TempDir())
	p, err := NewPipeline(assets)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	layers := []BackgroundLayer{
		{Texture: "far.png", ScrollSpeed: Vec2{X: 0.01}, Parallax: 0.2},
		{Texture: "near.png", ScrollSpeed: Vec2{X: 0.05}, Parallax: 0.8},
	}
	p.SetBackgroundLayers(layers)
	if len(p.background.layers) != 2 {
		t.Errorf("background layers = %d, want 2", len(p.background.layers))
	}
}

func TestPipelinePathQueueShared(t *testing.T) {
	assets := NewAssets(t.TempDir())
	p, err := NewPipeline(assets)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	p.Paths().Line(Vec2{0, 0}, Vec2{10, 0}, 1, ColorWhite)
	if p.paths.queue.Len() == 0 {
		t.Error("Paths() must expose the queue the path pass drains")
	}
}
