//go:build !noreload

package skiff

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewWatcherMissingDir(t *testing.T) {
	assets := NewAssets("does-not-exist")
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "nope"), assets); err == nil {
		t.Error("expected error watching a missing directory")
	}
}

func TestWatcherMarksChangedAssetsStale(t *testing.T) {
	dir := t.TempDir()
	shaderDir := filepath.Join(dir, "shaders")
	if err := os.MkdirAll(shaderDir, 0o755); err != nil {
		t.Fatal(err)
	}
	shaderFile := filepath.Join(shaderDir, "background.kage")
	if err := os.WriteFile(shaderFile, []byte(backgroundShaderSrc), 0o644); err != nil {
		t.Fatal(err)
	}

	assets := NewAssets(dir)
	if _, err := assets.Shaders.GetOrLoad(backgroundShaderPath); err != nil {
		t.Fatalf("prime shader: %v", err)
	}

	w, err := NewWatcher(dir, assets)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	// Rewrite the shader; the watcher should flag it and the next
	// reconcile should swap the handle.
	if err := os.WriteFile(shaderFile, []byte(spriteShaderSrc), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if assets.Shaders.Reconcile() == 1 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("watcher never marked the changed shader stale")
}

func TestWatcherClose(t *testing.T) {
	assets := NewAssets(t.TempDir())
	w, err := NewWatcher(t.TempDir(), assets)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
