package skiff

import (
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
)

// textureLoader decodes PNG files under dir and uploads them as images.
type textureLoader struct {
	dir string
}

func (l textureLoader) Load(path string) (*ebiten.Image, error) {
	f, err := os.Open(filepath.Join(l.dir, path))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return ebiten.NewImageFromImage(img), nil
}

func (l textureLoader) Dispose(img *ebiten.Image) {
	img.Deallocate()
}

// shaderLoader compiles Kage shader sources. A file under dir wins when it
// exists, which is what makes shader hot reload work; otherwise the built-in
// source registered for the path is used.
type shaderLoader struct {
	dir     string
	builtin map[string][]byte
}

func (l shaderLoader) Load(path string) (*ebiten.Shader, error) {
	src, err := os.ReadFile(filepath.Join(l.dir, path))
	if err != nil {
		var ok bool
		src, ok = l.builtin[path]
		if !ok {
			return nil, fmt.Errorf("no shader source for %q", path)
		}
	}
	shader, err := ebiten.NewShader(src)
	if err != nil {
		return nil, fmt.Errorf("compile shader: %w", err)
	}
	return shader, nil
}

func (l shaderLoader) Dispose(s *ebiten.Shader) {
	s.Deallocate()
}

// fontLoader reads glyph atlas metadata (JSON) and its page image from dir.
type fontLoader struct {
	dir string
}

func (l fontLoader) Load(path string) (*BitmapFont, error) {
	data, err := os.ReadFile(filepath.Join(l.dir, path))
	if err != nil {
		return nil, err
	}
	font, err := ParseBitmapFont(data)
	if err != nil {
		return nil, err
	}
	pagePath := filepath.Join(l.dir, filepath.Dir(path), font.PagePath)
	pf, err := os.Open(pagePath)
	if err != nil {
		return nil, fmt.Errorf("font page: %w", err)
	}
	defer pf.Close()
	img, _, err := image.Decode(pf)
	if err != nil {
		return nil, fmt.Errorf("decode font page: %w", err)
	}
	font.page = ebiten.NewImageFromImage(img)
	return font, nil
}

func (l fontLoader) Dispose(f *BitmapFont) {
	if f.page != nil {
		f.page.Deallocate()
	}
}
