package orbita

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 37), G: uint8(y * 53), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestLoadTexturesKeepsFailedItemsInPlace(t *testing.T) {
	fsys := fstest.MapFS{
		"a.png": {Data: pngBytes(t, 8, 8)},
		"c.png": {Data: pngBytes(t, 8, 8)},
	}
	results := LoadTextures(fsys, []string{"a.png", "missing.png", "c.png"}, 0)
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	if results[0].Err != nil || results[0].Texture == nil {
		t.Errorf("a.png should load: %v", results[0].Err)
	}
	if results[1].Err == nil || results[1].Texture != nil {
		t.Error("missing.png should fail with a nil texture")
	}
	if results[1].URL != "missing.png" {
		t.Errorf("failed item URL = %q, slots must stay aligned with input order", results[1].URL)
	}
	if results[2].Err != nil || results[2].Texture == nil {
		t.Errorf("c.png should load despite the sibling failure: %v", results[2].Err)
	}
}

func TestLoadTexturesRejectsGarbageData(t *testing.T) {
	fsys := fstest.MapFS{"bad.png": {Data: []byte("not an image")}}
	results := LoadTextures(fsys, []string{"bad.png"}, 0)
	if results[0].Err == nil {
		t.Error("undecodable data should produce a per-item error")
	}
}

func TestLoadTexturesDownscalesToMaxDim(t *testing.T) {
	fsys := fstest.MapFS{"wide.png": {Data: pngBytes(t, 8, 4)}}
	results := LoadTextures(fsys, []string{"wide.png"}, 4)
	if results[0].Err != nil {
		t.Fatalf("load: %v", results[0].Err)
	}
	b := results[0].Texture.Bounds()
	if b.Dx() != 4 || b.Dy() != 2 {
		t.Errorf("downscaled bounds = %dx%d, want 4x2 (aspect preserved)", b.Dx(), b.Dy())
	}
}

func TestSplitResultsStaysAligned(t *testing.T) {
	fsys := fstest.MapFS{"a.png": {Data: pngBytes(t, 4, 4)}}
	results := LoadTextures(fsys, []string{"a.png", "gone.png"}, 0)
	textures, urls := SplitResults(results)
	if len(textures) != 2 || len(urls) != 2 {
		t.Fatalf("split lengths %d/%d, want 2/2", len(textures), len(urls))
	}
	if textures[0] == nil || urls[0] != "a.png" {
		t.Error("loaded item lost in split")
	}
	if textures[1] != nil || urls[1] != "gone.png" {
		t.Error("failed item must keep a nil slot with its url")
	}
}
