package orbita

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"runtime"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

// TextureResult is one item of a batch load. A failed item carries its
// error here instead of aborting the batch: one bad image never poisons
// its siblings.
type TextureResult struct {
	URL     string
	Texture *ebiten.Image
	Err     error
}

// LoadTextures decodes the given image files into textures. Decoding and
// downscaling run on a bounded worker pool; texture upload happens on
// the calling goroutine afterwards, keeping all ebiten image creation on
// the game-loop side.
//
// maxDim, when > 0, caps the longest side of each decoded image;
// anything larger is downscaled bilinearly before upload.
func LoadTextures(fsys fs.FS, paths []string, maxDim int) []TextureResult {
	results := make([]TextureResult, len(paths))
	decoded := make([]image.Image, len(paths))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		results[i].URL = path
		g.Go(func() error {
			img, err := decodeImage(fsys, path, maxDim)
			if err != nil {
				results[i].Err = err
				return nil // per-item error; siblings keep going
			}
			decoded[i] = img
			return nil
		})
	}
	_ = g.Wait()

	for i, img := range decoded {
		if img == nil {
			continue
		}
		results[i].Texture = ebiten.NewImageFromImage(img)
	}
	return results
}

// decodeImage reads and decodes one image, downscaling if needed.
func decodeImage(fsys fs.FS, path string, maxDim int) (image.Image, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("orbita: open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("orbita: decode %s: %w", path, err)
	}

	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("orbita: %s decoded to a zero-size image", path)
	}
	if maxDim <= 0 || (b.Dx() <= maxDim && b.Dy() <= maxDim) {
		return img, nil
	}

	w, h := b.Dx(), b.Dy()
	if w >= h {
		h = h * maxDim / w
		w = maxDim
	} else {
		w = w * maxDim / h
		h = maxDim
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst, nil
}

// SplitResults separates a batch into aligned texture and URL slices for
// ProjectImagesSpherically. Failed items keep their slot as a nil
// texture so indices stay aligned with the input order.
func SplitResults(results []TextureResult) ([]*ebiten.Image, []string) {
	textures := make([]*ebiten.Image, len(results))
	urls := make([]string, len(results))
	for i, res := range results {
		textures[i] = res.Texture
		urls[i] = res.URL
	}
	return textures, urls
}
