package texture

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/toxichemicals/GO/pooltable/model"
)

// Decode reads an image file and returns it as opaque RGBA. When maxSize is
// positive and the image is larger on either edge, it is scaled down to fit.
func Decode(path string, maxSize int) (*image.RGBA, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(model.ErrIO, "failed to open texture file %s: %v", path, err)
	}
	defer file.Close()

	img, format, err := decodeImage(path, file)
	if err != nil {
		return nil, errors.Wrapf(model.ErrResource, "failed to decode texture image %s: %v", path, err)
	}

	b := img.Bounds()
	if b.Empty() {
		return nil, errors.Wrapf(model.ErrResource, "texture image %s (%s) is empty", path, format)
	}

	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if w, h := fitSize(b.Dx(), b.Dy(), maxSize); w != b.Dx() || h != b.Dy() {
		dst = image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	} else {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	}

	// GL_RGB semantics: alpha is ignored
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 255
	}
	return dst, nil
}

// decodeImage picks the TGA decoder by extension. TGA has no magic number,
// so it cannot be registered with image.Decode without claiming every file.
func decodeImage(path string, f *os.File) (image.Image, string, error) {
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		img, err := tga.Decode(f)
		return img, "tga", err
	}
	return image.Decode(f)
}

// fitSize scales w×h down so that neither edge exceeds max, keeping the
// aspect ratio. max <= 0 disables scaling.
func fitSize(w, h, max int) (int, int) {
	if max <= 0 || (w <= max && h <= max) {
		return w, h
	}
	if w >= h {
		nh := h * max / w
		if nh < 1 {
			nh = 1
		}
		return max, nh
	}
	nw := w * max / h
	if nw < 1 {
		nw = 1
	}
	return nw, max
}
