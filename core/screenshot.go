package core

import (
	"os"

	"github.com/HugoSmits86/nativewebp"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/pkg/errors"

	"github.com/toxichemicals/GO/pooltable/model"
	"github.com/toxichemicals/GO/pooltable/render"
)

// Screenshot reads back the current framebuffer and writes it to path as a
// lossless WebP. Call it after drawing and before SwapBuffers.
func (c *Core) Screenshot(path string) error {
	if c.width <= 0 || c.height <= 0 {
		return errors.Wrapf(model.ErrResource, "cannot capture a %dx%d framebuffer", c.width, c.height)
	}
	pix := make([]byte, c.width*c.height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(c.width), int32(c.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	img := render.FrameImage(pix, c.width, c.height)

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(model.ErrIO, "failed to create %s: %v", path, err)
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return errors.Wrapf(model.ErrIO, "failed to encode %s: %v", path, err)
	}
	return nil
}
