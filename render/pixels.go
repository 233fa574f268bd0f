package render

import "image"

// FrameImage wraps bottom-up RGBA pixels read back from the framebuffer as a
// top-down image. pix is consumed.
func FrameImage(pix []byte, width, height int) *image.RGBA {
	stride := width * 4
	row := make([]byte, stride)
	for y := 0; y < height/2; y++ {
		top := pix[y*stride : (y+1)*stride]
		bottom := pix[(height-1-y)*stride : (height-y)*stride]
		copy(row, top)
		copy(top, bottom)
		copy(bottom, row)
	}
	return &image.RGBA{
		Pix:    pix,
		Stride: stride,
		Rect:   image.Rect(0, 0, width, height),
	}
}
