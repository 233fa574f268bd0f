package core

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/pkg/errors"

	"github.com/toxichemicals/GO/pooltable/model"
)

// Attribute locations shared with the vertex shader.
const (
	positionAttrib = 0
	normalAttrib   = 1
	texCoordAttrib = 2
)

// UploadVertices copies vertices into a new VBO and records the attribute
// layout on a fresh VAO. The VAO name is the returned handle.
func (c *Core) UploadVertices(vertices []model.Vertex) (model.BufferHandle, error) {
	if len(vertices) == 0 {
		return 0, errors.Wrap(model.ErrResource, "cannot upload an empty vertex list")
	}
	layout := model.VertexLayout()

	var mb meshBuffer
	gl.GenVertexArrays(1, &mb.vao)
	gl.BindVertexArray(mb.vao)

	gl.GenBuffers(1, &mb.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, mb.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*layout.Stride, gl.Ptr(vertices), gl.STATIC_DRAW)

	stride := int32(layout.Stride)
	gl.VertexAttribPointer(positionAttrib, 3, gl.FLOAT, false, stride, gl.PtrOffset(layout.PositionOffset))
	gl.EnableVertexAttribArray(positionAttrib)
	gl.VertexAttribPointer(normalAttrib, 3, gl.FLOAT, false, stride, gl.PtrOffset(layout.NormalOffset))
	gl.EnableVertexAttribArray(normalAttrib)
	gl.VertexAttribPointer(texCoordAttrib, 2, gl.FLOAT, false, stride, gl.PtrOffset(layout.TexCoordOffset))
	gl.EnableVertexAttribArray(texCoordAttrib)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if mb.vao == 0 || mb.vbo == 0 {
		return 0, errors.Wrap(model.ErrResource, "failed to allocate vertex buffer")
	}
	mb.count = int32(len(vertices))
	h := model.BufferHandle(mb.vao)
	c.buffers[h] = mb
	return h, nil
}

// ReleaseBuffer deletes the VAO and VBO behind h. Unknown handles are ignored.
func (c *Core) ReleaseBuffer(h model.BufferHandle) {
	mb, ok := c.buffers[h]
	if !ok {
		return
	}
	gl.DeleteVertexArrays(1, &mb.vao)
	gl.DeleteBuffers(1, &mb.vbo)
	delete(c.buffers, h)
}

// CreateTexture uploads img as a repeating, linearly filtered RGBA texture.
func (c *Core) CreateTexture(img *image.RGBA) (model.TextureHandle, error) {
	if img == nil || img.Rect.Empty() {
		return 0, errors.Wrap(model.ErrResource, "cannot create a texture from an empty image")
	}
	size := img.Rect.Size()

	var texture uint32
	gl.GenTextures(1, &texture)
	if texture == 0 {
		return 0, errors.Wrap(model.ErrResource, "failed to allocate texture")
	}
	gl.BindTexture(gl.TEXTURE_2D, texture)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(size.X), int32(size.Y), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)

	gl.BindTexture(gl.TEXTURE_2D, 0)

	h := model.TextureHandle(texture)
	c.textures[h] = true
	return h, nil
}

// ReleaseTexture deletes the texture behind h. Unknown handles are ignored.
func (c *Core) ReleaseTexture(h model.TextureHandle) {
	if !c.textures[h] {
		return
	}
	texture := uint32(h)
	gl.DeleteTextures(1, &texture)
	delete(c.textures, h)
}
