package model

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is one flattened face reference: the position, normal and texture
// coordinate a single "pos/tex/norm" triple resolved to.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	TexCoord mgl32.Vec2
}

// TextureHandle identifies a texture registered with the graphics backend.
// Zero means no texture.
type TextureHandle uint32

// BufferHandle identifies a vertex buffer uploaded to the graphics backend.
// Zero means no buffer.
type BufferHandle uint32

// Material holds the shading coefficients read from a material file.
type Material struct {
	Name      string
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
	Shininess float32

	// TextureFile is already resolved against the mesh directory.
	TextureFile string
	Texture     TextureHandle
}

// HasTexture reports whether a texture has been registered for the material.
func (m *Material) HasTexture() bool {
	return m.Texture != 0
}

// Geometry is a triangle list plus the material it is drawn with.
type Geometry struct {
	Source   string
	Vertices []Vertex
	Material Material

	// Materials lists every material found in the material file, in file
	// order. Material is a copy of the first one.
	Materials []Material
}

// TriangleCount returns the number of triangles in the vertex list.
func (g *Geometry) TriangleCount() int {
	return len(g.Vertices) / 3
}

// Layout describes how a packed []Vertex is laid out in a GPU buffer.
// Offsets and stride are in bytes.
type Layout struct {
	Stride         int
	PositionOffset int
	NormalOffset   int
	TexCoordOffset int
}

// VertexLayout returns the attribute layout of Vertex.
func VertexLayout() Layout {
	var v Vertex
	return Layout{
		Stride:         int(unsafe.Sizeof(v)),
		PositionOffset: int(unsafe.Offsetof(v.Position)),
		NormalOffset:   int(unsafe.Offsetof(v.Normal)),
		TexCoordOffset: int(unsafe.Offsetof(v.TexCoord)),
	}
}
