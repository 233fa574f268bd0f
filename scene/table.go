package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/toxichemicals/GO/pooltable/model"
)

// TableMaterial is the green baize the table is drawn with.
var TableMaterial = model.Material{
	Name:      "Table",
	Ambient:   mgl32.Vec3{0.0, 0.05, 0.0},
	Diffuse:   mgl32.Vec3{0.1, 0.2, 0.1},
	Specular:  mgl32.Vec3{0.04, 0.1, 0.04},
	Shininess: 0.078125,
}

// TableGeometry builds a closed box of the given size centred on the origin,
// as a flat-shaded triangle list.
func TableGeometry(length, width, depth float32) *model.Geometry {
	hx, hy, hz := length/2, width/2, depth/2

	type face struct {
		normal  mgl32.Vec3
		corners [4]mgl32.Vec3
	}
	faces := []face{
		{mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{-hx, -hy, -hz}, {-hx, hy, -hz}, {hx, hy, -hz}, {hx, -hy, -hz}}},
		{mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{-hx, -hy, hz}, {hx, -hy, hz}, {hx, hy, hz}, {-hx, hy, hz}}},
		{mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{-hx, -hy, -hz}, {-hx, -hy, hz}, {-hx, hy, hz}, {-hx, hy, -hz}}},
		{mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{hx, -hy, -hz}, {hx, hy, -hz}, {hx, hy, hz}, {hx, -hy, hz}}},
		{mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{-hx, hy, -hz}, {-hx, hy, hz}, {hx, hy, hz}, {hx, hy, -hz}}},
		{mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{-hx, -hy, -hz}, {hx, -hy, -hz}, {hx, -hy, hz}, {-hx, -hy, hz}}},
	}
	uvs := [4]mgl32.Vec2{{0, 0}, {0, 1}, {1, 1}, {1, 0}}

	vertices := make([]model.Vertex, 0, len(faces)*6)
	for _, f := range faces {
		// two triangles per quad: 0-1-2 and 0-2-3
		for _, c := range [6]int{0, 1, 2, 0, 2, 3} {
			vertices = append(vertices, model.Vertex{
				Position: f.corners[c],
				Normal:   f.normal,
				TexCoord: uvs[c],
			})
		}
	}

	return &model.Geometry{
		Source:    "table",
		Vertices:  vertices,
		Material:  TableMaterial,
		Materials: []model.Material{TableMaterial},
	}
}
