package model

import (
	"log"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// LoadGLTF reads the first mesh of a glTF/GLB file and flattens its indexed
// triangles into the same representation ParseMesh produces. Only triangle
// primitives carrying POSITION, NORMAL and TEXCOORD_0 are used.
func LoadGLTF(path string) (*Geometry, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(ErrIO, "failed to open glTF file %s: %v", path, err)
	}
	if len(doc.Meshes) == 0 {
		return nil, errors.Wrapf(ErrFormat, "glTF file %s contains no meshes", path)
	}

	geom := &Geometry{Source: path}
	materialIdx := -1

	for _, prim := range doc.Meshes[0].Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			log.Printf("Warning: skipping non-triangle primitive in %s", path)
			continue
		}
		vertices, err := flattenPrimitive(doc, prim)
		if err != nil {
			return nil, errors.Wrapf(ErrFormat, "%s: %v", path, err)
		}
		geom.Vertices = append(geom.Vertices, vertices...)
		if materialIdx < 0 && prim.Material != nil {
			materialIdx = *prim.Material
		}
	}

	for _, m := range doc.Materials {
		geom.Materials = append(geom.Materials, gltfMaterial(doc, m, DirPrefix(path)))
	}
	if materialIdx >= 0 && materialIdx < len(geom.Materials) {
		geom.Material = geom.Materials[materialIdx]
	} else {
		log.Printf("Warning: glTF mesh in %s has no material, using default material", path)
	}
	return geom, nil
}

func flattenPrimitive(doc *gltf.Document, prim *gltf.Primitive) ([]Vertex, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, errors.New("primitive has no POSITION attribute")
	}
	normIdx, ok := prim.Attributes[gltf.NORMAL]
	if !ok {
		return nil, errors.New("primitive has no NORMAL attribute")
	}
	uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]
	if !ok {
		return nil, errors.New("primitive has no TEXCOORD_0 attribute")
	}

	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, errors.Wrap(err, "reading positions")
	}
	normals, err := modeler.ReadNormal(doc, doc.Accessors[normIdx], nil)
	if err != nil {
		return nil, errors.Wrap(err, "reading normals")
	}
	uvs, err := modeler.ReadTextureCoord(doc, doc.Accessors[uvIdx], nil)
	if err != nil {
		return nil, errors.Wrap(err, "reading texture coordinates")
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, errors.Wrap(err, "reading indices")
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	if len(indices)%3 != 0 {
		return nil, errors.Errorf("index count %d is not a multiple of 3", len(indices))
	}

	vertices := make([]Vertex, 0, len(indices))
	for _, i := range indices {
		if int(i) >= len(positions) || int(i) >= len(normals) || int(i) >= len(uvs) {
			return nil, errors.Errorf("vertex index out of range: %d", i)
		}
		vertices = append(vertices, Vertex{
			Position: mgl32.Vec3(positions[i]),
			Normal:   mgl32.Vec3(normals[i]),
			TexCoord: mgl32.Vec2(uvs[i]),
		})
	}
	return vertices, nil
}

func gltfMaterial(doc *gltf.Document, m *gltf.Material, dir string) Material {
	mat := Material{Name: m.Name}
	pbr := m.PBRMetallicRoughness
	if pbr == nil {
		return mat
	}

	if pbr.BaseColorFactor != nil {
		c := pbr.BaseColorFactor
		mat.Diffuse = mgl32.Vec3{float32(c[0]), float32(c[1]), float32(c[2])}
	} else {
		mat.Diffuse = mgl32.Vec3{1, 1, 1}
	}
	mat.Ambient = mat.Diffuse.Mul(0.2)

	roughness := float32(1)
	if pbr.RoughnessFactor != nil {
		roughness = float32(*pbr.RoughnessFactor)
	}
	mat.Specular = mgl32.Vec3{1, 1, 1}.Mul(1 - roughness)
	mat.Shininess = (1 - roughness) * 128

	if tex := pbr.BaseColorTexture; tex != nil && tex.Index < len(doc.Textures) {
		if src := doc.Textures[tex.Index].Source; src != nil && *src < len(doc.Images) {
			if uri := doc.Images[*src].URI; uri != "" && !doc.Images[*src].IsEmbeddedResource() {
				mat.TextureFile = dir + uri
			}
		}
	}
	return mat
}
