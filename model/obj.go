package model

import (
	"bufio"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// DirPrefix returns the directory part of path including the trailing
// separator, or "" when path has no directory. Referenced files are resolved
// by prefixing this, not by a general path join.
func DirPrefix(path string) string {
	i := strings.LastIndex(path, "/")
	if i < 0 {
		return ""
	}
	return path[:i+1]
}

// ParseMesh reads a mesh file and its companion material file.
//
// Supported mesh keywords: v, vt, vn, mtllib and f with exactly three
// pos/tex/norm references. A missing material file is logged and the zero
// Material is attached instead.
func ParseMesh(path string) (*Geometry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(ErrIO, "failed to open mesh file %s: %v", path, err)
	}
	defer file.Close()

	var positions []mgl32.Vec3
	var texCoords []mgl32.Vec2
	var normals []mgl32.Vec3
	var vertices []Vertex
	var mtlName string

	lineNum := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseVec3(fields)
			if err != nil {
				return nil, formatErrorf(path, lineNum, "%v", err)
			}
			positions = append(positions, v)
		case "vt":
			v, err := parseVec2(fields)
			if err != nil {
				return nil, formatErrorf(path, lineNum, "%v", err)
			}
			texCoords = append(texCoords, v)
		case "vn":
			v, err := parseVec3(fields)
			if err != nil {
				return nil, formatErrorf(path, lineNum, "%v", err)
			}
			normals = append(normals, v)
		case "mtllib":
			if len(fields) < 2 {
				return nil, formatErrorf(path, lineNum, "mtllib without a file name")
			}
			mtlName = fields[1]
		case "f":
			if len(fields) != 4 {
				return nil, formatErrorf(path, lineNum, "face has %d references, only triangles are supported", len(fields)-1)
			}
			for _, ref := range fields[1:] {
				vtx, err := resolveRef(ref, positions, texCoords, normals)
				if err != nil {
					return nil, formatErrorf(path, lineNum, "%v", err)
				}
				vertices = append(vertices, vtx)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(ErrIO, "error scanning mesh file %s: %v", path, err)
	}

	geom := &Geometry{
		Source:   path,
		Vertices: vertices,
	}

	if mtlName == "" {
		log.Printf("Warning: mesh %s has no mtllib, using default material", path)
		return geom, nil
	}

	mtlPath := DirPrefix(path) + mtlName
	materials, err := ParseMaterials(mtlPath, DirPrefix(path))
	if err != nil {
		if errors.Is(err, ErrIO) {
			log.Printf("Warning: %v, using default material", err)
			return geom, nil
		}
		return nil, err
	}
	geom.Materials = materials
	if len(materials) > 0 {
		geom.Material = materials[0]
	} else {
		log.Printf("Warning: material file %s defines no materials", mtlPath)
	}
	return geom, nil
}

// resolveRef turns one "pos/tex/norm" reference into a Vertex.
func resolveRef(ref string, positions []mgl32.Vec3, texCoords []mgl32.Vec2, normals []mgl32.Vec3) (Vertex, error) {
	parts := strings.Split(ref, "/")
	if len(parts) != 3 {
		return Vertex{}, errors.Errorf("invalid face reference %q (expected pos/tex/norm)", ref)
	}

	var idx [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Vertex{}, errors.Errorf("invalid index %q in face reference %q", p, ref)
		}
		idx[i] = n - 1
	}

	if idx[0] < 0 || idx[0] >= len(positions) {
		return Vertex{}, errors.Errorf("position index out of range: %d (have %d)", idx[0]+1, len(positions))
	}
	if idx[1] < 0 || idx[1] >= len(texCoords) {
		return Vertex{}, errors.Errorf("texture coordinate index out of range: %d (have %d)", idx[1]+1, len(texCoords))
	}
	if idx[2] < 0 || idx[2] >= len(normals) {
		return Vertex{}, errors.Errorf("normal index out of range: %d (have %d)", idx[2]+1, len(normals))
	}

	return Vertex{
		Position: positions[idx[0]],
		TexCoord: texCoords[idx[1]],
		Normal:   normals[idx[2]],
	}, nil
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n+1 {
		return nil, errors.Errorf("%q expects %d values, got %d", fields[0], n, len(fields)-1)
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i+1], 32)
		if err != nil {
			return nil, errors.Errorf("invalid number %q for %q", fields[i+1], fields[0])
		}
		out[i] = float32(f)
	}
	return out, nil
}

func parseVec3(fields []string) (mgl32.Vec3, error) {
	f, err := parseFloats(fields, 3)
	if err != nil {
		return mgl32.Vec3{}, err
	}
	return mgl32.Vec3{f[0], f[1], f[2]}, nil
}

func parseVec2(fields []string) (mgl32.Vec2, error) {
	f, err := parseFloats(fields, 2)
	if err != nil {
		return mgl32.Vec2{}, err
	}
	return mgl32.Vec2{f[0], f[1]}, nil
}

func parseFloat(fields []string) (float32, error) {
	f, err := parseFloats(fields, 1)
	if err != nil {
		return 0, err
	}
	return f[0], nil
}
