package model

import (
	"bufio"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// ParseMaterials reads every material block of a material file. Texture paths
// from map_Kd are prefixed with dir.
//
// Directives seen before the first newmtl go into an unnamed material. A
// trailing newmtl with no directives after it is dropped.
func ParseMaterials(path, dir string) ([]Material, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(ErrIO, "failed to open material file %s: %v", path, err)
	}
	defer file.Close()

	var materials []Material
	var cur *Material
	filled := false

	open := func() *Material {
		if cur == nil {
			cur = &Material{}
		}
		filled = true
		return cur
	}

	lineNum := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		var err error
		switch fields[0] {
		case "newmtl":
			if cur != nil {
				materials = append(materials, *cur)
			}
			cur = &Material{}
			filled = false
			if len(fields) > 1 {
				cur.Name = fields[1]
			}
		case "Ka":
			open().Ambient, err = parseVec3(fields)
		case "Kd":
			open().Diffuse, err = parseVec3(fields)
		case "Ks":
			open().Specular, err = parseVec3(fields)
		case "Ns":
			open().Shininess, err = parseFloat(fields)
		case "map_Kd":
			if len(fields) < 2 {
				err = errors.New("map_Kd without a file name")
				break
			}
			open().TextureFile = dir + fields[1]
		}
		if err != nil {
			return nil, formatErrorf(path, lineNum, "%v", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(ErrIO, "error scanning material file %s: %v", path, err)
	}

	if cur != nil && filled {
		materials = append(materials, *cur)
	}
	return materials, nil
}
