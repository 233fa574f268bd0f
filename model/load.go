package model

import "strings"

// Load picks a loader by file extension: .gltf and .glb go through LoadGLTF,
// everything else is parsed as a text mesh.
func Load(path string) (*Geometry, error) {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".gltf") || strings.HasSuffix(lower, ".glb") {
		return LoadGLTF(path)
	}
	return ParseMesh(path)
}
