package texture

import (
	"image"
	"log"

	"github.com/toxichemicals/GO/pooltable/model"
)

// Uploader registers decoded pixels with the graphics backend. Textures are
// created with REPEAT wrapping and LINEAR filtering on both axes.
type Uploader interface {
	CreateTexture(img *image.RGBA) (model.TextureHandle, error)
}

// Resolver loads material textures and records the resulting handles.
type Resolver struct {
	up      Uploader
	maxSize int
}

// NewResolver creates a Resolver. maxSize caps the texture edge length;
// zero keeps images at their original size.
func NewResolver(up Uploader, maxSize int) *Resolver {
	return &Resolver{up: up, maxSize: maxSize}
}

// Resolve loads m.TextureFile and stores the handle on m. Failures are logged
// and leave the material untextured; they never abort a load.
func (r *Resolver) Resolve(m *model.Material) {
	if m.TextureFile == "" {
		log.Printf("Warning: material %q has no texture", m.Name)
		return
	}

	img, err := Decode(m.TextureFile, r.maxSize)
	if err != nil {
		log.Printf("Warning: Failed to load texture image %s: %v", m.TextureFile, err)
		return
	}

	handle, err := r.up.CreateTexture(img)
	if err != nil {
		log.Printf("Warning: Failed to create texture from %s: %v", m.TextureFile, err)
		return
	}
	m.Texture = handle
	log.Printf("Texture '%s' loaded successfully.", m.TextureFile)
}
