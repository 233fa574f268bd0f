package render

import "github.com/go-gl/mathgl/mgl32"

// NoSpot is the cutoff of a light that shines in every direction.
const NoSpot = 180

// Light follows the classic fixed-function model. Position.W() == 0 makes
// the light directional, with Position.Vec3() pointing towards it.
type Light struct {
	Name     string
	Position mgl32.Vec4
	Ambient  mgl32.Vec3
	Diffuse  mgl32.Vec3
	Specular mgl32.Vec3

	// constant, linear, quadratic
	Attenuation mgl32.Vec3

	SpotDirection mgl32.Vec3
	SpotCutoff    float32 // degrees, NoSpot disables the cone
	SpotExponent  float32
}

// DefaultLights returns the ambient, directional, point and spot lights in
// that order.
func DefaultLights() []Light {
	return []Light{
		{
			Name:        "ambient",
			Ambient:     mgl32.Vec3{5, 5, 5},
			Attenuation: mgl32.Vec3{1, 0, 0},
			SpotCutoff:  NoSpot,
		},
		{
			Name:        "directional",
			Position:    mgl32.Vec4{1, 1, -10, 0},
			Diffuse:     mgl32.Vec3{0.8, 0.8, 0.8},
			Specular:    mgl32.Vec3{1, 1, 1},
			Attenuation: mgl32.Vec3{1, 0, 0},
			SpotCutoff:  NoSpot,
		},
		{
			Name:        "point",
			Position:    mgl32.Vec4{0, 2, -2, 1},
			Diffuse:     mgl32.Vec3{255, 255, 255},
			Specular:    mgl32.Vec3{55, 55, 255},
			Attenuation: mgl32.Vec3{1, 0.0005, 0.001},
			SpotCutoff:  NoSpot,
		},
		{
			Name:          "spot",
			Position:      mgl32.Vec4{0, 0, 0, 1},
			Diffuse:       mgl32.Vec3{255, 155, 155},
			Specular:      mgl32.Vec3{255, 0, 0},
			Attenuation:   mgl32.Vec3{1, 0.0005, 0.00001},
			SpotDirection: mgl32.Vec3{50, 50, 10},
			SpotCutoff:    25,
			SpotExponent:  10,
		},
	}
}

// InEyeSpace returns l with its position and spot direction transformed by
// view, the way fixed-function GL stores lights.
func (l Light) InEyeSpace(view mgl32.Mat4) Light {
	l.Position = view.Mul4x1(l.Position)
	if l.Position.W() == 0 {
		l.Position = l.Position.Vec3().Normalize().Vec4(0)
	}
	if l.SpotDirection.Len() > 0 {
		l.SpotDirection = view.Mat3().Mul3x1(l.SpotDirection).Normalize()
	}
	return l
}
