// Package render holds the pure math behind drawing: camera and model
// matrices, light parameters and pixel readback helpers.
package render

import "github.com/go-gl/mathgl/mgl32"

const (
	nearPlane = -1000
	farPlane  = 1000
)

// Camera is an orthographic view centred on the window, scaled by Zoom and
// turned by RotationX (about X) then RotationY (about Z). Angles in degrees.
type Camera struct {
	Width, Height int
	Zoom          float32
	RotationX     float32
	RotationY     float32
}

// Projection maps window pixel coordinates to clip space.
func (c Camera) Projection() mgl32.Mat4 {
	return mgl32.Ortho(0, float32(c.Width), 0, float32(c.Height), nearPlane, farPlane)
}

// View places the scene origin at the window centre.
func (c Camera) View() mgl32.Mat4 {
	view := mgl32.Translate3D(float32(c.Width)/2, float32(c.Height)/2, 0)
	view = view.Mul4(mgl32.Scale3D(c.Zoom, c.Zoom, c.Zoom))
	view = view.Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(c.RotationX)))
	view = view.Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(c.RotationY)))
	return view
}

// ModelMatrix translates to position and applies orientation (degrees)
// about X, then Y, then Z.
func ModelMatrix(position, orientation mgl32.Vec3) mgl32.Mat4 {
	model := mgl32.Translate3D(position.X(), position.Y(), position.Z())
	model = model.Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(orientation.X())))
	model = model.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(orientation.Y())))
	model = model.Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(orientation.Z())))
	return model
}
