package core

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/toxichemicals/GO/pooltable/render"
	"github.com/toxichemicals/GO/pooltable/scene"
)

// BeginFrame clears the framebuffer and loads the camera and lights for the
// frame. enabled[i] switches lights[i]; lights past maxLights are ignored.
func (c *Core) BeginFrame(cam render.Camera, lights []render.Light, enabled []bool) {
	gl.Viewport(0, 0, int32(c.width), int32(c.height))
	gl.ClearColor(0.07, 0.13, 0.17, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(c.program)

	view := cam.View()
	projection := cam.Projection()
	gl.UniformMatrix4fv(c.uniforms.view, 1, false, &view[0])
	gl.UniformMatrix4fv(c.uniforms.projection, 1, false, &projection[0])

	for i := range c.uniforms.lights {
		lu := c.uniforms.lights[i]
		if i >= len(lights) || i >= len(enabled) || !enabled[i] {
			gl.Uniform1i(lu.enabled, 0)
			continue
		}
		l := lights[i].InEyeSpace(view)
		gl.Uniform1i(lu.enabled, 1)
		gl.Uniform4fv(lu.position, 1, &l.Position[0])
		gl.Uniform3fv(lu.ambient, 1, &l.Ambient[0])
		gl.Uniform3fv(lu.diffuse, 1, &l.Diffuse[0])
		gl.Uniform3fv(lu.specular, 1, &l.Specular[0])
		gl.Uniform3fv(lu.attenuation, 1, &l.Attenuation[0])
		gl.Uniform3fv(lu.spotDirection, 1, &l.SpotDirection[0])
		gl.Uniform1f(lu.spotCutoff, l.SpotCutoff)
		gl.Uniform1f(lu.spotExponent, l.SpotExponent)
	}
}

// Draw submits one object. Its texture is bound only when it has one;
// otherwise it is shaded by its material alone.
func (c *Core) Draw(d scene.DrawableState) {
	mb, ok := c.buffers[d.Buffer]
	if !ok {
		return
	}

	hasTexture := d.Texture != 0 && c.textures[d.Texture]
	if hasTexture {
		gl.Uniform1i(c.uniforms.hasTexture, 1)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, uint32(d.Texture))
		gl.Uniform1i(c.uniforms.texture, 0)
	} else {
		gl.Uniform1i(c.uniforms.hasTexture, 0)
	}

	gl.Uniform3fv(c.uniforms.matAmbient, 1, &d.Ambient[0])
	gl.Uniform3fv(c.uniforms.matDiffuse, 1, &d.Diffuse[0])
	gl.Uniform3fv(c.uniforms.matSpecular, 1, &d.Specular[0])
	gl.Uniform1f(c.uniforms.matShininess, d.Shininess)

	model := render.ModelMatrix(d.Position, d.Orientation)
	gl.UniformMatrix4fv(c.uniforms.model, 1, false, &model[0])

	gl.BindVertexArray(mb.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, mb.count)
	gl.BindVertexArray(0)

	// Unbind texture if one was used to prevent bleeding
	if hasTexture {
		gl.BindTexture(gl.TEXTURE_2D, 0)
	}
}
