package core

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

const maxLights = 4

var vertexShaderSource = `
	#version 410 core
	layout (location = 0) in vec3 aPos;
	layout (location = 1) in vec3 aNormal;
	layout (location = 2) in vec2 aTexCoord;

	out vec3 EyePos;
	out vec3 EyeNormal;
	out vec2 TexCoord;

	uniform mat4 model;
	uniform mat4 view;
	uniform mat4 projection;

	void main() {
		mat4 modelView = view * model;
		vec4 eyePos = modelView * vec4(aPos, 1.0);
		EyePos = eyePos.xyz;
		EyeNormal = mat3(transpose(inverse(modelView))) * aNormal;
		TexCoord = aTexCoord;
		gl_Position = projection * eyePos;
	}
` + "\x00"

var fragmentShaderSource = fmt.Sprintf(`
	#version 410 core
	#define MAX_LIGHTS %d

	struct Light {
		bool enabled;
		vec4 position;
		vec3 ambient;
		vec3 diffuse;
		vec3 specular;
		vec3 attenuation;
		vec3 spotDirection;
		float spotCutoff;
		float spotExponent;
	};

	in vec3 EyePos;
	in vec3 EyeNormal;
	in vec2 TexCoord;
	out vec4 FragColor;

	uniform Light lights[MAX_LIGHTS];
	uniform vec3 matAmbient;
	uniform vec3 matDiffuse;
	uniform vec3 matSpecular;
	uniform float matShininess;
	uniform sampler2D ourTexture;
	uniform bool hasTexture;

	void main() {
		vec3 N = normalize(EyeNormal);
		vec3 V = vec3(0.0, 0.0, 1.0);
		vec3 color = vec3(0.0);

		for (int i = 0; i < MAX_LIGHTS; i++) {
			if (!lights[i].enabled) {
				continue;
			}
			vec3 L;
			float att = 1.0;
			if (lights[i].position.w == 0.0) {
				L = normalize(lights[i].position.xyz);
			} else {
				vec3 toLight = lights[i].position.xyz - EyePos;
				float d = length(toLight);
				L = toLight / max(d, 1e-6);
				vec3 k = lights[i].attenuation;
				att = 1.0 / (k.x + k.y * d + k.z * d * d);
			}
			if (lights[i].spotCutoff < 180.0) {
				float cosAngle = dot(-L, lights[i].spotDirection);
				if (cosAngle < cos(radians(lights[i].spotCutoff))) {
					att = 0.0;
				} else {
					att *= pow(cosAngle, lights[i].spotExponent);
				}
			}

			vec3 term = lights[i].ambient * matAmbient;
			float nDotL = max(dot(N, L), 0.0);
			term += nDotL * lights[i].diffuse * matDiffuse;
			if (nDotL > 0.0) {
				float s = max(dot(N, normalize(L + V)), 0.0);
				term += pow(s, matShininess) * lights[i].specular * matSpecular;
			}
			color += att * term;
		}

		if (hasTexture) {
			color *= texture(ourTexture, TexCoord).rgb;
		}
		FragColor = vec4(clamp(color, 0.0, 1.0), 1.0);
	}
`, maxLights) + "\x00"

type lightUniforms struct {
	enabled, position          int32
	ambient, diffuse, specular int32
	attenuation, spotDirection int32
	spotCutoff, spotExponent   int32
}

type uniforms struct {
	model, view, projection int32

	matAmbient, matDiffuse, matSpecular, matShininess int32
	texture, hasTexture                               int32

	lights [maxLights]lightUniforms
}

func uniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func lookupUniforms(program uint32) uniforms {
	u := uniforms{
		model:        uniformLocation(program, "model"),
		view:         uniformLocation(program, "view"),
		projection:   uniformLocation(program, "projection"),
		matAmbient:   uniformLocation(program, "matAmbient"),
		matDiffuse:   uniformLocation(program, "matDiffuse"),
		matSpecular:  uniformLocation(program, "matSpecular"),
		matShininess: uniformLocation(program, "matShininess"),
		texture:      uniformLocation(program, "ourTexture"),
		hasTexture:   uniformLocation(program, "hasTexture"),
	}
	for i := range u.lights {
		field := func(name string) int32 {
			return uniformLocation(program, fmt.Sprintf("lights[%d].%s", i, name))
		}
		u.lights[i] = lightUniforms{
			enabled:       field("enabled"),
			position:      field("position"),
			ambient:       field("ambient"),
			diffuse:       field("diffuse"),
			specular:      field("specular"),
			attenuation:   field("attenuation"),
			spotDirection: field("spotDirection"),
			spotCutoff:    field("spotCutoff"),
			spotExponent:  field("spotExponent"),
		}
	}
	return u
}

// compileShader compiles vertex and fragment shaders into an OpenGL program.
func compileShader(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader := gl.CreateShader(gl.VERTEX_SHADER)
	glShaderSource(vertexShader, vertexShaderSource)
	gl.CompileShader(vertexShader)
	if err := checkShaderCompileStatus(vertexShader, "vertex"); err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	fragmentShader := gl.CreateShader(gl.FRAGMENT_SHADER)
	glShaderSource(fragmentShader, fragmentShaderSource)
	gl.CompileShader(fragmentShader)
	if err := checkShaderCompileStatus(fragmentShader, "fragment"); err != nil {
		gl.DeleteShader(vertexShader)
		gl.DeleteShader(fragmentShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	if err := checkProgramLinkStatus(program); err != nil {
		gl.DeleteProgram(program)
		return 0, err
	}
	return program, nil
}

// glShaderSource passes a NUL-terminated GLSL source to OpenGL.
func glShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

func checkShaderCompileStatus(shader uint32, shaderType string) error {
	return checkStatus(shader, gl.COMPILE_STATUS, gl.GetShaderiv, gl.GetShaderInfoLog,
		"failed to compile "+shaderType+" shader")
}

func checkProgramLinkStatus(program uint32) error {
	return checkStatus(program, gl.LINK_STATUS, gl.GetProgramiv, gl.GetProgramInfoLog,
		"failed to link program")
}

// checkStatus reads a compile or link flag and, when it is false, returns the
// driver's info log wrapped in msg.
func checkStatus(
	object, pname uint32,
	getiv func(uint32, uint32, *int32),
	getLog func(uint32, int32, *int32, *uint8),
	msg string,
) error {
	var status int32
	getiv(object, pname, &status)
	if status != gl.FALSE {
		return nil
	}
	var logLength int32
	getiv(object, gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 0 {
		return fmt.Errorf("%s: no info log", msg)
	}
	buf := make([]uint8, logLength)
	getLog(object, logLength, nil, &buf[0])
	return fmt.Errorf("%s:\n%s", msg, strings.TrimRight(string(buf), "\x00"))
}
