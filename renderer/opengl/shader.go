package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// Fullscreen triangle generated from gl_VertexID; no vertex buffers needed.
const fullscreenVertexShader = `
#version 330 core
out vec2 uv;
void main() {
	vec2 p = vec2((gl_VertexID << 1) & 2, gl_VertexID & 2);
	uv = p;
	gl_Position = vec4(p * 2.0 - 1.0, 0.0, 1.0);
}
`

// One jittered sample per pixel of a checkered ground plane under a sky
// gradient. Samples are accumulated with additive blending.
const refineFragmentShader = `
#version 330 core
in vec2 uv;
out vec4 color;

uniform vec3 forward;
uniform vec2 eye;
uniform vec2 resolution;
uniform float aperture;
uniform uint seed;

const float focalDistance = 4.0;

float hash(uvec2 p, uint s) {
	uint h = p.x * 1973u + p.y * 9277u + s * 26699u;
	h = (h ^ (h >> 15u)) * 2246822519u;
	h ^= h >> 13u;
	return float(h & 0xffffu) / 65535.0;
}

void main() {
	uvec2 px = uvec2(gl_FragCoord.xy);
	vec2 jitter = vec2(hash(px, seed), hash(px, seed + 7919u)) - 0.5;
	vec2 lens = vec2(hash(px, seed + 104729u), hash(px, seed + 1299709u)) - 0.5;

	vec2 ndc = (gl_FragCoord.xy + jitter) / resolution * 2.0 - 1.0;
	ndc.x *= resolution.x / resolution.y;

	vec3 right = normalize(cross(forward, vec3(0.0, 1.0, 0.0)));
	vec3 up = cross(right, forward);

	vec3 center = vec3(eye.x, 1.0, eye.y);
	vec3 focus = center + normalize(forward + ndc.x * right + ndc.y * up) * focalDistance;
	vec3 origin = center + (right * lens.x + up * lens.y) * aperture;
	vec3 dir = normalize(focus - origin);

	vec3 radiance = mix(vec3(1.0), vec3(0.5, 0.7, 1.0), clamp(dir.y, 0.0, 1.0));
	if (dir.y < 0.0) {
		vec2 hit = origin.xz - dir.xz * origin.y / dir.y;
		float checker = mod(floor(hit.x) + floor(hit.y), 2.0);
		radiance = mix(vec3(0.2), vec3(0.8), checker) * exp(-0.02 * length(hit - origin.xz));
	}
	color = vec4(radiance, 1.0);
}
`

// Resolve the accumulation buffer to the screen.
const displayFragmentShader = `
#version 330 core
in vec2 uv;
out vec4 color;

uniform sampler2D accumulator;
uniform float scale;

void main() {
	vec3 c = texture(accumulator, uv).rgb * scale;
	color = vec4(pow(c, vec3(1.0 / 2.2)), 1.0);
}
`

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(src + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("shader compilation failed: %s", strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

// Link a program from the fullscreen vertex shader and the given fragment
// shader.
func linkProgram(fragmentSrc string) (uint32, error) {
	vs, err := compileShader(fullscreenVertexShader, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vs)

	fs, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fs)

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("program link failed: %s", strings.TrimRight(log, "\x00"))
	}
	return program, nil
}

func uniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}
