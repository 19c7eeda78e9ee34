package opengl

import (
	"fmt"

	"github.com/TomCrypto/equinox/tracer"
	"github.com/TomCrypto/equinox/types"
	"github.com/go-gl/gl/v3.3-core/gl"
)

type change struct {
	changeType tracer.ChangeType
	data       interface{}
}

// Tracer accumulates jittered samples of a procedural scene into a floating
// point texture. Each refine pass adds one sample per pixel.
type Tracer struct {
	id string

	pendingChanges []change

	// Camera
	forward  types.Vec3
	eye      types.Vec2
	aperture float32

	// Output
	frameW, frameH uint32
	samples        uint32

	// GL handles
	vao            uint32
	fbo            uint32
	accumTex       uint32
	refineProgram  uint32
	displayProgram uint32
}

// Create a tracer on the current GL context. Nothing is rendered until the
// frame dimensions have been set.
func NewTracer(id string) (*Tracer, error) {
	tr := &Tracer{
		id:      id,
		forward: types.XYZ(0, 0, -1),
	}

	var err error
	if tr.refineProgram, err = linkProgram(refineFragmentShader); err != nil {
		tr.Close()
		return nil, fmt.Errorf("opengl tracer (%s): %s", id, err.Error())
	}
	if tr.displayProgram, err = linkProgram(displayFragmentShader); err != nil {
		tr.Close()
		return nil, fmt.Errorf("opengl tracer (%s): %s", id, err.Error())
	}

	gl.GenVertexArrays(1, &tr.vao)
	gl.GenFramebuffers(1, &tr.fbo)
	gl.GenTextures(1, &tr.accumTex)

	return tr, nil
}

func (tr *Tracer) Id() string {
	return tr.id
}

func (tr *Tracer) AppendChange(changeType tracer.ChangeType, data interface{}) {
	tr.pendingChanges = append(tr.pendingChanges, change{changeType, data})
}

// Update applies every pending change and restarts accumulation. A change
// that cannot be applied does not prevent the others; the first error is
// returned.
func (tr *Tracer) Update() error {
	if len(tr.pendingChanges) == 0 {
		return nil
	}

	var err error
	for _, c := range tr.pendingChanges {
		if applyErr := tr.apply(c); applyErr != nil && err == nil {
			err = applyErr
		}
	}
	tr.pendingChanges = tr.pendingChanges[:0]

	// The driver has already discarded its sample count.
	tr.samples = 0
	gl.BindFramebuffer(gl.FRAMEBUFFER, tr.fbo)
	gl.ClearColor(0, 0, 0, 0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	return err
}

func (tr *Tracer) Refine() error {
	if tr.frameW == 0 || tr.frameH == 0 {
		return fmt.Errorf("opengl tracer (%s): frame dimensions not set", tr.id)
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, tr.fbo)
	gl.Viewport(0, 0, int32(tr.frameW), int32(tr.frameH))
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.ONE, gl.ONE)

	gl.UseProgram(tr.refineProgram)
	gl.Uniform3f(uniform(tr.refineProgram, "forward"), tr.forward[0], tr.forward[1], tr.forward[2])
	gl.Uniform2f(uniform(tr.refineProgram, "eye"), tr.eye[0], tr.eye[1])
	gl.Uniform2f(uniform(tr.refineProgram, "resolution"), float32(tr.frameW), float32(tr.frameH))
	gl.Uniform1f(uniform(tr.refineProgram, "aperture"), tr.aperture)
	gl.Uniform1ui(uniform(tr.refineProgram, "seed"), tr.samples)

	gl.BindVertexArray(tr.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)

	gl.Disable(gl.BLEND)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	tr.samples++
	return nil
}

func (tr *Tracer) Render() error {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(tr.frameW), int32(tr.frameH))

	var scale float32
	if tr.samples > 0 {
		scale = 1 / float32(tr.samples)
	}

	gl.UseProgram(tr.displayProgram)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tr.accumTex)
	gl.Uniform1i(uniform(tr.displayProgram, "accumulator"), 0)
	gl.Uniform1f(uniform(tr.displayProgram, "scale"), scale)

	gl.BindVertexArray(tr.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("opengl tracer (%s): render failed with GL error 0x%x", tr.id, code)
	}
	return nil
}

func (tr *Tracer) Close() {
	if tr.accumTex != 0 {
		gl.DeleteTextures(1, &tr.accumTex)
		tr.accumTex = 0
	}
	if tr.fbo != 0 {
		gl.DeleteFramebuffers(1, &tr.fbo)
		tr.fbo = 0
	}
	if tr.vao != 0 {
		gl.DeleteVertexArrays(1, &tr.vao)
		tr.vao = 0
	}
	if tr.refineProgram != 0 {
		gl.DeleteProgram(tr.refineProgram)
		tr.refineProgram = 0
	}
	if tr.displayProgram != 0 {
		gl.DeleteProgram(tr.displayProgram)
		tr.displayProgram = 0
	}
	tr.pendingChanges = nil
}

func (tr *Tracer) apply(c change) error {
	var ok bool
	switch c.changeType {
	case tracer.CameraDirection:
		tr.forward, ok = c.data.(types.Vec3)
	case tracer.CameraMove:
		var delta types.Vec2
		if delta, ok = c.data.(types.Vec2); ok {
			tr.move(delta)
		}
	case tracer.CameraAperture:
		tr.aperture, ok = c.data.(float32)
	case tracer.FrameDimensions:
		var dims [2]uint32
		if dims, ok = c.data.([2]uint32); ok {
			return tr.resize(dims[0], dims[1])
		}
	}

	if !ok {
		return fmt.Errorf("opengl tracer (%s): unsupported payload %T for %s change", tr.id, c.data, c.changeType)
	}
	return nil
}

// Move the eye along the ground plane. Delta holds the forward and sideways
// displacement.
func (tr *Tracer) move(delta types.Vec2) {
	ahead := types.XYZ(tr.forward[0], 0, tr.forward[2]).Normalize()
	side := ahead.Cross(types.XYZ(0, 1, 0))
	step := ahead.Mul(delta[0]).Add(side.Mul(delta[1]))
	tr.eye = tr.eye.Add(types.XY(step[0], step[2]))
}

// Reallocate the accumulation buffer. The output covers the whole default
// framebuffer.
func (tr *Tracer) resize(frameW, frameH uint32) error {
	tr.frameW, tr.frameH = frameW, frameH

	gl.BindTexture(gl.TEXTURE_2D, tr.accumTex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA32F, int32(frameW), int32(frameH), 0, gl.RGBA, gl.FLOAT, nil)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.BindFramebuffer(gl.FRAMEBUFFER, tr.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, tr.accumTex, 0)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	if status != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("opengl tracer (%s): incomplete accumulation buffer (status 0x%x)", tr.id, status)
	}
	return nil
}
