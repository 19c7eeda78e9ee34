package renderer

import (
	"math"

	"github.com/TomCrypto/equinox/tracer"
	"github.com/TomCrypto/equinox/types"
)

const (
	// Radians of camera rotation per pixel of pointer movement.
	lookSensitivity float32 = 0.001

	// Camera displacement per frame while a movement key is held.
	cameraMoveSpeed float32 = 0.02

	// Aperture applied while the focus key is held.
	focusAperture float32 = 0.1

	// Keeps the polar angle away from the poles.
	polarLimit float32 = 0.01

	// Initial view direction.
	initialAzimuth float32 = 4.758
	initialPolar   float32 = 1.238
)

// Key identifies an input action that the driver polls once per frame.
type Key uint8

const (
	KeyForward Key = iota
	KeyBackward
	KeyLeft
	KeyRight
	KeyFocus
	numKeys
)

type change struct {
	changeType tracer.ChangeType
	data       interface{}
}

// Input collected between frames. Event handlers only record state; the
// driver turns it into tracer changes at the start of the next frame.
type inputState struct {
	pressed [numKeys]bool

	looking   bool
	lookDelta types.Vec2
	azimuth   float32
	polar     float32

	directionChanged bool

	aperture        float32
	apertureChanged bool

	frameW, frameH uint32
	resized        bool
}

func makeInputState(frameW, frameH uint32) inputState {
	return inputState{
		azimuth:          initialAzimuth,
		polar:            initialPolar,
		directionChanged: true,
		frameW:           frameW,
		frameH:           frameH,
		resized:          true,
	}
}

func (in *inputState) keyDown(k Key) {
	if k < numKeys {
		in.pressed[k] = true
	}
}

func (in *inputState) keyUp(k Key) {
	if k < numKeys {
		in.pressed[k] = false
	}
}

func (in *inputState) look(dx, dy float32) {
	if !in.looking {
		return
	}
	in.lookDelta = in.lookDelta.Add(types.XY(dx, dy))
}

func (in *inputState) setAperture(r float32) {
	in.aperture = r
	in.apertureChanged = true
}

func (in *inputState) resize(w, h uint32) {
	if w == 0 || h == 0 || (w == in.frameW && h == in.frameH) {
		return
	}
	in.frameW, in.frameH = w, h
	in.resized = true
}

// Mark the whole camera and frame state for resubmission, e.g. after the
// tracer lost its device state.
func (in *inputState) invalidate() {
	in.directionChanged = true
	in.resized = true
}

// Convert the collected input into tracer changes and reset it.
func (in *inputState) drain() []change {
	var changes []change

	if in.lookDelta != (types.Vec2{}) {
		in.azimuth -= in.lookDelta[0] * lookSensitivity
		in.polar -= in.lookDelta[1] * lookSensitivity
		in.polar = float32(math.Max(float64(polarLimit), math.Min(float64(in.polar), math.Pi-float64(polarLimit))))
		in.lookDelta = types.Vec2{}
		in.directionChanged = true
	}
	if in.directionChanged {
		changes = append(changes, change{tracer.CameraDirection, in.direction()})
		in.directionChanged = false
	}

	var move types.Vec2
	if in.pressed[KeyForward] {
		move[0] += cameraMoveSpeed
	}
	if in.pressed[KeyBackward] {
		move[0] -= cameraMoveSpeed
	}
	if in.pressed[KeyLeft] {
		move[1] -= cameraMoveSpeed
	}
	if in.pressed[KeyRight] {
		move[1] += cameraMoveSpeed
	}
	if move != (types.Vec2{}) {
		changes = append(changes, change{tracer.CameraMove, move})
	}

	if in.pressed[KeyFocus] {
		in.setAperture(focusAperture)
	}
	if in.apertureChanged {
		changes = append(changes, change{tracer.CameraAperture, in.aperture})
		in.apertureChanged = false
	}

	if in.resized {
		changes = append(changes, change{tracer.FrameDimensions, [2]uint32{in.frameW, in.frameH}})
		in.resized = false
	}

	return changes
}

func (in *inputState) direction() types.Vec3 {
	return types.Spherical(in.azimuth, in.polar)
}
