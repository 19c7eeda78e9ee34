// Package opengl hosts the render loop in a glfw window and provides a GL
// tracer whose passes can be timed with glquery.
package opengl

import (
	"fmt"
	"runtime"

	"github.com/TomCrypto/equinox/log"
	"github.com/TomCrypto/equinox/renderer"
	"github.com/TomCrypto/equinox/timer/glquery"
	"github.com/TomCrypto/equinox/types"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	// Aperture change per scroll wheel step.
	apertureStep float32 = 0.01

	// Number of frames between window title refreshes.
	titleInterval = 15
)

var logger = log.New("opengl")

func init() {
	// glfw event handling and GL calls must happen on the main thread.
	runtime.LockOSThread()
}

// Window is a renderer.Host backed by a glfw window with an OpenGL 3.3 core
// context.
type Window struct {
	window *glfw.Window
	title  string
	dev    *glquery.Device

	driver *renderer.Driver

	lastCursorPos types.Vec2
	aperture      float32
	presented     uint64
}

// Create a window and make its GL context current.
func NewWindow(frameW, frameH uint32, title string) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize glfw: %s", err.Error())
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	window, err := glfw.CreateWindow(int(frameW), int(frameH), title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("could not create opengl window: %s", err.Error())
	}
	window.MakeContextCurrent()

	// Present at the display refresh rate.
	glfw.SwapInterval(1)

	if err = gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("could not init opengl: %s", err.Error())
	}

	w := &Window{
		window: window,
		title:  title,
		dev:    glquery.New(),
	}

	info := glquery.Probe()
	logger.Infof(`opened window on "%s" (%s)`, info.Renderer, info.Version)
	if !w.dev.Supported() {
		logger.Warning("timer queries are not available; refine count will not adapt")
	}

	return w, nil
}

// Device returns the timer device of the window's GL context.
func (w *Window) Device() *glquery.Device {
	return w.dev
}

// FramebufferSize returns the drawable size in pixels.
func (w *Window) FramebufferSize() (uint32, uint32) {
	fbW, fbH := w.window.GetFramebufferSize()
	return uint32(fbW), uint32(fbH)
}

// Attach routes window input to the driver.
func (w *Window) Attach(d *renderer.Driver) {
	w.driver = d

	w.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	w.window.SetKeyCallback(w.onKeyEvent)
	w.window.SetMouseButtonCallback(w.onMouseEvent)
	w.window.SetCursorPosCallback(w.onCursorPosEvent)
	w.window.SetScrollCallback(w.onScrollEvent)
	w.window.SetFramebufferSizeCallback(w.onFramebufferSizeEvent)
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) Present(stats renderer.FrameStats) {
	w.window.SwapBuffers()

	w.presented++
	if w.presented%titleInterval == 0 {
		w.window.SetTitle(fmt.Sprintf("%s - %s", w.title, stats))
	}
}

func (w *Window) ShouldClose() bool {
	return w.window.ShouldClose()
}

// Destroy the window and shut glfw down.
func (w *Window) Close() {
	if w.window != nil {
		w.window.Destroy()
		w.window = nil
	}
	glfw.Terminate()
}

func (w *Window) onKeyEvent(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.window.SetShouldClose(true)
		return
	}
	if w.driver == nil {
		return
	}

	var k renderer.Key
	switch key {
	case glfw.KeyW:
		k = renderer.KeyForward
	case glfw.KeyS:
		k = renderer.KeyBackward
	case glfw.KeyA:
		k = renderer.KeyLeft
	case glfw.KeyD:
		k = renderer.KeyRight
	case glfw.KeyQ:
		k = renderer.KeyFocus
	default:
		return
	}

	switch action {
	case glfw.Press:
		w.driver.KeyDown(k)
	case glfw.Release:
		w.driver.KeyUp(k)
	}
}

func (w *Window) onMouseEvent(win *glfw.Window, button glfw.MouseButton, action glfw.Action, mod glfw.ModifierKey) {
	if button != glfw.MouseButtonLeft || w.driver == nil {
		return
	}

	if action == glfw.Press {
		xPos, yPos := win.GetCursorPos()
		w.lastCursorPos = types.XY(float32(xPos), float32(yPos))
		w.driver.BeginLook()
	} else {
		w.driver.EndLook()
	}
}

func (w *Window) onCursorPosEvent(_ *glfw.Window, xPos, yPos float64) {
	newPos := types.XY(float32(xPos), float32(yPos))
	delta := newPos.Sub(w.lastCursorPos)
	w.lastCursorPos = newPos

	if w.driver != nil {
		w.driver.Look(delta[0], delta[1])
	}
}

func (w *Window) onScrollEvent(_ *glfw.Window, xOff, yOff float64) {
	if w.driver == nil {
		return
	}

	w.aperture += float32(yOff) * apertureStep
	if w.aperture < 0 {
		w.aperture = 0
	}
	w.driver.SetAperture(w.aperture)
}

func (w *Window) onFramebufferSizeEvent(_ *glfw.Window, width, height int) {
	if w.driver == nil || width <= 0 || height <= 0 {
		return
	}
	w.driver.Resize(uint32(width), uint32(height))
}

// ProbeContext creates a hidden window with an OpenGL 3.3 core context and
// returns the implementation details of that context.
func ProbeContext() (glquery.Info, error) {
	if err := glfw.Init(); err != nil {
		return glquery.Info{}, fmt.Errorf("failed to initialize glfw: %s", err.Error())
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	window, err := glfw.CreateWindow(1, 1, "equinox-probe", nil, nil)
	if err != nil {
		return glquery.Info{}, fmt.Errorf("could not create opengl context: %s", err.Error())
	}
	defer window.Destroy()
	window.MakeContextCurrent()

	if err = gl.Init(); err != nil {
		return glquery.Info{}, fmt.Errorf("could not init opengl: %s", err.Error())
	}
	return glquery.Probe(), nil
}
