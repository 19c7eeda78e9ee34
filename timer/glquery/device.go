// Package glquery implements timer.Device on top of OpenGL 3.3 elapsed time
// queries. All methods must be called from the goroutine that owns the
// current GL context.
package glquery

import (
	"github.com/TomCrypto/equinox/timer"
	"github.com/go-gl/gl/v3.3-core/gl"
)

// Info describes the GL implementation behind a context.
type Info struct {
	Vendor     string
	Renderer   string
	Version    string
	GLSL       string
	Major      int32
	Minor      int32
	TimerQuery bool
	QueryBits  int32
}

// Device issues GL_TIME_ELAPSED queries on the current context.
type Device struct {
	supported bool
}

var _ timer.Device = (*Device)(nil)

// Create a device for the current context. gl.Init must have been called.
func New() *Device {
	info := Probe()
	return &Device{supported: info.TimerQuery}
}

// Probe queries the current context for its implementation details.
func Probe() Info {
	var info Info
	gl.GetIntegerv(gl.MAJOR_VERSION, &info.Major)
	gl.GetIntegerv(gl.MINOR_VERSION, &info.Minor)
	info.Vendor = gl.GoStr(gl.GetString(gl.VENDOR))
	info.Renderer = gl.GoStr(gl.GetString(gl.RENDERER))
	info.Version = gl.GoStr(gl.GetString(gl.VERSION))
	info.GLSL = gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))

	// Elapsed time queries are core since 3.3.
	info.TimerQuery = info.Major > 3 || (info.Major == 3 && info.Minor >= 3)
	if info.TimerQuery {
		gl.GetQueryiv(gl.TIME_ELAPSED, gl.QUERY_COUNTER_BITS, &info.QueryBits)

		// A counter without any bits can never produce a result.
		info.TimerQuery = info.QueryBits > 0
	}
	return info
}

func (d *Device) Supported() bool {
	return d.supported
}

// Core 3.3 has no reset notification (GL_ARB_robustness is not part of the
// profile), so a context is never reported as lost.
func (d *Device) ContextLost() bool {
	return false
}

func (d *Device) CreateQuery() (timer.Query, bool) {
	var id uint32
	gl.GenQueries(1, &id)
	if id == 0 || gl.GetError() != gl.NO_ERROR {
		return 0, false
	}
	return timer.Query(id), true
}

func (d *Device) DeleteQuery(q timer.Query) {
	id := uint32(q)
	gl.DeleteQueries(1, &id)
}

func (d *Device) BeginQuery(q timer.Query) {
	gl.BeginQuery(gl.TIME_ELAPSED, uint32(q))
}

func (d *Device) EndQuery() {
	gl.EndQuery(gl.TIME_ELAPSED)
}

func (d *Device) ResultAvailable(q timer.Query) bool {
	var available int32
	gl.GetQueryObjectiv(uint32(q), gl.QUERY_RESULT_AVAILABLE, &available)
	return available != 0
}

func (d *Device) Result(q timer.Query) uint64 {
	var ns uint64
	gl.GetQueryObjectui64v(uint32(q), gl.QUERY_RESULT, &ns)
	return ns
}

// Desktop core profiles do not expose GPU_DISJOINT so results are never
// invalidated.
func (d *Device) Disjoint() bool {
	return false
}
