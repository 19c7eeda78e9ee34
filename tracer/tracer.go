package tracer

type ChangeType uint8

const (
	// Payload: types.Vec3 holding the new unit view direction.
	CameraDirection ChangeType = iota

	// Payload: types.Vec2 holding forward and sideways displacement.
	CameraMove

	// Payload: float32 holding the new aperture radius.
	CameraAperture

	// Payload: [2]uint32 holding the new output width and height.
	FrameDimensions
)

func (ct ChangeType) String() string {
	switch ct {
	case CameraDirection:
		return "camera-direction"
	case CameraMove:
		return "camera-move"
	case CameraAperture:
		return "camera-aperture"
	case FrameDimensions:
		return "frame-dimensions"
	}
	return "unknown"
}

// A Tracer is a progressive renderer that accumulates samples across
// successive refine passes. Implementations are driven from a single
// goroutine and may submit GPU work asynchronously from each call.
type Tracer interface {
	// Get tracer id.
	Id() string

	// Append a change to the tracer's update buffer. Changes take effect
	// on the next call to Update.
	AppendChange(ChangeType, interface{})

	// Apply pending changes and synchronize scene state with the device.
	Update() error

	// Accumulate one more batch of samples.
	Refine() error

	// Convert the accumulated samples into a displayable frame.
	Render() error

	// Shutdown and cleanup tracer.
	Close()
}
