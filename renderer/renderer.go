package renderer

import "context"

type Renderer interface {
	// Render a single frame.
	Frame() error

	// Render frames until the host asks to close or the context is
	// cancelled.
	Run(ctx context.Context, host Host) error

	// Shutdown renderer and the attached tracer.
	Close()

	// Get render statistics.
	Stats() FrameStats
}

// Host is the environment that paces frames and delivers input events.
type Host interface {
	// Deliver pending input events to the renderer.
	PollEvents()

	// Display the frame that was just rendered.
	Present(FrameStats)

	// ShouldClose reports whether the render loop should stop.
	ShouldClose() bool
}
