package timer

// Query is an opaque handle to a device timer query object.
type Query uint32

// Device is implemented by graphics backends that can measure the GPU time
// spent between a BeginQuery and EndQuery pair. Results are produced
// asynchronously and must be polled with ResultAvailable.
type Device interface {
	// Supported reports whether elapsed time queries are available.
	Supported() bool

	// ContextLost reports whether the underlying context has been lost.
	// Query handles created before a loss are invalid.
	ContextLost() bool

	// Allocate a new query object. The second return value is false if
	// the device could not allocate one.
	CreateQuery() (Query, bool)

	// Release a query object.
	DeleteQuery(Query)

	// Start measuring elapsed time into the given query.
	BeginQuery(Query)

	// Stop the currently active measurement.
	EndQuery()

	// ResultAvailable reports whether the result of a submitted query can
	// be read without stalling.
	ResultAvailable(Query) bool

	// Result returns the elapsed time recorded by a query in nanoseconds.
	Result(Query) uint64

	// Disjoint reports whether an event that invalidates in-flight timing
	// results has occurred since the last call. Reading the flag clears it.
	Disjoint() bool
}
