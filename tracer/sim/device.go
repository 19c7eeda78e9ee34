package sim

import (
	"time"

	"github.com/TomCrypto/equinox/timer"
)

type query struct {
	start     time.Duration
	elapsed   time.Duration
	submitted int
	ended     bool
}

// Device simulates a GPU with elapsed time queries. Work is accounted with
// Spend and query results become available once a configurable number of
// later queries have been submitted.
type Device struct {
	latency     int
	unsupported bool
	lost        bool
	disjoint    bool

	gpuTime   time.Duration
	frameTime time.Duration
	submitted int

	nextId  timer.Query
	queries map[timer.Query]*query
	active  *query

	created int
}

// Create a device whose query results become readable after latency
// further queries have been submitted.
func NewDevice(latency int) *Device {
	if latency < 0 {
		latency = 0
	}
	return &Device{
		latency: latency,
		queries: make(map[timer.Query]*query),
	}
}

// Disable or enable elapsed time query support.
func (d *Device) SetSupported(supported bool) {
	d.unsupported = !supported
}

// Spend simulates dt of GPU work.
func (d *Device) Spend(dt time.Duration) {
	d.gpuTime += dt
	d.frameTime += dt
}

// TakeFrameTime returns the GPU time spent since the last call.
func (d *Device) TakeFrameTime() time.Duration {
	dt := d.frameTime
	d.frameTime = 0
	return dt
}

// InjectDisjoint raises the disjoint flag, invalidating in-flight results
// until it is read.
func (d *Device) InjectDisjoint() {
	d.disjoint = true
}

// LoseContext invalidates every query object.
func (d *Device) LoseContext() {
	d.lost = true
	d.queries = make(map[timer.Query]*query)
	d.active = nil
}

// RestoreContext makes the device usable again.
func (d *Device) RestoreContext() {
	d.lost = false
}

// The number of query objects allocated over the device lifetime.
func (d *Device) Created() int {
	return d.created
}

// The number of live query objects.
func (d *Device) Live() int {
	return len(d.queries)
}

func (d *Device) Supported() bool {
	return !d.unsupported
}

func (d *Device) ContextLost() bool {
	return d.lost
}

func (d *Device) CreateQuery() (timer.Query, bool) {
	if d.lost || d.unsupported {
		return 0, false
	}

	d.nextId++
	d.queries[d.nextId] = &query{}
	d.created++
	return d.nextId, true
}

func (d *Device) DeleteQuery(q timer.Query) {
	delete(d.queries, q)
}

func (d *Device) BeginQuery(q timer.Query) {
	if qs, ok := d.queries[q]; ok {
		qs.start = d.gpuTime
		qs.ended = false
		d.active = qs
	}
}

func (d *Device) EndQuery() {
	if d.active == nil {
		return
	}

	d.submitted++
	d.active.elapsed = d.gpuTime - d.active.start
	d.active.submitted = d.submitted
	d.active.ended = true
	d.active = nil
}

func (d *Device) ResultAvailable(q timer.Query) bool {
	qs, ok := d.queries[q]
	if !ok || !qs.ended {
		return false
	}
	return d.submitted-qs.submitted >= d.latency
}

func (d *Device) Result(q timer.Query) uint64 {
	if qs, ok := d.queries[q]; ok {
		return uint64(qs.elapsed)
	}
	return 0
}

func (d *Device) Disjoint() bool {
	disjoint := d.disjoint
	d.disjoint = false
	return disjoint
}
