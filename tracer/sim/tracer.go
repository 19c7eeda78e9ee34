package sim

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/TomCrypto/equinox/tracer"
	"github.com/TomCrypto/equinox/types"
)

// Cost model for a simulated tracer.
type Costs struct {
	// Host-side time spent in Update.
	Update time.Duration

	// GPU time spent per refine and render pass.
	Refine time.Duration
	Render time.Duration

	// Relative amount of uniform noise applied to GPU costs (0.1 = ±10%).
	Jitter float64

	// Refine cost is multiplied by the output area relative to this
	// reference area when set.
	ReferenceArea uint32
}

type change struct {
	changeType tracer.ChangeType
	data       interface{}
}

// Tracer is a tracer.Tracer that does no rendering but charges the
// configured costs to a simulated device and clock.
type Tracer struct {
	id    string
	dev   *Device
	clock *Clock
	costs Costs
	rng   *rand.Rand

	pendingChanges []change

	// Scene state mirrored from applied changes.
	Direction types.Vec3
	Position  types.Vec2
	Aperture  float32
	FrameW    uint32
	FrameH    uint32

	// Pass counters.
	Updates int
	Refines int
	Renders int
}

// Create a new simulated tracer. A nil clock disables host-side cost
// accounting.
func NewTracer(id string, dev *Device, clock *Clock, costs Costs, seed int64) *Tracer {
	return &Tracer{
		id:    id,
		dev:   dev,
		clock: clock,
		costs: costs,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

func (tr *Tracer) Id() string {
	return tr.id
}

func (tr *Tracer) AppendChange(changeType tracer.ChangeType, data interface{}) {
	tr.pendingChanges = append(tr.pendingChanges, change{changeType, data})
}

// Set the cost model used for subsequent passes.
func (tr *Tracer) SetCosts(costs Costs) {
	tr.costs = costs
}

// Update applies every pending change. A change that cannot be applied does
// not prevent the others; the first error is returned.
func (tr *Tracer) Update() error {
	var err error
	for _, c := range tr.pendingChanges {
		if applyErr := tr.apply(c); applyErr != nil && err == nil {
			err = applyErr
		}
	}
	tr.pendingChanges = tr.pendingChanges[:0]

	tr.Updates++
	if tr.clock != nil {
		tr.clock.Advance(tr.costs.Update)
	}
	return err
}

func (tr *Tracer) Refine() error {
	tr.Refines++
	tr.dev.Spend(tr.jitter(tr.scaleByArea(tr.costs.Refine)))
	return nil
}

func (tr *Tracer) Render() error {
	tr.Renders++
	tr.dev.Spend(tr.jitter(tr.costs.Render))
	return nil
}

func (tr *Tracer) Close() {
	tr.pendingChanges = nil
}

func (tr *Tracer) apply(c change) error {
	var ok bool
	switch c.changeType {
	case tracer.CameraDirection:
		tr.Direction, ok = c.data.(types.Vec3)
	case tracer.CameraMove:
		var delta types.Vec2
		if delta, ok = c.data.(types.Vec2); ok {
			tr.Position = tr.Position.Add(delta)
		}
	case tracer.CameraAperture:
		tr.Aperture, ok = c.data.(float32)
	case tracer.FrameDimensions:
		var dims [2]uint32
		if dims, ok = c.data.([2]uint32); ok {
			tr.FrameW, tr.FrameH = dims[0], dims[1]
		}
	}

	if !ok {
		return fmt.Errorf("sim tracer (%s): unsupported payload %T for %s change", tr.id, c.data, c.changeType)
	}
	return nil
}

func (tr *Tracer) scaleByArea(cost time.Duration) time.Duration {
	if tr.costs.ReferenceArea == 0 || tr.FrameW == 0 || tr.FrameH == 0 {
		return cost
	}
	return time.Duration(float64(cost) * float64(tr.FrameW) * float64(tr.FrameH) / float64(tr.costs.ReferenceArea))
}

func (tr *Tracer) jitter(cost time.Duration) time.Duration {
	if tr.costs.Jitter <= 0 {
		return cost
	}
	scale := 1 + tr.costs.Jitter*(2*tr.rng.Float64()-1)
	return time.Duration(float64(cost) * scale)
}
