package runtime

import (
	"github.com/aretw0/simchain/pkg/domain"
	"github.com/aretw0/simchain/pkg/ports"
)

// Arrival is the entity the Simulator moves along a trajectory.
type Arrival struct {
	name         string
	start        float64
	activityTime float64
	attrs        map[string]float64

	def     ports.Definition
	current domain.Activity
	done    bool
}

func newArrival(name string, def ports.Definition, start float64) *Arrival {
	return &Arrival{
		name:  name,
		start: start,
		attrs: make(map[string]float64),
		def:   def,
	}
}

func (a *Arrival) Name() string { return a.name }

// Attribute returns the value of key, if set.
func (a *Arrival) Attribute(key string) (float64, bool) {
	v, ok := a.attrs[key]
	return v, ok
}

// SetAttribute sets key to value.
func (a *Arrival) SetAttribute(key string, value float64) {
	a.attrs[key] = value
}

// StartTime is the simulated time the arrival was spawned at.
func (a *Arrival) StartTime() float64 { return a.start }

// ActivityTime is the sum of every cost the arrival has incurred so far.
func (a *Arrival) ActivityTime() float64 { return a.activityTime }

// Current returns the step the arrival is scheduled to run next, or nil once it left.
func (a *Arrival) Current() domain.Activity { return a.current }

// Done reports whether the arrival left its trajectory.
func (a *Arrival) Done() bool { return a.done }

var _ domain.Attributed = (*Arrival)(nil)
