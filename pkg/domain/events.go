package domain

import "context"

// EventType defines the category of the event.
type EventType string

const (
	EventActivityEnter EventType = "activity_enter"
	EventActivityLeave EventType = "activity_leave"
	EventArrivalFinish EventType = "arrival_finish"
)

// ActivityEvent represents an entity entering or leaving a step.
// Time is simulated time, not wall clock.
type ActivityEvent struct {
	Type     EventType `json:"type"`
	Time     float64   `json:"time"`
	Arrival  string    `json:"arrival"`
	Activity string    `json:"activity"`
	Tag      string    `json:"tag,omitempty"`
	Cost     float64   `json:"cost,omitempty"` // Only set on leave
}

// LifecycleHooks defines callbacks for scheduler observability.
type LifecycleHooks struct {
	OnActivityEnter func(context.Context, *ActivityEvent)
	OnActivityLeave func(context.Context, *ActivityEvent)
	OnArrivalFinish func(context.Context, *ArrivalRecord)
}
