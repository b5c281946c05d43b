package runtime

import (
	"container/heap"
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/aretw0/simchain/internal/logging"
	"github.com/aretw0/simchain/pkg/chain"
	"github.com/aretw0/simchain/pkg/domain"
	"github.com/aretw0/simchain/pkg/param"
	"github.com/aretw0/simchain/pkg/ports"
)

// Simulator is a single-threaded discrete-event loop that moves arrivals along their
// trajectories. It is not safe for concurrent use.
type Simulator struct {
	now   float64
	seq   uint64
	queue eventQueue

	active  map[*Arrival]struct{}
	hooks   domain.LifecycleHooks
	monitor ports.MonitorStore
	logger  *slog.Logger
}

// Option configures the Simulator.
type Option func(*Simulator)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Simulator) {
		s.hooks = hooks
	}
}

// WithMonitor records every arrival leaving its trajectory in store.
func WithMonitor(store ports.MonitorStore) Option {
	return func(s *Simulator) {
		s.monitor = store
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Simulator) {
		s.logger = logger
	}
}

// NewSimulator creates a simulator at time zero.
func NewSimulator(opts ...Option) *Simulator {
	s := &Simulator{
		active: make(map[*Arrival]struct{}),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the current simulated time.
func (s *Simulator) Now() float64 { return s.now }

// Active returns the number of arrivals still traversing a trajectory.
func (s *Simulator) Active() int { return len(s.active) }

// Spawn schedules a new arrival at the head of def at time at.
// The definition is shared, not copied: every arrival of def runs the same nodes.
func (s *Simulator) Spawn(name string, def ports.Definition, at float64) (*Arrival, error) {
	head, ok := chain.Head(def)
	if !ok {
		return nil, fmt.Errorf("spawn %s: %w", name, domain.ErrEmptyDefinition)
	}
	if at < s.now {
		at = s.now
	}
	a := newArrival(name, def, at)
	a.current = head
	s.active[a] = struct{}{}
	s.schedule(at, head, a)
	return a, nil
}

// Generate spawns n arrivals named prefix0..prefixN-1, separated by interarrival.
// The interarrival parameter is resolved once per arrival without an entity.
func (s *Simulator) Generate(prefix string, def ports.Definition, n int, interarrival param.Param[float64]) error {
	at := s.now
	for i := 0; i < n; i++ {
		gap, err := interarrival.Resolve(nil)
		if err != nil {
			return fmt.Errorf("interarrival: %w", err)
		}
		if gap < 0 || math.IsNaN(gap) {
			return fmt.Errorf("interarrival %v: %w", gap, domain.ErrNegativeCost)
		}
		at += gap
		if _, err := s.Spawn(fmt.Sprintf("%s%d", prefix, i), def, at); err != nil {
			return err
		}
	}
	return nil
}

// Run processes events in time order until the queue drains, the next event lies after
// until (when until > 0), or ctx is cancelled.
func (s *Simulator) Run(ctx context.Context, until float64) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.dropAbandoned()
		if len(s.queue) == 0 {
			return nil
		}
		if until > 0 && s.queue[0].time > until {
			if until > s.now {
				s.now = until
			}
			return nil
		}
		if _, err := s.Step(ctx); err != nil {
			return err
		}
	}
}

// Step processes a single event. It reports false when there was nothing to do.
func (s *Simulator) Step(ctx context.Context) (bool, error) {
	s.dropAbandoned()
	if len(s.queue) == 0 {
		return false, nil
	}
	ev := heap.Pop(&s.queue).(*event)
	if ev.time > s.now {
		s.now = ev.time
	}
	if ev.act == nil {
		return true, s.finish(ctx, ev.arrival, true)
	}
	return true, s.run(ctx, ev.arrival, ev.act)
}

// dropAbandoned discards events at the head of the queue whose arrival was abandoned
// while queued, so the head is always a live event.
func (s *Simulator) dropAbandoned() {
	for len(s.queue) > 0 && s.queue[0].arrival.done {
		heap.Pop(&s.queue)
	}
}

func (s *Simulator) run(ctx context.Context, a *Arrival, act domain.Activity) error {
	node := act.Node()
	if s.hooks.OnActivityEnter != nil {
		s.hooks.OnActivityEnter(ctx, &domain.ActivityEvent{
			Type:     domain.EventActivityEnter,
			Time:     s.now,
			Arrival:  a.name,
			Activity: node.Name(),
			Tag:      node.Tag,
		})
	}

	cost, err := act.Run(a)
	if err != nil {
		return fmt.Errorf("arrival %s at %s: %w", a.name, node.Name(), err)
	}
	if cost < 0 || math.IsNaN(cost) {
		return fmt.Errorf("arrival %s at %s returned %v: %w", a.name, node.Name(), cost, domain.ErrNegativeCost)
	}
	a.activityTime += cost

	s.logger.Debug("activity run",
		"arrival", a.name,
		"activity", node.Name(),
		"tag", node.Tag,
		"time", s.now,
		"cost", cost,
	)

	if s.hooks.OnActivityLeave != nil {
		s.hooks.OnActivityLeave(ctx, &domain.ActivityEvent{
			Type:     domain.EventActivityLeave,
			Time:     s.now,
			Arrival:  a.name,
			Activity: node.Name(),
			Tag:      node.Tag,
			Cost:     cost,
		})
	}

	var next domain.Activity
	if r, ok := act.(domain.Router); ok {
		next = r.NextFor(a)
	} else {
		next = act.Next()
	}
	a.current = next
	s.schedule(s.now+cost, next, a)
	return nil
}

// Abandon discards a before it reaches the end of its trajectory. Every node of the
// trajectory drops its bookkeeping for a, and an unfinished record is written.
func (s *Simulator) Abandon(ctx context.Context, a *Arrival) error {
	if a == nil || a.done {
		return nil
	}
	chain.Walk(a.def.Head(), func(n domain.Activity) bool {
		n.Remove(a)
		return true
	})
	s.logger.Info("arrival abandoned", "arrival", a.name, "time", s.now)
	return s.finish(ctx, a, false)
}

func (s *Simulator) finish(ctx context.Context, a *Arrival, finished bool) error {
	a.done = true
	a.current = nil
	delete(s.active, a)

	rec := domain.ArrivalRecord{
		Name:         a.name,
		StartTime:    a.start,
		EndTime:      s.now,
		ActivityTime: a.activityTime,
		Finished:     finished,
	}
	if s.hooks.OnArrivalFinish != nil {
		s.hooks.OnArrivalFinish(ctx, &rec)
	}
	if s.monitor != nil {
		if err := s.monitor.Record(ctx, rec); err != nil {
			return fmt.Errorf("failed to record arrival %s: %w", a.name, err)
		}
	}
	return nil
}

func (s *Simulator) schedule(at float64, act domain.Activity, a *Arrival) {
	priority := 0
	if act != nil {
		priority = act.Node().Priority
	}
	s.seq++
	heap.Push(&s.queue, &event{
		time:     at,
		priority: priority,
		seq:      s.seq,
		arrival:  a,
		act:      act,
	})
}
