package simchain

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/aretw0/simchain/internal/logging"
	"github.com/aretw0/simchain/internal/runtime"
	"github.com/aretw0/simchain/pkg/adapters/file"
	"github.com/aretw0/simchain/pkg/adapters/memory"
	"github.com/aretw0/simchain/pkg/chain"
	"github.com/aretw0/simchain/pkg/domain"
	"github.com/aretw0/simchain/pkg/host"
	"github.com/aretw0/simchain/pkg/observability"
	"github.com/aretw0/simchain/pkg/param"
	"github.com/aretw0/simchain/pkg/ports"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

// Engine is the high-level entry point for the simchain library.
// It owns a trajectory and runs simulations of it. Simulate calls are serialized.
type Engine struct {
	mu sync.Mutex

	traj     *chain.Trajectory
	env      *host.Env
	seed     *int64
	until    float64
	monitor  ports.MonitorStore
	hooks    domain.LifecycleHooks
	registry *prometheus.Registry
	metrics  *observability.Metrics
	logger   *slog.Logger
	sim      *runtime.Simulator
}

// Summary describes one Simulate call.
type Summary = domain.Summary

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks, in addition to the engine metrics.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMonitor sets where arrival records are kept (default: in memory).
func WithMonitor(store ports.MonitorStore) Option {
	return func(e *Engine) {
		e.monitor = store
	}
}

// WithSeed overrides the random seed declared in the definition file.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.seed = &seed
	}
}

// WithUntil stops every simulation at the given time. Zero runs to completion.
func WithUntil(until float64) Option {
	return func(e *Engine) {
		e.until = until
	}
}

// Load reads a trajectory definition file and creates an Engine around it.
// Expressions in the file may call now() to read the simulated clock.
func Load(path string, opts ...Option) (*Engine, error) {
	eng := newEngine(opts...)

	var seed int64
	if eng.seed != nil {
		seed = *eng.seed
	}
	eng.env = host.NewEnv(seed)
	eng.env.Set("now", eng.now)

	loaderOpts := []file.Option{file.WithEnv(eng.env), file.WithLogger(eng.logger)}
	if eng.seed != nil {
		loaderOpts = append(loaderOpts, file.WithSeed(*eng.seed))
	}
	traj, err := file.NewLoader(loaderOpts...).Load(path)
	if err != nil {
		return nil, err
	}
	if err := eng.attach(traj); err != nil {
		return nil, err
	}
	return eng, nil
}

// New creates an Engine around a trajectory built in code.
func New(traj *chain.Trajectory, opts ...Option) (*Engine, error) {
	eng := newEngine(opts...)
	var seed int64
	if eng.seed != nil {
		seed = *eng.seed
	}
	eng.env = host.NewEnv(seed)
	eng.env.Set("now", eng.now)
	if err := eng.attach(traj); err != nil {
		return nil, err
	}
	return eng, nil
}

func newEngine(opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.monitor == nil {
		eng.monitor = memory.NewStore()
	}
	return eng
}

func (e *Engine) attach(traj *chain.Trajectory) error {
	if traj == nil {
		return fmt.Errorf("no trajectory: %w", domain.ErrEmptyDefinition)
	}
	if traj.Len() == 0 {
		return fmt.Errorf("trajectory %q: %w", traj.Name(), domain.ErrEmptyDefinition)
	}
	e.traj = traj
	e.logger = e.logger.With("trajectory", traj.Name())

	e.registry = prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(e.registry)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}
	e.metrics = metrics
	return nil
}

func (e *Engine) now() float64 {
	if e.sim == nil {
		return 0
	}
	return e.sim.Now()
}

// Definition returns the loaded trajectory.
func (e *Engine) Definition() *chain.Trajectory { return e.traj }

// Registry returns the Prometheus registry holding the engine metrics.
func (e *Engine) Registry() *prometheus.Registry { return e.registry }

// Records returns every arrival recorded so far.
func (e *Engine) Records(ctx context.Context) ([]domain.ArrivalRecord, error) {
	return e.monitor.List(ctx)
}

// Interarrival binds an interarrival time written as a number or an expression,
// evaluated against the same variables as the definition file.
func (e *Engine) Interarrival(src string) (param.Param[float64], error) {
	if v, err := strconv.ParseFloat(src, 64); err == nil {
		return param.Const(v), nil
	}
	return host.Number(src, e.env)
}

// Simulate runs arrivals entities through a fresh copy of the trajectory, spaced by
// interarrival, and returns a summary of the run.
func (e *Engine) Simulate(ctx context.Context, arrivals int, interarrival param.Param[float64]) (Summary, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sum := Summary{RunID: uuid.NewString()}
	logger := e.logger.With("run", sum.RunID)
	var total float64
	tally := domain.LifecycleHooks{
		OnArrivalFinish: func(_ context.Context, r *domain.ArrivalRecord) {
			if r.Finished {
				sum.Finished++
				total += r.ActivityTime
			}
		},
	}

	e.sim = runtime.NewSimulator(
		runtime.WithMonitor(e.monitor),
		runtime.WithLogger(logger),
		runtime.WithLifecycleHooks(observability.Chain(
			e.metrics.Hooks(),
			observability.LogHooks(logger),
			e.hooks,
			tally,
		)),
	)

	// Bookkeeping from a previous run must not leak into this one.
	traj := e.traj.Clone()
	if err := e.sim.Generate("arrival", traj, arrivals, interarrival); err != nil {
		return sum, err
	}

	logger.Info("simulation started", "arrivals", arrivals, "until", e.until)
	if err := e.sim.Run(ctx, e.until); err != nil {
		return sum, err
	}

	sum.Arrivals = arrivals
	sum.End = e.sim.Now()
	if sum.Finished > 0 {
		sum.MeanActivityTime = total / float64(sum.Finished)
	}
	logger.Info("simulation finished",
		"finished", sum.Finished,
		"active", e.sim.Active(),
		"end", sum.End,
	)
	return sum, nil
}

// Metrics returns the collectors fed by every simulation.
func (e *Engine) Metrics() *observability.Metrics { return e.metrics }
