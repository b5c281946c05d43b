package dsl

import (
	"log/slog"

	"github.com/aretw0/simchain/internal/logging"
	"github.com/aretw0/simchain/pkg/activities"
	"github.com/aretw0/simchain/pkg/chain"
	"github.com/aretw0/simchain/pkg/domain"
	"github.com/aretw0/simchain/pkg/param"
)

// Builder manages the trajectory construction.
type Builder struct {
	traj   *chain.Trajectory
	last   domain.Activity
	logger *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger handed to Log steps.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// New creates a new trajectory builder.
func New(name string, opts ...Option) *Builder {
	b := &Builder{
		traj:   chain.New(name),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Add appends an arbitrary step.
func (b *Builder) Add(a domain.Activity) *Builder {
	b.traj.Append(a)
	b.last = a
	return b
}

// Timeout appends a Timeout step.
func (b *Builder) Timeout(delay param.Param[float64]) *Builder {
	return b.Add(activities.NewTimeout(delay))
}

// SetAttribute appends a SetAttribute step with constant keys and values. Missing
// attributes start from zero.
func (b *Builder) SetAttribute(keys []string, values []float64, mod rune) *Builder {
	return b.Add(activities.NewSetAttribute(param.Const(keys), param.Const(values), mod, 0))
}

// SetAttributeParam appends a SetAttribute step with arbitrary parameters.
func (b *Builder) SetAttributeParam(keys param.Param[[]string], values param.Param[[]float64], mod rune, init float64) *Builder {
	return b.Add(activities.NewSetAttribute(keys, values, mod, init))
}

// Log appends a Log step using the builder logger.
func (b *Builder) Log(message param.Param[string], level slog.Level) *Builder {
	return b.Add(activities.NewLog(message, level, b.logger))
}

// Rollback appends a Rollback going amount steps back.
func (b *Builder) Rollback(amount, times int) *Builder {
	return b.Add(activities.NewRollback(amount, times))
}

// RollbackTo appends a Rollback going back to the nearest previous step tagged target.
func (b *Builder) RollbackTo(target string, times int) *Builder {
	return b.Add(activities.NewRollbackTo(target, times))
}

// RollbackIf appends a Rollback driven by check instead of a repetition count.
func (b *Builder) RollbackIf(amount int, check param.Param[bool]) *Builder {
	r := activities.NewRollback(amount, activities.Infinite)
	r.Check = check
	return b.Add(r)
}

// Join appends clones of every step of other.
func (b *Builder) Join(other *chain.Trajectory) *Builder {
	b.traj.Join(other)
	b.last = b.traj.Tail()
	return b
}

// Tag labels the most recently added step.
func (b *Builder) Tag(tag string) *Builder {
	if b.last != nil {
		b.last.Node().Tag = tag
	}
	return b
}

// Priority sets the scheduling priority of the most recently added step.
func (b *Builder) Priority(p int) *Builder {
	if b.last != nil {
		b.last.Node().Priority = p
	}
	return b
}

// Count sets the repetition multiplicity of the most recently added step.
func (b *Builder) Count(n int) *Builder {
	if b.last != nil {
		b.last.Node().Count = n
	}
	return b
}

// Build returns the trajectory. The builder keeps appending to the same trajectory if
// used afterwards.
func (b *Builder) Build() *chain.Trajectory {
	return b.traj
}
