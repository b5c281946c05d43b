package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/simchain/pkg/domain"
)

// LogHooks returns lifecycle hooks writing one debug line per event.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnActivityEnter: func(ctx context.Context, e *domain.ActivityEvent) {
			logger.DebugContext(ctx, string(e.Type),
				"arrival", e.Arrival,
				"activity", e.Activity,
				"time", e.Time,
			)
		},
		OnActivityLeave: func(ctx context.Context, e *domain.ActivityEvent) {
			logger.DebugContext(ctx, string(e.Type),
				"arrival", e.Arrival,
				"activity", e.Activity,
				"cost", e.Cost,
			)
		},
		OnArrivalFinish: func(ctx context.Context, r *domain.ArrivalRecord) {
			logger.DebugContext(ctx, string(domain.EventArrivalFinish),
				"arrival", r.Name,
				"end", r.EndTime,
				"finished", r.Finished,
			)
		},
	}
}

// Chain merges several hook sets. Each event reaches every set in order.
func Chain(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnActivityEnter: func(ctx context.Context, e *domain.ActivityEvent) {
			for _, h := range sets {
				if h.OnActivityEnter != nil {
					h.OnActivityEnter(ctx, e)
				}
			}
		},
		OnActivityLeave: func(ctx context.Context, e *domain.ActivityEvent) {
			for _, h := range sets {
				if h.OnActivityLeave != nil {
					h.OnActivityLeave(ctx, e)
				}
			}
		},
		OnArrivalFinish: func(ctx context.Context, r *domain.ArrivalRecord) {
			for _, h := range sets {
				if h.OnArrivalFinish != nil {
					h.OnArrivalFinish(ctx, r)
				}
			}
		},
	}
}
