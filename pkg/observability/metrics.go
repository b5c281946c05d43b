package observability

import (
	"context"
	"strconv"

	"github.com/aretw0/simchain/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors fed by the simulator hooks.
type Metrics struct {
	Visits   *prometheus.CounterVec
	Cost     *prometheus.HistogramVec
	Arrivals *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// Use a fresh prometheus.NewRegistry() per engine to avoid duplicate registration.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Visits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "simchain_activity_visits_total",
				Help: "Total number of activity executions",
			},
			[]string{"activity", "tag"},
		),
		Cost: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "simchain_activity_cost",
				Help:    "Simulated time consumed by each activity execution",
				Buckets: prometheus.ExponentialBuckets(0.125, 2, 10),
			},
			[]string{"activity"},
		),
		Arrivals: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "simchain_arrivals_total",
				Help: "Arrivals that left their trajectory",
			},
			[]string{"finished"},
		),
	}
	for _, c := range []prometheus.Collector{m.Visits, m.Cost, m.Arrivals} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks recording into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnActivityEnter: func(_ context.Context, e *domain.ActivityEvent) {
			m.Visits.WithLabelValues(e.Activity, e.Tag).Inc()
		},
		OnActivityLeave: func(_ context.Context, e *domain.ActivityEvent) {
			m.Cost.WithLabelValues(e.Activity).Observe(e.Cost)
		},
		OnArrivalFinish: func(_ context.Context, r *domain.ArrivalRecord) {
			m.Arrivals.WithLabelValues(strconv.FormatBool(r.Finished)).Inc()
		},
	}
}
