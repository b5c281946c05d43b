package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/aretw0/simchain/internal/logging"
	"github.com/aretw0/simchain/internal/runtime"
	"github.com/aretw0/simchain/pkg/domain"
	"github.com/aretw0/simchain/pkg/dsl"
	"github.com/aretw0/simchain/pkg/observability"
	"github.com/aretw0/simchain/pkg/param"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_CountsVisits(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	traj := dsl.New("visits").
		Timeout(param.Const(1.0)).Tag("wait").
		Rollback(1, 2).
		Build()

	sim := runtime.NewSimulator(runtime.WithLifecycleHooks(m.Hooks()))
	require.NoError(t, sim.Generate("a", traj, 2, param.Const(0.0)))
	require.NoError(t, sim.Run(context.Background(), 0))

	assert.Equal(t, 6.0, testutil.ToFloat64(m.Visits.WithLabelValues("Timeout", "wait")))
	assert.Equal(t, 6.0, testutil.ToFloat64(m.Visits.WithLabelValues("Rollback", "")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Arrivals.WithLabelValues("true")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.Cost))
}

func TestMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	_, err = observability.NewMetrics(reg)
	assert.Error(t, err)
}

func TestChain_FansOut(t *testing.T) {
	var first, second int
	count := func(n *int) domain.LifecycleHooks {
		return domain.LifecycleHooks{
			OnActivityEnter: func(context.Context, *domain.ActivityEvent) { *n++ },
		}
	}

	hooks := observability.Chain(count(&first), domain.LifecycleHooks{}, count(&second))
	hooks.OnActivityEnter(context.Background(), &domain.ActivityEvent{})
	hooks.OnActivityLeave(context.Background(), &domain.ActivityEvent{})
	hooks.OnArrivalFinish(context.Background(), &domain.ArrivalRecord{})

	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	hooks := observability.LogHooks(logging.NewWithWriter(&buf, slog.LevelDebug))

	sim := runtime.NewSimulator(runtime.WithLifecycleHooks(hooks))
	_, err := sim.Spawn("p0", dsl.New("log").Timeout(param.Const(2.0)).Build(), 0)
	require.NoError(t, err)
	require.NoError(t, sim.Run(context.Background(), 0))

	out := buf.String()
	assert.Contains(t, out, "msg=activity_enter arrival=p0 activity=Timeout")
	assert.Contains(t, out, "msg=activity_leave arrival=p0 activity=Timeout cost=2")
	assert.Contains(t, out, "msg=arrival_finish arrival=p0 end=2 finished=true")
}
