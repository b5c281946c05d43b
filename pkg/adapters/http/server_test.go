package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/simchain"
	"github.com/aretw0/simchain/pkg/chain"
	"github.com/aretw0/simchain/pkg/domain"
	"github.com/aretw0/simchain/pkg/dsl"
	"github.com/aretw0/simchain/pkg/param"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockEngine for failure paths
type MockEngine struct {
	SimulateErr error
	RecordsErr  error
}

func (m *MockEngine) Definition() *chain.Trajectory {
	return dsl.New("mock").Timeout(param.Const(1.0)).Build()
}

func (m *MockEngine) Interarrival(src string) (param.Param[float64], error) {
	if src == "bad" {
		return param.Param[float64]{}, errors.New("bad expression")
	}
	return param.Const(1.0), nil
}

func (m *MockEngine) Simulate(ctx context.Context, n int, gap param.Param[float64]) (domain.Summary, error) {
	return domain.Summary{Arrivals: n}, m.SimulateErr
}

func (m *MockEngine) Records(ctx context.Context) ([]domain.ArrivalRecord, error) {
	return nil, m.RecordsErr
}

func (m *MockEngine) Registry() *prometheus.Registry { return prometheus.NewRegistry() }

func newEngine(t *testing.T, opts ...simchain.Option) *simchain.Engine {
	t.Helper()
	traj := dsl.New("clinic").
		SetAttribute([]string{"visits"}, []float64{1}, '+').Tag("arrive").
		Timeout(param.Const(2.0)).
		RollbackTo("arrive", 1).
		Build()
	eng, err := simchain.New(traj, opts...)
	require.NoError(t, err)
	return eng
}

func do(h http.Handler, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestServer_Trajectory(t *testing.T) {
	h := NewHandler(newEngine(t), nil, nil)

	w := do(h, "GET", "/trajectory")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "trajectory: clinic, 3 activities")
	assert.Contains(t, w.Body.String(), "[arrive]")

	w = do(h, "GET", "/trajectory?brief=true")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "Activity:")

	w = do(h, "GET", "/trajectory/graph?highlight=arrive")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "graph TD"))
	assert.Contains(t, w.Body.String(), "class n0 highlight;")
}

func TestServer_SimulateAndRecords(t *testing.T) {
	h := NewHandler(newEngine(t), nil, nil)

	w := do(h, "POST", "/simulate?arrivals=2&interarrival=0.5")
	require.Equal(t, http.StatusOK, w.Code)

	var sum domain.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sum))
	assert.NotEmpty(t, sum.RunID)
	sum.RunID = ""
	assert.Equal(t, domain.Summary{Arrivals: 2, Finished: 2, End: 5, MeanActivityTime: 4}, sum)

	w = do(h, "GET", "/records")
	require.Equal(t, http.StatusOK, w.Code)
	var recs []domain.ArrivalRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recs))
	assert.Len(t, recs, 2)

	w = do(h, "GET", "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `simchain_arrivals_total{finished="true"} 2`)
}

func TestServer_BadRequests(t *testing.T) {
	h := NewHandler(&MockEngine{}, nil, nil)

	for _, target := range []string{
		"/simulate?arrivals=abc",
		"/simulate?arrivals=-1",
		"/simulate?arrivals=1000000000",
		"/simulate?interarrival=bad",
	} {
		w := do(h, "POST", target)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}

	w := do(h, "GET", "/simulate")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	w = do(h, "GET", "/trajectory?verbose=maybe")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoadSpec_CoversRoutes(t *testing.T) {
	doc, err := LoadSpec(context.Background())
	require.NoError(t, err)

	mux, ok := NewHandler(&MockEngine{}, nil, nil).(chi.Routes)
	require.True(t, ok)

	served := make(map[string]bool)
	require.NoError(t, chi.Walk(mux, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		served[method+" "+route] = true
		return nil
	}))

	for path, item := range doc.Paths.Map() {
		for method := range item.Operations() {
			assert.True(t, served[method+" "+path], "%s %s not served", method, path)
		}
	}

	w := do(NewHandler(&MockEngine{}, nil, nil), "GET", "/openapi.yaml")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "openapi: 3.0.3")
}

func TestServer_EngineFailures(t *testing.T) {
	h := NewHandler(&MockEngine{
		SimulateErr: errors.New("boom"),
		RecordsErr:  errors.New("store down"),
	}, nil, nil)

	w := do(h, "POST", "/simulate")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "boom")

	w = do(h, "GET", "/records")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestServer_CORS(t *testing.T) {
	h := NewHandler(&MockEngine{}, nil, nil)
	w := do(h, "OPTIONS", "/records")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSubscribeEvents(t *testing.T) {
	streams := NewStreamManager(nil)
	eng := newEngine(t, simchain.WithLifecycleHooks(streams.Hooks()))
	h := NewHandler(eng, streams, nil)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest("GET", "/events", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		h.ServeHTTP(w, req)
	}()

	require.Eventually(t, func() bool { return streams.Subscribers() == 1 }, time.Second, 5*time.Millisecond)

	_, err := eng.Simulate(context.Background(), 1, param.Const(0.0))
	require.NoError(t, err)

	// Give the handler a moment to drain the buffered events.
	time.Sleep(50 * time.Millisecond)
	cancel()
	wg.Wait()

	body := w.Body.String()
	assert.Contains(t, body, "event: ping\ndata: connected")
	assert.Contains(t, body, `"type":"activity_enter"`)
	assert.Contains(t, body, `"type":"arrival_finish"`)
	assert.Equal(t, 0, streams.Subscribers())
}

func TestStreamManager_DropsWhenFull(t *testing.T) {
	sm := NewStreamManager(nil)
	ch, cancel := sm.Subscribe()
	defer cancel()

	for i := 0; i < 100; i++ {
		sm.Broadcast("x")
	}
	assert.Len(t, ch, cap(ch))
}
