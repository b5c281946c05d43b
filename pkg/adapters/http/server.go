package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/simchain/internal/logging"
	"github.com/aretw0/simchain/internal/presentation/graph"
	"github.com/aretw0/simchain/pkg/chain"
	"github.com/aretw0/simchain/pkg/domain"
	"github.com/aretw0/simchain/pkg/param"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxArrivals caps a single /simulate request.
const maxArrivals = 100000

// Engine defines what the HTTP adapter needs from a simulation engine.
type Engine interface {
	Definition() *chain.Trajectory
	Interarrival(src string) (param.Param[float64], error)
	Simulate(ctx context.Context, arrivals int, interarrival param.Param[float64]) (domain.Summary, error)
	Records(ctx context.Context) ([]domain.ArrivalRecord, error)
	Registry() *prometheus.Registry
}

// Server serves one engine over HTTP.
type Server struct {
	Engine  Engine
	Streams *StreamManager
	Logger  *slog.Logger
}

// NewHandler creates a new HTTP handler for the engine.
// Events broadcast on streams are relayed to GET /events subscribers; streams may be nil.
func NewHandler(engine Engine, streams *StreamManager, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	if streams == nil {
		streams = NewStreamManager(logger)
	}
	s := &Server{Engine: engine, Streams: streams, Logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)
	if router, err := newRouter(context.Background()); err != nil {
		logger.Error("request validation disabled", "error", err)
	} else {
		r.Use(validateRequests(router, logger))
	}

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(swaggerHTML))
	})

	r.Get("/trajectory", s.GetTrajectory)
	r.Get("/trajectory/graph", s.GetGraph)
	r.Post("/simulate", s.Simulate)
	r.Get("/records", s.GetRecords)
	r.Get("/events", s.SubscribeEvents)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(engine.Registry(), promhttp.HandlerOpts{}))
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetTrajectory handles GET /trajectory. Query flags: verbose, brief.
func (s *Server) GetTrajectory(w http.ResponseWriter, r *http.Request) {
	var verbose, brief *bool
	if err := bindQuery(r, "verbose", &verbose); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := bindQuery(r, "brief", &brief); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	traj := s.Engine.Definition()
	if isSet(brief) {
		for _, n := range traj.Nodes() {
			n.Print(&buf, 0, isSet(verbose), true)
		}
	} else {
		traj.Print(&buf, 0, isSet(verbose))
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// GetGraph handles GET /trajectory/graph. Query: highlight=tag1,tag2.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	var highlight *string
	if err := bindQuery(r, "highlight", &highlight); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var overlay *graph.GraphOverlay
	if highlight != nil && *highlight != "" {
		overlay = &graph.GraphOverlay{Highlight: strings.Split(*highlight, ",")}
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(graph.GenerateMermaid(s.Engine.Definition(), overlay)))
}

// Simulate handles POST /simulate?arrivals=N&interarrival=expr.
func (s *Server) Simulate(w http.ResponseWriter, r *http.Request) {
	arrivals := 1
	var n *int
	if err := bindQuery(r, "arrivals", &n); err != nil || (n != nil && (*n < 0 || *n > maxArrivals)) {
		http.Error(w, fmt.Sprintf("arrivals must be an integer in [0, %d]", maxArrivals), http.StatusBadRequest)
		return
	}
	if n != nil {
		arrivals = *n
	}

	src := "1"
	var expr *string
	if err := bindQuery(r, "interarrival", &expr); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if expr != nil && *expr != "" {
		src = *expr
	}
	gap, err := s.Engine.Interarrival(src)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid interarrival: %v", err), http.StatusBadRequest)
		s.Logger.Warn("Simulate: invalid interarrival", "error", err)
		return
	}

	sum, err := s.Engine.Simulate(r.Context(), arrivals, gap)
	if err != nil {
		http.Error(w, fmt.Sprintf("Simulation error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("Simulate failed", "error", err)
		return
	}
	writeJSON(w, s.Logger, sum)
}

// GetRecords handles GET /records.
func (s *Server) GetRecords(w http.ResponseWriter, r *http.Request) {
	recs, err := s.Engine.Records(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Records error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("GetRecords failed", "error", err)
		return
	}
	writeJSON(w, s.Logger, recs)
}

// SubscribeEvents handles GET /events (SSE). Every activity event broadcast during a
// simulation is sent as one JSON data line.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.Logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe()
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.Logger.Debug("SSE client disconnected")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

// bindQuery decodes the optional form-style query parameter name into dest, a pointer
// to a pointer left nil when the parameter is absent.
func bindQuery(r *http.Request, name string, dest any) error {
	return runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest)
}

func isSet(b *bool) bool { return b != nil && *b }

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "error", err)
	}
}
