package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/aretw0/simchain/internal/logging"
	"github.com/aretw0/simchain/pkg/domain"
)

// StreamManager fans simulation events out to SSE subscribers.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[chan<- string]struct{}
	logger      *slog.Logger
}

func NewStreamManager(logger *slog.Logger) *StreamManager {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &StreamManager{
		subscribers: make(map[chan<- string]struct{}),
		logger:      logger,
	}
}

func (sm *StreamManager) Subscribe() (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 64)
	sm.subscribers[ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if _, ok := sm.subscribers[ch]; ok {
			delete(sm.subscribers, ch)
			close(ch)
		}
	}
}

// Subscribers returns the number of connected clients.
func (sm *StreamManager) Subscribers() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers)
}

func (sm *StreamManager) Broadcast(msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers {
		select {
		case ch <- msg:
		default:
			// Drop message if channel is full (slow client)
			sm.logger.Warn("SSE: client buffer full, dropping message")
		}
	}
}

// Hooks returns lifecycle hooks broadcasting every event as JSON.
func (sm *StreamManager) Hooks() domain.LifecycleHooks {
	send := func(v any) {
		if sm.Subscribers() == 0 {
			return
		}
		data, err := json.Marshal(v)
		if err != nil {
			sm.logger.Error("SSE: encode failed", "error", err)
			return
		}
		sm.Broadcast(string(data))
	}
	return domain.LifecycleHooks{
		OnActivityEnter: func(_ context.Context, e *domain.ActivityEvent) { send(e) },
		OnActivityLeave: func(_ context.Context, e *domain.ActivityEvent) { send(e) },
		OnArrivalFinish: func(_ context.Context, r *domain.ArrivalRecord) {
			send(struct {
				Type domain.EventType `json:"type"`
				*domain.ArrivalRecord
			}{domain.EventArrivalFinish, r})
		},
	}
}
