// Package notify fans customer change events out to live listeners and
// records them in the notifications document.
package notify

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Listener is one live connection that can receive pushed events.
type Listener interface {
	// Open reports whether the connection can still accept messages.
	Open() bool
	Send(msg []byte) error
	Close() error
}

// Hub is the registry of connected listeners.
type Hub struct {
	mu        sync.RWMutex
	listeners map[string]Listener
	logger    zerolog.Logger
}

// NewHub returns an empty registry.
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		listeners: make(map[string]Listener),
		logger:    logger,
	}
}

// Connect registers l and returns the handle used to disconnect it.
func (h *Hub) Connect(l Listener) string {
	id := uuid.NewString()
	h.mu.Lock()
	h.listeners[id] = l
	total := len(h.listeners)
	h.mu.Unlock()
	h.logger.Info().Str("listener", id).Int("total", total).Msg("listener connected")
	return id
}

// Disconnect forgets a listener. Unknown handles are ignored.
func (h *Hub) Disconnect(id string) {
	h.mu.Lock()
	_, ok := h.listeners[id]
	delete(h.listeners, id)
	total := len(h.listeners)
	h.mu.Unlock()
	if ok {
		h.logger.Info().Str("listener", id).Int("total", total).Msg("listener disconnected")
	}
}

// Count returns the number of registered listeners, open or not.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.listeners)
}

// Publish pushes one JSON copy of v to every open listener and returns how
// many accepted it. Closed listeners are skipped, not removed; removal is
// left to Disconnect. There is no queueing or replay.
func (h *Hub) Publish(v any) int {
	msg, err := json.Marshal(v)
	if err != nil {
		h.logger.Error().Err(err).Msg("encode event")
		return 0
	}

	h.mu.RLock()
	targets := make(map[string]Listener, len(h.listeners))
	for id, l := range h.listeners {
		targets[id] = l
	}
	h.mu.RUnlock()

	delivered := 0
	for id, l := range targets {
		if !l.Open() {
			continue
		}
		if err := l.Send(msg); err != nil {
			h.logger.Warn().Err(err).Str("listener", id).Msg("push event")
			continue
		}
		delivered++
	}
	return delivered
}

// Close closes and forgets every listener. Used on shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	listeners := h.listeners
	h.listeners = make(map[string]Listener)
	h.mu.Unlock()

	for id, l := range listeners {
		if err := l.Close(); err != nil {
			h.logger.Debug().Err(err).Str("listener", id).Msg("close listener")
		}
	}
}
