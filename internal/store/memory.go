package store

import (
	"context"
	"fmt"
	"sync"
)

// Memory is an ephemeral backend. Documents that were never written read as
// missing, like absent files.
type Memory struct {
	mu   sync.RWMutex
	docs map[DocumentID][]byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{docs: make(map[DocumentID][]byte)}
}

func (m *Memory) Read(_ context.Context, doc DocumentID) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.docs[doc]
	if !ok {
		return nil, fmt.Errorf("%w %s: %w", ErrRead, doc, ErrMissing)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *Memory) Write(_ context.Context, doc DocumentID, data []byte) error {
	buf := make([]byte, len(data))
	copy(buf, data)
	m.mu.Lock()
	m.docs[doc] = buf
	m.mu.Unlock()
	return nil
}

func (m *Memory) Ping(_ context.Context) error {
	return nil
}
