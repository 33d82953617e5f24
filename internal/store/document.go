package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// Document is a typed view over one named collection.
type Document[T any] struct {
	backend Store
	id      DocumentID
}

// NewDocument binds a collection of T to a backend document.
func NewDocument[T any](backend Store, id DocumentID) *Document[T] {
	return &Document[T]{backend: backend, id: id}
}

// ID returns the document name.
func (d *Document[T]) ID() DocumentID {
	return d.id
}

// Load reads and decodes the whole collection. Empty content is an empty collection.
func (d *Document[T]) Load(ctx context.Context) ([]T, error) {
	raw, err := d.backend.Read(ctx, d.id)
	if err != nil {
		return nil, err
	}
	items := []T{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrParse, d.id, err)
	}
	if items == nil {
		// literal null
		return nil, fmt.Errorf("%w %s: not an array", ErrParse, d.id)
	}
	return items, nil
}

// Save serializes the whole collection and replaces the stored document.
func (d *Document[T]) Save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("%w %s: encode: %v", ErrWrite, d.id, err)
	}
	return d.backend.Write(ctx, d.id, raw)
}
