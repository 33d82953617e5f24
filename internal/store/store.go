// Package store persists named JSON documents. Each document is an ordered
// array that is always read and written as a whole; there is no partial
// update, index or lock spanning a read-modify-write cycle.
package store

import (
	"context"
	"errors"
)

// DocumentID names a persisted collection.
type DocumentID string

const (
	Customers     DocumentID = "customers"
	Profile       DocumentID = "profile"
	Notifications DocumentID = "notifications"
)

var (
	// ErrRead means the document could not be fetched from the backend.
	ErrRead = errors.New("read document")
	// ErrMissing accompanies ErrRead when the document was never written.
	ErrMissing = errors.New("document does not exist")
	// ErrParse means the document content is not the expected JSON array.
	ErrParse = errors.New("parse document")
	// ErrWrite means the document could not be replaced.
	ErrWrite = errors.New("write document")
)

// Store is the raw backend: whole-document bytes in, whole-document bytes out.
type Store interface {
	Read(ctx context.Context, doc DocumentID) ([]byte, error)
	Write(ctx context.Context, doc DocumentID, data []byte) error
	Ping(ctx context.Context) error
}
