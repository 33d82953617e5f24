package store

import (
	"context"
	"fmt"
	"os"

	"magazine-crm/internal/db"

	"github.com/rs/zerolog"
)

// Backend names accepted by Open.
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Backend string
	DataDir string
	DSN     string
}

// Open builds the configured backend. The returned close func releases any
// connections and is never nil.
func Open(ctx context.Context, opts Options, logger zerolog.Logger) (Store, func(), error) {
	noop := func() {}
	switch opts.Backend {
	case BackendFile, "":
		if err := os.MkdirAll(opts.DataDir, 0o755); err != nil {
			return nil, noop, fmt.Errorf("create data dir: %w", err)
		}
		return NewFileStore(opts.DataDir, logger), noop, nil
	case BackendPostgres:
		pool, err := db.Connect(ctx, opts.DSN)
		if err != nil {
			return nil, noop, err
		}
		return NewPostgres(pool, logger), pool.Close, nil
	case BackendMemory:
		return NewMemory(), noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}
