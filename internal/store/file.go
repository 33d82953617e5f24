package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

var defaultFileNames = map[DocumentID]string{
	Customers:     "data.json",
	Profile:       "user.json",
	Notifications: "notification.json",
}

// FileStore keeps one JSON file per document under a directory.
type FileStore struct {
	dir    string
	names  map[DocumentID]string
	logger zerolog.Logger
}

// NewFileStore returns a store rooted at dir using the standard file names.
func NewFileStore(dir string, logger zerolog.Logger) *FileStore {
	names := make(map[DocumentID]string, len(defaultFileNames))
	for k, v := range defaultFileNames {
		names[k] = v
	}
	return &FileStore{dir: dir, names: names, logger: logger}
}

// Path returns the file backing doc.
func (s *FileStore) Path(doc DocumentID) string {
	name, ok := s.names[doc]
	if !ok {
		name = string(doc) + ".json"
	}
	return filepath.Join(s.dir, name)
}

func (s *FileStore) Read(_ context.Context, doc DocumentID) ([]byte, error) {
	data, err := os.ReadFile(s.Path(doc))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w %s: %w", ErrRead, doc, ErrMissing)
	}
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrRead, doc, err)
	}
	return data, nil
}

// Write replaces the file through a temp file and rename so readers only
// ever see a complete array. Concurrent writers still race: last rename wins.
func (s *FileStore) Write(_ context.Context, doc DocumentID, data []byte) error {
	target := s.Path(doc)
	tmp, err := os.CreateTemp(s.dir, "."+filepath.Base(target)+".*")
	if err != nil {
		return fmt.Errorf("%w %s: %v", ErrWrite, doc, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w %s: %v", ErrWrite, doc, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w %s: %v", ErrWrite, doc, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		s.logger.Warn().Err(err).Str("document", string(doc)).Msg("chmod temp document")
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w %s: %v", ErrWrite, doc, err)
	}
	return nil
}

// Ping checks that the data directory is reachable.
func (s *FileStore) Ping(_ context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", s.dir)
	}
	return nil
}
