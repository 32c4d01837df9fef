package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/sydlexius/lastfm-client/internal/filesystem"
)

// FileStore keeps one JSON file per entry under a directory, sharded by the
// first two hex digits of the hashed key.
type FileStore struct {
	dir string
	now func() time.Time
}

type fileEntry struct {
	ExpiresAt int64  `json:"expires_at"` // unix millis, 0 = never
	Body      []byte `json:"body"`
}

// NewFileStore creates the directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return &FileStore{dir: dir, now: time.Now}, nil
}

func (s *FileStore) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	name := hex.EncodeToString(sum[:])
	return filepath.Join(s.dir, name[:2], name+".json")
}

// Get reads the entry file. A missing file is a miss.
func (s *FileStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cache entry: %w", err)
	}

	var e fileEntry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, false, fmt.Errorf("decoding cache entry: %w", err)
	}
	if e.ExpiresAt != 0 && s.now().UnixMilli() >= e.ExpiresAt {
		return nil, false, nil
	}
	return e.Body, true, nil
}

// Put replaces the entry file atomically.
func (s *FileStore) Put(_ context.Context, key string, value []byte, ttl time.Duration) error {
	e := fileEntry{Body: value}
	if t := expiresAt(s.now(), ttl); !t.IsZero() {
		e.ExpiresAt = t.UnixMilli()
	}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}
	if err := filesystem.WriteFileAtomic(s.path(key), data, 0o600); err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}
