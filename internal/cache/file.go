package cache

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/i474232898/metar-relay/internal/common"
)

// FileStore keeps one JSON file per key under a directory. The directory is
// created on first write. Keys must be filesystem-safe; the relay only ever
// passes "metar_" + a validated station id.
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at dir. The directory does not have to
// exist yet.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Get reads the value for key. Any read failure is reported as a miss.
func (s *FileStore) Get(key string) ([]byte, bool) {
	b, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil, false
	}
	return b, true
}

// Set writes the value for key atomically, so a concurrent reader sees
// either the old record or the new one, never a torn write.
func (s *FileStore) Set(key string, value []byte) error {
	if err := common.WriteFileAtomic(s.path(key), value); err != nil {
		return fmt.Errorf("caching %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
