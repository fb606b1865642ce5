// Package marker persists the build generation marker file.
package marker

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.trai.ch/regen/internal/core/domain"
	"go.trai.ch/regen/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

var _ ports.GenerationStore = (*Store)(nil)

// Store keeps the generation marker in a small JSON file under the
// build output directory. An external live-reload notifier reads the
// file, so its shape must stay stable.
type Store struct {
	path string
	now  func() time.Time

	mu sync.Mutex
}

// NewStore creates a store writing the marker at the given path.
func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Current reads the last persisted generation. An absent or unparsable
// marker counts as generation zero.
func (s *Store) Current() domain.Generation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Bump increments the generation and writes it back. The write goes
// through a temp file and rename so the external reader never sees a
// torn marker.
func (s *Store) Bump() (domain.Generation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.load().Next(s.now())

	data, err := json.Marshal(next)
	if err != nil {
		return domain.Generation{}, zerr.Wrap(err, "failed to encode generation marker")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), dirPerm); err != nil {
		return domain.Generation{}, zerr.Wrap(err, "failed to create marker directory")
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".generation-*")
	if err != nil {
		return domain.Generation{}, zerr.Wrap(err, "failed to create marker temp file")
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return domain.Generation{}, zerr.Wrap(err, "failed to write generation marker")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return domain.Generation{}, zerr.Wrap(err, "failed to close marker temp file")
	}
	if err := os.Chmod(tmp.Name(), filePerm); err != nil {
		_ = os.Remove(tmp.Name())
		return domain.Generation{}, zerr.Wrap(err, "failed to set marker permissions")
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return domain.Generation{}, zerr.Wrap(err, "failed to replace generation marker")
	}
	return next, nil
}

func (s *Store) load() domain.Generation {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return domain.Generation{}
	}
	var gen domain.Generation
	if err := json.Unmarshal(data, &gen); err != nil {
		return domain.Generation{}
	}
	return gen
}
