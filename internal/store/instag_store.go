package store

import (
	"path/filepath"
	"sync"

	"otrctx/internal/domain"
)

const instagFilename = "instags.json"

// InstanceTagFileStore persists our own instance tags to disk.
type InstanceTagFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewInstanceTagFileStore returns an InstanceTagFileStore rooted at dir.
func NewInstanceTagFileStore(dir string) *InstanceTagFileStore {
	return &InstanceTagFileStore{dir: dir}
}

// SaveInstanceTags replaces the stored table with tags.
func (s *InstanceTagFileStore) SaveInstanceTags(tags []domain.InstanceTagRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tags == nil {
		tags = []domain.InstanceTagRecord{}
	}
	path := filepath.Join(s.dir, instagFilename)
	return writeJSON(path, tags, 0o600)
}

// LoadInstanceTags returns the stored table; a missing file yields no tags.
func (s *InstanceTagFileStore) LoadInstanceTags() ([]domain.InstanceTagRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, instagFilename)
	var tags []domain.InstanceTagRecord
	if err := readJSON(path, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// Compile-time assertion that InstanceTagFileStore implements domain.InstanceTagPersister.
var _ domain.InstanceTagPersister = (*InstanceTagFileStore)(nil)
