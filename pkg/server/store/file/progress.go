package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/recallkit/recallkit/pkg/fsutil"
	"github.com/recallkit/recallkit/pkg/server/store"
)

// Ensure ProgressStore implements the store interfaces
var (
	_ store.ProgressStore = (*ProgressStore)(nil)
	_ store.HealthStore   = (*ProgressStore)(nil)
)

// ProgressStore implements store.ProgressStore on top of a directory
type ProgressStore struct {
	dir string
}

// NewProgressStore creates a ProgressStore rooted at dir, creating the
// directory if needed.
func NewProgressStore(dir string) (*ProgressStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir %s: %w", dir, err)
	}
	return &ProgressStore{dir: dir}, nil
}

func (s *ProgressStore) pathFor(profile string) (string, error) {
	if err := store.ValidateProfile(profile); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, profile+".json"), nil
}

// GetProgress reads a profile's document
func (s *ProgressStore) GetProgress(profile string) (store.Document, error) {
	p, err := s.pathFor(profile)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return store.Document{}, nil
		}
		return nil, fmt.Errorf("failed to read progress for %s: %w", profile, err)
	}

	doc, err := store.DecodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", store.ErrCorruptProgress, profile)
	}
	return doc, nil
}

// PutProgress atomically replaces a profile's document
func (s *ProgressStore) PutProgress(profile string, doc store.Document) error {
	p, err := s.pathFor(profile)
	if err != nil {
		return err
	}
	if doc == nil {
		doc = store.Document{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode progress for %s: %w", profile, err)
	}
	return fsutil.WriteFileAtomic(p, data, 0o644)
}

// DeleteProgress removes a profile's document
func (s *ProgressStore) DeleteProgress(profile string) error {
	p, err := s.pathFor(profile)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete progress for %s: %w", profile, err)
	}
	return nil
}

// CheckConnectivity verifies the data directory is still a directory
func (s *ProgressStore) CheckConnectivity() error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", s.dir)
	}
	return nil
}
