package gorm

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/recallkit/recallkit/pkg/model"
	"github.com/recallkit/recallkit/pkg/server/store"

	"gorm.io/gorm"
)

// Ensure ProgressStore implements store.ProgressStore
var _ store.ProgressStore = (*ProgressStore)(nil)

// ProgressStore implements store.ProgressStore using GORM
type ProgressStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewProgressStore creates a new ProgressStore
func NewProgressStore(db *gorm.DB) *ProgressStore {
	return &ProgressStore{db: db, now: time.Now}
}

// GetProgress retrieves the document of a profile
func (s *ProgressStore) GetProgress(profile string) (store.Document, error) {
	if err := store.ValidateProfile(profile); err != nil {
		return nil, err
	}

	var rec model.Progress
	tx := s.db.Where("profile = ?", profile).Take(&rec)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return store.Document{}, nil
		}
		return nil, tx.Error
	}

	doc, err := store.DecodeDocument(rec.Document)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", store.ErrCorruptProgress, profile)
	}
	return doc, nil
}

// PutProgress creates or replaces the document of a profile
func (s *ProgressStore) PutProgress(profile string, doc store.Document) error {
	if err := store.ValidateProfile(profile); err != nil {
		return err
	}
	if doc == nil {
		doc = store.Document{}
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode progress for %s: %w", profile, err)
	}

	return s.db.Exec(`
		INSERT INTO progress (profile, document, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (profile) DO UPDATE SET document = EXCLUDED.document, updated_at = EXCLUDED.updated_at
	`, profile, string(data), s.now().UTC()).Error
}

// DeleteProgress removes the document of a profile
func (s *ProgressStore) DeleteProgress(profile string) error {
	if err := store.ValidateProfile(profile); err != nil {
		return err
	}
	return s.db.Where("profile = ?", profile).Delete(&model.Progress{}).Error
}
