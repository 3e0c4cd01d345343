// Package store is the relational side of persistence: inserting diary
// rows and reading them back, always scoped to one user.
package store

import (
	"context"

	"github.com/mizukif/photo-diary/apperr"
	"github.com/mizukif/photo-diary/models"
	"gorm.io/gorm"
)

type DiaryStore struct {
	db *gorm.DB
}

func NewDiaryStore(db *gorm.DB) *DiaryStore {
	return &DiaryStore{db: db}
}

// Insert persists the entry and returns its public id.
func (s *DiaryStore) Insert(ctx context.Context, entry *models.Diary) (string, error) {
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return "", apperr.Wrap(apperr.PersistFailure, "failed to save diary entry", err)
	}
	return entry.DiaryID, nil
}

// ListByUser returns the user's entries newest first. Equal timestamps
// fall back to insertion order via the monotonic primary key.
func (s *DiaryStore) ListByUser(ctx context.Context, userID string) ([]models.Diary, error) {
	entries := make([]models.Diary, 0)
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&entries).Error; err != nil {
		return nil, apperr.Wrap(apperr.PersistFailure, "failed to load diary entries", err)
	}
	return entries, nil
}

func (s *DiaryStore) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.Diary{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, apperr.Wrap(apperr.PersistFailure, "failed to count diary entries", err)
	}
	return count, nil
}
