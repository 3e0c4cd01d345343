// Package diary holds the request workflows: ingesting one photo entry
// and listing stored entries back for display.
package diary

import (
	"context"
	"strings"
	"time"

	"github.com/mizukif/photo-diary/ai"
	"github.com/mizukif/photo-diary/apperr"
	"github.com/mizukif/photo-diary/models"
)

// The streak shown on the home screen is a display placeholder; it is
// not computed server-side.
const placeholderStreakDays = 365

type Analyzer interface {
	Analyze(ctx context.Context, data []byte, mimeType string) (ai.Analysis, error)
}

type BlobStore interface {
	ObjectPath(userID string, filename string) string
	Upload(ctx context.Context, path string, data []byte, contentType string) error
	PublicURL(path string) string
}

type RecordStore interface {
	Insert(ctx context.Context, entry *models.Diary) (string, error)
	ListByUser(ctx context.Context, userID string) ([]models.Diary, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}

// Service runs the workflows against injected collaborators. It holds
// no state of its own; concurrent invocations are independent.
type Service struct {
	analyzer Analyzer
	blobs    BlobStore
	records  RecordStore
}

func NewService(analyzer Analyzer, blobs BlobStore, records RecordStore) *Service {
	return &Service{analyzer: analyzer, blobs: blobs, records: records}
}

type IngestInput struct {
	UserID      string
	Filename    string
	ContentType string
	Data        []byte
}

type IngestResult struct {
	DiaryID  string
	ImageURL string
	Comment  string
}

// Ingest runs the fixed sequence validate -> analyze -> upload ->
// persist. Analysis runs before the upload, so an AI failure leaves no
// blob and no row behind. The one accepted partial state is an
// uploaded blob without a row when the insert fails; nothing
// compensates for it. No step is retried.
func (s *Service) Ingest(ctx context.Context, in IngestInput) (IngestResult, error) {
	if in.UserID == "" {
		return IngestResult{}, apperr.New(apperr.InvalidInput, "user_id is required")
	}
	if !strings.HasPrefix(in.ContentType, "image/") {
		return IngestResult{}, apperr.New(apperr.InvalidInput, "not an image file")
	}

	filename := in.Filename
	if filename == "" {
		filename = "image"
	}

	analysis, err := s.analyzer.Analyze(ctx, in.Data, in.ContentType)
	if err != nil {
		return IngestResult{}, err
	}

	path := s.blobs.ObjectPath(in.UserID, filename)
	if err := s.blobs.Upload(ctx, path, in.Data, in.ContentType); err != nil {
		return IngestResult{}, err
	}
	imageURL := s.blobs.PublicURL(path)

	entry := &models.Diary{
		UserID:   in.UserID,
		ImageURL: imageURL,
		Emotion:  analysis.Emotion,
		Comment:  analysis.Comment,
	}
	diaryID, err := s.records.Insert(ctx, entry)
	if err != nil {
		return IngestResult{}, err
	}

	return IngestResult{
		DiaryID:  diaryID,
		ImageURL: imageURL,
		Comment:  analysis.Comment,
	}, nil
}

type Photo struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	URL     string `json:"url"`
	Caption string `json:"caption"`
}

// List returns the user's entries newest first, reshaped for display.
func (s *Service) List(ctx context.Context, userID string) ([]Photo, error) {
	entries, err := s.records.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	photos := make([]Photo, 0, len(entries))
	for _, entry := range entries {
		photos = append(photos, Photo{
			ID:      entry.DiaryID,
			Date:    DatePart(entry.CreatedAt.UTC().Format(time.RFC3339)),
			URL:     entry.ImageURL,
			Caption: Caption(entry.Emotion, entry.Comment),
		})
	}
	return photos, nil
}

type Stats struct {
	PostCount  int64 `json:"post_count"`
	StreakDays int   `json:"streak_days"`
}

func (s *Service) Stats(ctx context.Context, userID string) (Stats, error) {
	count, err := s.records.CountByUser(ctx, userID)
	if err != nil {
		return Stats{}, err
	}
	return Stats{PostCount: count, StreakDays: placeholderStreakDays}, nil
}

// DatePart takes the date-only prefix of a timestamp string, cutting
// at the first 'T' or space.
func DatePart(timestamp string) string {
	if idx := strings.IndexAny(timestamp, "T "); idx >= 0 {
		return timestamp[:idx]
	}
	return timestamp
}

// Caption joins emotion and comment for display, falling back to the
// bare comment when the emotion is empty.
func Caption(emotion string, comment string) string {
	if emotion == "" {
		return comment
	}
	return emotion + " - " + comment
}
