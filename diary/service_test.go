package diary

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/mizukif/photo-diary/ai"
	"github.com/mizukif/photo-diary/apperr"
	"github.com/mizukif/photo-diary/models"
	"github.com/stretchr/testify/require"
)

type fakeAnalyzer struct {
	analysis ai.Analysis
	err      error
	calls    int
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, data []byte, mimeType string) (ai.Analysis, error) {
	f.calls++
	if f.err != nil {
		return ai.Analysis{}, f.err
	}
	return f.analysis, nil
}

type fakeBlobStore struct {
	uploadErr error
	uploaded  []string
	seq       int
}

func (f *fakeBlobStore) ObjectPath(userID string, filename string) string {
	f.seq++
	return fmt.Sprintf("%s/%d_%s", userID, f.seq, filename)
}

func (f *fakeBlobStore) Upload(ctx context.Context, path string, data []byte, contentType string) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.uploaded = append(f.uploaded, path)
	return nil
}

func (f *fakeBlobStore) PublicURL(path string) string {
	return "https://blobs.test/" + path
}

type fakeRecordStore struct {
	insertErr error
	entries   []models.Diary
	nextID    int
}

func (f *fakeRecordStore) Insert(ctx context.Context, entry *models.Diary) (string, error) {
	if f.insertErr != nil {
		return "", f.insertErr
	}
	f.nextID++
	entry.DiaryID = fmt.Sprintf("diary-%d", f.nextID)
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	f.entries = append(f.entries, *entry)
	return entry.DiaryID, nil
}

func (f *fakeRecordStore) ListByUser(ctx context.Context, userID string) ([]models.Diary, error) {
	matched := make([]models.Diary, 0)
	for _, entry := range f.entries {
		if entry.UserID == userID {
			matched = append(matched, entry)
		}
	}
	return matched, nil
}

func (f *fakeRecordStore) CountByUser(ctx context.Context, userID string) (int64, error) {
	entries, _ := f.ListByUser(ctx, userID)
	return int64(len(entries)), nil
}

func validInput() IngestInput {
	return IngestInput{
		UserID:      "user-1",
		Filename:    "sunset.jpg",
		ContentType: "image/jpeg",
		Data:        []byte("fake image bytes"),
	}
}

func TestIngestSuccess(t *testing.T) {
	t.Parallel()

	analyzer := &fakeAnalyzer{analysis: ai.Analysis{Emotion: "joy", Comment: "a warm evening"}}
	blobs := &fakeBlobStore{}
	records := &fakeRecordStore{}
	service := NewService(analyzer, blobs, records)

	result, err := service.Ingest(context.Background(), validInput())
	require.NoError(t, err)
	require.Equal(t, "diary-1", result.DiaryID)
	require.Equal(t, "a warm evening", result.Comment)
	require.NotEmpty(t, result.ImageURL)

	// the persisted row references the same URL the caller received
	require.Len(t, records.entries, 1)
	require.Equal(t, result.ImageURL, records.entries[0].ImageURL)
	require.Equal(t, "joy", records.entries[0].Emotion)
	require.Len(t, blobs.uploaded, 1)
}

func TestIngestRejectsNonImage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
	}{
		{name: "text file", contentType: "text/plain"},
		{name: "pdf", contentType: "application/pdf"},
		{name: "empty content type", contentType: ""},
		{name: "image suffix only", contentType: "video/image"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			analyzer := &fakeAnalyzer{}
			blobs := &fakeBlobStore{}
			records := &fakeRecordStore{}
			service := NewService(analyzer, blobs, records)

			in := validInput()
			in.ContentType = tc.contentType
			_, err := service.Ingest(context.Background(), in)
			require.Error(t, err)
			require.Equal(t, apperr.InvalidInput, apperr.KindOf(err))

			// rejected before any side effect
			require.Zero(t, analyzer.calls)
			require.Empty(t, blobs.uploaded)
			require.Empty(t, records.entries)
		})
	}
}

func TestIngestRequiresUserID(t *testing.T) {
	t.Parallel()

	service := NewService(&fakeAnalyzer{}, &fakeBlobStore{}, &fakeRecordStore{})

	in := validInput()
	in.UserID = ""
	_, err := service.Ingest(context.Background(), in)
	require.Equal(t, apperr.InvalidInput, apperr.KindOf(err))
}

func TestIngestAnalysisFailureHasNoSideEffects(t *testing.T) {
	t.Parallel()

	analyzer := &fakeAnalyzer{err: apperr.Wrap(apperr.AnalysisFailure, "AI analysis failed", errors.New("boom"))}
	blobs := &fakeBlobStore{}
	records := &fakeRecordStore{}
	service := NewService(analyzer, blobs, records)

	_, err := service.Ingest(context.Background(), validInput())
	require.Equal(t, apperr.AnalysisFailure, apperr.KindOf(err))
	require.Empty(t, blobs.uploaded)
	require.Empty(t, records.entries)
}

func TestIngestUploadFailureLeavesNoRow(t *testing.T) {
	t.Parallel()

	blobs := &fakeBlobStore{uploadErr: apperr.Wrap(apperr.UploadFailure, "image upload failed", errors.New("bucket down"))}
	records := &fakeRecordStore{}
	service := NewService(&fakeAnalyzer{}, blobs, records)

	_, err := service.Ingest(context.Background(), validInput())
	require.Equal(t, apperr.UploadFailure, apperr.KindOf(err))
	require.Empty(t, records.entries)
}

func TestIngestPersistFailureAfterUpload(t *testing.T) {
	t.Parallel()

	blobs := &fakeBlobStore{}
	records := &fakeRecordStore{insertErr: apperr.Wrap(apperr.PersistFailure, "failed to save diary entry", errors.New("db down"))}
	service := NewService(&fakeAnalyzer{}, blobs, records)

	_, err := service.Ingest(context.Background(), validInput())
	require.Equal(t, apperr.PersistFailure, apperr.KindOf(err))

	// the orphaned blob is the accepted partial state
	require.Len(t, blobs.uploaded, 1)
}

func TestIngestDistinctPathsForSameFilename(t *testing.T) {
	t.Parallel()

	blobs := &fakeBlobStore{}
	records := &fakeRecordStore{}
	service := NewService(&fakeAnalyzer{}, blobs, records)

	_, err := service.Ingest(context.Background(), validInput())
	require.NoError(t, err)
	_, err = service.Ingest(context.Background(), validInput())
	require.NoError(t, err)

	require.Len(t, blobs.uploaded, 2)
	require.NotEqual(t, blobs.uploaded[0], blobs.uploaded[1])
}

func TestListMapsEntriesForDisplay(t *testing.T) {
	t.Parallel()

	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	records := &fakeRecordStore{entries: []models.Diary{
		{DiaryID: "diary-7", UserID: "user-1", ImageURL: "https://blobs.test/user-1/a.jpg", Emotion: "calm", Comment: "quiet morning", CreatedAt: created},
		{DiaryID: "diary-8", UserID: "user-1", ImageURL: "https://blobs.test/user-1/b.jpg", Comment: "no emotion label", CreatedAt: created},
		{DiaryID: "diary-9", UserID: "someone-else", ImageURL: "https://blobs.test/x.jpg", Comment: "other user", CreatedAt: created},
	}}
	service := NewService(&fakeAnalyzer{}, &fakeBlobStore{}, records)

	photos, err := service.List(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, photos, 2)

	require.Equal(t, "diary-7", photos[0].ID)
	require.Equal(t, "2024-05-01", photos[0].Date)
	require.Equal(t, "https://blobs.test/user-1/a.jpg", photos[0].URL)
	require.Equal(t, "calm - quiet morning", photos[0].Caption)

	// empty emotion falls back to the bare comment
	require.Equal(t, "no emotion label", photos[1].Caption)
}

func TestStats(t *testing.T) {
	t.Parallel()

	records := &fakeRecordStore{entries: []models.Diary{
		{DiaryID: "a", UserID: "user-1"},
		{DiaryID: "b", UserID: "user-1"},
		{DiaryID: "c", UserID: "user-2"},
	}}
	service := NewService(&fakeAnalyzer{}, &fakeBlobStore{}, records)

	stats, err := service.Stats(context.Background(), "user-1")
	require.NoError(t, err)
	require.Equal(t, int64(2), stats.PostCount)
	require.Equal(t, placeholderStreakDays, stats.StreakDays)
}

func TestDatePart(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		timestamp string
		want      string
	}{
		{name: "rfc3339", timestamp: "2024-05-01T12:00:00Z", want: "2024-05-01"},
		{name: "space separated", timestamp: "2024-05-01 12:00:00", want: "2024-05-01"},
		{name: "date only", timestamp: "2024-05-01", want: "2024-05-01"},
		{name: "empty", timestamp: "", want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, DatePart(tc.timestamp))
		})
	}
}

func TestCaption(t *testing.T) {
	t.Parallel()

	require.Equal(t, "joy - a good day", Caption("joy", "a good day"))
	require.Equal(t, "a good day", Caption("", "a good day"))
}
