package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Diary is one photo-diary entry. Rows are immutable after insert;
// there is no update or delete path.
type Diary struct {
	// Internal autoincrement key. Monotonic per insert, used only to
	// break ordering ties; never exposed to clients.
	ID uint `gorm:"primaryKey" json:"-"`

	// Public opaque identifier, assigned on insert.
	DiaryID string `gorm:"size:36;uniqueIndex;not null" json:"diary_id"`

	UserID   string `gorm:"size:128;not null;index" json:"user_id"`
	ImageURL string `gorm:"not null" json:"image_url"`
	Emotion  string `gorm:"size:64" json:"emotion,omitempty"`
	Comment  string `json:"comment"`

	CreatedAt time.Time `json:"created_at"`
}

func (Diary) TableName() string {
	return "posts"
}

func (d *Diary) BeforeCreate(tx *gorm.DB) error {
	if d.DiaryID == "" {
		d.DiaryID = uuid.NewString()
	}
	return nil
}
