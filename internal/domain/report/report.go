package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Report records one generated document. The document bytes live in report storage.
type Report struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Filename  string    `gorm:"not null;uniqueIndex" json:"filename"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Report) TableName() string { return "report" }

func (r *Report) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (r *Report) DownloadURL() string {
	return "/api/report/download/" + r.Filename
}

// Filename derives a document name from the owner and the generation instant.
// Nanoseconds keep two generations within the same second apart.
func Filename(userID uuid.UUID, at time.Time) string {
	at = at.UTC()
	return fmt.Sprintf("report_%s_%s_%09d.pdf", userID, at.Format("20060102T150405"), at.Nanosecond())
}
