package help

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HelpAccess records a visit to the help resources.
type HelpAccess struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_help_user_ts,priority:1" json:"-"`
	Timestamp time.Time `gorm:"not null;index:idx_help_user_ts,priority:2" json:"timestamp"`
}

func (HelpAccess) TableName() string { return "help_access" }

func (h *HelpAccess) BeforeCreate(*gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	if h.Timestamp.IsZero() {
		h.Timestamp = time.Now().UTC()
	}
	return nil
}
