package reflection

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Question struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Text      string    `gorm:"not null;uniqueIndex;size:255" json:"text"`
	CreatedAt time.Time `gorm:"not null" json:"-"`
}

func (Question) TableName() string { return "question" }

func (q *Question) BeforeCreate(*gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// UserResponse is a user's answer to a reflection question.
type UserResponse struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_response_user_ts,priority:1" json:"-"`
	QuestionID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"question_id"`
	Response    string     `gorm:"type:text;not null" json:"response"`
	Timestamp   time.Time  `gorm:"not null;index:idx_response_user_ts,priority:2" json:"timestamp"`
	MoodEntryID *uuid.UUID `gorm:"type:uuid" json:"mood_entry_id,omitempty"`
}

func (UserResponse) TableName() string { return "user_response" }

func (r *UserResponse) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now().UTC()
	}
	return nil
}
