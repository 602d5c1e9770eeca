package conversation

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SenderUser = "user"
	SenderAI   = "ai"
)

// Conversation is a single chat turn. SentimentScore is set only on user turns.
type Conversation struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index:idx_conversation_user_ts,priority:1" json:"-"`
	Message        string    `gorm:"type:text;not null" json:"message"`
	Sender         string    `gorm:"not null;size:10" json:"sender"`
	Timestamp      time.Time `gorm:"not null;index:idx_conversation_user_ts,priority:2" json:"timestamp"`
	SentimentScore *float64  `json:"sentiment_score"`
}

func (Conversation) TableName() string { return "conversation" }

func (c *Conversation) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Timestamp.IsZero() {
		c.Timestamp = time.Now().UTC()
	}
	if c.Sender != SenderUser {
		c.SentimentScore = nil
	}
	return nil
}
