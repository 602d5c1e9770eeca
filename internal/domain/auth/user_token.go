package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserToken is an issued access token. Deleting the row revokes the token
// even though its JWT signature is still valid.
type UserToken struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	AccessToken string    `gorm:"uniqueIndex;not null;column:access_token" json:"-"`
	ExpiresAt   time.Time `gorm:"not null;index;column:expires_at" json:"expires_at"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

func (UserToken) TableName() string { return "user_token" }

func (t *UserToken) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (t *UserToken) Expired(now time.Time) bool {
	return t == nil || !now.Before(t.ExpiresAt)
}
