package survey

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const DateLayout = "2006-01-02"

// Survey is one daily check-in; (UserID, Date) is unique.
type Survey struct {
	ID               uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID                   `gorm:"type:uuid;not null;uniqueIndex:idx_survey_user_date,priority:1"`
	Date             datatypes.Date              `gorm:"not null;uniqueIndex:idx_survey_user_date,priority:2"`
	Activities       datatypes.JSONSlice[string] `gorm:"not null"`
	CustomActivities datatypes.JSONSlice[string]
	SocialMediaTime  string    `gorm:"not null;size:10"`
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`
}

func (Survey) TableName() string { return "survey" }

func (s *Survey) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Activities == nil {
		s.Activities = datatypes.JSONSlice[string]{}
	}
	return nil
}

func (s Survey) MarshalJSON() ([]byte, error) {
	activities := []string(s.Activities)
	if activities == nil {
		activities = []string{}
	}
	custom := []string(s.CustomActivities)
	if custom == nil {
		custom = []string{}
	}
	return json.Marshal(struct {
		ID               uuid.UUID `json:"id"`
		UserID           uuid.UUID `json:"user_id"`
		Date             string    `json:"date"`
		Activities       []string  `json:"activities"`
		CustomActivities []string  `json:"custom_activities"`
		SocialMediaTime  string    `json:"social_media_time"`
		CreatedAt        time.Time `json:"created_at"`
	}{s.ID, s.UserID, time.Time(s.Date).Format(DateLayout), activities, custom, s.SocialMediaTime, s.CreatedAt})
}

// Day normalises t to a UTC calendar date.
func Day(t time.Time) datatypes.Date {
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// ParseDay parses a YYYY-MM-DD string into a UTC calendar date.
func ParseDay(raw string) (datatypes.Date, error) {
	t, err := time.ParseInLocation(DateLayout, raw, time.UTC)
	if err != nil {
		return datatypes.Date{}, err
	}
	return datatypes.Date(t), nil
}
