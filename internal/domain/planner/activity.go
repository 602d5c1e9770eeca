package planner

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ActivityMeditation = "meditation"
	ActivitySteps      = "steps"
	ActivityBreathing  = "breathing"
)

var activityColors = map[string]string{
	ActivityMeditation: "green",
	ActivitySteps:      "blue",
	ActivityBreathing:  "purple",
}

func IsActivityType(t string) bool {
	_, ok := activityColors[t]
	return ok
}

// CalendarActivity is a wellbeing practice logged on a calendar day.
type CalendarActivity struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_activity_user_date,priority:1"`
	Type      string         `gorm:"not null;size:20"`
	Date      datatypes.Date `gorm:"not null;index:idx_activity_user_date,priority:2"`
	CreatedAt time.Time      `gorm:"not null"`
}

func (CalendarActivity) TableName() string { return "activity" }

func (a *CalendarActivity) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Color is the calendar colour for the activity type; unknown types are gray.
func (a CalendarActivity) Color() string {
	if c, ok := activityColors[a.Type]; ok {
		return c
	}
	return "gray"
}

func (a CalendarActivity) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID        uuid.UUID `json:"id"`
		Type      string    `json:"type"`
		Date      string    `json:"date"`
		Color     string    `json:"color"`
		CreatedAt time.Time `json:"created_at"`
	}{a.ID, a.Type, time.Time(a.Date).Format(DateLayout), a.Color(), a.CreatedAt})
}

// MonthRange returns [first day of month, first day of next month) in UTC.
func MonthRange(year int, month time.Month) (datatypes.Date, datatypes.Date) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return datatypes.Date(start), datatypes.Date(start.AddDate(0, 1, 0))
}
