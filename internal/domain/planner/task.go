package planner

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const DateLayout = "2006-01-02"

type Task struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_task_user_date,priority:1"`
	Title     string         `gorm:"not null;size:100"`
	Date      datatypes.Date `gorm:"not null;index:idx_task_user_date,priority:2"`
	Completed bool           `gorm:"not null;default:false"`
	CreatedAt time.Time      `gorm:"not null"`
}

func (Task) TableName() string { return "task" }

func (t *Task) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (t Task) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID        uuid.UUID `json:"id"`
		Title     string    `json:"title"`
		Date      string    `json:"date"`
		Completed bool      `json:"completed"`
		CreatedAt time.Time `json:"created_at"`
	}{t.ID, t.Title, time.Time(t.Date).Format(DateLayout), t.Completed, t.CreatedAt})
}
