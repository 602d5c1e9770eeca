package mood

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MinScore = 1
	MaxScore = 10
)

// ValidScore reports whether score lies in the inclusive mood scale.
func ValidScore(score int) bool { return score >= MinScore && score <= MaxScore }

// MoodEntry is one self-reported mood sample. Entries are never updated.
type MoodEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_mood_user_ts,priority:1" json:"-"`
	MoodScore int       `gorm:"not null;check:mood_score_range,mood_score >= 1 AND mood_score <= 10" json:"mood_score"`
	Note      string    `gorm:"type:text" json:"note"`
	Timestamp time.Time `gorm:"not null;index:idx_mood_user_ts,priority:2" json:"timestamp"`
}

func (MoodEntry) TableName() string { return "mood_entry" }

func (m *MoodEntry) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}
	// Postgres keeps microseconds; truncating up front keeps the
	// returned entry identical to what a later read yields.
	m.Timestamp = m.Timestamp.UTC().Truncate(time.Microsecond)
	return nil
}

// MoodAnalysis is a snapshot of a user's mood statistics over all entries.
type MoodAnalysis struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	AverageMood       float64   `gorm:"not null" json:"average_mood"`
	MoodDeviation     float64   `gorm:"not null" json:"mood_deviation"`
	AnalysisTimestamp time.Time `gorm:"not null;index" json:"analysis_timestamp"`
}

func (MoodAnalysis) TableName() string { return "mood_analysis" }

func (a *MoodAnalysis) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.AnalysisTimestamp.IsZero() {
		a.AnalysisTimestamp = time.Now().UTC()
	}
	return nil
}
