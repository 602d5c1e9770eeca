package mood

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/mindwell-backend/internal/data/dberr"
	types "github.com/yungbote/mindwell-backend/internal/domain"
	"github.com/yungbote/mindwell-backend/internal/platform/logger"
)

type MoodEntryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, entry *types.MoodEntry) (*types.MoodEntry, error)
	GetForUser(ctx context.Context, tx *gorm.DB, userID, entryID uuid.UUID) (*types.MoodEntry, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.MoodEntry, error)
	// ListSince returns entries with timestamp >= since, oldest first.
	ListSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) ([]*types.MoodEntry, error)
	ScoresByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]float64, error)
}

type moodEntryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMoodEntryRepo(db *gorm.DB, baseLog *logger.Logger) MoodEntryRepo {
	return &moodEntryRepo{db: db, log: baseLog.With("repo", "MoodEntryRepo")}
}

func (r *moodEntryRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *moodEntryRepo) Create(ctx context.Context, tx *gorm.DB, entry *types.MoodEntry) (*types.MoodEntry, error) {
	if err := r.conn(tx).WithContext(ctx).Create(entry).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return entry, nil
}

func (r *moodEntryRepo) GetForUser(ctx context.Context, tx *gorm.DB, userID, entryID uuid.UUID) (*types.MoodEntry, error) {
	var e types.MoodEntry
	err := r.conn(tx).WithContext(ctx).
		Where("id = ? AND user_id = ?", entryID, userID).
		First(&e).Error
	if err != nil {
		return nil, dberr.Translate(err)
	}
	return &e, nil
}

func (r *moodEntryRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.MoodEntry, error) {
	var out []*types.MoodEntry
	err := r.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Find(&out).Error
	return out, err
}

func (r *moodEntryRepo) ListSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) ([]*types.MoodEntry, error) {
	var out []*types.MoodEntry
	err := r.conn(tx).WithContext(ctx).
		Where("user_id = ? AND timestamp >= ?", userID, since.UTC()).
		Order("timestamp ASC").
		Find(&out).Error
	return out, err
}

func (r *moodEntryRepo) ScoresByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]float64, error) {
	var scores []float64
	err := r.conn(tx).WithContext(ctx).
		Model(&types.MoodEntry{}).
		Where("user_id = ?", userID).
		Order("timestamp ASC").
		Pluck("mood_score", &scores).Error
	return scores, err
}
