package mood

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/mindwell-backend/internal/data/dberr"
	types "github.com/yungbote/mindwell-backend/internal/domain"
	"github.com/yungbote/mindwell-backend/internal/platform/logger"
)

type MoodAnalysisRepo interface {
	Create(ctx context.Context, tx *gorm.DB, a *types.MoodAnalysis) (*types.MoodAnalysis, error)
	Latest(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.MoodAnalysis, error)
}

type moodAnalysisRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMoodAnalysisRepo(db *gorm.DB, baseLog *logger.Logger) MoodAnalysisRepo {
	return &moodAnalysisRepo{db: db, log: baseLog.With("repo", "MoodAnalysisRepo")}
}

func (r *moodAnalysisRepo) Create(ctx context.Context, tx *gorm.DB, a *types.MoodAnalysis) (*types.MoodAnalysis, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}

// Latest returns apperrors.ErrNotFound when no analysis was stored yet.
func (r *moodAnalysisRepo) Latest(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.MoodAnalysis, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var a types.MoodAnalysis
	err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("analysis_timestamp DESC").
		First(&a).Error
	if err != nil {
		return nil, dberr.Translate(err)
	}
	return &a, nil
}
