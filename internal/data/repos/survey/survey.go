package survey

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/mindwell-backend/internal/data/dberr"
	types "github.com/yungbote/mindwell-backend/internal/domain"
	"github.com/yungbote/mindwell-backend/internal/platform/logger"
)

type SurveyRepo interface {
	Create(ctx context.Context, tx *gorm.DB, s *types.Survey) (*types.Survey, error)
	Save(ctx context.Context, tx *gorm.DB, s *types.Survey) (*types.Survey, error)
	GetByDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date datatypes.Date) (*types.Survey, error)
	// ListSince returns surveys dated on or after since, oldest first.
	ListSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since datatypes.Date) ([]*types.Survey, error)
	CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
	CountSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since datatypes.Date) (int64, error)
}

type surveyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSurveyRepo(db *gorm.DB, baseLog *logger.Logger) SurveyRepo {
	return &surveyRepo{db: db, log: baseLog.With("repo", "SurveyRepo")}
}

func (r *surveyRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *surveyRepo) Create(ctx context.Context, tx *gorm.DB, s *types.Survey) (*types.Survey, error) {
	if err := r.conn(tx).WithContext(ctx).Create(s).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return s, nil
}

func (r *surveyRepo) Save(ctx context.Context, tx *gorm.DB, s *types.Survey) (*types.Survey, error) {
	if err := r.conn(tx).WithContext(ctx).Save(s).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return s, nil
}

func (r *surveyRepo) GetByDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date datatypes.Date) (*types.Survey, error) {
	var s types.Survey
	err := r.conn(tx).WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&s).Error
	if err != nil {
		return nil, dberr.Translate(err)
	}
	return &s, nil
}

func (r *surveyRepo) ListSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since datatypes.Date) ([]*types.Survey, error) {
	var out []*types.Survey
	err := r.conn(tx).WithContext(ctx).
		Where("user_id = ? AND date >= ?", userID, since).
		Order("date ASC").
		Find(&out).Error
	return out, err
}

func (r *surveyRepo) CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	var n int64
	err := r.conn(tx).WithContext(ctx).Model(&types.Survey{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}

func (r *surveyRepo) CountSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since datatypes.Date) (int64, error) {
	var n int64
	err := r.conn(tx).WithContext(ctx).
		Model(&types.Survey{}).
		Where("user_id = ? AND date >= ?", userID, since).
		Count(&n).Error
	return n, err
}
