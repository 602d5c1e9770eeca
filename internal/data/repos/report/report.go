package report

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/mindwell-backend/internal/data/dberr"
	types "github.com/yungbote/mindwell-backend/internal/domain"
	"github.com/yungbote/mindwell-backend/internal/platform/logger"
)

type ReportRepo interface {
	Create(ctx context.Context, tx *gorm.DB, r *types.Report) (*types.Report, error)
	GetForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, filename string) (*types.Report, error)
	GetByFilename(ctx context.Context, tx *gorm.DB, filename string) (*types.Report, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Report, error)
	ListByUsers(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.Report, error)
}

type reportRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReportRepo(db *gorm.DB, baseLog *logger.Logger) ReportRepo {
	return &reportRepo{db: db, log: baseLog.With("repo", "ReportRepo")}
}

func (rr *reportRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return rr.db
}

func (rr *reportRepo) Create(ctx context.Context, tx *gorm.DB, r *types.Report) (*types.Report, error) {
	if err := rr.conn(tx).WithContext(ctx).Create(r).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return r, nil
}

func (rr *reportRepo) GetForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, filename string) (*types.Report, error) {
	var r types.Report
	err := rr.conn(tx).WithContext(ctx).
		Where("user_id = ? AND filename = ?", userID, filename).
		First(&r).Error
	if err != nil {
		return nil, dberr.Translate(err)
	}
	return &r, nil
}

func (rr *reportRepo) GetByFilename(ctx context.Context, tx *gorm.DB, filename string) (*types.Report, error) {
	var r types.Report
	if err := rr.conn(tx).WithContext(ctx).Where("filename = ?", filename).First(&r).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return &r, nil
}

func (rr *reportRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Report, error) {
	var out []*types.Report
	err := rr.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (rr *reportRepo) ListByUsers(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.Report, error) {
	var out []*types.Report
	if len(userIDs) == 0 {
		return out, nil
	}
	err := rr.conn(tx).WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}
