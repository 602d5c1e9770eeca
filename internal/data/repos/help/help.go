package help

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/mindwell-backend/internal/domain"
	"github.com/yungbote/mindwell-backend/internal/platform/logger"
)

type HelpAccessRepo interface {
	Create(ctx context.Context, tx *gorm.DB, a *types.HelpAccess) (*types.HelpAccess, error)
	Count(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
	CountSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) (int64, error)
}

type helpAccessRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewHelpAccessRepo(db *gorm.DB, baseLog *logger.Logger) HelpAccessRepo {
	return &helpAccessRepo{db: db, log: baseLog.With("repo", "HelpAccessRepo")}
}

func (r *helpAccessRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *helpAccessRepo) Create(ctx context.Context, tx *gorm.DB, a *types.HelpAccess) (*types.HelpAccess, error) {
	if err := r.conn(tx).WithContext(ctx).Create(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}

func (r *helpAccessRepo) Count(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	var n int64
	err := r.conn(tx).WithContext(ctx).Model(&types.HelpAccess{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}

func (r *helpAccessRepo) CountSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) (int64, error) {
	var n int64
	err := r.conn(tx).WithContext(ctx).
		Model(&types.HelpAccess{}).
		Where("user_id = ? AND timestamp >= ?", userID, since.UTC()).
		Count(&n).Error
	return n, err
}
