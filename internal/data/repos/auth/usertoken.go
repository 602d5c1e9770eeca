package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/mindwell-backend/internal/data/dberr"
	types "github.com/yungbote/mindwell-backend/internal/domain"
	"github.com/yungbote/mindwell-backend/internal/platform/logger"
)

type UserTokenRepo interface {
	Create(ctx context.Context, tx *gorm.DB, token *types.UserToken) (*types.UserToken, error)
	GetByAccessToken(ctx context.Context, tx *gorm.DB, accessToken string) (*types.UserToken, error)
	DeleteByAccessToken(ctx context.Context, tx *gorm.DB, accessToken string) error
	// DeleteExpired removes the user's tokens that expired before now.
	DeleteExpired(ctx context.Context, tx *gorm.DB, userID uuid.UUID, now time.Time) (int64, error)
}

type userTokenRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserTokenRepo(db *gorm.DB, baseLog *logger.Logger) UserTokenRepo {
	return &userTokenRepo{db: db, log: baseLog.With("repo", "UserTokenRepo")}
}

func (r *userTokenRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *userTokenRepo) Create(ctx context.Context, tx *gorm.DB, token *types.UserToken) (*types.UserToken, error) {
	if err := r.conn(tx).WithContext(ctx).Create(token).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return token, nil
}

func (r *userTokenRepo) GetByAccessToken(ctx context.Context, tx *gorm.DB, accessToken string) (*types.UserToken, error) {
	var t types.UserToken
	if err := r.conn(tx).WithContext(ctx).Where("access_token = ?", accessToken).First(&t).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return &t, nil
}

func (r *userTokenRepo) DeleteByAccessToken(ctx context.Context, tx *gorm.DB, accessToken string) error {
	return r.conn(tx).WithContext(ctx).
		Where("access_token = ?", accessToken).
		Delete(&types.UserToken{}).Error
}

func (r *userTokenRepo) DeleteExpired(ctx context.Context, tx *gorm.DB, userID uuid.UUID, now time.Time) (int64, error) {
	res := r.conn(tx).WithContext(ctx).
		Where("user_id = ? AND expires_at <= ?", userID, now).
		Delete(&types.UserToken{})
	return res.RowsAffected, res.Error
}
