package reflection

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/mindwell-backend/internal/data/dberr"
	types "github.com/yungbote/mindwell-backend/internal/domain"
	"github.com/yungbote/mindwell-backend/internal/platform/logger"
)

type QuestionRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Question, error)
	ListExcluding(ctx context.Context, tx *gorm.DB, exclude []uuid.UUID) ([]*types.Question, error)
}

type UserResponseRepo interface {
	Create(ctx context.Context, tx *gorm.DB, r *types.UserResponse) (*types.UserResponse, error)
	// AnsweredBetween returns ids of questions the user answered in [from, to).
	AnsweredBetween(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]uuid.UUID, error)
}

type questionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuestionRepo(db *gorm.DB, baseLog *logger.Logger) QuestionRepo {
	return &questionRepo{db: db, log: baseLog.With("repo", "QuestionRepo")}
}

func (r *questionRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Question, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var q types.Question
	if err := transaction.WithContext(ctx).Where("id = ?", id).First(&q).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return &q, nil
}

func (r *questionRepo) ListExcluding(ctx context.Context, tx *gorm.DB, exclude []uuid.UUID) ([]*types.Question, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	q := transaction.WithContext(ctx).Model(&types.Question{})
	if len(exclude) > 0 {
		q = q.Where("id NOT IN ?", exclude)
	}
	var out []*types.Question
	err := q.Order("text ASC").Find(&out).Error
	return out, err
}

type userResponseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserResponseRepo(db *gorm.DB, baseLog *logger.Logger) UserResponseRepo {
	return &userResponseRepo{db: db, log: baseLog.With("repo", "UserResponseRepo")}
}

func (r *userResponseRepo) Create(ctx context.Context, tx *gorm.DB, resp *types.UserResponse) (*types.UserResponse, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(resp).Error; err != nil {
		return nil, err
	}
	return resp, nil
}

func (r *userResponseRepo) AnsweredBetween(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var ids []uuid.UUID
	err := transaction.WithContext(ctx).
		Model(&types.UserResponse{}).
		Where("user_id = ? AND timestamp >= ? AND timestamp < ?", userID, from.UTC(), to.UTC()).
		Distinct().
		Pluck("question_id", &ids).Error
	return ids, err
}
