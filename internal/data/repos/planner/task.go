package planner

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/mindwell-backend/internal/data/dberr"
	types "github.com/yungbote/mindwell-backend/internal/domain"
	"github.com/yungbote/mindwell-backend/internal/platform/logger"
)

// DateRange is a half-open [From, To) calendar range.
type DateRange struct {
	From datatypes.Date
	To   datatypes.Date
}

type TaskRepo interface {
	Create(ctx context.Context, tx *gorm.DB, t *types.Task) (*types.Task, error)
	GetForUser(ctx context.Context, tx *gorm.DB, userID, taskID uuid.UUID) (*types.Task, error)
	// List returns the user's tasks ordered by date, optionally limited to rng.
	List(ctx context.Context, tx *gorm.DB, userID uuid.UUID, rng *DateRange) ([]*types.Task, error)
	Save(ctx context.Context, tx *gorm.DB, t *types.Task) (*types.Task, error)
	Delete(ctx context.Context, tx *gorm.DB, userID, taskID uuid.UUID) error
}

type taskRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTaskRepo(db *gorm.DB, baseLog *logger.Logger) TaskRepo {
	return &taskRepo{db: db, log: baseLog.With("repo", "TaskRepo")}
}

func (r *taskRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *taskRepo) Create(ctx context.Context, tx *gorm.DB, t *types.Task) (*types.Task, error) {
	if err := r.conn(tx).WithContext(ctx).Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

func (r *taskRepo) GetForUser(ctx context.Context, tx *gorm.DB, userID, taskID uuid.UUID) (*types.Task, error) {
	var t types.Task
	if err := r.conn(tx).WithContext(ctx).Where("id = ? AND user_id = ?", taskID, userID).First(&t).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return &t, nil
}

func (r *taskRepo) List(ctx context.Context, tx *gorm.DB, userID uuid.UUID, rng *DateRange) ([]*types.Task, error) {
	q := r.conn(tx).WithContext(ctx).Where("user_id = ?", userID)
	if rng != nil {
		q = q.Where("date >= ? AND date < ?", rng.From, rng.To)
	}
	var out []*types.Task
	err := q.Order("date ASC").Order("created_at ASC").Find(&out).Error
	return out, err
}

func (r *taskRepo) Save(ctx context.Context, tx *gorm.DB, t *types.Task) (*types.Task, error) {
	if err := r.conn(tx).WithContext(ctx).Save(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

func (r *taskRepo) Delete(ctx context.Context, tx *gorm.DB, userID, taskID uuid.UUID) error {
	res := r.conn(tx).WithContext(ctx).Where("id = ? AND user_id = ?", taskID, userID).Delete(&types.Task{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return dberr.Translate(gorm.ErrRecordNotFound)
	}
	return nil
}
