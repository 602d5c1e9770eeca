package planner

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/mindwell-backend/internal/domain"
	"github.com/yungbote/mindwell-backend/internal/platform/logger"
)

type CalendarActivityRepo interface {
	Create(ctx context.Context, tx *gorm.DB, a *types.CalendarActivity) (*types.CalendarActivity, error)
	List(ctx context.Context, tx *gorm.DB, userID uuid.UUID, rng *DateRange) ([]*types.CalendarActivity, error)
}

type calendarActivityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCalendarActivityRepo(db *gorm.DB, baseLog *logger.Logger) CalendarActivityRepo {
	return &calendarActivityRepo{db: db, log: baseLog.With("repo", "CalendarActivityRepo")}
}

func (r *calendarActivityRepo) Create(ctx context.Context, tx *gorm.DB, a *types.CalendarActivity) (*types.CalendarActivity, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}

func (r *calendarActivityRepo) List(ctx context.Context, tx *gorm.DB, userID uuid.UUID, rng *DateRange) ([]*types.CalendarActivity, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	q := transaction.WithContext(ctx).Where("user_id = ?", userID)
	if rng != nil {
		q = q.Where("date >= ? AND date < ?", rng.From, rng.To)
	}
	var out []*types.CalendarActivity
	err := q.Order("date ASC").Order("created_at ASC").Find(&out).Error
	return out, err
}
