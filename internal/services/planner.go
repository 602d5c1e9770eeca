package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/mindwell-backend/internal/data/repos"
	types "github.com/yungbote/mindwell-backend/internal/domain"
	"github.com/yungbote/mindwell-backend/internal/domain/planner"
	apperrors "github.com/yungbote/mindwell-backend/internal/pkg/errors"
	"github.com/yungbote/mindwell-backend/internal/platform/apierr"
	"github.com/yungbote/mindwell-backend/internal/platform/logger"
)

const maxTaskTitle = 100

// MonthFilter narrows listings to one calendar month. The zero value lists everything.
type MonthFilter struct {
	Year  int
	Month int
}

func (f MonthFilter) dateRange() (*repos.DateRange, error) {
	if f.Year == 0 && f.Month == 0 {
		return nil, nil
	}
	if f.Year < 1 || f.Month < 1 || f.Month > 12 {
		return nil, apierr.BadRequest("invalid_month", errors.New("month must be 1-12 and year positive"))
	}
	from, to := planner.MonthRange(f.Year, time.Month(f.Month))
	return &repos.DateRange{From: from, To: to}, nil
}

// TaskPatch holds optional task edits; nil fields are left unchanged.
type TaskPatch struct {
	Title     *string
	Date      *string
	Completed *bool
}

type PlannerService interface {
	ListTasks(ctx context.Context, filter MonthFilter) ([]*types.Task, error)
	CreateTask(ctx context.Context, title, date string) (*types.Task, error)
	UpdateTask(ctx context.Context, id uuid.UUID, patch TaskPatch) (*types.Task, error)
	DeleteTask(ctx context.Context, id uuid.UUID) error
	ListActivities(ctx context.Context, filter MonthFilter) ([]*types.CalendarActivity, error)
	LogActivity(ctx context.Context, activityType, date string) (*types.CalendarActivity, error)
}

type plannerService struct {
	db           *gorm.DB
	log          *logger.Logger
	taskRepo     repos.TaskRepo
	activityRepo repos.CalendarActivityRepo
}

func NewPlannerService(db *gorm.DB, log *logger.Logger, taskRepo repos.TaskRepo, activityRepo repos.CalendarActivityRepo) PlannerService {
	return &plannerService{
		db:           db,
		log:          log.With("service", "PlannerService"),
		taskRepo:     taskRepo,
		activityRepo: activityRepo,
	}
}

func parseCalendarDate(raw string) (datatypes.Date, error) {
	t, err := time.ParseInLocation(planner.DateLayout, strings.TrimSpace(raw), time.UTC)
	if err != nil {
		return datatypes.Date{}, apierr.BadRequest("invalid_date", errors.New("date must be formatted YYYY-MM-DD"))
	}
	return datatypes.Date(t), nil
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", apierr.BadRequest("invalid_title", errors.New("title is required"))
	}
	if len([]rune(title)) > maxTaskTitle {
		return "", apierr.BadRequest("invalid_title", fmt.Errorf("title longer than %d characters", maxTaskTitle))
	}
	return title, nil
}

var errTaskNotFound = apierr.NotFound("task_not_found", errors.New("task not found"))

func (ps *plannerService) ListTasks(ctx context.Context, filter MonthFilter) ([]*types.Task, error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	rng, err := filter.dateRange()
	if err != nil {
		return nil, err
	}
	tasks, err := ps.taskRepo.List(ctx, nil, uid, rng)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if tasks == nil {
		tasks = []*types.Task{}
	}
	return tasks, nil
}

func (ps *plannerService) CreateTask(ctx context.Context, title, date string) (*types.Task, error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	title, err = validateTitle(title)
	if err != nil {
		return nil, err
	}
	d, err := parseCalendarDate(date)
	if err != nil {
		return nil, err
	}
	task := &types.Task{UserID: uid, Title: title, Date: d}
	err = ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := ps.taskRepo.Create(ctx, tx, task)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

func (ps *plannerService) UpdateTask(ctx context.Context, id uuid.UUID, patch TaskPatch) (*types.Task, error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	var out *types.Task
	err = ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, err := ps.taskRepo.GetForUser(ctx, tx, uid, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return errTaskNotFound
			}
			return err
		}
		if patch.Title != nil {
			if task.Title, err = validateTitle(*patch.Title); err != nil {
				return err
			}
		}
		if patch.Date != nil {
			if task.Date, err = parseCalendarDate(*patch.Date); err != nil {
				return err
			}
		}
		if patch.Completed != nil {
			task.Completed = *patch.Completed
		}
		out, err = ps.taskRepo.Save(ctx, tx, task)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (ps *plannerService) DeleteTask(ctx context.Context, id uuid.UUID) error {
	uid, err := callerID(ctx)
	if err != nil {
		return err
	}
	return ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := ps.taskRepo.Delete(ctx, tx, uid, id)
		if errors.Is(err, apperrors.ErrNotFound) {
			return errTaskNotFound
		}
		return err
	})
}

func (ps *plannerService) ListActivities(ctx context.Context, filter MonthFilter) ([]*types.CalendarActivity, error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	rng, err := filter.dateRange()
	if err != nil {
		return nil, err
	}
	activities, err := ps.activityRepo.List(ctx, nil, uid, rng)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	if activities == nil {
		activities = []*types.CalendarActivity{}
	}
	return activities, nil
}

func (ps *plannerService) LogActivity(ctx context.Context, activityType, date string) (*types.CalendarActivity, error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	activityType = strings.ToLower(strings.TrimSpace(activityType))
	if !planner.IsActivityType(activityType) {
		return nil, apierr.BadRequest("invalid_activity_type", fmt.Errorf("unknown activity type %q", activityType))
	}
	d, err := parseCalendarDate(date)
	if err != nil {
		return nil, err
	}
	activity := &types.CalendarActivity{UserID: uid, Type: activityType, Date: d}
	err = ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := ps.activityRepo.Create(ctx, tx, activity)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("log activity: %w", err)
	}
	return activity, nil
}
