package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/mindwell-backend/internal/data/repos"
	types "github.com/yungbote/mindwell-backend/internal/domain"
	apperrors "github.com/yungbote/mindwell-backend/internal/pkg/errors"
	"github.com/yungbote/mindwell-backend/internal/platform/apierr"
	"github.com/yungbote/mindwell-backend/internal/platform/logger"
)

type UserWithReports struct {
	*types.User
	Reports []*types.Report `json:"reports"`
}

type UserService interface {
	GetMe(ctx context.Context) (*types.User, error)
	// ListWithReports is admin-only.
	ListWithReports(ctx context.Context) ([]UserWithReports, error)
}

type userService struct {
	log        *logger.Logger
	userRepo   repos.UserRepo
	reportRepo repos.ReportRepo
}

func NewUserService(log *logger.Logger, userRepo repos.UserRepo, reportRepo repos.ReportRepo) UserService {
	return &userService{
		log:        log.With("service", "UserService"),
		userRepo:   userRepo,
		reportRepo: reportRepo,
	}
}

func (us *userService) GetMe(ctx context.Context) (*types.User, error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{uid})
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if len(users) == 0 {
		return nil, apierr.NotFound("user_not_found", errors.New("user not found"))
	}
	return users[0], nil
}

func (us *userService) ListWithReports(ctx context.Context) ([]UserWithReports, error) {
	if err := RequireAdmin(ctx); err != nil {
		return nil, err
	}
	users, err := us.userRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	ids := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	reports, err := us.reportRepo.ListByUsers(ctx, nil, ids)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	byUser := make(map[uuid.UUID][]*types.Report, len(users))
	for _, r := range reports {
		byUser[r.UserID] = append(byUser[r.UserID], r)
	}
	out := make([]UserWithReports, 0, len(users))
	for _, u := range users {
		rs := byUser[u.ID]
		if rs == nil {
			rs = []*types.Report{}
		}
		out = append(out, UserWithReports{User: u, Reports: rs})
	}
	return out, nil
}
