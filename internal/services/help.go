package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/mindwell-backend/internal/data/repos"
	types "github.com/yungbote/mindwell-backend/internal/domain"
	"github.com/yungbote/mindwell-backend/internal/domain/help"
	"github.com/yungbote/mindwell-backend/internal/platform/logger"
)

const helpRecentDays = 7

type HelpPage struct {
	EmergencyContacts []help.Contact `json:"emergency_contacts"`
	OtherContacts     []help.Contact `json:"other_contacts"`
	RecentMood        *float64       `json:"recent_mood_average"`
}

type HelpStats struct {
	TotalAccesses  int64 `json:"total_accesses"`
	RecentAccesses int64 `json:"recent_accesses"`
}

type HelpService interface {
	// Visit records the access and returns the contact lists.
	Visit(ctx context.Context) (*HelpPage, error)
	Stats(ctx context.Context) (*HelpStats, error)
}

type helpService struct {
	db          *gorm.DB
	log         *logger.Logger
	accessRepo  repos.HelpAccessRepo
	moodService MoodService
	clock       clock
}

func NewHelpService(db *gorm.DB, log *logger.Logger, accessRepo repos.HelpAccessRepo, moodService MoodService) HelpService {
	return &helpService{
		db:          db,
		log:         log.With("service", "HelpService"),
		accessRepo:  accessRepo,
		moodService: moodService,
	}
}

func (hs *helpService) Visit(ctx context.Context) (*HelpPage, error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	err = hs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := hs.accessRepo.Create(ctx, tx, &types.HelpAccess{UserID: uid, Timestamp: hs.clock.now()})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("record help access: %w", err)
	}
	emergency, other, err := help.Split()
	if err != nil {
		return nil, err
	}
	recent, err := hs.moodService.RecentAverage(ctx, uid)
	if err != nil {
		return nil, err
	}
	return &HelpPage{EmergencyContacts: emergency, OtherContacts: other, RecentMood: recent}, nil
}

func (hs *helpService) Stats(ctx context.Context) (*HelpStats, error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	total, err := hs.accessRepo.Count(ctx, nil, uid)
	if err != nil {
		return nil, fmt.Errorf("count help accesses: %w", err)
	}
	recent, err := hs.accessRepo.CountSince(ctx, nil, uid, hs.clock.now().AddDate(0, 0, -helpRecentDays))
	if err != nil {
		return nil, fmt.Errorf("count recent help accesses: %w", err)
	}
	return &HelpStats{TotalAccesses: total, RecentAccesses: recent}, nil
}
