package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/mindwell-backend/internal/data/repos"
	types "github.com/yungbote/mindwell-backend/internal/domain"
	"github.com/yungbote/mindwell-backend/internal/domain/mood"
	apperrors "github.com/yungbote/mindwell-backend/internal/pkg/errors"
	"github.com/yungbote/mindwell-backend/internal/platform/apierr"
	"github.com/yungbote/mindwell-backend/internal/platform/logger"
	"github.com/yungbote/mindwell-backend/internal/reporting/aggregate"
)

const (
	recentMoodDays        = 7
	currentSentimentTurns = 5
)

// MoodAnalysisView is the latest stored analysis plus live figures. Pointer
// fields are null in JSON when there is no underlying data.
type MoodAnalysisView struct {
	AverageMood       float64    `json:"average_mood"`
	MoodDeviation     float64    `json:"mood_deviation"`
	AnalysisTimestamp *time.Time `json:"analysis_timestamp"`
	CurrentSentiment  *float64   `json:"current_sentiment"`
	RecentMoodAverage *float64   `json:"recent_mood_average"`
}

type MoodService interface {
	Create(ctx context.Context, score int, note string) (*types.MoodEntry, error)
	List(ctx context.Context) ([]*types.MoodEntry, error)
	Get(ctx context.Context, id uuid.UUID) (*types.MoodEntry, error)
	Analysis(ctx context.Context) (*MoodAnalysisView, error)
	// RecentAverage is the mean score over the last 7 days, nil without entries.
	RecentAverage(ctx context.Context, userID uuid.UUID) (*float64, error)
	// RefreshAnalysis stores a new snapshot computed from all of the user's entries.
	RefreshAnalysis(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.MoodAnalysis, error)
}

type moodService struct {
	db           *gorm.DB
	log          *logger.Logger
	moodRepo     repos.MoodEntryRepo
	analysisRepo repos.MoodAnalysisRepo
	convRepo     repos.ConversationRepo
	clock        clock
}

func NewMoodService(
	db *gorm.DB,
	log *logger.Logger,
	moodRepo repos.MoodEntryRepo,
	analysisRepo repos.MoodAnalysisRepo,
	convRepo repos.ConversationRepo,
) MoodService {
	return &moodService{
		db:           db,
		log:          log.With("service", "MoodService"),
		moodRepo:     moodRepo,
		analysisRepo: analysisRepo,
		convRepo:     convRepo,
	}
}

func (ms *moodService) Create(ctx context.Context, score int, note string) (*types.MoodEntry, error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if !mood.ValidScore(score) {
		return nil, apierr.BadRequest("invalid_mood_score", fmt.Errorf("mood score must be between %d and %d", mood.MinScore, mood.MaxScore))
	}
	entry := &types.MoodEntry{
		UserID:    uid,
		MoodScore: score,
		Note:      strings.TrimSpace(note),
		Timestamp: ms.clock.now(),
	}
	err = ms.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := ms.moodRepo.Create(ctx, tx, entry)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create mood entry: %w", err)
	}
	return entry, nil
}

func (ms *moodService) List(ctx context.Context) ([]*types.MoodEntry, error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := ms.moodRepo.ListByUser(ctx, nil, uid)
	if err != nil {
		return nil, fmt.Errorf("list mood entries: %w", err)
	}
	if entries == nil {
		entries = []*types.MoodEntry{}
	}
	return entries, nil
}

func (ms *moodService) Get(ctx context.Context, id uuid.UUID) (*types.MoodEntry, error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	entry, err := ms.moodRepo.GetForUser(ctx, nil, uid, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apierr.NotFound("mood_not_found", errors.New("mood entry not found"))
		}
		return nil, fmt.Errorf("get mood entry: %w", err)
	}
	return entry, nil
}

func (ms *moodService) Analysis(ctx context.Context) (*MoodAnalysisView, error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	view := &MoodAnalysisView{}
	latest, err := ms.analysisRepo.Latest(ctx, nil, uid)
	switch {
	case err == nil:
		view.AverageMood = latest.AverageMood
		view.MoodDeviation = latest.MoodDeviation
		ts := latest.AnalysisTimestamp
		view.AnalysisTimestamp = &ts
	case errors.Is(err, apperrors.ErrNotFound):
	default:
		return nil, fmt.Errorf("latest mood analysis: %w", err)
	}

	sentiments, err := ms.convRepo.RecentUserSentiments(ctx, nil, uid, currentSentimentTurns)
	if err != nil {
		return nil, fmt.Errorf("recent sentiments: %w", err)
	}
	view.CurrentSentiment = aggregate.MeanAndPopulationStats(sentiments).MeanOrNil()

	if view.RecentMoodAverage, err = ms.RecentAverage(ctx, uid); err != nil {
		return nil, err
	}
	return view, nil
}

func (ms *moodService) RecentAverage(ctx context.Context, userID uuid.UUID) (*float64, error) {
	since := ms.clock.now().AddDate(0, 0, -recentMoodDays)
	entries, err := ms.moodRepo.ListSince(ctx, nil, userID, since)
	if err != nil {
		return nil, fmt.Errorf("recent mood entries: %w", err)
	}
	scores := make([]float64, 0, len(entries))
	for _, e := range entries {
		scores = append(scores, float64(e.MoodScore))
	}
	return aggregate.MeanAndPopulationStats(scores).MeanOrNil(), nil
}

func (ms *moodService) RefreshAnalysis(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.MoodAnalysis, error) {
	scores, err := ms.moodRepo.ScoresByUser(ctx, tx, userID)
	if err != nil {
		return nil, fmt.Errorf("mood scores: %w", err)
	}
	stats := aggregate.MeanAndPopulationStats(scores)
	return ms.analysisRepo.Create(ctx, tx, &types.MoodAnalysis{
		UserID:            userID,
		AverageMood:       stats.Mean,
		MoodDeviation:     stats.StdDev,
		AnalysisTimestamp: ms.clock.now(),
	})
}
