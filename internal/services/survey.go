package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/mindwell-backend/internal/data/repos"
	types "github.com/yungbote/mindwell-backend/internal/domain"
	"github.com/yungbote/mindwell-backend/internal/domain/survey"
	apperrors "github.com/yungbote/mindwell-backend/internal/pkg/errors"
	"github.com/yungbote/mindwell-backend/internal/platform/apierr"
	"github.com/yungbote/mindwell-backend/internal/platform/logger"
)

type SurveyInput struct {
	Date             string
	Activities       []string
	CustomActivities []string
	SocialMediaTime  string
}

type SurveyOptions struct {
	Activities       []survey.ActivityOption    `json:"activities"`
	SocialMediaTimes []survey.SocialMediaOption `json:"social_media_times"`
	Categories       map[string]string          `json:"categories"`
	Settings         SurveySettings             `json:"settings"`
}

type SurveySettings struct {
	MaxCustomActivities     int `json:"max_custom_activities"`
	CustomActivityMaxLength int `json:"custom_activity_max_length"`
	AnalysisWindowDays      int `json:"analysis_window_days"`
}

type SurveyStats struct {
	TotalSurveys  int64 `json:"total_surveys"`
	RecentSurveys int64 `json:"recent_surveys"`
}

type SurveyService interface {
	Options() SurveyOptions
	// Submit creates the survey for the date or overwrites the existing one.
	// created is false when an existing survey was updated.
	Submit(ctx context.Context, in SurveyInput) (s *types.Survey, created bool, err error)
	Get(ctx context.Context, date string) (*types.Survey, error)
	Stats(ctx context.Context) (*SurveyStats, error)
}

type surveyService struct {
	db         *gorm.DB
	log        *logger.Logger
	surveyRepo repos.SurveyRepo
	clock      clock
}

func NewSurveyService(db *gorm.DB, log *logger.Logger, surveyRepo repos.SurveyRepo) SurveyService {
	return &surveyService{
		db:         db,
		log:        log.With("service", "SurveyService"),
		surveyRepo: surveyRepo,
	}
}

func (ss *surveyService) Options() SurveyOptions {
	return SurveyOptions{
		Activities:       survey.ActivityOptions(),
		SocialMediaTimes: survey.SocialMediaOptions(),
		Categories:       survey.CategoryLabels(),
		Settings: SurveySettings{
			MaxCustomActivities:     survey.MaxCustomActivities,
			CustomActivityMaxLength: survey.CustomActivityMaxLength,
			AnalysisWindowDays:      survey.AnalysisWindowDays,
		},
	}
}

func parseSurveyDate(raw string) (datatypes.Date, error) {
	d, err := survey.ParseDay(raw)
	if err != nil {
		return datatypes.Date{}, apierr.BadRequest("invalid_date", errors.New("date must be formatted YYYY-MM-DD"))
	}
	return d, nil
}

func (ss *surveyService) Submit(ctx context.Context, in SurveyInput) (*types.Survey, bool, error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, false, err
	}
	date, err := parseSurveyDate(in.Date)
	if err != nil {
		return nil, false, err
	}
	if err := survey.ValidateActivities(in.Activities); err != nil {
		return nil, false, apierr.BadRequest("invalid_activities", err)
	}
	if !survey.IsSocialMediaBucket(in.SocialMediaTime) {
		return nil, false, apierr.BadRequest("invalid_social_media_time", fmt.Errorf("unknown social media time %q", in.SocialMediaTime))
	}
	custom, err := survey.NormalizeCustomActivities(in.CustomActivities)
	if err != nil {
		return nil, false, apierr.BadRequest("invalid_custom_activities", err)
	}
	activities := append([]string{}, in.Activities...)

	var out *types.Survey
	created := false
	err = ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := ss.surveyRepo.GetByDate(ctx, tx, uid, date)
		switch {
		case err == nil:
			existing.Activities = datatypes.JSONSlice[string](activities)
			existing.CustomActivities = datatypes.JSONSlice[string](custom)
			existing.SocialMediaTime = in.SocialMediaTime
			out, err = ss.surveyRepo.Save(ctx, tx, existing)
			return err
		case errors.Is(err, apperrors.ErrNotFound):
			created = true
			out, err = ss.surveyRepo.Create(ctx, tx, &types.Survey{
				UserID:           uid,
				Date:             date,
				Activities:       datatypes.JSONSlice[string](activities),
				CustomActivities: datatypes.JSONSlice[string](custom),
				SocialMediaTime:  in.SocialMediaTime,
			})
			return err
		default:
			return err
		}
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, false, apierr.Conflict("survey_conflict", errors.New("survey for this date was submitted concurrently, please retry"))
		}
		return nil, false, fmt.Errorf("save survey: %w", err)
	}
	return out, created, nil
}

func (ss *surveyService) Get(ctx context.Context, date string) (*types.Survey, error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	d, err := parseSurveyDate(date)
	if err != nil {
		return nil, err
	}
	s, err := ss.surveyRepo.GetByDate(ctx, nil, uid, d)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apierr.NotFound("survey_not_found", errors.New("survey not found"))
		}
		return nil, fmt.Errorf("get survey: %w", err)
	}
	return s, nil
}

func (ss *surveyService) Stats(ctx context.Context) (*SurveyStats, error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	total, err := ss.surveyRepo.CountByUser(ctx, nil, uid)
	if err != nil {
		return nil, fmt.Errorf("count surveys: %w", err)
	}
	since := survey.Day(ss.clock.now().AddDate(0, 0, -survey.AnalysisWindowDays))
	recent, err := ss.surveyRepo.CountSince(ctx, nil, uid, since)
	if err != nil {
		return nil, fmt.Errorf("count recent surveys: %w", err)
	}
	return &SurveyStats{TotalSurveys: total, RecentSurveys: recent}, nil
}

