// Package aggregate reduces a user's mood, conversation and survey history
// over a trailing window into the figures a report is built from.
package aggregate

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/yungbote/mindwell-backend/internal/domain"
	"github.com/yungbote/mindwell-backend/internal/domain/survey"
	"github.com/yungbote/mindwell-backend/internal/platform/logger"
)

type MoodReader interface {
	ListSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) ([]*types.MoodEntry, error)
}

type SentimentReader interface {
	SentimentsSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) ([]float64, error)
}

type SurveyReader interface {
	ListSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since datatypes.Date) ([]*types.Survey, error)
}

type Point struct {
	Timestamp time.Time `json:"timestamp"`
	Score     int       `json:"score"`
}

type Summary struct {
	UserID      uuid.UUID `json:"user_id"`
	WindowDays  int       `json:"window_days"`
	GeneratedAt time.Time `json:"generated_at"`

	MoodSeries []Point `json:"mood_series"`
	Mood       Stats   `json:"mood"`
	Sentiment  Stats   `json:"sentiment"`

	TotalSurveys     int            `json:"total_surveys"`
	ActivityCounts   map[string]int `json:"activity_counts"`
	SocialMedia      []BucketShare  `json:"social_media"`
	CustomActivities []string       `json:"custom_activities"`

	Insights []string `json:"insights"`
}

// TopActivities returns at most n activities by descending frequency.
func (s *Summary) TopActivities(n int) []ActivityCount {
	ranked := RankActivities(s.ActivityCounts)
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

type Aggregator struct {
	log        *logger.Logger
	moods      MoodReader
	sentiments SentimentReader
	surveys    SurveyReader
}

func New(log *logger.Logger, moods MoodReader, sentiments SentimentReader, surveys SurveyReader) *Aggregator {
	return &Aggregator{
		log:        log.With("component", "ReportAggregator"),
		moods:      moods,
		sentiments: sentiments,
		surveys:    surveys,
	}
}

func normalizeWindow(days int) int {
	if days <= 0 {
		return survey.AnalysisWindowDays
	}
	return days
}

// Cutoff is the inclusive start of a trailing window ending at now.
func Cutoff(now time.Time, windowDays int) time.Time {
	return now.UTC().AddDate(0, 0, -normalizeWindow(windowDays))
}

func (a *Aggregator) MoodSeries(ctx context.Context, userID uuid.UUID, windowDays int, now time.Time) ([]Point, error) {
	entries, err := a.moods.ListSince(ctx, nil, userID, Cutoff(now, windowDays))
	if err != nil {
		return nil, fmt.Errorf("load mood entries: %w", err)
	}
	out := make([]Point, 0, len(entries))
	for _, e := range entries {
		if e == nil {
			continue
		}
		out = append(out, Point{Timestamp: e.Timestamp, Score: e.MoodScore})
	}
	return out, nil
}

// SentimentAverage is 0 when the user has no scored turns in the window.
func (a *Aggregator) SentimentAverage(ctx context.Context, userID uuid.UUID, windowDays int, now time.Time) (float64, error) {
	st, err := a.sentimentStats(ctx, userID, windowDays, now)
	if err != nil {
		return 0, err
	}
	return st.Mean, nil
}

func (a *Aggregator) sentimentStats(ctx context.Context, userID uuid.UUID, windowDays int, now time.Time) (Stats, error) {
	scores, err := a.sentiments.SentimentsSince(ctx, nil, userID, Cutoff(now, windowDays))
	if err != nil {
		return Stats{}, fmt.Errorf("load sentiments: %w", err)
	}
	return MeanAndPopulationStats(scores), nil
}

func (a *Aggregator) surveysInWindow(ctx context.Context, userID uuid.UUID, windowDays int, now time.Time) ([]*types.Survey, error) {
	rows, err := a.surveys.ListSince(ctx, nil, userID, survey.Day(Cutoff(now, windowDays)))
	if err != nil {
		return nil, fmt.Errorf("load surveys: %w", err)
	}
	return rows, nil
}

func (a *Aggregator) ActivityFrequency(ctx context.Context, userID uuid.UUID, windowDays int, now time.Time) (map[string]int, error) {
	rows, err := a.surveysInWindow(ctx, userID, windowDays, now)
	if err != nil {
		return nil, err
	}
	return CountActivities(rows), nil
}

func (a *Aggregator) SocialMediaDistribution(ctx context.Context, userID uuid.UUID, windowDays int, now time.Time) ([]BucketShare, error) {
	rows, err := a.surveysInWindow(ctx, userID, windowDays, now)
	if err != nil {
		return nil, err
	}
	return Distribution(rows), nil
}

// Build reads each source once and assembles the full summary.
func (a *Aggregator) Build(ctx context.Context, userID uuid.UUID, windowDays int, now time.Time) (*Summary, error) {
	windowDays = normalizeWindow(windowDays)

	series, err := a.MoodSeries(ctx, userID, windowDays, now)
	if err != nil {
		return nil, err
	}
	scores := make([]int, len(series))
	for i, p := range series {
		scores[i] = p.Score
	}

	sentiment, err := a.sentimentStats(ctx, userID, windowDays, now)
	if err != nil {
		return nil, err
	}

	rows, err := a.surveysInWindow(ctx, userID, windowDays, now)
	if err != nil {
		return nil, err
	}

	s := &Summary{
		UserID:           userID,
		WindowDays:       windowDays,
		GeneratedAt:      now.UTC(),
		MoodSeries:       series,
		Mood:             MeanAndPopulationStats(intsToFloats(scores)),
		Sentiment:        sentiment,
		TotalSurveys:     len(rows),
		ActivityCounts:   CountActivities(rows),
		SocialMedia:      Distribution(rows),
		CustomActivities: CustomActivities(rows),
	}
	s.Insights = Insights(s.Mood, s.ActivityCounts, s.SocialMedia, s.TotalSurveys)

	a.log.Debug("report summary built",
		"user_id", userID,
		"mood_entries", s.Mood.Count,
		"surveys", s.TotalSurveys,
		"insights", len(s.Insights),
	)
	return s, nil
}
