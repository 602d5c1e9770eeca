package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/yungbote/mindwell-backend/internal/domain"
	"github.com/yungbote/mindwell-backend/internal/domain/survey"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:       uuid.New(),
		Email:    email,
		Password: "pw",
		Name:     "Test User",
		Role:     types.RoleUser,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedMood(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, score int, at time.Time) *types.MoodEntry {
	tb.Helper()
	m := &types.MoodEntry{UserID: userID, MoodScore: score, Timestamp: at}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed mood: %v", err)
	}
	return m
}

func SeedConversation(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, sender string, sentiment *float64, at time.Time) *types.Conversation {
	tb.Helper()
	c := &types.Conversation{UserID: userID, Message: "msg", Sender: sender, SentimentScore: sentiment, Timestamp: at}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed conversation: %v", err)
	}
	return c
}

func SeedSurvey(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, day time.Time, activities []string, custom []string, socialMedia string) *types.Survey {
	tb.Helper()
	s := &types.Survey{
		UserID:           userID,
		Date:             survey.Day(day),
		Activities:       datatypes.JSONSlice[string](activities),
		CustomActivities: datatypes.JSONSlice[string](custom),
		SocialMediaTime:  socialMedia,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed survey: %v", err)
	}
	return s
}

func Float(v float64) *float64 { return &v }
