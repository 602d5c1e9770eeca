package services

import (
	"math"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/mindwell-backend/internal/data/repos/testutil"
	types "github.com/yungbote/mindwell-backend/internal/domain"
)

func TestMoodCreateValidatesScore(t *testing.T) {
	f := newFixture(t)
	svc := f.moodService()
	u := f.user(t, "mood-create@example.com")
	ctx := as(f.ctx, u)

	for _, score := range []int{0, 11, -3} {
		_, err := svc.Create(ctx, score, "")
		wantAPIError(t, err, http.StatusBadRequest, "invalid_mood_score")
	}

	entry, err := svc.Create(ctx, 7, "  walked outside  ")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if entry.MoodScore != 7 || entry.Note != "walked outside" {
		t.Fatalf("entry: got score=%d note=%q", entry.MoodScore, entry.Note)
	}

	got, err := svc.Get(ctx, entry.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.MoodScore != entry.MoodScore || got.Note != entry.Note || !got.Timestamp.Equal(entry.Timestamp) {
		t.Fatalf("round trip: want=%+v got=%+v", entry, got)
	}

	if _, err := svc.Create(f.ctx, 5, ""); err == nil {
		t.Fatalf("Create without caller: expected error")
	}
}

func TestMoodOwnership(t *testing.T) {
	f := newFixture(t)
	svc := f.moodService()
	owner := f.user(t, "mood-owner@example.com")
	other := f.user(t, "mood-other@example.com")

	entry, err := svc.Create(as(f.ctx, owner), 6, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err = svc.Get(as(f.ctx, other), entry.ID)
	wantAPIError(t, err, http.StatusNotFound, "mood_not_found")
	_, err = svc.Get(as(f.ctx, owner), uuid.New())
	wantAPIError(t, err, http.StatusNotFound, "mood_not_found")

	list, err := svc.List(as(f.ctx, other))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("List other: want empty non-nil got=%v", list)
	}
}

func TestMoodAnalysisView(t *testing.T) {
	f := newFixture(t)
	svc := f.moodService()
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	svc.clock = fixedClock(now)
	u := f.user(t, "mood-analysis@example.com")
	ctx := as(f.ctx, u)

	empty, err := svc.Analysis(ctx)
	if err != nil {
		t.Fatalf("Analysis empty: %v", err)
	}
	if empty.AnalysisTimestamp != nil || empty.CurrentSentiment != nil || empty.RecentMoodAverage != nil {
		t.Fatalf("Analysis empty: want nulls got=%+v", empty)
	}
	if empty.AverageMood != 0 || empty.MoodDeviation != 0 {
		t.Fatalf("Analysis empty: want zeros got=%+v", empty)
	}

	testutil.SeedMood(t, f.ctx, f.db, u.ID, 4, now.AddDate(0, 0, -20))
	testutil.SeedMood(t, f.ctx, f.db, u.ID, 6, now.AddDate(0, 0, -2))
	testutil.SeedMood(t, f.ctx, f.db, u.ID, 8, now.AddDate(0, 0, -1))
	testutil.SeedConversation(t, f.ctx, f.db, u.ID, types.SenderUser, testutil.Float(0.5), now.Add(-time.Hour))
	testutil.SeedConversation(t, f.ctx, f.db, u.ID, types.SenderAI, nil, now.Add(-time.Hour+time.Second))
	testutil.SeedConversation(t, f.ctx, f.db, u.ID, types.SenderUser, testutil.Float(-0.1), now.Add(-time.Minute))

	if _, err := svc.RefreshAnalysis(f.ctx, nil, u.ID); err != nil {
		t.Fatalf("RefreshAnalysis: %v", err)
	}
	view, err := svc.Analysis(ctx)
	if err != nil {
		t.Fatalf("Analysis: %v", err)
	}
	if view.AverageMood != 6 {
		t.Fatalf("average_mood: want=6 got=%v", view.AverageMood)
	}
	wantDev := math.Sqrt(8.0 / 3.0)
	if math.Abs(view.MoodDeviation-wantDev) > 1e-9 {
		t.Fatalf("mood_deviation: want=%v got=%v", wantDev, view.MoodDeviation)
	}
	if view.RecentMoodAverage == nil || *view.RecentMoodAverage != 7 {
		t.Fatalf("recent_mood_average: want=7 got=%v", view.RecentMoodAverage)
	}
	if view.CurrentSentiment == nil || math.Abs(*view.CurrentSentiment-0.2) > 1e-9 {
		t.Fatalf("current_sentiment: want=0.2 got=%v", view.CurrentSentiment)
	}
	if view.AnalysisTimestamp == nil || !view.AnalysisTimestamp.Equal(now) {
		t.Fatalf("analysis_timestamp: want=%v got=%v", now, view.AnalysisTimestamp)
	}
}
