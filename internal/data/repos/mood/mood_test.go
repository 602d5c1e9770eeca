package mood

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/mindwell-backend/internal/data/repos/testutil"
	types "github.com/yungbote/mindwell-backend/internal/domain"
	apperrors "github.com/yungbote/mindwell-backend/internal/pkg/errors"
)

func TestMoodEntryRepoOwnershipAndOrdering(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewMoodEntryRepo(tx, testutil.Logger(t))

	alice := testutil.SeedUser(t, ctx, tx, "alice@example.com")
	bob := testutil.SeedUser(t, ctx, tx, "bob@example.com")
	base := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

	first := testutil.SeedMood(t, ctx, tx, alice.ID, 3, base)
	testutil.SeedMood(t, ctx, tx, alice.ID, 7, base.Add(48*time.Hour))
	testutil.SeedMood(t, ctx, tx, bob.ID, 9, base.Add(time.Hour))

	desc, err := repo.ListByUser(ctx, nil, alice.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(desc) != 2 || desc[0].MoodScore != 7 || desc[1].MoodScore != 3 {
		t.Fatalf("ListByUser: want newest first, got=%v", desc)
	}

	since, err := repo.ListSince(ctx, nil, alice.ID, base.Add(time.Hour))
	if err != nil {
		t.Fatalf("ListSince: %v", err)
	}
	if len(since) != 1 || since[0].MoodScore != 7 {
		t.Fatalf("ListSince: got=%v", since)
	}

	if _, err := repo.GetForUser(ctx, nil, bob.ID, first.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("GetForUser other owner: want=ErrNotFound got=%v", err)
	}
	got, err := repo.GetForUser(ctx, nil, alice.ID, first.ID)
	if err != nil {
		t.Fatalf("GetForUser: %v", err)
	}
	if !got.Timestamp.Equal(first.Timestamp) || got.MoodScore != first.MoodScore || got.Note != first.Note {
		t.Fatalf("round trip: want=%+v got=%+v", first, got)
	}

	scores, err := repo.ScoresByUser(ctx, nil, alice.ID)
	if err != nil {
		t.Fatalf("ScoresByUser: %v", err)
	}
	if len(scores) != 2 || scores[0] != 3 || scores[1] != 7 {
		t.Fatalf("ScoresByUser: got=%v", scores)
	}
}

func TestMoodAnalysisRepoLatest(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewMoodAnalysisRepo(tx, testutil.Logger(t))

	uid := uuid.New()
	if _, err := repo.Latest(ctx, nil, uid); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("Latest empty: want=ErrNotFound got=%v", err)
	}
	now := time.Now().UTC()
	for i, avg := range []float64{4, 6} {
		a := &types.MoodAnalysis{UserID: uid, AverageMood: avg, AnalysisTimestamp: now.Add(time.Duration(i) * time.Minute)}
		if _, err := repo.Create(ctx, nil, a); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	latest, err := repo.Latest(ctx, nil, uid)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest.AverageMood != 6 {
		t.Fatalf("Latest: want=6 got=%v", latest.AverageMood)
	}
}
