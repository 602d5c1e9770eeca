package survey

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yungbote/mindwell-backend/internal/data/repos/testutil"
	types "github.com/yungbote/mindwell-backend/internal/domain"
	domainsurvey "github.com/yungbote/mindwell-backend/internal/domain/survey"
	apperrors "github.com/yungbote/mindwell-backend/internal/pkg/errors"
)

func TestSurveyRepoUniquePerDay(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewSurveyRepo(tx, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "survey@example.com")
	day := time.Date(2024, 4, 2, 15, 0, 0, 0, time.UTC)
	testutil.SeedSurvey(t, ctx, tx, u.ID, day, []string{"work"}, nil, "<1h")

	dup := &types.Survey{UserID: u.ID, Date: domainsurvey.Day(day), SocialMediaTime: ">5h"}
	nested := tx.SavePoint("dup")
	if _, err := repo.Create(ctx, nested, dup); !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("duplicate create: want=ErrConflict got=%v", err)
	}
	tx.RollbackTo("dup")

	got, err := repo.GetByDate(ctx, nil, u.ID, domainsurvey.Day(day))
	if err != nil {
		t.Fatalf("GetByDate: %v", err)
	}
	if got.SocialMediaTime != "<1h" {
		t.Fatalf("social media: want=%q got=%q", "<1h", got.SocialMediaTime)
	}
	if len(got.Activities) != 1 || got.Activities[0] != "work" {
		t.Fatalf("activities: got=%v", got.Activities)
	}
}

func TestSurveyRepoListSinceAndCounts(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewSurveyRepo(tx, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "counts@example.com")
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)
	testutil.SeedSurvey(t, ctx, tx, u.ID, now.AddDate(0, 0, -40), []string{"work"}, nil, "<1h")
	testutil.SeedSurvey(t, ctx, tx, u.ID, now.AddDate(0, 0, -1), []string{"exercise"}, nil, "1-3h")
	testutil.SeedSurvey(t, ctx, tx, u.ID, now.AddDate(0, 0, -10), []string{"hobbies"}, nil, ">5h")

	since := domainsurvey.Day(now.AddDate(0, 0, -30))
	list, err := repo.ListSince(ctx, nil, u.ID, since)
	if err != nil {
		t.Fatalf("ListSince: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("ListSince len: want=2 got=%d", len(list))
	}
	if !time.Time(list[0].Date).Before(time.Time(list[1].Date)) {
		t.Fatalf("ListSince: want ascending dates")
	}

	total, err := repo.CountByUser(ctx, nil, u.ID)
	if err != nil || total != 3 {
		t.Fatalf("CountByUser: want=3 got=%d err=%v", total, err)
	}
	recent, err := repo.CountSince(ctx, nil, u.ID, since)
	if err != nil || recent != 2 {
		t.Fatalf("CountSince: want=2 got=%d err=%v", recent, err)
	}

	if _, err := repo.GetByDate(ctx, nil, u.ID, domainsurvey.Day(now)); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("GetByDate missing: want=ErrNotFound got=%v", err)
	}
}
