package help

import (
	"context"
	"testing"
	"time"

	"github.com/yungbote/mindwell-backend/internal/data/repos/testutil"
	types "github.com/yungbote/mindwell-backend/internal/domain"
)

func TestHelpAccessRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewHelpAccessRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "help@example.com")
	other := testutil.SeedUser(t, ctx, tx, "help-other@example.com")
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	for _, at := range []time.Time{now.AddDate(0, 0, -10), now.AddDate(0, 0, -2), now} {
		if _, err := repo.Create(ctx, tx, &types.HelpAccess{UserID: u.ID, Timestamp: at}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	if _, err := repo.Create(ctx, tx, &types.HelpAccess{UserID: other.ID}); err != nil {
		t.Fatalf("Create other: %v", err)
	}

	total, err := repo.Count(ctx, tx, u.ID)
	if err != nil || total != 3 {
		t.Fatalf("Count: want=3 got=%d err=%v", total, err)
	}
	recent, err := repo.CountSince(ctx, tx, u.ID, now.AddDate(0, 0, -7))
	if err != nil || recent != 2 {
		t.Fatalf("CountSince: want=2 got=%d err=%v", recent, err)
	}
}
