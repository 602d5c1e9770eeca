package services

import (
	"testing"
	"time"

	"github.com/yungbote/mindwell-backend/internal/data/repos"
	"github.com/yungbote/mindwell-backend/internal/data/repos/testutil"
	types "github.com/yungbote/mindwell-backend/internal/domain"
)

func TestHelpVisitAndStats(t *testing.T) {
	f := newFixture(t)
	svc := NewHelpService(f.db, f.log, repos.NewHelpAccessRepo(f.db, f.log), f.moodService()).(*helpService)
	u := f.user(t, "help@example.com")
	ctx := as(f.ctx, u)

	page, err := svc.Visit(ctx)
	if err != nil {
		t.Fatalf("Visit: %v", err)
	}
	if len(page.EmergencyContacts) == 0 || len(page.OtherContacts) == 0 {
		t.Fatalf("contacts: got emergency=%d other=%d", len(page.EmergencyContacts), len(page.OtherContacts))
	}
	if page.RecentMood != nil {
		t.Fatalf("recent mood without entries: want nil got=%v", *page.RecentMood)
	}

	testutil.SeedMood(t, f.ctx, f.db, u.ID, 3, time.Now().UTC().Add(-time.Hour))
	page, err = svc.Visit(ctx)
	if err != nil {
		t.Fatalf("Visit: %v", err)
	}
	if page.RecentMood == nil || *page.RecentMood != 3 {
		t.Fatalf("recent mood: want=3 got=%v", page.RecentMood)
	}

	old := &types.HelpAccess{UserID: u.ID, Timestamp: time.Now().UTC().AddDate(0, 0, -10)}
	if err := f.db.Create(old).Error; err != nil {
		t.Fatalf("seed old access: %v", err)
	}

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalAccesses != 3 || stats.RecentAccesses != 2 {
		t.Fatalf("stats: want=3/2 got=%d/%d", stats.TotalAccesses, stats.RecentAccesses)
	}
}
