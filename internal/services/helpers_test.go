package services

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/mindwell-backend/internal/data/repos"
	"github.com/yungbote/mindwell-backend/internal/data/repos/testutil"
	types "github.com/yungbote/mindwell-backend/internal/domain"
	"github.com/yungbote/mindwell-backend/internal/platform/apierr"
	"github.com/yungbote/mindwell-backend/internal/platform/ctxutil"
	"github.com/yungbote/mindwell-backend/internal/platform/logger"
)

// Service tests run against a private database per test. Services open their
// own transactions, so no outer testutil.Tx is used here.
type fixture struct {
	db  *gorm.DB
	log *logger.Logger
	ctx context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return &fixture{db: testutil.DB(t), log: testutil.Logger(t), ctx: context.Background()}
}

func (f *fixture) user(t *testing.T, email string) *types.User {
	t.Helper()
	return testutil.SeedUser(t, f.ctx, f.db, email)
}

func (f *fixture) moodService() *moodService {
	return NewMoodService(f.db, f.log,
		repos.NewMoodEntryRepo(f.db, f.log),
		repos.NewMoodAnalysisRepo(f.db, f.log),
		repos.NewConversationRepo(f.db, f.log),
	).(*moodService)
}

func as(ctx context.Context, u *types.User) context.Context {
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{UserID: u.ID, Role: u.Role})
}

func fixedClock(t time.Time) clock {
	return func() time.Time { return t }
}

func wantAPIError(t *testing.T, err error, status int, code string) {
	t.Helper()
	ae, ok := apierr.As(err)
	if !ok {
		t.Fatalf("error: want apierr (%d %s) got=%v", status, code, err)
	}
	if ae.Status != status || ae.Code != code {
		t.Fatalf("apierr: want=%d/%s got=%d/%s (%v)", status, code, ae.Status, ae.Code, ae.Err)
	}
}
