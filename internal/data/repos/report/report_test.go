package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/mindwell-backend/internal/data/repos/testutil"
	types "github.com/yungbote/mindwell-backend/internal/domain"
	domainreport "github.com/yungbote/mindwell-backend/internal/domain/report"
	apperrors "github.com/yungbote/mindwell-backend/internal/pkg/errors"
)

func TestReportRepoScopesLookupToOwner(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewReportRepo(tx, testutil.Logger(t))

	a := testutil.SeedUser(t, ctx, tx, "a@example.com")
	b := testutil.SeedUser(t, ctx, tx, "b@example.com")
	at := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)
	rec := &types.Report{UserID: a.ID, Filename: domainreport.Filename(a.ID, at), CreatedAt: at}
	if _, err := repo.Create(ctx, nil, rec); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := repo.GetForUser(ctx, nil, b.ID, rec.Filename); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("GetForUser other owner: want=ErrNotFound got=%v", err)
	}
	got, err := repo.GetForUser(ctx, nil, a.ID, rec.Filename)
	if err != nil {
		t.Fatalf("GetForUser: %v", err)
	}
	if got.ID != rec.ID {
		t.Fatalf("GetForUser: want=%s got=%s", rec.ID, got.ID)
	}
	if _, err := repo.GetByFilename(ctx, nil, rec.Filename); err != nil {
		t.Fatalf("GetByFilename: %v", err)
	}

	list, err := repo.ListByUsers(ctx, nil, []uuid.UUID{a.ID, b.ID})
	if err != nil {
		t.Fatalf("ListByUsers: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("ListByUsers: want=1 got=%d", len(list))
	}
}
