package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/mindwell-backend/internal/data/repos"
	"github.com/yungbote/mindwell-backend/internal/data/repos/testutil"
	types "github.com/yungbote/mindwell-backend/internal/domain"
	"github.com/yungbote/mindwell-backend/internal/platform/reportstore"
	"github.com/yungbote/mindwell-backend/internal/reporting/aggregate"
	"github.com/yungbote/mindwell-backend/internal/reporting/render"
)

type reportHarness struct {
	svc   *reportService
	dir   string
	store *spyStore
}

// spyStore wraps a local store and can fail uploads.
type spyStore struct {
	*reportstore.Local
	putErr  error
	deleted []string
}

func (s *spyStore) Put(ctx context.Context, key string, r io.Reader) error {
	if s.putErr != nil {
		return s.putErr
	}
	return s.Local.Put(ctx, key, r)
}

func (s *spyStore) Delete(ctx context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	return s.Local.Delete(ctx, key)
}

type failingReportRepo struct {
	repos.ReportRepo
}

func (failingReportRepo) Create(context.Context, *gorm.DB, *types.Report) (*types.Report, error) {
	return nil, errors.New("insert failed")
}

func newReportHarness(t *testing.T, f *fixture, reportRepo repos.ReportRepo) *reportHarness {
	t.Helper()
	dir := t.TempDir()
	local, err := reportstore.NewLocal(dir, f.log)
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	renderer, err := render.New(f.log, render.WithTempDir(t.TempDir()))
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	builder := aggregate.New(f.log,
		repos.NewMoodEntryRepo(f.db, f.log),
		repos.NewConversationRepo(f.db, f.log),
		repos.NewSurveyRepo(f.db, f.log),
	)
	if reportRepo == nil {
		reportRepo = repos.NewReportRepo(f.db, f.log)
	}
	spy := &spyStore{Local: local}
	svc := NewReportService(f.db, f.log, repos.NewUserRepo(f.db, f.log), reportRepo, builder, renderer, spy, 30).(*reportService)
	return &reportHarness{svc: svc, dir: dir, store: spy}
}

func countReports(t *testing.T, f *fixture) int64 {
	t.Helper()
	var n int64
	if err := f.db.Model(&types.Report{}).Count(&n).Error; err != nil {
		t.Fatalf("count reports: %v", err)
	}
	return n
}

func TestReportGenerateWritesDocumentAndRecord(t *testing.T) {
	f := newFixture(t)
	h := newReportHarness(t, f, nil)
	u := f.user(t, "report@example.com")
	ctx := as(f.ctx, u)

	now := time.Now().UTC()
	for i, score := range []int{8, 8, 9} {
		testutil.SeedMood(t, f.ctx, f.db, u.ID, score, now.Add(-time.Duration(3-i)*time.Hour))
	}

	rec, err := h.svc.Generate(ctx)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if rec.UserID != u.ID {
		t.Fatalf("owner: want=%s got=%s", u.ID, rec.UserID)
	}
	raw, err := os.ReadFile(filepath.Join(h.dir, rec.Filename))
	if err != nil {
		t.Fatalf("read document: %v", err)
	}
	if !bytes.HasPrefix(raw, []byte("%PDF")) {
		t.Fatalf("document: want PDF header got=%q", raw[:min(len(raw), 8)])
	}

	list, err := h.svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].Filename != rec.Filename {
		t.Fatalf("List: got=%v", list)
	}

	rc, got, err := h.svc.OpenDocument(ctx, rec.Filename)
	if err != nil {
		t.Fatalf("OpenDocument: %v", err)
	}
	defer rc.Close()
	streamed, _ := io.ReadAll(rc)
	if got.ID != rec.ID || !bytes.Equal(streamed, raw) {
		t.Fatalf("OpenDocument: content or record mismatch")
	}
}

func TestReportGenerateWithoutData(t *testing.T) {
	f := newFixture(t)
	h := newReportHarness(t, f, nil)
	u := f.user(t, "report-empty@example.com")

	rec, err := h.svc.Generate(as(f.ctx, u))
	if err != nil {
		t.Fatalf("Generate with no data: %v", err)
	}
	if _, err := os.Stat(filepath.Join(h.dir, rec.Filename)); err != nil {
		t.Fatalf("document missing: %v", err)
	}
}

func TestReportGenerateFailures(t *testing.T) {
	t.Run("store failure leaves no record", func(t *testing.T) {
		f := newFixture(t)
		h := newReportHarness(t, f, nil)
		h.store.putErr = errors.New("bucket unavailable")
		u := f.user(t, "report-store-fail@example.com")

		_, err := h.svc.Generate(as(f.ctx, u))
		if !errors.Is(err, ErrReportGenerationFailed) {
			t.Fatalf("Generate: want ErrReportGenerationFailed got=%v", err)
		}
		if n := countReports(t, f); n != 0 {
			t.Fatalf("records: want=0 got=%d", n)
		}
	})

	t.Run("record failure removes document", func(t *testing.T) {
		f := newFixture(t)
		h := newReportHarness(t, f, failingReportRepo{ReportRepo: repos.NewReportRepo(f.db, f.log)})
		u := f.user(t, "report-record-fail@example.com")

		_, err := h.svc.Generate(as(f.ctx, u))
		if !errors.Is(err, ErrReportGenerationFailed) {
			t.Fatalf("Generate: want ErrReportGenerationFailed got=%v", err)
		}
		if len(h.store.deleted) != 1 {
			t.Fatalf("deleted documents: want=1 got=%v", h.store.deleted)
		}
		entries, err := os.ReadDir(h.dir)
		if err != nil {
			t.Fatalf("read store dir: %v", err)
		}
		if len(entries) != 0 {
			t.Fatalf("store dir: want empty got=%d entries", len(entries))
		}
	})
}

func TestReportDownloadAccess(t *testing.T) {
	f := newFixture(t)
	h := newReportHarness(t, f, nil)
	owner := f.user(t, "report-owner@example.com")
	other := f.user(t, "report-other@example.com")
	admin := f.user(t, "report-admin@example.com")
	admin.Role = types.RoleAdmin

	rec, err := h.svc.Generate(as(f.ctx, owner))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := h.svc.FindForDownload(as(f.ctx, other), rec.Filename); !errors.Is(err, ErrReportNotFound) {
		t.Fatalf("other user: want ErrReportNotFound got=%v", err)
	}
	if _, err := h.svc.FindForDownload(as(f.ctx, admin), rec.Filename); err != nil {
		t.Fatalf("admin: %v", err)
	}
	for _, bad := range []string{"../" + rec.Filename, "", "report_missing.pdf"} {
		if _, err := h.svc.FindForDownload(as(f.ctx, owner), bad); !errors.Is(err, ErrReportNotFound) {
			t.Fatalf("FindForDownload(%q): want ErrReportNotFound got=%v", bad, err)
		}
	}

	if err := os.Remove(filepath.Join(h.dir, rec.Filename)); err != nil {
		t.Fatalf("remove document: %v", err)
	}
	if _, _, err := h.svc.OpenDocument(as(f.ctx, owner), rec.Filename); !errors.Is(err, ErrReportNotFound) {
		t.Fatalf("OpenDocument without file: want ErrReportNotFound got=%v", err)
	}
}
