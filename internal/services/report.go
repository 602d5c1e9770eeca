package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/yungbote/mindwell-backend/internal/data/repos"
	types "github.com/yungbote/mindwell-backend/internal/domain"
	"github.com/yungbote/mindwell-backend/internal/domain/report"
	"github.com/yungbote/mindwell-backend/internal/observability"
	apperrors "github.com/yungbote/mindwell-backend/internal/pkg/errors"
	"github.com/yungbote/mindwell-backend/internal/platform/apierr"
	"github.com/yungbote/mindwell-backend/internal/platform/ctxutil"
	"github.com/yungbote/mindwell-backend/internal/platform/logger"
	"github.com/yungbote/mindwell-backend/internal/platform/reportstore"
	"github.com/yungbote/mindwell-backend/internal/reporting/aggregate"
	"github.com/yungbote/mindwell-backend/internal/reporting/render"
)

var (
	ErrReportGenerationFailed = apierr.New(http.StatusInternalServerError, "report_generation_failed", errors.New("report generation failed"))
	ErrReportNotFound         = apierr.NotFound("report_not_found", errors.New("report not found"))
)

type SummaryBuilder interface {
	Build(ctx context.Context, userID uuid.UUID, windowDays int, now time.Time) (*aggregate.Summary, error)
}

type DocumentRenderer interface {
	Render(ctx context.Context, s *aggregate.Summary, userName string, w io.Writer) (*render.Result, error)
}

type ReportService interface {
	// Generate runs aggregate, render, store and record for the caller. On any
	// failure no record exists and a stored document is removed.
	Generate(ctx context.Context) (*types.Report, error)
	List(ctx context.Context) ([]*types.Report, error)
	// FindForDownload resolves a report the caller owns; admins may read any.
	// Other users' reports are reported as not found.
	FindForDownload(ctx context.Context, filename string) (*types.Report, error)
	OpenDocument(ctx context.Context, filename string) (io.ReadCloser, *types.Report, error)
}

type reportService struct {
	db         *gorm.DB
	log        *logger.Logger
	userRepo   repos.UserRepo
	reportRepo repos.ReportRepo
	builder    SummaryBuilder
	renderer   DocumentRenderer
	store      reportstore.Store
	windowDays int
	clock      clock
}

func NewReportService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	reportRepo repos.ReportRepo,
	builder SummaryBuilder,
	renderer DocumentRenderer,
	store reportstore.Store,
	windowDays int,
) ReportService {
	return &reportService{
		db:         db,
		log:        log.With("service", "ReportService"),
		userRepo:   userRepo,
		reportRepo: reportRepo,
		builder:    builder,
		renderer:   renderer,
		store:      store,
		windowDays: windowDays,
	}
}

func (rs *reportService) Generate(ctx context.Context) (*types.Report, error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	ctx, span := observability.Tracer().Start(ctx, "report.generate")
	defer span.End()

	start := time.Now()
	out, err := rs.generate(ctx, uid)
	status := "success"
	if err != nil {
		status = "failed"
		span.RecordError(err)
		span.SetStatus(codes.Error, "report generation failed")
	} else {
		span.SetAttributes(attribute.String("report.filename", out.Filename))
	}
	observability.Current().ObserveReportGeneration(status, time.Since(start))
	if err != nil {
		rs.log.Error("report generation failed", "user_id", uid, "error", err)
		return nil, ErrReportGenerationFailed
	}
	rs.log.Info("report generated", "user_id", uid, "filename", out.Filename, "duration", time.Since(start))
	return out, nil
}

func (rs *reportService) generate(ctx context.Context, uid uuid.UUID) (*types.Report, error) {
	users, err := rs.userRepo.GetByIDs(ctx, nil, []uuid.UUID{uid})
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("load user: %w", apperrors.ErrNotFound)
	}

	now := rs.clock.now()
	summary, err := rs.builder.Build(ctx, uid, rs.windowDays, now)
	if err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}

	var doc bytes.Buffer
	if _, err := rs.renderer.Render(ctx, summary, users[0].Name, &doc); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	filename := report.Filename(uid, now)
	if err := rs.store.Put(ctx, filename, &doc); err != nil {
		// A partial upload may exist.
		rs.discard(ctx, filename)
		return nil, fmt.Errorf("store document: %w", err)
	}

	record := &types.Report{UserID: uid, Filename: filename, CreatedAt: now}
	err = rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := rs.reportRepo.Create(ctx, tx, record)
		return err
	})
	if err != nil {
		rs.discard(ctx, filename)
		return nil, fmt.Errorf("record report: %w", err)
	}
	return record, nil
}

// discard removes a document that has no record. Failures are only logged.
func (rs *reportService) discard(ctx context.Context, filename string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()
	if err := rs.store.Delete(ctx, filename); err != nil {
		rs.log.Warn("failed to delete orphaned report document", "filename", filename, "error", err)
	}
}

func (rs *reportService) List(ctx context.Context) ([]*types.Report, error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	out, err := rs.reportRepo.ListByUser(ctx, nil, uid)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	if out == nil {
		out = []*types.Report{}
	}
	return out, nil
}

func (rs *reportService) FindForDownload(ctx context.Context, filename string) (*types.Report, error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if reportstore.ValidateKey(filename) != nil {
		return nil, ErrReportNotFound
	}
	var rec *types.Report
	if ctxutil.GetRequestData(ctx).IsAdmin() {
		rec, err = rs.reportRepo.GetByFilename(ctx, nil, filename)
	} else {
		rec, err = rs.reportRepo.GetForUser(ctx, nil, uid, filename)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("find report: %w", err)
	}
	return rec, nil
}

func (rs *reportService) OpenDocument(ctx context.Context, filename string) (io.ReadCloser, *types.Report, error) {
	rec, err := rs.FindForDownload(ctx, filename)
	if err != nil {
		return nil, nil, err
	}
	rc, err := rs.store.Open(ctx, rec.Filename)
	if err != nil {
		if errors.Is(err, reportstore.ErrNotFound) {
			rs.log.Warn("report record without document", "filename", rec.Filename)
			return nil, nil, ErrReportNotFound
		}
		return nil, nil, fmt.Errorf("open report document: %w", err)
	}
	return rc, rec, nil
}
