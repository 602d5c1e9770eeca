// Package render turns a report summary into chart images and a paginated PDF.
package render

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/mindwell-backend/internal/platform/logger"
	"github.com/yungbote/mindwell-backend/internal/reporting/aggregate"
)

type Result struct {
	Charts []ChartKind
	Blocks []Block
}

type Renderer struct {
	log     *logger.Logger
	painter *painter
	tempDir string
}

type Option func(*Renderer)

// WithTempDir sets the parent of the per-run chart workspace. Defaults to os.TempDir().
func WithTempDir(dir string) Option {
	return func(r *Renderer) { r.tempDir = dir }
}

func New(log *logger.Logger, opts ...Option) (*Renderer, error) {
	p, err := newPainter()
	if err != nil {
		return nil, err
	}
	r := &Renderer{log: log.With("component", "ReportRenderer"), painter: p}
	for _, o := range opts {
		o(r)
	}
	return r, nil
}

// Render writes the PDF for s to w. Chart images are drawn into a private
// workspace that is removed before Render returns, on success or failure.
func (r *Renderer) Render(ctx context.Context, s *aggregate.Summary, userName string, w io.Writer) (*Result, error) {
	if s == nil {
		return nil, fmt.Errorf("render: nil summary")
	}
	dir, err := os.MkdirTemp(r.tempDir, "mindwell-report-*")
	if err != nil {
		return nil, fmt.Errorf("create chart workspace: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			r.log.Warn("failed to remove chart workspace (ignored)", "dir", dir, "error", rmErr)
		}
	}()

	planned := PlannedCharts(s)
	g, gctx := errgroup.WithContext(ctx)
	for _, kind := range planned {
		kind := kind
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return r.painter.draw(kind, s, filepath.Join(dir, kind.fileName()))
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("render charts: %w", err)
	}

	have := make(map[ChartKind]bool, len(planned))
	for _, k := range planned {
		have[k] = true
	}
	blocks := Layout(s, userName, have)
	if err := writePDF(blocks, dir, s.GeneratedAt, w); err != nil {
		return nil, err
	}

	r.log.Debug("report rendered", "charts", len(planned), "blocks", len(blocks))
	return &Result{Charts: planned, Blocks: blocks}, nil
}
