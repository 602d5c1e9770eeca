package render

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/yungbote/mindwell-backend/internal/domain/survey"
	"github.com/yungbote/mindwell-backend/internal/reporting/aggregate"
)

type BlockKind int

const (
	BlockTitle BlockKind = iota
	BlockHeading
	BlockText
	BlockBullet
	BlockChart
)

// Block is one element of the report in reading order.
type Block struct {
	Kind  BlockKind
	Text  string
	Chart ChartKind
}

func (b Block) String() string {
	switch b.Kind {
	case BlockBullet:
		return "• " + b.Text
	case BlockChart:
		return "[chart:" + string(b.Chart) + "]"
	default:
		return b.Text
	}
}

const topActivities = 5

// Layout orders the report content. Chart blocks appear only for kinds in charts.
func Layout(s *aggregate.Summary, userName string, charts map[ChartKind]bool) []Block {
	var out []Block
	heading := func(t string) { out = append(out, Block{Kind: BlockHeading, Text: t}) }
	text := func(f string, a ...any) { out = append(out, Block{Kind: BlockText, Text: fmt.Sprintf(f, a...)}) }
	bullet := func(f string, a ...any) { out = append(out, Block{Kind: BlockBullet, Text: fmt.Sprintf(f, a...)}) }
	chart := func(k ChartKind) {
		if charts[k] {
			out = append(out, Block{Kind: BlockChart, Chart: k})
		}
	}

	out = append(out, Block{Kind: BlockTitle, Text: "Mental Health Report for " + userName})
	text("Generated on %s", s.GeneratedAt.UTC().Format("January 02, 2006"))

	heading("Mood Analysis")
	bullet("Average mood score: %.2f / 10", s.Mood.Mean)
	bullet("Number of mood entries: %d", s.Mood.Count)
	bullet("Average conversation sentiment: %.2f", s.Sentiment.Mean)
	chart(ChartMood)

	heading("Daily Surveys Analysis")
	text("Total surveys completed: %d", s.TotalSurveys)
	text("Most Frequent Activities:")
	listed := 0
	for _, a := range s.TopActivities(-1) {
		if listed == topActivities {
			break
		}
		if !survey.IsActivity(a.ID) {
			continue
		}
		bullet("%s: %d times", a.Label, a.Count)
		listed++
	}
	chart(ChartActivity)

	heading("Social Media Usage")
	for _, b := range s.SocialMedia {
		if b.Count == 0 {
			continue
		}
		bullet("%s: %d days (%.1f%%)", b.Label, b.Count, b.Percentage)
	}
	chart(ChartSocialMedia)

	if len(s.CustomActivities) > 0 {
		heading("Custom Activities")
		for _, c := range s.CustomActivities {
			bullet("%s", c)
		}
	}

	heading("Insights and Recommendations")
	for _, in := range s.Insights {
		bullet("%s", in)
	}
	return out
}

const (
	pageMargin  = 72.0
	chartWidth  = 6 * 72.0
	chartHeight = 4 * 72.0

	reportFont = "goregular"
)

func writePDF(blocks []Block, chartDir string, now time.Time, w io.Writer) error {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetCreationDate(now)
	pdf.SetCreator("mindwell", true)
	pdf.AddUTF8FontFromBytes(reportFont, "", goregular.TTF)
	pdf.AddUTF8FontFromBytes(reportFont, "B", gobold.TTF)
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("load report font: %w", err)
	}
	pdf.AddPage()
	_, pageH := pdf.GetPageSize()

	for _, b := range blocks {
		switch b.Kind {
		case BlockTitle:
			pdf.SetFont(reportFont, "B", 22)
			pdf.MultiCell(0, 28, b.Text, "", "C", false)
			pdf.Ln(12)
		case BlockHeading:
			pdf.Ln(12)
			pdf.SetFont(reportFont, "B", 16)
			pdf.MultiCell(0, 20, b.Text, "", "L", false)
			pdf.Ln(8)
		case BlockText, BlockBullet:
			pdf.SetFont(reportFont, "", 12)
			pdf.MultiCell(0, 16, b.String(), "", "L", false)
		case BlockChart:
			if pdf.GetY()+chartHeight+12 > pageH-pageMargin {
				pdf.AddPage()
			}
			y := pdf.GetY() + 12
			pdf.ImageOptions(filepath.Join(chartDir, b.Chart.fileName()), pageMargin, y, chartWidth, chartHeight,
				false, fpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}, 0, "")
			pdf.SetY(y + chartHeight + 6)
		}
		if err := pdf.Error(); err != nil {
			return fmt.Errorf("assemble report: %w", err)
		}
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
