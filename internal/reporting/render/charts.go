package render

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/yungbote/mindwell-backend/internal/reporting/aggregate"
)

type ChartKind string

const (
	ChartMood        ChartKind = "mood"
	ChartActivity    ChartKind = "activity"
	ChartSocialMedia ChartKind = "social_media"
)

func (k ChartKind) fileName() string { return string(k) + "_plot.png" }

// PlannedCharts lists the charts s has data for, in document order.
func PlannedCharts(s *aggregate.Summary) []ChartKind {
	out := []ChartKind{}
	if s == nil {
		return out
	}
	if len(s.MoodSeries) > 0 {
		out = append(out, ChartMood)
	}
	if len(aggregate.CatalogActivities(s.ActivityCounts)) > 0 {
		out = append(out, ChartActivity)
	}
	if s.TotalSurveys > 0 {
		out = append(out, ChartSocialMedia)
	}
	return out
}

var (
	colorInk    = color.NRGBA{0x22, 0x22, 0x22, 0xff}
	colorGrid   = color.NRGBA{0xb0, 0xb0, 0xb0, 0xff}
	colorSeries = color.NRGBA{0x1f, 0x77, 0xb4, 0xff}

	sliceColors = map[string]color.NRGBA{
		"green":  {0x00, 0x80, 0x00, 0xff},
		"yellow": {0xff, 0xff, 0x00, 0xff},
		"orange": {0xff, 0xa5, 0x00, 0xff},
		"red":    {0xff, 0x00, 0x00, 0xff},
	}
	colorFallback = color.NRGBA{0x80, 0x80, 0x80, 0xff}
)

type painter struct {
	font *truetype.Font
}

func newPainter() (*painter, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse chart font: %w", err)
	}
	return &painter{font: f}, nil
}

// face is built per chart; truetype faces keep caches and are not safe to share.
func (p *painter) face(size float64) font.Face {
	return truetype.NewFace(p.font, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingNone})
}

func (p *painter) draw(kind ChartKind, s *aggregate.Summary, path string) error {
	var dc *gg.Context
	switch kind {
	case ChartMood:
		dc = p.moodChart(s)
	case ChartActivity:
		dc = p.activityChart(s)
	case ChartSocialMedia:
		dc = p.socialMediaChart(s)
	default:
		return fmt.Errorf("unknown chart %q", kind)
	}
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to write %s chart: %w", kind, err)
	}
	return nil
}

type plotArea struct{ x0, y0, x1, y1 float64 }

func (a plotArea) w() float64 { return a.x1 - a.x0 }
func (a plotArea) h() float64 { return a.y1 - a.y0 }

func (p *painter) canvas(w, h int, title string) *gg.Context {
	dc := gg.NewContext(w, h)
	dc.SetColor(color.White)
	dc.Clear()
	dc.SetColor(colorInk)
	dc.SetFontFace(p.face(22))
	dc.DrawStringAnchored(title, float64(w)/2, 32, 0.5, 0.5)
	return dc
}

func (p *painter) axes(dc *gg.Context, a plotArea, xLabel, yLabel string, yMax, yStep float64) {
	dc.SetFontFace(p.face(14))
	for v := 0.0; v <= yMax+1e-9; v += yStep {
		y := a.y1 - v/yMax*a.h()
		dc.SetColor(colorGrid)
		dc.SetLineWidth(1)
		dc.SetDash(6, 4)
		dc.DrawLine(a.x0, y, a.x1, y)
		dc.Stroke()
		dc.SetDash()
		dc.SetColor(colorInk)
		dc.DrawStringAnchored(trimFloat(v), a.x0-10, y, 1, 0.5)
	}
	dc.SetColor(colorInk)
	dc.SetLineWidth(1.5)
	dc.DrawLine(a.x0, a.y0, a.x0, a.y1)
	dc.DrawLine(a.x0, a.y1, a.x1, a.y1)
	dc.Stroke()

	dc.SetFontFace(p.face(16))
	dc.DrawStringAnchored(xLabel, a.x0+a.w()/2, float64(dc.Height())-18, 0.5, 0.5)
	dc.Push()
	dc.RotateAbout(gg.Radians(-90), 22, a.y0+a.h()/2)
	dc.DrawStringAnchored(yLabel, 22, a.y0+a.h()/2, 0.5, 0.5)
	dc.Pop()
}

func (p *painter) slantedLabel(dc *gg.Context, s string, x, y float64) {
	dc.Push()
	dc.RotateAbout(gg.Radians(-45), x, y)
	dc.DrawStringAnchored(s, x, y, 1, 0.5)
	dc.Pop()
}

func (p *painter) moodChart(s *aggregate.Summary) *gg.Context {
	dc := p.canvas(1000, 600, fmt.Sprintf("Mood Trend (Last %d Days)", s.WindowDays))
	area := plotArea{x0: 80, y0: 70, x1: 960, y1: 470}
	p.axes(dc, area, "Date", "Mood Score", 10, 2)

	series := s.MoodSeries
	first, last := series[0].Timestamp, series[len(series)-1].Timestamp
	span := last.Sub(first)
	const pad = 24.0
	xOf := func(t time.Time) float64 {
		if span <= 0 {
			return area.x0 + area.w()/2
		}
		return area.x0 + pad + float64(t.Sub(first))/float64(span)*(area.w()-2*pad)
	}
	yOf := func(score int) float64 { return area.y1 - float64(score)/10*area.h() }

	dc.SetColor(colorSeries)
	dc.SetLineWidth(2.5)
	for i, pt := range series {
		if i == 0 {
			dc.MoveTo(xOf(pt.Timestamp), yOf(pt.Score))
			continue
		}
		dc.LineTo(xOf(pt.Timestamp), yOf(pt.Score))
	}
	dc.Stroke()
	for _, pt := range series {
		dc.DrawCircle(xOf(pt.Timestamp), yOf(pt.Score), 5)
		dc.Fill()
	}

	dc.SetColor(colorInk)
	dc.SetFontFace(p.face(13))
	step := int(math.Ceil(float64(len(series)) / 10))
	lastLabel := ""
	for i := 0; i < len(series); i += step {
		label := series[i].Timestamp.UTC().Format("Jan 02")
		if label == lastLabel {
			continue
		}
		lastLabel = label
		p.slantedLabel(dc, label, xOf(series[i].Timestamp), area.y1+14)
	}
	return dc
}

func (p *painter) activityChart(s *aggregate.Summary) *gg.Context {
	dc := p.canvas(1000, 600, fmt.Sprintf("Activity Frequency (Last %d Days)", s.WindowDays))
	area := plotArea{x0: 80, y0: 70, x1: 960, y1: 440}

	items := aggregate.CatalogActivities(s.ActivityCounts)
	maxCount := 0
	for _, it := range items {
		if it.Count > maxCount {
			maxCount = it.Count
		}
	}
	yStep := niceStep(float64(maxCount))
	yMax := math.Ceil(float64(maxCount)/yStep) * yStep
	p.axes(dc, area, "Activity", "Count", yMax, yStep)

	slot := area.w() / float64(len(items))
	barW := slot * 0.6
	dc.SetFontFace(p.face(13))
	for i, it := range items {
		cx := area.x0 + slot*(float64(i)+0.5)
		h := float64(it.Count) / yMax * area.h()
		dc.SetColor(colorSeries)
		dc.DrawRectangle(cx-barW/2, area.y1-h, barW, h)
		dc.Fill()
		dc.SetColor(colorInk)
		dc.DrawStringAnchored(fmt.Sprint(it.Count), cx, area.y1-h-10, 0.5, 0.5)
		p.slantedLabel(dc, it.Label, cx, area.y1+14)
	}
	return dc
}

func (p *painter) socialMediaChart(s *aggregate.Summary) *gg.Context {
	const size = 800
	dc := p.canvas(size, size, "Social Media Usage Distribution")
	cx, cy, r := float64(size)/2, float64(size)/2+20, 260.0

	total := 0
	for _, b := range s.SocialMedia {
		total += b.Count
	}
	angle := -math.Pi / 2
	for _, b := range s.SocialMedia {
		if b.Count == 0 || total == 0 {
			continue
		}
		sweep := float64(b.Count) / float64(total) * 2 * math.Pi
		c, ok := sliceColors[b.Color]
		if !ok {
			c = colorFallback
		}
		dc.SetColor(c)
		dc.MoveTo(cx, cy)
		dc.DrawArc(cx, cy, r, angle, angle+sweep)
		dc.ClosePath()
		dc.FillPreserve()
		dc.SetColor(color.White)
		dc.SetLineWidth(2)
		dc.Stroke()

		mid := angle + sweep/2
		dc.SetColor(colorInk)
		dc.SetFontFace(p.face(16))
		lx, ly := cx+math.Cos(mid)*r*1.18, cy+math.Sin(mid)*r*1.18
		ax := 0.0
		if math.Cos(mid) < 0 {
			ax = 1
		}
		dc.DrawStringAnchored(b.Label, lx, ly, ax, 0.5)
		dc.SetFontFace(p.face(15))
		dc.DrawStringAnchored(fmt.Sprintf("%.1f%%", b.Percentage), cx+math.Cos(mid)*r*0.6, cy+math.Sin(mid)*r*0.6, 0.5, 0.5)
		angle += sweep
	}
	return dc
}

// niceStep picks a 1/2/5 tick step giving at most ~8 ticks.
func niceStep(max float64) float64 {
	if max <= 5 {
		return 1
	}
	raw := max / 8
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 5, 10} {
		if raw <= m*mag {
			return m * mag
		}
	}
	return 10 * mag
}

func trimFloat(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}
