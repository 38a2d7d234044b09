package report

import (
	"fmt"
	"strings"
	"text/template"

	"streamboard/internal/dashboard"
	"streamboard/internal/snapshot"
	"streamboard/internal/view"
	"streamboard/internal/visuals"
)

// Builder is a view.Sink that accumulates the latest data pushed to each
// widget and assembles it into a report. It is the text-mode stand-in for a
// chart canvas: Render and Update both just replace the bound data.
type Builder struct {
	widgets map[string]any
}

func NewBuilder() *Builder {
	return &Builder{widgets: make(map[string]any)}
}

func (b *Builder) Render(widget string, data any) error {
	b.widgets[widget] = data
	return nil
}

func (b *Builder) Update(widget string, data any) error {
	b.widgets[widget] = data
	return nil
}

func (b *Builder) Dispose() {
	b.widgets = make(map[string]any)
}

// reportModel is the view model handed to the markdown template.
type reportModel struct {
	Filter     dashboard.FilterState
	KPIs       dashboard.KPISummary
	Highlights dashboard.Highlights
	Ranked     []snapshot.PerformanceRow
	Scatter    []snapshot.ScatterRow
	Radar      []dashboard.RadarRow
	Studios    []snapshot.StudioRow
	Legacy     dashboard.LegacySplit
	TrendChart string
	Platform   string
	Heatmap    string
	Region     string
	Completion string
	Studio     string
}

var mdTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"currency": func(v float64) string { return fmt.Sprintf("$%s", groupDigits(v)) },
	"number":   groupDigits,
	"decimal":  func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"percent":  func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
}).Parse(`# Portfolio Dashboard

Filter: {{if .Filter.DateFrom}}{{.Filter.DateFrom}} → {{.Filter.DateTo}}{{else}}full range{{end}}, title: {{.Filter.Title}}

## Key Metrics

| Metric | Value |
|---|---|
| Total Revenue | {{currency .KPIs.TotalRevenue}} |
| Total Views | {{number .KPIs.TotalViews}} |
| Watch Time (Hrs) | {{number .KPIs.TotalWatchTime}} |
| Avg Sentiment | {{decimal .KPIs.AvgSentiment}} |
{{if .Highlights.Top}}
## Highlights

- **Top Performer**: {{.Highlights.Top.Title}} ({{currency .Highlights.Top.Revenue}})
- **Needs Attention**: {{.Highlights.Bottom.Title}} ({{decimal .Highlights.Bottom.Sentiment}} Score)
{{end}}{{if .Ranked}}
## Title Performance

| Title | Revenue | Views | Sentiment | ROI |
|---|---:|---:|:-:|:-:|
{{range .Ranked}}| {{.Title}} | {{currency .Revenue}} | {{number .Views}} | {{decimal .Sentiment}} | {{percent .ROI}} |
{{end}}
**Era Split**: Legacy avg revenue {{currency .Legacy.LegacyAvgRevenue}}, Modern avg revenue {{currency .Legacy.ModernAvgRevenue}}
{{end}}{{if .TrendChart}}
## Trend

{{.TrendChart}}
{{end}}{{if .Platform}}
## Platforms

{{.Platform}}
{{end}}{{if .Heatmap}}
## Weekly Pattern

{{.Heatmap}}
{{end}}{{if .Region}}
## Regions

{{.Region}}
{{end}}{{if .Scatter}}
## Filler vs ROI

| Title | Filler | ROI | Views |
|---|--:|--:|--:|
{{range .Scatter}}| {{.Title}} | {{percent .FillerPercentage}} | {{percent .ROIPercentage}} | {{number .TotalViews}} |
{{end}}{{end}}{{if .Completion}}
## Completion

{{.Completion}}
{{end}}{{if .Radar}}
## Top Performer Comparison

Axes scaled 0-100 against the cohort maximum.

| Title | Revenue | Views | Sentiment | Completion | ROI |
|---|--:|--:|--:|--:|--:|
{{range .Radar}}| {{.Title}} | {{number .Revenue}} | {{number .Views}} | {{number .Sentiment}} | {{number .Completion}} | {{number .ROI}} |
{{end}}{{end}}{{if .Studios}}
## Studios

| Studio | Revenue | Views | Sentiment | Titles |
|---|--:|--:|--:|--:|
{{range .Studios}}| {{.Studio}} | {{currency .TotalRevenue}} | {{number .TotalViews}} | {{decimal .AvgSentiment}} | {{.TitleCount}} |
{{end}}{{if .Studio}}
{{.Studio}}
{{end}}{{end}}`))

// Markdown assembles the accumulated widget data into a markdown report.
// Widgets that never received data (missing collections) are skipped.
func (b *Builder) Markdown(filter dashboard.FilterState) (string, error) {
	m := reportModel{Filter: filter}

	if v, ok := b.widgets[view.WidgetKPIs].(dashboard.KPISummary); ok {
		m.KPIs = v
	}
	if v, ok := b.widgets[view.WidgetHighlights].(dashboard.Highlights); ok {
		m.Highlights = v
	}
	if v, ok := b.widgets[view.WidgetTable].([]snapshot.PerformanceRow); ok {
		m.Ranked = v
	}
	if v, ok := b.widgets[view.WidgetLegacy].(dashboard.LegacySplit); ok {
		m.Legacy = v
	}
	if v, ok := b.widgets[view.WidgetTrend].([]dashboard.TrendPoint); ok {
		m.TrendChart = visuals.GenerateTrendChart(v)
	}
	if v, ok := b.widgets[view.WidgetPlatform].([]snapshot.PlatformRow); ok {
		m.Platform = visuals.GeneratePlatformChart(v)
	}
	if v, ok := b.widgets[view.WidgetHeatmap].([]snapshot.HeatmapRow); ok {
		m.Heatmap = visuals.GenerateHeatmapChart(v)
	}
	if v, ok := b.widgets[view.WidgetRegion].([]snapshot.RegionRow); ok {
		m.Region = visuals.GenerateRegionChart(v)
	}
	if v, ok := b.widgets[view.WidgetScatter].([]snapshot.ScatterRow); ok {
		m.Scatter = v
	}
	if v, ok := b.widgets[view.WidgetCompletion].([]snapshot.PerformanceRow); ok {
		m.Completion = visuals.GenerateCompletionChart(v)
	}
	if v, ok := b.widgets[view.WidgetRadar].([]dashboard.RadarRow); ok {
		m.Radar = v
	}
	if v, ok := b.widgets[view.WidgetStudios].([]snapshot.StudioRow); ok {
		m.Studios = v
		m.Studio = visuals.GenerateStudioChart(v)
	}

	var sb strings.Builder
	if err := mdTemplate.Execute(&sb, m); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// groupDigits renders a float with thousands separators and no fraction,
// matching the page's toLocaleString formatting.
func groupDigits(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := fmt.Sprintf("%.0f", v)
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
