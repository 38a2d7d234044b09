package report

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"streamboard/internal/dashboard"
	"streamboard/internal/snapshot"
	"streamboard/internal/view"
	"streamboard/internal/visuals"
)

// htmlModel mirrors reportModel for the standalone HTML export. Mermaid
// blocks are embedded as pre.mermaid elements and rendered client-side by the
// mermaid runtime; no server involved.
type htmlModel struct {
	Filter     dashboard.FilterState
	KPIs       dashboard.KPISummary
	Highlights dashboard.Highlights
	Ranked     []snapshot.PerformanceRow
	Scatter    []snapshot.ScatterRow
	Radar      []dashboard.RadarRow
	Studios    []snapshot.StudioRow
	Legacy     dashboard.LegacySplit
	Charts     []htmlChart
}

type htmlChart struct {
	Title string
	Body  string
}

var htmlTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"currency": func(v float64) string { return "$" + groupDigits(v) },
	"number":   groupDigits,
	"decimal":  func(v float64) string { return fmt.Sprintf("%.2f", v) },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Portfolio Dashboard</title>
<style>
body { font-family: sans-serif; margin: 2rem auto; max-width: 960px; color: #1e293b; }
.kpis { display: flex; gap: 1rem; }
.kpi { flex: 1; border: 1px solid #e2e8f0; border-radius: 8px; padding: 1rem; }
.kpi b { display: block; font-size: 1.4rem; }
table { border-collapse: collapse; width: 100%; margin: 1rem 0; }
th, td { border-bottom: 1px solid #e2e8f0; padding: .4rem .6rem; text-align: left; }
td.num { text-align: right; }
</style>
<script type="module">
import mermaid from 'https://cdn.jsdelivr.net/npm/mermaid@10/dist/mermaid.esm.min.mjs';
mermaid.initialize({ startOnLoad: true });
</script>
</head>
<body>
<h1>Portfolio Dashboard</h1>
<p>Filter: {{if .Filter.DateFrom}}{{.Filter.DateFrom}} – {{.Filter.DateTo}}{{else}}full range{{end}}, title: {{.Filter.Title}}</p>
<div class="kpis">
<div class="kpi">Total Revenue <b>{{currency .KPIs.TotalRevenue}}</b></div>
<div class="kpi">Total Views <b>{{number .KPIs.TotalViews}}</b></div>
<div class="kpi">Watch Time (Hrs) <b>{{number .KPIs.TotalWatchTime}}</b></div>
<div class="kpi">Avg Sentiment <b>{{decimal .KPIs.AvgSentiment}}</b></div>
</div>
{{if .Highlights.Top}}
<h2>Highlights</h2>
<p>Top performer: <b>{{.Highlights.Top.Title}}</b> ({{currency .Highlights.Top.Revenue}}).
Lowest sentiment: <b>{{.Highlights.Bottom.Title}}</b> ({{decimal .Highlights.Bottom.Sentiment}}).</p>
{{end}}
{{if .Ranked}}
<h2>Title Performance</h2>
<table>
<tr><th>Title</th><th>Revenue</th><th>Views</th><th>Sentiment</th><th>ROI</th></tr>
{{range .Ranked}}<tr><td>{{.Title}}</td><td class="num">{{currency .Revenue}}</td><td class="num">{{number .Views}}</td><td class="num">{{decimal .Sentiment}}</td><td class="num">{{decimal .ROI}}%</td></tr>
{{end}}</table>
<p>Era split: legacy avg revenue {{currency .Legacy.LegacyAvgRevenue}}, modern avg revenue {{currency .Legacy.ModernAvgRevenue}}.</p>
{{end}}
{{if .Scatter}}
<h2>Filler vs ROI</h2>
<table>
<tr><th>Title</th><th>Filler</th><th>ROI</th><th>Views</th></tr>
{{range .Scatter}}<tr><td>{{.Title}}</td><td class="num">{{decimal .FillerPercentage}}%</td><td class="num">{{decimal .ROIPercentage}}%</td><td class="num">{{number .TotalViews}}</td></tr>
{{end}}</table>
{{end}}
{{if .Radar}}
<h2>Top Performer Comparison</h2>
<p>Axes scaled 0-100 against the cohort maximum.</p>
<table>
<tr><th>Title</th><th>Revenue</th><th>Views</th><th>Sentiment</th><th>Completion</th><th>ROI</th></tr>
{{range .Radar}}<tr><td>{{.Title}}</td><td class="num">{{number .Revenue}}</td><td class="num">{{number .Views}}</td><td class="num">{{number .Sentiment}}</td><td class="num">{{number .Completion}}</td><td class="num">{{number .ROI}}</td></tr>
{{end}}</table>
{{end}}
{{if .Studios}}
<h2>Studios</h2>
<table>
<tr><th>Studio</th><th>Revenue</th><th>Views</th><th>Sentiment</th><th>Titles</th></tr>
{{range .Studios}}<tr><td>{{.Studio}}</td><td class="num">{{currency .TotalRevenue}}</td><td class="num">{{number .TotalViews}}</td><td class="num">{{decimal .AvgSentiment}}</td><td class="num">{{.TitleCount}}</td></tr>
{{end}}</table>
{{end}}
{{range .Charts}}
<h2>{{.Title}}</h2>
<pre class="mermaid">
{{.Body}}
</pre>
{{end}}
</body>
</html>
`))

// WriteHTML renders the accumulated widget data as a standalone HTML page.
func (b *Builder) WriteHTML(w io.Writer, filter dashboard.FilterState) error {
	m := htmlModel{Filter: filter}

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
	if v, ok := b.widgets[view.WidgetScatter].([]snapshot.ScatterRow); ok {
		m.Scatter = v
	}
	if v, ok := b.widgets[view.WidgetRadar].([]dashboard.RadarRow); ok {
		m.Radar = v
	}
	if v, ok := b.widgets[view.WidgetStudios].([]snapshot.StudioRow); ok {
		m.Studios = v
	}

	addChart := func(title, fenced string) {
		if body := stripFence(fenced); body != "" {
			m.Charts = append(m.Charts, htmlChart{Title: title, Body: body})
		}
	}
	if v, ok := b.widgets[view.WidgetTrend].([]dashboard.TrendPoint); ok {
		addChart("Trend", visuals.GenerateTrendChart(v))
	}
	if v, ok := b.widgets[view.WidgetPlatform].([]snapshot.PlatformRow); ok {
		addChart("Platforms", visuals.GeneratePlatformChart(v))
	}
	if v, ok := b.widgets[view.WidgetHeatmap].([]snapshot.HeatmapRow); ok {
		addChart("Weekly Pattern", visuals.GenerateHeatmapChart(v))
	}
	if v, ok := b.widgets[view.WidgetRegion].([]snapshot.RegionRow); ok {
		addChart("Regions", visuals.GenerateRegionChart(v))
	}
	if v, ok := b.widgets[view.WidgetCompletion].([]snapshot.PerformanceRow); ok {
		addChart("Completion", visuals.GenerateCompletionChart(v))
	}
	if v, ok := b.widgets[view.WidgetStudios].([]snapshot.StudioRow); ok {
		addChart("Studios", visuals.GenerateStudioChart(v))
	}

	return htmlTemplate.Execute(w, m)
}

// stripFence removes the markdown code fence around a mermaid block.
func stripFence(s string) string {
	s = strings.TrimPrefix(s, "```mermaid\n")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
