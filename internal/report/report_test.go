package report

import (
	"bytes"
	"strings"
	"testing"

	"streamboard/internal/dashboard"
	"streamboard/internal/snapshot"
	"streamboard/internal/view"
)

var _ view.Sink = (*Builder)(nil)

func testState() (*dashboard.State, *Builder) {
	ds := &snapshot.Dataset{
		Trend: []snapshot.TrendRow{
			{Date: "2024-01-01", Title: "Bleach", Views: 400, Revenue: 100},
			{Date: "2024-01-02", Title: "One Piece", Views: 1200, Revenue: 300},
		},
		Performance: []snapshot.PerformanceRow{
			{Title: "Bleach", Views: 300, Revenue: 600, Sentiment: 0.25, CompletionRate: 0.5, ROI: 90},
			{Title: "One Piece", Views: 1200, Revenue: 2400, Sentiment: 0.75, CompletionRate: 0.25, ROI: 300},
		},
		Scatter: []snapshot.ScatterRow{
			{Title: "Bleach", FillerPercentage: 45, ROIPercentage: 90, TotalViews: 300},
			{Title: "One Piece", FillerPercentage: 15, ROIPercentage: 300, TotalViews: 1200},
		},
		Platforms: []snapshot.PlatformRow{
			{Name: "Crunchyroll", Revenue: 3000, Views: 1500},
		},
		Heatmap: []snapshot.HeatmapRow{
			{DayName: "Monday", Views: 400},
		},
		Studios: []snapshot.StudioRow{
			{Studio: "Studio Pierrot", TotalRevenue: 3600, TotalViews: 1200, AvgSentiment: 0.5, TitleCount: 3},
		},
	}
	b := NewBuilder()
	s := dashboard.NewState(ds, b)
	s.Render()
	return s, b
}

func TestMarkdown(t *testing.T) {
	state, b := testState()

	md, err := b.Markdown(state.Filter())
	if err != nil {
		t.Fatalf("Markdown failed: %v", err)
	}

	for _, want := range []string{
		"# Portfolio Dashboard",
		"2024-01-01 → 2024-01-02",
		"| Total Revenue | $400 |",
		"| Total Views | 1,600 |",
		"**Top Performer**: One Piece ($2,400)",
		"**Needs Attention**: Bleach (0.25 Score)",
		"| One Piece | $2,400 | 1,200 | 0.75 | 300.0% |",
		"Legacy avg revenue $600",
		"## Filler vs ROI",
		"| Bleach | 45.0% | 90.0% | 300 |",
		"## Completion",
		"## Top Performer Comparison",
		"| One Piece | 100 | 100 | 100 | 50 | 100 |",
		"## Studios",
		"| Studio Pierrot | $3,600 | 1,200 | 0.50 | 3 |",
		"```mermaid",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Markdown missing %q:\n%s", want, md)
		}
	}

	// Ranked table is revenue-descending: One Piece before Bleach.
	if strings.Index(md, "| One Piece |") > strings.Index(md, "| Bleach |") {
		t.Error("Ranked table not sorted by revenue")
	}
}

func TestMarkdown_SkipsMissingWidgets(t *testing.T) {
	ds := &snapshot.Dataset{
		Performance: []snapshot.PerformanceRow{
			{Title: "Bleach", Views: 300, Revenue: 600, Sentiment: 0.25},
		},
	}
	b := NewBuilder()
	s := dashboard.NewState(ds, b)
	s.Render()

	md, err := b.Markdown(s.Filter())
	if err != nil {
		t.Fatalf("Markdown failed: %v", err)
	}

	if strings.Contains(md, "## Platforms") || strings.Contains(md, "## Weekly Pattern") ||
		strings.Contains(md, "## Studios") || strings.Contains(md, "## Filler vs ROI") {
		t.Errorf("Sections for absent collections must be skipped:\n%s", md)
	}
	if !strings.Contains(md, "## Title Performance") {
		t.Errorf("Present collection dropped:\n%s", md)
	}
}

func TestMarkdown_TracksFilterChanges(t *testing.T) {
	state, b := testState()

	state.SetTitle("Bleach")

	md, err := b.Markdown(state.Filter())
	if err != nil {
		t.Fatalf("Markdown failed: %v", err)
	}
	if strings.Contains(md, "| One Piece |") {
		t.Error("Report still shows rows the filter excluded")
	}
	if !strings.Contains(md, "title: Bleach") {
		t.Errorf("Filter line not updated:\n%s", md)
	}
}

func TestWriteHTML(t *testing.T) {
	state, b := testState()

	var buf bytes.Buffer
	if err := b.WriteHTML(&buf, state.Filter()); err != nil {
		t.Fatalf("WriteHTML failed: %v", err)
	}
	html := buf.String()

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<h1>Portfolio Dashboard</h1>",
		"Total Revenue <b>$400</b>",
		"<h2>Filler vs ROI</h2>",
		"<h2>Top Performer Comparison</h2>",
		"<h2>Studios</h2>",
		"<h2>Completion</h2>",
		"<pre class=\"mermaid\">",
		"xychart-beta",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML missing %q", want)
		}
	}
	// The markdown fence must not leak into the HTML page.
	if strings.Contains(html, "```") {
		t.Error("Mermaid fence leaked into HTML output")
	}
}

func TestGroupDigits(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-4200, "-4,200"},
	}
	for _, c := range cases {
		if got := groupDigits(c.in); got != c.want {
			t.Errorf("groupDigits(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestDispose(t *testing.T) {
	_, b := testState()
	b.Dispose()

	md, err := b.Markdown(dashboard.FilterState{Title: dashboard.AllTitles})
	if err != nil {
		t.Fatalf("Markdown failed: %v", err)
	}
	if strings.Contains(md, "## Title Performance") {
		t.Error("Dispose must drop accumulated widget data")
	}
}
