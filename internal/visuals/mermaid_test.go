package visuals

import (
	"strings"
	"testing"

	"streamboard/internal/dashboard"
	"streamboard/internal/snapshot"
)

func TestGenerateTrendChart(t *testing.T) {
	points := []dashboard.TrendPoint{
		{Date: "2024-01-01", Views: 300, Revenue: 1000},
		{Date: "2024-01-02", Views: 500, Revenue: 1000},
	}

	chart := GenerateTrendChart(points)

	if !strings.HasPrefix(chart, "```mermaid\nxychart-beta\n") {
		t.Fatalf("Not a fenced mermaid chart:\n%s", chart)
	}
	if !strings.Contains(chart, `x-axis ["2024-01-01", "2024-01-02"]`) {
		t.Errorf("X-axis labels missing:\n%s", chart)
	}
	if !strings.Contains(chart, "line [1000, 1000]") || !strings.Contains(chart, "line [300, 500]") {
		t.Errorf("Series lines missing:\n%s", chart)
	}
	// Ceiling is 1.2x the tallest value.
	if !strings.Contains(chart, "0 --> 1200") {
		t.Errorf("Y-axis ceiling wrong:\n%s", chart)
	}
}

func TestGenerateTrendChart_Empty(t *testing.T) {
	if got := GenerateTrendChart(nil); got != "" {
		t.Errorf("Empty input must yield empty chart, got %q", got)
	}
}

func TestGeneratePlatformChart(t *testing.T) {
	chart := GeneratePlatformChart([]snapshot.PlatformRow{
		{Name: "Crunchyroll", Revenue: 3000},
		{Name: "Netflix", Revenue: 2000},
	})

	if !strings.Contains(chart, `x-axis ["Crunchyroll", "Netflix"]`) {
		t.Errorf("Platform labels missing:\n%s", chart)
	}
	if !strings.Contains(chart, "bar [3000, 2000]") {
		t.Errorf("Revenue bars missing:\n%s", chart)
	}
}

func TestGenerateHeatmapChart_WeekdayOrder(t *testing.T) {
	chart := GenerateHeatmapChart([]snapshot.HeatmapRow{
		{DayName: "Saturday", Views: 800},
		{DayName: "Monday", Views: 200},
		{DayName: "Wednesday", Views: 400},
	})

	if !strings.Contains(chart, `x-axis ["Monday", "Wednesday", "Saturday"]`) {
		t.Errorf("Days not in calendar order:\n%s", chart)
	}
	if !strings.Contains(chart, "bar [200, 400, 800]") {
		t.Errorf("Values not reordered with labels:\n%s", chart)
	}
}

func TestGenerateRegionChart_DescendingViews(t *testing.T) {
	chart := GenerateRegionChart([]snapshot.RegionRow{
		{RegionName: "Japan", Views: 400},
		{RegionName: "North America", Views: 600},
	})

	if !strings.Contains(chart, `x-axis ["North America", "Japan"]`) {
		t.Errorf("Regions not sorted by views desc:\n%s", chart)
	}
}

func TestGenerateCompletionChart_PercentScale(t *testing.T) {
	chart := GenerateCompletionChart([]snapshot.PerformanceRow{
		{Title: "Naruto Franchise", CompletionRate: 0.75},
		{Title: "Bleach", CompletionRate: 0.5},
	})

	if !strings.Contains(chart, `x-axis ["Naruto Franchise", "Bleach"]`) {
		t.Errorf("Title labels missing:\n%s", chart)
	}
	// Fractions plot as percentages.
	if !strings.Contains(chart, "bar [75, 50]") {
		t.Errorf("Completion rates not scaled to percent:\n%s", chart)
	}
	if got := GenerateCompletionChart(nil); got != "" {
		t.Errorf("Empty input must yield empty chart, got %q", got)
	}
}

func TestGenerateStudioChart(t *testing.T) {
	chart := GenerateStudioChart([]snapshot.StudioRow{
		{Studio: "Studio Pierrot", TotalRevenue: 3600},
		{Studio: "Toei Animation", TotalRevenue: 2400},
	})

	if !strings.Contains(chart, `x-axis ["Studio Pierrot", "Toei Animation"]`) {
		t.Errorf("Studio labels missing:\n%s", chart)
	}
	if !strings.Contains(chart, "bar [3600, 2400]") {
		t.Errorf("Revenue bars missing:\n%s", chart)
	}
}

func TestAxisCeiling(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{0, 1},
		{-5, 1},
		{100, 120},
		{1, 2},
	}
	for _, c := range cases {
		if got := axisCeiling(c.in); got != c.want {
			t.Errorf("axisCeiling(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}
