package visuals

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"streamboard/internal/dashboard"
	"streamboard/internal/snapshot"
)

// GenerateTrendChart creates a Mermaid xychart-beta for the filtered daily
// trend (revenue and views as two lines).
func GenerateTrendChart(points []dashboard.TrendPoint) string {
	if len(points) == 0 {
		return ""
	}

	var labels []string
	var revenue []string
	var views []string

	maxY := 0.0
	for _, p := range points {
		labels = append(labels, fmt.Sprintf("\"%s\"", p.Date))
		revenue = append(revenue, fmt.Sprintf("%.0f", p.Revenue))
		views = append(views, fmt.Sprintf("%.0f", p.Views))
		if p.Revenue > maxY {
			maxY = p.Revenue
		}
		if p.Views > maxY {
			maxY = p.Views
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Daily Revenue & Views\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Volume\" 0 --> %d\n", axisCeiling(maxY)))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(revenue, ", ")))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(views, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GeneratePlatformChart creates a Mermaid bar chart of revenue per platform.
func GeneratePlatformChart(rows []snapshot.PlatformRow) string {
	if len(rows) == 0 {
		return ""
	}

	var labels []string
	var values []string
	maxY := 0.0
	for _, r := range rows {
		labels = append(labels, fmt.Sprintf("\"%s\"", r.Name))
		values = append(values, fmt.Sprintf("%.0f", r.Revenue))
		if r.Revenue > maxY {
			maxY = r.Revenue
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Revenue by Platform\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Revenue\" 0 --> %d\n", axisCeiling(maxY)))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateHeatmapChart creates a Mermaid bar chart for the weekday viewing
// pattern, already scaled by the filter ratio.
func GenerateHeatmapChart(rows []snapshot.HeatmapRow) string {
	if len(rows) == 0 {
		return ""
	}

	sorted := sortWeekdays(rows)

	var labels []string
	var values []string
	maxY := 0.0
	for _, r := range sorted {
		labels = append(labels, fmt.Sprintf("\"%s\"", r.DayName))
		values = append(values, fmt.Sprintf("%.0f", r.Views))
		if r.Views > maxY {
			maxY = r.Views
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Viewing by Day of Week\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Views\" 0 --> %d\n", axisCeiling(maxY)))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateRegionChart creates a Mermaid bar chart of views per region, sorted
// descending like the page widget.
func GenerateRegionChart(rows []snapshot.RegionRow) string {
	if len(rows) == 0 {
		return ""
	}

	sorted := make([]snapshot.RegionRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Views > sorted[j].Views })

	var labels []string
	var values []string
	maxY := 0.0
	for _, r := range sorted {
		labels = append(labels, fmt.Sprintf("\"%s\"", r.RegionName))
		values = append(values, fmt.Sprintf("%.0f", r.Views))
		if r.Views > maxY {
			maxY = r.Views
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Views by Region\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Views\" 0 --> %d\n", axisCeiling(maxY)))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateCompletionChart creates a Mermaid bar chart of completion rates per
// title, in the ranking order the caller supplies. Rates are fractions and
// plot as percentages.
func GenerateCompletionChart(rows []snapshot.PerformanceRow) string {
	if len(rows) == 0 {
		return ""
	}

	var labels []string
	var values []string
	maxY := 0.0
	for _, r := range rows {
		pct := r.CompletionRate * 100
		labels = append(labels, fmt.Sprintf("\"%s\"", r.Title))
		values = append(values, fmt.Sprintf("%.0f", pct))
		if pct > maxY {
			maxY = pct
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Completion Rate by Title\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Completion %%\" 0 --> %d\n", axisCeiling(maxY)))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateStudioChart creates a Mermaid bar chart of total revenue per studio.
func GenerateStudioChart(rows []snapshot.StudioRow) string {
	if len(rows) == 0 {
		return ""
	}

	var labels []string
	var values []string
	maxY := 0.0
	for _, r := range rows {
		labels = append(labels, fmt.Sprintf("\"%s\"", r.Studio))
		values = append(values, fmt.Sprintf("%.0f", r.TotalRevenue))
		if r.TotalRevenue > maxY {
			maxY = r.TotalRevenue
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Revenue by Studio\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Revenue\" 0 --> %d\n", axisCeiling(maxY)))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

var weekdayOrder = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func sortWeekdays(rows []snapshot.HeatmapRow) []snapshot.HeatmapRow {
	rank := make(map[string]int, len(weekdayOrder))
	for i, d := range weekdayOrder {
		rank[d] = i
	}
	sorted := make([]snapshot.HeatmapRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool { return rank[sorted[i].DayName] < rank[sorted[j].DayName] })
	return sorted
}

// axisCeiling scales the Y-axis to give breathing room above the tallest bar.
func axisCeiling(maxY float64) int {
	if maxY <= 0 {
		return 1
	}
	return int(math.Ceil(maxY * 1.2))
}
