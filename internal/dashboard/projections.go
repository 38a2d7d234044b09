package dashboard

import (
	"math"
	"sort"
	"strings"

	"streamboard/internal/snapshot"
)

// watchMinutesPerView is the fixed estimate of minutes watched per view used
// to derive the watch-time KPI (converted to hours at aggregation).
const watchMinutesPerView = 20.0

// legacyTitles marks the legacy-era IP for the legacy-vs-modern split.
// Substring match, so it also covers franchise-collapsed names.
var legacyTitles = []string{"Naruto", "Naruto: Shippuuden", "Bleach"}

// TrendPoint is one date bucket of the filtered trend series.
type TrendPoint struct {
	Date    string  `json:"date"`
	Views   float64 `json:"views"`
	Revenue float64 `json:"revenue"`
}

// KPISummary is the recomputed headline block. Revenue and views track the
// date+entity filtered trend; watch time and sentiment come from the filtered
// performance rows (two different base populations, kept as designed).
type KPISummary struct {
	TotalRevenue   float64 `json:"total_revenue"`
	TotalViews     float64 `json:"total_views"`
	TotalWatchTime float64 `json:"total_watch_time"`
	AvgSentiment   float64 `json:"avg_sentiment"`
}

// LegacySplit compares mean revenue of legacy-era titles against the rest of
// the filtered performance set.
type LegacySplit struct {
	LegacyAvgRevenue float64 `json:"legacy_avg_revenue"`
	ModernAvgRevenue float64 `json:"modern_avg_revenue"`
}

// RadarRow is one entry of the top-performer comparison: the five measures of
// a title scaled onto shared 0-100 axes, rounded to whole numbers.
type RadarRow struct {
	Title      string  `json:"title"`
	Revenue    float64 `json:"revenue"`
	Views      float64 `json:"views"`
	Sentiment  float64 `json:"sentiment"`
	Completion float64 `json:"completion"`
	ROI        float64 `json:"roi"`
}

// Projections is the full derived view of one (dataset, filter) pair. It is
// ephemeral: recomputed from scratch on every filter change and replaced
// wholesale, never cached or patched.
type Projections struct {
	Trend             []TrendPoint              `json:"trend"`
	KPIs              KPISummary                `json:"kpis"`
	Performance       []snapshot.PerformanceRow `json:"performance"`
	Scatter           []snapshot.ScatterRow     `json:"scatter"`
	Platforms         []snapshot.PlatformRow    `json:"platforms"`
	Heatmap           []snapshot.HeatmapRow     `json:"heatmap"`
	Regions           []snapshot.RegionRow      `json:"regions"`
	Studios           []snapshot.StudioRow      `json:"studios"`
	FilterRatio       float64                   `json:"filter_ratio"`
	Top               *snapshot.PerformanceRow  `json:"top,omitempty"`
	Bottom            *snapshot.PerformanceRow  `json:"bottom,omitempty"`
	Ranked            []snapshot.PerformanceRow `json:"ranked"`
	CompletionRanking []snapshot.PerformanceRow `json:"completion_ranking"`
	Radar             []RadarRow                `json:"radar"`
	Legacy            LegacySplit               `json:"legacy"`
}

// Project derives all view projections from a normalized dataset and the
// current filter state. Pure function: identical inputs yield identical
// output, and neither input is mutated.
func Project(ds *snapshot.Dataset, f FilterState) Projections {
	var p Projections

	// 1. Trend: date range + title filter, then bucket by date.
	var filteredTrend []snapshot.TrendRow
	for _, row := range ds.Trend {
		if f.inDateRange(row.Date) && f.matchesTitle(row.Title) {
			filteredTrend = append(filteredTrend, row)
		}
	}
	p.Trend = bucketByDate(filteredTrend)

	// 2. Performance and scatter: title filter only. These collections are
	// not time series; the date range reaches them only through the ratio.
	for _, row := range ds.Performance {
		if f.matchesTitle(row.Title) {
			p.Performance = append(p.Performance, row)
		}
	}
	for _, row := range ds.Scatter {
		if f.matchesTitle(row.Title) {
			p.Scatter = append(p.Scatter, row)
		}
	}

	// 3. Platform split: category membership.
	for _, row := range ds.Platforms {
		if f.platformSelected(row.Name) {
			p.Platforms = append(p.Platforms, row)
		}
	}

	// 4. Filter ratio, scaling the collections without a native filter
	// dimension. Each numeric field scales independently.
	p.FilterRatio = filterRatio(ds.Trend, filteredTrend)
	if len(ds.Heatmap) > 0 {
		p.Heatmap = make([]snapshot.HeatmapRow, len(ds.Heatmap))
		for i, row := range ds.Heatmap {
			row.Views *= p.FilterRatio
			p.Heatmap[i] = row
		}
	}
	if len(ds.Regions) > 0 {
		p.Regions = make([]snapshot.RegionRow, len(ds.Regions))
		for i, row := range ds.Regions {
			row.Views *= p.FilterRatio
			row.Revenue *= p.FilterRatio
			p.Regions[i] = row
		}
	}

	// Studio comparison is static context data with no filter dimension at
	// all; it passes through unfiltered and unscaled.
	p.Studios = ds.Studios

	// 5. KPIs.
	for _, t := range filteredTrend {
		p.KPIs.TotalRevenue += t.Revenue
		p.KPIs.TotalViews += t.Views
	}
	for _, row := range p.Performance {
		p.KPIs.TotalWatchTime += row.Views * watchMinutesPerView / 60
	}
	p.KPIs.AvgSentiment = meanSentiment(p.Performance)

	// 6. Leaderboards. Ties keep the first row in collection order; omitted
	// entirely when the filtered set is empty so the highlights widget can
	// render blank without throwing.
	p.Top, p.Bottom = leaderboards(p.Performance)

	// 7. Ranked table.
	p.Ranked = sortedCopy(p.Performance, func(a, b snapshot.PerformanceRow) bool {
		return a.Revenue > b.Revenue
	})
	p.CompletionRanking = sortedCopy(p.Performance, func(a, b snapshot.PerformanceRow) bool {
		return a.CompletionRate > b.CompletionRate
	})

	p.Radar = radarComparison(p.Ranked)
	p.Legacy = legacySplit(p.Performance)

	return p
}

// bucketByDate collapses entity-level trend rows into one point per date,
// sorted ascending. Lexical sort is correct for ISO dates.
func bucketByDate(rows []snapshot.TrendRow) []TrendPoint {
	if len(rows) == 0 {
		return nil
	}

	index := make(map[string]int)
	var points []TrendPoint
	for _, row := range rows {
		i, ok := index[row.Date]
		if !ok {
			i = len(points)
			index[row.Date] = i
			points = append(points, TrendPoint{Date: row.Date})
		}
		points[i].Views += row.Views
		points[i].Revenue += row.Revenue
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}

// filterRatio is the fraction of unfiltered trend volume the current filter
// retains. Defined as 1 when the unfiltered total is zero: no data means no
// scaling, never NaN.
func filterRatio(all, filtered []snapshot.TrendRow) float64 {
	var total, kept float64
	for _, row := range all {
		total += row.Views
	}
	for _, row := range filtered {
		kept += row.Views
	}
	if total <= 0 {
		return 1
	}
	return kept / total
}

// meanSentiment guards the empty set: 0, not NaN.
func meanSentiment(rows []snapshot.PerformanceRow) float64 {
	if len(rows) == 0 {
		return 0
	}
	var sum float64
	for _, row := range rows {
		sum += row.Sentiment
	}
	return sum / float64(len(rows))
}

// leaderboards picks the top performer by revenue and the bottom by
// sentiment. Strict comparisons keep the first-seen row on ties.
func leaderboards(rows []snapshot.PerformanceRow) (top, bottom *snapshot.PerformanceRow) {
	if len(rows) == 0 {
		return nil, nil
	}

	t, b := rows[0], rows[0]
	for _, row := range rows[1:] {
		if row.Revenue > t.Revenue {
			t = row
		}
		if row.Sentiment < b.Sentiment {
			b = row
		}
	}
	return &t, &b
}

// sortedCopy stable-sorts a copy so the source collection order survives for
// tie-breaking elsewhere.
func sortedCopy(rows []snapshot.PerformanceRow, less func(a, b snapshot.PerformanceRow) bool) []snapshot.PerformanceRow {
	if len(rows) == 0 {
		return nil
	}
	out := make([]snapshot.PerformanceRow, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// radarComparison puts the top three revenue performers onto shared 0-100
// axes. Each axis is scaled against the cohort maximum and rounded to whole
// numbers (chart precision); an all-zero axis stays at 0.
func radarComparison(ranked []snapshot.PerformanceRow) []RadarRow {
	if len(ranked) == 0 {
		return nil
	}
	top := ranked
	if len(top) > 3 {
		top = top[:3]
	}

	var maxRevenue, maxViews, maxSentiment, maxCompletion, maxROI float64
	for _, row := range top {
		maxRevenue = math.Max(maxRevenue, row.Revenue)
		maxViews = math.Max(maxViews, row.Views)
		maxSentiment = math.Max(maxSentiment, row.Sentiment)
		maxCompletion = math.Max(maxCompletion, row.CompletionRate)
		maxROI = math.Max(maxROI, row.ROI)
	}

	scale := func(v, max float64) float64 {
		if max <= 0 {
			return 0
		}
		return math.Round(v / max * 100)
	}

	out := make([]RadarRow, len(top))
	for i, row := range top {
		out[i] = RadarRow{
			Title:      row.Title,
			Revenue:    scale(row.Revenue, maxRevenue),
			Views:      scale(row.Views, maxViews),
			Sentiment:  scale(row.Sentiment, maxSentiment),
			Completion: scale(row.CompletionRate, maxCompletion),
			ROI:        scale(row.ROI, maxROI),
		}
	}
	return out
}

// legacySplit computes mean revenue per era over the filtered performance
// set. Empty cohorts average to 0.
func legacySplit(rows []snapshot.PerformanceRow) LegacySplit {
	var legacySum, modernSum float64
	var legacyN, modernN int

	for _, row := range rows {
		if isLegacy(row.Title) {
			legacySum += row.Revenue
			legacyN++
		} else {
			modernSum += row.Revenue
			modernN++
		}
	}

	var s LegacySplit
	if legacyN > 0 {
		s.LegacyAvgRevenue = legacySum / float64(legacyN)
	}
	if modernN > 0 {
		s.ModernAvgRevenue = modernSum / float64(modernN)
	}
	return s
}

func isLegacy(title string) bool {
	for _, t := range legacyTitles {
		if strings.Contains(title, t) {
			return true
		}
	}
	return false
}
