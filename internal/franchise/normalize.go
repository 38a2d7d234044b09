package franchise

import (
	"streamboard/internal/snapshot"
)

// Normalize folds franchise aliases into canonical entities and re-aggregates
// every entity-bearing fact collection. Additive measures (views, revenue)
// are summed. Rate measures (sentiment, completion rate, filler, ROI) are
// simple per-record means, never volume-weighted; the divisor is the count of
// constituent records actually present.
//
// The returned dataset is the baseline for all subsequent filtering. Inputs
// are never mutated. Collections without an entity field pass through as-is.
func Normalize(ds *snapshot.Dataset, aliases AliasMap) *snapshot.Dataset {
	r := aliases.resolver()

	out := &snapshot.Dataset{
		KPIs:        ds.KPIs,
		DailyTotals: ds.DailyTotals,
		Platforms:   ds.Platforms,
		Heatmap:     ds.Heatmap,
		Regions:     ds.Regions,
		Studios:     ds.Studios,
	}

	out.Trend = normalizeTrend(ds.Trend, r)
	out.Scatter = normalizeScatter(ds.Scatter, r)
	out.Performance = normalizePerformance(ds.Performance, out.Scatter, r)
	out.Titles = normalizeTitles(ds.Titles, r)

	return out
}

// normalizeTrend groups trend rows by (date, canonical title), summing views
// and revenue. Group order follows first appearance in the input.
func normalizeTrend(rows []snapshot.TrendRow, r resolver) []snapshot.TrendRow {
	if len(rows) == 0 {
		return nil
	}

	type key struct{ date, title string }
	index := make(map[key]int)
	out := make([]snapshot.TrendRow, 0, len(rows))

	for _, row := range rows {
		title := r.canonical(row.Title)
		k := key{row.Date, title}
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, snapshot.TrendRow{Date: row.Date, Title: title})
		}
		out[i].Views += row.Views
		out[i].Revenue += row.Revenue
	}
	return out
}

// normalizeScatter groups scatter rows by canonical title. Filler and ROI are
// rate measures (mean); total views are additive.
func normalizeScatter(rows []snapshot.ScatterRow, r resolver) []snapshot.ScatterRow {
	if len(rows) == 0 {
		return nil
	}

	type acc struct {
		filler, roi, views float64
		count              int
	}
	index := make(map[string]int)
	var order []string
	accs := make(map[string]*acc)

	for _, row := range rows {
		title := r.canonical(row.Title)
		if _, ok := accs[title]; !ok {
			index[title] = len(order)
			order = append(order, title)
			accs[title] = &acc{}
		}
		a := accs[title]
		a.filler += row.FillerPercentage
		a.roi += row.ROIPercentage
		a.views += row.TotalViews
		a.count++
	}

	out := make([]snapshot.ScatterRow, len(order))
	for _, title := range order {
		a := accs[title]
		out[index[title]] = snapshot.ScatterRow{
			Title:            title,
			FillerPercentage: a.filler / float64(a.count),
			ROIPercentage:    a.roi / float64(a.count),
			TotalViews:       a.views,
		}
	}
	return out
}

// normalizePerformance groups performance rows by canonical title and pulls
// the franchise ROI from the already-normalized scatter collection. A missing
// scatter match defaults ROI to 0; that mirrors the exporter's behavior and
// is not an error.
func normalizePerformance(rows []snapshot.PerformanceRow, scatter []snapshot.ScatterRow, r resolver) []snapshot.PerformanceRow {
	if len(rows) == 0 {
		return nil
	}

	roiByTitle := make(map[string]float64, len(scatter))
	for _, s := range scatter {
		roiByTitle[s.Title] = s.ROIPercentage
	}

	type acc struct {
		views, revenue, sentiment, completion float64
		count                                 int
	}
	index := make(map[string]int)
	var order []string
	accs := make(map[string]*acc)

	for _, row := range rows {
		title := r.canonical(row.Title)
		if _, ok := accs[title]; !ok {
			index[title] = len(order)
			order = append(order, title)
			accs[title] = &acc{}
		}
		a := accs[title]
		a.views += row.Views
		a.revenue += row.Revenue
		a.sentiment += row.Sentiment
		a.completion += row.CompletionRate
		a.count++
	}

	out := make([]snapshot.PerformanceRow, len(order))
	for _, title := range order {
		a := accs[title]
		out[index[title]] = snapshot.PerformanceRow{
			Title:          title,
			Views:          a.views,
			Revenue:        a.revenue,
			Sentiment:      a.sentiment / float64(a.count),
			CompletionRate: a.completion / float64(a.count),
			ROI:            roiByTitle[title],
		}
	}
	return out
}

// normalizeTitles deduplicates the title list after canonicalization,
// keeping first-seen order.
func normalizeTitles(titles []snapshot.TitleEntry, r resolver) []snapshot.TitleEntry {
	if len(titles) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(titles))
	out := make([]snapshot.TitleEntry, 0, len(titles))
	for _, t := range titles {
		c := r.canonical(t.Title)
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, snapshot.TitleEntry{Title: c})
	}
	return out
}
