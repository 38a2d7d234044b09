package snapshot

import "encoding/json"

// Dataset is the immutable snapshot a dashboard page is built from. Each field
// is one named fact collection from the exported JSON document; collections
// absent from the document stay empty, which downstream consumers treat as
// "widget renders nothing" rather than an error.
type Dataset struct {
	KPIs        KPIBlock         `json:"kpis"`
	Titles      []TitleEntry     `json:"anime_list"`
	Performance []PerformanceRow `json:"anime_performance"`
	Trend       []TrendRow       `json:"daily_anime_trend"`
	DailyTotals []TrendRow       `json:"daily_trend"`
	Platforms   []PlatformRow    `json:"platform_split"`
	Scatter     []ScatterRow     `json:"scatter_plot"`
	Heatmap     []HeatmapRow     `json:"heatmap"`
	Regions     []RegionRow      `json:"region_split"`
	Studios     []StudioRow      `json:"studio_comparison"`
}

// KPIBlock is the pre-computed KPI seed shipped with the snapshot. It is only
// a seed: the dashboard recomputes KPIs from filtered data on every pass.
type KPIBlock struct {
	TotalRevenue   float64 `json:"total_revenue"`
	TotalViews     float64 `json:"total_views"`
	TotalWatchTime float64 `json:"total_watch_time"`
	AvgSentiment   float64 `json:"avg_sentiment"`
}

// TrendRow is one day of one title's viewing activity.
type TrendRow struct {
	Date    string  `json:"date"`
	Title   string  `json:"title,omitempty"`
	Views   float64 `json:"views"`
	Revenue float64 `json:"revenue"`
}

// PerformanceRow holds the per-title aggregate measures. Views and Revenue are
// additive; Sentiment, CompletionRate and ROI are rate measures.
type PerformanceRow struct {
	Title          string  `json:"title"`
	Views          float64 `json:"views"`
	Revenue        float64 `json:"revenue"`
	Sentiment      float64 `json:"sentiment"`
	CompletionRate float64 `json:"completion_rate"`
	ROI            float64 `json:"roi"`
}

// UnmarshalJSON resolves the sentiment field-name ambiguity once at ingestion:
// older exports carry "avg_sentiment" where newer ones carry "sentiment".
func (r *PerformanceRow) UnmarshalJSON(data []byte) error {
	type raw struct {
		Title          string   `json:"title"`
		Views          float64  `json:"views"`
		Revenue        float64  `json:"revenue"`
		Sentiment      *float64 `json:"sentiment"`
		AvgSentiment   *float64 `json:"avg_sentiment"`
		CompletionRate float64  `json:"completion_rate"`
		ROI            float64  `json:"roi"`
	}
	var v raw
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = PerformanceRow{
		Title:          v.Title,
		Views:          v.Views,
		Revenue:        v.Revenue,
		CompletionRate: v.CompletionRate,
		ROI:            v.ROI,
	}
	switch {
	case v.Sentiment != nil:
		r.Sentiment = *v.Sentiment
	case v.AvgSentiment != nil:
		r.Sentiment = *v.AvgSentiment
	}
	return nil
}

// PlatformRow is one slice of the platform revenue split.
type PlatformRow struct {
	Name    string  `json:"platform_name"`
	Revenue float64 `json:"revenue"`
	Views   float64 `json:"views"`
}

// UnmarshalJSON accepts the platform name under either "platform_name" or
// "name"; both occur in the wild.
func (r *PlatformRow) UnmarshalJSON(data []byte) error {
	type raw struct {
		PlatformName string  `json:"platform_name"`
		Name         string  `json:"name"`
		Revenue      float64 `json:"revenue"`
		Views        float64 `json:"views"`
	}
	var v raw
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	name := v.PlatformName
	if name == "" {
		name = v.Name
	}
	*r = PlatformRow{Name: name, Revenue: v.Revenue, Views: v.Views}
	return nil
}

// ScatterRow backs the filler-vs-ROI bubble chart.
type ScatterRow struct {
	Title            string  `json:"title"`
	FillerPercentage float64 `json:"filler_percentage"`
	ROIPercentage    float64 `json:"roi_percentage"`
	TotalViews       float64 `json:"total_views"`
}

// HeatmapRow is a day-of-week viewing aggregate. It has no entity or date
// dimension, so filtering scales it proportionally instead.
type HeatmapRow struct {
	DayName string  `json:"day_name"`
	Views   float64 `json:"views"`
}

// RegionRow is a geographic split aggregate, scaled like HeatmapRow.
type RegionRow struct {
	RegionName string  `json:"region_name"`
	Views      float64 `json:"views"`
	Revenue    float64 `json:"revenue"`
}

// StudioRow compares studios on the strategy tab. Static context data; it has
// no filter dimension at all.
type StudioRow struct {
	Studio       string  `json:"studio"`
	TotalRevenue float64 `json:"total_revenue"`
	TotalViews   float64 `json:"total_views"`
	AvgSentiment float64 `json:"avg_sentiment"`
	TitleCount   int     `json:"title_count"`
}

// TitleEntry is one entry of the title list feeding the entity selector.
type TitleEntry struct {
	Title string `json:"title"`
}

// UnmarshalJSON tolerates both `{"title": "..."}` objects and bare strings;
// early exports emitted the latter.
func (t *TitleEntry) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		t.Title = s
		return nil
	}
	type raw struct {
		Title string `json:"title"`
	}
	var v raw
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	t.Title = v.Title
	return nil
}
