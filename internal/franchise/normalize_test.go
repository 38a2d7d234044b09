package franchise

import (
	"reflect"
	"strings"
	"testing"

	"streamboard/internal/snapshot"
)

func testAliases() AliasMap {
	return AliasMap{
		"Naruto Franchise": {"Naruto", "Naruto: Shippuuden"},
	}
}

func TestNormalize_TrendSumsConstituents(t *testing.T) {
	ds := &snapshot.Dataset{
		Trend: []snapshot.TrendRow{
			{Date: "2024-01-01", Title: "Naruto", Views: 120, Revenue: 15},
			{Date: "2024-01-01", Title: "Naruto: Shippuuden", Views: 80, Revenue: 5},
			{Date: "2024-01-01", Title: "Bleach", Views: 50, Revenue: 3},
			{Date: "2024-01-02", Title: "Naruto", Views: 30, Revenue: 2},
		},
	}

	out := Normalize(ds, testAliases())

	want := []snapshot.TrendRow{
		{Date: "2024-01-01", Title: "Naruto Franchise", Views: 200, Revenue: 20},
		{Date: "2024-01-01", Title: "Bleach", Views: 50, Revenue: 3},
		{Date: "2024-01-02", Title: "Naruto Franchise", Views: 30, Revenue: 2},
	}
	if !reflect.DeepEqual(out.Trend, want) {
		t.Errorf("Trend mismatch:\ngot  %+v\nwant %+v", out.Trend, want)
	}
}

func TestNormalize_RateMeasuresAreSimpleMeans(t *testing.T) {
	// Sentiment must be (r1+r2)/2 regardless of how lopsided the view
	// volumes are; rates are never volume-weighted.
	ds := &snapshot.Dataset{
		Performance: []snapshot.PerformanceRow{
			{Title: "Naruto", Views: 1000, Revenue: 500, Sentiment: 0.5, CompletionRate: 0.5},
			{Title: "Naruto: Shippuuden", Views: 10, Revenue: 100, Sentiment: 0.25, CompletionRate: 0.75},
		},
	}

	out := Normalize(ds, testAliases())

	if len(out.Performance) != 1 {
		t.Fatalf("Expected 1 merged row, got %d", len(out.Performance))
	}
	got := out.Performance[0]
	if got.Title != "Naruto Franchise" {
		t.Errorf("Expected canonical title, got %q", got.Title)
	}
	if got.Views != 1010 || got.Revenue != 600 {
		t.Errorf("Additive measures wrong: views=%v revenue=%v", got.Views, got.Revenue)
	}
	if got.Sentiment != 0.375 {
		t.Errorf("Expected simple-mean sentiment 0.375, got %v", got.Sentiment)
	}
	if got.CompletionRate != 0.625 {
		t.Errorf("Expected simple-mean completion 0.625, got %v", got.CompletionRate)
	}
}

func TestNormalize_ROICrossReference(t *testing.T) {
	ds := &snapshot.Dataset{
		Performance: []snapshot.PerformanceRow{
			{Title: "Naruto", Views: 100, Revenue: 50},
			{Title: "Naruto: Shippuuden", Views: 200, Revenue: 150},
			{Title: "Bleach", Views: 100, Revenue: 20},
		},
		Scatter: []snapshot.ScatterRow{
			{Title: "Naruto", FillerPercentage: 40, ROIPercentage: 150, TotalViews: 100},
			{Title: "Naruto: Shippuuden", FillerPercentage: 20, ROIPercentage: 250, TotalViews: 200},
		},
	}

	out := Normalize(ds, testAliases())

	// Franchise ROI comes from the normalized scatter row: (150+250)/2.
	if out.Performance[0].ROI != 200 {
		t.Errorf("Expected cross-referenced ROI 200, got %v", out.Performance[0].ROI)
	}
	// Bleach has no scatter row; ROI defaults to 0.
	if out.Performance[1].ROI != 0 {
		t.Errorf("Expected default ROI 0 for missing scatter match, got %v", out.Performance[1].ROI)
	}

	if out.Scatter[0].FillerPercentage != 30 || out.Scatter[0].TotalViews != 300 {
		t.Errorf("Scatter merge wrong: %+v", out.Scatter[0])
	}
}

func TestNormalize_TitleDedupe(t *testing.T) {
	ds := &snapshot.Dataset{
		Titles: []snapshot.TitleEntry{
			{Title: "Naruto"},
			{Title: "Bleach"},
			{Title: "Naruto: Shippuuden"},
		},
	}

	out := Normalize(ds, testAliases())

	want := []snapshot.TitleEntry{
		{Title: "Naruto Franchise"},
		{Title: "Bleach"},
	}
	if !reflect.DeepEqual(out.Titles, want) {
		t.Errorf("Titles mismatch:\ngot  %+v\nwant %+v", out.Titles, want)
	}
}

func TestNormalize_PassThroughCollections(t *testing.T) {
	ds := &snapshot.Dataset{
		Heatmap:   []snapshot.HeatmapRow{{DayName: "Monday", Views: 400}},
		Platforms: []snapshot.PlatformRow{{Name: "Netflix", Revenue: 10, Views: 5}},
		Studios:   []snapshot.StudioRow{{Studio: "Pierrot", TitleCount: 3}},
	}

	out := Normalize(ds, testAliases())

	if !reflect.DeepEqual(out.Heatmap, ds.Heatmap) ||
		!reflect.DeepEqual(out.Platforms, ds.Platforms) ||
		!reflect.DeepEqual(out.Studios, ds.Studios) {
		t.Error("Collections without an entity field must pass through unchanged")
	}
}

func TestNormalize_InputNotMutated(t *testing.T) {
	ds := &snapshot.Dataset{
		Trend: []snapshot.TrendRow{
			{Date: "2024-01-01", Title: "Naruto", Views: 10, Revenue: 1},
		},
	}

	Normalize(ds, testAliases())

	if ds.Trend[0].Title != "Naruto" {
		t.Errorf("Input mutated: %+v", ds.Trend[0])
	}
}

func TestValidate_DisjointnessViolation(t *testing.T) {
	m := AliasMap{
		"A Franchise": {"Naruto"},
		"B Franchise": {"Naruto"},
	}

	err := m.Validate()
	if err == nil {
		t.Fatal("Expected disjointness violation")
	}
	if !strings.Contains(err.Error(), "Naruto") {
		t.Errorf("Error should name the contested alias: %v", err)
	}
}

func TestValidate_OK(t *testing.T) {
	if err := testAliases().Validate(); err != nil {
		t.Errorf("Valid map rejected: %v", err)
	}
}

func TestResolver_IdentityFallback(t *testing.T) {
	r := testAliases().resolver()
	if got := r.canonical("Cowboy Bebop"); got != "Cowboy Bebop" {
		t.Errorf("Unmapped title must resolve to itself, got %q", got)
	}
	if got := r.canonical("Naruto: Shippuuden"); got != "Naruto Franchise" {
		t.Errorf("Mapped title must resolve to canonical, got %q", got)
	}
}
