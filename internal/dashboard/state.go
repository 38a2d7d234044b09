package dashboard

import (
	"github.com/rs/zerolog/log"

	"streamboard/internal/snapshot"
	"streamboard/internal/view"
)

// State owns the normalized dataset, the current filter selection, and the
// attached view sinks. It replaces the module-level mutable globals of a
// typical dashboard page: load order and recomputation are coupled only
// through this object.
//
// The model is single-threaded and synchronous: every mutator runs exactly
// one full projection pass and pushes it to every sink before returning, so
// two recomputation passes can never interleave.
type State struct {
	data    *snapshot.Dataset
	filter  FilterState
	sinks   []view.Sink
	current Projections

	rendered bool
}

// NewState wraps a normalized dataset with its default filter. Sinks may be
// attached here or later via Attach.
func NewState(ds *snapshot.Dataset, sinks ...view.Sink) *State {
	return &State{
		data:   ds,
		filter: DefaultFilter(ds),
		sinks:  sinks,
	}
}

// Attach adds a sink. It will receive pushes starting with the next pass.
func (s *State) Attach(sink view.Sink) {
	s.sinks = append(s.sinks, sink)
}

// Render performs the initial projection pass, creating every widget.
func (s *State) Render() {
	s.rendered = false
	s.apply()
}

// SetDateRange narrows the trend series to an inclusive ISO date window.
func (s *State) SetDateRange(from, to string) {
	s.filter.DateFrom = from
	s.filter.DateTo = to
	s.apply()
}

// SetTitle selects a single canonical title, or AllTitles.
func (s *State) SetTitle(title string) {
	if title == "" {
		title = AllTitles
	}
	s.filter.Title = title
	s.apply()
}

// SetPlatforms replaces the platform multi-selection.
func (s *State) SetPlatforms(names []string) {
	selected := make(map[string]bool, len(names))
	for _, n := range names {
		selected[n] = true
	}
	s.filter.Platforms = selected
	s.apply()
}

// Reset restores the defaults re-derived from the current dataset: full date
// span, all titles, every observed platform.
func (s *State) Reset() {
	s.filter = DefaultFilter(s.data)
	s.apply()
}

// Filter returns the current selection.
func (s *State) Filter() FilterState { return s.filter }

// Projections returns the result of the most recent pass.
func (s *State) Projections() Projections { return s.current }

// Dataset returns the normalized dataset the state was built on.
func (s *State) Dataset() *snapshot.Dataset { return s.data }

// apply recomputes every projection and pushes the new set atomically to all
// sinks. A sink failure is logged and skipped; the view layer never gets to
// corrupt filter state or abort the pass.
func (s *State) apply() {
	s.current = Project(s.data, s.filter)

	pushes := []struct {
		widget string
		data   any
	}{
		{view.WidgetKPIs, s.current.KPIs},
		{view.WidgetTrend, s.current.Trend},
		{view.WidgetPlatform, s.current.Platforms},
		{view.WidgetScatter, s.current.Scatter},
		{view.WidgetHeatmap, s.current.Heatmap},
		{view.WidgetCompletion, s.current.CompletionRanking},
		{view.WidgetRegion, s.current.Regions},
		{view.WidgetStudios, s.current.Studios},
		{view.WidgetLegacy, s.current.Legacy},
		{view.WidgetTable, s.current.Ranked},
		{view.WidgetRadar, s.current.Radar},
		{view.WidgetHighlights, Highlights{Top: s.current.Top, Bottom: s.current.Bottom}},
	}

	for _, sink := range s.sinks {
		for _, p := range pushes {
			var err error
			if s.rendered {
				err = sink.Update(p.widget, p.data)
			} else {
				err = sink.Render(p.widget, p.data)
			}
			if err != nil {
				log.Warn().Err(err).Str("widget", p.widget).Msg("View sink rejected push")
			}
		}
	}
	s.rendered = true
}

// Highlights feeds the top/bottom performer panel. Nil entries mean the
// filtered set was empty and the panel renders blank.
type Highlights struct {
	Top    *snapshot.PerformanceRow `json:"top,omitempty"`
	Bottom *snapshot.PerformanceRow `json:"bottom,omitempty"`
}
