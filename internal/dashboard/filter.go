package dashboard

import (
	"streamboard/internal/snapshot"
)

// AllTitles is the sentinel entity selection matching every title.
const AllTitles = "all"

// FilterState holds the user's current selection: an inclusive ISO date range,
// a single title (or AllTitles), and a platform multi-selection. A nil
// Platforms map means "every platform selected", the control's default.
type FilterState struct {
	DateFrom  string
	DateTo    string
	Title     string
	Platforms map[string]bool
}

// DefaultFilter derives the reset-state filter from a normalized dataset: the
// full date span of the trend collection, all titles, every observed platform.
// Dates are ISO YYYY-MM-DD, so lexical comparison orders them correctly.
func DefaultFilter(ds *snapshot.Dataset) FilterState {
	f := FilterState{Title: AllTitles}

	for _, row := range ds.Trend {
		if f.DateFrom == "" || row.Date < f.DateFrom {
			f.DateFrom = row.Date
		}
		if row.Date > f.DateTo {
			f.DateTo = row.Date
		}
	}

	if len(ds.Platforms) > 0 {
		f.Platforms = make(map[string]bool, len(ds.Platforms))
		for _, p := range ds.Platforms {
			f.Platforms[p.Name] = true
		}
	}
	return f
}

// matchesTitle reports whether an entity row passes the title selection.
func (f FilterState) matchesTitle(title string) bool {
	return f.Title == "" || f.Title == AllTitles || f.Title == title
}

// inDateRange reports whether an ISO date falls within the inclusive range.
// Empty bounds are open.
func (f FilterState) inDateRange(date string) bool {
	if f.DateFrom != "" && date < f.DateFrom {
		return false
	}
	if f.DateTo != "" && date > f.DateTo {
		return false
	}
	return true
}

// platformSelected reports whether a platform is in the multi-selection.
func (f FilterState) platformSelected(name string) bool {
	if f.Platforms == nil {
		return true
	}
	return f.Platforms[name]
}
