package view

// Widget identifiers the dashboard pushes projections to. One id per visual
// element on the page.
const (
	WidgetKPIs       = "kpis"
	WidgetTrend      = "trend"
	WidgetPlatform   = "platform"
	WidgetScatter    = "scatter"
	WidgetHeatmap    = "heatmap"
	WidgetCompletion = "completion"
	WidgetRegion     = "region"
	WidgetStudios    = "studios"
	WidgetLegacy     = "legacy"
	WidgetTable      = "table"
	WidgetRadar      = "radar"
	WidgetHighlights = "highlights"
)

// Sink is the rendering boundary. The engine depends only on this contract
// and never on a particular rendering technology.
//
// Render (re)creates a widget from scratch, tearing down any prior instance.
// Update replaces the widget's bound data in place; implementations that
// cannot update incrementally may treat it as Render.
type Sink interface {
	Render(widget string, data any) error
	Update(widget string, data any) error
	Dispose()
}
