package commands

import (
	"context"

	"github.com/spf13/cobra"

	"streamboard/internal/dashboard"
	"streamboard/internal/franchise"
	"streamboard/internal/report"
	"streamboard/internal/snapshot"
)

// filter flags shared by report and export.
var (
	fromDate  string
	toDate    string
	title     string
	platforms []string
)

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&fromDate, "from", "", "start of the date range (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&toDate, "to", "", "end of the date range (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&title, "title", dashboard.AllTitles, "canonical title to focus on")
	cmd.Flags().StringSliceVar(&platforms, "platforms", nil, "platforms to keep (default: all)")
}

// buildState runs the full pipeline: load snapshot(s), normalize franchises,
// attach the report builder, render once, then apply any filter flags. Each
// flag application is one synchronous recomputation pass.
func buildState(ctx context.Context) (*dashboard.State, *report.Builder, error) {
	ds, err := snapshot.LoadAll(ctx, sources()...)
	if err != nil {
		return nil, nil, err
	}

	aliases := franchise.DefaultAliases()
	if path := aliasSource(); path != "" {
		aliases, err = franchise.LoadAliases(path)
		if err != nil {
			return nil, nil, err
		}
	}

	builder := report.NewBuilder()
	state := dashboard.NewState(franchise.Normalize(ds, aliases), builder)
	state.Render()

	if fromDate != "" || toDate != "" {
		f := state.Filter()
		from, to := f.DateFrom, f.DateTo
		if fromDate != "" {
			from = fromDate
		}
		if toDate != "" {
			to = toDate
		}
		state.SetDateRange(from, to)
	}
	if title != dashboard.AllTitles {
		state.SetTitle(title)
	}
	if len(platforms) > 0 {
		state.SetPlatforms(platforms)
	}

	return state, builder, nil
}
