package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// LoadError is the terminal failure mode of the loader: the snapshot could not
// be fetched or parsed. The only recovery is presenting the cause to the user.
type LoadError struct {
	Source string
	Cause  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading snapshot %q: %v", e.Source, e.Cause)
}

func (e *LoadError) Unwrap() error { return e.Cause }

var httpClient = &http.Client{Timeout: 30 * time.Second}

// Load reads and parses one snapshot document. Source is a filesystem path or
// an http(s) URL. Called once per run; there is no retry path.
func Load(ctx context.Context, source string) (*Dataset, error) {
	data, err := fetch(ctx, source)
	if err != nil {
		return nil, &LoadError{Source: source, Cause: err}
	}

	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, &LoadError{Source: source, Cause: fmt.Errorf("malformed JSON: %w", err)}
	}

	log.Info().
		Str("source", source).
		Int("trend_rows", len(ds.Trend)).
		Int("performance_rows", len(ds.Performance)).
		Msg("Snapshot loaded")
	return &ds, nil
}

// LoadAll fetches several per-project documents concurrently and merges their
// fact collections in source order. The first failure cancels the rest.
func LoadAll(ctx context.Context, sources ...string) (*Dataset, error) {
	if len(sources) == 0 {
		return nil, &LoadError{Source: "", Cause: fmt.Errorf("no snapshot source configured")}
	}
	if len(sources) == 1 {
		return Load(ctx, sources[0])
	}

	parts := make([]*Dataset, len(sources))
	g, ctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			ds, err := Load(ctx, src)
			if err != nil {
				return err
			}
			parts[i] = ds
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := &Dataset{}
	for _, p := range parts {
		merged.merge(p)
	}
	return merged, nil
}

func fetch(ctx context.Context, source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, err
		}
		resp, err := httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	}
	return os.ReadFile(source)
}

// merge appends the other document's fact collections. The KPI seed of the
// first document that carries one wins; seeds are advisory only, the engine
// recomputes KPIs from filtered data anyway.
func (ds *Dataset) merge(other *Dataset) {
	if ds.KPIs == (KPIBlock{}) {
		ds.KPIs = other.KPIs
	}
	ds.Titles = append(ds.Titles, other.Titles...)
	ds.Performance = append(ds.Performance, other.Performance...)
	ds.Trend = append(ds.Trend, other.Trend...)
	ds.DailyTotals = append(ds.DailyTotals, other.DailyTotals...)
	ds.Platforms = append(ds.Platforms, other.Platforms...)
	ds.Scatter = append(ds.Scatter, other.Scatter...)
	ds.Heatmap = append(ds.Heatmap, other.Heatmap...)
	ds.Regions = append(ds.Regions, other.Regions...)
	ds.Studios = append(ds.Studios, other.Studios...)
}
