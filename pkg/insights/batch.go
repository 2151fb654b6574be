package insights

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// DefaultBatchWorkers bounds TransformBatch concurrency when workers <= 0.
const DefaultBatchWorkers = 8

// BatchResult is the outcome for one raw record. Exactly one of Rows or Err
// is meaningful.
type BatchResult struct {
	Index int
	Rows  []Row
	Err   error
}

// TransformBatch transforms records concurrently against one schema.
// Results keep input order. A failing record is reported in its result
// and does not stop the others; only ctx cancellation returns an error.
func (t *Transformer) TransformBatch(ctx context.Context, records []RawObject, schema *Schema, workers int) ([]BatchResult, error) {
	if workers <= 0 {
		workers = DefaultBatchWorkers
	}

	results := make([]BatchResult, len(records))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, raw := range records {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rows, err := t.Transform(raw, schema)
			if err != nil {
				t.log().Debug("record transform failed",
					slog.Int("index", i),
					slog.String("error", err.Error()),
				)
			}
			results[i] = BatchResult{Index: i, Rows: rows, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// CollectRows flattens successful results into one slice and returns the
// failures separately.
func CollectRows(results []BatchResult) ([]Row, []BatchResult) {
	var rows []Row
	var failed []BatchResult
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
			continue
		}
		rows = append(rows, r.Rows...)
	}
	return rows, failed
}
