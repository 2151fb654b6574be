package insights

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformBatch_OrderAndPartialFailure(t *testing.T) {
	schema := mustSchema(t, "spend", "actions")

	records := make([]RawObject, 0, 50)
	for i := range 50 {
		if i == 17 {
			records = append(records, RawObject{"actions": "broken"})
			continue
		}
		records = append(records, RawObject{"spend": fmt.Sprintf("%d", i)})
	}

	results, err := NewTransformer().TransformBatch(context.Background(), records, schema, 4)
	require.NoError(t, err)
	require.Len(t, results, 50)

	for i, r := range results {
		assert.Equal(t, i, r.Index)
		if i == 17 {
			assert.Error(t, r.Err)
			continue
		}
		require.NoError(t, r.Err)
		require.Len(t, r.Rows, 1)
		v, _ := r.Rows[0].(*InsightsRow).Scalar("spend")
		assert.Equal(t, fmt.Sprintf("%d", i), v)
	}

	rows, failed := CollectRows(results)
	assert.Len(t, rows, 49)
	require.Len(t, failed, 1)
	assert.Equal(t, 17, failed[0].Index)
}

func TestTransformBatch_TimeSeriesFlattens(t *testing.T) {
	records := []RawObject{
		mustDecode(t, pageImpressions),
		mustDecode(t, `{"name": "page_fans", "values": [{"value": 7, "end_time": "2020-01-03"}]}`),
	}

	results, err := NewTransformer().TransformBatch(context.Background(), records, BuildTimeSeriesSchema(nil), 0)
	require.NoError(t, err)

	rows, failed := CollectRows(results)
	assert.Empty(t, failed)
	require.Len(t, rows, 3)
	assert.Equal(t, "page_fans", rows[2].(*TimeSeriesRow).MetricName)
}

func TestTransformBatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewTransformer().TransformBatch(ctx, []RawObject{{"spend": "1"}}, mustSchema(t, "spend"), 1)
	assert.ErrorIs(t, err, context.Canceled)
}
