package rowstore

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/usestring/adinsights-mcp/pkg/insights"
)

// Query filters the rows of a run. Conditions on different fields are
// combined with AND; values listed for the same field are combined with OR.
type Query struct {
	Where  map[string][]string
	Offset int
	Limit  int
}

// QueryResult is one page of matching rows.
type QueryResult struct {
	RowIDs []uint32
	Rows   []insights.Row
	Total  uint64
}

// Query runs q against the run's index.
func (r *Run) Query(q Query) *QueryResult {
	matched := r.match(q.Where)

	result := &QueryResult{Total: matched.GetCardinality()}
	if q.Offset < 0 {
		q.Offset = 0
	}

	it := matched.Iterator()
	skipped := 0
	for it.HasNext() {
		id := it.Next()
		if skipped < q.Offset {
			skipped++
			continue
		}
		if q.Limit > 0 && len(result.RowIDs) >= q.Limit {
			break
		}
		result.RowIDs = append(result.RowIDs, id)
		result.Rows = append(result.Rows, r.Rows[id])
	}
	return result
}

func (r *Run) match(where map[string][]string) *roaring.Bitmap {
	all := roaring.New()
	if len(r.Rows) > 0 {
		all.AddRange(0, uint64(len(r.Rows)))
	}

	result := all
	for field, values := range where {
		if len(values) == 0 {
			continue
		}
		union := roaring.New()
		for _, v := range values {
			if bm := r.idx[field][v]; bm != nil {
				union.Or(bm)
			}
		}
		result = roaring.And(result, union)
		if result.IsEmpty() {
			break
		}
	}
	return result
}
