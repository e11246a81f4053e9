package repositories

import (
	"context"
	"iter"

	"franchises-backend/pagination"

	"gorm.io/gorm"
)

// streamPageSize is the internal page size used when a caller consumes an
// unbounded stream instead of explicit pages.
const streamPageSize = 100

// PageLimits bounds client-supplied page sizes. Limits are clamped, never
// rejected: an unset or non-positive limit gets the default, an oversized one
// gets Max. Cursors, by contrast, fail hard when malformed.
type PageLimits struct {
	Default int
	Max     int
}

// DefaultPageLimits matches the values the service ships with.
var DefaultPageLimits = PageLimits{Default: 20, Max: 100}

func (l PageLimits) clamp(limit int) int {
	if limit <= 0 {
		return l.Default
	}
	if limit > l.Max {
		return l.Max
	}
	return limit
}

// querySpec describes one index shape: the filters selecting the partition
// and the derived column that orders it. The sort column must be unique
// within the partition (every derived key embeds the record id) so that
// strict ">" resumption can never skip or duplicate a record.
type querySpec struct {
	filters    []queryFilter
	sortColumn string
}

type queryFilter struct {
	expr string
	args []any
}

// queryPage runs one bounded keyset read: decode the cursor, apply the
// partition filters, read limit+1 rows past the cursor position and emit a
// next-cursor only when a row beyond the page proves more data exists. A
// stale cursor (pointing at a deleted row) resumes past the gap; only a
// malformed one is an error.
func queryPage[T any](ctx context.Context, db *gorm.DB, spec querySpec, limit int, cursor string,
	limits PageLimits, positionOf func(*T) pagination.Position) (pagination.Page[T], error) {

	size := limits.clamp(limit)

	pos, err := pagination.Decode(cursor)
	if err != nil {
		return pagination.Page[T]{}, err
	}

	q := db.WithContext(ctx).Model(new(T))
	for _, f := range spec.filters {
		q = q.Where(f.expr, f.args...)
	}
	if pos != nil {
		after, ok := pos[spec.sortColumn]
		if !ok {
			// Cursor from a different index shape.
			return pagination.Page[T]{}, pagination.ErrInvalidCursor
		}
		q = q.Where(spec.sortColumn+" > ?", after)
	}

	var rows []T
	if err := q.Order(spec.sortColumn + " ASC").Limit(size + 1).Find(&rows).Error; err != nil {
		return pagination.Page[T]{}, wrapStorage(err)
	}

	page := pagination.Page[T]{Items: rows}
	if len(rows) > size {
		page.Items = rows[:size]
		page.NextCursor = pagination.Encode(positionOf(&page.Items[size-1]))
	}
	if page.Items == nil {
		page.Items = []T{}
	}
	return page, nil
}

// streamPages turns a paged fetch into a lazy restartable sequence, pulling
// the next page only when the previous one is drained. Page boundaries use
// the same cursors as explicit pagination, so ordering guarantees carry over.
func streamPages[T any](fetch func(limit int, cursor string) (pagination.Page[T], error)) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		cursor := ""
		for {
			page, err := fetch(streamPageSize, cursor)
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			for _, item := range page.Items {
				if !yield(item, nil) {
					return
				}
			}
			if page.NextCursor == "" {
				return
			}
			cursor = page.NextCursor
		}
	}
}
