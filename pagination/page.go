package pagination

// Page is one bounded slice of a paginated query in query order. An empty
// NextCursor means the sequence is exhausted.
type Page[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"next_cursor,omitempty"`
}
