package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"
)

// ErrInvalidCursor is returned when a pagination token is malformed,
// truncated or otherwise not something Encode produced. A cursor that points
// at since-deleted data is NOT invalid; the query simply resumes past the gap.
var ErrInvalidCursor = errors.New("invalid pagination cursor")

// Position identifies the last key read from an index: a small set of named
// scalar values (the partition id plus the sort-key value, and the record id).
type Position map[string]string

// Encode serializes a position into an opaque URL-safe token. An empty or nil
// position encodes to "" which callers treat as "no more pages". Encoding is
// deterministic: map keys are sorted by encoding/json, so the same position
// always yields the same cursor.
func Encode(pos Position) string {
	if len(pos) == 0 {
		return ""
	}
	data, err := json.Marshal(pos)
	if err != nil {
		// A map[string]string cannot fail to marshal.
		panic("pagination: unable to encode cursor: " + err.Error())
	}
	return base64.RawURLEncoding.EncodeToString(data)
}

// Decode reverses Encode. An empty cursor yields a nil position and no error.
func Decode(cursor string) (Position, error) {
	if cursor == "" {
		return nil, nil
	}
	data, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, ErrInvalidCursor
	}
	var pos Position
	if err := json.Unmarshal(data, &pos); err != nil {
		return nil, ErrInvalidCursor
	}
	if len(pos) == 0 {
		return nil, ErrInvalidCursor
	}
	return pos, nil
}
