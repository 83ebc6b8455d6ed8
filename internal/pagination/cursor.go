package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
)

// ErrInvalidCursor is returned for tokens that do not decode to a (date, id) pair.
var ErrInvalidCursor = errors.New("invalid cursor")

// Cursor is the sort key of the last row of a page.
type Cursor struct {
	Date string `json:"date"`
	ID   string `json:"id"`
}

// EncodeCursor renders c as unpadded base64url JSON.
func EncodeCursor(c Cursor) string {
	raw, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeCursor parses a token produced by EncodeCursor. Padded input is accepted.
func DecodeCursor(token string) (Cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(token, "="))
	if err != nil {
		return Cursor{}, ErrInvalidCursor
	}
	var c Cursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return Cursor{}, ErrInvalidCursor
	}
	if c.Date == "" || c.ID == "" {
		return Cursor{}, ErrInvalidCursor
	}
	return c, nil
}

// CursorPage is one window of a keyset-paginated list. NextCursor is set
// only when the window came back full.
type CursorPage[T any] struct {
	Data       []T     `json:"data"`
	Count      int64   `json:"count"`
	NextCursor *string `json:"next_cursor"`
}

// NewCursorPage builds a page, deriving the next cursor from the last row.
func NewCursorPage[T any](data []T, count int64, window int, keyOf func(T) Cursor) CursorPage[T] {
	if data == nil {
		data = []T{}
	}
	page := CursorPage[T]{Data: data, Count: count}
	if window > 0 && len(data) == window {
		next := EncodeCursor(keyOf(data[len(data)-1]))
		page.NextCursor = &next
	}
	return page
}
