// Package pagination implements keyset pagination: pages are addressed by
// the (created_at, id) pair of the last row already seen, encoded as an
// opaque token. Fetching a page costs the same regardless of its position.
package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	DefaultPageSize = 25
	MaxPageSize     = 200
)

var ErrInvalidToken = errors.New("invalid_page_token")

// Pagination carries the paging parameters of a list request.
type Pagination struct {
	PageToken string `form:"page_token"`
	PageSize  int    `form:"page_size"`
}

// Limit clamps the requested page size to a sane range.
func (p Pagination) Limit() int {
	if p.PageSize <= 0 {
		return DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		return MaxPageSize
	}
	return p.PageSize
}

// PageInfo is the paging envelope returned with every list response.
type PageInfo struct {
	NextCursor     string `json:"next_cursor,omitempty"`
	HasNext        bool   `json:"has_next"`
	EstimatedTotal int64  `json:"estimated_total"`
}

// Cursor identifies the last row of a page under (created_at DESC, id DESC)
// ordering. The next page holds rows strictly less than the cursor.
type Cursor struct {
	CreatedAt time.Time    `json:"c"`
	ID        snowflake.ID `json:"i"`
}

// Encode serializes the cursor into an opaque URL-safe token.
func (c Cursor) Encode() string {
	raw, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(raw)
}

// Decode parses a token produced by Encode. An empty token yields a nil
// cursor, meaning "first page".
func Decode(token string) (*Cursor, error) {
	if token == "" {
		return nil, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	var c Cursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, ErrInvalidToken
	}
	return &c, nil
}
