package pagination

import (
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimit(t *testing.T) {
	tests := []struct {
		name string
		size int
		want int
	}{
		{"zero_defaults", 0, DefaultPageSize},
		{"negative_defaults", -5, DefaultPageSize},
		{"in_range", 50, 50},
		{"clamped", 1000, MaxPageSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Pagination{PageSize: tt.size}
			assert.Equal(t, tt.want, p.Limit())
		})
	}
}

func TestCursorRoundTrip(t *testing.T) {
	c := Cursor{
		CreatedAt: time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC),
		ID:        snowflake.ID(1234567890),
	}
	token := c.Encode()
	require.NotEmpty(t, token)

	got, err := Decode(token)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.CreatedAt.Equal(c.CreatedAt))
	assert.Equal(t, c.ID, got.ID)
}

func TestDecodeEmptyTokenIsFirstPage(t *testing.T) {
	got, err := Decode("")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDecodeInvalidToken(t *testing.T) {
	for _, token := range []string{"%%%", "bm90IGpzb24", "!!!"} {
		_, err := Decode(token)
		assert.ErrorIs(t, err, ErrInvalidToken, token)
	}
}
