package paging

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xzzpig/graph-gateway/internal/core/errs"
)

func TestCursorRoundTrip(t *testing.T) {
	for _, offset := range []int{0, 1, 24, 25, 99, 1 << 20} {
		got, err := OffsetForCursor(CursorForOffset(offset))
		require.NoError(t, err)
		assert.Equal(t, offset, got)
	}
}

func TestCursorForOffset_WireFormat(t *testing.T) {
	assert.Equal(t, "YXJyYXljb25uZWN0aW9uOjA=", CursorForOffset(0))
	assert.Equal(t, "YXJyYXljb25uZWN0aW9uOjI0", CursorForOffset(24))
}

func TestOffsetForCursor_Invalid(t *testing.T) {
	encode := func(s string) string {
		return base64.StdEncoding.EncodeToString([]byte(s))
	}

	tests := []struct {
		name   string
		cursor string
	}{
		{"not base64", "%%%"},
		{"wrong prefix", encode("connection:3")},
		{"not an integer", encode("arrayconnection:three")},
		{"negative", encode("arrayconnection:-1")},
		{"empty payload", encode("arrayconnection:")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, err := OffsetForCursor(tt.cursor)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidCursor)
			assert.ErrorIs(t, err, errs.ErrInvalidInput)
			assert.Zero(t, offset)
		})
	}
}
