// Package paging converts between Relay connection arguments and backend
// page/offset parameters, and slices backend pages into connections.
package paging

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/xzzpig/graph-gateway/internal/core/errs"
)

// cursorPrefix keeps cursors compatible with the graphql-relay wire format.
const cursorPrefix = "arrayconnection:"

// ErrInvalidCursor is returned when a cursor does not decode to a non-negative offset.
var ErrInvalidCursor = fmt.Errorf("invalid cursor: %w", errs.ErrInvalidInput)

// CursorForOffset encodes an offset as an opaque cursor.
func CursorForOffset(offset int) string {
	return base64.StdEncoding.EncodeToString([]byte(cursorPrefix + strconv.Itoa(offset)))
}

// OffsetForCursor decodes a cursor produced by CursorForOffset.
func OffsetForCursor(cursor string) (int, error) {
	raw, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not base64", ErrInvalidCursor, cursor)
	}
	s, ok := strings.CutPrefix(string(raw), cursorPrefix)
	if !ok {
		return 0, fmt.Errorf("%w: %q has an unknown prefix", ErrInvalidCursor, cursor)
	}
	offset, err := strconv.Atoi(s)
	if err != nil || offset < 0 {
		return 0, fmt.Errorf("%w: %q is not a non-negative offset", ErrInvalidCursor, cursor)
	}
	return offset, nil
}

// cursorPtr returns a pointer to the cursor for offset.
func cursorPtr(offset int) *string {
	c := CursorForOffset(offset)
	return &c
}
