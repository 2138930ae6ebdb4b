// Package node implements object identification: opaque global IDs and
// generic resolution of a global ID back to its typed entity.
package node

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/xzzpig/graph-gateway/internal/core/errs"
)

var (
	// ErrMalformedGlobalID is returned when a global ID does not decode to Type:id.
	ErrMalformedGlobalID = fmt.Errorf("malformed global id: %w", errs.ErrInvalidInput)
	// ErrMissingBackendID is returned when encoding an entity without a backend ID.
	ErrMissingBackendID = fmt.Errorf("missing backend id: %w", errs.ErrInvalidInput)
)

// ResolvedID is a decoded global ID.
type ResolvedID struct {
	Type string
	ID   string
}

// ToGlobalID encodes a type name and backend ID as a global ID.
func ToGlobalID(typeName, backendID string) (string, error) {
	if typeName == "" {
		return "", fmt.Errorf("empty type name: %w", errs.ErrInvalidInput)
	}
	if backendID == "" {
		return "", fmt.Errorf("%w for %s", ErrMissingBackendID, typeName)
	}
	return base64.StdEncoding.EncodeToString([]byte(typeName + ":" + backendID)), nil
}

// ToGlobalIDPtr is ToGlobalID for optional backend IDs.
func ToGlobalIDPtr(typeName string, backendID *string) (string, error) {
	if backendID == nil {
		return "", fmt.Errorf("%w for %s", ErrMissingBackendID, typeName)
	}
	return ToGlobalID(typeName, *backendID)
}

// FromGlobalID decodes a global ID. The backend ID may itself contain colons.
func FromGlobalID(gid string) (ResolvedID, error) {
	raw, err := base64.StdEncoding.DecodeString(gid)
	if err != nil {
		return ResolvedID{}, fmt.Errorf("%w: %q is not base64", ErrMalformedGlobalID, gid)
	}
	typeName, id, ok := strings.Cut(string(raw), ":")
	if !ok || typeName == "" || id == "" {
		return ResolvedID{}, fmt.Errorf("%w: %q", ErrMalformedGlobalID, gid)
	}
	return ResolvedID{Type: typeName, ID: id}, nil
}
