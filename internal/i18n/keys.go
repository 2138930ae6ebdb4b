package i18n

// Error message keys
const (
	ErrGeneric              = "error_generic"
	ErrNotFound             = "error_not_found"
	ErrInvalidInput         = "error_invalid_input"
	ErrUnauthorized         = "error_unauthorized"
	ErrInvalidCursor        = "error_invalid_cursor"
	ErrMalformedGlobalID    = "error_malformed_global_id"
	ErrMissingBackendID     = "error_missing_backend_id"
	ErrAggregationFailed    = "error_aggregation_failed"
	ErrBackendUnavailable   = "error_backend_unavailable"
	ErrBackendStatus        = "error_backend_status"
	ErrBackendNotConfigured = "error_backend_not_configured"
	ErrInvalidRequestBody   = "error_invalid_request_body"
	ErrMissingQuery         = "error_missing_query"
)
