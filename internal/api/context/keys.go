package context

// Context keys for gin context values
const (
	ContextKeyLocale    = "locale"
	ContextKeyLocalizer = "localizer"
	ContextKeyRequestID = "requestID"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"
