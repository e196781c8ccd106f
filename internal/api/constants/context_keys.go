package constants

// Context keys shared between middleware and handlers
const (
	ContextKeyRequestID = "requestID"
)

// Header names set or read by the API
const (
	HeaderRequestID          = "X-Request-ID"
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRetryAfter         = "Retry-After"
)
