package services

// Typed service errors. Handlers map these to HTTP status codes in one place;
// nothing outside the gateway adapter ever inspects upstream error text.

type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "Validation error"
}

// ConfigurationError means the server itself is misconfigured (API key
// missing or rejected). The detail is logged, never returned to callers.
type ConfigurationError struct{ Message string }

func (e *ConfigurationError) Error() string { return e.Message }

// ModelUnavailableError means the upstream reported the model or API as not
// found; usually the key lacks Generative Language API access.
type ModelUnavailableError struct{ Message string }

func (e *ModelUnavailableError) Error() string { return e.Message }

type RateLimitError struct{ Message string }

func (e *RateLimitError) Error() string { return e.Message }

// UpstreamError is any other generative-model failure. Details carries the
// raw upstream text for diagnostics.
type UpstreamError struct {
	Message string
	Details string
}

func (e *UpstreamError) Error() string { return e.Message }

type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

type UnauthorizedError struct{ Message string }

func (e *UnauthorizedError) Error() string { return e.Message }

type ConflictError struct{ Message string }

func (e *ConflictError) Error() string { return e.Message }
