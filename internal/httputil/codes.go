package httputil

// Machine-readable error codes returned in ErrorResponse.Code.
const (
	CodeBadRequest         = "BAD_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeConflict           = "CONFLICT"
	CodeNotFound           = "NOT_FOUND"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInternal           = "INTERNAL"
	CodeTooManyRequests    = "TOO_MANY_REQUESTS"
)
