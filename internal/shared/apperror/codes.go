package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInvalidState = "INVALID_STATE"

	// Location errors (4xx, surfaced to the attendance flow)
	CodeLocationPermissionDenied = "LOCATION_PERMISSION_DENIED"
	CodeLocationUnavailable      = "LOCATION_UNAVAILABLE"
	CodeLocationTimeout          = "LOCATION_TIMEOUT"
	CodeConsentRequired          = "LOCATION_CONSENT_REQUIRED"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodePersistenceError   = "PERSISTENCE_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
