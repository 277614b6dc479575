package locationerrors

import (
	"net/http"

	"github.com/Trivikram-Jagirdar/workflow-managmenr/internal/shared/apperror"
)

var (
	ErrPermissionDenied = apperror.New(
		apperror.CodeLocationPermissionDenied,
		"Location permission denied. Please enable location access in your device settings.",
		http.StatusForbidden,
	)

	ErrPositionUnavailable = apperror.New(
		apperror.CodeLocationUnavailable,
		"Location information unavailable. Please check your device settings.",
		http.StatusBadGateway,
	)

	ErrTimeout = apperror.New(
		apperror.CodeLocationTimeout,
		"Location request timed out. Please try again.",
		http.StatusGatewayTimeout,
	)

	ErrUnavailable = apperror.New(
		apperror.CodeLocationUnavailable,
		"Unable to retrieve location",
		http.StatusBadGateway,
	)

	ErrConsentDenied = apperror.New(
		apperror.CodeForbidden,
		"Location sharing is required to mark attendance",
		http.StatusForbidden,
	)

	ErrConsentRequired = apperror.New(
		apperror.CodeConsentRequired,
		"Location sharing consent has not been recorded yet",
		http.StatusPreconditionRequired,
	)
)
