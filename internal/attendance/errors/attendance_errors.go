package attendanceerrors

import (
	"net/http"

	"github.com/Trivikram-Jagirdar/workflow-managmenr/internal/shared/apperror"
)

var (
	ErrAlreadyCheckedIn = apperror.New(
		apperror.CodeConflict,
		"An attendance session is already active",
		http.StatusConflict,
	)

	ErrNoActiveSession = apperror.New(
		apperror.CodeInvalidState,
		"No active attendance session to check out from",
		http.StatusConflict,
	)

	ErrEmptyWorkReport = apperror.New(
		apperror.CodeInvalidInput,
		"Please enter your work report before checking out",
		http.StatusBadRequest,
	)

	ErrSessionNotFound = apperror.New(
		apperror.CodeNotFound,
		"Attendance session not found",
		http.StatusNotFound,
	)

	ErrMissingUserID = apperror.New(
		apperror.CodeInvalidInput,
		"User ID is required",
		http.StatusBadRequest,
	)
)
