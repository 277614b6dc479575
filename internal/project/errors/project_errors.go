package projecterrors

import (
	"net/http"

	"github.com/Trivikram-Jagirdar/workflow-managmenr/internal/shared/apperror"
)

var (
	ErrProjectNotFound = apperror.New(
		apperror.CodeNotFound,
		"Project not found",
		http.StatusNotFound,
	)

	ErrTaskNotFound = apperror.New(
		apperror.CodeNotFound,
		"Task not found in project",
		http.StatusNotFound,
	)

	ErrInvalidProjectID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid project ID",
		http.StatusBadRequest,
	)

	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Status must be one of PLANNING, ACTIVE, ON_HOLD, COMPLETED",
		http.StatusBadRequest,
	)

	ErrInvalidTaskStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Task status must be one of TODO, IN_PROGRESS, DONE",
		http.StatusBadRequest,
	)

	ErrInvalidPriority = apperror.New(
		apperror.CodeInvalidInput,
		"Priority must be one of LOW, MEDIUM, HIGH",
		http.StatusBadRequest,
	)

	ErrTaskNotAssigned = apperror.New(
		apperror.CodeForbidden,
		"Task is not assigned to this user",
		http.StatusForbidden,
	)
)
