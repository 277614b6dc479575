package issueerrors

import (
	"net/http"

	"github.com/Trivikram-Jagirdar/workflow-managmenr/internal/shared/apperror"
)

var (
	ErrIssueNotFound = apperror.New(
		apperror.CodeNotFound,
		"Issue not found",
		http.StatusNotFound,
	)

	ErrInvalidIssueID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid issue ID",
		http.StatusBadRequest,
	)

	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Status must be one of OPEN, IN_PROGRESS, RESOLVED",
		http.StatusBadRequest,
	)

	ErrInvalidPriority = apperror.New(
		apperror.CodeInvalidInput,
		"Priority must be one of LOW, MEDIUM, HIGH",
		http.StatusBadRequest,
	)

	ErrProjectNotAssigned = apperror.New(
		apperror.CodeForbidden,
		"Project is not assigned to this client",
		http.StatusForbidden,
	)
)
