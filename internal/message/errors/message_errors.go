package messageerrors

import (
	"net/http"

	"github.com/Trivikram-Jagirdar/workflow-managmenr/internal/shared/apperror"
)

var (
	ErrEmptyContent = apperror.New(
		apperror.CodeInvalidInput,
		"Message content must not be empty",
		http.StatusBadRequest,
	)

	ErrInvalidReceiverID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid receiver ID",
		http.StatusBadRequest,
	)

	ErrSelfMessage = apperror.New(
		apperror.CodeInvalidInput,
		"Cannot send a message to yourself",
		http.StatusBadRequest,
	)
)
