package subjecterrors

import (
	"go-hrdocs/internal/shared/apperror"
	"net/http"
)

var (
	ErrSubjectNotFound = apperror.New(
		apperror.CodeNotFound,
		"Subject not found",
		http.StatusNotFound,
	)
	ErrSubjectAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Subject with the same email already exists",
		http.StatusConflict,
	)
	ErrInvalidSubjectID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid subject ID",
		http.StatusBadRequest,
	)
	ErrInvalidKind = apperror.New(
		apperror.CodeInvalidInput,
		"Subject kind must be employee or candidate",
		http.StatusBadRequest,
	)
	ErrKindChange = apperror.New(
		apperror.CodeConflict,
		"Subject kind cannot change",
		http.StatusConflict,
	)
	ErrNegativeCTC = apperror.New(
		apperror.CodeInvalidInput,
		"Annual CTC cannot be negative",
		http.StatusBadRequest,
	)
)
