package generationerrors

import (
	"go-hrdocs/internal/shared/apperror"
	"net/http"
)

var (
	ErrInvalidSubjectID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid subject ID",
		http.StatusBadRequest,
	)
	ErrRenderFailed = apperror.New(
		apperror.CodeInternalError,
		"Failed to render document artifact",
		http.StatusInternalServerError,
	)
	ErrUploadFailed = apperror.New(
		apperror.CodeServiceUnavailable,
		"Failed to store document artifact",
		http.StatusServiceUnavailable,
	)
	ErrStorageNotConfigured = apperror.New(
		apperror.CodeServiceUnavailable,
		"Artifact storage is not configured",
		http.StatusServiceUnavailable,
	)
)
