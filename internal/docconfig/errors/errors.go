package docconfigerrors

import (
	"go-hrdocs/internal/shared/apperror"
	"net/http"
)

var (
	ErrNoConfigForType = apperror.New(
		apperror.CodeNoConfigForType,
		"No active document configuration for this document type",
		http.StatusNotFound,
	)
	ErrInvalidDocumentType = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown document type",
		http.StatusBadRequest,
	)
	ErrInvalidSection = apperror.New(
		apperror.CodeInvalidInput,
		"Document configuration section is invalid",
		http.StatusBadRequest,
	)
	ErrConfigConflict = apperror.New(
		apperror.CodeConflict,
		"Another configuration was activated concurrently",
		http.StatusConflict,
	)
	ErrConfigBusy = apperror.New(
		apperror.CodeConflict,
		"Configuration for this document type is being updated",
		http.StatusConflict,
	)
)
