package documenterrors

import (
	"go-hrdocs/internal/shared/apperror"
	"net/http"
)

var (
	ErrDocumentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Generated document not found",
		http.StatusNotFound,
	)
	ErrInvalidDocumentID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid document ID",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown document status",
		http.StatusBadRequest,
	)
	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidTransition,
		"Document status transition is not allowed",
		http.StatusConflict,
	)
	ErrModelMismatch = apperror.New(
		apperror.CodeInvalidInput,
		"Render model does not belong to this subject or document type",
		http.StatusBadRequest,
	)
)
