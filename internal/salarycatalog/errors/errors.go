package salarycatalogerrors

import (
	"go-hrdocs/internal/shared/apperror"
	"net/http"
)

var (
	ErrDefinitionNotFound = apperror.New(
		apperror.CodeNotFound,
		"Salary definition not found",
		http.StatusNotFound,
	)
	ErrDefinitionCodeExists = apperror.New(
		apperror.CodeConflict,
		"Salary definition code already exists",
		http.StatusConflict,
	)
	ErrInvalidDefinition = apperror.New(
		apperror.CodeInvalidInput,
		"Salary definition is invalid",
		http.StatusBadRequest,
	)
	ErrEmptyCatalog = apperror.New(
		apperror.CodeInvalidState,
		"No active salary definitions",
		http.StatusUnprocessableEntity,
	)
)
