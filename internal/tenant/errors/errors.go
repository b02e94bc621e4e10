package tenanterrors

import (
	"go-hrdocs/internal/shared/apperror"
	"net/http"
)

var (
	ErrTenantNotFound = apperror.New(
		apperror.CodeTenantNotFound,
		"Tenant not found",
		http.StatusNotFound,
	)

	ErrTenantStoreUnavailable = apperror.New(
		apperror.CodeTenantStoreUnavailable,
		"Tenant data store is unavailable",
		http.StatusServiceUnavailable,
	)

	ErrModelNotRegistered = apperror.New(
		apperror.CodeModelNotRegistered,
		"Model is not registered for this tenant",
		http.StatusInternalServerError,
	)

	ErrTenantRequired = apperror.New(
		apperror.CodeUnauthorized,
		"Tenant is required",
		http.StatusUnauthorized,
	)
)
