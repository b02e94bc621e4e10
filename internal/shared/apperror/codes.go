package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInvalidState = "INVALID_STATE"

	// Tenant isolation / configuration
	CodeTenantNotFound         = "TENANT_NOT_FOUND"
	CodeTenantStoreUnavailable = "TENANT_STORE_UNAVAILABLE"
	CodeModelNotRegistered     = "MODEL_NOT_REGISTERED"

	// Document input / state
	CodeInvalidComponent  = "INVALID_COMPONENT"
	CodeNoConfigForType   = "NO_CONFIG_FOR_TYPE"
	CodeInvalidTransition = "INVALID_TRANSITION"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeStoreTimeout       = "STORE_TIMEOUT"
)
