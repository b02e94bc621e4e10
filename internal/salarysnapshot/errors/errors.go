package salarysnapshoterrors

import (
	"go-hrdocs/internal/shared/apperror"
	"net/http"
)

var (
	ErrInvalidComponent = apperror.New(
		apperror.CodeInvalidComponent,
		"One or more salary components are invalid",
		http.StatusUnprocessableEntity,
	)
	ErrSnapshotNotFound = apperror.New(
		apperror.CodeNotFound,
		"Salary snapshot not found",
		http.StatusNotFound,
	)
	ErrSnapshotImmutable = apperror.New(
		apperror.CodeInvalidState,
		"Salary snapshots cannot be modified or deleted",
		http.StatusConflict,
	)
	ErrVersionConflict = apperror.New(
		apperror.CodeConflict,
		"Salary snapshot version already exists",
		http.StatusConflict,
	)
	ErrNoSalarySource = apperror.New(
		apperror.CodeInvalidInput,
		"Provide components, an annual CTC or use the salary catalog",
		http.StatusBadRequest,
	)
	ErrInvalidVersion = apperror.New(
		apperror.CodeInvalidInput,
		"Snapshot version must be a positive integer",
		http.StatusBadRequest,
	)
)
