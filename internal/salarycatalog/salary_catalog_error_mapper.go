package salarycatalog

import (
	"errors"

	salarycatalogerrors "go-hrdocs/internal/salarycatalog/errors"
	"go-hrdocs/internal/shared/dbutil"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return salarycatalogerrors.ErrDefinitionNotFound
	}
	if dbutil.IsUniqueViolation(err, "uq_salary_definition_code") {
		return salarycatalogerrors.ErrDefinitionCodeExists
	}
	return dbutil.MapTimeout(err)
}
