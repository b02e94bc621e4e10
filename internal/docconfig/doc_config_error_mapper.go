package docconfig

import (
	"errors"

	docconfigerrors "go-hrdocs/internal/docconfig/errors"
	"go-hrdocs/internal/shared/dbutil"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return docconfigerrors.ErrNoConfigForType
	}
	if dbutil.IsUniqueViolation(err, ActiveIndexName) || dbutil.IsUniqueViolation(err, "uq_doc_config_version") {
		return docconfigerrors.ErrConfigConflict.WithCause(err)
	}
	return dbutil.MapTimeout(err)
}
