package subject

import (
	"errors"

	"go-hrdocs/internal/shared/dbutil"
	subjecterrors "go-hrdocs/internal/subject/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return subjecterrors.ErrSubjectNotFound
	}

	if dbutil.IsUniqueViolation(err, "uq_subject_email") {
		return subjecterrors.ErrSubjectAlreadyExists
	}

	return dbutil.MapTimeout(err)
}
