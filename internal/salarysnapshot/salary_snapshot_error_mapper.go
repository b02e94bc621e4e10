package salarysnapshot

import (
	"errors"

	salarysnapshoterrors "go-hrdocs/internal/salarysnapshot/errors"
	"go-hrdocs/internal/shared/dbutil"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return salarysnapshoterrors.ErrSnapshotNotFound
	}

	if dbutil.IsUniqueViolation(err, "uq_snapshot_subject_version") {
		return salarysnapshoterrors.ErrVersionConflict
	}

	return dbutil.MapTimeout(err)
}
