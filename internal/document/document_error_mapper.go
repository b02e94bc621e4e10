package document

import (
	"errors"

	documenterrors "go-hrdocs/internal/document/errors"
	"go-hrdocs/internal/shared/dbutil"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return documenterrors.ErrDocumentNotFound
	}
	return dbutil.MapTimeout(err)
}
