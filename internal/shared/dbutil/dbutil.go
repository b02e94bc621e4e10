package dbutil

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-hrdocs/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// BindTx returns a gorm handle that runs every statement on tx. A nil tx
// returns db unchanged.
func BindTx(db *gorm.DB, tx *sql.Tx) *gorm.DB {
	if tx == nil || db == nil {
		return db
	}
	bound := db.Session(&gorm.Session{NewDB: true, SkipDefaultTransaction: true})
	bound.Statement.ConnPool = tx
	return bound
}

// IsTimeout reports whether err comes from a store deadline or a cancelled
// statement.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "57014" {
		return true
	}
	return false
}

// IsUniqueViolation reports a 23505 on the named constraint. An empty
// constraint matches any unique violation.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && (constraint == "" || pgErr.ConstraintName == constraint)
	}
	return false
}

// MapTimeout converts store timeouts into apperror.ErrStoreTimeout and
// leaves every other error untouched.
func MapTimeout(err error) error {
	if IsTimeout(err) {
		return apperror.ErrStoreTimeout.WithCause(err)
	}
	return err
}

// WithTimeout bounds ctx by d when d > 0.
func WithTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
