package tenant

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go-hrdocs/internal/config"
	"go-hrdocs/internal/shared/connection"
	"go-hrdocs/internal/shared/dbutil"
	tenanterrors "go-hrdocs/internal/tenant/errors"

	"gorm.io/gorm"
)

// Store is the isolated data-store handle of one tenant. DB and SQL share
// the same connection pool.
type Store struct {
	DB  *gorm.DB
	SQL *sql.DB
}

func NewStore(db *gorm.DB) (*Store, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	return &Store{DB: db, SQL: sqlDB}, nil
}

func (s *Store) Close() error {
	if s == nil || s.SQL == nil {
		return nil
	}
	return s.SQL.Close()
}

// Provisioner creates tables and indexes in a freshly opened tenant store.
// It must be idempotent.
type Provisioner func(ctx context.Context, db *gorm.DB) error

//go:generate mockgen -source=tenant_store.go -destination=mock/tenant_store_mock.go -package=mock
type Opener interface {
	Open(ctx context.Context, t Tenant) (*Store, error)
}

type postgresOpener struct {
	cfg              config.DatabaseConfig
	provision        Provisioner
	statementTimeout time.Duration
}

// NewPostgresOpener opens tenant stores on the server described by cfg, in
// the database named by the tenant record. statementTimeout is enforced by
// postgres on every statement; a cancelled statement surfaces as a store
// timeout.
func NewPostgresOpener(cfg config.DatabaseConfig, provision Provisioner, statementTimeout time.Duration) Opener {
	return &postgresOpener{cfg: cfg, provision: provision, statementTimeout: statementTimeout}
}

func (o *postgresOpener) Open(ctx context.Context, t Tenant) (*Store, error) {
	details := map[string]any{"tenant_id": t.ID.String(), "database": t.DatabaseName}

	dsn := o.cfg.DSN(t.DatabaseName)
	if o.statementTimeout > 0 {
		dsn += fmt.Sprintf(" statement_timeout=%d", o.statementTimeout.Milliseconds())
	}

	db, err := connection.OpenGORM(ctx, dsn, connection.TenantPool)
	if err != nil {
		return nil, unavailable(err, details)
	}

	store, err := NewStore(db)
	if err != nil {
		return nil, unavailable(err, details)
	}

	if o.provision != nil {
		if err := o.provision(ctx, db); err != nil {
			_ = store.Close()
			return nil, unavailable(err, details)
		}
	}

	return store, nil
}

func unavailable(err error, details map[string]any) error {
	if dbutil.IsTimeout(err) {
		return dbutil.MapTimeout(err)
	}
	return tenanterrors.ErrTenantStoreUnavailable.WithDetails(details).WithCause(err)
}
