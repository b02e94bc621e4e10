package tenant

import (
	"context"
	"errors"

	"go-hrdocs/internal/shared/dbutil"
	tenanterrors "go-hrdocs/internal/tenant/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=tenant_directory.go -destination=mock/tenant_directory_mock.go -package=mock
type Directory interface {
	// FindByID returns the active tenant with id. Unknown, malformed and
	// inactive ids all report ErrTenantNotFound.
	FindByID(ctx context.Context, id string) (*Tenant, error)
	ListActive(ctx context.Context) ([]Tenant, error)
}

type directory struct {
	db *gorm.DB
}

func NewDirectory(db *gorm.DB) Directory {
	return &directory{db: db}
}

func (d *directory) FindByID(ctx context.Context, id string) (*Tenant, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, tenanterrors.ErrTenantNotFound.WithDetails(map[string]any{"tenant_id": id})
	}

	var t Tenant
	err := d.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&t).Error
	if err != nil {
		return nil, mapDirectoryError(err, id)
	}
	return &t, nil
}

func (d *directory) ListActive(ctx context.Context) ([]Tenant, error) {
	var tenants []Tenant
	err := d.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("slug ASC").
		Find(&tenants).Error
	if err != nil {
		return nil, mapDirectoryError(err, "")
	}
	return tenants, nil
}

func mapDirectoryError(err error, id string) error {
	details := map[string]any{"tenant_id": id}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tenanterrors.ErrTenantNotFound.WithDetails(details)
	}
	if dbutil.IsTimeout(err) {
		return dbutil.MapTimeout(err)
	}
	return tenanterrors.ErrTenantStoreUnavailable.WithDetails(details).WithCause(err)
}
