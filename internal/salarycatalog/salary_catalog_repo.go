package salarycatalog

import (
	"context"
	"database/sql"

	"go-hrdocs/internal/shared/dbutil"
	"go-hrdocs/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=salary_catalog_repo.go -destination=mock/salary_catalog_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, d *Definition) error
	FindAll(ctx context.Context, tenantID string, activeOnly bool) ([]Definition, error)
	// SetActive reports gorm.ErrRecordNotFound when no row has code.
	SetActive(ctx context.Context, tenantID, code string, active bool) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: dbutil.BindTx(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, d *Definition) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) FindAll(ctx context.Context, tenantID string, activeOnly bool) ([]Definition, error) {
	var defs []Definition
	q := r.db.WithContext(ctx).Scopes(tenant.Scope(tenantID))
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Order("position ASC, code ASC").Find(&defs).Error
	return defs, err
}

func (r *repository) SetActive(ctx context.Context, tenantID, code string, active bool) error {
	res := r.db.WithContext(ctx).
		Model(&Definition{}).
		Scopes(tenant.Scope(tenantID)).
		Where("code = ?", code).
		Updates(map[string]any{"is_active": active, "updated_at": gorm.Expr("now()")})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
