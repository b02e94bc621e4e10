package docconfig

import (
	"context"
	"database/sql"

	"go-hrdocs/internal/shared/dbutil"
	"go-hrdocs/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=doc_config_repo.go -destination=mock/doc_config_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindActive(ctx context.Context, tenantID, documentType string) (*Config, error)
	FindAll(ctx context.Context, tenantID, documentType string) ([]Config, error)
	NextVersion(ctx context.Context, tenantID, documentType string) (int, error)
	DeactivateActive(ctx context.Context, tenantID, documentType string) (int64, error)
	Create(ctx context.Context, c *Config) error
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

func (r *repository) FindActive(ctx context.Context, tenantID, documentType string) (*Config, error) {
	var c Config
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("document_type = ? AND is_active = ?", documentType, true).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) FindAll(ctx context.Context, tenantID, documentType string) ([]Config, error) {
	var configs []Config
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("document_type = ?", documentType).
		Order("version DESC").
		Find(&configs).Error
	return configs, err
}

func (r *repository) NextVersion(ctx context.Context, tenantID, documentType string) (int, error) {
	var next int
	err := r.db.WithContext(ctx).
		Model(&Config{}).
		Scopes(tenant.Scope(tenantID)).
		Where("document_type = ?", documentType).
		Select("COALESCE(MAX(version), 0) + 1").
		Scan(&next).Error
	return next, err
}

func (r *repository) DeactivateActive(ctx context.Context, tenantID, documentType string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Config{}).
		Scopes(tenant.Scope(tenantID)).
		Where("document_type = ? AND is_active = ?", documentType, true).
		Updates(map[string]any{"is_active": false, "updated_at": gorm.Expr("now()")})
	return res.RowsAffected, res.Error
}

func (r *repository) Create(ctx context.Context, c *Config) error {
	return r.db.WithContext(ctx).Create(c).Error
}
