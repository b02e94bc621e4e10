package document

import (
	"context"
	"database/sql"
	"time"

	"go-hrdocs/internal/shared/dbutil"
	"go-hrdocs/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=document_repo.go -destination=mock/document_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, d *GeneratedDocument) error
	FindByID(ctx context.Context, tenantID, id string) (*GeneratedDocument, error)
	ListBySubject(ctx context.Context, tenantID, subjectID string) ([]GeneratedDocument, error)
	// UpdateStatus moves id from one status to another only if it is still
	// in from. It reports false when another writer got there first.
	UpdateStatus(ctx context.Context, tenantID, id, from, to string, at time.Time) (bool, error)
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

func (r *repository) Create(ctx context.Context, d *GeneratedDocument) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) FindByID(ctx context.Context, tenantID, id string) (*GeneratedDocument, error) {
	var d GeneratedDocument
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("id = ?", id).
		First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repository) ListBySubject(ctx context.Context, tenantID, subjectID string) ([]GeneratedDocument, error) {
	var docs []GeneratedDocument
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("subject_id = ?", subjectID).
		Order("created_at DESC").
		Find(&docs).Error
	return docs, err
}

func (r *repository) UpdateStatus(ctx context.Context, tenantID, id, from, to string, at time.Time) (bool, error) {
	updates := map[string]any{"status": to, "updated_at": at}
	if col := timestampColumn(to); col != "" {
		updates[col] = at
	}

	res := r.db.WithContext(ctx).
		Model(&GeneratedDocument{}).
		Scopes(tenant.Scope(tenantID)).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
