package salarysnapshot

import (
	"context"
	"database/sql"

	"go-hrdocs/internal/shared/dbutil"
	"go-hrdocs/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=salary_snapshot_repo.go -destination=mock/salary_snapshot_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	// Create inserts the snapshot and its components. There is no update
	// or delete.
	Create(ctx context.Context, s *Snapshot) error
	FindByVersion(ctx context.Context, tenantID, subjectID string, version int) (*Snapshot, error)
	// FindCurrent follows the subject's current-snapshot pointer.
	FindCurrent(ctx context.Context, tenantID, subjectID string) (*Snapshot, error)
	// ListBySubject returns snapshot headers, newest first, without components.
	ListBySubject(ctx context.Context, tenantID, subjectID string) ([]Snapshot, error)
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

func orderedComponents(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (r *repository) Create(ctx context.Context, s *Snapshot) error {
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(s).Error; err != nil {
		return err
	}
	if len(s.Components) == 0 {
		return nil
	}
	return db.Create(&s.Components).Error
}

func (r *repository) FindByVersion(ctx context.Context, tenantID, subjectID string, version int) (*Snapshot, error) {
	var s Snapshot
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Preload("Components", orderedComponents).
		Where("subject_id = ? AND version = ?", subjectID, version).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) FindCurrent(ctx context.Context, tenantID, subjectID string) (*Snapshot, error) {
	var s Snapshot
	err := r.db.WithContext(ctx).
		Preload("Components", orderedComponents).
		Joins("JOIN subjects ON subjects.id = salary_snapshots.subject_id AND subjects.current_snapshot_version = salary_snapshots.version").
		Where("salary_snapshots.tenant_id = ? AND salary_snapshots.subject_id = ?", tenantID, subjectID).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) ListBySubject(ctx context.Context, tenantID, subjectID string) ([]Snapshot, error) {
	var snapshots []Snapshot
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("subject_id = ?", subjectID).
		Order("version DESC").
		Find(&snapshots).Error
	return snapshots, err
}
