package subject

import (
	"context"
	"database/sql"

	"go-hrdocs/internal/shared/dbutil"
	"go-hrdocs/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=subject_repo.go -destination=mock/subject_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	// ForKind returns a repository that only sees subjects of kind.
	ForKind(kind string) Repository
	Kind() string
	Upsert(ctx context.Context, s *Subject) error
	FindAll(ctx context.Context, tenantID string) ([]Subject, error)
	FindByID(ctx context.Context, tenantID, id string) (*Subject, error)
	// SetCurrentSnapshot moves the pointer forward only. It reports false
	// when the stored version is already at or past version.
	SetCurrentSnapshot(ctx context.Context, tenantID, id string, version int) (bool, error)
}

type repository struct {
	db   *gorm.DB
	kind string
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: dbutil.BindTx(r.db, tx), kind: r.kind}
}

func (r *repository) ForKind(kind string) Repository {
	return &repository{db: r.db, kind: kind}
}

func (r *repository) Kind() string {
	return r.kind
}

func (r *repository) scoped(ctx context.Context, tenantID string) *gorm.DB {
	q := r.db.WithContext(ctx).Scopes(tenant.Scope(tenantID))
	if r.kind != "" {
		q = q.Where("kind = ?", r.kind)
	}
	return q
}

func (r *repository) Upsert(ctx context.Context, s *Subject) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"full_name", "email", "annual_ctc", "updated_at"}),
		}).
		Create(s).Error
}

func (r *repository) FindAll(ctx context.Context, tenantID string) ([]Subject, error) {
	var subjects []Subject
	err := r.scoped(ctx, tenantID).
		Order("full_name ASC").
		Find(&subjects).Error
	return subjects, err
}

func (r *repository) FindByID(ctx context.Context, tenantID, id string) (*Subject, error) {
	var s Subject
	err := r.scoped(ctx, tenantID).
		First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) SetCurrentSnapshot(ctx context.Context, tenantID, id string, version int) (bool, error) {
	res := r.scoped(ctx, tenantID).
		Model(&Subject{}).
		Where("id = ? AND current_snapshot_version < ?", id, version).
		Updates(map[string]any{
			"current_snapshot_version": version,
			"updated_at":               gorm.Expr("now()"),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
