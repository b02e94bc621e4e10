package counter

import (
	"context"
	"database/sql"
	"time"

	"go-hrdocs/internal/shared/dbutil"

	"gorm.io/gorm"
)

const TypeSnapshotVersion = "salary_snapshot_version"

// Counter is one monotonic sequence keyed by (scope_id, counter_type).
type Counter struct {
	ScopeID     string `gorm:"type:varchar(64);primaryKey"`
	CounterType string `gorm:"type:varchar(64);primaryKey"`
	LastValue   int64  `gorm:"not null;default:0"`
	UpdatedAt   time.Time
}

func (Counter) TableName() string {
	return "tenant_counters"
}

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	// GetNextValue atomically increments and returns the sequence value.
	// Values are never reused: a rolled back transaction gives its value
	// back only because the increment itself is rolled back.
	GetNextValue(ctx context.Context, scopeID string, counterType string) (int64, error)
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

func (r *repository) GetNextValue(ctx context.Context, scopeID string, counterType string) (int64, error) {
	var nextValue int64

	// The row lock taken by the upsert serializes concurrent callers per key.
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO tenant_counters (scope_id, counter_type, last_value, updated_at)
		VALUES (?, ?, 1, now())
		ON CONFLICT (scope_id, counter_type) DO UPDATE
		SET last_value = tenant_counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, scopeID, counterType).Scan(&nextValue).Error

	if err != nil {
		return 0, dbutil.MapTimeout(err)
	}

	return nextValue, nil
}
