package subject

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	KindEmployee  = "employee"
	KindCandidate = "candidate"
)

// Subject is an employee or candidate whose salary is documented. It owns
// the pointer to its current salary snapshot; the snapshots themselves are
// never touched when the pointer moves.
type Subject struct {
	ID                     uuid.UUID           `gorm:"type:uuid;primaryKey"`
	TenantID               uuid.UUID           `gorm:"type:uuid;not null;index:idx_subjects_tenant_kind,priority:1;uniqueIndex:uq_subject_email,priority:1"`
	Kind                   string              `gorm:"type:varchar(20);not null;index:idx_subjects_tenant_kind,priority:2"`
	FullName               string              `gorm:"type:varchar(150);not null"`
	Email                  string              `gorm:"type:varchar(150);not null;uniqueIndex:uq_subject_email,priority:2"`
	AnnualCTC              decimal.NullDecimal `gorm:"type:numeric(14,2)"`
	CurrentSnapshotVersion int                 `gorm:"not null;default:0"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

func (Subject) TableName() string {
	return "subjects"
}

func ValidKind(kind string) bool {
	return kind == KindEmployee || kind == KindCandidate
}
