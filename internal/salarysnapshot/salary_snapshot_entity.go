package salarysnapshot

import (
	"time"

	salarysnapshoterrors "go-hrdocs/internal/salarysnapshot/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	CategoryEarning              = "earning"
	CategoryEmployeeDeduction    = "employeeDeduction"
	CategoryEmployerContribution = "employerContribution"
)

const (
	CalcFixed          = "FIXED"
	CalcPercentOfBasic = "PERCENT_OF_BASIC"
	CalcPercentOfCTC   = "PERCENT_OF_CTC"
)

const (
	SourceExplicit = "explicit"
	SourceAutoCTC  = "auto_ctc"
	SourceCatalog  = "catalog"
)

// Categories in canonical order.
var Categories = []string{CategoryEarning, CategoryEmployeeDeduction, CategoryEmployerContribution}

func ValidCategory(c string) bool {
	return c == CategoryEarning || c == CategoryEmployeeDeduction || c == CategoryEmployerContribution
}

func ValidCalculationType(t string) bool {
	return t == CalcFixed || t == CalcPercentOfBasic || t == CalcPercentOfCTC
}

// Snapshot is an immutable, versioned bundle of salary components for one
// subject. A change of salary is a new version, never an update.
type Snapshot struct {
	ID              uuid.UUID           `gorm:"type:uuid;primaryKey"`
	TenantID        uuid.UUID           `gorm:"type:uuid;not null;index"`
	SubjectID       uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:uq_snapshot_subject_version,priority:1"`
	Version         int                 `gorm:"not null;uniqueIndex:uq_snapshot_subject_version,priority:2"`
	Source          string              `gorm:"type:varchar(20);not null"`
	AnnualCTC       decimal.NullDecimal `gorm:"type:numeric(14,2)"`
	DefaultsApplied bool                `gorm:"not null;default:false"`
	CreatedBy       string              `gorm:"type:varchar(100)"`
	CreatedAt       time.Time
	Components      []Component `gorm:"foreignKey:SnapshotID;constraint:OnDelete:RESTRICT"`
}

func (Snapshot) TableName() string {
	return "salary_snapshots"
}

func (*Snapshot) BeforeUpdate(*gorm.DB) error {
	return salarysnapshoterrors.ErrSnapshotImmutable
}

func (*Snapshot) BeforeDelete(*gorm.DB) error {
	return salarysnapshoterrors.ErrSnapshotImmutable
}

// Component is one monetary line of a snapshot. AnnualAmount is always
// round(MonthlyAmount*12, 2) as computed when the snapshot was created.
type Component struct {
	ID              uuid.UUID           `gorm:"type:uuid;primaryKey"`
	SnapshotID      uuid.UUID           `gorm:"type:uuid;not null;index"`
	Position        int                 `gorm:"not null"`
	Name            string              `gorm:"type:varchar(100);not null"`
	Category        string              `gorm:"type:varchar(30);not null"`
	MonthlyAmount   decimal.Decimal     `gorm:"type:numeric(14,2);not null"`
	AnnualAmount    decimal.Decimal     `gorm:"type:numeric(14,2);not null"`
	CalculationType string              `gorm:"type:varchar(20);not null"`
	Percentage      decimal.NullDecimal `gorm:"type:numeric(7,4)"`
	ProRata         bool                `gorm:"not null;default:false"`
	Taxable         bool                `gorm:"not null;default:false"`
	Removable       bool                `gorm:"not null;default:true"`
}

func (Component) TableName() string {
	return "salary_snapshot_components"
}

func (*Component) BeforeUpdate(*gorm.DB) error {
	return salarysnapshoterrors.ErrSnapshotImmutable
}

func (*Component) BeforeDelete(*gorm.DB) error {
	return salarysnapshoterrors.ErrSnapshotImmutable
}

// Clone returns a deep copy; callers may mutate it freely.
func (s Snapshot) Clone() Snapshot {
	cp := s
	cp.Components = append([]Component(nil), s.Components...)
	return cp
}
