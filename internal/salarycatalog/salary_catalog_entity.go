package salarycatalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CodeBasic marks the definition PERCENT_OF_BASIC entries are computed
// against.
const CodeBasic = "BASIC"

// Definition is a tenant catalog entry for a benefit, earning or
// deduction. Toggling IsActive only affects future snapshots.
type Definition struct {
	ID              uuid.UUID           `gorm:"type:uuid;primaryKey"`
	TenantID        uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:uq_salary_definition_code,priority:1"`
	Code            string              `gorm:"type:varchar(50);not null;uniqueIndex:uq_salary_definition_code,priority:2"`
	Name            string              `gorm:"type:varchar(100);not null"`
	Category        string              `gorm:"type:varchar(30);not null"`
	CalculationType string              `gorm:"type:varchar(20);not null"`
	Amount          decimal.NullDecimal `gorm:"type:numeric(14,2)"`
	Percentage      decimal.NullDecimal `gorm:"type:numeric(7,4)"`
	ProRata         bool                `gorm:"not null;default:false"`
	Taxable         bool                `gorm:"not null;default:true"`
	Removable       bool                `gorm:"not null;default:true"`
	IsActive        bool                `gorm:"not null;default:true"`
	Position        int                 `gorm:"not null;default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Definition) TableName() string {
	return "salary_definitions"
}
