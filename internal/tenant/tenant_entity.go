package tenant

import (
	"time"

	"github.com/google/uuid"
)

// Tenant is a row of the control-plane directory. DatabaseName names the
// isolated postgres database that holds every tenant-scoped table.
type Tenant struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(150);not null"`
	Slug         string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	DatabaseName string    `gorm:"type:varchar(100);not null"`
	IsActive     bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Tenant) TableName() string {
	return "tenants"
}
