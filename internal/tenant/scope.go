package tenant

import "gorm.io/gorm"

// Scope filters by tenant_id inside a tenant store. An empty id matches
// nothing.
func Scope(tenantID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if tenantID == "" {
			return db.Where("1 = 0")
		}
		return db.Where("tenant_id = ?", tenantID)
	}
}
