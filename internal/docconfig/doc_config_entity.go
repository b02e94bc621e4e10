package docconfig

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	TypeJoiningLetter = "JOINING_LETTER"
	TypeOfferLetter   = "OFFER_LETTER"
	TypeCTCAnnexure   = "CTC_ANNEXURE"
	TypePayslip       = "PAYSLIP"
)

var DocumentTypes = []string{TypeJoiningLetter, TypeOfferLetter, TypeCTCAnnexure, TypePayslip}

const (
	SourceEarnings              = "earnings"
	SourceEmployeeDeductions    = "employeeDeductions"
	SourceEmployerContributions = "employerContributions"
	SourceAll                   = "all"
)

const (
	ModeIncludeAll      = "INCLUDE_ALL"
	ModeIncludeSpecific = "INCLUDE_SPECIFIC"
	ModeExcludeSpecific = "EXCLUDE_SPECIFIC"
)

// ActiveIndexName is the partial unique index that keeps one active
// config per (tenant_id, document_type). It is created at provisioning.
const ActiveIndexName = "uq_active_doc_config"

func ValidDocumentType(t string) bool {
	for _, dt := range DocumentTypes {
		if dt == t {
			return true
		}
	}
	return false
}

func ValidDataSource(s string) bool {
	switch s {
	case SourceEarnings, SourceEmployeeDeductions, SourceEmployerContributions, SourceAll:
		return true
	}
	return false
}

func ValidMode(m string) bool {
	return m == ModeIncludeAll || m == ModeIncludeSpecific || m == ModeExcludeSpecific
}

type Columns struct {
	Monthly bool `json:"monthly"`
	Yearly  bool `json:"yearly"`
}

// Section is one ordered block of a rendered document.
type Section struct {
	SectionKey string   `json:"sectionKey"`
	Title      string   `json:"title,omitempty"`
	DataSource string   `json:"dataSource"`
	Mode       string   `json:"mode"`
	Components []string `json:"components,omitempty"`
	Columns    Columns  `json:"columns"`
	ShowTotal  bool     `json:"showTotal"`
	TotalLabel string   `json:"totalLabel,omitempty"`
}

type Config struct {
	ID           uuid.UUID                     `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID     uuid.UUID                     `gorm:"type:uuid;not null;index:idx_doc_config_type,priority:1;uniqueIndex:uq_doc_config_version,priority:1" json:"tenantId"`
	DocumentType string                        `gorm:"type:varchar(30);not null;index:idx_doc_config_type,priority:2;uniqueIndex:uq_doc_config_version,priority:2" json:"documentType"`
	Version      int                           `gorm:"not null;uniqueIndex:uq_doc_config_version,priority:3" json:"version"`
	Name         string                        `gorm:"type:varchar(100)" json:"name"`
	Sections     datatypes.JSONType[[]Section] `gorm:"type:jsonb;not null" json:"sections"`
	IsActive     bool                          `gorm:"not null;default:false" json:"isActive"`
	CreatedBy    string                        `gorm:"type:varchar(100)" json:"createdBy"`
	CreatedAt    time.Time                     `json:"createdAt"`
	UpdatedAt    time.Time                     `json:"updatedAt"`
}

func (Config) TableName() string {
	return "document_view_configs"
}

// SectionList returns a copy of the configured sections.
func (c *Config) SectionList() []Section {
	src := c.Sections.Data()
	out := make([]Section, len(src))
	for i, s := range src {
		s.Components = append([]string(nil), s.Components...)
		out[i] = s
	}
	return out
}
