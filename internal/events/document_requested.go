package events

import (
	"time"

	"github.com/shopspring/decimal"
)

type DocumentRequestedEvent struct {
	EventType    string           `json:"event_type"`
	RequestID    string           `json:"request_id"`
	TenantID     string           `json:"tenant_id"`
	SubjectID    string           `json:"subject_id"`
	DocumentType string           `json:"document_type"`
	TemplateRef  string           `json:"template_ref"`
	Format       string           `json:"format"`
	UseCatalog   bool             `json:"use_catalog"`
	AnnualCTC    *decimal.Decimal `json:"annual_ctc,omitempty"`
	RequestedBy  string           `json:"requested_by"`
	OccurredAt   time.Time        `json:"occurred_at"`
}
