package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubjectLifecycleEvent is published by the upstream HR system when an
// employee or candidate is created or changed. A present AnnualCTC asks
// for a default snapshot.
type SubjectLifecycleEvent struct {
	EventType  string           `json:"event_type"`
	TenantID   string           `json:"tenant_id"`
	SubjectID  string           `json:"subject_id"`
	Kind       string           `json:"kind"`
	FullName   string           `json:"full_name"`
	Email      string           `json:"email"`
	AnnualCTC  *decimal.Decimal `json:"annual_ctc,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
}
