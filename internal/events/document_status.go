package events

import "time"

type DocumentGeneratedEvent struct {
	EventType       string    `json:"event_type"`
	TenantID        string    `json:"tenant_id"`
	DocumentID      string    `json:"document_id"`
	SubjectID       string    `json:"subject_id"`
	DocumentType    string    `json:"document_type"`
	SnapshotVersion int       `json:"snapshot_version"`
	PDFLocation     string    `json:"pdf_location,omitempty"`
	CreatedBy       string    `json:"created_by"`
	OccurredAt      time.Time `json:"occurred_at"`
}

type DocumentStatusChangedEvent struct {
	EventType  string    `json:"event_type"`
	TenantID   string    `json:"tenant_id"`
	DocumentID string    `json:"document_id"`
	SubjectID  string    `json:"subject_id"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	ChangedBy  string    `json:"changed_by"`
	OccurredAt time.Time `json:"occurred_at"`
}
