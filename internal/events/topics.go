package events

const (
	SubjectLifecycleTopic  = "hr.subject.lifecycle.v1"
	DocumentRequestedTopic = "hr.document.requested.v1"
	DocumentGeneratedTopic = "hr.document.generated.v1"
	DocumentStatusTopic    = "hr.document.status.v1"
)

const (
	EventSubjectUpserted   = "subject_upserted"
	EventDocumentRequested = "document_requested"
	EventDocumentGenerated = "document_generated"
	EventDocumentStatus    = "document_status_changed"
)
