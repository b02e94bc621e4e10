package document

import (
	"time"

	"go-hrdocs/internal/composer"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// GeneratedDocument is a ledger entry. RenderModel is a private copy of
// the composed values; it never references live snapshot or subject rows.
type GeneratedDocument struct {
	ID              uuid.UUID                                `gorm:"type:uuid;primaryKey"`
	TenantID        uuid.UUID                                `gorm:"type:uuid;not null;index:idx_generated_doc_subject,priority:1"`
	SubjectID       uuid.UUID                                `gorm:"type:uuid;not null;index:idx_generated_doc_subject,priority:2"`
	DocumentType    string                                   `gorm:"type:varchar(30);not null;index:idx_generated_doc_type"`
	TemplateRef     string                                   `gorm:"type:varchar(200)"`
	SnapshotID      uuid.UUID                                `gorm:"type:uuid;not null"`
	SnapshotVersion int                                      `gorm:"not null"`
	RenderModel     datatypes.JSONType[composer.RenderModel] `gorm:"type:jsonb;not null"`
	PDFLocation     string                                   `gorm:"type:text"`
	Status          string                                   `gorm:"type:varchar(20);not null;default:generated"`
	SentAt          *time.Time
	ViewedAt        *time.Time
	DecidedAt       *time.Time
	ExpiredAt       *time.Time
	CreatedBy       string `gorm:"type:varchar(100)"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (GeneratedDocument) TableName() string {
	return "generated_documents"
}

// Model returns a copy of the stored render model.
func (d *GeneratedDocument) Model() composer.RenderModel {
	return d.RenderModel.Data().Clone()
}

func (d *GeneratedDocument) stamp(status string, at time.Time) {
	t := at
	switch status {
	case StatusSent:
		d.SentAt = &t
	case StatusViewed:
		d.ViewedAt = &t
	case StatusAccepted, StatusRejected:
		d.DecidedAt = &t
	case StatusExpired:
		d.ExpiredAt = &t
	}
	d.Status = status
	d.UpdatedAt = at
}
