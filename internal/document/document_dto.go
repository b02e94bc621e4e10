package document

import (
	"time"

	"go-hrdocs/internal/composer"
)

type RecordInput struct {
	SubjectID    string
	DocumentType string
	TemplateRef  string
	PDFLocation  string
	Model        composer.RenderModel
}

type TransitionRequest struct {
	Status string `json:"status" binding:"required,oneof=sent viewed accepted rejected expired"`
}

type DocumentResponse struct {
	ID              string               `json:"id"`
	SubjectID       string               `json:"subjectId"`
	DocumentType    string               `json:"documentType"`
	TemplateRef     string               `json:"templateRef,omitempty"`
	SnapshotID      string               `json:"snapshotId"`
	SnapshotVersion int                  `json:"snapshotVersion"`
	Status          string               `json:"status"`
	PDFLocation     string               `json:"pdfLocation,omitempty"`
	RenderModel     composer.RenderModel `json:"renderModel"`
	SentAt          *time.Time           `json:"sentAt,omitempty"`
	ViewedAt        *time.Time           `json:"viewedAt,omitempty"`
	DecidedAt       *time.Time           `json:"decidedAt,omitempty"`
	ExpiredAt       *time.Time           `json:"expiredAt,omitempty"`
	CreatedBy       string               `json:"createdBy,omitempty"`
	CreatedAt       time.Time            `json:"createdAt"`
}

func ToResponse(d *GeneratedDocument) DocumentResponse {
	return DocumentResponse{
		ID:              d.ID.String(),
		SubjectID:       d.SubjectID.String(),
		DocumentType:    d.DocumentType,
		TemplateRef:     d.TemplateRef,
		SnapshotID:      d.SnapshotID.String(),
		SnapshotVersion: d.SnapshotVersion,
		Status:          d.Status,
		PDFLocation:     d.PDFLocation,
		RenderModel:     d.Model(),
		SentAt:          d.SentAt,
		ViewedAt:        d.ViewedAt,
		DecidedAt:       d.DecidedAt,
		ExpiredAt:       d.ExpiredAt,
		CreatedBy:       d.CreatedBy,
		CreatedAt:       d.CreatedAt,
	}
}
