package generation

import (
	"go-hrdocs/internal/composer"
	"go-hrdocs/internal/document"
	"go-hrdocs/internal/salarysnapshot"

	"github.com/shopspring/decimal"
)

// GenerateRequest picks the salary source the same way snapshot creation
// does. With no components, CTC or catalog flag the subject's current
// snapshot is reused.
type GenerateRequest struct {
	SubjectID    string                          `json:"subjectId" binding:"required,uuid"`
	DocumentType string                          `json:"documentType" binding:"required"`
	Components   []salarysnapshot.ComponentInput `json:"components"`
	AnnualCTC    *decimal.Decimal                `json:"annualCtc"`
	UseCatalog   bool                            `json:"useCatalog"`
	TemplateRef  string                          `json:"templateRef" binding:"max=200"`
	Format       string                          `json:"format" binding:"omitempty,oneof=none pdf xlsx"`
}

func (r GenerateRequest) wantsNewSnapshot() bool {
	return len(r.Components) > 0 || r.AnnualCTC != nil || r.UseCatalog
}

func (r GenerateRequest) snapshotRequest() salarysnapshot.CreateSnapshotRequest {
	return salarysnapshot.CreateSnapshotRequest{
		Components: r.Components,
		AnnualCTC:  r.AnnualCTC,
		UseCatalog: r.UseCatalog,
	}
}

type Result struct {
	Document          *document.GeneratedDocument
	Model             composer.RenderModel
	DefaultsApplied   bool
	ConfigFromDefault bool
	SnapshotCreated   bool
}

type GenerateResponse struct {
	DefaultsApplied   bool                      `json:"defaultsApplied"`
	ConfigFromDefault bool                      `json:"configFromDefault"`
	SnapshotCreated   bool                      `json:"snapshotCreated"`
	Document          document.DocumentResponse `json:"document"`
	RenderModel       composer.RenderModel      `json:"renderModel"`
}

func ToResponse(r *Result) GenerateResponse {
	return GenerateResponse{
		DefaultsApplied:   r.DefaultsApplied,
		ConfigFromDefault: r.ConfigFromDefault,
		SnapshotCreated:   r.SnapshotCreated,
		Document:          document.ToResponse(r.Document),
		RenderModel:       r.Model,
	}
}
