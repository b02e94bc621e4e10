package subject

import "github.com/shopspring/decimal"

type UpsertSubjectRequest struct {
	Kind      string           `json:"kind" binding:"required,oneof=employee candidate"`
	FullName  string           `json:"full_name" binding:"required"`
	Email     string           `json:"email" binding:"required,email"`
	AnnualCTC *decimal.Decimal `json:"annual_ctc" binding:"omitempty,decimal_gte0"`
}

type SubjectResponse struct {
	ID                     string           `json:"id"`
	TenantID               string           `json:"tenant_id"`
	Kind                   string           `json:"kind"`
	FullName               string           `json:"full_name"`
	Email                  string           `json:"email"`
	AnnualCTC              *decimal.Decimal `json:"annual_ctc,omitempty"`
	CurrentSnapshotVersion int              `json:"current_snapshot_version"`
}
