package salarysnapshot

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComponentInput is one caller-supplied component. MonthlyAmount is a
// pointer so that an absent amount can be told apart from zero.
type ComponentInput struct {
	Name            string           `json:"name"`
	Category        string           `json:"category"`
	MonthlyAmount   *decimal.Decimal `json:"monthlyAmount"`
	CalculationType string           `json:"calculationType,omitempty"`
	Percentage      *decimal.Decimal `json:"percentage,omitempty"`
	ProRata         bool             `json:"proRata"`
	Taxable         bool             `json:"taxable"`
	Removable       *bool            `json:"removable,omitempty"`
}

// CreateSnapshotRequest selects the salary source: explicit components
// win, then the tenant catalog, then the default CTC split.
type CreateSnapshotRequest struct {
	Components []ComponentInput `json:"components"`
	AnnualCTC  *decimal.Decimal `json:"annualCtc"`
	UseCatalog bool             `json:"useCatalog"`
}

type ComponentResponse struct {
	Name            string           `json:"name"`
	Category        string           `json:"category"`
	MonthlyAmount   decimal.Decimal  `json:"monthlyAmount"`
	AnnualAmount    decimal.Decimal  `json:"annualAmount"`
	CalculationType string           `json:"calculationType"`
	Percentage      *decimal.Decimal `json:"percentage,omitempty"`
	ProRata         bool             `json:"proRata"`
	Taxable         bool             `json:"taxable"`
	Removable       bool             `json:"removable"`
}

type SnapshotResponse struct {
	ID              string              `json:"id"`
	SubjectID       string              `json:"subjectId"`
	Version         int                 `json:"version"`
	Source          string              `json:"source"`
	AnnualCTC       *decimal.Decimal    `json:"annualCtc,omitempty"`
	DefaultsApplied bool                `json:"defaultsApplied"`
	CreatedBy       string              `json:"createdBy,omitempty"`
	CreatedAt       time.Time           `json:"createdAt"`
	Components      []ComponentResponse `json:"components,omitempty"`
}

// Violation describes one invalid component entry.
type Violation struct {
	Index  int    `json:"index"`
	Name   string `json:"name,omitempty"`
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func ToResponse(s Snapshot) SnapshotResponse {
	resp := SnapshotResponse{
		ID:              s.ID.String(),
		SubjectID:       s.SubjectID.String(),
		Version:         s.Version,
		Source:          s.Source,
		DefaultsApplied: s.DefaultsApplied,
		CreatedBy:       s.CreatedBy,
		CreatedAt:       s.CreatedAt,
	}
	if s.AnnualCTC.Valid {
		ctc := s.AnnualCTC.Decimal
		resp.AnnualCTC = &ctc
	}
	for _, c := range s.Components {
		cr := ComponentResponse{
			Name:            c.Name,
			Category:        c.Category,
			MonthlyAmount:   c.MonthlyAmount,
			AnnualAmount:    c.AnnualAmount,
			CalculationType: c.CalculationType,
			ProRata:         c.ProRata,
			Taxable:         c.Taxable,
			Removable:       c.Removable,
		}
		if c.Percentage.Valid {
			pct := c.Percentage.Decimal
			cr.Percentage = &pct
		}
		resp.Components = append(resp.Components, cr)
	}
	return resp
}
